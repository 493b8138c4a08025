package cases

// $ExpectError
var _ string = 1 // $ExpectError
