package cases

// $ExpectType int
var d = 1 // $ExpectType int
