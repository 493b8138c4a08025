package cases

var x = 1 // $ExpectType int

// $ExpectType string
var s = "hello"

var _ string = 1 // $ExpectError
