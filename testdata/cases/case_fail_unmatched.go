package cases

var u = 1

// $ExpectType int
