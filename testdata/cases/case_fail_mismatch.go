package cases

var n = 1 // $ExpectType string
