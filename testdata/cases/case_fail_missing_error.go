package cases

var ok = true // $ExpectError
