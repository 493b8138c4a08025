package cases

var _ string = 1
