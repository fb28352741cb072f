//go:build !oxydebug

package common

const assertPanics = false
