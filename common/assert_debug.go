//go:build oxydebug

package common

const assertPanics = true
