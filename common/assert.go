package common

import (
	"fmt"
	"log"
)

// Assert reports a programmer error. Builds tagged oxydebug panic with the message;
// release builds log it and return so the caller can no-op and keep the frame alive.
//
// Parameters:
//   - cond: the condition that must hold
//   - format: fmt-style message describing the violation
//   - args: format arguments
//
// Returns:
//   - bool: cond, so callers can write `if !common.Assert(...) { return }`
func Assert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if assertPanics {
		panic("assertion failed: " + msg)
	}
	log.Printf("assertion failed: %s", msg)
	return false
}
