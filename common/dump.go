package common

import "github.com/davecgh/go-spew/spew"

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
	spewConfig.SortKeys = true
	spewConfig.MaxDepth = 4
}

// Dump renders values for debug logging.
func Dump(a ...any) string {
	return spewConfig.Sdump(a...)
}
