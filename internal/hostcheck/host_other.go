//go:build !windows

package hostcheck

import (
	"math/bits"
	"runtime"
)

// currentHost on non-Windows reports only enough for Check to produce the
// right rejection; version facts are not gathered.
func currentHost() Host {
	is64 := bits.UintSize == 64
	return Host{
		OS:             runtime.GOOS,
		Is64BitOS:      is64,
		Is64BitProcess: is64,
	}
}
