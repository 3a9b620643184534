//go:build windows

package hostcheck

import (
	"math/bits"
	"runtime"

	"golang.org/x/sys/windows"
)

// currentHost gathers the real facts for this machine. RtlGetVersion is used
// instead of GetVersionEx because the latter lies to unmanifested processes.
func currentHost() Host {
	ver := windows.RtlGetVersion()

	is64Process := bits.UintSize == 64
	is64OS := is64Process
	if !is64OS {
		// A 32-bit process on a 64-bit OS runs under WOW64.
		var wow bool
		if err := windows.IsWow64Process(windows.CurrentProcess(), &wow); err == nil {
			is64OS = wow
		}
	}

	return Host{
		OS:             runtime.GOOS,
		MajorVersion:   ver.MajorVersion,
		Is64BitOS:      is64OS,
		Is64BitProcess: is64Process,
	}
}
