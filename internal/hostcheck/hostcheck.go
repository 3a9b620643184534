// Package hostcheck validates that the host OS and the calling process can
// run the body tracking runtime at all. The check is pure: it reads a fixed
// set of host facts and never touches the filesystem.
package hostcheck

import (
	"fmt"

	"github.com/vk/trackgate/internal/reason"
)

// minWindowsMajor is the lowest Windows major version the tracking runtime
// supports.
const minWindowsMajor = 10

// Host holds the facts about the machine and process that the gate cares
// about. Tests construct these directly; production code uses currentHost.
type Host struct {
	// OS is the runtime.GOOS value.
	OS string
	// MajorVersion is the OS major version. Only meaningful on Windows.
	MajorVersion uint32
	// Is64BitOS reports whether the OS itself is 64-bit.
	Is64BitOS bool
	// Is64BitProcess reports whether this process runs with 64-bit pointers.
	Is64BitProcess bool
}

// Checker is the compatibility gate. The zero value is not usable; construct
// with New or NewWithHost.
type Checker struct {
	host Host
}

// New returns a Checker backed by the real host facts.
func New() *Checker {
	return &Checker{host: currentHost()}
}

// NewWithHost returns a Checker over caller-supplied facts. Used by tests to
// exercise every rejection path on any development machine.
func NewWithHost(h Host) *Checker {
	return &Checker{host: h}
}

// Check returns nil when the host can run the tracking runtime, or an error
// wrapping reason.ErrPlatformUnsupported naming the first violated
// constraint. Deterministic and safe for concurrent use.
func (c *Checker) Check() error {
	if c.host.OS != "windows" {
		return fmt.Errorf("%w: body tracking requires Windows, running on %s", reason.ErrPlatformUnsupported, c.host.OS)
	}
	if c.host.MajorVersion < minWindowsMajor {
		return fmt.Errorf("%w: Windows %d or later is required, found major version %d",
			reason.ErrPlatformUnsupported, minWindowsMajor, c.host.MajorVersion)
	}
	if !c.host.Is64BitOS {
		return fmt.Errorf("%w: a 64-bit operating system is required", reason.ErrPlatformUnsupported)
	}
	if !c.host.Is64BitProcess {
		return fmt.Errorf("%w: the calling process must be 64-bit", reason.ErrPlatformUnsupported)
	}
	return nil
}
