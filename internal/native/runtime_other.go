//go:build !windows

package native

import (
	"errors"
	"runtime"
)

type stubRuntime struct{}

// newRuntime on non-Windows returns a stub. The compatibility gate rejects
// these hosts before any native call, so the stub only exists to keep the
// package constructible everywhere.
func newRuntime() Runtime {
	return stubRuntime{}
}

func (stubRuntime) LoadSensorRuntime() error {
	return errors.New("sensor runtime is not available on " + runtime.GOOS)
}

func (stubRuntime) CreateTracker(*Calibration, TrackerConfig) (Handle, error) {
	return 0, errors.New("tracker runtime is not available on " + runtime.GOOS)
}

func (stubRuntime) DestroyTracker(Handle) {}
