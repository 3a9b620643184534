// Package native is the boundary to the sensor and body tracking DLLs. The
// rest of the gate treats it as a black box: a tracker creation either
// yields a valid handle or fails, and nothing else about the native side is
// observable. The real implementation is Windows-only; every other platform
// gets a stub, and tests inject fakes.
package native

// SensorOrientation mirrors the native k4abt_sensor_orientation_t values.
type SensorOrientation int32

const (
	OrientationDefault SensorOrientation = iota
	OrientationClockwise90
	OrientationCounterClockwise90
	OrientationFlip180
)

// ProcessingMode mirrors the native k4abt_tracker_processing_mode_t values.
type ProcessingMode int32

const (
	ProcessingModeGPU ProcessingMode = iota
	ProcessingModeCPU
)

// TrackerConfig mirrors the native k4abt_tracker_configuration_t layout.
type TrackerConfig struct {
	SensorOrientation SensorOrientation
	ProcessingMode    ProcessingMode
	GPUDeviceID       int32
}

// DefaultProbeConfig is the configuration used for the load-and-discard
// probe when the caller has no configured defaults. It matches the
// runtime's own defaults: GPU processing on device zero.
func DefaultProbeConfig() TrackerConfig {
	return TrackerConfig{
		SensorOrientation: OrientationDefault,
		ProcessingMode:    ProcessingModeGPU,
		GPUDeviceID:       0,
	}
}

// calibrationBlobSize is an upper bound on the native k4a_calibration_t
// struct, so a probe calibration can be passed by pointer without knowing
// the exact native layout here.
const calibrationBlobSize = 4096

// Calibration carries a sensor calibration opaquely across the boundary.
// Real calibrations come from the sensor API; the gate itself only ever
// needs the zeroed probe calibration.
type Calibration struct {
	raw []byte
}

// CalibrationFromRaw wraps a calibration blob obtained from the sensor API.
func CalibrationFromRaw(raw []byte) *Calibration {
	return &Calibration{raw: raw}
}

// ProbeCalibration returns the zero-valued calibration used only to prove
// the runtime loads.
func ProbeCalibration() *Calibration {
	return &Calibration{raw: make([]byte, calibrationBlobSize)}
}

// Handle is an opaque native tracker handle. Zero is never a valid handle.
type Handle uintptr

// Runtime is the native boundary. Implementations must be safe for use from
// a single goroutine at a time; the loader serializes all calls.
type Runtime interface {
	// LoadSensorRuntime force-loads the sensor DLL. The tracker DLL has an
	// implicit load-time dependency on it, so this must happen before the
	// first CreateTracker.
	LoadSensorRuntime() error

	// CreateTracker loads the tracker runtime if needed and creates a
	// tracker. The model file is resolved relative to the process working
	// directory, which the caller must have pinned beforehand.
	CreateTracker(cal *Calibration, cfg TrackerConfig) (Handle, error)

	// DestroyTracker releases a handle returned by CreateTracker.
	DestroyTracker(h Handle)
}

// NewRuntime returns the platform's Runtime implementation.
func NewRuntime() Runtime {
	return newRuntime()
}
