package trackgate

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/trackgate/internal/config"
	"github.com/vk/trackgate/internal/loader"
	"github.com/vk/trackgate/internal/native"
)

// ProcessingMode selects where tracker inference runs.
type ProcessingMode int32

const (
	ProcessingModeGPU ProcessingMode = ProcessingMode(native.ProcessingModeGPU)
	ProcessingModeCPU ProcessingMode = ProcessingMode(native.ProcessingModeCPU)
)

// SensorOrientation tells the tracker how the sensor is mounted.
type SensorOrientation int32

const (
	OrientationDefault            SensorOrientation = SensorOrientation(native.OrientationDefault)
	OrientationClockwise90        SensorOrientation = SensorOrientation(native.OrientationClockwise90)
	OrientationCounterClockwise90 SensorOrientation = SensorOrientation(native.OrientationCounterClockwise90)
	OrientationFlip180            SensorOrientation = SensorOrientation(native.OrientationFlip180)
)

// TrackerConfig configures tracker creation.
type TrackerConfig struct {
	ProcessingMode    ProcessingMode
	GPUDeviceID       int32
	SensorOrientation SensorOrientation
}

func (c TrackerConfig) native() native.TrackerConfig {
	return native.TrackerConfig{
		SensorOrientation: native.SensorOrientation(c.SensorOrientation),
		ProcessingMode:    native.ProcessingMode(c.ProcessingMode),
		GPUDeviceID:       c.GPUDeviceID,
	}
}

// trackerConfigFromModel maps configuration names onto the native values.
func trackerConfigFromModel(tc config.TrackerConfig) (TrackerConfig, error) {
	out := TrackerConfig{GPUDeviceID: int32(tc.GPUDeviceID)}
	switch tc.ProcessingMode {
	case config.ProcessingGPU:
		out.ProcessingMode = ProcessingModeGPU
	case config.ProcessingCPU:
		out.ProcessingMode = ProcessingModeCPU
	default:
		return out, fmt.Errorf("unknown processing mode %q", tc.ProcessingMode)
	}
	switch tc.SensorOrientation {
	case config.OrientationDefault:
		out.SensorOrientation = OrientationDefault
	case config.OrientationClockwise90:
		out.SensorOrientation = OrientationClockwise90
	case config.OrientationCounterClockwise90:
		out.SensorOrientation = OrientationCounterClockwise90
	case config.OrientationFlip180:
		out.SensorOrientation = OrientationFlip180
	default:
		return out, fmt.Errorf("unknown sensor orientation %q", tc.SensorOrientation)
	}
	return out, nil
}

// Calibration carries a sensor calibration opaquely to tracker creation.
type Calibration struct {
	n *native.Calibration
}

// CalibrationFromRaw wraps a raw calibration blob obtained from the sensor
// API.
func CalibrationFromRaw(raw []byte) *Calibration {
	return &Calibration{n: native.CalibrationFromRaw(raw)}
}

// Tracker is a live native tracker handle. Frame-level calls live in the
// sensor wrapper; the gate only owns creation and release.
type Tracker struct {
	loader    *loader.Loader
	handle    native.Handle
	closeOnce sync.Once
}

// CreateTracker creates a tracker, lazily initializing the runtime if no
// prior call has done so. The caller owns the returned Tracker and must
// Close it.
func (g *Gate) CreateTracker(ctx context.Context, cal *Calibration, cfg TrackerConfig) (*Tracker, error) {
	handle, err := g.loader.CreateTracker(ctx, cal.n, cfg.native())
	if err != nil {
		return nil, err
	}
	return &Tracker{loader: g.loader, handle: handle}, nil
}

// Close releases the native tracker. Safe to call more than once.
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		t.loader.DestroyTracker(t.handle)
	})
}
