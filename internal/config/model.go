package config

import (
	"fmt"

	"github.com/vk/trackgate/internal/runtimedir"
)

// Processing mode names accepted in configuration.
const (
	ProcessingGPU = "gpu"
	ProcessingCPU = "cpu"
)

// Sensor orientation names accepted in configuration.
const (
	OrientationDefault            = "default"
	OrientationClockwise90        = "clockwise90"
	OrientationCounterClockwise90 = "counterclockwise90"
	OrientationFlip180            = "flip180"
)

// Model is the unified configuration for the gate and the default tracker
// settings.
type Model struct {
	Runtime RuntimeConfig
	Tracker TrackerConfig
}

// RuntimeConfig adjusts where and what the runtime directory probe looks for.
type RuntimeConfig struct {
	// ModelFile overrides the neural network model filename, e.g. the lite
	// model "dnn_model_2_0_lite.onnx". Empty selects the default model.
	ModelFile string
	// SearchPaths are extra candidate directories, probed after the
	// standard locations and before the SDK install directory.
	SearchPaths []string
	// SDKDir overrides the conventional SDK install directory.
	SDKDir string
}

// TrackerConfig is the default native tracker configuration, used for the
// load probe and as the baseline for real tracker creation.
type TrackerConfig struct {
	ProcessingMode    string
	GPUDeviceID       int
	SensorOrientation string
}

// Default returns the model with every field at its working default.
func Default() *Model {
	return &Model{
		Runtime: RuntimeConfig{
			ModelFile: runtimedir.DefaultModelFile,
			SDKDir:    runtimedir.DefaultSDKDir,
		},
		Tracker: TrackerConfig{
			ProcessingMode:    ProcessingGPU,
			GPUDeviceID:       0,
			SensorOrientation: OrientationDefault,
		},
	}
}

// Validate rejects values no component downstream can interpret.
func (m *Model) Validate() error {
	switch m.Tracker.ProcessingMode {
	case ProcessingGPU, ProcessingCPU:
	default:
		return fmt.Errorf("invalid processing_mode %q: must be %q or %q", m.Tracker.ProcessingMode, ProcessingGPU, ProcessingCPU)
	}
	switch m.Tracker.SensorOrientation {
	case OrientationDefault, OrientationClockwise90, OrientationCounterClockwise90, OrientationFlip180:
	default:
		return fmt.Errorf("invalid sensor_orientation %q", m.Tracker.SensorOrientation)
	}
	if m.Tracker.GPUDeviceID < 0 {
		return fmt.Errorf("invalid gpu_device_id %d: must not be negative", m.Tracker.GPUDeviceID)
	}
	return nil
}
