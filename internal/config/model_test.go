package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/trackgate/internal/runtimedir"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	m := Default()
	assert.Equal(t, runtimedir.DefaultModelFile, m.Runtime.ModelFile)
	assert.Equal(t, runtimedir.DefaultSDKDir, m.Runtime.SDKDir)
	assert.Empty(t, m.Runtime.SearchPaths)
	assert.Equal(t, ProcessingGPU, m.Tracker.ProcessingMode)
	assert.Equal(t, OrientationDefault, m.Tracker.SensorOrientation)
	assert.NoError(t, m.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Model)
		wantErr string
	}{
		{"valid cpu mode", func(m *Model) { m.Tracker.ProcessingMode = ProcessingCPU }, ""},
		{"valid flip orientation", func(m *Model) { m.Tracker.SensorOrientation = OrientationFlip180 }, ""},
		{"bad processing mode", func(m *Model) { m.Tracker.ProcessingMode = "tpu" }, "invalid processing_mode"},
		{"bad orientation", func(m *Model) { m.Tracker.SensorOrientation = "upside-down" }, "invalid sensor_orientation"},
		{"negative device id", func(m *Model) { m.Tracker.GPUDeviceID = -1 }, "invalid gpu_device_id"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := Default()
			tt.mutate(m)
			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
