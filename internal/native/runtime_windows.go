//go:build windows

package native

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// trackerConfiguration is the exact native k4abt_tracker_configuration_t
// layout. It is larger than 8 bytes, so the Win64 ABI passes it by hidden
// reference.
type trackerConfiguration struct {
	sensorOrientation int32
	processingMode    int32
	gpuDeviceID       int32
}

type winRuntime struct {
	sensor         *windows.LazyDLL
	installedCount *windows.LazyProc
	tracker        *windows.LazyDLL
	trackerCreate  *windows.LazyProc
	trackerDestroy *windows.LazyProc
}

// newRuntime wires lazy bindings. The DLLs resolve through the standard
// Windows search order, which includes the working directory; that is the
// behavior the loader's directory override relies on.
func newRuntime() Runtime {
	sensor := windows.NewLazyDLL("k4a.dll")
	tracker := windows.NewLazyDLL("k4abt.dll")
	return &winRuntime{
		sensor:         sensor,
		installedCount: sensor.NewProc("k4a_device_get_installed_count"),
		tracker:        tracker,
		trackerCreate:  tracker.NewProc("k4abt_tracker_create"),
		trackerDestroy: tracker.NewProc("k4abt_tracker_destroy"),
	}
}

func (r *winRuntime) LoadSensorRuntime() error {
	if err := r.sensor.Load(); err != nil {
		return fmt.Errorf("loading %s: %w", r.sensor.Name, err)
	}
	// A harmless call that guarantees the DLL is fully initialized.
	if err := r.installedCount.Find(); err != nil {
		return fmt.Errorf("resolving k4a_device_get_installed_count: %w", err)
	}
	r.installedCount.Call()
	return nil
}

func (r *winRuntime) CreateTracker(cal *Calibration, cfg TrackerConfig) (Handle, error) {
	if err := r.tracker.Load(); err != nil {
		return 0, fmt.Errorf("loading %s: %w", r.tracker.Name, err)
	}
	if err := r.trackerCreate.Find(); err != nil {
		return 0, fmt.Errorf("resolving k4abt_tracker_create: %w", err)
	}

	nativeCfg := trackerConfiguration{
		sensorOrientation: int32(cfg.SensorOrientation),
		processingMode:    int32(cfg.ProcessingMode),
		gpuDeviceID:       cfg.GPUDeviceID,
	}
	var handle uintptr
	ret, _, _ := r.trackerCreate.Call(
		uintptr(unsafe.Pointer(&cal.raw[0])),
		uintptr(unsafe.Pointer(&nativeCfg)),
		uintptr(unsafe.Pointer(&handle)),
	)
	if ret != 0 || handle == 0 {
		return 0, fmt.Errorf("k4abt_tracker_create returned %d", ret)
	}
	return Handle(handle), nil
}

func (r *winRuntime) DestroyTracker(h Handle) {
	if h == 0 {
		return
	}
	if err := r.trackerDestroy.Find(); err != nil {
		return
	}
	r.trackerDestroy.Call(uintptr(h))
}
