// Package loader performs the one-time, thread-safe load of the body
// tracking runtime. Success is memoized for the life of the process; failure
// is not, so a later call retries from scratch against an environment that
// may have changed (a toolkit installed mid-session, files copied in).
package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/trackgate/internal/avail"
	"github.com/vk/trackgate/internal/ctxlog"
	"github.com/vk/trackgate/internal/native"
	"github.com/vk/trackgate/internal/reason"
	"github.com/vk/trackgate/internal/runtimedir"
	"github.com/vk/trackgate/internal/workdir"
)

// Loader owns the process-scoped resolution state. Construct one per
// process in production; tests construct isolated instances freely.
type Loader struct {
	prober      *runtimedir.Prober
	evaluator   *avail.Evaluator
	runtime     native.Runtime
	probeConfig native.TrackerConfig

	// mu guards resolvedDir and serializes the whole resolve-and-load
	// critical section, including the working directory override. Callers
	// arriving mid-attempt block here until the attempt finishes.
	mu          sync.Mutex
	resolvedDir string
}

// New wires a Loader. The evaluator is only consulted on failure, to turn a
// bare native error into a precise diagnostic.
func New(prober *runtimedir.Prober, evaluator *avail.Evaluator, rt native.Runtime, probeConfig native.TrackerConfig) *Loader {
	return &Loader{
		prober:      prober,
		evaluator:   evaluator,
		runtime:     rt,
		probeConfig: probeConfig,
	}
}

// EnsureInitialized resolves the runtime directory and proves the native
// runtime loads. The first successful call caches the resolved directory;
// every later call returns immediately without touching the filesystem. A
// failed call leaves no state behind.
func (l *Loader) EnsureInitialized(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.resolvedDir != "" {
		return nil
	}
	return l.initLocked(ctx)
}

// ResolvedDir returns the cached runtime directory, if initialization has
// succeeded.
func (l *Loader) ResolvedDir() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolvedDir, l.resolvedDir != ""
}

// CreateTracker creates a real tracker, initializing first if no call has
// succeeded yet. The native loader resolves the model file relative to the
// working directory, so creation runs under the same directory override and
// the same lock as the initialization probe.
func (l *Loader) CreateTracker(ctx context.Context, cal *native.Calibration, cfg native.TrackerConfig) (native.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.resolvedDir == "" {
		if err := l.initLocked(ctx); err != nil {
			return 0, err
		}
	}

	var handle native.Handle
	err := workdir.In(l.resolvedDir, func() error {
		h, err := l.runtime.CreateTracker(cal, cfg)
		if err != nil {
			return err
		}
		handle = h
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", reason.ErrNativeLoadFailed, err)
	}
	return handle, nil
}

// DestroyTracker releases a handle from CreateTracker.
func (l *Loader) DestroyTracker(h native.Handle) {
	l.runtime.DestroyTracker(h)
}

// initLocked runs one resolution-and-load attempt. Caller holds l.mu.
func (l *Loader) initLocked(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	dir, err := l.prober.Probe(ctx)
	if err != nil {
		// The evaluator usually knows a more specific cause (unsupported
		// platform, missing toolkit) than "files not found".
		if everr := l.evaluator.Evaluate(ctx); everr != nil {
			return everr
		}
		return err
	}
	logger.Debug("Runtime directory resolved.", "dir", dir)

	// The tracker DLL has an implicit load-time dependency on the sensor
	// DLL; load it first so the tracker load cannot fail on that edge.
	if err := l.runtime.LoadSensorRuntime(); err != nil {
		return fmt.Errorf("%w: %v", reason.ErrNativeLoadFailed, err)
	}

	// Load-and-discard probe: create a tracker with the minimal config just
	// to prove the runtime loads, then release it immediately.
	err = workdir.In(dir, func() error {
		h, err := l.runtime.CreateTracker(native.ProbeCalibration(), l.probeConfig)
		if err != nil {
			return err
		}
		l.runtime.DestroyTracker(h)
		return nil
	})
	if err != nil {
		logger.Debug("Native load probe failed.", "dir", dir, "error", err)
		// The raw native error is rarely actionable. Re-run the cheap
		// checks; if one of them fails now, its reason is the better answer.
		if everr := l.evaluator.Evaluate(ctx); everr != nil {
			return everr
		}
		return fmt.Errorf("%w: %v", reason.ErrNativeLoadFailed, err)
	}

	l.resolvedDir = dir
	logger.Info("Body tracking runtime initialized.", "dir", dir)
	return nil
}
