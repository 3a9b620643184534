package trackgate

import (
	"context"
	"sync"
)

// The package-level functions operate on one shared Gate, constructed on
// first use with defaults and kept for the life of the process.
var (
	defaultOnce sync.Once
	defaultGate *Gate
)

// Default returns the shared process-wide Gate.
func Default() *Gate {
	defaultOnce.Do(func() {
		// Default construction reads no config file and cannot fail.
		defaultGate, _ = New()
	})
	return defaultGate
}

// IsAvailable reports whether the tracking runtime can be used, with a
// human-readable reason on failure. See Gate.IsAvailable.
func IsAvailable(ctx context.Context) (bool, string) {
	return Default().IsAvailable(ctx)
}

// EnsureInitialized performs the one-time runtime load on the shared Gate.
// See Gate.EnsureInitialized.
func EnsureInitialized(ctx context.Context) error {
	return Default().EnsureInitialized(ctx)
}
