package reason

import "errors"

// The gate's failure taxonomy. Every check wraps one of these sentinels with
// a human-readable detail message, so callers can branch with errors.Is while
// users still get a specific diagnostic.
var (
	// ErrPlatformUnsupported reports a host OS or process that can never run
	// the tracking runtime.
	ErrPlatformUnsupported = errors.New("platform unsupported")

	// ErrToolkitNotFound reports that no CUDA installation of any version
	// could be located.
	ErrToolkitNotFound = errors.New("cuda toolkit not found")

	// ErrToolkitWrongVersion reports that a CUDA runtime library was found
	// but carries the wrong version. Deliberately distinct from
	// ErrToolkitNotFound: "installed but wrong" is the more actionable
	// diagnosis and must win when both could apply.
	ErrToolkitWrongVersion = errors.New("cuda toolkit has wrong version")

	// ErrCompanionLibraryMissing reports a resolved toolkit that lacks the
	// cuDNN library beside its binaries.
	ErrCompanionLibraryMissing = errors.New("cudnn library missing")

	// ErrRuntimeFilesMissing reports that no candidate directory contains
	// the complete set of tracker runtime files.
	ErrRuntimeFilesMissing = errors.New("body tracking runtime files missing")

	// ErrNativeLoadFailed reports that the files were found but the native
	// runtime refused to load.
	ErrNativeLoadFailed = errors.New("native runtime failed to load")
)
