package trackgate

import "github.com/vk/trackgate/internal/reason"

// The failure taxonomy. Every error returned by this package wraps exactly
// one of these, so callers can branch with errors.Is while the message
// carries the specific diagnostic.
var (
	ErrPlatformUnsupported     = reason.ErrPlatformUnsupported
	ErrToolkitNotFound         = reason.ErrToolkitNotFound
	ErrToolkitWrongVersion     = reason.ErrToolkitWrongVersion
	ErrCompanionLibraryMissing = reason.ErrCompanionLibraryMissing
	ErrRuntimeFilesMissing     = reason.ErrRuntimeFilesMissing
	ErrNativeLoadFailed        = reason.ErrNativeLoadFailed
)
