// Package cuda locates a CUDA toolkit installation of the exact version the
// body tracking runtime links against, and verifies the cuDNN companion
// library beside it. Resolution is recomputed on every call: the toolkit is
// identified from environment variables and file metadata that can change
// between calls, so nothing here is cached.
package cuda

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/trackgate/internal/ctxlog"
	"github.com/vk/trackgate/internal/reason"
)

const (
	// RuntimeLibrary is the CUDA runtime DLL whose embedded version metadata
	// identifies the toolkit version of a PATH entry.
	RuntimeLibrary = "cudart64_100.dll"

	// CompanionLibrary is the cuDNN DLL that must sit beside the matched
	// toolkit binaries.
	CompanionLibrary = "cudnn64_7.dll"

	// RequiredVersion is the exact major.minor toolkit version the tracker
	// runtime was built against.
	RequiredVersion = "10.0"

	versionedEnvVar = "CUDA_PATH_V10_0"
	genericEnvVar   = "CUDA_PATH"
	searchPathVar   = "PATH"
)

// invalidPathChars are rejected in env-supplied paths before any stat call.
const invalidPathChars = "<>\"|?*\x00"

// Resolver finds the toolkit bin directory. All of its inputs are injectable
// so tests can model arbitrary installations; NewResolver wires the real ones.
type Resolver struct {
	// Env looks up an environment variable, empty when unset.
	Env func(key string) string
	// Stat inspects a path, with os.Stat semantics.
	Stat func(path string) (os.FileInfo, error)
	// FileVersion reads the embedded version string of a native library.
	FileVersion func(path string) (string, error)
}

// NewResolver returns a Resolver over the real environment, filesystem and
// version metadata reader.
func NewResolver() *Resolver {
	return &Resolver{
		Env:         os.Getenv,
		Stat:        os.Stat,
		FileVersion: readFileVersion,
	}
}

// ResolveBinPath locates the toolkit bin directory holding a RuntimeLibrary
// of exactly RequiredVersion.
//
// The versioned env var wins over the generic one; the resolved root must be
// a valid, existing directory. Every PATH entry that lies under the root and
// exists on disk is then examined in PATH order, and the first entry whose
// runtime library reports the required version is returned. First match wins;
// later entries are never consulted.
//
// When some entry carried the library at a different version, the error wraps
// reason.ErrToolkitWrongVersion; otherwise reason.ErrToolkitNotFound. The
// distinction is part of the contract: "installed but wrong" points the user
// at a different fix than "not installed".
func (r *Resolver) ResolveBinPath(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)

	root := r.Env(versionedEnvVar)
	if root == "" {
		root = r.Env(genericEnvVar)
	}
	if root == "" {
		return "", fmt.Errorf("%w: neither %s nor %s is set", reason.ErrToolkitNotFound, versionedEnvVar, genericEnvVar)
	}
	if strings.ContainsAny(root, invalidPathChars) {
		return "", fmt.Errorf("%w: toolkit root %q contains invalid path characters", reason.ErrToolkitNotFound, root)
	}
	if !r.dirExists(root) {
		return "", fmt.Errorf("%w: toolkit root %s does not exist", reason.ErrToolkitNotFound, root)
	}
	logger.Debug("Resolved toolkit root.", "root", root)

	wrongVersion := ""
	for _, entry := range filepath.SplitList(r.Env(searchPathVar)) {
		if entry == "" || strings.ContainsAny(entry, invalidPathChars) {
			continue
		}
		if !isSubdir(root, entry) || !r.dirExists(entry) {
			continue
		}
		lib := filepath.Join(entry, RuntimeLibrary)
		if !r.fileExists(lib) {
			continue
		}
		version, err := r.FileVersion(lib)
		if err != nil {
			logger.Debug("Could not read library version metadata.", "path", lib, "error", err)
			continue
		}
		if majorMinor(version) == RequiredVersion {
			logger.Debug("Matched toolkit bin directory.", "dir", entry, "version", version)
			return entry, nil
		}
		logger.Debug("Toolkit entry has wrong version.", "dir", entry, "version", version)
		if wrongVersion == "" {
			wrongVersion = version
		}
	}

	if wrongVersion != "" {
		return "", fmt.Errorf("%w: found %s version %s, version %s is required",
			reason.ErrToolkitWrongVersion, RuntimeLibrary, wrongVersion, RequiredVersion)
	}
	return "", fmt.Errorf("%w: no entry of %s under %s contains %s version %s",
		reason.ErrToolkitNotFound, searchPathVar, root, RuntimeLibrary, RequiredVersion)
}

// CheckCompanionLibrary verifies that the cuDNN DLL sits in the resolved
// toolkit bin directory. Pure existence check.
func (r *Resolver) CheckCompanionLibrary(binPath string) error {
	if !r.fileExists(filepath.Join(binPath, CompanionLibrary)) {
		return fmt.Errorf("%w: %s not found in %s", reason.ErrCompanionLibraryMissing, CompanionLibrary, binPath)
	}
	return nil
}

func (r *Resolver) dirExists(path string) bool {
	info, err := r.Stat(path)
	return err == nil && info.IsDir()
}

func (r *Resolver) fileExists(path string) bool {
	info, err := r.Stat(path)
	return err == nil && !info.IsDir()
}

// isSubdir reports whether child lies inside root. Comparison is
// case-insensitive because the paths come from Windows env vars.
func isSubdir(root, child string) bool {
	rootClean := strings.ToLower(filepath.Clean(root))
	childClean := strings.ToLower(filepath.Clean(child))
	if childClean == rootClean {
		return false
	}
	return strings.HasPrefix(childClean, rootClean+string(filepath.Separator))
}

// majorMinor truncates a dotted version string to its first two components.
func majorMinor(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
