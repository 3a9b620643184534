// Package runtimedir searches an ordered list of candidate directories for
// the complete set of native files the body tracker loads at runtime. A
// candidate either has every required file or it is rejected; there is no
// partial credit, because the native loader would fail midway otherwise.
package runtimedir

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
	// TrackerLibrary is the body tracking runtime DLL.
	TrackerLibrary = "k4abt.dll"
	// InferenceEngine is the neural network runtime the tracker loads.
	InferenceEngine = "onnxruntime.dll"
	// DefaultModelFile is the tracker's neural network model data.
	DefaultModelFile = "dnn_model_2_0.onnx"

	// DefaultSDKDir is the conventional install location of the body
	// tracking SDK's redistributable binaries.
	DefaultSDKDir = `C:\Program Files\Azure Kinect Body Tracking SDK\tools`
)

// RequiredFiles returns the artifact set a runtime directory must contain.
// modelFile overrides the default model (e.g. the lite model); empty selects
// DefaultModelFile.
func RequiredFiles(modelFile string) []string {
	if modelFile == "" {
		modelFile = DefaultModelFile
	}
	return []string{TrackerLibrary, InferenceEngine, modelFile}
}

// Location is one candidate directory plus the files that must exist
// directly inside it.
type Location struct {
	// Name is the human label used in diagnostics ("current directory", ...).
	Name string
	// Dir is the directory to inspect.
	Dir string
	// Files are the required artifact filenames.
	Files []string
}

// Candidate names a directory that is computed lazily: some candidates need
// a syscall (cwd, executable path) that should only run if the search gets
// that far.
type Candidate struct {
	Name string
	Dir  func() (string, error)
}

// Prober evaluates candidates in order and returns the first complete one.
type Prober struct {
	// Stat inspects a path, with os.Stat semantics. Injectable for tests.
	Stat func(path string) (os.FileInfo, error)
	// Files is the required artifact set, normally RequiredFiles(...).
	Files []string
	// Candidates is the ordered search list, normally DefaultCandidates(...).
	Candidates []Candidate
}

// NewProber returns a Prober over the real filesystem with the standard
// search order. extraDirs are additional configured locations, consulted
// after the library's own directory but before the SDK install directory.
// sdkDir overrides DefaultSDKDir when non-empty.
func NewProber(modelFile string, extraDirs []string, sdkDir string) *Prober {
	return &Prober{
		Stat:       os.Stat,
		Files:      RequiredFiles(modelFile),
		Candidates: DefaultCandidates(extraDirs, sdkDir),
	}
}

// DefaultCandidates builds the standard ordered search list:
//
//  1. the process current working directory,
//  2. the application directory (where the executable lives),
//  3. the library directory (the executable path with symlinks resolved),
//  4. any configured extra directories,
//  5. the SDK install directory.
//
// Duplicate directories are skipped at probe time, so 2 and 3 collapse when
// the executable is not a symlink.
func DefaultCandidates(extraDirs []string, sdkDir string) []Candidate {
	if sdkDir == "" {
		sdkDir = DefaultSDKDir
	}
	candidates := []Candidate{
		{Name: "current directory", Dir: os.Getwd},
		{Name: "application directory", Dir: executableDir},
		{Name: "library directory", Dir: resolvedExecutableDir},
	}
	for _, dir := range extraDirs {
		candidates = append(candidates, fixedCandidate("configured directory", dir))
	}
	candidates = append(candidates, fixedCandidate("SDK install directory", sdkDir))
	return candidates
}

func fixedCandidate(name, dir string) Candidate {
	return Candidate{Name: name, Dir: func() (string, error) { return dir, nil }}
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// resolvedExecutableDir follows symlinks on the executable path. It differs
// from executableDir when the application is launched through a symlink and
// the runtime files sit beside the real binary.
func resolvedExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(resolved), nil
}

// Probe walks the candidates in order and returns the first directory that
// exists and contains every required file. Evaluation is lazy: once a
// candidate matches, later ones are never computed. When nothing matches,
// the error wraps reason.ErrRuntimeFilesMissing and names every candidate
// that was searched in one combined message.
func (p *Prober) Probe(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)

	var searched []string
	seen := make(map[string]struct{})
	for _, candidate := range p.Candidates {
		dir, err := candidate.Dir()
		if err != nil {
			logger.Debug("Skipping unreadable candidate.", "candidate", candidate.Name, "error", err)
			continue
		}
		key := strings.ToLower(filepath.Clean(dir))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		loc := Location{Name: candidate.Name, Dir: dir, Files: p.Files}
		if missing := loc.missing(p.Stat); len(missing) == 0 {
			logger.Debug("Runtime directory found.", "candidate", candidate.Name, "dir", dir)
			return dir, nil
		} else {
			logger.Debug("Candidate incomplete.", "candidate", candidate.Name, "dir", dir, "missing", missing)
		}
		searched = append(searched, fmt.Sprintf("%s (%s)", candidate.Name, dir))
	}

	return "", fmt.Errorf("%w: %s not found together in any searched location: %s",
		reason.ErrRuntimeFilesMissing, strings.Join(p.Files, ", "), strings.Join(searched, ", "))
}

// missing returns the required files absent from the location. A missing
// directory counts every file as missing.
func (l Location) missing(stat func(string) (os.FileInfo, error)) []string {
	if info, err := stat(l.Dir); err != nil || !info.IsDir() {
		return l.Files
	}
	var missing []string
	for _, name := range l.Files {
		info, err := stat(filepath.Join(l.Dir, name))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
		}
	}
	return missing
}
