// Package trackgate decides whether the Azure Kinect Body Tracking native
// runtime can load on this host, and performs the one-time, thread-safe load
// when asked. Availability checks are pure and repeatable; initialization is
// memoized on success and retryable on failure.
package trackgate

import (
	"context"

	"github.com/vk/trackgate/internal/avail"
	"github.com/vk/trackgate/internal/config"
	"github.com/vk/trackgate/internal/cuda"
	"github.com/vk/trackgate/internal/hclconfig"
	"github.com/vk/trackgate/internal/hostcheck"
	"github.com/vk/trackgate/internal/loader"
	"github.com/vk/trackgate/internal/native"
	"github.com/vk/trackgate/internal/runtimedir"
)

// Report is the per-check availability breakdown, as produced for diagnostic
// tooling. See IsAvailable for the plain yes/no decision.
type Report = avail.Report

// Gate is an isolated instance of the runtime gate. Most applications use
// the package-level functions, which share one process-wide Gate; tests and
// embedders that need isolated state construct their own.
type Gate struct {
	evaluator *avail.Evaluator
	loader    *loader.Loader
	defaults  TrackerConfig
}

type options struct {
	configPath  string
	model       *config.Model
	modelFile   string
	searchPaths []string
	sdkDir      string
	runtime     native.Runtime
}

// Option customizes Gate construction.
type Option func(*options)

// WithConfigFile loads overrides from an HCL configuration file.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configPath = path }
}

// WithModelFile overrides the neural network model filename the runtime
// directory must contain, e.g. the lite model "dnn_model_2_0_lite.onnx".
func WithModelFile(name string) Option {
	return func(o *options) { o.modelFile = name }
}

// WithSearchPaths adds candidate runtime directories, probed after the
// standard locations and before the SDK install directory.
func WithSearchPaths(dirs ...string) Option {
	return func(o *options) { o.searchPaths = append(o.searchPaths, dirs...) }
}

// WithSDKDir overrides the conventional SDK install directory.
func WithSDKDir(dir string) Option {
	return func(o *options) { o.sdkDir = dir }
}

// withModel injects a prebuilt configuration model, bypassing file loading.
func withModel(m *config.Model) Option {
	return func(o *options) { o.model = m }
}

// withRuntime injects a native runtime implementation. Tests only.
func withRuntime(rt native.Runtime) Option {
	return func(o *options) { o.runtime = rt }
}

// New constructs a Gate. Construction only reads configuration; no
// filesystem probing or native loading happens until the Gate is used.
func New(opts ...Option) (*Gate, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	model := o.model
	if model == nil {
		var err error
		model, err = hclconfig.NewLoader().Load(context.Background(), o.configPath)
		if err != nil {
			return nil, err
		}
	}
	if o.modelFile != "" {
		model.Runtime.ModelFile = o.modelFile
	}
	if len(o.searchPaths) > 0 {
		model.Runtime.SearchPaths = append(model.Runtime.SearchPaths, o.searchPaths...)
	}
	if o.sdkDir != "" {
		model.Runtime.SDKDir = o.sdkDir
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	defaults, err := trackerConfigFromModel(model.Tracker)
	if err != nil {
		return nil, err
	}

	prober := runtimedir.NewProber(model.Runtime.ModelFile, model.Runtime.SearchPaths, model.Runtime.SDKDir)
	evaluator := avail.New(hostcheck.New(), cuda.NewResolver(), prober)

	rt := o.runtime
	if rt == nil {
		rt = native.NewRuntime()
	}

	return &Gate{
		evaluator: evaluator,
		loader:    loader.New(prober, evaluator, rt, defaults.native()),
		defaults:  defaults,
	}, nil
}

// newGate assembles a Gate from prebuilt parts. Tests only.
func newGate(evaluator *avail.Evaluator, ld *loader.Loader, defaults TrackerConfig) *Gate {
	return &Gate{evaluator: evaluator, loader: ld, defaults: defaults}
}

// IsAvailable reports whether the tracking runtime can be used on this host.
// On failure the returned reason is a human-readable diagnostic. The check
// is read-only and caches nothing; it may be called repeatedly and
// concurrently, and its answer tracks environment changes between calls.
func (g *Gate) IsAvailable(ctx context.Context) (bool, string) {
	if err := g.evaluator.Evaluate(ctx); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// CheckAvailable is IsAvailable with a typed error, for callers that branch
// on the failure taxonomy with errors.Is.
func (g *Gate) CheckAvailable(ctx context.Context) error {
	return g.evaluator.Evaluate(ctx)
}

// Availability runs every check and returns the per-check breakdown.
func (g *Gate) Availability(ctx context.Context) Report {
	return g.evaluator.Report(ctx)
}

// EnsureInitialized resolves the runtime directory and proves the native
// runtime loads. The first success is cached for the life of the Gate;
// later calls return immediately. Failures are not cached, so a retry sees
// the current environment.
func (g *Gate) EnsureInitialized(ctx context.Context) error {
	return g.loader.EnsureInitialized(ctx)
}

// RuntimeDir returns the resolved runtime directory once initialization has
// succeeded.
func (g *Gate) RuntimeDir() (string, bool) {
	return g.loader.ResolvedDir()
}

// DefaultTrackerConfig returns the configured tracker defaults.
func (g *Gate) DefaultTrackerConfig() TrackerConfig {
	return g.defaults
}
