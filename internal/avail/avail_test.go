package avail

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/trackgate/internal/cuda"
	"github.com/vk/trackgate/internal/hostcheck"
	"github.com/vk/trackgate/internal/reason"
	"github.com/vk/trackgate/internal/runtimedir"
)

// testEnv assembles an Evaluator over a synthetic environment where every
// check passes, so individual tests can break exactly one thing.
type testEnv struct {
	host       hostcheck.Host
	env        map[string]string
	versions   map[string]string
	runtimeDir string
}

func newPassingEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	lib := filepath.Join(bin, cuda.RuntimeLibrary)
	require.NoError(t, os.WriteFile(lib, []byte("dll"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(bin, cuda.CompanionLibrary), []byte("dll"), 0o644))

	runtimeDir := t.TempDir()
	for _, name := range runtimedir.RequiredFiles("") {
		require.NoError(t, os.WriteFile(filepath.Join(runtimeDir, name), []byte("x"), 0o644))
	}

	return &testEnv{
		host: hostcheck.Host{OS: "windows", MajorVersion: 10, Is64BitOS: true, Is64BitProcess: true},
		env: map[string]string{
			"CUDA_PATH": root,
			"PATH":      strings.Join([]string{bin}, string(os.PathListSeparator)),
		},
		versions:   map[string]string{lib: "10.0.130.0"},
		runtimeDir: runtimeDir,
	}
}

func (e *testEnv) evaluator() *Evaluator {
	resolver := &cuda.Resolver{
		Env:  func(key string) string { return e.env[key] },
		Stat: os.Stat,
		FileVersion: func(path string) (string, error) {
			if v, ok := e.versions[path]; ok {
				return v, nil
			}
			return "", os.ErrNotExist
		},
	}
	prober := &runtimedir.Prober{
		Stat:  os.Stat,
		Files: runtimedir.RequiredFiles(""),
		Candidates: []runtimedir.Candidate{
			{Name: "current directory", Dir: func() (string, error) { return e.runtimeDir, nil }},
		},
	}
	return New(hostcheck.NewWithHost(e.host), resolver, prober)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		assert.NoError(t, env.evaluator().Evaluate(ctx))
	})

	t.Run("platform failure short-circuits", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		env.host.OS = "linux"
		err := env.evaluator().Evaluate(ctx)
		assert.ErrorIs(t, err, reason.ErrPlatformUnsupported)
	})

	t.Run("toolkit failure wins over later checks", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		env.env["CUDA_PATH"] = ""
		env.runtimeDir = filepath.Join(t.TempDir(), "gone")
		err := env.evaluator().Evaluate(ctx)
		assert.ErrorIs(t, err, reason.ErrToolkitNotFound)
	})

	t.Run("companion failure after toolkit resolves", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		bin := filepath.SplitList(env.env["PATH"])[0]
		require.NoError(t, os.Remove(filepath.Join(bin, cuda.CompanionLibrary)))
		err := env.evaluator().Evaluate(ctx)
		assert.ErrorIs(t, err, reason.ErrCompanionLibraryMissing)
	})

	t.Run("runtime files checked last", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		require.NoError(t, os.Remove(filepath.Join(env.runtimeDir, runtimedir.DefaultModelFile)))
		err := env.evaluator().Evaluate(ctx)
		assert.ErrorIs(t, err, reason.ErrRuntimeFilesMissing)
		assert.ErrorContains(t, err, "any searched location")
	})

	t.Run("evaluation has no side effects", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		ev := env.evaluator()
		for i := 0; i < 10; i++ {
			assert.NoError(t, ev.Evaluate(ctx))
		}
	})
}

func TestReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		report := env.evaluator().Report(ctx)

		want := Report{OK: true, Checks: []CheckResult{
			{Name: CheckPlatform, Status: StatusPass},
			{Name: CheckToolkit, Status: StatusPass},
			{Name: CheckCompanion, Status: StatusPass},
			{Name: CheckRuntimeFiles, Status: StatusPass},
		}}
		if diff := cmp.Diff(want, report); diff != "" {
			t.Fatalf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("checks after the first failure are skipped", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		env.env["CUDA_PATH"] = ""
		report := env.evaluator().Report(ctx)

		want := Report{OK: false, Checks: []CheckResult{
			{Name: CheckPlatform, Status: StatusPass},
			{Name: CheckToolkit, Status: StatusFail},
			{Name: CheckCompanion, Status: StatusSkipped},
			{Name: CheckRuntimeFiles, Status: StatusSkipped},
		}}
		if diff := cmp.Diff(want, report, cmpopts.IgnoreFields(CheckResult{}, "Message")); diff != "" {
			t.Fatalf("report mismatch (-want +got):\n%s", diff)
		}
		assert.Contains(t, report.Checks[1].Message, "CUDA_PATH")
	})

	t.Run("report decision matches Evaluate", func(t *testing.T) {
		t.Parallel()
		env := newPassingEnv(t)
		env.host.Is64BitProcess = false
		ev := env.evaluator()
		assert.Error(t, ev.Evaluate(ctx))
		assert.False(t, ev.Report(ctx).OK)
	})
}
