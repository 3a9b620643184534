package doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/trackgate"
)

func TestRunJSONReport(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := Run(context.Background(), &Config{JSON: true, LogLevel: "error", LogFormat: "text"}, out)
	// Whether this host can run the tracker depends on the machine; either
	// way the report must be complete and well-formed.
	if err != nil {
		require.True(t, errors.Is(err, ErrUnavailable), "unexpected error: %v", err)
	}

	var report trackgate.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Len(t, report.Checks, 4)
	assert.Equal(t, err == nil, report.OK)
}

func TestRunTextReport(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := Run(context.Background(), &Config{LogLevel: "error", LogFormat: "text"}, out)
	if err != nil {
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, out.String(), "unavailable")
	} else {
		assert.Contains(t, out.String(), "available")
	}
	assert.Contains(t, out.String(), "platform")
}

func TestRunBadConfigFile(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg := &Config{
		ConfigPath: filepath.Join(t.TempDir(), "missing.hcl"),
		LogLevel:   "error",
		LogFormat:  "text",
	}
	err := Run(context.Background(), cfg, out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
