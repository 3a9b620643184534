package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Empty(t, cfg.ConfigPath)
		assert.False(t, cfg.JSON)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse([]string{
			"--config", "trackgate.hcl",
			"--json",
			"--log-format", "JSON",
			"--log-level", "DEBUG",
		}, out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "trackgate.hcl", cfg.ConfigPath)
		assert.True(t, cfg.JSON)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("help requests clean exit", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		_, shouldExit, err := Parse([]string{"-h"}, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--bogus"}, out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--log-format", "xml"}, out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--log-level", "verbose"}, out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-level")
	})
}
