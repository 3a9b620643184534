package hostcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/trackgate/internal/reason"
)

func supportedHost() Host {
	return Host{OS: "windows", MajorVersion: 10, Is64BitOS: true, Is64BitProcess: true}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Host)
		wantMsg string
	}{
		{
			name:   "supported host passes",
			mutate: func(h *Host) {},
		},
		{
			name:    "wrong os family",
			mutate:  func(h *Host) { h.OS = "linux" },
			wantMsg: "requires Windows",
		},
		{
			name:    "os version too old",
			mutate:  func(h *Host) { h.MajorVersion = 6 },
			wantMsg: "Windows 10 or later",
		},
		{
			name:    "32-bit os",
			mutate:  func(h *Host) { h.Is64BitOS = false },
			wantMsg: "64-bit operating system",
		},
		{
			name:    "32-bit process",
			mutate:  func(h *Host) { h.Is64BitProcess = false },
			wantMsg: "process must be 64-bit",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			host := supportedHost()
			tt.mutate(&host)
			err := NewWithHost(host).Check()

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, reason.ErrPlatformUnsupported))
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	t.Parallel()

	checker := NewWithHost(Host{OS: "darwin"})
	first := checker.Check()
	for i := 0; i < 10; i++ {
		err := checker.Check()
		require.Error(t, err)
		assert.Equal(t, first.Error(), err.Error())
	}
}
