package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.HTTPServer.Port)
	require.Equal(t, "pair", cfg.Provider.Kind)
	require.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	require.Equal(t, 300*time.Millisecond, cfg.Session.Debounce)
	require.False(t, cfg.Stub.Embedded)
}

func TestOverrides(t *testing.T) {
	t.Setenv("XR_PROVIDER", "lookup")
	t.Setenv("XR_TIMEOUT", "3s")
	t.Setenv("SESSION_DEBOUNCE", "350ms")
	t.Setenv("XR_STUB_PORT", "9000")

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, "lookup", cfg.Provider.Kind)
	require.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	require.Equal(t, 350*time.Millisecond, cfg.Session.Debounce)
	require.Equal(t, "http://localhost:9000/host", cfg.StubURL())
}

func TestStubURLPerKind(t *testing.T) {
	cfg := &Config{Stub: Stub{Host: "h", Port: 1}, Provider: Provider{APIKey: "k"}}

	for kind, want := range map[string]string{
		"pair":   "http://h:1/v6",
		"amount": "http://h:1/fastforex",
		"lookup": "http://h:1/host",
		"latest": "http://h:1/v6/k",
	} {
		cfg.Provider.Kind = kind
		require.Equal(t, want, cfg.StubURL(), kind)
	}
}
