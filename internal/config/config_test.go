package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg.Scan)
	assert.Equal(t, 100, cfg.Scan.Concurrency)
	assert.Equal(t, time.Second, cfg.Scan.ScanTimeout())
	assert.Equal(t, "1-1024", cfg.Scan.DefaultPorts)
	require.NotNil(t, cfg.ExternalIP)
	require.Len(t, cfg.ExternalIP.Endpoints, 2)
	assert.Contains(t, cfg.ExternalIP.Endpoints[0], "ipify")
}

func TestLoadBytes(t *testing.T) {
	hcl := `
log {
  level = "debug"
}

scan {
  timeout     = "250ms"
  concurrency = 32
}
`
	cfg, err := LoadBytes("test.hcl", []byte(hcl))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 32, cfg.Scan.Concurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.Scan.ScanTimeout())

	// Unspecified blocks fall back to defaults
	require.NotNil(t, cfg.Speedtest)
	assert.Equal(t, 2*time.Minute, cfg.Speedtest.MeasureTimeout())
}

func TestLoadBytesEnvInterpolation(t *testing.T) {
	t.Setenv("NA_TEST_DB_DIR", "/tmp/na-history")
	hcl := `
history {
  path = "${env.NA_TEST_DB_DIR}/history.db"
}
`
	cfg, err := LoadBytes("test.hcl", []byte(hcl))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/na-history/history.db", cfg.History.Path)
}

func TestLoadBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		hcl  string
	}{
		{"bad syntax", `scan {`},
		{"bad duration", `scan { timeout = "abc" }`},
		{"bad level", `log { level = "loud" }`},
		{"negative concurrency", `scan { concurrency = -1 }`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBytes("test.hcl", []byte(tc.hcl))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile("/nonexistent/netanalyzer.hcl")
	require.NoError(t, err)
	assert.Equal(t, Default().Scan.Concurrency, cfg.Scan.Concurrency)
}
