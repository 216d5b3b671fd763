// Package config provides HCL configuration handling for the diagnostic tool.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/P70-ops/netanalyzer/internal/brand"
)

// Config is the root configuration.
type Config struct {
	Log        *LogConfig        `hcl:"log,block"`
	Scan       *ScanConfig       `hcl:"scan,block"`
	Speedtest  *SpeedtestConfig  `hcl:"speedtest,block"`
	ExternalIP *ExternalIPConfig `hcl:"external_ip,block"`
	History    *HistoryConfig    `hcl:"history,block"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
}

// ScanConfig holds port-scan defaults.
type ScanConfig struct {
	Timeout      string `hcl:"timeout,optional"`       // per-port dial timeout
	Concurrency  int    `hcl:"concurrency,optional"`   // max in-flight attempts
	DefaultPorts string `hcl:"default_ports,optional"` // "start-end"

	timeout time.Duration
}

// SpeedtestConfig holds bandwidth measurement settings.
type SpeedtestConfig struct {
	Timeout string `hcl:"timeout,optional"` // whole-measurement deadline

	timeout time.Duration
}

// ExternalIPConfig holds the public-IP echo endpoints, in fallback order.
type ExternalIPConfig struct {
	Endpoints []string `hcl:"endpoints,optional"`
	Timeout   string   `hcl:"timeout,optional"`

	timeout time.Duration
}

// HistoryConfig holds the report history database location.
type HistoryConfig struct {
	Path string `hcl:"path,optional"`
}

// Default returns the configuration used when no config file exists.
// A diagnostic tool must run out of the box on any host.
func Default() *Config {
	cfg := &Config{
		Log:  &LogConfig{Level: "info"},
		Scan: &ScanConfig{Timeout: "1s", Concurrency: 100, DefaultPorts: "1-1024"},
		Speedtest: &SpeedtestConfig{
			Timeout: "120s",
		},
		ExternalIP: &ExternalIPConfig{
			Endpoints: []string{"https://api.ipify.org", "https://ident.me"},
			Timeout:   "5s",
		},
		History: &HistoryConfig{
			Path: filepath.Join(brand.GetDataDir(), "history.db"),
		},
	}
	// Defaults are static and must always validate.
	if err := cfg.Validate(); err != nil {
		panic("invalid built-in defaults: " + err.Error())
	}
	return cfg
}

// Validate fills in missing blocks, applies defaults and parses durations.
func (c *Config) Validate() error {
	def := func() *Config {
		return &Config{
			Log:       &LogConfig{Level: "info"},
			Scan:      &ScanConfig{Timeout: "1s", Concurrency: 100, DefaultPorts: "1-1024"},
			Speedtest: &SpeedtestConfig{Timeout: "120s"},
			ExternalIP: &ExternalIPConfig{
				Endpoints: []string{"https://api.ipify.org", "https://ident.me"},
				Timeout:   "5s",
			},
			History: &HistoryConfig{Path: filepath.Join(brand.GetDataDir(), "history.db")},
		}
	}()

	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}

	if c.Scan == nil {
		c.Scan = def.Scan
	}
	if c.Scan.Timeout == "" {
		c.Scan.Timeout = def.Scan.Timeout
	}
	if c.Scan.Concurrency == 0 {
		c.Scan.Concurrency = def.Scan.Concurrency
	}
	if c.Scan.Concurrency < 0 {
		return fmt.Errorf("scan.concurrency must be positive, got %d", c.Scan.Concurrency)
	}
	if c.Scan.DefaultPorts == "" {
		c.Scan.DefaultPorts = def.Scan.DefaultPorts
	}
	d, err := time.ParseDuration(c.Scan.Timeout)
	if err != nil {
		return fmt.Errorf("scan.timeout: %w", err)
	}
	c.Scan.timeout = d

	if c.Speedtest == nil {
		c.Speedtest = def.Speedtest
	}
	if c.Speedtest.Timeout == "" {
		c.Speedtest.Timeout = def.Speedtest.Timeout
	}
	if d, err = time.ParseDuration(c.Speedtest.Timeout); err != nil {
		return fmt.Errorf("speedtest.timeout: %w", err)
	}
	c.Speedtest.timeout = d

	if c.ExternalIP == nil {
		c.ExternalIP = def.ExternalIP
	}
	if len(c.ExternalIP.Endpoints) == 0 {
		c.ExternalIP.Endpoints = def.ExternalIP.Endpoints
	}
	if c.ExternalIP.Timeout == "" {
		c.ExternalIP.Timeout = def.ExternalIP.Timeout
	}
	if d, err = time.ParseDuration(c.ExternalIP.Timeout); err != nil {
		return fmt.Errorf("external_ip.timeout: %w", err)
	}
	c.ExternalIP.timeout = d

	if c.History == nil {
		c.History = def.History
	}
	if c.History.Path == "" {
		c.History.Path = def.History.Path
	}

	return nil
}

// ScanTimeout returns the parsed per-port scan timeout.
func (c *ScanConfig) ScanTimeout() time.Duration { return c.timeout }

// MeasureTimeout returns the parsed whole-measurement deadline.
func (c *SpeedtestConfig) MeasureTimeout() time.Duration { return c.timeout }

// LookupTimeout returns the parsed per-endpoint timeout.
func (c *ExternalIPConfig) LookupTimeout() time.Duration { return c.timeout }
