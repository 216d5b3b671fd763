// Package brand provides centralized branding constants for the tool.
// This makes it easy to fork or rename the product by changing brand.json.
//
// The brand identity is loaded from brand.json at compile time via go:embed.
// This allows other tools (scripts, docs generators) to read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Description      string `json:"description"`
	Repository       string `json:"repository"`
	ConfigEnvPrefix  string `json:"configEnvPrefix"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	DefaultDataDir   string `json:"defaultDataDir"`
	ConfigFileName   string `json:"configFileName"`
	BinaryName       string `json:"binaryName"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	// Initialize exported variables after JSON is parsed
	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	Repository = b.Repository
	ConfigEnvPrefix = b.ConfigEnvPrefix
	DefaultConfigDir = b.DefaultConfigDir
	DefaultDataDir = b.DefaultDataDir
	ConfigFileName = b.ConfigFileName
	BinaryName = b.BinaryName
}

// Exported variables for convenience
var (
	Name             string
	LowerName        string
	Description      string
	Repository       string
	ConfigEnvPrefix  string
	DefaultConfigDir string
	DefaultDataDir   string
	ConfigFileName   string
	BinaryName       string

	// Version is set at build time via -ldflags
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// UserAgent returns a User-Agent string for HTTP requests
func UserAgent() string {
	return Name + "/" + Version
}

// GetConfigDir returns the config directory, checking env vars first.
// Priority: NETANALYZER_CONFIG_DIR > NETANALYZER_PREFIX/config > DefaultConfigDir
func GetConfigDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "config")
	}
	return DefaultConfigDir
}

// GetDataDir returns the data directory (report history database),
// checking env vars first.
// Priority: NETANALYZER_DATA_DIR > NETANALYZER_PREFIX/data > DefaultDataDir
func GetDataDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_DATA_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "data")
	}
	return DefaultDataDir
}

// DefaultConfigPath returns the full path of the default config file.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}
