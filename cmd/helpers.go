// Package cmd implements the CLI subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/P70-ops/netanalyzer/internal/config"
	"github.com/P70-ops/netanalyzer/internal/logging"
)

// setup loads the configuration and builds a logger from its log block.
// A missing config file is not an error; defaults apply.
func setup(configFile string) (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("configuration invalid: %w", err)
	}

	level := logging.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Output: os.Stderr,
		JSON:   cfg.Log.JSON,
	})
	logging.SetDefault(logger)
	return cfg, logger, nil
}
