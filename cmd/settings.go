package cmd

import (
	"fmt"
	"github.com/cottand/inferred/internal/config"
	"github.com/cottand/inferred/internal/log"
	"github.com/spf13/cobra"
)

var (
	configPath *string
	logLevel   *string
)

// AddGlobalFlags registers the flags that every subcommand reads through loadConfig
func AddGlobalFlags(root *cobra.Command) {
	configPath = root.PersistentFlags().String("config", config.DefaultPath, "YAML config file, ignored if missing")
	logLevel = root.PersistentFlags().StringP("log-level", "l", "", "one of debug, info, warn, error. Overrides the config file")
}

// loadConfig reads the config file, applies the flags over it, and
// sets up logging accordingly
func loadConfig() (*config.Config, error) {
	path := config.DefaultPath
	if configPath != nil {
		path = *configPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if logLevel != nil && *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetEnabledSections(cfg.EnabledLogSections...)
	return cfg, nil
}
