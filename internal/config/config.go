// Package config holds the settings shared by the inferred subcommands.
package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"log/slog"
	"os"
	"runtime"
)

// DefaultPath is where Load looks when no --config flag is given
const DefaultPath = ".inferred.yaml"

type Config struct {
	// CollapseInferredUnions makes `inferred | inferred` reduce to `inferred`.
	// Off by default, matching the conformance fixtures.
	CollapseInferredUnions bool `yaml:"collapseInferredUnions"`

	// Parallelism bounds how many files or suites are checked at once
	Parallelism int `yaml:"parallelism"`

	LogLevel           string   `yaml:"logLevel"`
	EnabledLogSections []string `yaml:"enabledLogSections"`
}

func Default() *Config {
	return &Config{
		CollapseInferredUnions: false,
		Parallelism:            runtime.GOMAXPROCS(0),
		LogLevel:               "error",
		EnabledLogSections:     []string{"check", "conformance"},
	}
}

// Load reads the YAML file at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Parallelism < 1 {
		return errors.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel as a slog.Level name (debug, info, warn, error)
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelError, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, errors.Wrapf(err, "bad log level %q", c.LogLevel)
	}
	return l, nil
}
