// Package config loads assembler settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/assembler/pkg/infrastructure/logger"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete assembler configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
	Random  RandomConfig  `yaml:"random"`
	Journal JournalConfig `yaml:"journal"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls diagnostic logging on stderr
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig controls how products are printed
type OutputConfig struct {
	Format    string `yaml:"format"`
	ShowStock bool   `yaml:"show_stock"`
	Summary   bool   `yaml:"summary"`
}

// RandomConfig seeds the filler draw. Seed 0 means time-seeded.
type RandomConfig struct {
	Seed uint64 `yaml:"seed"`
}

// JournalConfig enables the SQLite product journal when Path is set
type JournalConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig enables the /metrics endpoint when Addr is set
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: FormatText,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format: must be %q or %q, got %q", FormatText, FormatJSON, c.Log.Format))
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("output.format: must be %q or %q, got %q", FormatText, FormatJSON, c.Output.Format))
	}

	return errors.Join(errs...)
}
