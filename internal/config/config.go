// Package config handles the tracker configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/mvessman/tracklog/internal/breaks"
)

const fileMode = 0o600

// FileName is the config file name inside the data directory.
const FileName = "config.yml"

// CurrentVersion is the config format version written by this build.
const CurrentVersion = 1

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid config")

// Config represents the tracker configuration.
type Config struct {
	Version int `yaml:"version"`

	// BreakTypes is the break type catalog offered by the break commands.
	BreakTypes []string `yaml:"break_types"`

	// AlertCommand is run (fire-and-forget, via the shell) when an
	// attention signal is triggered. Empty means terminal bell.
	AlertCommand string `yaml:"alert_command,omitempty"`

	Report ReportConfig `yaml:"report,omitempty"`

	// dir is the data directory the config was loaded from (not serialized).
	dir string `yaml:"-"`
}

// ReportConfig holds settings for the weekly AI summary.
type ReportConfig struct {
	Model          string `yaml:"model,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Default report settings.
const (
	DefaultReportModel   = "mistral"
	DefaultReportTimeout = 120
)

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:    CurrentVersion,
		BreakTypes: append([]string{}, breaks.DefaultTypes...),
		Report: ReportConfig{
			Model:          DefaultReportModel,
			TimeoutSeconds: DefaultReportTimeout,
		},
	}
}

// Dir returns the data directory the config belongs to.
func (c *Config) Dir() string { return c.dir }

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) { c.dir = dir }

// Path returns the absolute path to the config file.
func (c *Config) Path() string { return filepath.Join(c.dir, FileName) }

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if len(c.BreakTypes) == 0 {
		return fmt.Errorf("%w: at least 1 break type is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.BreakTypes))
	for _, t := range c.BreakTypes {
		if t == "" {
			return fmt.Errorf("%w: break type must not be empty", ErrInvalid)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate break type %q", ErrInvalid, t)
		}
		seen[t] = true
	}
	if c.Report.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: report.timeout_seconds must be >= 0", ErrInvalid)
	}
	return nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.Path(), data, fileMode)
}

// Load reads and validates the config from the given data directory.
// A missing config file is not an error: defaults are returned, so the
// tracker works without ever running init.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName)) //nolint:gosec // config path from trusted data dir
	if err != nil {
		if os.IsNotExist(err) {
			cfg := NewDefault()
			cfg.dir = dir
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = dir

	// Fill zero-value report settings so a hand-edited partial config
	// still behaves.
	if cfg.Report.Model == "" {
		cfg.Report.Model = DefaultReportModel
	}
	if cfg.Report.TimeoutSeconds == 0 {
		cfg.Report.TimeoutSeconds = DefaultReportTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates the data directory with a default config file.
func Init(dir string) (*Config, error) {
	const dirMode = 0o700

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cfg := NewDefault()
	cfg.dir = absDir
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}
