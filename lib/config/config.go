// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "HDIST_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local experimentation.
	Development Environment = "development"
	// Production is for shared fingerprint databases.
	Production Environment = "production"
)

// Output formats accepted by output.format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCBOR  = "cbor"
)

// Config is the master configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Database configures the SQLite database queries run against.
	Database DatabaseConfig `yaml:"database"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Output configures result rendering.
	Output OutputConfig `yaml:"output"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Database *DatabaseOverrides `yaml:"database,omitempty"`
	Log      *LogConfig         `yaml:"log,omitempty"`
	Output   *OutputConfig      `yaml:"output,omitempty"`
}

// DatabaseConfig configures the SQLite database.
type DatabaseConfig struct {
	// Path is the database file. Default: ${HOME}/.cache/hdist/hdist.db
	Path string `yaml:"path"`

	// PoolSize is the number of pooled connections. Default: 4
	PoolSize int `yaml:"pool_size"`

	// ReadOnly opens the database with SQLITE_OPEN_READONLY.
	// Default: false (development), true (production)
	ReadOnly bool `yaml:"read_only"`
}

// DatabaseOverrides mirrors DatabaseConfig with ReadOnly as a pointer
// so that an override can set it back to false.
type DatabaseOverrides struct {
	Path     string `yaml:"path"`
	PoolSize int    `yaml:"pool_size"`
	ReadOnly *bool  `yaml:"read_only"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: warn
	Level string `yaml:"level"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	// Format is one of table, json, cbor. Default: table
	Format string `yaml:"format"`
}

// Default returns the default configuration. These defaults are the
// base that a config file is merged onto.
func Default() *Config {
	return &Config{
		Environment: Development,
		Database: DatabaseConfig{
			Path:     filepath.Join("${HOME}", ".cache", "hdist", "hdist.db"),
			PoolSize: 4,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
	}
}

// Load loads configuration from the file named by HDIST_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your hdist.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// overrides for the configured environment, and expands variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// Resolve returns the defaults with variables expanded. Commands use it
// when neither --config nor HDIST_CONFIG names a file.
func Resolve() *Config {
	cfg := Default()
	cfg.expandVariables()
	return cfg
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			readOnly := true
			overrides = &ConfigOverrides{
				Database: &DatabaseOverrides{ReadOnly: &readOnly},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Database != nil {
		if overrides.Database.Path != "" {
			c.Database.Path = overrides.Database.Path
		}
		if overrides.Database.PoolSize != 0 {
			c.Database.PoolSize = overrides.Database.PoolSize
		}
		if overrides.Database.ReadOnly != nil {
			c.Database.ReadOnly = *overrides.Database.ReadOnly
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}

	if overrides.Output != nil && overrides.Output.Format != "" {
		c.Output.Format = overrides.Output.Format
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Database.Path = expandVars(c.Database.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Database.Path == "" {
		errs = append(errs, fmt.Errorf("database.path is required"))
	}

	if c.Database.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("database.pool_size must not be negative, got %d", c.Database.PoolSize))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	formats := []string{FormatTable, FormatJSON, FormatCBOR}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses Level into a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}

// EnsureDatabaseDir creates the parent directory of the database file.
// Read-only databases must already exist, so nothing is created for them.
func (c *Config) EnsureDatabaseDir() error {
	if c.Database.ReadOnly {
		return nil
	}
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
