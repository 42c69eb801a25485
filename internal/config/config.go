// Package config holds the tool-level configuration for rollcall: where the
// ledger data lives, how verbose logging is and which cloud bucket the
// bootstrap command targets. This is separate from the ledger's own
// persisted settings table, which is part of the data model.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDataDir is the data directory used when none is configured.
const DefaultDataDir = ".rollcall"

// Config holds all rollcall configuration.
type Config struct {
	// DataDir is the directory holding the ledger's JSON tables, backups
	// and exports.
	DataDir string `yaml:"data_dir"`

	// Logging controls diagnostic output.
	Logging LoggingConfig `yaml:"logging"`

	// Bucket configures the cloud bucket bootstrap.
	Bucket BucketConfig `yaml:"bucket"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// BucketConfig configures the cloud storage bucket bootstrap.
type BucketConfig struct {
	Project string `yaml:"project"`
	Name    string `yaml:"name"`
	Region  string `yaml:"region"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Logging: LoggingConfig{Level: "info"},
		Bucket:  BucketConfig{Region: "us-east-1"},
	}
}

// Load reads the config file at path, applies env overrides and validates.
// A missing file yields the defaults (still env-overridden).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ROLLCALL_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ROLLCALL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ROLLCALL_BUCKET"); v != "" {
		c.Bucket.Name = v
	}
	if v := os.Getenv("ROLLCALL_BUCKET_REGION"); v != "" {
		c.Bucket.Region = v
	}
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.Bucket.Project = v
	}
}

// Validate checks the config for values the tool cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	return nil
}
