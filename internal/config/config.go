// Package config loads user settings from ~/.diskseek/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/stats"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvMonitorInterval = "DISKSEEK_MONITOR_INTERVAL"
	EnvWorkers         = "DISKSEEK_WORKERS"
)

// Config represents diskseek configuration options
type Config struct {
	// MonitorInterval is how often mounted volumes are re-enumerated
	MonitorInterval time.Duration `yaml:"monitor_interval"`

	// Workers is the number of parallel directory readers per search
	Workers int `yaml:"workers"`

	// DefaultMode is the search mode used when none is given
	DefaultMode match.Mode `yaml:"-"`

	// IncludeHidden includes dot-prefixed entries by default
	IncludeHidden bool `yaml:"include_hidden"`

	// MatchExtension matches against the full name instead of the stem
	MatchExtension bool `yaml:"match_extension"`

	// SortFoldersFirst lists folders before files in the TUI
	SortFoldersFirst bool `yaml:"sort_folders_first"`

	// LogLevel sets the debug log verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// StateDir holds stats.json and debug.log
	StateDir string `yaml:"state_dir"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		MonitorInterval:  time.Second,
		Workers:          8,
		DefaultMode:      match.Substring,
		SortFoldersFirst: true,
		LogLevel:         "debug",
		StateDir:         stats.DefaultDir(),
	}
}

// DefaultPath returns ~/.diskseek/config.yaml
func DefaultPath() string {
	return filepath.Join(stats.DefaultDir(), "config.yaml")
}

// LoadConfig loads configuration from path, falling back to defaults for
// anything the file leaves out. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.applyEnv()
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations and modes are read as strings; pointers tell an explicit
	// false apart from an absent key
	type yamlConfig struct {
		MonitorInterval  string `yaml:"monitor_interval"`
		Workers          int    `yaml:"workers"`
		DefaultMode      string `yaml:"default_mode"`
		IncludeHidden    *bool  `yaml:"include_hidden"`
		MatchExtension   *bool  `yaml:"match_extension"`
		SortFoldersFirst *bool  `yaml:"sort_folders_first"`
		LogLevel         string `yaml:"log_level"`
		StateDir         string `yaml:"state_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply values from file (merging with defaults)
	if yamlCfg.MonitorInterval != "" {
		interval, err := time.ParseDuration(yamlCfg.MonitorInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid monitor_interval %q: %w", yamlCfg.MonitorInterval, err)
		}
		cfg.MonitorInterval = interval
	}
	if yamlCfg.Workers != 0 {
		cfg.Workers = yamlCfg.Workers
	}
	if yamlCfg.DefaultMode != "" {
		mode, err := match.ParseMode(yamlCfg.DefaultMode)
		if err != nil {
			return nil, fmt.Errorf("invalid default_mode: %w", err)
		}
		cfg.DefaultMode = mode
	}
	if yamlCfg.IncludeHidden != nil {
		cfg.IncludeHidden = *yamlCfg.IncludeHidden
	}
	if yamlCfg.MatchExtension != nil {
		cfg.MatchExtension = *yamlCfg.MatchExtension
	}
	if yamlCfg.SortFoldersFirst != nil {
		cfg.SortFoldersFirst = *yamlCfg.SortFoldersFirst
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.StateDir != "" {
		cfg.StateDir = expandHome(yamlCfg.StateDir)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets environment variables override file and default values
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvMonitorInterval); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMonitorInterval, v, err)
		}
		c.MonitorInterval = interval
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.MonitorInterval <= 0 {
		return fmt.Errorf("monitor_interval must be positive, got %v", c.MonitorInterval)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
