package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project-local config file name.
const FileName = "bwoverlay.yaml"

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
// A non-empty explicit path is used instead of discovery and must exist.
func Load(explicit string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd, explicit)
}

// LoadFrom loads config using dir as the starting point for file discovery.
func LoadFrom(dir, explicit string) (*Config, error) {
	cfg := DefaultConfig()

	path := explicit
	if path == "" {
		path = discoverConfigPath(dir)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath returns the first config file that exists, or empty
// string if none is found (defaults-only mode).
func discoverConfigPath(dir string) string {
	// 1. ./bwoverlay.yaml
	local := filepath.Join(dir, FileName)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	// 2. ~/.config/bwoverlay/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	user := filepath.Join(home, ".config", "bwoverlay", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user
	}

	return ""
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge overlays non-zero fields of override onto base.
func merge(base *Config, override *Config) {
	if override.LogFile != "" {
		base.LogFile = override.LogFile
	}
	if override.TailLines != 0 {
		base.TailLines = override.TailLines
	}

	// Stats
	if override.Stats.BaseURL != "" {
		base.Stats.BaseURL = override.Stats.BaseURL
	}
	if override.Stats.Type != "" {
		base.Stats.Type = override.Stats.Type
	}
	if override.Stats.Interval != "" {
		base.Stats.Interval = override.Stats.Interval
	}
	if override.Stats.Mode != "" {
		base.Stats.Mode = override.Stats.Mode
	}
	if override.Stats.Timeout != 0 {
		base.Stats.Timeout = override.Stats.Timeout
	}
	if override.Stats.UserAgent != "" {
		base.Stats.UserAgent = override.Stats.UserAgent
	}

	// Refresh
	if override.Refresh.Mode != "" {
		base.Refresh.Mode = override.Refresh.Mode
	}
	if override.Refresh.Key != "" {
		base.Refresh.Key = override.Refresh.Key
	}
	if override.Refresh.Interval != 0 {
		base.Refresh.Interval = override.Refresh.Interval
	}

	// Overlay
	if override.Overlay.Title != "" {
		base.Overlay.Title = override.Overlay.Title
	}
	if override.Overlay.Width != 0 {
		base.Overlay.Width = override.Overlay.Width
	}
	if override.Overlay.Height != 0 {
		base.Overlay.Height = override.Overlay.Height
	}
	if override.Overlay.MinColumnWidth != 0 {
		base.Overlay.MinColumnWidth = override.Overlay.MinColumnWidth
	}
}

// applyEnvOverrides applies BWOVERLAY_* environment variables on top of the
// config. Malformed numbers are reported on stderr and ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BWOVERLAY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("BWOVERLAY_TAIL_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TailLines = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: BWOVERLAY_TAIL_LINES=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("BWOVERLAY_STATS_URL"); v != "" {
		cfg.Stats.BaseURL = v
	}
	if v := os.Getenv("BWOVERLAY_REFRESH"); v != "" {
		cfg.Refresh.Mode = v
	}
	if v := os.Getenv("BWOVERLAY_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Refresh.Interval = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: BWOVERLAY_REFRESH_INTERVAL=%q is not a valid duration, ignoring\n", v)
		}
	}
}
