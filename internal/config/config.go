// Package config loads overlay settings from YAML, environment and defaults.
package config

import "time"

// Refresh modes.
const (
	RefreshNone     = "none"
	RefreshKey      = "key"
	RefreshInterval = "interval"
	RefreshWatch    = "watch"
)

// RefreshModes lists the accepted refresh.mode values.
var RefreshModes = []string{RefreshNone, RefreshKey, RefreshInterval, RefreshWatch}

// ReservedKeys are bound by the overlay for quit, help and navigation and
// cannot be used as refresh.key.
var ReservedKeys = []string{"q", "ctrl+c", "?", "k", "up", "j", "down"}

type Config struct {
	LogFile   string        `yaml:"log_file"`
	TailLines int           `yaml:"tail_lines"`
	Stats     StatsConfig   `yaml:"stats"`
	Refresh   RefreshConfig `yaml:"refresh"`
	Overlay   OverlayConfig `yaml:"overlay"`
}

type StatsConfig struct {
	BaseURL  string `yaml:"base_url"`
	Type     string `yaml:"type"`
	Interval string `yaml:"interval"`
	Mode     string `yaml:"mode"`
	// Timeout bounds each leaderboard request. Zero means no timeout.
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type RefreshConfig struct {
	Mode     string        `yaml:"mode"`
	Key      string        `yaml:"key"`
	Interval time.Duration `yaml:"interval"`
}

type OverlayConfig struct {
	Title          string `yaml:"title"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	MinColumnWidth int    `yaml:"min_column_width"`
}
