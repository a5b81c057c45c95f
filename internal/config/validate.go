package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks the config for internal consistency. All checks run and
// failures are collected into a *ValidationError.
func (c *Config) Validate() error {
	var errs []string

	if c.TailLines <= 0 {
		errs = append(errs, "tail_lines must be positive")
	}

	if u, err := url.Parse(c.Stats.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("stats.base_url %q must be an absolute URL", c.Stats.BaseURL))
	}
	if c.Stats.Type == "" {
		errs = append(errs, "stats.type must not be empty")
	}
	if c.Stats.Timeout < 0 {
		errs = append(errs, "stats.timeout must not be negative")
	}

	if !slices.Contains(RefreshModes, c.Refresh.Mode) {
		errs = append(errs, fmt.Sprintf("refresh.mode %q must be one of %s", c.Refresh.Mode, strings.Join(RefreshModes, ", ")))
	}
	if c.Refresh.Mode != RefreshNone {
		switch {
		case c.Refresh.Key == "":
			errs = append(errs, "refresh.key must not be empty")
		case slices.Contains(ReservedKeys, c.Refresh.Key):
			errs = append(errs, fmt.Sprintf("refresh.key %q is already bound (reserved: %s)", c.Refresh.Key, strings.Join(ReservedKeys, ", ")))
		}
	}
	if c.Refresh.Mode == RefreshInterval && c.Refresh.Interval <= 0 {
		errs = append(errs, "refresh.interval must be positive in interval mode")
	}

	if c.Overlay.Width <= 0 {
		errs = append(errs, "overlay.width must be positive")
	}
	if c.Overlay.Height <= 0 {
		errs = append(errs, "overlay.height must be positive")
	}
	if c.Overlay.MinColumnWidth <= 0 {
		errs = append(errs, "overlay.min_column_width must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
