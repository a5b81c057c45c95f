package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bwoverlay/bwoverlay-go/internal/config"
)

// ValidRefreshModeNames returns the accepted --refresh values.
func ValidRefreshModeNames() []string {
	return slices.Clone(config.RefreshModes)
}

// NormalizeRefreshMode validates a --refresh value, ignoring case and
// surrounding whitespace.
func NormalizeRefreshMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		return "", fmt.Errorf("empty refresh mode provided; valid modes: %s", strings.Join(ValidRefreshModeNames(), ", "))
	}
	if !slices.Contains(config.RefreshModes, mode) {
		return "", fmt.Errorf("unknown refresh mode %q (valid: %s)", raw, strings.Join(ValidRefreshModeNames(), ", "))
	}
	return mode, nil
}
