package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME at an empty directory and clears overrides so a user
// config on the machine running the tests is never picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{
		"BWOVERLAY_LOG_FILE", "BWOVERLAY_TAIL_LINES", "BWOVERLAY_STATS_URL",
		"BWOVERLAY_REFRESH", "BWOVERLAY_REFRESH_INTERVAL",
	} {
		t.Setenv(k, "")
	}
	return t.TempDir()
}

func TestLoadDefaults(t *testing.T) {
	tmp := isolate(t)

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.TailLines != 40 {
		t.Errorf("expected tail lines 40, got %d", cfg.TailLines)
	}
	if cfg.Stats.BaseURL != "https://stats.pika-network.net" {
		t.Errorf("expected base url %q, got %q", "https://stats.pika-network.net", cfg.Stats.BaseURL)
	}
	if cfg.Refresh.Mode != RefreshKey {
		t.Errorf("expected refresh mode %q, got %q", RefreshKey, cfg.Refresh.Mode)
	}
	if cfg.Refresh.Key != `\` {
		t.Errorf("expected refresh key %q, got %q", `\`, cfg.Refresh.Key)
	}
	if cfg.Overlay.Title != "Bedwars Stats Overlay" {
		t.Errorf("expected title %q, got %q", "Bedwars Stats Overlay", cfg.Overlay.Title)
	}
	if cfg.Stats.Timeout != 0 {
		t.Errorf("expected no stats timeout by default, got %v", cfg.Stats.Timeout)
	}
}

func TestLoadStatsTimeout(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want time.Duration
	}{
		{"unset", "stats:\n  mode: SOLO\n", 0},
		{"explicit zero", "stats:\n  timeout: 0s\n", 0},
		{"set", "stats:\n  timeout: 5s\n", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := isolate(t)
			if err := os.WriteFile(filepath.Join(tmp, FileName), []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFrom(tmp, "")
			if err != nil {
				t.Fatalf("LoadFrom() error: %v", err)
			}
			if cfg.Stats.Timeout != tt.want {
				t.Errorf("expected stats timeout %v, got %v", tt.want, cfg.Stats.Timeout)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmp := isolate(t)

	yaml := `
log_file: /games/latest.log
tail_lines: 100
stats:
  mode: SOLO
  timeout: 3s
refresh:
  mode: interval
  interval: 1m
overlay:
  width: 140
`
	if err := os.WriteFile(filepath.Join(tmp, FileName), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.LogFile != "/games/latest.log" {
		t.Errorf("expected log file %q, got %q", "/games/latest.log", cfg.LogFile)
	}
	if cfg.TailLines != 100 {
		t.Errorf("expected tail lines 100, got %d", cfg.TailLines)
	}
	if cfg.Stats.Mode != "SOLO" {
		t.Errorf("expected stats mode %q, got %q", "SOLO", cfg.Stats.Mode)
	}
	if cfg.Stats.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.Stats.Timeout)
	}
	if cfg.Stats.Type != "bedwars" {
		t.Errorf("expected stats type preserved as %q, got %q", "bedwars", cfg.Stats.Type)
	}
	if cfg.Refresh.Mode != RefreshInterval || cfg.Refresh.Interval != time.Minute {
		t.Errorf("expected interval refresh every 1m, got %q every %v", cfg.Refresh.Mode, cfg.Refresh.Interval)
	}
	if cfg.Overlay.Width != 140 {
		t.Errorf("expected width 140, got %d", cfg.Overlay.Width)
	}
	if cfg.Overlay.Height != 16 {
		t.Errorf("expected height preserved as 16, got %d", cfg.Overlay.Height)
	}
}

func TestLoadUserConfig(t *testing.T) {
	tmp := isolate(t)
	home := os.Getenv("HOME")

	dir := filepath.Join(home, ".config", "bwoverlay")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tail_lines: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.TailLines != 7 {
		t.Errorf("expected tail lines 7 from user config, got %d", cfg.TailLines)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	tmp := isolate(t)

	os.WriteFile(filepath.Join(tmp, FileName), []byte("tail_lines: 5\n"), 0644)
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(explicit, []byte("tail_lines: 9\n"), 0644)

	cfg, err := LoadFrom(tmp, explicit)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.TailLines != 9 {
		t.Errorf("expected explicit file to win with 9, got %d", cfg.TailLines)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	tmp := isolate(t)

	_, err := LoadFrom(tmp, filepath.Join(tmp, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmp := isolate(t)
	os.WriteFile(filepath.Join(tmp, FileName), []byte("tail_lines: [oops\n"), 0644)

	_, err := LoadFrom(tmp, "")
	if err == nil || !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("expected YAML parse error, got %v", err)
	}
}

func TestLoadValidationFails(t *testing.T) {
	tmp := isolate(t)
	os.WriteFile(filepath.Join(tmp, FileName), []byte("refresh:\n  mode: sometimes\n"), 0644)

	_, err := LoadFrom(tmp, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	tmp := isolate(t)
	os.WriteFile(filepath.Join(tmp, FileName), []byte("tail_lines: 5\n"), 0644)

	t.Setenv("BWOVERLAY_LOG_FILE", "/env/latest.log")
	t.Setenv("BWOVERLAY_TAIL_LINES", "60")
	t.Setenv("BWOVERLAY_STATS_URL", "http://localhost:9000")
	t.Setenv("BWOVERLAY_REFRESH", RefreshWatch)
	t.Setenv("BWOVERLAY_REFRESH_INTERVAL", "5s")

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.LogFile != "/env/latest.log" {
		t.Errorf("expected log file from env, got %q", cfg.LogFile)
	}
	if cfg.TailLines != 60 {
		t.Errorf("expected env to beat file with 60, got %d", cfg.TailLines)
	}
	if cfg.Stats.BaseURL != "http://localhost:9000" {
		t.Errorf("expected base url from env, got %q", cfg.Stats.BaseURL)
	}
	if cfg.Refresh.Mode != RefreshWatch {
		t.Errorf("expected refresh mode %q, got %q", RefreshWatch, cfg.Refresh.Mode)
	}
	if cfg.Refresh.Interval != 5*time.Second {
		t.Errorf("expected interval 5s, got %v", cfg.Refresh.Interval)
	}
}

func TestEnvOverridesMalformedIgnored(t *testing.T) {
	tmp := isolate(t)
	t.Setenv("BWOVERLAY_TAIL_LINES", "lots")
	t.Setenv("BWOVERLAY_REFRESH_INTERVAL", "soon")

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.TailLines != 40 {
		t.Errorf("expected default tail lines kept, got %d", cfg.TailLines)
	}
	if cfg.Refresh.Interval != 30*time.Second {
		t.Errorf("expected default interval kept, got %v", cfg.Refresh.Interval)
	}
}

func TestMergePreservesDefaults(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Overlay: OverlayConfig{Title: "Lobby"},
	}

	merge(&base, override)

	if base.Overlay.Title != "Lobby" {
		t.Errorf("expected title %q, got %q", "Lobby", base.Overlay.Title)
	}
	if base.Overlay.Width != 100 {
		t.Errorf("expected width preserved as 100, got %d", base.Overlay.Width)
	}
	if base.Stats.Mode != "ALL_MODES" {
		t.Errorf("expected stats mode preserved as %q, got %q", "ALL_MODES", base.Stats.Mode)
	}
	if base.Refresh.Key != `\` {
		t.Errorf("expected refresh key preserved, got %q", base.Refresh.Key)
	}
}
