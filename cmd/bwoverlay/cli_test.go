package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bwoverlay/bwoverlay-go/internal/overlay"
)

// setupCLI isolates config discovery, restores flag globals after the test
// and points the stats client at a local server.
func setupCLI(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{"BWOVERLAY_LOG_FILE", "BWOVERLAY_TAIL_LINES", "BWOVERLAY_REFRESH", "BWOVERLAY_REFRESH_INTERVAL"} {
		t.Setenv(k, "")
	}

	origVerbose, origConfig, origLogFile, origTail, origLogOutput := verbose, configPath, logFile, tailLines, logOutput
	origMode, origInterval, origKey := refreshMode, refreshInterval, refreshKey
	origDetect, origStats, origRunUI := detectFormat, statsFormat, runUI
	t.Cleanup(func() {
		verbose, configPath, logFile, tailLines, logOutput = origVerbose, origConfig, origLogFile, origTail, origLogOutput
		refreshMode, refreshInterval, refreshKey = origMode, origInterval, origKey
		detectFormat, statsFormat, runUI = origDetect, origStats, origRunUI
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/Ghost/") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"Kills": {"entries": [{"value": 1520}]}, "Wins": {"entries": []}}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("BWOVERLAY_STATS_URL", srv.URL)

	return t.TempDir()
}

func writeLog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "latest.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const lobbyLog = "[12:00:00] [Client thread/INFO]: [CHAT] Welcome!\n" +
	"[12:00:01] [Client thread/INFO]: [CHAT] Alice, Ghost, Carol\n" +
	"[12:00:02] [Client thread/INFO]: [CHAT] BedWars ? 1,2,3\n"

func TestRunDetectInvalidFormat(t *testing.T) {
	setupCLI(t)
	detectFormat = "xml"

	err := runDetect(detectCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("expected invalid format error, got: %v", err)
	}
}

func TestRunDetect(t *testing.T) {
	dir := setupCLI(t)
	logFile = writeLog(t, dir, lobbyLog)
	detectFormat = "pretty"

	var buf bytes.Buffer
	detectCmd.SetOut(&buf)
	t.Cleanup(func() { detectCmd.SetOut(nil) })

	if err := runDetect(detectCmd, nil); err != nil {
		t.Fatalf("runDetect() error = %v", err)
	}
	if want := "Players Detected: Alice, Ghost, Carol\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunDetectMissingLog(t *testing.T) {
	setupCLI(t)
	logFile = filepath.Join(t.TempDir(), "missing.log")
	detectFormat = "jsonl"

	if err := runDetect(detectCmd, nil); err == nil {
		t.Error("expected error for missing log file")
	}
}

func TestRunStats(t *testing.T) {
	setupCLI(t)
	statsFormat = "jsonl"

	var buf bytes.Buffer
	statsCmd.SetOut(&buf)
	t.Cleanup(func() { statsCmd.SetOut(nil) })

	if err := runStats(statsCmd, []string{"Alice", "Ghost"}); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	want := `{"username":"Alice","Kills":1520,"Wins":"No data"}` + "\n" +
		`{"username":"Ghost","Error":"Not found"}` + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunStatsInvalidName(t *testing.T) {
	setupCLI(t)
	statsFormat = "jsonl"

	err := runStats(statsCmd, []string{" , "})
	if err == nil || !strings.Contains(err.Error(), "invalid player name") {
		t.Errorf("expected invalid name error, got: %v", err)
	}
}

func TestRunOverlayInvalidRefreshMode(t *testing.T) {
	setupCLI(t)
	refreshMode = "hourly"

	err := runOverlay(rootCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown refresh mode") {
		t.Errorf("expected unknown refresh mode error, got: %v", err)
	}
}

func TestRunOverlayReservedRefreshKey(t *testing.T) {
	setupCLI(t)
	refreshKey = "q"

	err := runOverlay(rootCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "refresh.key") {
		t.Errorf("expected refresh.key error, got: %v", err)
	}
}

func TestRunOverlay(t *testing.T) {
	dir := setupCLI(t)
	logFile = writeLog(t, dir, lobbyLog)

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() { rootCmd.SetErr(nil) })

	var got overlay.Model
	calls := 0
	runUI = func(ctx context.Context, m overlay.Model) error {
		calls++
		got = m
		if !strings.Contains(stderr.String(), "Players Detected: Alice, Ghost, Carol\n") {
			t.Errorf("roster not printed before the overlay started, stderr = %q", stderr.String())
		}
		return nil
	}

	if err := runOverlay(rootCmd, nil); err != nil {
		t.Fatalf("runOverlay() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("runUI calls = %d, want 1", calls)
	}

	if want := []string{"username", "Kills", "Wins"}; !reflect.DeepEqual(got.Columns(), want) {
		t.Errorf("Columns() = %q, want %q", got.Columns(), want)
	}
	wantRows := [][]string{
		{"Alice", "1,520", "No data"},
		{"Ghost", "", ""},
		{"Carol", "1,520", "No data"},
	}
	if !reflect.DeepEqual(got.Rows(), wantRows) {
		t.Errorf("Rows() = %q, want %q", got.Rows(), wantRows)
	}
}

func TestRunOverlayNoRoster(t *testing.T) {
	dir := setupCLI(t)
	logFile = writeLog(t, dir, "[12:00:00] [Client thread/INFO]: [CHAT] gg\n")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() { rootCmd.SetErr(nil) })

	runUI = func(ctx context.Context, m overlay.Model) error {
		t.Error("runUI called without a roster")
		return nil
	}

	if err := runOverlay(rootCmd, nil); err != nil {
		t.Fatalf("runOverlay() error = %v", err)
	}
	if want := "No valid player list found in logs.\n"; stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestRunOverlayLogOutput(t *testing.T) {
	dir := setupCLI(t)
	logFile = writeLog(t, dir, lobbyLog)
	logOutput = filepath.Join(dir, "overlay.log")
	verbose = true
	runUI = func(ctx context.Context, m overlay.Model) error { return nil }

	if err := runOverlay(rootCmd, nil); err != nil {
		t.Fatalf("runOverlay() error = %v", err)
	}

	data, err := os.ReadFile(logOutput)
	if err != nil {
		t.Fatalf("reading log output: %v", err)
	}
	if !strings.Contains(string(data), "players detected") {
		t.Errorf("log output missing detection entry:\n%s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(buf.String(), "bwoverlay "+version) {
		t.Errorf("version output = %q", buf.String())
	}
}
