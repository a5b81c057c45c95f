package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bwoverlay/bwoverlay-go/internal/aggregator"
	"github.com/bwoverlay/bwoverlay-go/internal/config"
	"github.com/bwoverlay/bwoverlay-go/internal/logfinder"
	"github.com/bwoverlay/bwoverlay-go/internal/stats"
	"github.com/bwoverlay/bwoverlay-go/internal/trigger"
	"github.com/bwoverlay/bwoverlay-go/pkg/lobby"
)

// loadConfig loads the config file and applies global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if tailLines != 0 {
		cfg.TailLines = tailLines
	}
	return cfg, nil
}

// newLogger returns a text logger on w, at debug level with --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newStatsClient(cfg *config.Config, logger *slog.Logger) *stats.Client {
	return stats.NewClient(
		stats.WithBaseURL(cfg.Stats.BaseURL),
		stats.WithType(cfg.Stats.Type),
		stats.WithInterval(cfg.Stats.Interval),
		stats.WithMode(cfg.Stats.Mode),
		stats.WithTimeout(cfg.Stats.Timeout),
		stats.WithUserAgent(cfg.Stats.UserAgent+"/"+version),
		stats.WithLogger(logger),
	)
}

// newAggregator resolves the log file and wires reader and fetcher.
// It returns the resolved log path for triggers that follow the file.
func newAggregator(cfg *config.Config, logger *slog.Logger) (*aggregator.Aggregator, string, error) {
	path, err := logfinder.FindLogFile(cfg.LogFile)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("using log file", "path", path)

	reader := lobby.Reader{Path: path, TailLines: cfg.TailLines}
	agg := aggregator.New(reader, newStatsClient(cfg, logger), aggregator.WithLogger(logger))
	return agg, path, nil
}

// startTrigger starts the trigger for the configured refresh mode. Modes
// without background refresh return a nil channel.
func startTrigger(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) (<-chan trigger.Event, error) {
	var t trigger.Trigger
	switch cfg.Refresh.Mode {
	case config.RefreshInterval:
		t = trigger.Interval(cfg.Refresh.Interval)
	case config.RefreshWatch:
		t = trigger.Watch(path, logger)
	default:
		return nil, nil
	}
	return t.Start(ctx)
}

// openLogOutput returns the writer for diagnostics while the overlay owns
// the terminal.
func openLogOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
