package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bwoverlay/bwoverlay-go/internal/config"
	"github.com/bwoverlay/bwoverlay-go/internal/overlay"
	"github.com/bwoverlay/bwoverlay-go/internal/stats"
)

var (
	// overlay flags
	refreshMode     string
	refreshInterval time.Duration
	refreshKey      string
)

// runUI displays the overlay. Tests replace it to avoid taking the terminal.
var runUI overlay.Runner = overlay.Run

func init() {
	rootCmd.Flags().StringVarP(&refreshMode, "refresh", "r", "",
		"Refresh mode: none, key, interval, watch (default from config, key)")
	rootCmd.Flags().DurationVarP(&refreshInterval, "interval", "i", 0,
		"Refresh interval for --refresh interval (default from config, 30s)")
	rootCmd.Flags().StringVar(&refreshKey, "refresh-key", "",
		`Key that refreshes the table (default from config, \)`)

	registerRefreshModeCompletion(rootCmd, "refresh")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if refreshMode != "" {
		mode, err := NormalizeRefreshMode(refreshMode)
		if err != nil {
			return err
		}
		cfg.Refresh.Mode = mode
	}
	if refreshInterval != 0 {
		cfg.Refresh.Interval = refreshInterval
	}
	if refreshKey != "" {
		cfg.Refresh.Key = refreshKey
	}
	stderr := cmd.ErrOrStderr()
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, closeOut, err := openLogOutput(logOutput)
	if err != nil {
		return fmt.Errorf("opening log output: %w", err)
	}
	defer closeOut()
	logger := newLogger(out)

	agg, path, err := newAggregator(cfg, logger)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events, err := startTrigger(ctx, cfg, path, logger)
	if err != nil {
		return err
	}

	opts := overlay.Options{
		Title:          cfg.Overlay.Title,
		Width:          cfg.Overlay.Width,
		Height:         cfg.Overlay.Height,
		MinColumnWidth: cfg.Overlay.MinColumnWidth,
		Events:         events,
		Logger:         logger,
	}
	if cfg.Refresh.Mode != config.RefreshNone {
		opts.RefreshKey = cfg.Refresh.Key
	}

	shown := false
	err = overlay.Start(ctx, agg, opts, func(ctx context.Context, m overlay.Model) error {
		shown = true
		// The overlay takes the screen; leave the roster in the scrollback.
		fmt.Fprintf(stderr, "Players Detected: %s\n", strings.Join(playerNames(m), ", "))
		return runUI(ctx, m)
	})
	if err != nil {
		return err
	}
	if !shown {
		fmt.Fprintln(stderr, "No valid player list found in logs.")
	}
	return nil
}

// playerNames returns the usernames shown in m, in table order.
func playerNames(m overlay.Model) []string {
	col := lo.IndexOf(m.Columns(), stats.UsernameKey)
	if col < 0 {
		return nil
	}
	return lo.Map(m.Rows(), func(r []string, _ int) string {
		return r[col]
	})
}
