// Package overlay renders player stats as a live terminal table.
//
// The table is built from the first batch of stats and refreshed on the
// hotkey or on trigger events. Refreshes run off the render loop and report
// back through messages, so the table is only ever touched by Update.
package overlay

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bwoverlay/bwoverlay-go/internal/stats"
)

// Source produces one batch of stats per call.
type Source interface {
	Gather(ctx context.Context) (stats.Batch, error)
}

// Runner displays a built model until the user quits.
type Runner func(ctx context.Context, m Model) error

// Start gathers the first batch and hands the model to run. When the first
// batch is empty no display is built and run is never called. A nil run uses
// Run.
func Start(ctx context.Context, source Source, opts Options, run Runner) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	batch, err := source.Gather(ctx)
	if err != nil {
		return fmt.Errorf("initial refresh: %w", err)
	}
	if len(batch) == 0 {
		logger.Info("no stats to display")
		return nil
	}

	if run == nil {
		run = Run
	}
	return run(ctx, New(ctx, source, batch, opts))
}

// Run shows m full-screen on the terminal. Cancelling ctx ends the program
// without error.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running overlay: %w", err)
	}
	return nil
}
