// Package aggregator runs one detection-and-fetch cycle: it reads the chat
// tail, detects the roster and fetches stats for every player in order.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwoverlay/bwoverlay-go/internal/stats"
	"github.com/bwoverlay/bwoverlay-go/pkg/lobby"
)

// LineReader returns the current chat tail, oldest first.
type LineReader interface {
	ReadChatLines() ([]string, error)
}

// Fetcher resolves the stats of one player.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (stats.PlayerStats, error)
}

// Aggregator turns the current log tail into a stats batch.
type Aggregator struct {
	reader  LineReader
	fetcher Fetcher
	logger  *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the slog logger. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// New creates an Aggregator.
func New(reader LineReader, fetcher Fetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		reader:  reader,
		fetcher: fetcher,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	return a
}

// Detect reads the chat tail and returns the most recent roster.
func (a *Aggregator) Detect() (lobby.Roster, error) {
	lines, err := a.reader.ReadChatLines()
	if err != nil {
		return lobby.Roster{}, fmt.Errorf("reading chat lines: %w", err)
	}
	return lobby.Detect(lines), nil
}

// Gather runs one full cycle.
//
// An empty roster is not an error: it yields an empty batch. Players are
// fetched one after another in detection order. A fetch that fails in
// transport aborts the cycle and no partial batch is returned; players the
// service does not know become NotFound placeholders.
func (a *Aggregator) Gather(ctx context.Context) (stats.Batch, error) {
	roster, err := a.Detect()
	if err != nil {
		return nil, err
	}

	if roster.Empty() {
		a.logger.Info("no valid player list found in logs")
		return stats.Batch{}, nil
	}

	a.logger.Info("players detected", "players", strings.Join(roster.Names, ", "))

	batch := make(stats.Batch, 0, len(roster.Names))
	for _, raw := range roster.Names {
		name := lobby.SanitizeName(raw)
		if name == "" {
			a.logger.Warn("skipping empty player name", "token", raw)
			continue
		}

		ps, err := a.fetcher.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		if ps.Failed() {
			a.logger.Debug("player not found", "player", name)
		}
		batch = append(batch, ps)
	}

	return batch, nil
}
