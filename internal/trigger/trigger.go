// Package trigger produces refresh signals for the overlay.
//
// A Trigger fires on a timer or on new roster lines in the log. External
// sources such as an OS-level global hotkey hook plug in through Channel.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwoverlay/bwoverlay-go/pkg/lobby"
)

// Event is one refresh request.
type Event struct {
	Source string
	Time   time.Time
}

// Trigger emits refresh events until ctx ends, then closes the channel.
type Trigger interface {
	Start(ctx context.Context) (<-chan Event, error)
}

// Sources reported in Event.Source.
const (
	SourceInterval = "interval"
	SourceWatch    = "watch"
	SourceExternal = "external"
)

// ErrInvalidInterval is returned by Interval triggers with a non-positive period.
var ErrInvalidInterval = errors.New("refresh interval must be positive")

// Interval fires every d.
func Interval(d time.Duration) Trigger {
	return intervalTrigger{every: d}
}

type intervalTrigger struct {
	every time.Duration
}

func (t intervalTrigger) Start(ctx context.Context) (<-chan Event, error) {
	if t.every <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidInterval, t.every)
	}

	ch := make(chan Event)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(t.every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case ch <- Event{Source: SourceInterval, Time: now}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// Watch fires whenever a new roster announcement is written to the log at path.
func Watch(path string, logger *slog.Logger) Trigger {
	return watchTrigger{path: path, logger: logger}
}

type watchTrigger struct {
	path   string
	logger *slog.Logger
}

func (t watchTrigger) Start(ctx context.Context) (<-chan Event, error) {
	w, err := lobby.NewWatcher(t.path, lobby.WithLogger(t.logger))
	if err != nil {
		return nil, err
	}

	logger := t.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rosters, errs := w.Watch(ctx)
	ch := make(chan Event)
	go func() {
		defer close(ch)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rosters:
				if !ok {
					return
				}
				select {
				case ch <- Event{Source: SourceWatch, Time: time.Now()}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-errs:
				if !ok {
					return
				}
				logger.Warn("log watch error", "error", err)
			}
		}
	}()
	return ch, nil
}

// Channel adapts an external signal source. Each receive on src fires one
// event; the trigger stops when src is closed or ctx ends.
func Channel[T any](src <-chan T) Trigger {
	return channelTrigger[T]{src: src}
}

type channelTrigger[T any] struct {
	src <-chan T
}

func (t channelTrigger[T]) Start(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-t.src:
				if !ok {
					return
				}
				select {
				case ch <- Event{Source: SourceExternal, Time: time.Now()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
