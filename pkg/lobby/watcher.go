package lobby

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/bwoverlay/bwoverlay-go/internal/tailer"
)

// WatchOption configures a Watcher.
type WatchOption func(*watchConfig)

type watchConfig struct {
	poll   bool
	logger *slog.Logger
}

// WithPoll makes the watcher poll the file instead of using OS notifications.
// Useful on network drives where notifications are unreliable.
func WithPoll(poll bool) WatchOption {
	return func(c *watchConfig) {
		c.poll = poll
	}
}

// WithLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// Watcher follows a client log and reports each newly written roster.
type Watcher struct {
	path   string
	cfg    watchConfig
	logger *slog.Logger

	mu       sync.Mutex
	closed   bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
	watching bool
}

// NewWatcher creates a watcher for the log file at path.
// The file must exist. Does NOT start goroutines.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}

	var cfg watchConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		path:   path,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Watch starts following the file from its current end.
// Each appended chat line that qualifies as a roster is sent on the first
// channel. Both channels close when ctx is cancelled, on Close, or on a fatal
// error. Watch can only be called once per Watcher instance; later calls
// return closed channels.
func (w *Watcher) Watch(ctx context.Context) (<-chan Roster, <-chan error) {
	w.mu.Lock()
	if w.closed || w.watching {
		w.mu.Unlock()
		rosterCh := make(chan Roster)
		errCh := make(chan error)
		close(rosterCh)
		close(errCh)
		return rosterCh, errCh
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	rosterCh := make(chan Roster)
	errCh := make(chan error, 1)

	go w.run(ctx, rosterCh, errCh)

	return rosterCh, errCh
}

// Close stops the watcher and releases resources.
// Safe to call multiple times. Blocks until the goroutine has exited.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, rosterCh chan<- Roster, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(rosterCh)
	defer close(errCh)

	t, err := tailer.Follow(ctx, w.path,
		tailer.WithPoll(w.cfg.poll),
		tailer.WithFilter(IsChatLine),
	)
	if err != nil {
		sendError(errCh, fmt.Errorf("starting tailer: %w", err))
		return
	}
	defer func() { _ = t.Stop() }()

	w.logger.Debug("watching log file", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				return
			}
			roster := Detect([]string{line.Text})
			if roster.Empty() {
				continue
			}
			w.logger.Debug("roster line written", "names", roster.Names)
			select {
			case rosterCh <- roster:
			case <-ctx.Done():
				return
			}
		case err, ok := <-t.Errors():
			if !ok {
				return
			}
			sendError(errCh, err)
		}
	}
}

// sendError sends an error non-blocking.
func sendError(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}
