// Package tailer follows a Minecraft client log file and emits decoded lines.
package tailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/nxadm/tail"
	"golang.org/x/text/encoding/charmap"
)

// errBuffer is the capacity of the error channel. Errors beyond it are
// dropped while the consumer is busy.
const errBuffer = 16

// Line is one decoded log line.
type Line struct {
	// Text is the line without its terminator, decoded from ISO-8859-1.
	Text string

	// Num counts lines read since the tail started, filtered ones included.
	Num int

	// Time is when the line was read.
	Time time.Time
}

// Option configures a Tailer.
type Option func(*options)

type options struct {
	poll      bool
	fromStart bool
	mustExist bool
	filter    func(string) bool
}

// WithPoll polls the file instead of using filesystem notifications.
func WithPoll(poll bool) Option {
	return func(o *options) {
		o.poll = poll
	}
}

// FromStart reads existing content before following. By default only lines
// appended after Follow are emitted.
func FromStart() Option {
	return func(o *options) {
		o.fromStart = true
	}
}

// AllowMissing waits for the file to be created instead of failing.
func AllowMissing() Option {
	return func(o *options) {
		o.mustExist = false
	}
}

// WithFilter drops decoded lines for which keep returns false.
func WithFilter(keep func(string) bool) Option {
	return func(o *options) {
		o.filter = keep
	}
}

// Tailer follows one file across truncation and recreation (tail -F). The
// client starts a fresh latest.log on every launch.
type Tailer struct {
	t      *tail.Tail
	filter func(string) bool
	cancel context.CancelFunc
	lines  chan Line
	errs   chan error
	done   chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// Follow starts tailing path. The tailer stops when ctx is cancelled or
// Stop is called; both close the Lines and Errors channels.
func Follow(ctx context.Context, path string, opts ...Option) (*Tailer, error) {
	o := options{mustExist: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	whence := io.SeekEnd
	if o.fromStart {
		whence = io.SeekStart
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		Poll:      o.poll,
		MustExist: o.mustExist,
		Location:  &tail.SeekInfo{Offset: 0, Whence: whence},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening tail: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	tr := &Tailer{
		t:      t,
		filter: o.filter,
		cancel: cancel,
		lines:  make(chan Line),
		errs:   make(chan error, errBuffer),
		done:   make(chan struct{}),
	}
	go tr.run(ctx)

	return tr, nil
}

// Lines returns the channel of decoded lines.
func (t *Tailer) Lines() <-chan Line {
	return t.lines
}

// Errors returns the channel of read errors.
func (t *Tailer) Errors() <-chan error {
	return t.errs
}

// Stop ends tailing and waits for the channels to close. Safe to call more
// than once.
func (t *Tailer) Stop() error {
	t.stopOnce.Do(func() {
		t.cancel()
		<-t.done
		t.stopErr = t.t.Stop()
	})
	return t.stopErr
}

func (t *Tailer) run(ctx context.Context) {
	defer close(t.done)
	defer close(t.lines)
	defer close(t.errs)

	decoder := charmap.ISO8859_1.NewDecoder()
	num := 0

	for {
		var raw *tail.Line
		select {
		case <-ctx.Done():
			return
		case l, ok := <-t.t.Lines:
			if !ok {
				return
			}
			raw = l
		}

		if raw.Err != nil {
			select {
			case t.errs <- fmt.Errorf("tail: %w", raw.Err):
			default:
			}
			continue
		}
		num++

		text, err := decoder.String(raw.Text)
		if err != nil {
			text = raw.Text
		}
		text = strings.TrimSuffix(text, "\r")
		if t.filter != nil && !t.filter(text) {
			continue
		}

		select {
		case t.lines <- Line{Text: text, Num: num, Time: raw.Time}:
		case <-ctx.Done():
			return
		}
	}
}
