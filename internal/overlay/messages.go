package overlay

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bwoverlay/bwoverlay-go/internal/stats"
	"github.com/bwoverlay/bwoverlay-go/internal/trigger"
)

// batchMsg carries the result of one background refresh into the render loop.
type batchMsg struct {
	batch stats.Batch
	err   error
}

type triggerMsg trigger.Event

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForTrigger blocks on the next trigger event. A closed channel yields
// no message, which stops re-arming.
func waitForTrigger(ch <-chan trigger.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return triggerMsg(ev)
	}
}

func gather(ctx context.Context, source Source) tea.Cmd {
	return func() tea.Msg {
		batch, err := source.Gather(ctx)
		return batchMsg{batch: batch, err: err}
	}
}
