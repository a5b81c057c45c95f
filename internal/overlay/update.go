package overlay

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusNoRoster is shown when a refresh finds no lobby roster in the log.
const StatusNoRoster = "no roster found"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(m.tableColumns(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(1, msg.Height-chromeHeight))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m.refresh("key")
		}

	case triggerMsg:
		next, cmd := m.refresh(string(msg.Source))
		return next, tea.Batch(cmd, waitForTrigger(m.events))

	case batchMsg:
		return m.applyBatch(msg), nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh starts a background gather unless one is already in flight, in
// which case the request is dropped.
func (m Model) refresh(source string) (Model, tea.Cmd) {
	if m.refreshing {
		m.logger.Debug("refresh already in flight, dropping request", "source", source)
		return m, nil
	}
	m.logger.Debug("refresh requested", "source", source)
	m.refreshing = true
	return m, tea.Batch(m.spinner.Tick, gather(m.ctx, m.source))
}

// applyBatch rebuilds the rows from a finished refresh. The header never
// changes; keys missing from the fixed columns are dropped and absent ones
// render blank.
func (m Model) applyBatch(msg batchMsg) Model {
	m.refreshing = false

	if msg.err != nil {
		m.logger.Warn("refresh failed", "error", msg.err)
		m.err = msg.err
		m.status = ""
		return m
	}
	m.err = nil

	if len(msg.batch) == 0 {
		m.status = StatusNoRoster
		return m
	}

	m.table.SetRows(toTableRows(msg.batch.Rows(m.columns)))
	m.players = len(msg.batch)
	m.updated = time.Now()
	m.status = ""
	m.logger.Debug("overlay updated", "players", m.players)
	return m
}
