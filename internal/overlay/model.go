package overlay

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/bwoverlay/bwoverlay-go/internal/stats"
	"github.com/bwoverlay/bwoverlay-go/internal/trigger"
)

// chromeHeight is the number of lines outside the table: title, status, help.
const chromeHeight = 3

// Options configures the overlay.
type Options struct {
	Title          string
	Width          int
	Height         int
	MinColumnWidth int

	// RefreshKey is the in-window hotkey. Empty disables manual refresh.
	RefreshKey string

	// Events delivers external refresh requests. Nil means none.
	Events <-chan trigger.Event

	Logger *slog.Logger
}

type Model struct {
	ctx     context.Context
	source  Source
	logger  *slog.Logger
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	table   table.Model
	events  <-chan trigger.Event

	// columns is fixed by the first batch.
	columns []string

	title          string
	minColumnWidth int
	width          int
	height         int

	refreshing bool
	players    int
	updated    time.Time
	status     string
	err        error
}

// New builds the overlay model around the first batch. The columns of the
// first entry become the table header for the lifetime of the model.
func New(ctx context.Context, source Source, first stats.Batch, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.MinColumnWidth <= 0 {
		opts.MinColumnWidth = 1
	}

	keys := DefaultKeyMap(opts.RefreshKey)
	if opts.RefreshKey == "" {
		keys.Refresh.SetEnabled(false)
	}

	columns := first.Columns()
	m := Model{
		ctx:            ctx,
		source:         source,
		logger:         logger,
		keys:           keys,
		help:           help.New(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		events:         opts.Events,
		columns:        columns,
		title:          opts.Title,
		minColumnWidth: opts.MinColumnWidth,
		players:        len(first),
		updated:        time.Now(),
	}

	m.table = table.New(
		table.WithColumns(m.tableColumns(opts.Width)),
		table.WithRows(toTableRows(first.Rows(columns))),
		table.WithFocused(true),
		table.WithHeight(max(1, opts.Height-chromeHeight)),
		table.WithStyles(tableStyles()),
	)
	m.width = opts.Width
	m.height = opts.Height

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.title))
	}
	if m.events != nil {
		cmds = append(cmds, waitForTrigger(m.events))
	}
	return tea.Batch(cmds...)
}

// Columns returns the fixed column keys.
func (m Model) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Rows returns the rows currently shown.
func (m Model) Rows() [][]string {
	return lo.Map(m.table.Rows(), func(r table.Row, _ int) []string {
		return []string(r)
	})
}

// Refreshing reports whether a refresh is in flight.
func (m Model) Refreshing() bool {
	return m.refreshing
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}

// columnWidth is the width of each column for a terminal width.
func (m Model) columnWidth(width int) int {
	if len(m.columns) == 0 {
		return m.minColumnWidth
	}
	return max(m.minColumnWidth, width/len(m.columns))
}

func (m Model) tableColumns(width int) []table.Column {
	w := m.columnWidth(width)
	return lo.Map(m.columns, func(c string, _ int) table.Column {
		return table.Column{Title: c, Width: w}
	})
}

func toTableRows(rows [][]string) []table.Row {
	return lo.Map(rows, func(r []string, _ int) table.Row {
		return table.Row(r)
	})
}
