package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(m.title),
		m.table.View(),
		m.statusBar(),
		helpBarStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) statusBar() string {
	var parts []string
	if m.refreshing {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	parts = append(parts,
		fmt.Sprintf("%d players", m.players),
		"updated "+humanize.Time(m.updated),
	)
	if m.status != "" {
		parts = append(parts, m.status)
	}
	line := statusStyle.Render(strings.Join(parts, " · "))
	if m.err != nil {
		line += errorStyle.Render("error: " + m.err.Error())
	}
	return line
}
