package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bwoverlay/bwoverlay-go/internal/stats"
	"github.com/bwoverlay/bwoverlay-go/pkg/lobby"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func formatNames() string {
	return strings.Join(sortedFormats(), ", ")
}

// OutputJSON writes v as one JSON line.
func OutputJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// OutputStats writes one player's stats in the given format.
func OutputStats(format string, ps stats.PlayerStats, w io.Writer) error {
	if format == "jsonl" {
		return OutputJSON(ps, w)
	}
	_, err := fmt.Fprintln(w, prettyStats(ps))
	return err
}

// OutputRoster writes a detected roster in the given format.
func OutputRoster(format string, r lobby.Roster, w io.Writer) error {
	if format == "jsonl" {
		return OutputJSON(r, w)
	}
	_, err := fmt.Fprintf(w, "Players Detected: %s\n", strings.Join(r.Names, ", "))
	return err
}

func prettyStats(ps stats.PlayerStats) string {
	name := nameStyle.Render(ps.Username())
	if ps.Failed() {
		v, _ := ps.Get(stats.ErrorKey)
		return name + "  " + missingStyle.Render("("+stats.FormatValue(v)+")")
	}

	parts := []string{name}
	for _, f := range ps.Fields()[1:] {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Key, stats.FormatValue(f.Value)))
	}
	return strings.Join(parts, "  ")
}
