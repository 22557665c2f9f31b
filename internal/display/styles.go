// Package display renders review loop progress for the terminal:
// iteration banners, score reports, task tables, and the final session
// summary. All rendering is observational; failures here never affect
// the loop.
package display

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for loop progress output.
type Styles struct {
	// Iteration banner line
	Banner lipgloss.Style
	// Category at or above its threshold
	ScorePass lipgloss.Style
	// Category below its threshold
	ScoreFail lipgloss.Style
	// Regression warning
	Warning lipgloss.Style
	// Approved terminal state
	Approved lipgloss.Style
	// Needs-manual-follow-up terminal state
	Unresolved lipgloss.Style
	// Dimmed detail text
	Dim lipgloss.Style
}

// DefaultStyles returns styles with colors enabled.
func DefaultStyles() Styles {
	return Styles{
		Banner:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")), // cyan
		ScorePass:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),            // green
		ScoreFail:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),            // red
		Warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")), // yellow
		Approved:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Unresolved: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Dim:        lipgloss.NewStyle().Faint(true),
	}
}

// NoColorStyles returns styles with no colors (plain text).
func NoColorStyles() Styles {
	return Styles{
		Banner:     lipgloss.NewStyle(),
		ScorePass:  lipgloss.NewStyle(),
		ScoreFail:  lipgloss.NewStyle(),
		Warning:    lipgloss.NewStyle(),
		Approved:   lipgloss.NewStyle(),
		Unresolved: lipgloss.NewStyle(),
		Dim:        lipgloss.NewStyle(),
	}
}
