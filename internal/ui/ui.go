// Package ui holds the shared terminal styles for command output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// Title styles section headings.
	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// Label styles field names in key/value output.
	Label = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)

	// Value styles field values.
	Value = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	// Faint styles secondary detail such as timestamps.
	Faint = lipgloss.NewStyle().Faint(true)

	// Error styles failure output.
	Error = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Field renders one aligned key/value line.
func Field(label, value string) string {
	return Label.Render(label) + " " + Value.Render(value)
}

// TermWidth returns the terminal width, or 80 when not a terminal.
func TermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
