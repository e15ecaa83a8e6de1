package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles for the browser UI.
type Styles struct {
	// Chrome
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	StatusTag lipgloss.Style
	Prompt    lipgloss.Style
	Notice    lipgloss.Style

	// Document lines
	Text        lipgloss.Style
	Pre         lipgloss.Style
	LinkGemini  lipgloss.Style
	LinkForeign lipgloss.Style

	// Misc
	Muted   lipgloss.Style
	Spinner lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		StatusTag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")), // muted red

		Text: lipgloss.NewStyle(),
		Pre: lipgloss.NewStyle().
			Background(lipgloss.Color("240")),
		LinkGemini: lipgloss.NewStyle().
			Foreground(lipgloss.Color("68")), // muted blue
		LinkForeign: lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("68")),
	}
}
