package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/notebook/internal/ui"
	"github.com/muurk/notebook/internal/version"
)

// AppName is shown in the status line and scan screen title
const AppName = "NOTEBOOK"

// Styles are built on demand so a theme applied through ui.ApplyTheme after
// start-up is honoured.

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.PrimaryColor).
		Bold(true).
		Padding(1, 0)
}

func subtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.MutedColor).
		Italic(true)
}

func spinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ui.PrimaryColor)
}

func promptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.PrimaryColor).
		Bold(true)
}

func selectedItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.SuccessColor).
		Bold(true)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.ErrorColor).
		Bold(true)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ui.WarningColor).
		Bold(true)
}

// brand renders "NOTEBOOK vX" for status lines
func brand() string {
	return lipgloss.NewStyle().
		Foreground(ui.TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)
}
