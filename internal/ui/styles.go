package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/muurk/notebook/internal/config"
)

// Color palette. ApplyTheme overrides these from the user's config.
var (
	PrimaryColor  = lipgloss.Color("#7D56F4") // Purple - selected tab, borders
	SuccessColor  = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor    = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor  = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor    = lipgloss.Color("#626262") // Gray - unselected tabs, secondary info
	TextColor     = lipgloss.Color("#FFFFFF") // White - main content
	SelectedColor = lipgloss.Color("#FFFFFF") // Selected tab foreground
)

// Layout constants
const (
	MinTerminalWidth = 40  // Minimum supported terminal width
	MaxContentWidth  = 120 // Maximum content width before capping
	MaxLabelWidth    = 24  // Tab labels are truncated past this many cells
	DefaultPadding   = 2   // Default padding inside boxes
)

// Shared styles. They are rebuilt by ApplyTheme.
var (
	// TabStyle is for unselected tab labels
	TabStyle lipgloss.Style
	// ActiveTabStyle is for the selected tab label
	ActiveTabStyle lipgloss.Style
	// FocusedTabStyle marks the tab under the keyboard cursor when it is
	// not the selected one
	FocusedTabStyle lipgloss.Style
	// TabSeparatorStyle is for the divider between tab labels
	TabSeparatorStyle lipgloss.Style
	// PageStyle is for the visible page body
	PageStyle lipgloss.Style
	// EmptyStyle is for the placeholder shown by an empty notebook
	EmptyStyle lipgloss.Style

	// HeaderTitleStyle is for the main command title (e.g., "NOTEBOOK SERVER")
	HeaderTitleStyle lipgloss.Style
	// HeaderCommandStyle is for the command path (e.g., "notebook serve docs.yaml")
	HeaderCommandStyle lipgloss.Style
	// HeaderParamKeyStyle is for parameter keys (e.g., "Listen:")
	HeaderParamKeyStyle lipgloss.Style
	// HeaderParamValueStyle is for parameter values (e.g., "0.0.0.0:8765")
	HeaderParamValueStyle lipgloss.Style

	// SuccessTitleStyle is for the success result title
	SuccessTitleStyle lipgloss.Style
	// ErrorTitleStyle is for the error result title
	ErrorTitleStyle lipgloss.Style
	// ErrorMessageStyle is for error message text
	ErrorMessageStyle lipgloss.Style
	// ResultKeyStyle is for result detail keys
	ResultKeyStyle lipgloss.Style
	// ResultValueStyle is for result detail values
	ResultValueStyle lipgloss.Style
	// HintStyle is for troubleshooting text
	HintStyle lipgloss.Style

	// StatusStyle is for the viewer's status line
	StatusStyle lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	TabStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(SelectedColor).
		Background(PrimaryColor).
		Bold(true).
		Padding(0, 1)

	FocusedTabStyle = TabStyle.
		Foreground(TextColor).
		Underline(true)

	TabSeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	PageStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Padding(1, DefaultPadding)

	EmptyStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true).
		Padding(1, DefaultPadding)

	HeaderTitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		PaddingLeft(2)

	HeaderCommandStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		PaddingLeft(2)

	HeaderParamKeyStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		PaddingLeft(2)

	HeaderParamValueStyle = lipgloss.NewStyle().
		Foreground(TextColor)

	SuccessTitleStyle = lipgloss.NewStyle().
		Foreground(SuccessColor).
		Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor)

	ResultKeyStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Width(15)

	ResultValueStyle = lipgloss.NewStyle().
		Foreground(TextColor)

	HintStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		PaddingLeft(1)
}

// ApplyTheme overrides palette entries set in theme and rebuilds the shared
// styles. A nil theme is ignored.
func ApplyTheme(theme *config.Theme) {
	if theme == nil {
		return
	}
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, theme.Primary)
	set(&SuccessColor, theme.Accent)
	set(&MutedColor, theme.Muted)
	set(&ErrorColor, theme.Error)
	set(&SelectedColor, theme.Selected)
	buildStyles()
}

// Step status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	TabSeparator  = "│"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// boxStyle returns a bordered box in the given colour
func boxStyle(width int, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 1)
}
