package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/notebook/internal/notebook"
)

// RenderOptions controls notebook rendering.
type RenderOptions struct {
	Width    int  // Total width in cells
	Focus    int  // Index of the keyboard cursor, -1 for none
	Numbered bool // Prefix labels with their 1-based position
}

// TabSpan is the cell range [Start, End) a tab occupies on the rendered
// strip.
type TabSpan struct {
	Tab   *notebook.Tab
	Start int
	End   int
}

// DisplayLabel returns the label as shown on the strip, truncated to
// MaxLabelWidth cells.
func DisplayLabel(tab *notebook.Tab) string {
	label := strings.ReplaceAll(tab.Label(), notebook.NBSP, " ")
	return ansi.Truncate(label, MaxLabelWidth, "…")
}

// TabStrip renders the tab row and reports where each tab landed. Tabs that
// do not fit in opts.Width are cut off and get no span.
func TabStrip(nb *notebook.Notebook, opts RenderOptions) (string, []TabSpan) {
	var (
		b     strings.Builder
		spans []TabSpan
		pos   int
	)
	sep := TabSeparatorStyle.Render(TabSeparator)
	sepWidth := lipgloss.Width(sep)

	for i, tab := range nb.Tabs() {
		label := DisplayLabel(tab)
		if opts.Numbered && i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}

		style := TabStyle
		switch {
		case tab.IsSelected():
			style = ActiveTabStyle
		case i == opts.Focus:
			style = FocusedTabStyle
		}
		cell := style.Render(label)
		w := lipgloss.Width(cell)

		if i > 0 {
			b.WriteString(sep)
			pos += sepWidth
		}
		b.WriteString(cell)
		spans = append(spans, TabSpan{Tab: tab, Start: pos, End: pos + w})
		pos += w
	}

	strip := b.String()
	if opts.Width > 0 && pos > opts.Width {
		strip = ansi.Truncate(strip, opts.Width, "…")
		kept := spans[:0]
		for _, s := range spans {
			if s.End <= opts.Width-1 {
				kept = append(kept, s)
			}
		}
		spans = kept
	}
	return strip, spans
}

// HitTest returns the tab under column x, or nil.
func HitTest(spans []TabSpan, x int) *notebook.Tab {
	for _, s := range spans {
		if x >= s.Start && x < s.End {
			return s.Tab
		}
	}
	return nil
}

// PageBody returns the text of the visible page, wrapped to width. An empty
// notebook renders a placeholder.
func PageBody(nb *notebook.Notebook, width int) string {
	tab := nb.CurrentTab()
	if tab == nil {
		return EmptyStyle.Render("No tabs")
	}
	style := PageStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(PlainText(tab.Page()))
}

// Rule renders the line separating the strip from the page.
func Rule(width int) string {
	if width <= 0 {
		width = MinTerminalWidth
	}
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat("─", width))
}

// Render draws the strip, a rule and the visible page.
func Render(nb *notebook.Notebook, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = GetTerminalWidth()
		opts.Width = width
	}
	strip, _ := TabStrip(nb, opts)
	return lipgloss.JoinVertical(lipgloss.Left,
		strip,
		Rule(width),
		PageBody(nb, width),
	)
}

// RenderNotebook renders nb at the given width with no keyboard focus.
func RenderNotebook(nb *notebook.Notebook, width int) string {
	return Render(nb, RenderOptions{Width: width, Focus: -1})
}
