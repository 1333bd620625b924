// Package ui renders notebooks and command output for the terminal.
//
// It is shared by the one-shot "notebook show" command and the interactive
// viewer in package tui. Rendering is pure: functions take a notebook and a
// width and return styled strings, so the same output can be printed, fed to
// a Bubble Tea view, or inspected in tests after ansi.Strip.
//
// # Notebook Rendering
//
//	out := ui.RenderNotebook(nb, ui.GetTerminalWidth())
//
// draws the tab strip (selected tab highlighted), a rule, and the visible
// page. TabStrip also returns the cell span of every tab so mouse clicks can
// be mapped back with HitTest. Page content is turned into text by
// PlainText, which understands both literal markup and element trees.
//
// # Command Output
//
// Printer writes headers, success and failure boxes, and notebook summaries
// in text, JSON or YAML:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Notebook server", "notebook serve docs.yaml",
//	    ui.Param{Key: "Listen", Value: addr})
//	p.PrintFailure("Cannot load layout", err, layout.GetTroubleshootingHint(err))
//
// # Theming
//
// ApplyTheme overrides the palette from the user's config file and rebuilds
// the shared styles.
package ui
