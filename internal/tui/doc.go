// Package tui implements the interactive terminal screens of the notebook
// command.
//
// Both screens are Bubble Tea models following the Model-Update-View
// pattern. Rendering of the notebook itself is delegated to package ui, so
// the viewer and "notebook show" draw tabs identically.
//
// # Viewer
//
// Model shows one notebook full screen: the tab strip, a position bar, the
// visible page in a scrolling viewport, and a status line with the signals
// fired by the last action ("unselect One → select Two → ...").
//
//	if err := tui.Run(nb, tui.Options{ShowHelp: true}); err != nil {
//	    return err
//	}
//
// Arrow keys select programmatically, enter and mouse clicks select as the
// user, and n/N/r/x append, prepend, rename and close tabs.
//
// # Scan Screen
//
// ScanModel runs a discovery scan with a spinner and progress bar and lets
// the user pick one of the notebook servers found:
//
//	server, err := tui.RunScan(discovery.NewScanner().Scan, 5*time.Second)
//
// # Framework Components
//
//   - bubbles/help and bubbles/key: Key maps and help footer
//   - bubbles/textinput: Tab label prompt
//   - bubbles/viewport: Page scrolling
//   - bubbles/progress: Tab position and scan progress
//   - bubbles/spinner and bubbles/list: Scan screen
package tui
