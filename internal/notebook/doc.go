// Package notebook implements a tabbed container: a Notebook owning an
// ordered set of Tabs, each bound to exactly one content page.
//
// # Selection
//
// A notebook with at least one tab has exactly one selected tab once a public
// call returns. Selection state lives in class markers on the tab element
// ("<base>_tab_selected") and on its page ("<base>_page_selected"); the page
// is shown while its tab is selected and hidden otherwise.
//
// Selecting a tab swaps out the current one. Deselecting a tab on its own
// promotes its previous sibling, or its next one when it is first, so the
// invariant holds. Deselecting the only tab is refused. Every state change of
// a transition is applied before any signal fires, so observers never see two
// selected tabs.
//
// # Signals
//
//   - Notebook: SignalCurrentTabChange, payload the new current *Tab
//   - Tab: SignalSelect, SignalUnselect, SignalRemove, payload the *Tab
//
// For a swap from B to A the order is: B unselect, A select, notebook
// current_tab_change. Handlers run synchronously and may call back into the
// notebook; such nested calls complete before the emitting call returns.
//
// # Construction
//
//	nb := notebook.New("main", "")
//	nb.AppendTab("Overview", "<p>hello</p>", true)
//	nb.AppendTab("Details", content.Node{Tag: "ul"}, false)
//	nb.Connect(notebook.SignalCurrentTabChange, func(p any) {
//	    fmt.Println("now on", p.(*notebook.Tab).Label())
//	})
//
// Existing element trees are adopted with Hydrate, and structural
// descriptors with FromSnapshot. Both read the selected marker instead of
// recomputing state.
//
// # References
//
// SelectTab, RemoveTab and Tab accept a tab id, a tab element or a *Tab.
// References that do not resolve to a live tab of the notebook are ignored
// without error.
package notebook
