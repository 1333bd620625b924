package notebook

import (
	"github.com/muurk/notebook/internal/dom"
	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/widget"
)

// SelectionCause says why a selection transition was requested.
type SelectionCause int

const (
	// Programmatic is an API call such as SelectTab or a neighbour promotion.
	Programmatic SelectionCause = iota
	// UserInitiated is a click on the tab.
	UserInitiated
	// Swap deselects the previous current tab while another tab is being
	// selected. It never promotes a neighbour.
	Swap
)

// String returns the cause name used in logs.
func (c SelectionCause) String() string {
	switch c {
	case Programmatic:
		return "programmatic"
	case UserInitiated:
		return "user"
	case Swap:
		return "swap"
	default:
		return "unknown"
	}
}

// NBSP is stored as the label of a tab whose label is set empty, so the tab
// keeps a clickable size.
const NBSP = "\u00a0"

// Tab is one entry of the tab strip, bound to exactly one page.
type Tab struct {
	*widget.Widget

	notebook *Notebook // owner, non-owning reference
	page     *dom.Element
}

func newTab(el *dom.Element, nb *Notebook, page *dom.Element) *Tab {
	t := &Tab{
		Widget:   widget.New(el),
		notebook: nb,
		page:     page,
	}
	t.Observe(widget.EventClick, func() {
		t.SetSelected(true, UserInitiated)
	})
	return t
}

// Notebook returns the owning notebook, or nil once the tab was removed.
func (t *Tab) Notebook() *Notebook { return t.notebook }

// Page returns the page element bound to this tab.
func (t *Tab) Page() *dom.Element { return t.page }

// Index returns the tab position, or -1 once removed.
func (t *Tab) Index() int {
	if t.notebook == nil {
		return -1
	}
	return t.notebook.Index(t)
}

// IsSelected reports whether the tab carries the selected marker.
func (t *Tab) IsSelected() bool {
	if t.notebook == nil {
		return false
	}
	return t.HasClassName(t.notebook.tabSelectedClass())
}

// Click simulates user activation of the tab.
func (t *Tab) Click() {
	t.Fire(widget.EventClick)
}

// OnActivate registers the activation hook on the tab's label element. It
// runs whenever the tab becomes selected for any cause other than Swap,
// which makes it suitable for loading page content on first use.
func (t *Tab) OnActivate(fn func()) *Tab {
	if label := t.label(); label != nil {
		label.SetOnClick(fn)
	}
	return t
}

// SetSelected selects or deselects the tab.
//
// Selecting swaps out the notebook's current tab first. Deselecting a tab
// that is the only one in its notebook is a no-op; otherwise, unless cause
// is Swap, the previous tab (or the next one when there is no previous) is
// promoted so the notebook keeps exactly one selected tab.
//
// All state changes of a transition are applied before any signal fires.
func (t *Tab) SetSelected(selected bool, cause SelectionCause) *Tab {
	if t.notebook == nil {
		return t
	}
	if selected {
		t.selectTab(cause)
	} else {
		t.deselectTab(cause)
	}
	return t
}

func (t *Tab) selectTab(cause SelectionCause) {
	if t.IsSelected() {
		return
	}
	nb := t.notebook

	prev := nb.CurrentTab()
	if prev == t {
		prev = nil
	}
	if prev != nil {
		prev.mark(false)
		logging.LogTransition(nb.ID(), prev.ID(), "unselect", Swap.String())
	}
	t.mark(true)
	nb.setCurrent(t)
	logging.LogTransition(nb.ID(), t.ID(), "select", cause.String())

	if cause != Swap {
		t.activate()
	}

	if prev != nil {
		prev.EmitSignal(SignalUnselect, prev)
	}
	t.EmitSignal(SignalSelect, t)
	nb.EmitSignal(SignalCurrentTabChange, t)
}

func (t *Tab) deselectTab(cause SelectionCause) {
	nb := t.notebook
	if !t.IsSelected() || nb.Len() == 1 {
		return
	}

	t.mark(false)
	nb.setCurrent(nil)
	logging.LogTransition(nb.ID(), t.ID(), "unselect", cause.String())

	var promoted *Tab
	if cause != Swap {
		promoted = t.PrevTab()
		if promoted == nil {
			promoted = t.NextTab()
		}
	}
	if promoted != nil {
		promoted.mark(true)
		nb.setCurrent(promoted)
		logging.LogTransition(nb.ID(), promoted.ID(), "select", "promotion")
		promoted.activate()
	}

	t.EmitSignal(SignalUnselect, t)
	if promoted != nil {
		promoted.EmitSignal(SignalSelect, promoted)
		nb.EmitSignal(SignalCurrentTabChange, promoted)
	}
}

// mark applies or clears the selected markers on tab and page and toggles
// page visibility.
func (t *Tab) mark(on bool) {
	tabClass := t.notebook.tabSelectedClass()
	pageClass := t.notebook.pageSelectedClass()
	if on {
		t.AddClassName(tabClass)
		t.page.AddClassName(pageClass)
		t.page.Show()
		return
	}
	t.RemoveClassName(tabClass)
	t.page.RemoveClassName(pageClass)
	t.page.Hide()
}

func (t *Tab) activate() {
	label := t.label()
	if label == nil {
		return
	}
	if hook := label.OnClick(); hook != nil {
		hook()
	}
}

// Remove deselects the tab (promoting a neighbour), detaches tab and page
// from their containers and drops the tab from the notebook.
func (t *Tab) Remove() {
	nb := t.notebook
	if nb == nil {
		return
	}
	t.SetSelected(false, Programmatic)
	if t.notebook == nil {
		// Removed by a handler of its own unselect.
		return
	}

	if t.IsSelected() {
		// Sole tab, or selected again by a handler of the promoted tab:
		// drop the markers directly.
		t.mark(false)
		nb.setCurrent(nil)
	}
	idx := nb.Index(t)
	t.Element().Remove()
	t.page.Remove()
	nb.detach(t)
	t.notebook = nil

	if nb.Len() > 0 && nb.CurrentTab() == nil {
		promoted := nb.tabAt(idx - 1)
		if promoted == nil {
			promoted = nb.tabAt(idx)
		}
		if promoted != nil {
			promoted.SetSelected(true, Programmatic)
		}
	}

	logging.LogTransition(nb.ID(), t.ID(), "remove", Programmatic.String())
	t.EmitSignal(SignalRemove, t)
}

// PrevTab returns the tab before this one, or nil.
func (t *Tab) PrevTab() *Tab {
	if t.notebook == nil {
		return nil
	}
	return t.notebook.tabAt(t.notebook.Index(t) - 1)
}

// NextTab returns the tab after this one, or nil.
func (t *Tab) NextTab() *Tab {
	if t.notebook == nil {
		return nil
	}
	idx := t.notebook.Index(t)
	if idx < 0 {
		return nil
	}
	return t.notebook.tabAt(idx + 1)
}

// SetLabel changes the label text. An empty label is stored as NBSP.
func (t *Tab) SetLabel(text string) *Tab {
	if text == "" {
		text = NBSP
	}
	if label := t.label(); label != nil {
		label.SetText(text)
	}
	return t
}

// Label returns the label text.
func (t *Tab) Label() string {
	if label := t.label(); label != nil {
		return label.Text()
	}
	return ""
}

// label is the tab's primary child element.
func (t *Tab) label() *dom.Element {
	return t.Down(0)
}
