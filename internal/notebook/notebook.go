package notebook

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/content"
	"github.com/muurk/notebook/internal/dom"
	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/widget"
)

// Signal names.
const (
	// SignalCurrentTabChange is emitted by the Notebook with the newly
	// selected *Tab as payload.
	SignalCurrentTabChange = "current_tab_change"
	// SignalSelect is emitted by a Tab when it becomes selected.
	SignalSelect = "select"
	// SignalUnselect is emitted by a Tab when it stops being selected.
	SignalUnselect = "unselect"
	// SignalRemove is emitted by a Tab after it was removed.
	SignalRemove = "remove"
)

// DefaultClass is the base class used when the root element has none.
const DefaultClass = "notebook"

// Notebook owns an ordered set of tabs and their pages.
type Notebook struct {
	*widget.Widget

	tabContainer  *dom.Element
	pageContainer *dom.Element

	tabs     []*Tab
	registry *widget.Registry[*Tab]
	current  string // id of the current tab, "" when none

	baseClass string
	serial    int

	observers []*Observer
}

// New creates an empty notebook. An empty id gets a generated one and an
// empty class falls back to DefaultClass.
func New(id, class string) *Notebook {
	if id == "" {
		id = "nb-" + uuid.NewString()[:8]
	}
	if class == "" {
		class = DefaultClass
	}
	root := dom.NewElement("div", dom.Attrs{"id": id, "class": class})
	root.AppendChild(dom.NewElement("ul", dom.Attrs{"class": class + "_tabs"}))
	root.AppendChild(dom.NewElement("div", dom.Attrs{"class": class + "_pages"}))
	return Hydrate(root)
}

// Hydrate builds a notebook over an existing element tree.
//
// The first two children of root are the tab strip and the page stack. Each
// child of the strip carrying the "<base>_tab" class is paired, by position,
// with the page-stack child at the same position among those carrying
// "<base>_page". The current tab is the one already carrying the
// "<base>_tab_selected" marker; if none does, the first tab is selected.
func Hydrate(root *dom.Element) *Notebook {
	if root.ID() == "" {
		root.SetID("nb-" + uuid.NewString()[:8])
	}
	base := root.FirstClassName()
	if base == "" {
		base = DefaultClass
		root.AddClassName(base)
	}

	nb := &Notebook{
		Widget:    widget.New(root),
		registry:  widget.NewRegistry[*Tab](),
		baseClass: base,
	}

	nb.tabContainer = root.Down(0)
	if nb.tabContainer == nil {
		nb.tabContainer = dom.NewElement("ul", dom.Attrs{"class": base + "_tabs"})
		root.AppendChild(nb.tabContainer)
	}
	nb.pageContainer = root.Down(1)
	if nb.pageContainer == nil {
		nb.pageContainer = dom.NewElement("div", dom.Attrs{"class": base + "_pages"})
		root.AppendChild(nb.pageContainer)
	}

	var pages []*dom.Element
	for _, el := range nb.pageContainer.ChildElements() {
		if el.HasClassName(nb.pageClass()) {
			pages = append(pages, el)
		}
	}

	var marked *Tab
	i := 0
	for _, el := range nb.tabContainer.ChildElements() {
		if !el.HasClassName(nb.tabClass()) {
			continue
		}
		var page *dom.Element
		if i < len(pages) {
			page = pages[i]
		} else {
			page = dom.NewElement("div", dom.Attrs{"class": nb.pageClass()})
			nb.pageContainer.AppendChild(page)
		}
		i++

		if el.ID() == "" || nb.idTaken(el.ID()) {
			el.SetID(nb.nextID("tab"))
		}
		if page.ID() == "" {
			page.SetID(nb.pageIDFor(el.ID()))
		}

		tab := newTab(el, nb, page)
		nb.tabs = append(nb.tabs, tab)
		nb.registry.Register(tab)

		if el.HasClassName(nb.tabSelectedClass()) && marked == nil {
			marked = tab
			continue
		}
		tab.mark(false)
	}
	nb.serial = len(nb.tabs)

	if marked != nil {
		// Bring the page marker in line with the tab marker.
		marked.mark(true)
		nb.current = marked.ID()
	}

	logging.Debug("Notebook hydrated",
		zap.String("notebook", nb.ID()),
		zap.Int("tabs", len(nb.tabs)),
		zap.String("current", nb.current),
	)

	if marked == nil && len(nb.tabs) > 0 {
		nb.tabs[0].SetSelected(true, Programmatic)
	}
	return nb
}

// BaseClass returns the class prefix used for markers.
func (nb *Notebook) BaseClass() string { return nb.baseClass }

// TabContainer returns the tab strip element.
func (nb *Notebook) TabContainer() *dom.Element { return nb.tabContainer }

// PageContainer returns the page stack element.
func (nb *Notebook) PageContainer() *dom.Element { return nb.pageContainer }

// Tabs returns the tabs in order.
func (nb *Notebook) Tabs() []*Tab {
	out := make([]*Tab, len(nb.tabs))
	copy(out, nb.tabs)
	return out
}

// Len returns the number of tabs.
func (nb *Notebook) Len() int { return len(nb.tabs) }

// CurrentTab returns the selected tab, or nil.
func (nb *Notebook) CurrentTab() *Tab {
	if nb.current == "" {
		return nil
	}
	tab, ok := nb.registry.Lookup(nb.current)
	if !ok {
		return nil
	}
	return tab
}

// Index returns the position of tab, or -1.
func (nb *Notebook) Index(tab *Tab) int {
	for i, t := range nb.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

// Tab resolves ref (a tab id, a tab element, or a *Tab) to a live tab of
// this notebook. It returns nil when nothing resolves.
func (nb *Notebook) Tab(ref any) *Tab {
	if t, ok := ref.(*Tab); ok && t == nil {
		return nil
	}
	tab, ok := nb.registry.Resolve(ref)
	if !ok || tab.notebook != nb {
		return nil
	}
	return tab
}

// TabByID returns the tab with the given id, or nil.
func (nb *Notebook) TabByID(id string) *Tab {
	return nb.Tab(id)
}

// SelectTab selects the tab ref resolves to. Unresolvable references are
// ignored.
func (nb *Notebook) SelectTab(ref any) *Notebook {
	tab := nb.Tab(ref)
	if tab == nil {
		return nb
	}
	tab.SetSelected(true, Programmatic)
	return nb
}

// RemoveTab removes the tab ref resolves to, or the current tab when ref is
// nil. Unresolvable references are ignored.
func (nb *Notebook) RemoveTab(ref any) *Notebook {
	var tab *Tab
	if ref == nil {
		tab = nb.CurrentTab()
	} else {
		tab = nb.Tab(ref)
	}
	if tab == nil {
		return nb
	}
	tab.Remove()
	return nb
}

// AppendTab adds a tab and page at the end and returns the new tab.
//
// data is either literal markup (a string) or a structured description, see
// package content. A tab appended to an empty notebook is always selected.
func (nb *Notebook) AppendTab(text string, data any, selected bool) *Tab {
	tab := nb.createTab(text, data)
	nb.tabContainer.AppendChild(tab.Element())
	nb.pageContainer.AppendChild(tab.page)
	nb.tabs = append(nb.tabs, tab)
	nb.settle(tab, selected)
	return tab
}

// PrependTab adds a tab and page at the start and returns the new tab.
func (nb *Notebook) PrependTab(text string, data any, selected bool) *Tab {
	tab := nb.createTab(text, data)
	nb.tabContainer.InsertBefore(tab.Element(), nb.firstTabElement())
	nb.pageContainer.InsertBefore(tab.page, nb.firstPageElement())
	nb.tabs = append([]*Tab{tab}, nb.tabs...)
	nb.settle(tab, selected)
	return tab
}

func (nb *Notebook) settle(tab *Tab, selected bool) {
	logging.Debug("Tab added",
		zap.String("notebook", nb.ID()),
		zap.String("tab", tab.ID()),
		zap.Int("index", nb.Index(tab)),
		zap.Bool("selected", selected),
	)
	if selected || nb.CurrentTab() == nil {
		tab.SetSelected(true, Programmatic)
	}
}

// createTab builds a detached tab+page pair and registers the tab. The page
// starts hidden.
func (nb *Notebook) createTab(text string, data any) *Tab {
	tabID := nb.nextID("tab")
	el := dom.NewElement("li", dom.Attrs{"id": tabID, "class": nb.tabClass()})
	el.AppendChild(dom.NewText("a", "", nil))

	page := dom.NewElement("div", dom.Attrs{"id": nb.pageIDFor(tabID), "class": nb.pageClass()})
	page.Hide()

	tab := newTab(el, nb, page)
	tab.SetLabel(text)
	nb.registry.Register(tab)
	content.Apply(page, data)
	for _, o := range nb.observers {
		o.watch(tab)
	}
	return tab
}

func (nb *Notebook) firstTabElement() *dom.Element {
	if len(nb.tabs) == 0 {
		return nb.tabContainer.FirstChild()
	}
	return nb.tabs[0].Element()
}

func (nb *Notebook) firstPageElement() *dom.Element {
	if len(nb.tabs) == 0 {
		return nb.pageContainer.FirstChild()
	}
	return nb.tabs[0].page
}

// nextID returns "<notebook>_<kind>_<n>" for the lowest unused n at or
// above the running serial. Ids are never reused within a notebook.
func (nb *Notebook) nextID(kind string) string {
	for {
		id := fmt.Sprintf("%s_%s_%d", nb.ID(), kind, nb.serial)
		nb.serial++
		if !nb.idTaken(id) {
			return id
		}
	}
}

func (nb *Notebook) pageIDFor(tabID string) string {
	prefix := nb.ID() + "_tab_"
	if len(tabID) > len(prefix) && tabID[:len(prefix)] == prefix {
		return nb.ID() + "_page_" + tabID[len(prefix):]
	}
	return tabID + "_page"
}

func (nb *Notebook) idTaken(id string) bool {
	_, ok := nb.registry.Lookup(id)
	return ok
}

func (nb *Notebook) tabAt(i int) *Tab {
	if i < 0 || i >= len(nb.tabs) {
		return nil
	}
	return nb.tabs[i]
}

func (nb *Notebook) setCurrent(tab *Tab) {
	if tab == nil {
		nb.current = ""
		return
	}
	nb.current = tab.ID()
}

func (nb *Notebook) detach(tab *Tab) {
	idx := nb.Index(tab)
	if idx < 0 {
		return
	}
	nb.tabs = append(nb.tabs[:idx], nb.tabs[idx+1:]...)
	nb.registry.Unregister(tab)
	if nb.current == tab.ID() {
		nb.current = ""
	}
}

func (nb *Notebook) tabClass() string          { return nb.baseClass + "_tab" }
func (nb *Notebook) pageClass() string         { return nb.baseClass + "_page" }
func (nb *Notebook) tabSelectedClass() string  { return nb.baseClass + "_tab_selected" }
func (nb *Notebook) pageSelectedClass() string { return nb.baseClass + "_page_selected" }
