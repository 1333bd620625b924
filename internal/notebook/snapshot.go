package notebook

import (
	"golang.org/x/net/html"

	"github.com/muurk/notebook/internal/content"
	"github.com/muurk/notebook/internal/dom"
)

// Snapshot is a structural description of a notebook: its tabs in order and
// which one is marked active.
type Snapshot struct {
	ID    string    `yaml:"id,omitempty" json:"id,omitempty"`
	Class string    `yaml:"class,omitempty" json:"class,omitempty"`
	Tabs  []TabSpec `yaml:"tabs" json:"tabs"`
}

// TabSpec describes one tab of a Snapshot. Content follows the shapes
// accepted by content.Apply.
type TabSpec struct {
	ID       string `yaml:"id,omitempty" json:"id,omitempty"`
	Label    string `yaml:"label" json:"label"`
	Content  any    `yaml:"content,omitempty" json:"content,omitempty"`
	Selected bool   `yaml:"selected,omitempty" json:"selected,omitempty"`
}

// FromSnapshot renders s into an element tree, with the selected markers in
// place, and hydrates a notebook from it.
func FromSnapshot(s *Snapshot) *Notebook {
	class := s.Class
	if class == "" {
		class = DefaultClass
	}
	root := dom.NewElement("div", dom.Attrs{"id": s.ID, "class": class})
	strip := dom.NewElement("ul", dom.Attrs{"class": class + "_tabs"})
	stack := dom.NewElement("div", dom.Attrs{"class": class + "_pages"})
	root.AppendChild(strip)
	root.AppendChild(stack)

	for _, spec := range s.Tabs {
		tab := dom.NewElement("li", dom.Attrs{"id": spec.ID, "class": class + "_tab"})
		label := spec.Label
		if label == "" {
			label = NBSP
		}
		tab.AppendChild(dom.NewText("a", label, nil))

		page := dom.NewElement("div", dom.Attrs{"class": class + "_page"})
		content.Apply(page, spec.Content)

		if spec.Selected {
			tab.AddClassName(class + "_tab_selected")
			page.AddClassName(class + "_page_selected")
		} else {
			page.Hide()
		}
		strip.AppendChild(tab)
		stack.AppendChild(page)
	}
	return Hydrate(root)
}

// Snapshot describes the notebook's current structure. Page content is
// captured in a shape FromSnapshot restores: literal markup as a string,
// child elements as []content.Node.
func (nb *Notebook) Snapshot() *Snapshot {
	s := &Snapshot{ID: nb.ID(), Class: nb.baseClass}
	for _, t := range nb.tabs {
		s.Tabs = append(s.Tabs, TabSpec{
			ID:       t.ID(),
			Label:    t.Label(),
			Content:  pageContent(t.page),
			Selected: t.IsSelected(),
		})
	}
	return s
}

func pageContent(page *dom.Element) any {
	kids := page.ChildElements()
	if len(kids) == 0 {
		if m := page.Markup(); m != "" {
			return m
		}
		if txt := page.OwnText(); txt != "" {
			return html.EscapeString(txt)
		}
		return nil
	}

	nodes := make([]content.Node, 0, len(kids)+1)
	if m, txt := page.Markup(), page.OwnText(); m != "" || txt != "" {
		// Own content renders ahead of the children.
		nodes = append(nodes, content.Node{Tag: "span", Markup: m, Text: txt})
	}
	for _, c := range kids {
		nodes = append(nodes, content.FromElement(c))
	}
	return nodes
}
