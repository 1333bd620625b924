package dom

import (
	"strings"
)

// Element is a node in an in-memory element tree.
//
// It carries the small subset of DOM behaviour the widgets need: ordered
// children, a class list, visibility, text or markup content and a single
// activation hook slot (the equivalent of an onclick property).
type Element struct {
	tag     string
	id      string
	attrs   map[string]string
	classes []string

	parent   *Element
	children []*Element

	text    string
	markup  string
	hidden  bool
	onClick func()
}

// Attrs holds element attributes passed to NewElement. The "id" and "class"
// keys are lifted into the element's id and class list.
type Attrs map[string]string

// NewElement creates a detached element.
func NewElement(tag string, attrs Attrs) *Element {
	e := &Element{
		tag:   tag,
		attrs: make(map[string]string),
	}
	for k, v := range attrs {
		switch k {
		case "id":
			e.id = v
		case "class":
			e.classes = strings.Fields(v)
		default:
			e.attrs[k] = v
		}
	}
	return e
}

// NewText creates a detached element holding plain text.
func NewText(tag, text string, attrs Attrs) *Element {
	e := NewElement(tag, attrs)
	e.text = text
	return e
}

// Tag returns the element tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the element id, or "" if none was set.
func (e *Element) ID() string { return e.id }

// SetID changes the element id.
func (e *Element) SetID(id string) { e.id = id }

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

// Attrs returns a copy of the attributes other than id and class, or nil
// when there are none.
func (e *Element) Attrs() Attrs {
	if len(e.attrs) == 0 {
		return nil
	}
	out := make(Attrs, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// ClassNames returns a copy of the class list in insertion order.
func (e *Element) ClassNames() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// FirstClassName returns the first class, or "" when the list is empty.
func (e *Element) FirstClassName() string {
	if len(e.classes) == 0 {
		return ""
	}
	return e.classes[0]
}

// HasClassName reports whether name is in the class list.
func (e *Element) HasClassName(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClassName appends name to the class list if absent.
func (e *Element) AddClassName(name string) {
	if name == "" || e.HasClassName(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClassName drops name from the class list.
func (e *Element) RemoveClassName(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// ChildElements returns a copy of the ordered child list.
func (e *Element) ChildElements() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// FirstChild returns the first child, or nil.
func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// Down returns the n-th child (zero based), or nil when out of range.
func (e *Element) Down(n int) *Element {
	if n < 0 || n >= len(e.children) {
		return nil
	}
	return e.children[n]
}

// Next returns the n-th following sibling (n=0 is the immediate sibling).
func (e *Element) Next(n int) *Element {
	if e.parent == nil {
		return nil
	}
	idx := e.parent.indexOf(e)
	if idx < 0 {
		return nil
	}
	return e.parent.Down(idx + 1 + n)
}

// Index returns the position of child, or -1.
func (e *Element) Index(child *Element) int {
	return e.indexOf(child)
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	child.detach()
	child.parent = e
	e.children = append(e.children, child)
}

// InsertBefore inserts child before ref. A nil or foreign ref appends.
func (e *Element) InsertBefore(child, ref *Element) {
	if ref == child {
		return
	}
	child.detach()
	idx := e.indexOf(ref)
	if ref == nil || idx < 0 {
		child.parent = e
		e.children = append(e.children, child)
		return
	}
	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
}

// RemoveChild detaches child from e. It is a no-op if child is not a child of e.
func (e *Element) RemoveChild(child *Element) {
	idx := e.indexOf(child)
	if idx < 0 {
		return
	}
	e.children = append(e.children[:idx], e.children[idx+1:]...)
	child.parent = nil
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	e.detach()
}

func (e *Element) detach() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// Show makes the element visible.
func (e *Element) Show() { e.hidden = false }

// Hide makes the element invisible.
func (e *Element) Hide() { e.hidden = true }

// Visible reports whether the element is shown.
func (e *Element) Visible() bool { return !e.hidden }

// Update replaces the element content with literal markup. Existing children
// are dropped.
func (e *Element) Update(markup string) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.text = ""
	e.markup = markup
}

// SetText replaces the element content with plain text.
func (e *Element) SetText(text string) {
	e.Update("")
	e.text = text
}

// OwnText returns the plain text set on e itself, excluding descendants.
func (e *Element) OwnText() string { return e.text }

// Markup returns the literal markup set by Update.
func (e *Element) Markup() string { return e.markup }

// Text returns the text content of e and its descendants, markup tags
// stripped.
func (e *Element) Text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	b.WriteString(e.text)
	if e.markup != "" {
		b.WriteString(MarkupText(e.markup))
	}
	for _, c := range e.children {
		c.writeText(b)
	}
}

// SetOnClick registers the element's activation hook. Passing nil clears it.
func (e *Element) SetOnClick(fn func()) { e.onClick = fn }

// OnClick returns the activation hook, or nil.
func (e *Element) OnClick() func() { return e.onClick }

// FindByClass returns every descendant (depth first) carrying class name.
func (e *Element) FindByClass(name string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.HasClassName(name) {
			out = append(out, c)
		}
		out = append(out, c.FindByClass(name)...)
	}
	return out
}
