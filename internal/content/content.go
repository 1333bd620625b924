package content

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/muurk/notebook/internal/dom"
	"github.com/muurk/notebook/internal/logging"
)

// Node is a structured description of an element subtree. It is the shape
// produced by decoding page content from YAML or JSON.
type Node struct {
	Tag        string            `yaml:"tag,omitempty" json:"tag,omitempty"`
	ID         string            `yaml:"id,omitempty" json:"id,omitempty"`
	Class      string            `yaml:"class,omitempty" json:"class,omitempty"`
	Text       string            `yaml:"text,omitempty" json:"text,omitempty"`
	Markup     string            `yaml:"markup,omitempty" json:"markup,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Children   []Node            `yaml:"children,omitempty" json:"children,omitempty"`
}

// DefaultTag is used for nodes that omit a tag.
const DefaultTag = "div"

// Apply fills page from data and reports whether data had a supported shape.
//
// A string is stored verbatim as markup. A Node, *Node, []Node, or a loose
// map/slice that decodes into nodes is converted to elements and appended to
// page. Any other value leaves page untouched.
func Apply(page *dom.Element, data any) bool {
	switch v := data.(type) {
	case nil:
		return false
	case string:
		page.Update(v)
		return true
	}

	nodes, ok := Decode(data)
	if !ok {
		logging.Debug("Ignoring page data of unsupported shape",
			zap.String("page", page.ID()),
			zap.String("type", fmt.Sprintf("%T", data)),
		)
		return false
	}
	for _, n := range nodes {
		page.AppendChild(n.Build())
	}
	return true
}

// Decode converts a structured value into nodes.
func Decode(data any) ([]Node, bool) {
	switch v := data.(type) {
	case Node:
		return []Node{v}, true
	case *Node:
		if v == nil {
			return nil, false
		}
		return []Node{*v}, true
	case []Node:
		return v, true
	case map[string]any:
		n, ok := nodeFromMap(v)
		if !ok {
			return nil, false
		}
		return []Node{n}, true
	case []any:
		var out []Node
		for _, item := range v {
			switch iv := item.(type) {
			case string:
				out = append(out, Node{Tag: "span", Text: iv})
			default:
				sub, ok := Decode(iv)
				if !ok {
					return nil, false
				}
				out = append(out, sub...)
			}
		}
		return out, true
	case *yaml.Node:
		if v == nil {
			return nil, false
		}
		var loose any
		if err := v.Decode(&loose); err != nil {
			return nil, false
		}
		return Decode(loose)
	}
	return nil, false
}

func nodeFromMap(m map[string]any) (Node, bool) {
	var n Node
	for key, raw := range m {
		switch key {
		case "tag":
			n.Tag = stringOf(raw)
		case "id":
			n.ID = stringOf(raw)
		case "class":
			n.Class = stringOf(raw)
		case "text":
			n.Text = stringOf(raw)
		case "markup":
			n.Markup = stringOf(raw)
		case "attributes":
			attrs, ok := raw.(map[string]any)
			if !ok {
				return Node{}, false
			}
			n.Attributes = make(map[string]string, len(attrs))
			for k, v := range attrs {
				n.Attributes[k] = stringOf(v)
			}
		case "children":
			kids, ok := Decode(raw)
			if !ok {
				return Node{}, false
			}
			n.Children = kids
		}
	}
	return n, true
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// Build creates the element subtree described by n. Markup, when set, takes
// the place of Text.
func (n Node) Build() *dom.Element {
	tag := n.Tag
	if tag == "" {
		tag = DefaultTag
	}
	attrs := dom.Attrs{}
	for k, v := range n.Attributes {
		attrs[k] = v
	}
	if n.ID != "" {
		attrs["id"] = n.ID
	}
	if n.Class != "" {
		attrs["class"] = n.Class
	}
	e := dom.NewText(tag, n.Text, attrs)
	if n.Markup != "" {
		e.Update(n.Markup)
	}
	for _, c := range n.Children {
		e.AppendChild(c.Build())
	}
	return e
}

// FromElement describes the subtree rooted at e. Building the result gives
// back an equivalent subtree.
func FromElement(e *dom.Element) Node {
	n := Node{
		Tag:        e.Tag(),
		ID:         e.ID(),
		Class:      strings.Join(e.ClassNames(), " "),
		Text:       e.OwnText(),
		Markup:     e.Markup(),
		Attributes: e.Attrs(),
	}
	for _, c := range e.ChildElements() {
		n.Children = append(n.Children, FromElement(c))
	}
	return n
}

// String renders n as compact markup, mainly for logs and tests.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	tag := n.Tag
	if tag == "" {
		tag = DefaultTag
	}
	b.WriteString("<" + tag)
	if n.ID != "" {
		b.WriteString(` id="` + html.EscapeString(n.ID) + `"`)
	}
	if n.Class != "" {
		b.WriteString(` class="` + html.EscapeString(n.Class) + `"`)
	}
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" " + k + `="` + html.EscapeString(n.Attributes[k]) + `"`)
	}
	b.WriteString(">")
	if n.Markup != "" {
		b.WriteString(n.Markup)
	} else {
		b.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</" + tag + ">")
}
