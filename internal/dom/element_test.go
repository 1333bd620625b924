package dom

import (
	"strings"
	"testing"
)

func TestNewElementAttrs(t *testing.T) {
	e := NewElement("li", Attrs{"id": "nb_tab_0", "class": "notebook_tab extra", "title": "x"})

	if e.ID() != "nb_tab_0" {
		t.Errorf("Expected ID() %q, got %q", "nb_tab_0", e.ID())
	}
	if e.FirstClassName() != "notebook_tab" {
		t.Errorf("Expected FirstClassName() %q, got %q", "notebook_tab", e.FirstClassName())
	}
	if !e.HasClassName("extra") {
		t.Error("expected class 'extra'")
	}
	if v, ok := e.Attr("title"); !ok || v != "x" {
		t.Errorf("Attr(title) = %q, %v", v, ok)
	}
	if _, ok := e.Attr("id"); ok {
		t.Error("id should not be kept as a plain attribute")
	}
}

func TestClassNames(t *testing.T) {
	e := NewElement("div", nil)
	e.AddClassName("a")
	e.AddClassName("b")
	e.AddClassName("a")

	if got := e.ClassNames(); len(got) != 2 {
		t.Fatalf("Expected ClassNames() 2 entries, got %v", got)
	}

	e.RemoveClassName("a")
	if e.HasClassName("a") {
		t.Error("class 'a' should be removed")
	}
	if e.FirstClassName() != "b" {
		t.Errorf("Expected FirstClassName() b, got %q", e.FirstClassName())
	}

	e.RemoveClassName("missing")
	if len(e.ClassNames()) != 1 {
		t.Error("removing a missing class should not change the list")
	}
}

func TestTreeMutation(t *testing.T) {
	root := NewElement("ul", nil)
	a := NewElement("li", Attrs{"id": "a"})
	b := NewElement("li", Attrs{"id": "b"})
	c := NewElement("li", Attrs{"id": "c"})

	root.AppendChild(b)
	root.InsertBefore(a, root.FirstChild())
	root.AppendChild(c)

	want := []string{"a", "b", "c"}
	for i, child := range root.ChildElements() {
		if child.ID() != want[i] {
			t.Errorf("Expected child %d %q, got %q", i, want[i], child.ID())
		}
		if child.Parent() != root {
			t.Errorf("child %d parent not set", i)
		}
	}

	if a.Next(0) != b || a.Next(1) != c || c.Next(0) != nil {
		t.Error("Next() navigation mismatch")
	}
	if root.Down(1) != b || root.Down(5) != nil || root.Down(-1) != nil {
		t.Error("Down() navigation mismatch")
	}

	root.RemoveChild(b)
	if b.Parent() != nil {
		t.Error("removed child should be detached")
	}
	if root.Index(c) != 1 {
		t.Errorf("Expected Index(c) 1, got %d", root.Index(c))
	}

	// Re-inserting an attached element moves it.
	other := NewElement("ul", nil)
	other.AppendChild(a)
	if root.Index(a) != -1 || other.Index(a) != 0 {
		t.Error("AppendChild should move an attached element")
	}

	// A foreign reference appends.
	root.InsertBefore(b, NewElement("li", nil))
	if root.Index(b) != len(root.ChildElements())-1 {
		t.Error("InsertBefore with foreign ref should append")
	}
}

func TestVisibility(t *testing.T) {
	e := NewElement("div", nil)
	if !e.Visible() {
		t.Error("new element should be visible")
	}
	e.Hide()
	if e.Visible() {
		t.Error("Hide() should hide")
	}
	e.Show()
	if !e.Visible() {
		t.Error("Show() should show")
	}
}

func TestUpdateAndText(t *testing.T) {
	e := NewElement("div", nil)
	child := NewText("span", "old", nil)
	e.AppendChild(child)

	e.Update("<p>hi &amp; bye</p>")
	if e.Markup() != "<p>hi &amp; bye</p>" {
		t.Errorf("Markup() = %q", e.Markup())
	}
	if len(e.ChildElements()) != 0 || child.Parent() != nil {
		t.Error("Update() should drop existing children")
	}
	if e.Text() != "hi & bye" {
		t.Errorf("Expected Text() %q, got %q", "hi & bye", e.Text())
	}

	e.SetText("plain")
	if e.Markup() != "" || e.Text() != "plain" {
		t.Errorf("SetText() left markup=%q text=%q", e.Markup(), e.Text())
	}
}

func TestMarkupText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"<b>bold</b> text", "bold text"},
		{"&nbsp;", "\u00a0"},
		{"a &lt; b", "a < b"},
		{"5 &#8364; &copy; a<b", "5 € © a<b"},
		{"x &amp;&amp; y", "x && y"},
		{"<p>one<br/>two</p>", "onetwo"},
		{"1 < 2", "1 < 2"},
		{"<!-- note -->kept", "kept"},
	}
	for _, tt := range tests {
		if got := MarkupText(tt.in); got != tt.want {
			t.Errorf("MarkupText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestWalkMarkup(t *testing.T) {
	var got []string
	WalkMarkup(`<ul class="x"><li>one</li><LI>two &amp; three</li></ul>`, MarkupVisitor{
		Text:  func(s string) { got = append(got, "text:"+s) },
		Start: func(tag string) { got = append(got, "start:"+tag) },
		End:   func(tag string) { got = append(got, "end:"+tag) },
	})
	want := []string{
		"start:ul", "start:li", "text:one", "end:li",
		"start:li", "text:two & three", "end:li", "end:ul",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// Nil callbacks are skipped.
	WalkMarkup("<b>x</b>", MarkupVisitor{})
}

func TestElementTextDecodesEntities(t *testing.T) {
	e := NewElement("div", nil)
	e.Update("5 &#8364; &copy; a<b")
	if got := e.Text(); got != "5 € © a<b" {
		t.Errorf("Expected text %q, got %q", "5 € © a<b", got)
	}
}

func TestOnClickAndFind(t *testing.T) {
	root := NewElement("div", nil)
	inner := NewElement("div", Attrs{"class": "x"})
	leaf := NewElement("a", Attrs{"class": "x"})
	inner.AppendChild(leaf)
	root.AppendChild(inner)

	if got := root.FindByClass("x"); len(got) != 2 || got[0] != inner || got[1] != leaf {
		t.Errorf("FindByClass() = %v", got)
	}

	called := 0
	leaf.SetOnClick(func() { called++ })
	leaf.OnClick()()
	if called != 1 {
		t.Errorf("Expected the hook to run once, got %d", called)
	}
	leaf.SetOnClick(nil)
	if leaf.OnClick() != nil {
		t.Error("hook should be cleared")
	}
}
