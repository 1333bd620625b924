package ui

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/notebook/internal/config"
	"github.com/muurk/notebook/internal/content"
	"github.com/muurk/notebook/internal/dom"
	"github.com/muurk/notebook/internal/notebook"
)

func sample() *notebook.Notebook {
	nb := notebook.New("docs", "")
	nb.AppendTab("One", "<p>first page</p>", false)
	nb.AppendTab("Two", "<p>second page</p>", true)
	nb.AppendTab("Three", nil, false)
	return nb
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"plain", "hello", "hello"},
		{"paragraphs", "<p>a</p><p>b</p>", "a\n\nb"},
		{"inline", "<p>a <em>b</em> c</p>", "a b c"},
		{"list", "<ul><li>one</li><li>two</li></ul>", "• one\n• two"},
		{"entities", "a&nbsp;b &amp; c", "a\u00a0b & c"},
		{"break", "a<br>b", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := dom.NewElement("div", nil)
			el.Update(tt.markup)
			if got := PlainText(el); got != tt.want {
				t.Errorf("Expected PlainText(%q) %q, got %q", tt.markup, tt.want, got)
			}
		})
	}
}

func TestPlainTextElementTree(t *testing.T) {
	page := dom.NewElement("div", nil)
	content.Apply(page, map[string]any{
		"tag": "section",
		"children": []any{
			map[string]any{"tag": "h2", "text": "Title"},
			map[string]any{"tag": "ul", "children": []any{
				map[string]any{"tag": "li", "text": "x"},
				map[string]any{"tag": "li", "text": "y"},
			}},
		},
	})
	if got, want := PlainText(page), "Title\n\n• x\n• y"; got != want {
		t.Errorf("Expected PlainText() %q, got %q", want, got)
	}
	if PlainText(nil) != "" {
		t.Error("PlainText(nil) should be empty")
	}
}

func TestTabStripSpans(t *testing.T) {
	nb := sample()
	strip, spans := TabStrip(nb, RenderOptions{Focus: -1})

	if got := ansi.Strip(strip); got != " One │ Two │ Three " {
		t.Errorf("strip = %q", got)
	}
	if len(spans) != 3 {
		t.Fatalf("Expected len(spans) 3, got %d", len(spans))
	}

	tests := []struct {
		x    int
		want string
	}{
		{0, "One"},
		{4, "One"},
		{5, ""}, // separator
		{6, "Two"},
		{12, "Three"},
		{18, "Three"},
		{19, ""},
	}
	for _, tt := range tests {
		got := HitTest(spans, tt.x)
		label := ""
		if got != nil {
			label = got.Label()
		}
		if label != tt.want {
			t.Errorf("Expected HitTest(%d) %q, got %q", tt.x, tt.want, label)
		}
	}
}

func TestTabStripNumberedAndTruncated(t *testing.T) {
	nb := sample()

	strip, _ := TabStrip(nb, RenderOptions{Focus: -1, Numbered: true})
	if got := ansi.Strip(strip); !strings.Contains(got, "1 One") || !strings.Contains(got, "3 Three") {
		t.Errorf("numbered strip = %q", got)
	}

	strip, spans := TabStrip(nb, RenderOptions{Width: 12, Focus: -1})
	if w := lipgloss.Width(strip); w > 12 {
		t.Errorf("Expected truncated strip width <= 12, got %d", w)
	}
	if len(spans) != 2 {
		t.Errorf("Expected len(spans) 2 (third tab cut off), got %d", len(spans))
	}
}

func TestDisplayLabel(t *testing.T) {
	nb := notebook.New("", "")
	long := nb.AppendTab(strings.Repeat("x", 40), nil, false)
	empty := nb.AppendTab("", nil, false)

	got := DisplayLabel(long)
	if lipgloss.Width(got) != MaxLabelWidth || !strings.HasSuffix(got, "…") {
		t.Errorf("DisplayLabel(long) = %q", got)
	}
	if DisplayLabel(empty) != " " {
		t.Errorf("Expected DisplayLabel(empty) to be a space, got %q", DisplayLabel(empty))
	}
}

func TestRenderNotebook(t *testing.T) {
	out := ansi.Strip(RenderNotebook(sample(), 60))

	if !strings.Contains(out, "second page") {
		t.Errorf("output missing visible page:\n%s", out)
	}
	if strings.Contains(out, "first page") {
		t.Errorf("output shows a hidden page:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("─", 60)) {
		t.Errorf("output missing rule:\n%s", out)
	}

	empty := ansi.Strip(RenderNotebook(notebook.New("", ""), 60))
	if !strings.Contains(empty, "No tabs") {
		t.Errorf("empty notebook output = %q", empty)
	}
}

func TestRenderSummary(t *testing.T) {
	nb := sample()

	out, err := RenderSummary(nb, FormatJSON, 0)
	if err != nil {
		t.Fatalf("RenderSummary(json) error = %v", err)
	}
	var s Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if s.ID != "docs" || s.Current != "docs_tab_1" || len(s.Tabs) != 3 {
		t.Errorf("summary = %+v", s)
	}
	if !s.Tabs[1].Selected || s.Tabs[0].Text != "first page" {
		t.Errorf("tabs = %+v", s.Tabs)
	}

	out, err = RenderSummary(nb, FormatYAML, 0)
	if err != nil || !strings.Contains(out, "current: docs_tab_1") {
		t.Errorf("RenderSummary(yaml) = %q, %v", out, err)
	}

	if _, err := RenderSummary(nb, "xml", 0); err == nil {
		t.Error("RenderSummary(xml) should fail")
	}
}

func TestHeaderAndResult(t *testing.T) {
	h := NewHeader("Notebook server", "notebook serve docs.yaml",
		Param{"Listen", "0.0.0.0:8765"},
		Param{"Tabs", "3"},
	).SetWidth(60)
	out := ansi.Strip(h.Render())
	if !strings.Contains(out, "NOTEBOOK SERVER") {
		t.Errorf("header missing title:\n%s", out)
	}
	if strings.Index(out, "Listen:") > strings.Index(out, "Tabs:") {
		t.Errorf("params out of order:\n%s", out)
	}

	r := NewFailureResult("Layout invalid", errors.New("boom"), "Check the file").SetWidth(60)
	out = ansi.Strip(r.Render())
	for _, want := range []string{"FAILED", "Layout invalid", "boom", "Check the file"} {
		if !strings.Contains(out, want) {
			t.Errorf("failure box missing %q:\n%s", want, out)
		}
	}
}

func TestApplyTheme(t *testing.T) {
	saved := PrimaryColor
	defer func() {
		PrimaryColor = saved
		buildStyles()
	}()

	ApplyTheme(nil)
	if PrimaryColor != saved {
		t.Error("ApplyTheme(nil) should not change the palette")
	}

	ApplyTheme(&config.Theme{Primary: "212"})
	if PrimaryColor != lipgloss.Color("212") {
		t.Errorf("Expected PrimaryColor 212, got %v", PrimaryColor)
	}
	if ActiveTabStyle.GetBackground() != lipgloss.Color("212") {
		t.Error("ActiveTabStyle should be rebuilt from the new palette")
	}
}
