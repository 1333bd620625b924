package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/notebook/internal/content"
	"github.com/muurk/notebook/internal/notebook"
)

const yamlLayout = `
id: docs
class: book
tabs:
  - label: Intro
    content: "<p>Welcome</p>"
  - label: API
    id: api
    selected: true
    page:
      tag: section
      children:
        - {tag: h2, text: Endpoints}
  - label: FAQ
`

const jsoncLayout = `{
  // comments and trailing commas are allowed
  "id": "docs",
  "tabs": [
    {"label": "Intro", "content": "<p>Welcome</p>"},
    {"label": "API", "selected": true, "page": {"tag": "section", "text": "Endpoints"}},
  ],
}`

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte(yamlLayout), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.ID != "docs" || s.Class != "book" || len(s.Tabs) != 3 {
		t.Fatalf("Parse() = %+v", s)
	}
	if s.Tabs[1].ID != "api" || !s.Tabs[1].Selected {
		t.Errorf("tab 1 = %+v", s.Tabs[1])
	}
	if s.Tabs[1].Content == nil {
		t.Error("page alias should populate Content")
	}

	nb := notebook.FromSnapshot(s)
	if nb.CurrentTab() == nil || nb.CurrentTab().ID() != "api" {
		t.Fatalf("Expected CurrentTab() api, got %v", nb.CurrentTab())
	}
	if got := nb.CurrentTab().Page().Text(); got != "Endpoints" {
		t.Errorf("Expected page text Endpoints, got %q", got)
	}
}

func TestParseJSONC(t *testing.T) {
	s, err := Parse([]byte(jsoncLayout), FormatJSONC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(s.Tabs) != 2 || !s.Tabs[1].Selected {
		t.Fatalf("Parse() = %+v", s)
	}

	// The same text is not valid plain JSON.
	if _, err := Parse([]byte(jsoncLayout), FormatJSON); !IsParseError(err) {
		t.Errorf("Expected a parse error from Parse(json), got %v", err)
	}
}

func TestParseEmptyYAML(t *testing.T) {
	s, err := Parse([]byte("  \n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(s.Tabs) != 0 {
		t.Errorf("Expected no tabs, got %v", s.Tabs)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "two selected",
			data: "tabs:\n  - {label: a, selected: true}\n  - {label: b, selected: true}\n",
			want: "both selected",
		},
		{
			name: "duplicate ids",
			data: "tabs:\n  - {label: a, id: x}\n  - {label: b, id: x}\n",
			want: "share id",
		},
		{
			name: "content and page",
			data: "tabs:\n  - {label: a, content: x, page: y}\n",
			want: "both content and page",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			if !IsValidationError(err) {
				t.Fatalf("Expected a validation error from Parse(), got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("tabs: [\n\tbroken"), FormatYAML)
	if !IsParseError(err) {
		t.Fatalf("Expected a parse error from Parse(), got %v", err)
	}
	if hint := GetTroubleshootingHint(err); !strings.Contains(hint, "not well-formed") {
		t.Errorf("hint = %q", hint)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs.yml")
	if err := os.WriteFile(path, []byte(yamlLayout), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Tabs) != 3 {
		t.Errorf("Expected Load() tabs 3, got %d", len(s.Tabs))
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !IsReadError(err) {
		t.Errorf("Expected a read error from Load(missing), got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !IsParseError(err) || !strings.HasPrefix(err.Error(), bad) {
		t.Errorf("Expected a parse error prefixed with the path from Load(bad), got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("Load(.txt) should fail")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":  FormatYAML,
		"a.YML":   FormatYAML,
		"a.json":  FormatJSON,
		"a.jsonc": FormatJSONC,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
	if _, err := FormatFromPath("a.toml"); err == nil {
		t.Error("FormatFromPath(.toml) should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	nb := notebook.New("main", "")
	nb.AppendTab("One", "<p>1</p>", false)
	nb.AppendTab("Two", nil, true)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		data, err := Marshal(nb.Snapshot(), format)
		if err != nil {
			t.Fatalf("Marshal(%s) error = %v", format, err)
		}
		s, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v\n%s", format, err, data)
		}
		if len(s.Tabs) != 2 || !s.Tabs[1].Selected || s.Tabs[0].Content != "<p>1</p>" {
			t.Errorf("%s round trip = %+v", format, s)
		}
	}
}

func TestMarshalRoundTripStructuredPage(t *testing.T) {
	nb := notebook.New("main", "")
	nb.AppendTab("List", content.Node{Tag: "ul", Children: []content.Node{
		{Tag: "li", Text: "one"},
		{Tag: "li", Text: "two"},
	}}, true)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		data, err := Marshal(nb.Snapshot(), format)
		if err != nil {
			t.Fatalf("Marshal(%s) error = %v", format, err)
		}
		s, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v\n%s", format, err, data)
		}
		page := notebook.FromSnapshot(s).Tabs()[0].Page()
		kids := page.ChildElements()
		if len(kids) != 1 || kids[0].Tag() != "ul" || len(kids[0].ChildElements()) != 2 {
			t.Fatalf("%s: Expected ul with 2 items, got %d top-level children\n%s", format, len(kids), data)
		}
		if got := page.Text(); got != "onetwo" {
			t.Errorf("%s: Expected text onetwo, got %q", format, got)
		}
	}
}
