package ui

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/muurk/notebook/internal/notebook"
)

// Summary is the machine-readable description printed by "notebook show".
type Summary struct {
	ID      string       `json:"id" yaml:"id"`
	Class   string       `json:"class" yaml:"class"`
	Current string       `json:"current,omitempty" yaml:"current,omitempty"`
	Tabs    []TabSummary `json:"tabs" yaml:"tabs"`
}

// TabSummary describes one tab of a Summary.
type TabSummary struct {
	Index    int    `json:"index" yaml:"index"`
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Selected bool   `json:"selected" yaml:"selected"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Summarize builds a Summary of nb.
func Summarize(nb *notebook.Notebook) Summary {
	s := Summary{ID: nb.ID(), Class: nb.BaseClass(), Tabs: []TabSummary{}}
	if cur := nb.CurrentTab(); cur != nil {
		s.Current = cur.ID()
	}
	for i, tab := range nb.Tabs() {
		s.Tabs = append(s.Tabs, TabSummary{
			Index:    i,
			ID:       tab.ID(),
			Label:    tab.Label(),
			Selected: tab.IsSelected(),
			Text:     PlainText(tab.Page()),
		})
	}
	return s
}

// Output formats accepted by RenderSummary.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RenderSummary renders nb in the named format. Text output is the styled
// notebook at the given width.
func RenderSummary(nb *notebook.Notebook, format string, width int) (string, error) {
	switch format {
	case "", FormatText:
		return RenderNotebook(nb, width), nil
	case FormatJSON:
		data, err := json.MarshalIndent(Summarize(nb), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode summary: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(Summarize(nb))
		if err != nil {
			return "", fmt.Errorf("failed to encode summary: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
