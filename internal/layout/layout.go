package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/notebook"
)

// Format identifies a layout encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	default:
		return "", &LayoutError{
			Type:    ErrTypeFormat,
			Message: fmt.Sprintf("unrecognised layout extension %q", filepath.Ext(path)),
			Path:    path,
		}
	}
}

// file is the on-disk shape. It differs from notebook.Snapshot only in
// accepting "page" as an alias for "content".
type file struct {
	ID    string    `yaml:"id" json:"id"`
	Class string    `yaml:"class" json:"class"`
	Tabs  []fileTab `yaml:"tabs" json:"tabs"`
}

type fileTab struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Content  any    `yaml:"content" json:"content"`
	Page     any    `yaml:"page" json:"page"`
	Selected bool   `yaml:"selected" json:"selected"`
}

// Load reads and parses the layout file at path.
func Load(path string) (*notebook.Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newReadError(path, err)
	}

	s, err := Parse(data, format)
	if err != nil {
		if le, ok := err.(*LayoutError); ok {
			le.Path = path
		}
		return nil, err
	}

	logging.Debug("Layout loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("tabs", len(s.Tabs)),
	)
	return s, nil
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (*notebook.Snapshot, error) {
	var f file
	switch format {
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, newParseError(format, err)
		}
	case FormatJSON, FormatJSONC:
		if format == FormatJSONC {
			data = jsonc.ToJSON(data)
		}
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, newParseError(format, err)
		}
	default:
		return nil, &LayoutError{
			Type:    ErrTypeFormat,
			Message: fmt.Sprintf("unsupported layout format %q", format),
		}
	}

	return f.snapshot()
}

func (f *file) snapshot() (*notebook.Snapshot, error) {
	s := &notebook.Snapshot{ID: f.ID, Class: f.Class}
	seen := make(map[string]int)
	selected := -1

	for i, t := range f.Tabs {
		if t.Content != nil && t.Page != nil {
			return nil, newValidationError("tab %d sets both content and page", i)
		}
		if t.ID != "" {
			if j, dup := seen[t.ID]; dup {
				return nil, newValidationError("tabs %d and %d share id %q", j, i, t.ID)
			}
			seen[t.ID] = i
		}
		if t.Selected {
			if selected >= 0 {
				return nil, newValidationError("tabs %d and %d are both selected", selected, i)
			}
			selected = i
		}

		data := t.Content
		if data == nil {
			data = t.Page
		}
		s.Tabs = append(s.Tabs, notebook.TabSpec{
			ID:       t.ID,
			Label:    t.Label,
			Content:  data,
			Selected: t.Selected,
		})
	}
	return s, nil
}

// Marshal encodes s for writing. JSONC output is plain JSON.
func Marshal(s *notebook.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatJSON, FormatJSONC:
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, &LayoutError{
			Type:    ErrTypeFormat,
			Message: fmt.Sprintf("unsupported layout format %q", format),
		}
	}
}
