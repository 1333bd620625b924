package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int          `yaml:"version"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
	Remote      *Remote      `yaml:"remote,omitempty"`
	Theme       *Theme       `yaml:"theme,omitempty"`
	Recent      []*Recent    `yaml:"recent,omitempty"` // Most recently opened layouts, newest first
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultLayout string `yaml:"default_layout,omitempty"` // Layout opened when none is given
	BaseClass     string `yaml:"base_class"`               // Class prefix for new notebooks
	ShowHelp      bool   `yaml:"show_help"`                // Start the viewer with full help expanded
}

// Remote holds settings for the remote-control server and scanner.
type Remote struct {
	Host        string `yaml:"host"`         // Listen address
	Port        int    `yaml:"port"`         // Listen port
	Advertise   bool   `yaml:"advertise"`    // Announce the server over mDNS
	ScanTimeout int    `yaml:"scan_timeout"` // mDNS scan timeout in seconds
}

// Theme maps renderer roles to lipgloss colour strings ("#7D56F4", "212").
// Empty values keep the built-in palette.
type Theme struct {
	Primary  string `yaml:"primary,omitempty"`  // Selected tab background
	Accent   string `yaml:"accent,omitempty"`   // Borders and highlights
	Muted    string `yaml:"muted,omitempty"`    // Unselected tabs and help text
	Error    string `yaml:"error,omitempty"`    // Error messages
	Selected string `yaml:"selected,omitempty"` // Selected tab foreground
}

// Recent records a layout the user opened.
type Recent struct {
	Path     string    `yaml:"path"`
	LastOpen time.Time `yaml:"last_open"`
}

// MaxRecent bounds the recent layout list.
const MaxRecent = 10

// Default values.
const (
	DefaultBaseClass   = "notebook"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8765
	DefaultScanTimeout = 5
)

func defaultPreferences() *Preferences {
	return &Preferences{BaseClass: DefaultBaseClass}
}

func defaultRemote() *Remote {
	return &Remote{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Advertise:   true,
		ScanTimeout: DefaultScanTimeout,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Preferences: defaultPreferences(),
		Remote:      defaultRemote(),
		Theme:       &Theme{},
	}
}

// fillDefaults initializes sections missing from a loaded file.
func (r *Registry) fillDefaults() {
	if r.Preferences == nil {
		r.Preferences = defaultPreferences()
	}
	if r.Preferences.BaseClass == "" {
		r.Preferences.BaseClass = DefaultBaseClass
	}
	if r.Remote == nil {
		r.Remote = defaultRemote()
	}
	if r.Remote.Port == 0 {
		r.Remote.Port = DefaultPort
	}
	if r.Remote.ScanTimeout == 0 {
		r.Remote.ScanTimeout = DefaultScanTimeout
	}
	if r.Theme == nil {
		r.Theme = &Theme{}
	}
}

// Validate checks values that would otherwise fail later at startup.
func (r *Registry) Validate() error {
	if r.Remote != nil {
		if r.Remote.Port < 0 || r.Remote.Port > 65535 {
			return fmt.Errorf("remote.port %d out of range", r.Remote.Port)
		}
		if r.Remote.ScanTimeout < 0 {
			return fmt.Errorf("remote.scan_timeout must not be negative")
		}
	}
	return nil
}

// ListenAddr returns the remote server's host:port.
func (r *Registry) ListenAddr() string {
	return fmt.Sprintf("%s:%d", r.Remote.Host, r.Remote.Port)
}

// TouchRecent moves path to the front of the recent list, recording the
// open time. The list is capped at MaxRecent entries.
func (r *Registry) TouchRecent(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	entry := &Recent{Path: path, LastOpen: time.Now()}
	out := []*Recent{entry}
	for _, rec := range r.Recent {
		if rec.Path != path {
			out = append(out, rec)
		}
	}
	if len(out) > MaxRecent {
		out = out[:MaxRecent]
	}
	r.Recent = out
}

// ResolveLayout returns the layout to open: arg when given, otherwise the
// configured default layout, otherwise "".
func (r *Registry) ResolveLayout(arg string) string {
	if arg != "" {
		return arg
	}
	if r.Preferences != nil {
		return r.Preferences.DefaultLayout
	}
	return ""
}
