package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// useTempConfigHome points the config directory at a temporary directory.
func useTempConfigHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME override only applies on Linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "notebook") {
		t.Errorf("GetConfigDir() = %v, should contain 'notebook'", configDir)
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDirHonoursXDG(t *testing.T) {
	dir := useTempConfigHome(t)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "notebook"); got != want {
		t.Errorf("Expected GetConfigDir() %v, got %v", want, got)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("Expected NewRegistry().Version 1, got %v", reg.Version)
	}
	if reg.Preferences == nil || reg.Remote == nil || reg.Theme == nil {
		t.Fatal("NewRegistry() sections should not be nil")
	}
	if reg.Preferences.BaseClass != DefaultBaseClass {
		t.Errorf("Expected BaseClass %v, got %v", DefaultBaseClass, reg.Preferences.BaseClass)
	}
	if reg.Remote.Port != DefaultPort {
		t.Errorf("Expected Remote.Port %v, got %v", DefaultPort, reg.Remote.Port)
	}
	if !reg.Remote.Advertise {
		t.Error("Remote.Advertise should be true by default")
	}
	if reg.ListenAddr() != "0.0.0.0:8765" {
		t.Errorf("ListenAddr() = %v", reg.ListenAddr())
	}
}

func TestRegistryTouchRecent(t *testing.T) {
	reg := NewRegistry()

	reg.TouchRecent("/tmp/a.yaml")
	reg.TouchRecent("/tmp/b.yaml")
	reg.TouchRecent("/tmp/a.yaml")

	if len(reg.Recent) != 2 {
		t.Fatalf("Expected len(Recent) 2, got %d", len(reg.Recent))
	}
	if reg.Recent[0].Path != "/tmp/a.yaml" || reg.Recent[1].Path != "/tmp/b.yaml" {
		t.Errorf("Recent = %v, %v", reg.Recent[0].Path, reg.Recent[1].Path)
	}
	if reg.Recent[0].LastOpen.IsZero() {
		t.Error("LastOpen should be set")
	}

	for i := 0; i < MaxRecent+5; i++ {
		reg.TouchRecent(filepath.Join("/tmp", string(rune('c'+i))+".yaml"))
	}
	if len(reg.Recent) != MaxRecent {
		t.Errorf("Expected len(Recent) %d, got %d", MaxRecent, len(reg.Recent))
	}
}

func TestRegistryResolveLayout(t *testing.T) {
	reg := NewRegistry()
	if got := reg.ResolveLayout(""); got != "" {
		t.Errorf("Expected ResolveLayout(\"\") to be empty, got %q", got)
	}

	reg.Preferences.DefaultLayout = "home.yaml"
	if got := reg.ResolveLayout(""); got != "home.yaml" {
		t.Errorf("Expected ResolveLayout(\"\") home.yaml, got %q", got)
	}
	if got := reg.ResolveLayout("other.yaml"); got != "other.yaml" {
		t.Errorf("ResolveLayout(other) = %q", got)
	}
}

func TestRegistryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Registry)
		wantErr bool
	}{
		{"defaults", func(r *Registry) {}, false},
		{"port too large", func(r *Registry) { r.Remote.Port = 70000 }, true},
		{"negative port", func(r *Registry) { r.Remote.Port = -1 }, true},
		{"negative timeout", func(r *Registry) { r.Remote.ScanTimeout = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			tt.mutate(reg)
			if err := reg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Expected Validate() error: %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	useTempConfigHome(t)

	reg := NewRegistry()
	reg.Preferences.DefaultLayout = "/srv/docs.yaml"
	reg.Remote.Port = 9000
	reg.Theme.Primary = "#7D56F4"
	reg.TouchRecent("/srv/docs.yaml")

	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, _ := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# Notebook Configuration File") {
		t.Errorf("saved file missing header:\n%s", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after Save()")
	}

	loaded, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if loaded.Remote.Port != 9000 || loaded.Theme.Primary != "#7D56F4" {
		t.Errorf("loaded Remote.Port=%v Theme.Primary=%v", loaded.Remote.Port, loaded.Theme.Primary)
	}
	if loaded.Preferences.DefaultLayout != "/srv/docs.yaml" {
		t.Errorf("loaded DefaultLayout = %v", loaded.Preferences.DefaultLayout)
	}
	if len(loaded.Recent) != 1 || loaded.Recent[0].Path != "/srv/docs.yaml" {
		t.Errorf("loaded Recent = %v", loaded.Recent)
	}
}

func TestLoadFillsMissingSections(t *testing.T) {
	dir := useTempConfigHome(t)
	configDir := filepath.Join(dir, "notebook")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	reg, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if reg.Preferences == nil || reg.Remote == nil || reg.Theme == nil {
		t.Fatal("missing sections should be filled with defaults")
	}
	if reg.Remote.Port != DefaultPort || reg.Preferences.BaseClass != DefaultBaseClass {
		t.Errorf("defaults not applied: port=%v class=%v", reg.Remote.Port, reg.Preferences.BaseClass)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"wrong version", "version: 2\n", "unsupported config version"},
		{"bad yaml", "version: [\n", "failed to parse"},
		{"bad port", "version: 1\nremote:\n  port: 99999\n", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := useTempConfigHome(t)
			configDir := filepath.Join(dir, "notebook")
			if err := os.MkdirAll(configDir, 0700); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := ReloadRegistry()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected ReloadRegistry() error %q, got %v", tt.want, err)
			}
		})
	}
}

func TestMissingFileGivesDefaults(t *testing.T) {
	useTempConfigHome(t)

	reg, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if reg.Remote.Port != DefaultPort {
		t.Errorf("Expected Remote.Port %v, got %v", DefaultPort, reg.Remote.Port)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	useTempConfigHome(t)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if _, err := CreateDefaultConfig(); err == nil {
		t.Error("second CreateDefaultConfig() should refuse to overwrite")
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
