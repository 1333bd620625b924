// Package config provides user configuration management for the notebook tools.
//
// This package manages a YAML-based configuration file that stores viewer
// preferences, remote-control server settings, the renderer theme and the
// list of recently opened layouts. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/notebook/config.yaml or $HOME/.config/notebook/config.yaml
//   - macOS: $HOME/.config/notebook/config.yaml
//   - Windows: %LOCALAPPDATA%\notebook\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.Remote.Port = 9000
//	registry.TouchRecent("docs.yaml")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Command-line flags override values loaded from the file.
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
