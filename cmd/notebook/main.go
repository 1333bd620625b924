// Notebook is a terminal tabbed-notebook viewer and remote-control server.
//
// It opens notebook layouts (YAML or JSON files describing tabs and their
// pages), lets you switch, add, rename and remove tabs interactively, and can
// expose a notebook over WebSocket so other programs drive it and watch its
// signals.
//
// Usage:
//
//	notebook [command] [flags]
//
// Running without arguments opens the viewer on the configured default
// layout. See 'notebook --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/config"
	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/ui"
	"github.com/muurk/notebook/internal/version"
)

// Global flags
var (
	logLevel  string
	baseClass string
)

// registry is the loaded user configuration. It falls back to defaults when
// the file cannot be read.
var registry *config.Registry

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Tabbed notebook viewer and remote-control server",
	Long: `A terminal notebook: a row of tabs, each owning a page of content.

Layouts are YAML or JSON files listing the tabs, their labels and page
content. Exactly one tab is selected at a time; switching, adding and
removing tabs emits select, unselect, current_tab_change and remove
signals, which the viewer shows in its status line and the remote-control
server streams to WebSocket clients.

If no command is specified, the viewer opens the default layout.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the viewer
		return runView(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); NOTEBOOK_LOG_LEVEL when empty")
	rootCmd.PersistentFlags().StringVar(&baseClass, "class", "", "Base class for new notebooks (default from config)")

	rootCmd.AddCommand(versionCmd)
}

// setup initialises logging, loads the configuration and applies the theme.
func setup(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	reg, err := config.GetGlobalRegistry()
	if err != nil {
		logging.Warn("Using default configuration", zap.Error(err))
		reg = config.NewRegistry()
	}
	registry = reg
	ui.ApplyTheme(registry.Theme)

	if baseClass == "" {
		baseClass = registry.Preferences.BaseClass
	}
	return nil
}

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			return printJSON(version.Info())
		}
		fmt.Printf("notebook %s (commit: %s)\n", version.Version, version.Commit)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
}
