package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/muurk/notebook/internal/config"
	"github.com/muurk/notebook/internal/discovery"
	"github.com/muurk/notebook/internal/layout"
	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/notebook"
	"github.com/muurk/notebook/internal/remote"
	"github.com/muurk/notebook/internal/tui"
	"github.com/muurk/notebook/internal/ui"
)

// Command flags
var (
	showHelp     bool
	outputFormat string
	outputWidth  int

	serveHost      string
	servePort      int
	serveAdvertise bool
	serveName      string

	scanTimeout int
	scanPlain   bool
	scanQuick   bool
	scanWait    string
	scanFollow  bool
)

func init() {
	rootCmd.Flags().BoolVar(&showHelp, "help-keys", false, "Start the viewer with full key help expanded")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// openNotebook loads the layout named by arg, or the configured default,
// and returns the hydrated notebook. Without any layout a welcome notebook
// is returned.
func openNotebook(arg string) (*notebook.Notebook, error) {
	path := registry.ResolveLayout(arg)
	if path == "" {
		return welcomeNotebook(), nil
	}

	snap, err := layout.Load(path)
	if err != nil {
		ui.NewPrinter(os.Stderr).PrintFailure("Cannot open layout", err, layout.GetTroubleshootingHint(err))
		return nil, fmt.Errorf("failed to load layout %s: %w", path, err)
	}
	if snap.Class == "" {
		snap.Class = baseClass
	}

	registry.TouchRecent(path)
	if err := registry.Save(); err != nil {
		logging.Warn("Failed to record recent layout", zap.String("path", path), zap.Error(err))
	}

	return notebook.FromSnapshot(snap), nil
}

func welcomeNotebook() *notebook.Notebook {
	nb := notebook.New("", baseClass)
	nb.AppendTab("Welcome", map[string]any{
		"tag": "div",
		"children": []any{
			map[string]any{"tag": "h1", "text": "Notebook"},
			map[string]any{"tag": "p", "text": "No layout given. Open one with: notebook view docs.yaml"},
			map[string]any{"tag": "p", "text": "Or set preferences.default_layout in the config file."},
		},
	}, false)
	nb.AppendTab("Keys", map[string]any{
		"tag": "ul",
		"children": []any{
			map[string]any{"tag": "li", "text": "left/right or h/l: previous/next tab"},
			map[string]any{"tag": "li", "text": "1-9: jump to tab"},
			map[string]any{"tag": "li", "text": "n / N: append / prepend a tab"},
			map[string]any{"tag": "li", "text": "r: rename, x: remove"},
			map[string]any{"tag": "li", "text": "?: help, q: quit"},
		},
	}, false)
	return nb
}

func layoutArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// viewCmd opens the interactive viewer
var viewCmd = &cobra.Command{
	Use:   "view [layout]",
	Short: "Open a notebook in the interactive viewer",
	Long: `Open a notebook layout full screen.

Tabs can be switched with the keyboard or the mouse. New tabs can be
appended or prepended, renamed and removed. The status line shows the
signals each action emitted.`,
	Example: `  # Open a layout
  notebook view docs.yaml

  # Open the configured default layout (same as running 'notebook')
  notebook view

  # Log to a file while the viewer owns the terminal
  NOTEBOOK_LOG_LEVEL=debug NOTEBOOK_LOG_FILE=/tmp/notebook.log notebook view docs.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&showHelp, "help-keys", false, "Start with full key help expanded")
}

func runView(cmd *cobra.Command, args []string) error {
	nb, err := openNotebook(layoutArg(args))
	if err != nil {
		return err
	}
	return tui.Run(nb, tui.Options{ShowHelp: showHelp || registry.Preferences.ShowHelp})
}

// showCmd renders a notebook once
var showCmd = &cobra.Command{
	Use:   "show [layout]",
	Short: "Render a notebook to stdout",
	Long: `Render a notebook layout once and exit.

Text output draws the tab strip and the selected tab's page. JSON and YAML
output summarise every tab for scripting.`,
	Example: `  # Render the selected page
  notebook show docs.yaml

  # Tab summary for scripts
  notebook show docs.yaml --format json

  # Fixed width, e.g. for piping into a file
  notebook show docs.yaml --width 100`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", ui.FormatText, "Output format (text, json, yaml)")
	showCmd.Flags().IntVar(&outputWidth, "width", 0, "Output width (default: terminal width)")
}

func runShow(cmd *cobra.Command, args []string) error {
	nb, err := openNotebook(layoutArg(args))
	if err != nil {
		return err
	}

	p := ui.NewPrinter(os.Stdout)
	if outputWidth > 0 {
		p.SetWidth(outputWidth)
	}

	if outputFormat == ui.FormatText && isTerminal() {
		out, err := ui.RenderSummary(nb, ui.FormatText, p.Width())
		if err != nil {
			return err
		}
		return ui.RenderOnce(os.Stdout, out)
	}
	return p.PrintNotebook(nb, outputFormat)
}

// serveCmd runs the remote-control server
var serveCmd = &cobra.Command{
	Use:   "serve [layout]",
	Short: "Expose a notebook over WebSocket",
	Long: `Run a WebSocket server that lets other programs drive a notebook.

Clients send JSON commands (select, append, prepend, label, remove, state)
and receive every signal the notebook emits, followed by a state snapshot.
The server is announced over mDNS unless --advertise=false is given, so
'notebook scan' on another machine can find it.`,
	Example: `  # Serve a layout on the configured port
  notebook serve docs.yaml

  # Local only, no mDNS
  notebook serve docs.yaml --host 127.0.0.1 --advertise=false

  # Drive it with any WebSocket client
  websocat ws://localhost:8765/ws
  {"type":"select","tab":"docs_tab_1"}`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", true, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&serveName, "name", "", "mDNS instance name (default: \"<id> on <host>\")")
}

func runServe(cmd *cobra.Command, args []string) error {
	nb, err := openNotebook(layoutArg(args))
	if err != nil {
		return err
	}

	cfg := &remote.Config{
		Host:      registry.Remote.Host,
		Port:      registry.Remote.Port,
		Advertise: registry.Remote.Advertise,
		Name:      serveName,
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("advertise") {
		cfg.Advertise = serveAdvertise
	}

	srv := remote.New(cfg, nb)
	if err := srv.Listen(); err != nil {
		ui.NewPrinter(os.Stderr).PrintFailure("Cannot start server", err,
			"Check that the port is free, or pick another with --port")
		return err
	}

	advertise := "disabled"
	if cfg.Advertise {
		advertise = discovery.ServiceType
	}
	ui.NewPrinter(os.Stdout).PrintHeader("NOTEBOOK SERVER", "notebook serve",
		ui.Param{Key: "Notebook", Value: nb.ID()},
		ui.Param{Key: "Tabs", Value: strconv.Itoa(nb.Len())},
		ui.Param{Key: "Listen", Value: srv.Addr().String()},
		ui.Param{Key: "mDNS", Value: advertise},
	)
	fmt.Println("Press Ctrl+C to stop")

	return srv.Start()
}

// scanCmd discovers notebook servers
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find notebook servers on the network",
	Long: `Discover notebook servers announced over mDNS.

In a terminal the results are shown in an interactive list; pick one to
print its URL, or to stream its signals with --follow. With --plain, or
when stdout is not a terminal, the results are printed as text.`,
	Example: `  # Interactive scan
  notebook scan

  # Script-friendly output
  notebook scan --plain --timeout 3

  # Wait for a specific notebook to appear, then watch it
  notebook scan --wait docs --follow`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default from config)")
	scanCmd.Flags().BoolVar(&scanPlain, "plain", false, "Print results as text instead of the interactive list")
	scanCmd.Flags().BoolVar(&scanQuick, "quick", false, "Short 2-second scan")
	scanCmd.Flags().StringVar(&scanWait, "wait", "", "Wait for the server exposing this notebook id")
	scanCmd.Flags().BoolVar(&scanFollow, "follow", false, "Connect to the chosen server and print its signals")
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner()
	if registry.Remote.ScanTimeout > 0 {
		scanner.Timeout = time.Duration(registry.Remote.ScanTimeout) * time.Second
	}
	if scanTimeout > 0 {
		scanner.Timeout = time.Duration(scanTimeout) * time.Second
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var chosen *discovery.Server
	switch {
	case scanWait != "":
		fmt.Printf("Waiting for notebook %q (timeout: %s)...\n", scanWait, scanner.Timeout)
		srv, err := scanner.WaitFor(ctx, scanWait)
		if err != nil {
			return fmt.Errorf("notebook %q not found: %w", scanWait, err)
		}
		chosen = srv

	case scanPlain || scanQuick || !isTerminal():
		servers, err := plainScan(ctx, scanner)
		if err != nil {
			return err
		}
		if len(servers) == 0 || !scanFollow {
			return nil
		}
		chosen = servers[0]

	default:
		srv, err := tui.RunScan(scanner.Scan, scanner.Timeout)
		if err != nil {
			return err
		}
		if srv == nil {
			return nil
		}
		chosen = srv
	}

	fmt.Println(chosen.URL())
	if !scanFollow {
		return nil
	}
	return follow(ctx, chosen.URL())
}

func plainScan(ctx context.Context, scanner *discovery.Scanner) ([]*discovery.Server, error) {
	var (
		servers []*discovery.Server
		err     error
	)
	if scanQuick {
		fmt.Println("Quick scan for notebook servers...")
		servers, err = discovery.QuickScan(ctx)
	} else {
		fmt.Printf("Scanning for notebook servers (timeout: %s)...\n\n", scanner.Timeout)
		servers, err = scanner.Scan(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		fmt.Println("No notebook servers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Check the server was started without --advertise=false")
		fmt.Println("  - Make sure both machines share a network segment")
		fmt.Println("  - Allow mDNS (UDP port 5353) through the firewall")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil, nil
	}

	fmt.Printf("Found %d server(s):\n\n", len(servers))
	for i, s := range servers {
		fmt.Printf("%d. %s\n", i+1, s.Name)
		fmt.Printf("   Notebook: %s (%d tabs)\n", s.NotebookID, s.Tabs)
		fmt.Printf("   URL:      %s\n", s.URL())
		if s.Version != "" {
			fmt.Printf("   Version:  %s\n", s.Version)
		}
		fmt.Println()
	}
	return servers, nil
}

// follow prints every frame the server sends until ctx ends or the server
// goes away.
func follow(ctx context.Context, url string) error {
	c, err := remote.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer c.Close()

	for {
		select {
		case m, ok := <-c.Events():
			if !ok {
				if err := c.Err(); err != nil {
					return fmt.Errorf("connection lost: %w", err)
				}
				return nil
			}
			fmt.Println(m.String())
		case <-ctx.Done():
			return nil
		}
	}
}

// configCmd manages the configuration file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig()
		if err != nil {
			return err
		}
		ui.NewPrinter(os.Stdout).PrintSuccess("Configuration created", ui.Param{Key: "Path", Value: path})
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := registry.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		data, err := yaml.Marshal(registry)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
