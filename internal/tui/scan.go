package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/notebook/internal/discovery"
	"github.com/muurk/notebook/internal/ui"
)

// ScanFunc looks for servers until ctx is done.
type ScanFunc func(ctx context.Context) ([]*discovery.Server, error)

// Messages for async operations
type scanStartMsg struct{}
type scanTickMsg time.Time
type scanCompleteMsg struct {
	servers []*discovery.Server
	err     error
}

const scanTickInterval = 100 * time.Millisecond

// serverItem wraps a Server for use with bubbles/list
type serverItem struct {
	server *discovery.Server
}

// FilterValue filters by instance name, notebook id, or address
func (s serverItem) FilterValue() string {
	return s.server.Name + " " + s.server.NotebookID + " " + s.server.Addr()
}

// serverDelegate renders one server per two lines
type serverDelegate struct{}

func (d serverDelegate) Height() int { return 2 }

func (d serverDelegate) Spacing() int { return 1 }

func (d serverDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d serverDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(serverItem)
	if !ok {
		return
	}
	s := si.server

	title := s.Name
	if index == m.Index() {
		title = selectedItemStyle().Render("→ " + title)
	} else {
		title = "  " + title
	}

	version := s.Version
	if version == "" {
		version = "unknown"
	}
	details := subtitleStyle().Render(fmt.Sprintf("    %s • notebook %s • %d tabs • %s",
		s.URL(), s.NotebookID, s.Tabs, version))

	fmt.Fprint(w, title+"\n"+details)
}

// ScanModel is the server discovery screen
type ScanModel struct {
	scan    ScanFunc
	timeout time.Duration

	scanning bool
	started  time.Time
	elapsed  time.Duration
	servers  list.Model
	selected *discovery.Server
	err      error

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     scanKeyMap

	width  int
	height int
}

// NewScanModel creates a scan screen. timeout is only used to draw the
// progress bar; scan is expected to stop on its own.
func NewScanModel(scan ScanFunc, timeout time.Duration) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle()

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	servers := list.New([]list.Item{}, serverDelegate{}, 0, 0)
	servers.Title = "Notebook servers"
	servers.SetShowStatusBar(false)
	servers.SetShowHelp(false)
	servers.SetFilteringEnabled(false)
	servers.Styles.Title = titleStyle()

	return ScanModel{
		scan:     scan,
		timeout:  timeout,
		servers:  servers,
		spinner:  s,
		progress: bar,
		help:     help.New(),
		keys:     newScanKeyMap(),
	}
}

// Init starts the first scan
func (m ScanModel) Init() tea.Cmd {
	return m.startScan()
}

func (m ScanModel) startScan() tea.Cmd {
	scan := m.scan
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		func() tea.Msg {
			servers, err := scan(context.Background())
			return scanCompleteMsg{servers: servers, err: err}
		},
		m.spinner.Tick,
		scanTick(),
	)
}

func scanTick() tea.Cmd {
	return tea.Tick(scanTickInterval, func(t time.Time) tea.Msg { return scanTickMsg(t) })
}

// Selected returns the server the user chose, or nil.
func (m ScanModel) Selected() *discovery.Server { return m.selected }

// Servers returns the servers found by the last scan.
func (m ScanModel) Servers() []*discovery.Server {
	items := m.servers.Items()
	out := make([]*discovery.Server, 0, len(items))
	for _, it := range items {
		if si, ok := it.(serverItem); ok {
			out = append(out, si.server)
		}
	}
	return out
}

// Err returns the error of the last scan.
func (m ScanModel) Err() error { return m.err }

// Update handles messages and updates the model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.servers.SetSize(msg.Width, max(4, msg.Height-3))
		m.progress.Width = min(60, max(10, msg.Width-8))
		return m, nil

	case scanStartMsg:
		m.scanning = true
		m.started = time.Now()
		m.elapsed = 0
		return m, nil

	case scanTickMsg:
		if !m.scanning {
			return m, nil
		}
		m.elapsed = time.Time(msg).Sub(m.started)
		return m, scanTick()

	case scanCompleteMsg:
		m.scanning = false
		m.err = msg.err
		items := make([]list.Item, len(msg.servers))
		for i, s := range msg.servers {
			items[i] = serverItem{server: s}
		}
		return m, m.servers.SetItems(items)

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case m.scanning:
			return m, nil
		case key.Matches(msg, m.keys.Open):
			if item, ok := m.servers.SelectedItem().(serverItem); ok {
				m.selected = item.server
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Rescan):
			m.err = nil
			return m, tea.Batch(m.servers.SetItems(nil), m.startScan())
		}
	}

	if !m.scanning {
		m.servers, cmd = m.servers.Update(msg)
	}
	return m, cmd
}

// View renders the scan screen
func (m ScanModel) View() string {
	width := m.width
	if width == 0 {
		width = ui.MinTerminalWidth
	}

	var content string
	switch {
	case m.scanning:
		content = m.renderScanning(width)
	case m.err != nil:
		content = errorStyle().Render(ui.FailureMarker+" Scan failed: "+m.err.Error()) + "\n\n" + troubleshooting()
	case len(m.servers.Items()) == 0:
		content = warningStyle().Render("⚠ No notebook servers found") + "\n\n" + troubleshooting()
	default:
		content = m.servers.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		content,
		"",
		m.help.View(m.keys),
	)
}

func (m ScanModel) renderScanning(width int) string {
	var fraction float64
	if m.timeout > 0 {
		fraction = min(1, float64(m.elapsed)/float64(m.timeout))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle().Render(m.spinner.View()+" SEARCHING FOR NOTEBOOK SERVERS"),
		subtitleStyle().Render("Browsing "+discovery.ServiceType+" on the local network..."),
		"",
		m.progress.ViewAs(fraction),
		"",
		subtitleStyle().Render(fmt.Sprintf("Elapsed: %ds", int(m.elapsed.Seconds()))),
	)
	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

func troubleshooting() string {
	var b strings.Builder
	b.WriteString("  Troubleshooting:\n")
	b.WriteString("    • Start a server with 'notebook serve <layout>'\n")
	b.WriteString("    • Check the server was started with --advertise\n")
	b.WriteString("    • Make sure both machines share a network segment\n")
	b.WriteString("    • Allow mDNS (UDP port 5353) through the firewall\n")
	return b.String()
}

// RunScan runs the scan screen and returns the server the user picked, or
// nil when they quit without choosing.
func RunScan(scan ScanFunc, timeout time.Duration) (*discovery.Server, error) {
	p := tea.NewProgram(NewScanModel(scan, timeout))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("scan screen failed: %w", err)
	}
	m, ok := final.(ScanModel)
	if !ok {
		return nil, nil
	}
	if m.err != nil && m.selected == nil {
		return nil, m.err
	}
	return m.selected, nil
}
