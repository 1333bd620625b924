package tui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/notebook"
	"github.com/muurk/notebook/internal/ui"
)

// stripRow is the screen row the tab strip is drawn on. Mouse hit testing
// depends on it.
const stripRow = 0

// chromeHeight is the number of rows around the page viewport: strip, rule,
// position bar, status line and one row of help.
const chromeHeight = 5

type promptMode int

const (
	promptNone promptMode = iota
	promptAppend
	promptPrepend
	promptRename
)

func (p promptMode) title() string {
	switch p {
	case promptAppend:
		return "New tab label: "
	case promptPrepend:
		return "New first tab label: "
	case promptRename:
		return "Rename tab: "
	default:
		return ""
	}
}

// eventLog gathers the signals fired while one message is handled and keeps
// the last non-empty batch for the status line.
type eventLog struct {
	pending []string
	last    string
}

func (l *eventLog) record(e notebook.Event) {
	l.pending = append(l.pending, e.String())
}

func (l *eventLog) activated(tab *notebook.Tab) {
	l.pending = append(l.pending, "activate "+tab.Label())
}

func (l *eventLog) flush() string {
	if len(l.pending) > 0 {
		l.last = strings.Join(l.pending, " → ")
		l.pending = nil
	}
	return l.last
}

// Options configures the viewer.
type Options struct {
	// ShowHelp opens the viewer with the full key help expanded
	ShowHelp bool
}

// Model is the interactive notebook viewer.
type Model struct {
	nb       *notebook.Notebook
	observer *notebook.Observer
	events   *eventLog

	keys       viewerKeyMap
	promptKeys promptKeyMap
	help       help.Model
	input      textinput.Model
	page       viewport.Model
	position   progress.Model

	mode   promptMode
	focus  int
	spans  []ui.TabSpan
	shown  string // id of the tab whose page is in the viewport
	status string

	width  int
	height int
}

// NewModel creates a viewer over nb and starts observing its signals. Call
// Close when done with the model.
func NewModel(nb *notebook.Notebook, opts Options) Model {
	events := &eventLog{}

	input := textinput.New()
	input.Placeholder = "Label"
	input.CharLimit = 64
	input.Width = 30

	position := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	position.Width = 20

	h := help.New()
	h.ShowAll = opts.ShowHelp

	m := Model{
		nb:         nb,
		observer:   notebook.Observe(nb, events.record),
		events:     events,
		keys:       newViewerKeyMap(),
		promptKeys: newPromptKeyMap(),
		help:       h,
		input:      input,
		page:       viewport.New(ui.MinTerminalWidth, 10),
		position:   position,
		width:      ui.MinTerminalWidth,
		height:     10 + chromeHeight,
	}
	for _, tab := range nb.Tabs() {
		m.hook(tab)
	}
	if cur := nb.CurrentTab(); cur != nil {
		m.focus = cur.Index()
	}
	m.refresh()
	return m
}

// Close stops observing the notebook.
func (m Model) Close() {
	m.observer.Close()
}

// Notebook returns the notebook being viewed.
func (m Model) Notebook() *notebook.Notebook { return m.nb }

// Status returns the signals fired by the most recent action, joined by
// arrows.
func (m Model) Status() string { return m.status }

// Focus returns the index of the tab under the keyboard cursor, or -1.
func (m Model) Focus() int { return m.focus }

// Init initializes the viewer
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == stripRow {
			if tab := ui.HitTest(m.spans, msg.X); tab != nil {
				m.focus = tab.Index()
				tab.Click()
				m.refresh()
			}
			return m, nil
		}
		m.page, cmd = m.page.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateNormal handles keyboard input while browsing tabs
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if cur := m.nb.CurrentTab(); cur != nil {
			m.nb.SelectTab(cur.PrevTab())
			m.focus = m.nb.CurrentTab().Index()
		}

	case key.Matches(msg, m.keys.Next):
		if cur := m.nb.CurrentTab(); cur != nil {
			m.nb.SelectTab(cur.NextTab())
			m.focus = m.nb.CurrentTab().Index()
		}

	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.Runes[0] - '1')
		if tabs := m.nb.Tabs(); idx < len(tabs) {
			m.nb.SelectTab(tabs[idx])
			m.focus = idx
		}

	case key.Matches(msg, m.keys.FocusNext):
		if n := m.nb.Len(); n > 0 {
			m.focus = (m.focus + 1) % n
		}

	case key.Matches(msg, m.keys.FocusPrev):
		if n := m.nb.Len(); n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}

	case key.Matches(msg, m.keys.Click):
		if m.focus >= 0 && m.focus < m.nb.Len() {
			m.nb.Tabs()[m.focus].Click()
		}

	case key.Matches(msg, m.keys.Append):
		return m.openPrompt(promptAppend, "")

	case key.Matches(msg, m.keys.Prepend):
		return m.openPrompt(promptPrepend, "")

	case key.Matches(msg, m.keys.Rename):
		cur := m.nb.CurrentTab()
		if cur == nil {
			return m, nil
		}
		return m.openPrompt(promptRename, strings.ReplaceAll(cur.Label(), notebook.NBSP, ""))

	case key.Matches(msg, m.keys.Remove):
		m.nb.RemoveTab(nil)

	default:
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) openPrompt(mode promptMode, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// updatePrompt handles keyboard input while a label prompt is open
func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.promptKeys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.promptKeys.Confirm):
		label := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case promptAppend:
			m.addTab(label, false)
		case promptPrepend:
			m.addTab(label, true)
		case promptRename:
			if cur := m.nb.CurrentTab(); cur != nil {
				cur.SetLabel(label)
				m.events.pending = append(m.events.pending, "rename "+cur.Label())
			}
		}
		m.closePrompt()
		m.refresh()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = promptNone
	m.input.SetValue("")
	m.input.Blur()
}

// addTab creates a tab with a heading page and selects it. The activation
// hook is installed before the selection so it runs for the new tab too.
func (m *Model) addTab(label string, prepend bool) {
	wasEmpty := m.nb.Len() == 0
	page := "<h1>" + html.EscapeString(label) + "</h1>"

	var tab *notebook.Tab
	if prepend {
		tab = m.nb.PrependTab(label, page, false)
	} else {
		tab = m.nb.AppendTab(label, page, false)
	}
	m.hook(tab)
	if !wasEmpty {
		m.nb.SelectTab(tab)
	}
	m.focus = tab.Index()

	logging.Debug("Tab added from viewer",
		zap.String("tab", tab.ID()),
		zap.Bool("prepend", prepend),
	)
}

func (m *Model) hook(tab *notebook.Tab) {
	events := m.events
	tab.OnActivate(func() { events.activated(tab) })
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	footer := 1
	if m.help.ShowAll {
		footer = lipgloss.Height(m.help.View(m.keys))
	}
	m.page.Width = width
	m.page.Height = max(1, height-chromeHeight-footer+1)

	m.position.Width = min(40, max(10, width/3))
}

// refresh brings derived state in line with the notebook after a change.
func (m *Model) refresh() {
	m.status = m.events.flush()

	n := m.nb.Len()
	switch {
	case n == 0:
		m.focus = -1
	case m.focus >= n:
		m.focus = n - 1
	case m.focus < 0:
		m.focus = 0
	}

	_, m.spans = ui.TabStrip(m.nb, m.renderOptions())

	current := ""
	if cur := m.nb.CurrentTab(); cur != nil {
		current = cur.ID()
	}
	m.page.SetContent(ui.PageBody(m.nb, m.width))
	if current != m.shown {
		m.page.GotoTop()
		m.shown = current
	}
}

func (m Model) renderOptions() ui.RenderOptions {
	return ui.RenderOptions{Width: m.width, Focus: m.focus, Numbered: true}
}

// View renders the viewer
func (m Model) View() string {
	strip, _ := ui.TabStrip(m.nb, m.renderOptions())

	var footer string
	if m.mode != promptNone {
		footer = promptStyle().Render(m.mode.title()) + m.input.View() + "  " + m.help.View(m.promptKeys)
	} else {
		footer = m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strip,
		ui.Rule(m.width),
		m.positionView(),
		m.page.View(),
		m.statusView(),
		footer,
	)
}

func (m Model) positionView() string {
	n := m.nb.Len()
	cur := m.nb.CurrentTab()
	if n == 0 || cur == nil {
		return subtitleStyle().Render("empty notebook")
	}
	idx := cur.Index()
	return m.position.ViewAs(float64(idx+1)/float64(n)) +
		subtitleStyle().Render(fmt.Sprintf(" %d/%d", idx+1, n))
}

func (m Model) statusView() string {
	line := brand() + " " + m.nb.ID()
	if m.status != "" {
		line += "  " + m.status
	}
	return ui.StatusStyle.Render(line)
}

// Run opens the viewer full screen and blocks until the user quits.
func Run(nb *notebook.Notebook, opts Options) error {
	m := NewModel(nb, opts)
	defer m.Close()

	logging.Info("Viewer started", zap.String("notebook", nb.ID()), zap.Int("tabs", nb.Len()))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
