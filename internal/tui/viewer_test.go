package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/notebook/internal/notebook"
)

func threeTabs() *notebook.Notebook {
	nb := notebook.New("view", "")
	nb.AppendTab("One", "<p>first page</p>", false)
	nb.AppendTab("Two", "<p>second page</p>", false)
	nb.AppendTab("Three", "<p>third page</p>", false)
	return nb
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keys(names ...string) []tea.Msg {
	msgs := make([]tea.Msg, len(names))
	for i, n := range names {
		msgs[i] = keyMsg(n)
	}
	return msgs
}

func currentLabel(nb *notebook.Notebook) string {
	if cur := nb.CurrentTab(); cur != nil {
		return cur.Label()
	}
	return ""
}

func TestViewerNavigation(t *testing.T) {
	nb := threeTabs()
	m := NewModel(nb, Options{})
	defer m.Close()

	m = send(m, keyMsg("right"))
	if got := currentLabel(nb); got != "Two" {
		t.Fatalf("Expected current Two, got %q", got)
	}
	want := "activate Two → unselect One → select Two → current_tab_change Two"
	if m.Status() != want {
		t.Errorf("Expected status %q, got %q", want, m.Status())
	}

	tests := []struct {
		key  string
		want string
	}{
		{"l", "Three"},
		{"right", "Three"},
		{"h", "Two"},
		{"left", "One"},
		{"left", "One"},
		{"3", "Three"},
		{"9", "Three"},
		{"1", "One"},
	}
	for _, tt := range tests {
		m = send(m, keyMsg(tt.key))
		if got := currentLabel(nb); got != tt.want {
			t.Errorf("Expected after %q current %q, got %q", tt.key, tt.want, got)
		}
		if m.Focus() != nb.CurrentTab().Index() {
			t.Errorf("Expected after %q focus %d, got %d", tt.key, nb.CurrentTab().Index(), m.Focus())
		}
	}
}

func TestViewerFocusAndClick(t *testing.T) {
	nb := threeTabs()
	m := NewModel(nb, Options{})
	defer m.Close()

	m = send(m, keyMsg("tab"))
	if m.Focus() != 1 {
		t.Fatalf("Expected focus 1, got %d", m.Focus())
	}
	if currentLabel(nb) != "One" {
		t.Error("moving focus must not change the selection")
	}

	m = send(m, keyMsg("enter"))
	if currentLabel(nb) != "Two" {
		t.Errorf("Expected current Two, got %q", currentLabel(nb))
	}
	if !strings.Contains(m.Status(), "select Two") {
		t.Errorf("Expected status to show a select, got %q", m.Status())
	}

	m = send(m, keys("shift+tab", "shift+tab")...)
	if m.Focus() != 2 {
		t.Errorf("Expected focus 2 after wrapping, got %d", m.Focus())
	}
}

func TestViewerAddAndRename(t *testing.T) {
	nb := threeTabs()
	m := NewModel(nb, Options{})
	defer m.Close()

	m = send(m, keys("n", "Four", "enter")...)
	if nb.Len() != 4 {
		t.Fatalf("Expected Len() 4, got %d", nb.Len())
	}
	cur := nb.CurrentTab()
	if cur.Label() != "Four" || cur.Index() != 3 {
		t.Errorf("Expected current Four at 3, got %q at %d", cur.Label(), cur.Index())
	}
	if m.Focus() != 3 {
		t.Errorf("Expected focus 3, got %d", m.Focus())
	}
	if !strings.HasPrefix(m.Status(), "activate Four") {
		t.Errorf("Expected status to start with the activation, got %q", m.Status())
	}

	m = send(m, keys("N", "Zero", "enter")...)
	if first := nb.Tabs()[0]; first.Label() != "Zero" || !first.IsSelected() {
		t.Errorf("Expected first tab selected Zero, got %q selected=%v", first.Label(), first.IsSelected())
	}

	m = send(m, keys("r", "ctrl+u", "Start", "enter")...)
	if got := currentLabel(nb); got != "Start" {
		t.Errorf("Expected renamed label Start, got %q", got)
	}
	if m.Status() != "rename Start" {
		t.Errorf("status = %q", m.Status())
	}
	if nb.Len() != 5 {
		t.Errorf("rename changed tab count to %d", nb.Len())
	}
}

func TestViewerPromptCancel(t *testing.T) {
	nb := threeTabs()
	m := NewModel(nb, Options{})
	defer m.Close()

	m = send(m, keys("n", "x", "esc")...)
	if nb.Len() != 3 {
		t.Errorf("Expected Len() 3 after cancel, got %d", nb.Len())
	}
	if m.mode != promptNone {
		t.Errorf("Expected the prompt to be closed, got mode %v", m.mode)
	}

	// Keys go back to the viewer once the prompt is closed.
	m = send(m, keyMsg("x"))
	if nb.Len() != 2 {
		t.Errorf("Expected Len() 2, got %d", nb.Len())
	}
}

func TestViewerRemove(t *testing.T) {
	nb := threeTabs()
	m := NewModel(nb, Options{})
	defer m.Close()

	m = send(m, keyMsg("x"))
	if got := currentLabel(nb); got != "Two" {
		t.Errorf("Expected current Two, got %q", got)
	}
	if !strings.HasSuffix(m.Status(), "remove One") {
		t.Errorf("Expected status to end with the remove, got %q", m.Status())
	}

	m = send(m, keys("x", "x")...)
	if nb.Len() != 0 {
		t.Fatalf("Expected Len() 0, got %d", nb.Len())
	}
	if m.Focus() != -1 {
		t.Errorf("Expected focus -1, got %d", m.Focus())
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No tabs") || !strings.Contains(view, "empty notebook") {
		t.Errorf("empty view = %q", view)
	}

	// Removing from an empty notebook is harmless.
	send(m, keyMsg("x"))

	m = send(m, keys("n", "Fresh", "enter")...)
	if currentLabel(nb) != "Fresh" {
		t.Errorf("tab added to an empty notebook was not selected")
	}
}

func TestViewerMouse(t *testing.T) {
	nb := threeTabs()
	m := NewModel(nb, Options{})
	defer m.Close()
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if len(m.spans) != 3 {
		t.Fatalf("Expected spans 3, got %d", len(m.spans))
	}
	third := m.spans[2]

	m = send(m, tea.MouseMsg{X: third.Start, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if currentLabel(nb) != "One" {
		t.Error("click below the strip must not select")
	}

	m = send(m, tea.MouseMsg{X: third.Start, Y: stripRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if currentLabel(nb) != "Three" {
		t.Errorf("Expected current Three, got %q", currentLabel(nb))
	}
	if m.Focus() != 2 {
		t.Errorf("Expected focus 2, got %d", m.Focus())
	}
}

func TestViewerQuitAndHelp(t *testing.T) {
	m := NewModel(threeTabs(), Options{})
	defer m.Close()

	next, _ := m.Update(keyMsg("?"))
	if !next.(Model).help.ShowAll {
		t.Error("? should expand help")
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewerView(t *testing.T) {
	m := NewModel(threeTabs(), Options{ShowHelp: true})
	defer m.Close()
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := ansi.Strip(m.View())
	for _, want := range []string{"1 One", "2 Two", "3 Three", "first page", "1/3", "view"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
