package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func bigGrid(w, h int) []string {
	lines := make([]string, h)
	for y := range lines {
		lines[y] = strings.Repeat(string(rune('a'+y%26)), w)
	}
	return lines
}

func update(m ViewerModel, msgs ...tea.Msg) ViewerModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ViewerModel)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerScrollClamps(t *testing.T) {
	m := NewViewerModel("doc", bigGrid(30, 12))
	m = update(m, tea.WindowSizeMsg{Width: 24, Height: 11}) // 20x5 window

	if m.Width != 20 || m.Height != 5 {
		t.Fatalf("window = %dx%d, want 20x5", m.Width, m.Height)
	}

	m = update(m, key("up"), key("left"))
	if m.OffsetX != 0 || m.OffsetY != 0 {
		t.Errorf("offset = (%d, %d), want origin", m.OffsetX, m.OffsetY)
	}

	for range 50 {
		m = update(m, key("down"), key("right"))
	}
	if m.OffsetY != 12-5 || m.OffsetX != 30-20 {
		t.Errorf("offset = (%d, %d), want (10, 7)", m.OffsetX, m.OffsetY)
	}

	m = update(m, key("g"))
	if m.OffsetX != 0 || m.OffsetY != 0 {
		t.Errorf("g: offset = (%d, %d)", m.OffsetX, m.OffsetY)
	}
}

func TestViewerSmallGrid(t *testing.T) {
	m := NewViewerModel("doc", []string{"B ", "A "})
	m = update(m, key("down"), key("right"), key("G"))
	if m.OffsetX != 0 || m.OffsetY != 0 {
		t.Errorf("small grid scrolled to (%d, %d)", m.OffsetX, m.OffsetY)
	}

	visible := m.visible()
	if len(visible) != 2 || !strings.HasPrefix(visible[0], "B ") || !strings.HasPrefix(visible[1], "A ") {
		t.Errorf("visible = %q", visible)
	}
}

func TestViewerVisibleWindow(t *testing.T) {
	m := NewViewerModel("doc", []string{"abcdef", "ghijkl", "mnopqr"})
	m.Width, m.Height = 3, 2
	m = update(m, key("right"), key("right"), key("down"))

	got := m.visible()
	want := []string{"ijk", "opq"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("visible = %q, want %q", got, want)
	}
	if view := m.View(); !strings.Contains(view, "doc") || !strings.Contains(view, "x 2–4 of 6") {
		t.Errorf("View() footer missing position:\n%s", view)
	}
}

func TestViewerQuit(t *testing.T) {
	m := NewViewerModel("doc", []string{"x"})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
