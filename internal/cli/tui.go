package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	viewerFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	viewerDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// viewerChrome is the number of terminal rows used by the title, help,
// footer and frame around the grid.
const viewerChrome = 6

// =============================================================================
// ViewerModel - Scrollable grid viewer
// =============================================================================

// ViewerModel is the bubbletea model for scrolling through a decoded grid
// that may be larger than the terminal.
type ViewerModel struct {
	Title string
	Lines []string // top row first, as rendered

	Width   int // visible columns
	Height  int // visible rows
	OffsetX int
	OffsetY int

	gridWidth int
}

// NewViewerModel creates a viewer over the rendered lines.
func NewViewerModel(title string, lines []string) ViewerModel {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	return ViewerModel{
		Title:     title,
		Lines:     lines,
		Width:     80,
		Height:    20,
		gridWidth: w,
	}
}

func (m ViewerModel) Init() tea.Cmd {
	return nil
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.OffsetY--
		case "down", "j":
			m.OffsetY++
		case "left", "h":
			m.OffsetX--
		case "right", "l":
			m.OffsetX++
		case "pgup", "b":
			m.OffsetY -= m.Height
		case "pgdown", "f", " ":
			m.OffsetY += m.Height
		case "home", "g":
			m.OffsetX, m.OffsetY = 0, 0
		case "end", "G":
			m.OffsetY = len(m.Lines)
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width-4, 10)
		m.Height = max(msg.Height-viewerChrome, 3)
	}
	m.clamp()
	return m, nil
}

func (m *ViewerModel) clamp() {
	m.OffsetY = min(m.OffsetY, len(m.Lines)-m.Height)
	m.OffsetX = min(m.OffsetX, m.gridWidth-m.Width)
	m.OffsetY = max(m.OffsetY, 0)
	m.OffsetX = max(m.OffsetX, 0)
}

// visible returns the window of the grid currently on screen.
func (m ViewerModel) visible() []string {
	end := min(m.OffsetY+m.Height, len(m.Lines))
	out := make([]string, 0, end-m.OffsetY)
	for _, line := range m.Lines[m.OffsetY:end] {
		runes := []rune(line)
		if m.OffsetX < len(runes) {
			runes = runes[m.OffsetX:]
		} else {
			runes = nil
		}
		cell := runewidth.Truncate(string(runes), m.Width, "")
		out = append(out, runewidth.FillRight(cell, m.Width))
	}
	return out
}

func (m ViewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(viewerDimStyle.Render("←/→/↑/↓ scroll  pgup/pgdn page  g top  q quit"))
	b.WriteString("\n")

	b.WriteString(viewerFrameStyle.Render(strings.Join(m.visible(), "\n")))
	b.WriteString("\n")

	// Rows are displayed top-first, so the top visible line is the highest y.
	top := len(m.Lines) - 1 - m.OffsetY
	bottom := max(len(m.Lines)-m.OffsetY-m.Height, 0)
	right := min(m.OffsetX+m.Width, m.gridWidth) - 1
	b.WriteString(viewerDimStyle.Render(fmt.Sprintf("  x %d–%d of %d · y %d–%d of %d",
		m.OffsetX, max(right, m.OffsetX), m.gridWidth, bottom, max(top, bottom), len(m.Lines))))

	return b.String()
}
