package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// viewerModel renders one summary's markdown in a scrollable viewport.
type viewerModel struct {
	file     string
	raw      string
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func newViewerModel(file, markdown string) viewerModel {
	return viewerModel{file: file, raw: markdown}
}

func (m *viewerModel) resize(width, height int) {
	m.width = width
	m.height = height

	// Layout: viewport + title (1 line) + help (1 line).
	vpHeight := height - 2
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.viewport = viewport.New(width, vpHeight)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err == nil {
		m.renderer = r
	}
	m.viewport.SetContent(m.renderMarkdown())
}

func (m viewerModel) renderMarkdown() string {
	if m.renderer == nil {
		return m.raw
	}
	rendered, err := m.renderer.Render(m.raw)
	if err != nil {
		return m.raw
	}
	return strings.TrimRight(rendered, "\n")
}

func (m viewerModel) Update(msg tea.Msg) (viewerModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	title := titleStyle.Render(m.file)
	help := helpStyle.Render(" ↑/↓: scroll • esc: back • q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), help)
}
