// Package tui implements the interactive summary browser.
package tui

import (
	"codex/internal/summary"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents which screen is active.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
)

// Config holds configuration passed from the CLI layer.
type Config struct {
	Workspace string
	Service   *summary.Service
}

// Model is the top-level Bubble Tea model.
type Model struct {
	state  ViewState
	config Config
	width  int
	height int

	browser browserModel
	viewer  viewerModel
	err     error
}

// New creates a new TUI model with the given config.
func New(cfg Config) Model {
	return Model{
		state:   ViewList,
		config:  cfg,
		browser: newBrowserModel(),
	}
}

func (m Model) Init() tea.Cmd {
	return loadEntries(m.config.Service)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browser.resize(msg.Width, msg.Height)
		if m.state == ViewDetail {
			m.viewer.resize(msg.Width, msg.Height)
		}
		return m, nil

	case entriesMsg:
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Global quit, except while the list filter is capturing input.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case ViewList:
			if msg.String() == "q" && !m.browser.filtering() {
				return m, tea.Quit
			}
			if msg.Type == tea.KeyEnter && !m.browser.filtering() {
				if file, ok := m.browser.selected(); ok {
					// openDetail mutates m; sequence it before the return
					// reads m.
					cmd := m.openDetail(file)
					return m, cmd
				}
				return m, nil
			}
		case ViewDetail:
			switch msg.String() {
			case "q", "esc":
				m.state = ViewList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case ViewList:
		m.browser, cmd = m.browser.Update(msg)
	case ViewDetail:
		m.viewer, cmd = m.viewer.Update(msg)
	}
	return m, cmd
}

func (m *Model) openDetail(file string) tea.Cmd {
	rec := m.config.Service.Get(file)
	if rec == nil {
		return nil
	}
	m.viewer = newViewerModel(file, rec.Markdown)
	m.viewer.resize(m.width, m.height)
	m.state = ViewDetail
	return nil
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case ViewList:
		return m.browser.View()
	case ViewDetail:
		return m.viewer.View()
	}
	return ""
}

// Run starts the TUI program.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
