package tui

import (
	"fmt"

	"codex/internal/summary"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// entriesMsg is sent when the store listing completes.
type entriesMsg struct {
	entries []summary.ListEntry
	err     error
}

func loadEntries(svc *summary.Service) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.List()
		return entriesMsg{entries: entries, err: err}
	}
}

// summaryItem adapts a ListEntry to the bubbles list.
type summaryItem struct {
	entry summary.ListEntry
}

func (i summaryItem) Title() string { return i.entry.File }

func (i summaryItem) Description() string {
	if i.entry.GeneratedAt == "" {
		return "generated at unknown time"
	}
	return "generated " + i.entry.GeneratedAt
}

func (i summaryItem) FilterValue() string { return i.entry.File }

type browserModel struct {
	list   list.Model
	loaded bool
	err    error
}

func newBrowserModel() browserModel {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Codebase summaries"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	return browserModel{list: l}
}

func (m *browserModel) resize(width, height int) {
	m.list.SetSize(width, height-1)
}

func (m browserModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// selected returns the file key under the cursor.
func (m browserModel) selected() (string, bool) {
	item, ok := m.list.SelectedItem().(summaryItem)
	if !ok {
		return "", false
	}
	return item.entry.File, true
}

func (m browserModel) Update(msg tea.Msg) (browserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.entries))
		for _, e := range msg.entries {
			items = append(items, summaryItem{entry: e})
		}
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if !m.loaded {
		return dimStyle.Render("Loading summaries...") + "\n"
	}
	if len(m.list.Items()) == 0 {
		return dimStyle.Render("No summaries found. Run `codex generate` first.") + "\n"
	}
	help := helpStyle.Render(fmt.Sprintf(" %d summaries • enter: open • /: filter • q: quit", len(m.list.Items())))
	return m.list.View() + "\n" + help
}
