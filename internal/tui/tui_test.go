package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"codex/internal/summary"
)

func testModel(t *testing.T) Model {
	t.Helper()
	ws := t.TempDir()
	svc := summary.NewService(summary.NewStore(ws, nil), 0)
	require.NoError(t, svc.Save("src/a.ts", &summary.Record{
		Summary:  summary.Content{Purpose: "entry point"},
		Markdown: "# a\n\nentry point\n",
	}))
	return New(Config{Workspace: ws, Service: svc})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func TestModel_EnterOpensSelectedSummary(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(t, m, entriesMsg{entries: []summary.ListEntry{{File: "src/a.ts"}}})
	require.Equal(t, ViewList, m.state)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.state, "enter on a selected summary opens the detail view")
	require.Equal(t, "src/a.ts", m.viewer.file)
	require.Contains(t, m.viewer.raw, "entry point")
}

func TestModel_EscReturnsToList(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(t, m, entriesMsg{entries: []summary.ListEntry{{File: "src/a.ts"}}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.state)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ViewList, m.state)
}
