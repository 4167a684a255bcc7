package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/render"
	"github.com/dkoosis/ciboard/pkg/summary"
)

func sample(t *testing.T) *summary.Summary {
	t.Helper()
	s, err := summary.Aggregate([]event.Event{
		{Dir: "crates", Project: "alpha", Category: "release", Outcome: "ok"},
		{Dir: "crates", Project: "alpha", Category: "stacked-borrows", Outcome: "ok"},
		{Dir: "tools", Project: "beta", Category: "release", Outcome: "ok"},
		{Dir: "tools", Project: "beta", Category: "release", Outcome: "failed"},
	})
	require.NoError(t, err)
	return s
}

func newModel(t *testing.T) Model {
	t.Helper()
	return New(sample(t), render.MonoTheme(), render.DefaultColumns())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestView_ListsProjectsAndHeaders(t *testing.T) {
	view := newModel(t).View()
	for _, want := range []string{"name", "lib (S)", "crates/alpha", "tools/beta", "1 / 2", "failing"} {
		assert.Contains(t, view, want)
	}
}

func TestRow_PlaceholderForCheckersNotRun(t *testing.T) {
	s := sample(t)
	p, ok := s.Project("tools", "beta")
	require.True(t, ok)

	r := row(p, render.MonoTheme())
	require.Len(t, r, event.NumCategories+2)
	assert.Equal(t, "tools/beta", r[0])
	assert.Equal(t, "1 / 2", r[1])
	assert.Equal(t, "0 / 0", r[2])
	assert.Equal(t, render.Placeholder, r[3])
	assert.Equal(t, render.Placeholder, r[4])
	assert.Contains(t, r[5], "failing")
}

func TestUpdate_CursorMovesSelection(t *testing.T) {
	m := newModel(t)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "alpha", m.Selected().Name)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "beta", m.Selected().Name)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "alpha", m.Selected().Name)
}

func TestUpdate_EnterTogglesDetail(t *testing.T) {
	m := newModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.detail)

	view := m.View()
	assert.Contains(t, view, "(1 failed)")
	assert.Contains(t, view, "not run")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.detail)
	assert.Nil(t, cmd)
}

func TestUpdate_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := update(t, newModel(t), msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
	}
}

func TestUpdate_WindowSizeKeepsMinimumHeight(t *testing.T) {
	m, cmd := update(t, newModel(t), tea.WindowSizeMsg{Width: 80, Height: 2})
	assert.Nil(t, cmd)
	assert.Equal(t, 80, m.width)
	assert.Contains(t, m.View(), "crates/alpha")
}

func TestView_Empty(t *testing.T) {
	s, err := summary.Aggregate(nil)
	require.NoError(t, err)
	m := New(s, render.MonoTheme(), render.DefaultColumns())
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "no events")
}
