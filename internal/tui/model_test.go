package tui

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/steplock/internal/core/eventbus"
	"github.com/hay-kot/steplock/internal/data/stores"
	"github.com/hay-kot/steplock/pkg/tuitest"
)

func newTestModel(t *testing.T) (Model, *stores.ItemStore) {
	t.Helper()
	items, err := stores.NewItemStore(nil, eventbus.New(), zerolog.Nop())
	require.NoError(t, err)
	return New(Deps{Items: items}, Opts{}), items
}

func press(m Model, k rune) Model {
	next, _ := m.Update(tuitest.KeyPress(k))
	return next.(Model)
}

func TestModel_HidesDependents(t *testing.T) {
	m, items := newTestModel(t)

	first, err := items.Add("Pick a date")
	require.NoError(t, err)
	_, err = items.AddWithDependencies("Send invites", []string{first.ID})
	require.NoError(t, err)

	m.reload()
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Pick a date", m.rows[0].item.Title)

	// Toggling the root reveals the dependent.
	m = press(m, ' ')
	require.Len(t, m.rows, 2)
	assert.True(t, m.rows[0].done)
	assert.Equal(t, "Send invites", m.rows[1].item.Title)
	assert.Equal(t, 1, m.rows[1].depth)

	// Toggling it off hides the dependent again.
	m = press(m, ' ')
	assert.Len(t, m.rows, 1)
}

func TestModel_ShowAll(t *testing.T) {
	m, items := newTestModel(t)

	first, err := items.Add("Pick a date")
	require.NoError(t, err)
	_, err = items.AddWithDependencies("Send invites", []string{first.ID})
	require.NoError(t, err)

	m.reload()
	require.Len(t, m.rows, 1)

	m = press(m, 'a')
	require.Len(t, m.rows, 2)
	assert.False(t, m.rows[1].visible)
	assert.Equal(t, []string{"Pick a date"}, m.rows[1].blockers)

	// Hidden rows cannot be toggled.
	m = press(m, 'j')
	m = press(m, ' ')
	assert.False(t, m.rows[1].done)
}

func TestModel_ResetConfirm(t *testing.T) {
	m, items := newTestModel(t)

	item, err := items.Add("Pick a date")
	require.NoError(t, err)
	items.Toggle(item.ID)
	m.reload()

	// 'r' asks for confirmation; 'n' declines.
	m = press(m, 'r')
	assert.True(t, m.confirmReset)
	m = press(m, 'n')
	assert.False(t, m.confirmReset)
	assert.Equal(t, 1, items.Stats().Completed)

	// 'y' goes through with it.
	m = press(m, 'r')
	m = press(m, 'y')
	assert.Equal(t, 0, items.Stats().Completed)
	assert.False(t, m.confirmReset)
}

func TestModel_CursorFollowsItem(t *testing.T) {
	m, items := newTestModel(t)

	_, err := items.Add("First")
	require.NoError(t, err)
	second, err := items.Add("Second")
	require.NoError(t, err)
	_, err = items.Add("Third")
	require.NoError(t, err)

	m.reload()
	m = press(m, 'j')
	require.Equal(t, second.ID, m.rows[m.cursor].item.ID)

	// Completing the first item elsewhere must not move the cursor off Second.
	m = press(m, 'k')
	m = press(m, ' ')
	m.reload()
	m = press(m, 'j')
	assert.Equal(t, second.ID, m.rows[m.cursor].item.ID)
}

func TestModel_ViewRenders(t *testing.T) {
	m, items := newTestModel(t)

	first, err := items.Add("Pick a date")
	require.NoError(t, err)
	_, err = items.AddWithDependencies("Send invites", []string{first.ID})
	require.NoError(t, err)
	m.reload()

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Pick a date")
	assert.NotContains(t, out, "Send invites")
	assert.Contains(t, out, "0/2")
}
