package commands

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/config"
	"github.com/hay-kot/steplock/internal/core/eventbus"
	"github.com/hay-kot/steplock/internal/data/stores"
	"github.com/hay-kot/steplock/internal/steplock"
)

func newTestApp(t *testing.T) *steplock.App {
	t.Helper()
	bus := eventbus.New()
	items, err := stores.NewItemStore(nil, bus, zerolog.Nop())
	require.NoError(t, err)
	return steplock.NewApp(items, nil, config.Default(), bus)
}

func TestResolveItem(t *testing.T) {
	app := newTestApp(t)

	first, err := app.Items.Add("Pick a date")
	require.NoError(t, err)
	second, err := app.Items.Add("Send invites")
	require.NoError(t, err)
	third, err := app.Items.Add("Send thank-you notes")
	require.NoError(t, err)

	t.Run("exact id", func(t *testing.T) {
		got, err := resolveItem(app, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("id prefix", func(t *testing.T) {
		got, err := resolveItem(app, second.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("title match is case-insensitive", func(t *testing.T) {
		got, err := resolveItem(app, "pick a date")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("exact title beats substring matches", func(t *testing.T) {
		got, err := resolveItem(app, "Send invites")
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("unique substring", func(t *testing.T) {
		got, err := resolveItem(app, "thank-you")
		require.NoError(t, err)
		assert.Equal(t, third.ID, got.ID)
	})

	t.Run("ambiguous substring lists candidates", func(t *testing.T) {
		_, err := resolveItem(app, "send")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
		assert.Contains(t, err.Error(), "Send invites")
	})

	t.Run("no match", func(t *testing.T) {
		_, err := resolveItem(app, "nonexistent")
		assert.ErrorIs(t, err, checklist.ErrNotFound)
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := resolveItem(app, "  ")
		assert.Error(t, err)
	})
}

func TestResolveItems(t *testing.T) {
	app := newTestApp(t)

	first, err := app.Items.Add("First")
	require.NoError(t, err)
	second, err := app.Items.Add("Second")
	require.NoError(t, err)

	got, err := resolveItems(app, []string{"second", first.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	_, err = resolveItems(app, []string{"first", "missing"})
	assert.Error(t, err)
}
