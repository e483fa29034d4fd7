package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore(t *testing.T) {
	t.Run("load missing file returns empty snapshot", func(t *testing.T) {
		store := NewSnapshotStore(filepath.Join(t.TempDir(), "checklist.json"))

		snap, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, snap.Items)
		assert.Empty(t, snap.CompletedIDs)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store := NewSnapshotStore(filepath.Join(t.TempDir(), "checklist.json"))

		want := checklist.Snapshot{
			Items: []checklist.Item{
				{ID: "a", Title: "A"},
				{ID: "b", Title: "B", Dependencies: []string{"a"}},
			},
			CompletedIDs: []string{"a"},
		}
		require.NoError(t, store.Save(want))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, want.Items, got.Items)
		assert.Equal(t, want.CompletedIDs, got.CompletedIDs)
	})

	t.Run("save creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "checklist.json")
		store := NewSnapshotStore(path)

		require.NoError(t, store.Save(checklist.Snapshot{}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("load malformed file returns format error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "checklist.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

		_, err := NewSnapshotStore(path).Load()
		assert.ErrorIs(t, err, checklist.ErrBadSnapshot)
	})

	t.Run("load empty file returns empty snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "checklist.json")
		require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

		snap, err := NewSnapshotStore(path).Load()
		require.NoError(t, err)
		assert.Empty(t, snap.Items)
	})
}
