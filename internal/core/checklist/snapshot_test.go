package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		data := []byte(`{
			"items": [
				{"id": "a", "title": "A"},
				{"id": "b", "title": "B", "dependencies": ["a"]},
				{"id": "c", "title": "C", "dependency": "b"}
			],
			"completedIds": ["a"]
		}`)

		snap, err := DecodeSnapshot(data)
		require.NoError(t, err)
		require.Len(t, snap.Items, 3)
		assert.Equal(t, []string{"a"}, snap.Items[1].Dependencies)
		assert.Equal(t, "b", snap.Items[2].Dependency)
		assert.Equal(t, []string{"a"}, snap.CompletedIDs)
	})

	t.Run("explicit empty dependencies survive decoding", func(t *testing.T) {
		data := []byte(`{"items":[{"id":"a","title":"A","dependencies":[],"dependency":"x"}],"completedIds":[]}`)

		snap, err := DecodeSnapshot(data)
		require.NoError(t, err)
		require.NotNil(t, snap.Items[0].Dependencies)
		assert.Empty(t, snap.Items[0].EffectiveDependencies())
	})

	t.Run("rejects non-JSON", func(t *testing.T) {
		_, err := DecodeSnapshot([]byte("not json at all"))
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})

	t.Run("rejects non-array fields", func(t *testing.T) {
		cases := map[string]string{
			"items object":         `{"items": {}, "completedIds": []}`,
			"items string":         `{"items": "x", "completedIds": []}`,
			"items missing":        `{"completedIds": []}`,
			"completedIds missing": `{"items": []}`,
			"completedIds null":    `{"items": [], "completedIds": null}`,
		}

		for name, payload := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := DecodeSnapshot([]byte(payload))
				assert.ErrorIs(t, err, ErrBadSnapshot)
			})
		}
	})
}

func TestSnapshotValidate(t *testing.T) {
	t.Run("duplicate ids rejected", func(t *testing.T) {
		snap := Snapshot{Items: []Item{{ID: "a", Title: "A"}, {ID: "a", Title: "A2"}}}
		assert.ErrorIs(t, snap.Validate(), ErrBadSnapshot)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		snap := Snapshot{Items: []Item{{Title: "A"}}}
		assert.ErrorIs(t, snap.Validate(), ErrBadSnapshot)
	})

	t.Run("ok", func(t *testing.T) {
		snap := Snapshot{Items: []Item{{ID: "a", Title: "A"}}}
		assert.NoError(t, snap.Validate())
	})
}
