package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestGroups(t *testing.T) {
	t.Run("descendants gather under their root", func(t *testing.T) {
		items := []Item{
			{ID: "p", Title: "Plan party"},
			{ID: "s1", Title: "Choose venue", Dependencies: []string{"p"}},
			{ID: "s2", Title: "Send invites", Dependencies: []string{"s1"}},
			{ID: "other", Title: "Unrelated"},
		}

		groups, orphans := Groups(items)
		require.Len(t, groups, 2)
		assert.Empty(t, orphans)

		assert.Equal(t, "p", groups[0].Root.ID)
		assert.Equal(t, []string{"s1", "s2"}, ids(groups[0].Descendants))

		assert.Equal(t, "other", groups[1].Root.ID)
		assert.Empty(t, groups[1].Descendants)
	})

	t.Run("topological order with insertion-order ties", func(t *testing.T) {
		// c and b both depend directly on the root; d depends on both.
		// b precedes c in insertion order so it must come out first.
		items := []Item{
			{ID: "r", Title: "Root"},
			{ID: "b", Title: "B", Dependencies: []string{"r"}},
			{ID: "c", Title: "C", Dependencies: []string{"r"}},
			{ID: "d", Title: "D", Dependencies: []string{"b", "c"}},
		}

		groups, _ := Groups(items)
		require.Len(t, groups, 1)
		assert.Equal(t, []string{"b", "c", "d"}, ids(groups[0].Descendants))
	})

	t.Run("intra-group cycle members are appended last", func(t *testing.T) {
		items := []Item{
			{ID: "r", Title: "Root"},
			{ID: "x", Title: "X", Dependencies: []string{"r", "y"}},
			{ID: "y", Title: "Y", Dependencies: []string{"x"}},
			{ID: "z", Title: "Z", Dependencies: []string{"r"}},
		}

		groups, _ := Groups(items)
		require.Len(t, groups, 1)

		got := ids(groups[0].Descendants)
		require.Len(t, got, 3)
		assert.Equal(t, "z", got[0], "placeable member comes before the cycle")
		assert.ElementsMatch(t, []string{"x", "y"}, got[1:])
	})

	t.Run("cycles unreachable from a root become orphans", func(t *testing.T) {
		items := []Item{
			{ID: "a", Title: "A", Dependencies: []string{"b"}},
			{ID: "b", Title: "B", Dependencies: []string{"a"}},
			{ID: "free", Title: "Free"},
		}

		groups, orphans := Groups(items)
		require.Len(t, groups, 1)
		assert.Equal(t, "free", groups[0].Root.ID)
		assert.Equal(t, []string{"a", "b"}, ids(orphans))
	})

	t.Run("dangling-dependency items are orphans", func(t *testing.T) {
		items := []Item{
			{ID: "a", Title: "A", Dependency: "gone"},
		}

		groups, orphans := Groups(items)
		assert.Empty(t, groups)
		assert.Equal(t, []string{"a"}, ids(orphans))
	})

	t.Run("grouping does not change visibility", func(t *testing.T) {
		items := []Item{
			{ID: "r", Title: "Root"},
			{ID: "a", Title: "A", Dependencies: []string{"r"}},
		}
		completed := NewCompletedSet()

		before := Resolve(items, completed)
		_, _ = Groups(items)
		after := Resolve(items, completed)

		assert.Equal(t, before.IsVisible("a"), after.IsVisible("a"))
		assert.Equal(t, len(before.Visible), len(after.Visible))
	})
}

func TestFindCycles(t *testing.T) {
	t.Run("no cycles", func(t *testing.T) {
		items := []Item{
			{ID: "a", Title: "A"},
			{ID: "b", Title: "B", Dependencies: []string{"a"}},
		}
		assert.Empty(t, FindCycles(items))
	})

	t.Run("mutual cycle", func(t *testing.T) {
		items := []Item{
			{ID: "a", Title: "A", Dependencies: []string{"b"}},
			{ID: "b", Title: "B", Dependencies: []string{"a"}},
		}

		cycles := FindCycles(items)
		require.Len(t, cycles, 1)
		assert.ElementsMatch(t, []string{"a", "b"}, cycles[0])
	})

	t.Run("dangling edges form no cycle", func(t *testing.T) {
		items := []Item{
			{ID: "a", Title: "A", Dependencies: []string{"missing"}},
		}
		assert.Empty(t, FindCycles(items))
	})

	t.Run("legacy field participates in cycles", func(t *testing.T) {
		items := []Item{
			{ID: "a", Title: "A", Dependency: "b"},
			{ID: "b", Title: "B", Dependency: "a"},
		}
		assert.Len(t, FindCycles(items), 1)
	})
}
