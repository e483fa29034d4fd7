package tui

import (
	"github.com/hay-kot/steplock/internal/core/checklist"
)

// row is a single renderable line in the runner: one checklist item with its
// display depth and resolved state.
type row struct {
	item    checklist.Item
	depth   int
	done    bool
	visible bool
	// blockers holds unmet prerequisite titles, only populated for hidden rows.
	blockers []string
}

// buildRows flattens the checklist into display order: dependency groups with
// descendants indented under their root, hidden rows included only when
// showAll is set. Unreachable items (cycles, dangling references) come last.
func buildRows(items []checklist.Item, completed checklist.CompletedSet, res checklist.Resolution, titleOf func(string) string, showAll bool) []row {
	groups, orphans := checklist.Groups(items)

	var rows []row
	appendRow := func(item checklist.Item, depth int) {
		visible := res.IsVisible(item.ID)
		if !visible && !showAll {
			return
		}
		r := row{
			item:    item,
			depth:   depth,
			done:    completed.Contains(item.ID),
			visible: visible,
		}
		if !visible {
			for _, id := range checklist.Blockers(item, completed) {
				r.blockers = append(r.blockers, titleOf(id))
			}
		}
		rows = append(rows, r)
	}

	for _, g := range groups {
		appendRow(g.Root, 0)
		for _, d := range g.Descendants {
			appendRow(d, 1)
		}
	}
	for _, item := range orphans {
		appendRow(item, 0)
	}

	return rows
}
