package checklist

// Resolution partitions a collection of items into visible (actionable) and
// hidden (blocked) sets for a given completion state. Input order is
// preserved within each partition.
type Resolution struct {
	Visible []Item
	Hidden  []Item

	visible map[string]bool
}

// Resolve computes visibility for every item. It is a pure function over
// (items, completed) and never fails: dangling prerequisite IDs, cycles and
// other degenerate inputs all produce a total partition.
//
// An item is visible iff its effective prerequisite set is empty or every
// member is completed. Only direct prerequisites are consulted — completing
// the prerequisites of a prerequisite is never sufficient, and no edge is
// ever walked recursively, which is what makes cycles terminate trivially
// (their members simply stay hidden).
func Resolve(items []Item, completed CompletedSet) Resolution {
	res := Resolution{visible: make(map[string]bool, len(items))}

	for _, item := range items {
		visible := true
		for _, dep := range item.EffectiveDependencies() {
			if !completed.Contains(dep) {
				visible = false
				break
			}
		}

		res.visible[item.ID] = visible
		if visible {
			res.Visible = append(res.Visible, item)
		} else {
			res.Hidden = append(res.Hidden, item)
		}
	}

	return res
}

// IsVisible reports whether the item with the given ID resolved visible.
// Unknown IDs report false.
func (r Resolution) IsVisible(id string) bool {
	return r.visible[id]
}

// Blockers returns the unmet prerequisite IDs for an item under the given
// completion state. Empty for visible items.
func Blockers(item Item, completed CompletedSet) []string {
	var blocked []string
	for _, dep := range item.EffectiveDependencies() {
		if !completed.Contains(dep) {
			blocked = append(blocked, dep)
		}
	}
	return blocked
}

// Stats summarizes runner progress over a collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Hidden    int `json:"hidden"`
}

// ComputeStats derives progress counters. Completed counts only IDs that
// still reference an existing item, so stale completions left behind by
// deletions do not inflate progress.
func ComputeStats(items []Item, completed CompletedSet) Stats {
	stats := Stats{Total: len(items)}

	res := Resolve(items, completed)
	stats.Hidden = len(res.Hidden)

	for _, item := range items {
		if completed.Contains(item.ID) {
			stats.Completed++
		}
	}

	return stats
}
