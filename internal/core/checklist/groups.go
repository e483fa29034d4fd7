package checklist

// Group is a display aid: a dependency-free root item together with every
// item transitively reachable through "depends on" edges leading back to it.
// Grouping never influences visibility, only presentation order and
// indentation.
type Group struct {
	Root        Item
	Descendants []Item
}

// Groups partitions items into root groups for indented display. The second
// return value holds items that belong to no group: their prerequisites are
// dangling or form a cycle unreachable from any root. Those are rendered
// flat, after the groups.
//
// Within a group, descendants are ordered topologically with respect to
// edges inside the group, ties broken by insertion order. Members whose
// in-group prerequisites can never be placed (an intra-group cycle) are
// appended last in insertion order.
func Groups(items []Item) ([]Group, []Item) {
	// Reverse adjacency: prerequisite ID -> items that declare it.
	dependents := make(map[string][]Item, len(items))
	for _, item := range items {
		for _, dep := range item.EffectiveDependencies() {
			dependents[dep] = append(dependents[dep], item)
		}
	}

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}

	var groups []Group
	grouped := make(map[string]bool, len(items))

	for _, item := range items {
		if len(item.EffectiveDependencies()) > 0 {
			continue
		}
		grouped[item.ID] = true

		members := collectDescendants(item.ID, dependents)
		orderGroupMembers(item.ID, members, index)
		for _, m := range members {
			grouped[m.ID] = true
		}

		groups = append(groups, Group{Root: item, Descendants: members})
	}

	var orphans []Item
	for _, item := range items {
		if !grouped[item.ID] {
			orphans = append(orphans, item)
		}
	}

	return groups, orphans
}

// collectDescendants walks the reverse adjacency breadth-first from a root.
// The visited set guards against cycles so malformed graphs still terminate.
func collectDescendants(rootID string, dependents map[string][]Item) []Item {
	visited := map[string]bool{rootID: true}
	var members []Item

	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, dep := range dependents[id] {
			if visited[dep.ID] {
				continue
			}
			visited[dep.ID] = true
			members = append(members, dep)
			queue = append(queue, dep.ID)
		}
	}

	return members
}

// orderGroupMembers sorts members in place: topological over in-group edges,
// stable by original insertion order, unplaceable members last.
func orderGroupMembers(rootID string, members []Item, index map[string]int) {
	if len(members) < 2 {
		return
	}

	// BFS discovery order is not insertion order; restore it first so ties
	// resolve the way the list reads.
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && index[members[j].ID] < index[members[j-1].ID]; j-- {
			members[j], members[j-1] = members[j-1], members[j]
		}
	}

	inGroup := make(map[string]bool, len(members)+1)
	inGroup[rootID] = true
	for _, m := range members {
		inGroup[m.ID] = true
	}

	placed := map[string]bool{rootID: true}
	ordered := make([]Item, 0, len(members))
	remaining := append([]Item{}, members...)

	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]

		for _, m := range remaining {
			ready := true
			for _, dep := range m.EffectiveDependencies() {
				if inGroup[dep] && !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				ordered = append(ordered, m)
				placed[m.ID] = true
				progressed = true
			} else {
				next = append(next, m)
			}
		}

		remaining = next
		if !progressed {
			// Intra-group cycle: nothing else can be placed.
			ordered = append(ordered, remaining...)
			break
		}
	}

	copy(members, ordered)
}
