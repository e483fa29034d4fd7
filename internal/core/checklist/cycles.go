package checklist

// FindCycles returns every dependency cycle among the given items, each as
// the list of member IDs in edge order. Edges pointing at missing items are
// ignored; a dangling prerequisite blocks an item but cannot form a cycle.
//
// Cycles are valid-but-degenerate state: their members can never become
// visible because each waits on another. The resolver handles them without
// special casing, so this exists purely so the write path can warn.
func FindCycles(items []Item) [][]string {
	byID := make(map[string]Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	const (
		unvisited = iota
		inStack
		done
	)

	state := make(map[string]int, len(items))
	var stack []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		state[id] = inStack
		stack = append(stack, id)

		item := byID[id]
		for _, dep := range item.EffectiveDependencies() {
			if _, exists := byID[dep]; !exists {
				continue
			}
			switch state[dep] {
			case unvisited:
				visit(dep)
			case inStack:
				// Back edge: the cycle is the stack suffix starting at dep.
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == dep {
						cycle := append([]string{}, stack[i:]...)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
	}

	for _, item := range items {
		if state[item.ID] == unvisited {
			visit(item.ID)
		}
	}

	return cycles
}
