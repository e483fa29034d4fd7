// Package checklist defines the checklist item domain model and the pure
// dependency resolver that decides which items are actionable.
package checklist

import "errors"

var (
	// ErrNotFound is returned when a checklist item does not exist.
	ErrNotFound = errors.New("checklist item not found")
	// ErrEmptyTitle is returned when an item title is empty after trimming.
	ErrEmptyTitle = errors.New("item title is empty")
	// ErrSelfDependency is returned when an item lists itself as a prerequisite.
	ErrSelfDependency = errors.New("item cannot depend on itself")
	// ErrOrderMismatch is returned when a reorder does not preserve the item set.
	ErrOrderMismatch = errors.New("reorder does not preserve the item set")
	// ErrBadSnapshot is returned when a snapshot payload is malformed.
	ErrBadSnapshot = errors.New("malformed checklist snapshot")
)

// Item represents a single checklist entry.
//
// Dependencies carries set semantics: order is irrelevant and every listed
// ID must be completed before the item becomes visible. A nil slice means
// the field is absent and the legacy Dependency field applies instead; a
// non-nil slice, including an empty one, always takes precedence over
// Dependency. EffectiveDependencies is the only place that distinction is
// allowed to matter.
type Item struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Dependencies []string `json:"dependencies,omitempty"`

	// Dependency is the legacy single-prerequisite field kept for snapshot
	// compatibility. Empty means no prerequisite.
	Dependency string `json:"dependency,omitempty"`
}

// EffectiveDependencies normalizes the legacy and current dependency fields
// into a single prerequisite set. Nil or empty means the item has no
// prerequisites.
func (i Item) EffectiveDependencies() []string {
	if i.Dependencies != nil {
		return i.Dependencies
	}
	if i.Dependency != "" {
		return []string{i.Dependency}
	}
	return nil
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	c := i
	if i.Dependencies != nil {
		c.Dependencies = append([]string{}, i.Dependencies...)
	}
	return c
}

// CompletedSet is the set of item IDs the user has checked off. Membership
// is independent of whether the referenced item still exists.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from a list of IDs.
func NewCompletedSet(ids ...string) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s CompletedSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips membership for id and reports the resulting state.
func (s CompletedSet) Toggle(id string) bool {
	if s.Contains(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Clone returns a copy of the set.
func (s CompletedSet) Clone() CompletedSet {
	c := make(CompletedSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}
