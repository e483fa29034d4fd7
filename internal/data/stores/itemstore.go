// Package stores holds the authoritative in-memory state implementations.
package stores

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/eventbus"
	"github.com/rs/zerolog"
)

// ItemStore is the single source of truth for checklist items and completion
// state. All mutation goes through it: every successful mutation is persisted
// through the snapshot port and announced on the event bus, so observers
// always see a consistent snapshot.
type ItemStore struct {
	mu        sync.Mutex
	items     []checklist.Item
	completed checklist.CompletedSet

	port checklist.SnapshotStore
	bus  *eventbus.EventBus
	log  zerolog.Logger
}

// Patch describes a partial item update. Nil pointers leave the field
// untouched. A pointer to an empty slice sets an explicit empty dependency
// set, which opts the item out of legacy single-dependency mode.
type Patch struct {
	Title        *string
	Dependencies *[]string
	Dependency   *string
}

// NewItemStore creates a store, loading initial state from the snapshot
// port. A nil port makes the store ephemeral.
func NewItemStore(port checklist.SnapshotStore, bus *eventbus.EventBus, log zerolog.Logger) (*ItemStore, error) {
	s := &ItemStore{
		completed: checklist.NewCompletedSet(),
		port:      port,
		bus:       bus,
		log:       log.With().Str("component", "item-store").Logger(),
	}

	if port != nil {
		snap, err := port.Load()
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if err := snap.Validate(); err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		s.items = normalizeItems(snap.Items)
		s.completed = checklist.NewCompletedSet(snap.CompletedIDs...)
	}

	return s, nil
}

// Items returns a copy of the ordered collection.
func (s *ItemStore) Items() []checklist.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Get returns a single item by ID.
func (s *ItemStore) Get(id string) (checklist.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id {
			return item.Clone(), nil
		}
	}
	return checklist.Item{}, checklist.ErrNotFound
}

// CompletedIDs returns the completed set as a sorted slice.
func (s *ItemStore) CompletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedIDsLocked()
}

// Completed returns a copy of the completed set.
func (s *ItemStore) Completed() checklist.CompletedSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed.Clone()
}

// Resolve computes the current visible/hidden partition.
func (s *ItemStore) Resolve() checklist.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return checklist.Resolve(cloneItems(s.items), s.completed.Clone())
}

// Stats derives runner progress counters.
func (s *ItemStore) Stats() checklist.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return checklist.ComputeStats(s.items, s.completed)
}

// Add creates a dependency-free item at the end of the collection.
func (s *ItemStore) Add(title string) (checklist.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return checklist.Item{}, checklist.ErrEmptyTitle
	}

	s.mu.Lock()
	item := checklist.Item{ID: uuid.NewString(), Title: title}
	s.items = append(s.items, item)
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishItemAdded(eventbus.ItemAddedPayload{Item: &item})
	return item, nil
}

// AddWithDependencies creates an item with an explicit dependency set. The
// set may be empty, which opts the item out of legacy mode. The returned
// item's ID is immediately usable as a dependency target, so callers can
// chain calls to build a prerequisite sequence.
func (s *ItemStore) AddWithDependencies(title string, deps []string) (checklist.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return checklist.Item{}, checklist.ErrEmptyTitle
	}

	cleaned, err := cleanDeps(deps, "")
	if err != nil {
		return checklist.Item{}, err
	}

	s.mu.Lock()
	item := checklist.Item{ID: uuid.NewString(), Title: title, Dependencies: cleaned}
	s.items = append(s.items, item)
	s.warnCyclesLocked()
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishItemAdded(eventbus.ItemAddedPayload{Item: &item})
	return item, nil
}

// Update merges the patch into an existing item. Validation failures leave
// the item untouched. Writing a non-nil dependency set clears the legacy
// field, migrating the item off legacy mode for good.
func (s *ItemStore) Update(id string, patch Patch) (checklist.Item, error) {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return checklist.Item{}, checklist.ErrNotFound
	}

	next := s.items[idx].Clone()
	depsChanged := false

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			s.mu.Unlock()
			return checklist.Item{}, checklist.ErrEmptyTitle
		}
		next.Title = title
	}

	if patch.Dependency != nil {
		if *patch.Dependency == id {
			s.mu.Unlock()
			return checklist.Item{}, checklist.ErrSelfDependency
		}
		next.Dependency = *patch.Dependency
		depsChanged = true
	}

	if patch.Dependencies != nil {
		cleaned, err := cleanDeps(*patch.Dependencies, id)
		if err != nil {
			s.mu.Unlock()
			return checklist.Item{}, err
		}
		next.Dependencies = cleaned
		next.Dependency = ""
		depsChanged = true
	}

	s.items[idx] = next
	if depsChanged {
		s.warnCyclesLocked()
	}
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishItemUpdated(eventbus.ItemUpdatedPayload{Item: &next})
	return next, nil
}

// Delete removes an item and drops its ID from the completed set. Other
// items' dependency lists are deliberately left alone: a dangling reference
// keeps its dependents hidden, which is the documented degenerate state.
func (s *ItemStore) Delete(id string) error {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return checklist.ErrNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.completed, id)
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishItemDeleted(eventbus.ItemDeletedPayload{ItemID: id})
	return nil
}

// Reorder replaces the collection sequence wholesale. The new order must
// contain exactly the current item IDs. Ordering is presentation-only and
// never affects resolution.
func (s *ItemStore) Reorder(ids []string) error {
	s.mu.Lock()

	if len(ids) != len(s.items) {
		s.mu.Unlock()
		return checklist.ErrOrderMismatch
	}

	byID := make(map[string]checklist.Item, len(s.items))
	for _, item := range s.items {
		byID[item.ID] = item
	}

	next := make([]checklist.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			s.mu.Unlock()
			return checklist.ErrOrderMismatch
		}
		delete(byID, id)
		next = append(next, item)
	}

	s.items = next
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishItemsReordered(eventbus.ItemsReorderedPayload{IDs: append([]string{}, ids...)})
	return nil
}

// Toggle flips completion for an ID and reports the new state. IDs without
// a backing item may be toggled freely; the completed set is independent of
// the collection.
func (s *ItemStore) Toggle(id string) bool {
	s.mu.Lock()
	completed := s.completed.Toggle(id)
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishItemToggled(eventbus.ItemToggledPayload{ItemID: id, Completed: completed})
	return completed
}

// ResetRunner clears the completed set. Items are untouched.
func (s *ItemStore) ResetRunner() {
	s.mu.Lock()
	s.completed = checklist.NewCompletedSet()
	s.persistLocked()
	s.mu.Unlock()

	s.bus.PublishRunnerReset(eventbus.RunnerResetPayload{})
}

// Replace swaps the item collection wholesale, keeping completion state.
func (s *ItemStore) Replace(items []checklist.Item) error {
	snap := checklist.Snapshot{Items: items}
	if err := snap.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = normalizeItems(items)
	s.warnCyclesLocked()
	s.persistLocked()
	count := len(s.items)
	s.mu.Unlock()

	s.bus.PublishSnapshotImported(eventbus.SnapshotImportedPayload{Items: count})
	return nil
}

// Import replaces the full state from a snapshot. The snapshot must carry
// array-typed items and completedIds; malformed input leaves current state
// unchanged.
func (s *ItemStore) Import(snap checklist.Snapshot) error {
	if snap.Items == nil || snap.CompletedIDs == nil {
		return checklist.ErrBadSnapshot
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = normalizeItems(snap.Items)
	s.completed = checklist.NewCompletedSet(snap.CompletedIDs...)
	s.warnCyclesLocked()
	s.persistLocked()
	count := len(s.items)
	s.mu.Unlock()

	s.bus.PublishSnapshotImported(eventbus.SnapshotImportedPayload{Items: count})
	return nil
}

// Export serializes the full state to its transport form.
func (s *ItemStore) Export() checklist.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

func (s *ItemStore) exportLocked() checklist.Snapshot {
	return checklist.Snapshot{
		Items:        cloneItems(s.items),
		CompletedIDs: s.completedIDsLocked(),
	}
}

func (s *ItemStore) completedIDsLocked() []string {
	ids := make([]string, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *ItemStore) indexLocked(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked saves through the port. A save failure is logged, never
// surfaced: the in-memory mutation already happened and stays authoritative.
func (s *ItemStore) persistLocked() {
	if s.port == nil {
		return
	}
	if err := s.port.Save(s.exportLocked()); err != nil {
		s.log.Warn().Err(err).Msg("persist snapshot failed")
	}
}

// warnCyclesLocked logs dependency cycles after edge-changing writes.
// Detection only: cycles stay in the data as permanently hidden items.
func (s *ItemStore) warnCyclesLocked() {
	for _, cycle := range checklist.FindCycles(s.items) {
		s.log.Warn().Strs("items", cycle).Msg("dependency cycle: these items can never become visible")
	}
}

// cleanDeps trims entries, drops empties, dedupes and rejects self-reference.
// Always returns a non-nil slice so the result reads as an explicit set.
func cleanDeps(deps []string, selfID string) ([]string, error) {
	cleaned := make([]string, 0, len(deps))
	seen := make(map[string]bool, len(deps))

	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" || seen[dep] {
			continue
		}
		if selfID != "" && dep == selfID {
			return nil, checklist.ErrSelfDependency
		}
		seen[dep] = true
		cleaned = append(cleaned, dep)
	}

	return cleaned, nil
}

// normalizeItems applies boundary normalization: once an item carries an
// explicit dependency set, the legacy field is cleared so no later code ever
// branches on the legacy shape again.
func normalizeItems(items []checklist.Item) []checklist.Item {
	out := cloneItems(items)
	for i := range out {
		if out[i].Dependencies != nil {
			out[i].Dependency = ""
		}

		// Self-references arriving through a snapshot are ignored rather
		// than rejected; they must never cause a permanent hide.
		if out[i].ID != "" && out[i].Dependency == out[i].ID {
			out[i].Dependency = ""
		}
		if out[i].Dependencies != nil {
			deps := out[i].Dependencies[:0]
			for _, dep := range out[i].Dependencies {
				if dep != out[i].ID {
					deps = append(deps, dep)
				}
			}
			out[i].Dependencies = deps
		}
	}
	return out
}

func cloneItems(items []checklist.Item) []checklist.Item {
	out := make([]checklist.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
