// Package eventbus provides a typed publish/subscribe bus for change
// notification out of the item store. Dispatch is synchronous: there is one
// logical writer and subscribers observe a consistent snapshot.
package eventbus

import "sync"

// Event identifies a change notification type.
type Event string

const (
	EventItemAdded        Event = "item.added"
	EventItemUpdated      Event = "item.updated"
	EventItemDeleted      Event = "item.deleted"
	EventItemsReordered   Event = "items.reordered"
	EventItemToggled      Event = "item.toggled"
	EventRunnerReset      Event = "runner.reset"
	EventSnapshotImported Event = "snapshot.imported"
)

// EventBus dispatches typed events to registered subscribers.
type EventBus struct {
	mu   sync.RWMutex
	subs map[Event][]func(any)
	all  []func(Event, any)
}

// New creates an empty event bus.
func New() *EventBus {
	return &EventBus{subs: make(map[Event][]func(any))}
}

// Subscribe registers a handler for a single event type.
func (b *EventBus) Subscribe(event Event, fn func(payload any)) {
	b.mu.Lock()
	b.subs[event] = append(b.subs[event], fn)
	b.mu.Unlock()
}

// SubscribeAll registers a handler that observes every event.
func (b *EventBus) SubscribeAll(fn func(event Event, payload any)) {
	b.mu.Lock()
	b.all = append(b.all, fn)
	b.mu.Unlock()
}

func (b *EventBus) publish(event Event, payload any) {
	b.mu.RLock()
	subs := make([]func(any), len(b.subs[event]))
	copy(subs, b.subs[event])
	all := make([]func(Event, any), len(b.all))
	copy(all, b.all)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(payload)
	}
	for _, fn := range all {
		fn(event, payload)
	}
}
