package eventbus

import "github.com/hay-kot/steplock/internal/core/checklist"

// ItemAddedPayload is emitted when a new item is created.
type ItemAddedPayload struct {
	Item *checklist.Item
}

// ItemUpdatedPayload is emitted when an item's fields change.
type ItemUpdatedPayload struct {
	Item *checklist.Item
}

// ItemDeletedPayload is emitted when an item is removed.
type ItemDeletedPayload struct {
	ItemID string
}

// ItemsReorderedPayload is emitted when the collection sequence changes.
type ItemsReorderedPayload struct {
	IDs []string
}

// ItemToggledPayload is emitted when an item's completion state flips.
type ItemToggledPayload struct {
	ItemID    string
	Completed bool
}

// RunnerResetPayload is emitted when the completed set is cleared.
type RunnerResetPayload struct{}

// SnapshotImportedPayload is emitted after a wholesale state replacement.
type SnapshotImportedPayload struct {
	Items int
}

// PublishItemAdded dispatches an item.added event.
func (b *EventBus) PublishItemAdded(p ItemAddedPayload) { b.publish(EventItemAdded, p) }

// PublishItemUpdated dispatches an item.updated event.
func (b *EventBus) PublishItemUpdated(p ItemUpdatedPayload) { b.publish(EventItemUpdated, p) }

// PublishItemDeleted dispatches an item.deleted event.
func (b *EventBus) PublishItemDeleted(p ItemDeletedPayload) { b.publish(EventItemDeleted, p) }

// PublishItemsReordered dispatches an items.reordered event.
func (b *EventBus) PublishItemsReordered(p ItemsReorderedPayload) { b.publish(EventItemsReordered, p) }

// PublishItemToggled dispatches an item.toggled event.
func (b *EventBus) PublishItemToggled(p ItemToggledPayload) { b.publish(EventItemToggled, p) }

// PublishRunnerReset dispatches a runner.reset event.
func (b *EventBus) PublishRunnerReset(p RunnerResetPayload) { b.publish(EventRunnerReset, p) }

// PublishSnapshotImported dispatches a snapshot.imported event.
func (b *EventBus) PublishSnapshotImported(p SnapshotImportedPayload) {
	b.publish(EventSnapshotImported, p)
}
