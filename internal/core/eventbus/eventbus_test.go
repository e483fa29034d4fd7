package eventbus

import (
	"testing"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	t.Run("typed subscribers receive matching events only", func(t *testing.T) {
		bus := New()

		var added []string
		bus.Subscribe(EventItemAdded, func(payload any) {
			p, ok := payload.(ItemAddedPayload)
			require.True(t, ok)
			added = append(added, p.Item.ID)
		})

		bus.PublishItemAdded(ItemAddedPayload{Item: &checklist.Item{ID: "a"}})
		bus.PublishItemDeleted(ItemDeletedPayload{ItemID: "a"})
		bus.PublishItemAdded(ItemAddedPayload{Item: &checklist.Item{ID: "b"}})

		assert.Equal(t, []string{"a", "b"}, added)
	})

	t.Run("SubscribeAll observes every event", func(t *testing.T) {
		bus := New()

		var events []Event
		bus.SubscribeAll(func(event Event, _ any) {
			events = append(events, event)
		})

		bus.PublishItemToggled(ItemToggledPayload{ItemID: "a", Completed: true})
		bus.PublishRunnerReset(RunnerResetPayload{})

		assert.Equal(t, []Event{EventItemToggled, EventRunnerReset}, events)
	})

	t.Run("publish with no subscribers is a no-op", func(t *testing.T) {
		bus := New()
		bus.PublishItemsReordered(ItemsReorderedPayload{IDs: []string{"a"}})
	})
}

func TestRegisterDebugLogger(t *testing.T) {
	bus := New()
	RegisterDebugLogger(bus, zerolog.Nop())

	// Verifies dispatch through the logger path does not panic.
	bus.PublishSnapshotImported(SnapshotImportedPayload{Items: 3})
}
