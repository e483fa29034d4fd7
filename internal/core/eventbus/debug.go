package eventbus

import "github.com/rs/zerolog"

// RegisterDebugLogger logs every event at debug level.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.SubscribeAll(func(event Event, _ any) {
		logger.Debug().Str("event", string(event)).Msg("event fired")
	})
}
