// Package inmemory implements the event bus for single-process
// deployments: same-process dispatch, no delivery guarantee beyond
// "delivered if subscribed before publish and the process stays up".
package inmemory

import (
	"context"
	"sync"

	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type Bus struct {
	log logger.Logger

	mu       sync.RWMutex
	frozen   bool
	handlers map[string][]events.Handler
}

func New(log logger.Logger) *Bus {
	return &Bus{
		log:      log,
		handlers: make(map[string][]events.Handler),
	}
}

// Subscribe registers a handler for an event type. Subscribing the same
// (event type, handler name) pair twice is a no-op. Subscriptions are
// rejected once the registry is frozen.
func (b *Bus) Subscribe(eventType string, handler events.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return internalErrors.ErrRegistryFrozen
	}

	for _, registered := range b.handlers[eventType] {
		if registered.HandlerName() == handler.HandlerName() {
			return nil
		}
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.log.Debug("subscribed to event",
		logger.String("event_type", eventType),
		logger.String("handler", handler.HandlerName()),
	)

	return nil
}

// Freeze makes the registry read-only. Steady-state dispatch after Freeze
// needs no synchronization with writers.
func (b *Bus) Freeze() {
	b.mu.Lock()
	b.frozen = true
	b.mu.Unlock()
}

// Publish invokes every registered handler sequentially, in registration
// order, and returns once all of them ran. A failing handler is logged and
// does not stop the remaining handlers or surface to the caller; there is
// no retry on this transport. An event type with zero handlers is dropped.
func (b *Bus) Publish(ctx context.Context, event events.Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.EventType()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("no handlers registered, event dropped",
			logger.String("event_type", event.EventType()),
			logger.String("event_id", event.EventID()),
		)
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			b.log.Error("event handler failed",
				logger.String("event_type", event.EventType()),
				logger.String("event_id", event.EventID()),
				logger.String("handler", handler.HandlerName()),
				logger.Err(err),
			)
		}
	}

	return nil
}

var (
	_ events.Publisher  = (*Bus)(nil)
	_ events.Subscriber = (*Bus)(nil)
)
