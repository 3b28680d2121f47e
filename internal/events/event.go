// Package events holds the integration-event contract shared by every
// service: the event interface, the versioned wire envelope and the two
// concrete event types other services may subscribe to.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact about a completed state change, broadcast for
// other services to react to asynchronously.
type Event interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
}

// BaseEvent carries the envelope identity fields. Embed it in concrete
// event types; construction assigns a fresh id and the current UTC time,
// and the fields are never mutated afterwards.
type BaseEvent struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Timestamp time.Time `json:"occurred_at"`
}

func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// Handler reacts to a single event type. HandlerName identifies the handler
// for subscription dedup, so subscribing the same (event type, handler)
// pair twice is a no-op.
type Handler interface {
	HandlerName() string
	Handle(ctx context.Context, event Event) error
}

// Publisher hands an event to a transport. Whether the call waits for
// handlers to run is a property of the transport, not of this contract.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Subscriber registers handlers during service start-up, before any publish
// of the event type is expected to reach them.
type Subscriber interface {
	Subscribe(eventType string, handler Handler) error
}

type handlerFunc struct {
	name string
	fn   func(ctx context.Context, event Event) error
}

// HandlerFunc adapts an ordinary function into a named Handler.
func HandlerFunc(name string, fn func(ctx context.Context, event Event) error) Handler {
	return &handlerFunc{name: name, fn: fn}
}

func (h *handlerFunc) HandlerName() string { return h.name }

func (h *handlerFunc) Handle(ctx context.Context, event Event) error {
	return h.fn(ctx, event)
}
