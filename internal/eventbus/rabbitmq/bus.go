// Package rabbitmq implements the durable event bus transport: a direct
// exchange, one durable queue per service, routing keys equal to event type
// names, persistent messages and manual acknowledgment. Delivery is
// at-least-once; handlers must tolerate duplicates and out-of-order
// messages.
package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type Config struct {
	Exchange       string
	Queue          string
	MaxAttempts    int
	HandlerTimeout time.Duration
}

type subscription struct {
	decode   events.DecodeFunc
	handlers []events.Handler
}

type Bus struct {
	log logger.Logger
	ch  *amqp.Channel
	cfg Config

	mu     sync.RWMutex
	frozen bool
	subs   map[string]*subscription
}

// New declares the exchange, the service queue and its dead-letter queue.
// All three are durable; the broker keeps messages across restarts.
func New(ch *amqp.Channel, cfg Config, log logger.Logger) (*Bus, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 30 * time.Second
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", cfg.Exchange, err)
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %q: %w", cfg.Queue, err)
	}

	if _, err := ch.QueueDeclare(deadLetterQueue(cfg.Queue), true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare dead-letter queue: %w", err)
	}

	return &Bus{
		log:  log,
		ch:   ch,
		cfg:  cfg,
		subs: make(map[string]*subscription),
	}, nil
}

func deadLetterQueue(queue string) string {
	return queue + ".dlq"
}

// RegisterType installs the typed decoder for an event type. Decoders are
// a start-up-time registry; dispatch never falls back to reflection.
func (b *Bus) RegisterType(eventType string, decode events.DecodeFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return internalErrors.ErrRegistryFrozen
	}

	sub, ok := b.subs[eventType]
	if !ok {
		sub = &subscription{}
		b.subs[eventType] = sub
	}
	sub.decode = decode

	return nil
}

// Subscribe binds the service queue to the exchange with the event type
// name as routing key and registers the handler. Multiple event types fan
// into the one queue, disambiguated by routing key. Subscribing the same
// (event type, handler name) pair twice is a no-op.
func (b *Bus) Subscribe(eventType string, handler events.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return internalErrors.ErrRegistryFrozen
	}

	sub, ok := b.subs[eventType]
	if !ok || sub.decode == nil {
		return fmt.Errorf("subscribe %q: %w", eventType, internalErrors.ErrUnknownEventType)
	}

	for _, registered := range sub.handlers {
		if registered.HandlerName() == handler.HandlerName() {
			return nil
		}
	}

	if err := b.ch.QueueBind(b.cfg.Queue, eventType, b.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %q to %q: %w", b.cfg.Queue, eventType, err)
	}

	sub.handlers = append(sub.handlers, handler)
	b.log.Debug("subscribed to event",
		logger.String("event_type", eventType),
		logger.String("handler", handler.HandlerName()),
	)

	return nil
}

// Freeze makes the registry read-only for the remainder of the process
// lifetime.
func (b *Bus) Freeze() {
	b.mu.Lock()
	b.frozen = true
	b.mu.Unlock()
}

// HasSubscriptions reports whether any handler was registered; services
// that only publish skip the consumer loop.
func (b *Bus) HasSubscriptions() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if len(sub.handlers) > 0 {
			return true
		}
	}
	return false
}

// Publish serializes the event into its versioned envelope and hands it to
// the broker as a persistent message. The call returns once the broker
// accepted the message; handlers run later in consumer loops.
func (b *Bus) Publish(ctx context.Context, event events.Event) error {
	body, err := events.Wrap(event)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}

	err = b.ch.PublishWithContext(ctx, b.cfg.Exchange, event.EventType(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID(),
		Timestamp:    event.OccurredAt(),
		Type:         event.EventType(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}

	b.log.Debug("event published",
		logger.String("event_type", event.EventType()),
		logger.String("event_id", event.EventID()),
	)

	return nil
}

var (
	_ events.Publisher  = (*Bus)(nil)
	_ events.Subscriber = (*Bus)(nil)
)
