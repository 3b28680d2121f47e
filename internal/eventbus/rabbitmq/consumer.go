package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type ackAction int

const (
	ackMessage ackAction = iota
	requeueMessage
	deadLetterMessage
)

// decide maps a delivery outcome onto an acknowledgment action. A failed
// delivery is requeued until the attempt bound, then dead-lettered so a
// poison message cannot redeliver forever.
func decide(failed bool, attempts, maxAttempts int) ackAction {
	if !failed {
		return ackMessage
	}
	if attempts >= maxAttempts {
		return deadLetterMessage
	}
	return requeueMessage
}

// Consume runs the background consumer loop for the service queue. Every
// message is decoded through the type registry and dispatched to all
// handlers of its event type; the message is acknowledged only when every
// handler succeeded. Handler failures never crash the loop.
func (b *Bus) Consume(ctx context.Context) error {
	const op = "eventbus.rabbitmq.Consume"

	deliveries, err := b.ch.Consume(b.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	b.log.Info("consumer loop started", logger.String("queue", b.cfg.Queue))

	// Delivery attempts per message id, tracked in the consumer. Reset on
	// restart, which only widens the redelivery bound.
	attempts := make(map[string]int)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				b.log.Warn(op, logger.String("reason", "delivery channel closed"))
				return nil
			}
			b.handleDelivery(ctx, delivery, attempts)
		}
	}
}

func (b *Bus) handleDelivery(ctx context.Context, delivery amqp.Delivery, attempts map[string]int) {
	const op = "eventbus.rabbitmq.handleDelivery"

	b.mu.RLock()
	sub := b.subs[delivery.RoutingKey]
	b.mu.RUnlock()

	if sub == nil || len(sub.handlers) == 0 {
		b.log.Warn(op,
			logger.String("routing_key", delivery.RoutingKey),
			logger.String("reason", "no handlers registered, message dropped"),
		)
		b.ack(delivery)
		return
	}

	event, err := b.decodeDelivery(sub, delivery)
	if err != nil {
		// A malformed payload will never decode on redelivery.
		b.log.Error(op, logger.String("routing_key", delivery.RoutingKey), logger.Err(err))
		b.deadLetter(ctx, delivery)
		b.ack(delivery)
		return
	}

	handlerCtx, cancel := context.WithTimeout(ctx, b.cfg.HandlerTimeout)
	failed := false
	for _, handler := range sub.handlers {
		if err := handler.Handle(handlerCtx, event); err != nil {
			failed = true
			b.log.Error("event handler failed",
				logger.String("event_type", event.EventType()),
				logger.String("event_id", event.EventID()),
				logger.String("handler", handler.HandlerName()),
				logger.Err(err),
			)
		}
	}
	cancel()

	key := messageKey(delivery, event.EventID())
	if failed {
		attempts[key]++
	}

	switch decide(failed, attempts[key], b.cfg.MaxAttempts) {
	case ackMessage:
		delete(attempts, key)
		b.ack(delivery)
	case requeueMessage:
		if err := delivery.Nack(false, true); err != nil {
			b.log.Error(op, logger.String("stage", "nack"), logger.Err(err))
		}
	case deadLetterMessage:
		b.log.Error("message dead-lettered after repeated failures",
			logger.String("event_type", event.EventType()),
			logger.String("event_id", event.EventID()),
			logger.Int("attempts", attempts[key]),
		)
		delete(attempts, key)
		b.deadLetter(ctx, delivery)
		b.ack(delivery)
	}
}

func (b *Bus) decodeDelivery(sub *subscription, delivery amqp.Delivery) (events.Event, error) {
	env, err := events.Open(delivery.Body)
	if err != nil {
		return nil, err
	}
	return sub.decode(env.Data)
}

func messageKey(delivery amqp.Delivery, eventID string) string {
	if delivery.MessageId != "" {
		return delivery.MessageId
	}
	return eventID
}

func (b *Bus) ack(delivery amqp.Delivery) {
	if err := delivery.Ack(false); err != nil {
		b.log.Error("ack failed", logger.Err(err))
	}
}

// deadLetter republishes the raw message body to the service's dead-letter
// queue through the default exchange.
func (b *Bus) deadLetter(ctx context.Context, delivery amqp.Delivery) {
	err := b.ch.PublishWithContext(ctx, "", deadLetterQueue(b.cfg.Queue), false, false, amqp.Publishing{
		ContentType:  delivery.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    delivery.MessageId,
		Type:         delivery.Type,
		Body:         delivery.Body,
	})
	if err != nil {
		b.log.Error("dead-letter publish failed", logger.Err(err))
	}
}
