// Package notification subscribes to order and payment events for
// side-effecting email dispatch. It owns no state; a failing send is
// retried through the durable transport's redelivery.
package notification

import (
	"context"
	"fmt"

	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes emails to the log instead of an SMTP relay. Useful for
// local runs and as the default wiring.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.log.InfoContext(ctx, "email sent",
		logger.String("recipient", recipient),
		logger.String("subject", subject),
		logger.String("body", body),
	)
	return nil
}

type OrderCreatedHandler struct {
	log    logger.Logger
	sender EmailSender
}

func NewOrderCreatedHandler(log logger.Logger, sender EmailSender) *OrderCreatedHandler {
	return &OrderCreatedHandler{log: log, sender: sender}
}

func (h *OrderCreatedHandler) HandlerName() string {
	return "notification.order_created"
}

func (h *OrderCreatedHandler) Handle(ctx context.Context, event events.Event) error {
	created, ok := event.(*events.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("notification.order_created: unexpected event type %s", event.EventType())
	}

	subject := fmt.Sprintf("Order %s confirmed", created.OrderNumber)
	body := fmt.Sprintf("Your order %s for %s %s was received.",
		created.OrderNumber, created.TotalAmount.StringFixed(2), created.Currency)

	return h.sender.Send(ctx, created.UserUUID.String(), subject, body)
}

type PaymentCompletedHandler struct {
	log    logger.Logger
	sender EmailSender
}

func NewPaymentCompletedHandler(log logger.Logger, sender EmailSender) *PaymentCompletedHandler {
	return &PaymentCompletedHandler{log: log, sender: sender}
}

func (h *PaymentCompletedHandler) HandlerName() string {
	return "notification.payment_completed"
}

func (h *PaymentCompletedHandler) Handle(ctx context.Context, event events.Event) error {
	completed, ok := event.(*events.PaymentCompletedEvent)
	if !ok {
		return fmt.Errorf("notification.payment_completed: unexpected event type %s", event.EventType())
	}

	subject := "Payment received"
	body := fmt.Sprintf("Payment of %s %s for order %s was completed.",
		completed.Amount.StringFixed(2), completed.Currency, completed.OrderUUID)

	return h.sender.Send(ctx, completed.OrderUUID.String(), subject, body)
}

var (
	_ events.Handler = (*OrderCreatedHandler)(nil)
	_ events.Handler = (*PaymentCompletedHandler)(nil)
)
