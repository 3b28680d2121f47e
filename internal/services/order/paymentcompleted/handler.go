// Package paymentcompleted reacts to PaymentCompletedEvent from the
// payment service. The durable transport delivers at-least-once, so the
// handler must stay correct when the same event arrives twice.
package paymentcompleted

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type orderRepository interface {
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order) error
}

type orderCache interface {
	Add(key uuid.UUID, value *models.Order) bool
}

type Handler struct {
	log   logger.Logger
	cache orderCache

	orders orderRepository
}

func NewHandler(log logger.Logger, cache orderCache, orders orderRepository) *Handler {
	return &Handler{
		log:    log,
		cache:  cache,
		orders: orders,
	}
}

func (h *Handler) HandlerName() string {
	return "order.payment_completed"
}

// Handle advances the order from pending to processing. An order already
// past pending means the event is a duplicate (or the order moved on), and
// the handler is a no-op: state and history stay unchanged.
func (h *Handler) Handle(ctx context.Context, event events.Event) error {
	const op = "services.order.paymentcompleted.Handle"

	completed, ok := event.(*events.PaymentCompletedEvent)
	if !ok {
		return fmt.Errorf("%s: unexpected event type %s", op, event.EventType())
	}

	order, err := h.orders.Order(ctx, completed.OrderUUID)
	if err != nil {
		h.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	changed, err := order.ApplyPaymentCompleted(completed.PaymentUUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !changed {
		h.log.DebugContext(ctx, op,
			logger.String("order_uuid", completed.OrderUUID.String()),
			logger.String("status", string(order.Status)),
			logger.String("reason", "order already past pending, event ignored"),
		)
		return nil
	}

	if err = h.orders.UpdateStatus(ctx, order); err != nil {
		h.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	_ = h.cache.Add(order.OrderUUID, order)

	h.log.InfoContext(ctx, op,
		logger.String("order_uuid", completed.OrderUUID.String()),
		logger.String("payment_uuid", completed.PaymentUUID.String()),
	)

	return nil
}

var _ events.Handler = (*Handler)(nil)
