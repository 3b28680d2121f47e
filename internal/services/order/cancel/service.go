package cancel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type orderRepository interface {
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order) error
}

type orderCache interface {
	Add(key uuid.UUID, value *models.Order) bool
}

type OrderCancellationService struct {
	log   logger.Logger
	cache orderCache

	orders orderRepository
}

func New(log logger.Logger, cache orderCache, orders orderRepository) *OrderCancellationService {
	return &OrderCancellationService{
		log:    log,
		cache:  cache,
		orders: orders,
	}
}

// Cancel is a status transition, not a deletion. Only pending and
// processing orders can be cancelled; the state machine rejects the rest.
func (os *OrderCancellationService) Cancel(ctx context.Context, orderUUID uuid.UUID, note string) (err error) {
	const op = "services.order.cancel.Cancel"

	order, err := os.orders.Order(ctx, orderUUID)
	if err != nil {
		os.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if note == "" {
		note = "cancelled by user"
	}

	if err = order.Transition(models.OrderStatusCancelled, note); err != nil {
		return err
	}

	if err = os.orders.UpdateStatus(ctx, order); err != nil {
		os.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	_ = os.cache.Add(orderUUID, order)

	return nil
}
