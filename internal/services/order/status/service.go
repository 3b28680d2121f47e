package status

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
	Remove(key uuid.UUID) bool
}

type OrderStatusService struct {
	log   logger.Logger
	cache orderCache

	orders orderRepository
}

func New(log logger.Logger, cache orderCache, orders orderRepository) *OrderStatusService {
	return &OrderStatusService{
		log:    log,
		cache:  cache,
		orders: orders,
	}
}

// Update advances the order to the requested status. Invalid transitions
// are rejected by the state machine before any write happens.
func (os *OrderStatusService) Update(ctx context.Context, orderUUID uuid.UUID, to models.OrderStatus, note string) (*models.Order, error) {
	const op = "services.order.status.Update"

	order, err := os.orders.Order(ctx, orderUUID)
	if err != nil {
		os.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = order.Transition(to, note); err != nil {
		return nil, err
	}

	if err = os.orders.UpdateStatus(ctx, order); err != nil {
		os.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = os.cache.Add(orderUUID, order)

	return order, nil
}
