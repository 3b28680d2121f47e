package get

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type orderGetter interface {
	Order(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	OrdersByUser(ctx context.Context, userUUID uuid.UUID) ([]models.Order, error)
}

type orderCache interface {
	Get(key uuid.UUID) (*models.Order, bool)
	Add(key uuid.UUID, value *models.Order) bool
}

type OrderRetrievalService struct {
	log   logger.Logger
	cache orderCache

	orderGetter orderGetter
}

func New(log logger.Logger, cache orderCache, orderGetter orderGetter) *OrderRetrievalService {
	return &OrderRetrievalService{
		log:         log,
		cache:       cache,
		orderGetter: orderGetter,
	}
}

func (os *OrderRetrievalService) OrderByUUID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error) {
	const op = "services.order.get.OrderByUUID"

	if order, ok := os.cache.Get(orderUUID); ok && order != nil {
		os.log.DebugContext(ctx, op, logger.String("source", "cache"))
		return order, nil
	}

	order, err := os.orderGetter.Order(ctx, orderUUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = os.cache.Add(orderUUID, order)

	return order, nil
}

func (os *OrderRetrievalService) OrdersByUser(ctx context.Context, userUUID uuid.UUID) ([]models.Order, error) {
	const op = "services.order.get.OrdersByUser"

	orders, err := os.orderGetter.OrdersByUser(ctx, userUUID)
	if err != nil {
		os.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}
