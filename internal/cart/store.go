// Package cart is the order service's view of the cart service: a Redis
// hash per user keyed by product uuid.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type Item struct {
	ProductUUID uuid.UUID       `json:"product_uuid"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type Store struct {
	log    logger.Logger
	client *redis.Client
}

func NewStore(log logger.Logger, client *redis.Client) *Store {
	return &Store{
		log:    log,
		client: client,
	}
}

func cartKey(userUUID uuid.UUID) string {
	return "cart:" + userUUID.String()
}

func (s *Store) GetCart(ctx context.Context, userUUID uuid.UUID) ([]Item, error) {
	const op = "cart.GetCart"

	fields, err := s.client.HGetAll(ctx, cartKey(userUUID)).Result()
	if err != nil {
		s.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]Item, 0, len(fields))
	for _, raw := range fields {
		var item Item
		if err = json.Unmarshal([]byte(raw), &item); err != nil {
			s.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: unmarshal item: %w", op, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *Store) AddItem(ctx context.Context, userUUID uuid.UUID, item Item) error {
	const op = "cart.AddItem"

	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("%s: marshal item: %w", op, err)
	}

	if err = s.client.HSet(ctx, cartKey(userUUID), item.ProductUUID.String(), raw).Err(); err != nil {
		s.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) ClearCart(ctx context.Context, userUUID uuid.UUID) error {
	const op = "cart.ClearCart"

	if err := s.client.Del(ctx, cartKey(userUUID)).Err(); err != nil {
		s.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
