package create

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/miFu278/ECommercePlatform-sub000/internal/cart"
	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type cartStore interface {
	GetCart(ctx context.Context, userUUID uuid.UUID) ([]cart.Item, error)
	ClearCart(ctx context.Context, userUUID uuid.UUID) error
}

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) error
}

// Pricing holds the checkout money rules.
type Pricing struct {
	Currency              string
	TaxRate               decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func PricingFromConfig(cfg config.PricingConfig) (Pricing, error) {
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse tax_rate: %w", err)
	}
	shippingFee, err := decimal.NewFromString(cfg.ShippingFee)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse shipping_fee: %w", err)
	}
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return Pricing{}, fmt.Errorf("parse free_shipping_threshold: %w", err)
	}

	return Pricing{
		Currency:              cfg.Currency,
		TaxRate:               taxRate,
		ShippingFee:           shippingFee,
		FreeShippingThreshold: threshold,
	}, nil
}

type OrderCreationService struct {
	log     logger.Logger
	pricing Pricing

	cartStore    cartStore
	orderCreator orderCreator
	publisher    events.Publisher
}

func New(
	log logger.Logger,
	pricing Pricing,
	cartStore cartStore,
	orderCreator orderCreator,
	publisher events.Publisher,
) *OrderCreationService {
	return &OrderCreationService{
		log:          log,
		pricing:      pricing,
		cartStore:    cartStore,
		orderCreator: orderCreator,
		publisher:    publisher,
	}
}

// Checkout turns the user's cart into a pending order: snapshot the items,
// apply the pricing rules, persist, publish OrderCreatedEvent and clear
// the cart. Publishing and cart clearing happen after the order committed;
// their failures are logged, never surfaced to the caller.
func (os *OrderCreationService) Checkout(ctx context.Context, userUUID uuid.UUID) (*models.Order, error) {
	const op = "services.order.create.Checkout"

	items, err := os.cartStore.GetCart(ctx, userUUID)
	if err != nil {
		os.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(items) == 0 {
		return nil, internalErrors.ErrEmptyCart
	}

	order := models.NewOrder(userUUID, os.pricing.Currency, snapshotItems(items))
	os.applyPricing(order)

	if err = os.orderCreator.Create(ctx, order); err != nil {
		os.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = os.cartStore.ClearCart(ctx, userUUID); err != nil {
		os.log.Error(op, logger.String("stage", "clear cart"), logger.Err(err))
	}

	if err = os.publisher.Publish(ctx, orderCreatedEvent(order)); err != nil {
		os.log.Error(op, logger.String("stage", "publish"), logger.Err(err))
	}

	return order, nil
}

func snapshotItems(items []cart.Item) []models.OrderItem {
	snapshots := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		snapshots = append(snapshots, models.OrderItem{
			ProductUUID: item.ProductUUID,
			Name:        item.Name,
			SKU:         item.SKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return snapshots
}

// applyPricing fills shipping, tax and total from the subtotal computed at
// construction. Shipping is free once the subtotal reaches the threshold;
// tax is rounded to cents.
func (os *OrderCreationService) applyPricing(order *models.Order) {
	shipping := os.pricing.ShippingFee
	if order.Subtotal.GreaterThanOrEqual(os.pricing.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := order.Subtotal.Mul(os.pricing.TaxRate).Round(2)

	order.Shipping = shipping
	order.Tax = tax
	order.Total = order.Subtotal.Add(shipping).Add(tax).Sub(order.Discount)
}

func orderCreatedEvent(order *models.Order) *events.OrderCreatedEvent {
	items := make([]events.OrderCreatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, events.OrderCreatedItem{
			ProductUUID: item.ProductUUID,
			Name:        item.Name,
			SKU:         item.SKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	return events.NewOrderCreatedEvent(
		order.OrderUUID,
		order.Number,
		order.UserUUID,
		order.Total,
		order.Currency,
		items,
	)
}
