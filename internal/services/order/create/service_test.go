package create

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/miFu278/ECommercePlatform-sub000/internal/cart"
	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	eventMocks "github.com/miFu278/ECommercePlatform-sub000/internal/events/mocks"
	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
	"github.com/miFu278/ECommercePlatform-sub000/internal/services/order/create/mocks"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

func testPricing() Pricing {
	return Pricing{
		Currency:              "USD",
		TaxRate:               decimal.RequireFromString("0.1"),
		ShippingFee:           decimal.RequireFromString("10.00"),
		FreeShippingThreshold: decimal.RequireFromString("100.00"),
	}
}

func testCartItems() []cart.Item {
	return []cart.Item{
		{ProductUUID: uuid.New(), Name: "keyboard", SKU: "KB-01", UnitPrice: decimal.RequireFromString("50.00"), Quantity: 1},
		{ProductUUID: uuid.New(), Name: "mouse", SKU: "MS-01", UnitPrice: decimal.RequireFromString("30.00"), Quantity: 2},
	}
}

func TestCheckout(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	log := logger.NewSlogLogger(logger.EnvLocal)
	ctx := context.Background()
	userUUID := uuid.New()

	cartStore := mocks.NewMockcartStore(ctl)
	orderCreator := mocks.NewMockorderCreator(ctl)
	publisher := eventMocks.NewMockPublisher(ctl)

	cartStore.EXPECT().GetCart(ctx, userUUID).Return(testCartItems(), nil)
	orderCreator.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	cartStore.EXPECT().ClearCart(ctx, userUUID).Return(nil)

	var published events.Event
	publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event events.Event) error {
			published = event
			return nil
		})

	svc := New(log, testPricing(), cartStore, orderCreator, publisher)

	order, err := svc.Checkout(ctx, userUUID)
	require.NoError(t, err)

	// subtotal 110.00 clears the free shipping threshold, tax is 10%
	require.True(t, order.Subtotal.Equal(decimal.RequireFromString("110.00")))
	require.True(t, order.Shipping.IsZero())
	require.True(t, order.Tax.Equal(decimal.RequireFromString("11.00")))
	require.True(t, order.Total.Equal(decimal.RequireFromString("121.00")))
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)

	require.NotNil(t, published)
	created, ok := published.(*events.OrderCreatedEvent)
	require.True(t, ok)
	require.Equal(t, events.TypeOrderCreated, created.EventType())
	require.Equal(t, order.OrderUUID, created.OrderUUID)
	require.True(t, created.TotalAmount.Equal(order.Total))
	require.Len(t, created.Items, 2)
}

func TestCheckoutChargesShippingBelowThreshold(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ctx := context.Background()
	userUUID := uuid.New()

	cartStore := mocks.NewMockcartStore(ctl)
	orderCreator := mocks.NewMockorderCreator(ctl)
	publisher := eventMocks.NewMockPublisher(ctl)

	cartStore.EXPECT().GetCart(ctx, userUUID).Return([]cart.Item{
		{ProductUUID: uuid.New(), Name: "mouse", SKU: "MS-01", UnitPrice: decimal.RequireFromString("30.00"), Quantity: 1},
	}, nil)
	orderCreator.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	cartStore.EXPECT().ClearCart(ctx, userUUID).Return(nil)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	svc := New(logger.NewSlogLogger(logger.EnvLocal), testPricing(), cartStore, orderCreator, publisher)

	order, err := svc.Checkout(ctx, userUUID)
	require.NoError(t, err)

	require.True(t, order.Shipping.Equal(decimal.RequireFromString("10.00")))
	require.True(t, order.Tax.Equal(decimal.RequireFromString("3.00")))
	require.True(t, order.Total.Equal(decimal.RequireFromString("43.00")))
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ctx := context.Background()
	userUUID := uuid.New()

	cartStore := mocks.NewMockcartStore(ctl)
	orderCreator := mocks.NewMockorderCreator(ctl)
	publisher := eventMocks.NewMockPublisher(ctl)

	cartStore.EXPECT().GetCart(ctx, userUUID).Return(nil, nil)

	svc := New(logger.NewSlogLogger(logger.EnvLocal), testPricing(), cartStore, orderCreator, publisher)

	_, err := svc.Checkout(ctx, userUUID)
	require.ErrorIs(t, err, internalErrors.ErrEmptyCart)
}

func TestCheckoutPersistFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ctx := context.Background()
	userUUID := uuid.New()

	cartStore := mocks.NewMockcartStore(ctl)
	orderCreator := mocks.NewMockorderCreator(ctl)
	publisher := eventMocks.NewMockPublisher(ctl)

	cartStore.EXPECT().GetCart(ctx, userUUID).Return(testCartItems(), nil)
	orderCreator.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

	svc := New(logger.NewSlogLogger(logger.EnvLocal), testPricing(), cartStore, orderCreator, publisher)

	_, err := svc.Checkout(ctx, userUUID)
	require.Error(t, err)
}

func TestCheckoutSucceedsWhenPublishFails(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ctx := context.Background()
	userUUID := uuid.New()

	cartStore := mocks.NewMockcartStore(ctl)
	orderCreator := mocks.NewMockorderCreator(ctl)
	publisher := eventMocks.NewMockPublisher(ctl)

	cartStore.EXPECT().GetCart(ctx, userUUID).Return(testCartItems(), nil)
	orderCreator.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	cartStore.EXPECT().ClearCart(ctx, userUUID).Return(nil)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("broker down"))

	svc := New(logger.NewSlogLogger(logger.EnvLocal), testPricing(), cartStore, orderCreator, publisher)

	order, err := svc.Checkout(ctx, userUUID)
	require.NoError(t, err)
	require.NotNil(t, order)
}

func TestCheckoutSucceedsWhenCartClearFails(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ctx := context.Background()
	userUUID := uuid.New()

	cartStore := mocks.NewMockcartStore(ctl)
	orderCreator := mocks.NewMockorderCreator(ctl)
	publisher := eventMocks.NewMockPublisher(ctl)

	cartStore.EXPECT().GetCart(ctx, userUUID).Return(testCartItems(), nil)
	orderCreator.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	cartStore.EXPECT().ClearCart(ctx, userUUID).Return(errors.New("redis down"))
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	svc := New(logger.NewSlogLogger(logger.EnvLocal), testPricing(), cartStore, orderCreator, publisher)

	order, err := svc.Checkout(ctx, userUUID)
	require.NoError(t, err)
	require.NotNil(t, order)
}
