package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type fakeCheckout struct {
	order *models.Order
	err   error
}

func (f *fakeCheckout) Checkout(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return f.order, f.err
}

type fakeGetter struct {
	order  *models.Order
	orders []models.Order
	err    error
}

func (f *fakeGetter) OrderByUUID(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeGetter) OrdersByUser(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return f.orders, f.err
}

type fakeCanceller struct {
	err error
}

func (f *fakeCanceller) Cancel(_ context.Context, _ uuid.UUID, _ string) error {
	return f.err
}

type fakeStatusUpdater struct {
	order *models.Order
	err   error
}

func (f *fakeStatusUpdater) Update(_ context.Context, _ uuid.UUID, _ models.OrderStatus, _ string) (*models.Order, error) {
	return f.order, f.err
}

func sampleOrder() *models.Order {
	order := models.NewOrder(uuid.New(), "USD", []models.OrderItem{
		{ProductUUID: uuid.New(), Name: "keyboard", SKU: "KB-01", UnitPrice: decimal.RequireFromString("50.00"), Quantity: 1},
	})
	order.Total = decimal.RequireFromString("65.00")
	return order
}

func testRouter(checkout *fakeCheckout, getter *fakeGetter, canceller *fakeCanceller, updater *fakeStatusUpdater) http.Handler {
	h := NewHandler(logger.NewSlogLogger(logger.EnvLocal), checkout, getter, canceller, updater)
	return h.InitRoutes()
}

func TestCreateOrderEndpoint(t *testing.T) {
	order := sampleOrder()
	router := testRouter(&fakeCheckout{order: order}, &fakeGetter{}, &fakeCanceller{}, &fakeStatusUpdater{})

	body := fmt.Sprintf(`{"user_uuid": %q}`, order.UserUUID)
	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, order.OrderUUID.String(), response["order_uuid"])
	require.Equal(t, order.Number, response["number"])
	require.Equal(t, string(models.OrderStatusPending), response["status"])
}

func TestCreateOrderEndpointEmptyCart(t *testing.T) {
	router := testRouter(&fakeCheckout{err: internalErrors.ErrEmptyCart}, &fakeGetter{}, &fakeCanceller{}, &fakeStatusUpdater{})

	body := fmt.Sprintf(`{"user_uuid": %q}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEndpointBadRequest(t *testing.T) {
	router := testRouter(&fakeCheckout{}, &fakeGetter{}, &fakeCanceller{}, &fakeStatusUpdater{})

	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewBufferString(`{"user_uuid": "abc"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	order := sampleOrder()
	router := testRouter(&fakeCheckout{}, &fakeGetter{order: order}, &fakeCanceller{}, &fakeStatusUpdater{})

	req := httptest.NewRequest(http.MethodGet, "/order/"+order.OrderUUID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, order.OrderUUID, response.OrderUUID)
	require.Len(t, response.Items, 1)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	router := testRouter(&fakeCheckout{}, &fakeGetter{err: internalErrors.ErrOrderNotFound}, &fakeCanceller{}, &fakeStatusUpdater{})

	req := httptest.NewRequest(http.MethodGet, "/order/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrderEndpointConflict(t *testing.T) {
	transitionErr := internalErrors.NewStateTransitionError("order", "delivered", "cancelled")
	router := testRouter(&fakeCheckout{}, &fakeGetter{}, &fakeCanceller{err: transitionErr}, &fakeStatusUpdater{})

	body := fmt.Sprintf(`{"order_uuid": %q, "note": "too late"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/order/cancel", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	order := sampleOrder()
	require.NoError(t, order.Transition(models.OrderStatusProcessing, ""))
	require.NoError(t, order.Transition(models.OrderStatusShipped, ""))

	router := testRouter(&fakeCheckout{}, &fakeGetter{}, &fakeCanceller{}, &fakeStatusUpdater{order: order})

	body := fmt.Sprintf(`{"order_uuid": %q, "status": "shipped"}`, order.OrderUUID)
	req := httptest.NewRequest(http.MethodPost, "/order/status", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, string(models.OrderStatusShipped), response["status"])
}

func TestOrdersByUserEndpoint(t *testing.T) {
	order := sampleOrder()
	router := testRouter(&fakeCheckout{}, &fakeGetter{orders: []models.Order{*order}}, &fakeCanceller{}, &fakeStatusUpdater{})

	req := httptest.NewRequest(http.MethodGet, "/orders?user_uuid="+order.UserUUID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Orders, 1)
}
