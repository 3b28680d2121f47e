package order

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	httpresponse "github.com/miFu278/ECommercePlatform-sub000/internal/lib/http"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type orderCheckout interface {
	Checkout(ctx context.Context, userUUID uuid.UUID) (*models.Order, error)
}

type orderGetter interface {
	OrderByUUID(ctx context.Context, orderUUID uuid.UUID) (*models.Order, error)
	OrdersByUser(ctx context.Context, userUUID uuid.UUID) ([]models.Order, error)
}

type orderCanceller interface {
	Cancel(ctx context.Context, orderUUID uuid.UUID, note string) error
}

type orderStatusUpdater interface {
	Update(ctx context.Context, orderUUID uuid.UUID, to models.OrderStatus, note string) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	checkout      orderCheckout
	getter        orderGetter
	canceller     orderCanceller
	statusUpdater orderStatusUpdater
}

func NewHandler(
	log logger.Logger,
	checkout orderCheckout,
	getter orderGetter,
	canceller orderCanceller,
	statusUpdater orderStatusUpdater,
) *Handler {
	return &Handler{
		log:           log,
		checkout:      checkout,
		getter:        getter,
		canceller:     canceller,
		statusUpdater: statusUpdater,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/order", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/{uuid}", h.getOrder)
		r.Post("/cancel", h.cancelOrder)
		r.Post("/status", h.updateStatus)
	})

	mux.Get("/orders", h.ordersByUser)

	return mux
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var request CreateOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Error("failed to decode request", logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		h.log.Error("failed to validate request", logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), uuid.MustParse(request.UserUUID))
	if err != nil {
		h.log.Error("failed to create order", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{
		"order_uuid": order.OrderUUID.String(),
		"number":     order.Number,
		"total":      order.Total,
		"currency":   order.Currency,
		"status":     order.Status,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderUUID, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		http.Error(w, errInvalidOrderUUID.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.getter.OrderByUUID(r.Context(), orderUUID)
	if err != nil {
		h.log.Error("failed to get order", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) ordersByUser(w http.ResponseWriter, r *http.Request) {
	userUUID, err := uuid.Parse(r.URL.Query().Get("user_uuid"))
	if err != nil {
		http.Error(w, errInvalidUserUUID.Error(), http.StatusBadRequest)
		return
	}

	orders, err := h.getter.OrdersByUser(r.Context(), userUUID)
	if err != nil {
		h.log.Error("failed to list orders", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{"orders": orders})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	var request CancelOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.canceller.Cancel(r.Context(), uuid.MustParse(request.OrderUUID), request.Note); err != nil {
		h.log.Error("failed to cancel order", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{"status": models.OrderStatusCancelled})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var request UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.statusUpdater.Update(r.Context(), uuid.MustParse(request.OrderUUID), request.toStatus(), request.Note)
	if err != nil {
		h.log.Error("failed to update order status", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{
		"order_uuid": order.OrderUUID.String(),
		"status":     order.Status,
	})
}
