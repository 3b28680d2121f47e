package payment

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	httpresponse "github.com/miFu278/ECommercePlatform-sub000/internal/lib/http"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type paymentCreator interface {
	Create(ctx context.Context, orderUUID uuid.UUID, amount decimal.Decimal, currency, method string) (*models.Payment, string, error)
}

type webhookConfirmer interface {
	Confirm(ctx context.Context, transactionID string, succeeded bool) error
}

type paymentCanceller interface {
	Cancel(ctx context.Context, paymentUUID uuid.UUID) error
}

type paymentRefunder interface {
	Refund(ctx context.Context, paymentUUID uuid.UUID, amount decimal.Decimal, reason string) (*models.Payment, error)
}

type Handler struct {
	log logger.Logger

	creator   paymentCreator
	confirmer webhookConfirmer
	canceller paymentCanceller
	refunder  paymentRefunder
}

func NewHandler(
	log logger.Logger,
	creator paymentCreator,
	confirmer webhookConfirmer,
	canceller paymentCanceller,
	refunder paymentRefunder,
) *Handler {
	return &Handler{
		log:       log,
		creator:   creator,
		confirmer: confirmer,
		canceller: canceller,
		refunder:  refunder,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/payment", func(r chi.Router) {
		r.Post("/", h.createPayment)
		r.Post("/webhook", h.webhook)
		r.Post("/cancel", h.cancelPayment)
		r.Post("/refund", h.refundPayment)
	})

	return mux
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var request CreatePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		h.log.Error("failed to validate request", logger.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment, checkoutURL, err := h.creator.Create(
		r.Context(),
		uuid.MustParse(request.OrderUUID),
		request.amount(),
		request.Currency,
		request.Method,
	)
	if err != nil {
		h.log.Error("failed to create payment", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{
		"payment_uuid": payment.PaymentUUID.String(),
		"status":       payment.Status,
		"checkout_url": checkoutURL,
	})
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	var request WebhookRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.confirmer.Confirm(r.Context(), request.TransactionID, request.succeeded()); err != nil {
		h.log.Error("failed to process webhook", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{"received": true})
}

func (h *Handler) cancelPayment(w http.ResponseWriter, r *http.Request) {
	var request CancelPaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.canceller.Cancel(r.Context(), uuid.MustParse(request.PaymentUUID)); err != nil {
		h.log.Error("failed to cancel payment", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{"status": models.PaymentStatusCancelled})
}

func (h *Handler) refundPayment(w http.ResponseWriter, r *http.Request) {
	var request RefundPaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := request.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment, err := h.refunder.Refund(r.Context(), uuid.MustParse(request.PaymentUUID), request.amount(), request.Reason)
	if err != nil {
		h.log.Error("failed to refund payment", logger.Err(err))
		httpresponse.WriteError(w, err)
		return
	}

	_ = httpresponse.WriteJSON(w, http.StatusOK, httpresponse.H{
		"payment_uuid":    payment.PaymentUUID.String(),
		"status":          payment.Status,
		"refunded_amount": payment.RefundedAmount,
	})
}
