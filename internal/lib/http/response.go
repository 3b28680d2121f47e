package http

import (
	"encoding/json"
	"errors"
	"net/http"

	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
)

type H map[string]any

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteError maps domain errors onto HTTP statuses: rejected transitions
// are conflicts, missing aggregates are 404s, everything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	var transitionErr *internalErrors.StateTransitionError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &transitionErr),
		errors.Is(err, internalErrors.ErrRefundNotAllowed),
		errors.Is(err, internalErrors.ErrRefundExceedsAmount),
		errors.Is(err, internalErrors.ErrCancelCompletedPayment):
		status = http.StatusConflict
	case errors.Is(err, internalErrors.ErrOrderNotFound),
		errors.Is(err, internalErrors.ErrPaymentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, internalErrors.ErrEmptyCart):
		status = http.StatusBadRequest
	}

	_ = WriteJSON(w, status, H{"error": err.Error()})
}
