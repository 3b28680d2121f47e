package errors

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrEmptyCart = errors.New("cart is empty")

	ErrRefundNotAllowed       = errors.New("payment must be completed before refund")
	ErrRefundExceedsAmount    = errors.New("refund amount exceeds remaining payment amount")
	ErrCancelCompletedPayment = errors.New("completed payment cannot be cancelled, refund instead")

	ErrRegistryFrozen   = errors.New("event handler registry is frozen")
	ErrUnknownEventType = errors.New("unknown event type")
)

// StateTransitionError reports a rejected state machine transition.
// The aggregate is left untouched when this error is returned.
type StateTransitionError struct {
	Aggregate string
	From      string
	To        string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("%s transition from %q to %q is not allowed", e.Aggregate, e.From, e.To)
}

func NewStateTransitionError(aggregate, from, to string) *StateTransitionError {
	return &StateTransitionError{Aggregate: aggregate, From: from, To: to}
}
