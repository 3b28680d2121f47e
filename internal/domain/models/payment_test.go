package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
)

func completedPayment(t *testing.T, amount string) *Payment {
	t.Helper()

	payment := NewPayment(uuid.New(), decimal.RequireFromString(amount), "USD", "card", "mockpay")
	require.NoError(t, payment.Transition(PaymentStatusProcessing, "payment link created"))
	require.NoError(t, payment.Complete("txn_123"))

	return payment
}

func TestNewPayment(t *testing.T) {
	payment := NewPayment(uuid.New(), decimal.RequireFromString("99.90"), "USD", "card", "mockpay")

	require.Equal(t, PaymentStatusPending, payment.Status)
	require.True(t, payment.RefundedAmount.IsZero())
	require.Len(t, payment.History, 1)
}

func TestPaymentTransitions(t *testing.T) {
	tCases := []struct {
		name    string
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{name: "pending_to_processing", from: PaymentStatusPending, to: PaymentStatusProcessing, allowed: true},
		{name: "pending_to_failed", from: PaymentStatusPending, to: PaymentStatusFailed, allowed: true},
		{name: "pending_to_completed", from: PaymentStatusPending, to: PaymentStatusCompleted, allowed: false},
		{name: "processing_to_completed", from: PaymentStatusProcessing, to: PaymentStatusCompleted, allowed: true},
		{name: "processing_to_failed", from: PaymentStatusProcessing, to: PaymentStatusFailed, allowed: true},
		{name: "completed_to_refunded", from: PaymentStatusCompleted, to: PaymentStatusRefunded, allowed: true},
		{name: "completed_to_partial_refund", from: PaymentStatusCompleted, to: PaymentStatusPartialRefund, allowed: true},
		{name: "completed_to_failed", from: PaymentStatusCompleted, to: PaymentStatusFailed, allowed: false},
		{name: "partial_refund_to_refunded", from: PaymentStatusPartialRefund, to: PaymentStatusRefunded, allowed: true},
		{name: "partial_refund_to_partial_refund", from: PaymentStatusPartialRefund, to: PaymentStatusPartialRefund, allowed: true},
		{name: "failed_is_terminal", from: PaymentStatusFailed, to: PaymentStatusProcessing, allowed: false},
		{name: "cancelled_is_terminal", from: PaymentStatusCancelled, to: PaymentStatusProcessing, allowed: false},
		{name: "refunded_is_terminal", from: PaymentStatusRefunded, to: PaymentStatusPartialRefund, allowed: false},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			payment := NewPayment(uuid.New(), decimal.RequireFromString("100.00"), "USD", "card", "mockpay")
			payment.Status = tCase.from

			err := payment.Transition(tCase.to, "test")
			if tCase.allowed {
				require.NoError(t, err)
				require.Equal(t, tCase.to, payment.Status)
				return
			}

			var transitionErr *internalErrors.StateTransitionError
			require.ErrorAs(t, err, &transitionErr)
			require.Equal(t, tCase.from, payment.Status)
		})
	}
}

func TestPaymentComplete(t *testing.T) {
	payment := completedPayment(t, "100.00")

	require.Equal(t, PaymentStatusCompleted, payment.Status)
	require.Equal(t, "txn_123", payment.ProviderTransactionID)
	require.Len(t, payment.History, 3)
}

func TestPaymentCancel(t *testing.T) {
	payment := NewPayment(uuid.New(), decimal.RequireFromString("100.00"), "USD", "card", "mockpay")

	require.NoError(t, payment.Cancel("abandoned checkout"))
	require.Equal(t, PaymentStatusCancelled, payment.Status)
}

func TestPaymentCancelAfterCompletion(t *testing.T) {
	payment := completedPayment(t, "100.00")

	err := payment.Cancel("too late")
	require.ErrorIs(t, err, internalErrors.ErrCancelCompletedPayment)
	require.Equal(t, PaymentStatusCompleted, payment.Status)
}

func TestPaymentRefundFull(t *testing.T) {
	payment := completedPayment(t, "100.00")

	require.NoError(t, payment.Refund(decimal.RequireFromString("100.00"), "defective"))
	require.Equal(t, PaymentStatusRefunded, payment.Status)
	require.True(t, payment.RefundedAmount.Equal(payment.Amount))
	require.Equal(t, "defective", payment.RefundReason)
}

func TestPaymentRefundPartialThenRemainder(t *testing.T) {
	payment := completedPayment(t, "100.00")

	require.NoError(t, payment.Refund(decimal.RequireFromString("40.00"), "one item returned"))
	require.Equal(t, PaymentStatusPartialRefund, payment.Status)
	require.True(t, payment.RefundedAmount.Equal(decimal.RequireFromString("40.00")))

	require.NoError(t, payment.Refund(decimal.RequireFromString("60.00"), "rest returned"))
	require.Equal(t, PaymentStatusRefunded, payment.Status)
	require.True(t, payment.RefundedAmount.Equal(decimal.RequireFromString("100.00")))
}

func TestPaymentRefundErrors(t *testing.T) {
	t.Run("exceeds_amount", func(t *testing.T) {
		payment := completedPayment(t, "100.00")

		err := payment.Refund(decimal.RequireFromString("100.01"), "")
		require.ErrorIs(t, err, internalErrors.ErrRefundExceedsAmount)
	})

	t.Run("exceeds_remaining", func(t *testing.T) {
		payment := completedPayment(t, "100.00")
		require.NoError(t, payment.Refund(decimal.RequireFromString("70.00"), ""))

		err := payment.Refund(decimal.RequireFromString("30.01"), "")
		require.ErrorIs(t, err, internalErrors.ErrRefundExceedsAmount)
		require.True(t, payment.RefundedAmount.Equal(decimal.RequireFromString("70.00")))
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		payment := completedPayment(t, "100.00")

		err := payment.Refund(decimal.Zero, "")
		require.ErrorIs(t, err, internalErrors.ErrRefundExceedsAmount)
	})

	t.Run("not_completed", func(t *testing.T) {
		payment := NewPayment(uuid.New(), decimal.RequireFromString("100.00"), "USD", "card", "mockpay")

		err := payment.Refund(decimal.RequireFromString("10.00"), "")
		require.ErrorIs(t, err, internalErrors.ErrRefundNotAllowed)
	})

	t.Run("already_fully_refunded", func(t *testing.T) {
		payment := completedPayment(t, "100.00")
		require.NoError(t, payment.Refund(decimal.RequireFromString("100.00"), ""))

		err := payment.Refund(decimal.RequireFromString("1.00"), "")
		require.ErrorIs(t, err, internalErrors.ErrRefundNotAllowed)
	})
}
