package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
)

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusProcessing    PaymentStatus = "processing"
	PaymentStatusCompleted     PaymentStatus = "completed"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusCancelled     PaymentStatus = "cancelled"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

// paymentTransitions is the fixed adjacency table for the payment state
// machine. Failed, Cancelled and Refunded are terminal; PartialRefund may
// keep refunding until the full amount is returned.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:       {PaymentStatusProcessing, PaymentStatusCancelled, PaymentStatusFailed},
	PaymentStatusProcessing:    {PaymentStatusCompleted, PaymentStatusCancelled, PaymentStatusFailed},
	PaymentStatusCompleted:     {PaymentStatusRefunded, PaymentStatusPartialRefund},
	PaymentStatusPartialRefund: {PaymentStatusRefunded, PaymentStatusPartialRefund},
}

type Payment struct {
	PaymentUUID uuid.UUID `json:"payment_uuid" db:"uuid"`
	OrderUUID   uuid.UUID `json:"order_uuid" db:"order_uuid"`

	Status   PaymentStatus `json:"status" db:"status"`
	Method   string        `json:"method" db:"method"`
	Provider string        `json:"provider" db:"provider"`

	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Currency string          `json:"currency" db:"currency"`

	ProviderTransactionID string `json:"provider_transaction_id,omitempty" db:"provider_transaction_id"`

	RefundedAmount decimal.Decimal `json:"refunded_amount" db:"refunded_amount"`
	RefundReason   string          `json:"refund_reason,omitempty" db:"refund_reason"`

	History []StatusHistoryEntry `json:"history"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewPayment(orderUUID uuid.UUID, amount decimal.Decimal, currency, method, provider string) *Payment {
	now := time.Now().UTC()

	return &Payment{
		PaymentUUID:    uuid.New(),
		OrderUUID:      orderUUID,
		Status:         PaymentStatusPending,
		Method:         method,
		Provider:       provider,
		Amount:         amount,
		Currency:       currency,
		RefundedAmount: decimal.Zero,
		History: []StatusHistoryEntry{
			{Status: string(PaymentStatusPending), Note: "payment created", CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Payment) CanTransition(to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[p.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (p *Payment) Transition(to PaymentStatus, note string) error {
	if !p.CanTransition(to) {
		return internalErrors.NewStateTransitionError("payment", string(p.Status), string(to))
	}

	now := time.Now().UTC()

	p.Status = to
	p.History = append(p.History, StatusHistoryEntry{
		Status:    string(to),
		Note:      note,
		CreatedAt: now,
	})
	p.UpdatedAt = now

	return nil
}

// Complete marks the payment as confirmed by the provider.
func (p *Payment) Complete(providerTransactionID string) error {
	if err := p.Transition(PaymentStatusCompleted, "confirmed by provider"); err != nil {
		return err
	}
	if providerTransactionID != "" {
		p.ProviderTransactionID = providerTransactionID
	}
	return nil
}

// Fail records a gateway decline or timeout. The status is terminal for
// this payment attempt; a new attempt means a new payment record.
func (p *Payment) Fail(note string) error {
	return p.Transition(PaymentStatusFailed, note)
}

// Cancel rejects cancellation once the payment completed; refunds must be
// used instead.
func (p *Payment) Cancel(note string) error {
	switch p.Status {
	case PaymentStatusCompleted, PaymentStatusRefunded, PaymentStatusPartialRefund:
		return internalErrors.ErrCancelCompletedPayment
	}
	return p.Transition(PaymentStatusCancelled, note)
}

// Refund returns part or all of the payment amount. Full refunds move the
// payment to Refunded, partial refunds to PartialRefund. The cumulative
// refunded amount never exceeds the original amount.
func (p *Payment) Refund(amount decimal.Decimal, reason string) error {
	if p.Status != PaymentStatusCompleted && p.Status != PaymentStatusPartialRefund {
		return internalErrors.ErrRefundNotAllowed
	}

	remaining := p.Amount.Sub(p.RefundedAmount)
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(remaining) {
		return internalErrors.ErrRefundExceedsAmount
	}

	target := PaymentStatusPartialRefund
	if p.RefundedAmount.Add(amount).Equal(p.Amount) {
		target = PaymentStatusRefunded
	}

	note := fmt.Sprintf("refunded %s %s", amount.StringFixed(2), p.Currency)
	if reason != "" {
		note = note + ": " + reason
	}

	if err := p.Transition(target, note); err != nil {
		return err
	}

	p.RefundedAmount = p.RefundedAmount.Add(amount)
	p.RefundReason = reason

	return nil
}

func (p *Payment) LastHistoryEntry() StatusHistoryEntry {
	return p.History[len(p.History)-1]
}
