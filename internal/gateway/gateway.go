// Package gateway defines the payment provider contract consumed by the
// payment service and an HTTP client implementation.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentLink is the provider-side handle for a payment attempt.
type PaymentLink struct {
	TransactionID string
	CheckoutURL   string
}

type Client interface {
	CreatePaymentLink(ctx context.Context, amount decimal.Decimal, currency, description, returnURL, cancelURL string) (*PaymentLink, error)
	Cancel(ctx context.Context, transactionID string) error
	Status(ctx context.Context, transactionID string) (string, error)
}
