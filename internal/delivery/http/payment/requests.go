package payment

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	errInvalidPaymentUUID   = errors.New("invalid payment_uuid")
	errInvalidOrderUUID     = errors.New("invalid order_uuid")
	errInvalidAmount        = errors.New("invalid amount")
	errInvalidTransactionID = errors.New("invalid transaction_id")
)

var validate = validator.New()

type CreatePaymentRequest struct {
	OrderUUID string `json:"order_uuid" validate:"required,uuid"`
	Amount    string `json:"amount" validate:"required"`
	Currency  string `json:"currency" validate:"required,len=3"`
	Method    string `json:"method" validate:"required,oneof=card bank_transfer wallet"`

	parsedAmount decimal.Decimal
}

func (req *CreatePaymentRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidOrderUUID
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return errInvalidAmount
	}
	req.parsedAmount = amount

	return nil
}

func (req *CreatePaymentRequest) amount() decimal.Decimal {
	return req.parsedAmount
}

type WebhookRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=succeeded failed"`
}

func (req *WebhookRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidTransactionID
	}
	return nil
}

func (req *WebhookRequest) succeeded() bool {
	return req.Status == "succeeded"
}

type CancelPaymentRequest struct {
	PaymentUUID string `json:"payment_uuid" validate:"required,uuid"`
}

func (req *CancelPaymentRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidPaymentUUID
	}
	return nil
}

type RefundPaymentRequest struct {
	PaymentUUID string `json:"payment_uuid" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required"`
	Reason      string `json:"reason" validate:"max=500"`

	parsedAmount decimal.Decimal
}

func (req *RefundPaymentRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidPaymentUUID
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return errInvalidAmount
	}
	req.parsedAmount = amount

	return nil
}

func (req *RefundPaymentRequest) amount() decimal.Decimal {
	return req.parsedAmount
}
