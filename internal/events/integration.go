package events

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names double as routing keys on the durable transport.
const (
	TypeOrderCreated     = "OrderCreatedEvent"
	TypePaymentCompleted = "PaymentCompletedEvent"
)

type OrderCreatedItem struct {
	ProductUUID uuid.UUID       `json:"product_uuid"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// OrderCreatedEvent is published by the order service after a new order and
// its line items are persisted and the cart is cleared.
type OrderCreatedEvent struct {
	BaseEvent

	OrderUUID   uuid.UUID          `json:"order_uuid"`
	OrderNumber string             `json:"order_number"`
	UserUUID    uuid.UUID          `json:"user_uuid"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Currency    string             `json:"currency"`
	Items       []OrderCreatedItem `json:"items"`
}

func NewOrderCreatedEvent(
	orderUUID uuid.UUID,
	orderNumber string,
	userUUID uuid.UUID,
	totalAmount decimal.Decimal,
	currency string,
	items []OrderCreatedItem,
) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseEvent:   NewBaseEvent(TypeOrderCreated),
		OrderUUID:   orderUUID,
		OrderNumber: orderNumber,
		UserUUID:    userUUID,
		TotalAmount: totalAmount,
		Currency:    currency,
		Items:       items,
	}
}

// PaymentCompletedEvent is published by the payment service once the
// gateway confirms a payment.
type PaymentCompletedEvent struct {
	BaseEvent

	PaymentUUID uuid.UUID       `json:"payment_uuid"`
	OrderUUID   uuid.UUID       `json:"order_uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

func NewPaymentCompletedEvent(
	paymentUUID uuid.UUID,
	orderUUID uuid.UUID,
	amount decimal.Decimal,
	currency string,
) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseEvent:   NewBaseEvent(TypePaymentCompleted),
		PaymentUUID: paymentUUID,
		OrderUUID:   orderUUID,
		Amount:      amount,
		Currency:    currency,
	}
}

func DecodeOrderCreated(data json.RawMessage) (Event, error) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode %s: %w", TypeOrderCreated, err)
	}
	return &event, nil
}

func DecodePaymentCompleted(data json.RawMessage) (Event, error) {
	var event PaymentCompletedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode %s: %w", TypePaymentCompleted, err)
	}
	return &event, nil
}
