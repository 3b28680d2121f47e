package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	internalErrors "github.com/miFu278/ECommercePlatform-sub000/internal/lib/errors"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type OrderPaymentStatus string

const (
	OrderPaymentStatusUnpaid   OrderPaymentStatus = "unpaid"
	OrderPaymentStatusPaid     OrderPaymentStatus = "paid"
	OrderPaymentStatusRefunded OrderPaymentStatus = "refunded"
)

// orderTransitions is the fixed adjacency table for the order state machine.
// Cancelled and Refunded are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusRefunded},
}

// OrderItem is a snapshot of a product at order time. Immutable after the
// order is created.
type OrderItem struct {
	ProductUUID uuid.UUID       `json:"product_uuid" db:"product_uuid"`
	Name        string          `json:"name" db:"name"`
	SKU         string          `json:"sku" db:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StatusHistoryEntry is one row of an aggregate's append-only history log.
type StatusHistoryEntry struct {
	Status    string    `json:"status" db:"status"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Order struct {
	OrderUUID uuid.UUID `json:"order_uuid" db:"uuid"`
	Number    string    `json:"number" db:"number"`
	UserUUID  uuid.UUID `json:"user_uuid" db:"user_uuid"`

	Subtotal decimal.Decimal `json:"subtotal" db:"subtotal"`
	Shipping decimal.Decimal `json:"shipping" db:"shipping"`
	Tax      decimal.Decimal `json:"tax" db:"tax"`
	Discount decimal.Decimal `json:"discount" db:"discount"`
	Total    decimal.Decimal `json:"total" db:"total"`
	Currency string          `json:"currency" db:"currency"`

	Status        OrderStatus        `json:"status" db:"status"`
	PaymentStatus OrderPaymentStatus `json:"payment_status" db:"payment_status"`

	Items   []OrderItem          `json:"items"`
	History []StatusHistoryEntry `json:"history"`

	ShippedAt   *time.Time `json:"shipped_at,omitempty" db:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewOrder builds a pending order with item snapshots and the subtotal
// already summed. Shipping, tax and discount are applied by the checkout
// service before the order is persisted.
func NewOrder(userUUID uuid.UUID, currency string, items []OrderItem) *Order {
	now := time.Now().UTC()

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	orderUUID := uuid.New()

	return &Order{
		OrderUUID:     orderUUID,
		Number:        orderNumber(orderUUID),
		UserUUID:      userUUID,
		Subtotal:      subtotal,
		Shipping:      decimal.Zero,
		Tax:           decimal.Zero,
		Discount:      decimal.Zero,
		Total:         subtotal,
		Currency:      currency,
		Status:        OrderStatusPending,
		PaymentStatus: OrderPaymentStatusUnpaid,
		Items:         items,
		History: []StatusHistoryEntry{
			{Status: string(OrderStatusPending), Note: "order created", CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func orderNumber(orderUUID uuid.UUID) string {
	return "ORD-" + strings.ToUpper(orderUUID.String()[:8])
}

func (o *Order) CanTransition(to OrderStatus) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition advances the order status, stamps the matching side timestamp
// and appends exactly one history entry. A rejected transition leaves the
// order untouched.
func (o *Order) Transition(to OrderStatus, note string) error {
	if !o.CanTransition(to) {
		return internalErrors.NewStateTransitionError("order", string(o.Status), string(to))
	}

	now := time.Now().UTC()

	o.Status = to
	switch to {
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	case OrderStatusRefunded:
		o.PaymentStatus = OrderPaymentStatusRefunded
	}

	o.History = append(o.History, StatusHistoryEntry{
		Status:    string(to),
		Note:      note,
		CreatedAt: now,
	})
	o.UpdatedAt = now

	return nil
}

// ApplyPaymentCompleted advances a pending order to processing in reaction
// to a completed payment. Orders already past pending are left unchanged,
// which makes the operation safe under duplicate event delivery. The
// returned bool reports whether the order was mutated.
func (o *Order) ApplyPaymentCompleted(paymentUUID uuid.UUID) (bool, error) {
	if o.Status != OrderStatusPending {
		return false, nil
	}

	note := fmt.Sprintf("payment %s completed", paymentUUID)
	if err := o.Transition(OrderStatusProcessing, note); err != nil {
		return false, err
	}
	o.PaymentStatus = OrderPaymentStatusPaid

	return true, nil
}

// LastHistoryEntry returns the most recent history row. The history list is
// never empty once the order is constructed.
func (o *Order) LastHistoryEntry() StatusHistoryEntry {
	return o.History[len(o.History)-1]
}
