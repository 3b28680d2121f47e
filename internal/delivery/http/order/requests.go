package order

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
)

var (
	errInvalidOrderUUID = errors.New("invalid order_uuid")
	errInvalidUserUUID  = errors.New("invalid user_uuid")
	errInvalidStatus    = errors.New("invalid status")
)

var validate = validator.New()

type CreateOrderRequest struct {
	UserUUID string `json:"user_uuid" validate:"required,uuid"`
}

func (req *CreateOrderRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidUserUUID
	}
	return nil
}

type CancelOrderRequest struct {
	OrderUUID string `json:"order_uuid" validate:"required,uuid"`
	Note      string `json:"note" validate:"max=500"`
}

func (req *CancelOrderRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidOrderUUID
	}
	return nil
}

var orderStatuses = map[string]models.OrderStatus{
	"processing": models.OrderStatusProcessing,
	"shipped":    models.OrderStatusShipped,
	"delivered":  models.OrderStatusDelivered,
	"refunded":   models.OrderStatusRefunded,
	"cancelled":  models.OrderStatusCancelled,
}

type UpdateStatusRequest struct {
	OrderUUID string `json:"order_uuid" validate:"required,uuid"`
	Status    string `json:"status" validate:"required"`
	Note      string `json:"note" validate:"max=500"`
}

func (req *UpdateStatusRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return errInvalidOrderUUID
	}

	if _, err := uuid.Parse(req.OrderUUID); err != nil {
		return errInvalidOrderUUID
	}

	if _, ok := orderStatuses[req.Status]; !ok {
		return errInvalidStatus
	}

	return nil
}

func (req *UpdateStatusRequest) toStatus() models.OrderStatus {
	return orderStatuses[req.Status]
}
