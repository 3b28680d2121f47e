package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
)

func TestCreateOrderRequestValidate(t *testing.T) {
	require.NoError(t, (&CreateOrderRequest{UserUUID: uuid.New().String()}).validate())
}

func TestCreateOrderRequestValidateError(t *testing.T) {
	tCases := []struct {
		name  string
		input *CreateOrderRequest
	}{
		{name: "empty", input: &CreateOrderRequest{}},
		{name: "not_a_uuid", input: &CreateOrderRequest{UserUUID: "abc"}},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			err := tCase.input.validate()
			require.Error(t, err)
			require.EqualError(t, errInvalidUserUUID, err.Error())
		})
	}
}

func TestCancelOrderRequestValidate(t *testing.T) {
	require.NoError(t, (&CancelOrderRequest{OrderUUID: uuid.New().String(), Note: "no longer needed"}).validate())

	err := (&CancelOrderRequest{OrderUUID: "abc"}).validate()
	require.Error(t, err)
	require.EqualError(t, errInvalidOrderUUID, err.Error())
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	tCases := []struct {
		name   string
		input  *UpdateStatusRequest
		expErr error
	}{
		{
			name:  "shipped",
			input: &UpdateStatusRequest{OrderUUID: uuid.New().String(), Status: "shipped"},
		},
		{
			name:  "delivered_with_note",
			input: &UpdateStatusRequest{OrderUUID: uuid.New().String(), Status: "delivered", Note: "left at door"},
		},
		{
			name:   "bad_order_uuid",
			input:  &UpdateStatusRequest{OrderUUID: "abc", Status: "shipped"},
			expErr: errInvalidOrderUUID,
		},
		{
			name:   "unknown_status",
			input:  &UpdateStatusRequest{OrderUUID: uuid.New().String(), Status: "teleported"},
			expErr: errInvalidStatus,
		},
		{
			name:   "pending_is_not_a_target",
			input:  &UpdateStatusRequest{OrderUUID: uuid.New().String(), Status: "pending"},
			expErr: errInvalidStatus,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			err := tCase.input.validate()
			if tCase.expErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.EqualError(t, tCase.expErr, err.Error())
		})
	}
}

func TestUpdateStatusRequestToStatus(t *testing.T) {
	req := &UpdateStatusRequest{OrderUUID: uuid.New().String(), Status: "shipped"}
	require.NoError(t, req.validate())
	require.Equal(t, models.OrderStatusShipped, req.toStatus())
}
