package cancel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/gateway"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type paymentRepository interface {
	Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

type gatewayCanceller interface {
	Cancel(ctx context.Context, transactionID string) error
}

type PaymentCancellationService struct {
	log logger.Logger

	payments paymentRepository
	gateway  gatewayCanceller
}

func New(log logger.Logger, payments paymentRepository, gatewayClient gateway.Client) *PaymentCancellationService {
	return &PaymentCancellationService{
		log:      log,
		payments: payments,
		gateway:  gatewayClient,
	}
}

// Cancel voids a payment that has not completed. Completed payments must
// be refunded instead; the aggregate rejects them.
func (ps *PaymentCancellationService) Cancel(ctx context.Context, paymentUUID uuid.UUID) error {
	const op = "services.payment.cancel.Cancel"

	payment, err := ps.payments.Payment(ctx, paymentUUID)
	if err != nil {
		ps.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = payment.Cancel("cancelled by user"); err != nil {
		return err
	}

	if payment.ProviderTransactionID != "" {
		if err = ps.gateway.Cancel(ctx, payment.ProviderTransactionID); err != nil {
			ps.log.Error(op, logger.String("stage", "gateway"), logger.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = ps.payments.Update(ctx, payment); err != nil {
		ps.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
