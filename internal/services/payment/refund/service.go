package refund

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type paymentRepository interface {
	Payment(ctx context.Context, paymentUUID uuid.UUID) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

type PaymentRefundService struct {
	log logger.Logger

	payments paymentRepository
}

func New(log logger.Logger, payments paymentRepository) *PaymentRefundService {
	return &PaymentRefundService{
		log:      log,
		payments: payments,
	}
}

// Refund returns part or all of a completed payment. The aggregate decides
// between Refunded and PartialRefund and rejects amounts beyond what is
// left to refund.
func (ps *PaymentRefundService) Refund(ctx context.Context, paymentUUID uuid.UUID, amount decimal.Decimal, reason string) (*models.Payment, error) {
	const op = "services.payment.refund.Refund"

	payment, err := ps.payments.Payment(ctx, paymentUUID)
	if err != nil {
		ps.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = payment.Refund(amount, reason); err != nil {
		return nil, err
	}

	if err = ps.payments.Update(ctx, payment); err != nil {
		ps.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payment, nil
}
