package webhook

import (
	"context"
	"fmt"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type paymentRepository interface {
	PaymentByProviderTransaction(ctx context.Context, transactionID string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

type PaymentWebhookService struct {
	log logger.Logger

	payments  paymentRepository
	publisher events.Publisher
}

func New(log logger.Logger, payments paymentRepository, publisher events.Publisher) *PaymentWebhookService {
	return &PaymentWebhookService{
		log:       log,
		payments:  payments,
		publisher: publisher,
	}
}

// Confirm applies a gateway callback. A duplicate webhook for a payment
// that already completed with this transaction id is acknowledged without
// re-publishing the event, so downstream consumers see it once per
// confirmation, not once per webhook retry.
func (ps *PaymentWebhookService) Confirm(ctx context.Context, transactionID string, succeeded bool) error {
	const op = "services.payment.webhook.Confirm"

	payment, err := ps.payments.PaymentByProviderTransaction(ctx, transactionID)
	if err != nil {
		ps.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if payment.Status == models.PaymentStatusCompleted {
		ps.log.InfoContext(ctx, op,
			logger.String("payment_uuid", payment.PaymentUUID.String()),
			logger.String("reason", "duplicate webhook, payment already completed"),
		)
		return nil
	}

	if !succeeded {
		if err = payment.Fail("declined by provider"); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err = ps.payments.Update(ctx, payment); err != nil {
			ps.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	if err = payment.Complete(transactionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = ps.payments.Update(ctx, payment); err != nil {
		ps.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	event := events.NewPaymentCompletedEvent(payment.PaymentUUID, payment.OrderUUID, payment.Amount, payment.Currency)
	if err = ps.publisher.Publish(ctx, event); err != nil {
		// Surfaced so the provider retries the webhook. Publishing sits
		// outside the payment transaction, so a broker outage here can
		// still lose the event once the retry hits the duplicate guard.
		ps.log.Error(op, logger.String("stage", "publish"), logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
