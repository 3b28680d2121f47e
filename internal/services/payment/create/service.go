package create

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/gateway"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
}

type PaymentCreationService struct {
	log logger.Logger
	cfg config.GatewayConfig

	payments paymentRepository
	gateway  gateway.Client
}

func New(log logger.Logger, cfg config.GatewayConfig, payments paymentRepository, gatewayClient gateway.Client) *PaymentCreationService {
	return &PaymentCreationService{
		log:      log,
		cfg:      cfg,
		payments: payments,
		gateway:  gatewayClient,
	}
}

// Create persists a pending payment, asks the gateway for a checkout link
// and moves the payment to processing. A gateway failure is recorded as a
// terminal Failed status; a new attempt means a new payment record, never
// a retry of this one.
func (ps *PaymentCreationService) Create(
	ctx context.Context,
	orderUUID uuid.UUID,
	amount decimal.Decimal,
	currency, method string,
) (*models.Payment, string, error) {
	const op = "services.payment.create.Create"

	payment := models.NewPayment(orderUUID, amount, currency, method, ps.cfg.Provider)

	if err := ps.payments.Create(ctx, payment); err != nil {
		ps.log.Error(op, logger.Err(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	description := fmt.Sprintf("payment for order %s", orderUUID)

	link, err := ps.gateway.CreatePaymentLink(ctx, amount, currency, description, ps.cfg.ReturnURL, ps.cfg.CancelURL)
	if err != nil {
		ps.log.Error(op, logger.String("stage", "gateway"), logger.Err(err))

		if failErr := payment.Fail("gateway error: " + err.Error()); failErr == nil {
			if updateErr := ps.payments.Update(ctx, payment); updateErr != nil {
				ps.log.Error(op, logger.String("stage", "record failure"), logger.Err(updateErr))
			}
		}

		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	payment.ProviderTransactionID = link.TransactionID
	if err = payment.Transition(models.PaymentStatusProcessing, "payment link created"); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err = ps.payments.Update(ctx, payment); err != nil {
		ps.log.Error(op, logger.Err(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return payment, link.CheckoutURL, nil
}
