package webhook

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type fakePaymentRepo struct {
	payment    *models.Payment
	paymentErr error
	updateErr  error
	updates    int
}

func (f *fakePaymentRepo) PaymentByProviderTransaction(_ context.Context, _ string) (*models.Payment, error) {
	return f.payment, f.paymentErr
}

func (f *fakePaymentRepo) Update(_ context.Context, _ *models.Payment) error {
	f.updates++
	return f.updateErr
}

type fakePublisher struct {
	published []events.Event
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func processingPayment(t *testing.T) *models.Payment {
	t.Helper()

	payment := models.NewPayment(uuid.New(), decimal.RequireFromString("121.00"), "USD", "card", "mockpay")
	require.NoError(t, payment.Transition(models.PaymentStatusProcessing, "payment link created"))
	payment.ProviderTransactionID = "txn_123"

	return payment
}

func TestConfirmSuccess(t *testing.T) {
	payment := processingPayment(t)
	repo := &fakePaymentRepo{payment: payment}
	publisher := &fakePublisher{}

	svc := New(logger.NewSlogLogger(logger.EnvLocal), repo, publisher)

	err := svc.Confirm(context.Background(), "txn_123", true)
	require.NoError(t, err)

	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.Equal(t, 1, repo.updates)
	require.Len(t, publisher.published, 1)

	completed, ok := publisher.published[0].(*events.PaymentCompletedEvent)
	require.True(t, ok)
	require.Equal(t, payment.PaymentUUID, completed.PaymentUUID)
	require.Equal(t, payment.OrderUUID, completed.OrderUUID)
	require.True(t, completed.Amount.Equal(payment.Amount))
}

func TestConfirmDuplicateWebhook(t *testing.T) {
	payment := processingPayment(t)
	repo := &fakePaymentRepo{payment: payment}
	publisher := &fakePublisher{}

	svc := New(logger.NewSlogLogger(logger.EnvLocal), repo, publisher)
	ctx := context.Background()

	require.NoError(t, svc.Confirm(ctx, "txn_123", true))
	require.NoError(t, svc.Confirm(ctx, "txn_123", true))

	// the retry must not write or publish again
	require.Equal(t, 1, repo.updates)
	require.Len(t, publisher.published, 1)
	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestConfirmDeclined(t *testing.T) {
	payment := processingPayment(t)
	repo := &fakePaymentRepo{payment: payment}
	publisher := &fakePublisher{}

	svc := New(logger.NewSlogLogger(logger.EnvLocal), repo, publisher)

	err := svc.Confirm(context.Background(), "txn_123", false)
	require.NoError(t, err)

	require.Equal(t, models.PaymentStatusFailed, payment.Status)
	require.Equal(t, 1, repo.updates)
	require.Empty(t, publisher.published)
}

func TestConfirmUnknownTransaction(t *testing.T) {
	repo := &fakePaymentRepo{paymentErr: errors.New("payment not found")}
	svc := New(logger.NewSlogLogger(logger.EnvLocal), repo, &fakePublisher{})

	err := svc.Confirm(context.Background(), "txn_missing", true)
	require.Error(t, err)
}

func TestConfirmPublishFailureSurfaces(t *testing.T) {
	payment := processingPayment(t)
	repo := &fakePaymentRepo{payment: payment}
	publisher := &fakePublisher{err: errors.New("broker down")}

	svc := New(logger.NewSlogLogger(logger.EnvLocal), repo, publisher)

	err := svc.Confirm(context.Background(), "txn_123", true)
	require.Error(t, err)
	// the payment itself is already completed and persisted
	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.Equal(t, 1, repo.updates)
}
