package app

import (
	"context"
	"errors"
	"fmt"

	httpapp "github.com/miFu278/ECommercePlatform-sub000/internal/app/http"
	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	paymenthttp "github.com/miFu278/ECommercePlatform-sub000/internal/delivery/http/payment"
	rabbitbus "github.com/miFu278/ECommercePlatform-sub000/internal/eventbus/rabbitmq"
	"github.com/miFu278/ECommercePlatform-sub000/internal/gateway"
	paymentRepository "github.com/miFu278/ECommercePlatform-sub000/internal/repository/payment"
	paymentCancellationService "github.com/miFu278/ECommercePlatform-sub000/internal/services/payment/cancel"
	paymentCreationService "github.com/miFu278/ECommercePlatform-sub000/internal/services/payment/create"
	paymentRefundService "github.com/miFu278/ECommercePlatform-sub000/internal/services/payment/refund"
	paymentWebhookService "github.com/miFu278/ECommercePlatform-sub000/internal/services/payment/webhook"
	rabbitconn "github.com/miFu278/ECommercePlatform-sub000/pkg/brokers/rabbitmq"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/databases/postgres"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

// PaymentApp wires the payment service: HTTP API, Postgres, the payment
// gateway client and the broker publisher for PaymentCompletedEvent.
// The payment service publishes only, so no consumer loop runs here.
type PaymentApp struct {
	log logger.Logger

	httpServer *httpapp.App

	db     *postgres.PgDB
	broker *rabbitconn.Conn
}

func NewPaymentApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*PaymentApp, error) {
	const op = "app.newPaymentApp"

	db, err := postgres.NewPostgresDB(ctx, log, postgresDSN(&cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	broker, err := rabbitconn.New(cfg.RabbitMQ.URL, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bus, err := rabbitbus.New(broker.Channel(), rabbitbus.Config{
		Exchange:       cfg.RabbitMQ.Exchange,
		Queue:          cfg.RabbitMQ.Queue,
		MaxAttempts:    cfg.RabbitMQ.MaxAttempts,
		HandlerTimeout: cfg.RabbitMQ.HandlerTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	bus.Freeze()

	paymentRepo := paymentRepository.NewPaymentRepository(log, db.GetDB())
	gatewayClient := gateway.NewHTTPClient(log, cfg.Gateway)

	paymentCreationSvc := paymentCreationService.New(log, cfg.Gateway, paymentRepo, gatewayClient)
	paymentWebhookSvc := paymentWebhookService.New(log, paymentRepo, bus)
	paymentCancellationSvc := paymentCancellationService.New(log, paymentRepo, gatewayClient)
	paymentRefundSvc := paymentRefundService.New(log, paymentRepo)

	handler := paymenthttp.NewHandler(log, paymentCreationSvc, paymentWebhookSvc, paymentCancellationSvc, paymentRefundSvc)

	return &PaymentApp{
		log:        log,
		httpServer: httpapp.NewApp(log, handler.InitRoutes(), cfg.HTTP.Port),
		db:         db,
		broker:     broker,
	}, nil
}

func (a *PaymentApp) Run(_ context.Context) error {
	return a.httpServer.Run()
}

func (a *PaymentApp) Stop(ctx context.Context) error {
	return errors.Join(
		a.httpServer.Stop(ctx),
		a.broker.Close(),
		a.db.Close(),
	)
}
