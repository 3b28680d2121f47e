package app

import (
	"context"
	"fmt"

	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	rabbitbus "github.com/miFu278/ECommercePlatform-sub000/internal/eventbus/rabbitmq"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	"github.com/miFu278/ECommercePlatform-sub000/internal/services/notification"
	rabbitconn "github.com/miFu278/ECommercePlatform-sub000/pkg/brokers/rabbitmq"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

// NotificationApp is a pure consumer: it reads OrderCreatedEvent and
// PaymentCompletedEvent off the broker and sends notifications.
type NotificationApp struct {
	log logger.Logger

	bus    *rabbitbus.Bus
	broker *rabbitconn.Conn
}

func NewNotificationApp(log logger.Logger, cfg *config.Config) (*NotificationApp, error) {
	const op = "app.newNotificationApp"

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

	sender := notification.NewLogSender(log)

	if err = bus.RegisterType(events.TypeOrderCreated, events.DecodeOrderCreated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = bus.RegisterType(events.TypePaymentCompleted, events.DecodePaymentCompleted); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = bus.Subscribe(events.TypeOrderCreated, notification.NewOrderCreatedHandler(log, sender)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = bus.Subscribe(events.TypePaymentCompleted, notification.NewPaymentCompletedHandler(log, sender)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	bus.Freeze()

	return &NotificationApp{
		log:    log,
		bus:    bus,
		broker: broker,
	}, nil
}

func (a *NotificationApp) Run(ctx context.Context) error {
	return a.bus.Consume(ctx)
}

func (a *NotificationApp) Stop() error {
	return a.broker.Close()
}
