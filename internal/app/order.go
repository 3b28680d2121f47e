package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	httpapp "github.com/miFu278/ECommercePlatform-sub000/internal/app/http"
	"github.com/miFu278/ECommercePlatform-sub000/internal/cart"
	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	orderhttp "github.com/miFu278/ECommercePlatform-sub000/internal/delivery/http/order"
	"github.com/miFu278/ECommercePlatform-sub000/internal/domain/models"
	rabbitbus "github.com/miFu278/ECommercePlatform-sub000/internal/eventbus/rabbitmq"
	"github.com/miFu278/ECommercePlatform-sub000/internal/events"
	orderRepository "github.com/miFu278/ECommercePlatform-sub000/internal/repository/order"
	orderCancellationService "github.com/miFu278/ECommercePlatform-sub000/internal/services/order/cancel"
	orderCreationService "github.com/miFu278/ECommercePlatform-sub000/internal/services/order/create"
	orderRetrievalService "github.com/miFu278/ECommercePlatform-sub000/internal/services/order/get"
	paymentCompletedHandler "github.com/miFu278/ECommercePlatform-sub000/internal/services/order/paymentcompleted"
	orderStatusService "github.com/miFu278/ECommercePlatform-sub000/internal/services/order/status"
	rabbitconn "github.com/miFu278/ECommercePlatform-sub000/pkg/brokers/rabbitmq"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/databases/postgres"
	redisdb "github.com/miFu278/ECommercePlatform-sub000/pkg/databases/redis"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

const (
	cacheSize = 128
	cacheTTL  = 10 * time.Minute
)

// OrderApp wires the order service: HTTP API, Postgres, Redis cart,
// read cache and the broker consumer for PaymentCompletedEvent.
type OrderApp struct {
	log logger.Logger

	httpServer *httpapp.App
	bus        *rabbitbus.Bus

	db     *postgres.PgDB
	rdb    *redisdb.RDB
	broker *rabbitconn.Conn
}

func NewOrderApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*OrderApp, error) {
	const op = "app.newOrderApp"

	db, err := postgres.NewPostgresDB(ctx, log, postgresDSN(&cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb, err := redisdb.NewRedis(ctx, log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
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

	cache := expirable.NewLRU[uuid.UUID, *models.Order](cacheSize, nil, cacheTTL)

	orderRepo := orderRepository.NewOrderRepository(log, db.GetDB())
	cartStore := cart.NewStore(log, rdb.GetClient())

	pricing, err := orderCreationService.PricingFromConfig(cfg.Pricing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orderCreationSvc := orderCreationService.New(log, pricing, cartStore, orderRepo, bus)
	orderRetrievalSvc := orderRetrievalService.New(log, cache, orderRepo)
	orderCancellationSvc := orderCancellationService.New(log, cache, orderRepo)
	orderStatusSvc := orderStatusService.New(log, cache, orderRepo)

	if err = bus.RegisterType(events.TypePaymentCompleted, events.DecodePaymentCompleted); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = bus.Subscribe(events.TypePaymentCompleted, paymentCompletedHandler.NewHandler(log, cache, orderRepo)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	bus.Freeze()

	handler := orderhttp.NewHandler(log, orderCreationSvc, orderRetrievalSvc, orderCancellationSvc, orderStatusSvc)

	return &OrderApp{
		log:        log,
		httpServer: httpapp.NewApp(log, handler.InitRoutes(), cfg.HTTP.Port),
		bus:        bus,
		db:         db,
		rdb:        rdb,
		broker:     broker,
	}, nil
}

func (a *OrderApp) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.httpServer.Run()
	})
	g.Go(func() error {
		return a.bus.Consume(ctx)
	})

	return g.Wait()
}

func (a *OrderApp) Stop(ctx context.Context) error {
	return errors.Join(
		a.httpServer.Stop(ctx),
		a.broker.Close(),
		a.rdb.Close(),
		a.db.Close(),
	)
}
