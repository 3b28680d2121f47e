package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

type RDB struct {
	client *redis.Client
	log    logger.Logger
}

func NewRedis(ctx context.Context, log logger.Logger, addr, password string, db int) (*RDB, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error("redis status", logger.String("status", "down"))
		return nil, err
	}
	log.Info("redis status", logger.String("status", "up"))

	return &RDB{client: client, log: log}, nil
}

func (r *RDB) GetClient() *redis.Client {
	return r.client
}

func (r *RDB) Close() error {
	return r.client.Close()
}
