package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/miFu278/ECommercePlatform-sub000/internal/app"
	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.NewNotificationApp(log, &cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create app: %v", err))
	}

	go func() {
		if err := application.Run(ctx); err != nil {
			log.Error("notification service stopped", logger.Err(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	cancel()

	if err = application.Stop(); err != nil {
		panic(fmt.Sprintf("failed to stop app: %v", err))
	}

	log.Info("notification service stopped")
}
