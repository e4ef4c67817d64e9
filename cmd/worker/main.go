package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airline-booking/config"
	"github.com/Domenick1991/airline-booking/internal/bootstrap"
	"github.com/Domenick1991/airline-booking/internal/logger"
	"github.com/Domenick1991/airline-booking/internal/notification"
	"github.com/spf13/pflag"
)

func main() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	cfgPath := pflag.StringP("config", "c", defaultPath, "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.New(logger.Config{Service: "airline-booking-worker"}).Fatal("load config", "error", err, "path", *cfgPath)
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "airline-booking-worker",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := bootstrap.NewNotificationConsumer(cfg)
	if err != nil {
		log.Fatal("create notification consumer", "error", err)
	}
	defer consumer.Close()

	notifier := notification.NewNotifier(log)

	log.Info("worker started", "driver", cfg.Events.Driver, "topic", cfg.Events.NotificationsTopic)
	if err := consumer.Consume(ctx, notifier.HandleMessage); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", "error", err)
		return
	}
	log.Info("worker stopped")
}
