package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airline-booking/config"
	"github.com/Domenick1991/airline-booking/internal/bootstrap"
	"github.com/Domenick1991/airline-booking/internal/cache"
	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/Domenick1991/airline-booking/internal/logger"
	"github.com/Domenick1991/airline-booking/internal/repository"
	"github.com/Domenick1991/airline-booking/internal/service/booking"
	"github.com/Domenick1991/airline-booking/internal/service/flights"
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
		logger.New(logger.Config{Service: "airline-booking"}).Fatal("load config", "error", err, "path", *cfgPath)
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "airline-booking",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seeds, err := bootstrap.CatalogSeeds(cfg.Catalog)
	if err != nil {
		log.Fatal("load flight catalog", "error", err)
	}
	transitions, err := domain.TransitionTableByName(cfg.Booking.Transitions)
	if err != nil {
		log.Fatal("select transition table", "error", err)
	}

	catalog := repository.NewFlightCatalog(seeds)
	ledger := repository.NewBookingLedger(
		repository.WithTransitions(transitions),
		repository.WithShardCount(cfg.Booking.LedgerShards),
	)
	log.Info("stores ready", "flights", catalog.Len(), "transitions", transitions.Name(), "failure_rate", cfg.Booking.FailureRate)

	flightOpts := []flights.FlightServiceOption{flights.WithLogger(log)}
	if cfg.Cache.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.SearchTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, searches fall back to the catalog", "error", err)
		}
		flightOpts = append(flightOpts, flights.WithCache(redisCache))
	}

	bookingOpts := []booking.BookingServiceOption{
		booking.WithLogger(log),
		booking.WithFailurePolicy(booking.RandomFailure(cfg.Booking.FailureRate, nil)),
	}
	publisher, err := bootstrap.NewEventPublisher(cfg, log)
	if err != nil {
		log.Fatal("create event publisher", "error", err)
	}
	if publisher != nil {
		defer publisher.Close()
		bookingOpts = append(bookingOpts,
			booking.WithPublisher(publisher, cfg.Events.BookingTopic),
			booking.WithNotificationsTopic(cfg.Events.NotificationsTopic),
		)
	}

	flightService := flights.NewFlightService(catalog, flightOpts...)
	bookingService := booking.NewBookingService(ledger, catalog, bookingOpts...)

	if err := bootstrap.Run(ctx, cfg, log, flightService, bookingService); err != nil {
		log.Fatal("server error", "error", err)
	}
}
