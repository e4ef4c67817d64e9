package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-booking/config"
	"github.com/Domenick1991/airline-booking/internal/kafka"
	"github.com/Domenick1991/airline-booking/internal/logger"
	"github.com/Domenick1991/airline-booking/internal/rabbitmq"
	"github.com/Domenick1991/airline-booking/internal/service/booking"
)

type EventPublisher interface {
	booking.Publisher
	Close() error
}

type EventConsumer interface {
	Consume(ctx context.Context, handler func(context.Context, []byte) error) error
	Close() error
}

// NewEventPublisher returns nil when events are disabled.
func NewEventPublisher(cfg *config.Config, log *logger.Logger) (EventPublisher, error) {
	switch cfg.Events.Driver {
	case "", config.EventsDriverNone:
		return nil, nil
	case config.EventsDriverKafka:
		return kafka.NewProducer(cfg.Kafka.Brokers, log), nil
	case config.EventsDriverRabbitMQ:
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, fmt.Errorf("create rabbitmq publisher: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Events.Driver)
	}
}

// NewNotificationConsumer subscribes to the notifications topic of the
// configured driver.
func NewNotificationConsumer(cfg *config.Config) (EventConsumer, error) {
	switch cfg.Events.Driver {
	case config.EventsDriverKafka:
		return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Events.NotificationsTopic), nil
	case config.EventsDriverRabbitMQ:
		c, err := rabbitmq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, []string{cfg.Events.NotificationsTopic})
		if err != nil {
			return nil, fmt.Errorf("create rabbitmq consumer: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("events driver %q cannot consume notifications", cfg.Events.Driver)
	}
}
