package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. AIRBOOKING_HTTP_ADDRESS.
const EnvPrefix = "AIRBOOKING"

const (
	EventsDriverNone     = "none"
	EventsDriverKafka    = "kafka"
	EventsDriverRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http" envconfig:"HTTP"`
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Booking  BookingConfig  `yaml:"booking" envconfig:"BOOKING"`
	Catalog  CatalogConfig  `yaml:"catalog" ignored:"true"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"REDIS"`
	Events   EventsConfig   `yaml:"events" envconfig:"EVENTS"`
	Kafka    KafkaConfig    `yaml:"kafka" envconfig:"KAFKA"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq" envconfig:"RABBITMQ"`
}

type HTTPConfig struct {
	Address                string `yaml:"address" split_words:"true" validate:"required"`
	Swagger                bool   `yaml:"swagger" split_words:"true"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" split_words:"true" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" split_words:"true" validate:"omitempty,oneof=json text"`
}

type BookingConfig struct {
	// FailureRate is the share of confirm/cancel attempts that fail on purpose.
	FailureRate float64 `yaml:"failure_rate" split_words:"true" validate:"gte=0,lte=1"`
	// Transitions selects the status transition table: lenient, strict or unrestricted.
	Transitions  string `yaml:"transitions" split_words:"true" validate:"omitempty,oneof=lenient strict unrestricted"`
	LedgerShards int    `yaml:"ledger_shards" split_words:"true" validate:"gte=0,lte=4096"`
}

type CatalogConfig struct {
	Flights []FlightSeedConfig `yaml:"flights" validate:"dive"`
}

type FlightSeedConfig struct {
	Origin      string `yaml:"origin" validate:"required"`
	Destination string `yaml:"destination" validate:"required"`
	Date        string `yaml:"date" validate:"required,datetime=2006-01-02"`
	Price       string `yaml:"price" validate:"required"`
}

type CacheConfig struct {
	Enabled          bool `yaml:"enabled" split_words:"true"`
	SearchTTLSeconds int  `yaml:"search_ttl_seconds" split_words:"true" validate:"gte=0"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	DB       int    `yaml:"db" split_words:"true"`
}

type EventsConfig struct {
	Driver             string `yaml:"driver" split_words:"true" validate:"omitempty,oneof=none kafka rabbitmq"`
	BookingTopic       string `yaml:"booking_topic" split_words:"true"`
	NotificationsTopic string `yaml:"notifications_topic" split_words:"true"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers" split_words:"true"`
	GroupID string   `yaml:"group_id" split_words:"true"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url" split_words:"true"`
	Exchange string `yaml:"exchange" split_words:"true"`
	Queue    string `yaml:"queue" split_words:"true"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:                ":8080",
			Swagger:                true,
			ShutdownTimeoutSeconds: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Booking: BookingConfig{
			FailureRate:  0.1,
			Transitions:  "lenient",
			LedgerShards: 32,
		},
		Cache: CacheConfig{
			SearchTTLSeconds: 60,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Events: EventsConfig{
			Driver:             EventsDriverNone,
			BookingTopic:       "bookings",
			NotificationsTopic: "booking-notifications",
		},
		Kafka: KafkaConfig{
			GroupID: "airline-booking-worker",
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "bookings.exchange",
			Queue:    "booking.notifications.q",
		},
	}
}

// LoadConfig starts from Default, applies the YAML file at path (skipped when
// path is empty), then AIRBOOKING_* environment variables, and validates.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Events.Driver {
	case EventsDriverKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("invalid config: kafka.brokers is required for the kafka events driver")
		}
	case EventsDriverRabbitMQ:
		if c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "" {
			return errors.New("invalid config: rabbitmq.url and rabbitmq.exchange are required for the rabbitmq events driver")
		}
	}
	if c.Cache.Enabled && c.Redis.Addr == "" {
		return errors.New("invalid config: redis.addr is required when the cache is enabled")
	}
	return nil
}
