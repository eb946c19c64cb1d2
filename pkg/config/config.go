package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/chanspick/PiCom/pkg/postgresql"
)

// MustLoad loads the configuration from environment variables and .env file.
// It panics if parsing fails.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
// A missing .env file is not an error.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for the marketplace backend.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	PostgresConfig postgresql.Config `envPrefix:"PG_"`
	KafkaConfig    `envPrefix:"KAFKA_"`
	RedisConfig    `envPrefix:"REDIS_"`
	EngineConfig   `envPrefix:"ENGINE_"`
}

// KafkaConfig holds the configuration for the offer event queue.
type KafkaConfig struct {
	Brokers    []string `env:"BROKER,required"`
	OfferTopic string   `env:"OFFER_TOPIC" envDefault:"offer-events"`
	TradeTopic string   `env:"TRADE_TOPIC" envDefault:"trades"`
	GroupID    string   `env:"GROUP_ID" envDefault:"picom-engine"`
}

// RedisConfig holds the configuration for the live quote cache.
type RedisConfig struct {
	Addrs        string `env:"ADDRESS,required"`
	Password     string `env:"PASSWORD" envDefault:""`
	Username     string `env:"USERNAME" envDefault:""`
	DB           int    `env:"DB" envDefault:"0"`
	QuoteChannel string `env:"QUOTE_CHANNEL" envDefault:"quotes"`
}

// EngineConfig holds the configuration for the matching engine worker pool.
type EngineConfig struct {
	Workers          int           `env:"WORKERS" envDefault:"8"`
	CleanupInterval  time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
	CleanupRetention time.Duration `env:"CLEANUP_RETENTION" envDefault:"720h"`
	CleanupBatchSize int           `env:"CLEANUP_BATCH_SIZE" envDefault:"100"`
}
