package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional for the streamer

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil
}

// Config holds the configuration for the depth streamer.
type Config struct {
	Symbol          string `env:"SYMBOL,required"` // Instrument symbol, e.g. ARL
	Levels          int    `env:"DEPTH_LEVELS" envDefault:"10"`
	MetricsAddr     string `env:"METRICS_ADDR" envDefault:":9100"`
	KafkaConfig     `envPrefix:"KAFKA_"`     // MBO event source
	PublisherConfig `envPrefix:"PUBLISHER_"` // MBP depth sink
}

// KafkaConfig holds the configuration for the MBO event consumer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers []string `env:"BROKER,required"`
}

// PublisherConfig holds the configuration for the MBP depth publisher.
type PublisherConfig struct {
	Topic   string   `env:"TOPIC,required"`
	Brokers []string `env:"BROKER,required"`
}
