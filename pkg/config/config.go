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
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for the matching engine.
type Config struct {
	Pair     string `env:"PAIR" envDefault:"BTC-USD"`   // Instrument handled by this engine instance
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // Minimum severity written to the log
}
