package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL       string `envconfig:"DATABASE_URL" required:"true"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	Port              string `envconfig:"PORT" default:"8080"`
	PrometheusPort    string `envconfig:"PROMETHEUS_PORT" default:"9090"`
	MigrationsEnabled bool   `envconfig:"MIGRATIONS_ENABLED" default:"true"`
}

// Load loads configuration from environment variables. Values from a .env
// file in the working directory are applied first when the file exists;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return &cfg, nil
}
