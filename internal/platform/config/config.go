package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
)

type Config struct {
	AppEnv         string `env:"APP_ENV" envDefault:"local"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	DashboardTitle string `env:"DASHBOARD_TITLE" envDefault:"Mobile Coverage Colombia 2017 - 2024"`

	Dataset DatasetConfig
	HTTP    HTTPConfig
	Chart   ChartConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyAliases(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.HTTP.Port <= 0 || c.HTTP.HealthPort <= 0:
		return fmt.Errorf("%w: ports must be positive", apperrors.ErrInvalidInput)
	case c.HTTP.Port == c.HTTP.HealthPort:
		return fmt.Errorf("%w: HTTP_PORT and HEALTH_PORT must differ", apperrors.ErrInvalidInput)
	case c.HTTP.RateLimitRPM <= 0 || c.HTTP.RateLimitBurst <= 0:
		return fmt.Errorf("%w: rate limits must be positive", apperrors.ErrInvalidInput)
	case strings.TrimSpace(c.Dataset.Path) == "":
		return fmt.Errorf("%w: DATASET_PATH is empty", apperrors.ErrInvalidInput)
	}

	return nil
}

// PaaS runtimes commonly inject PORT; it only applies when HTTP_PORT is unset.
func applyAliases(cfg *Config) {
	if !hasEnv("HTTP_PORT") {
		setIntFromEnv("PORT", &cfg.HTTP.Port)
	}

	if !hasEnv("DATASET_PATH") {
		setStringFromEnv("COVERAGE_CSV", &cfg.Dataset.Path)
	}
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}

func setIntFromEnv(key string, target *int) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}
