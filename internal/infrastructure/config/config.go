// Package config loads process settings from MINISHOP_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const Prefix = "MINISHOP"

type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"minishop-market"`
	Env         string `envconfig:"ENV" default:"dev"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFile     string `envconfig:"LOG_FILE"`

	// MetricsAddr enables the ops HTTP server (/metrics, /health, /products).
	MetricsAddr     string        `envconfig:"METRICS_ADDR"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	MarketOpeningBalance   decimal.Decimal `envconfig:"MARKET_OPENING_BALANCE" default:"5000.00"`
	CustomerOpeningBalance decimal.Decimal `envconfig:"CUSTOMER_OPENING_BALANCE" default:"1000.00"`
	DefaultMargin          decimal.Decimal `envconfig:"DEFAULT_MARGIN" default:"0.20"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("config: service name is required")
	}
	if c.CustomerOpeningBalance.IsNegative() {
		return fmt.Errorf("config: customer opening balance %s is negative", c.CustomerOpeningBalance)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be positive")
	}
	return nil
}
