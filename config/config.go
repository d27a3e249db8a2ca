// Package config loads SDK configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds invoicing SDK configuration loaded from the environment.
type Config struct {
	BaseURL      string
	CompanyState string
	HTTPTimeout  time.Duration
	LogLevel     string
	LogFormat    string
	MetricsNS    string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		BaseURL:      strings.TrimSpace(k.String("INVOICING_BASE_URL")),
		CompanyState: strings.TrimSpace(k.String("COMPANY_STATE")),
		HTTPTimeout:  parseDuration(k.String("INVOICING_HTTP_TIMEOUT"), "30s"),
		LogLevel:     valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:    valueOrDefault(k.String("LOG_FORMAT"), "json"),
		MetricsNS:    valueOrDefault(k.String("METRICS_NAMESPACE"), "gstinvoice"),
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("INVOICING_BASE_URL is required")
	}
	if cfg.CompanyState == "" {
		return nil, errors.New("COMPANY_STATE is required")
	}

	return cfg, nil
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
