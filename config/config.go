package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"draftdesk.db" validate:"required"`

	SecretKey  string `env:"SECRET_KEY,required" validate:"required,min=32"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=14"`

	// CookieSecure defaults per environment: off for ENV=local, where the app
	// runs over plain HTTP and a Secure cookie would never be stored, on
	// everywhere else. COOKIE_SECURE overrides either way.
	CookieSecure bool   `env:"COOKIE_SECURE"`
	BaseURL      string `env:"BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	GenerationAPIURL string `env:"GENERATION_API_URL" envDefault:"https://api.ai71.ai/v1/chat/completions" validate:"required,url"`
	GenerationAPIKey string `env:"GENERATION_API_KEY"`
	GenerationModel  string `env:"GENERATION_MODEL" envDefault:"tiiuae/falcon-180B-chat" validate:"required"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, ok := os.LookupEnv("COOKIE_SECURE"); !ok {
		cfg.CookieSecure = cfg.Env != "local"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps the configured log level to its slog value.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
