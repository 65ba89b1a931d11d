package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string     `envconfig:"APP_NAME" default:"Finsight"`
		Port     int        `envconfig:"PORT" default:"8080"`
		LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"finsight"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Rates struct {
		BaseURL string        `envconfig:"RATES_BASE_URL" default:"https://openexchangerates.org/api"`
		AppID   string        `envconfig:"RATES_APP_ID"`
		Timeout time.Duration `envconfig:"RATES_TIMEOUT" default:"10s"`
	}

	Currency struct {
		Domestic string `envconfig:"DOMESTIC_CURRENCY" default:"BRL"`
	}

	TUI struct {
		Owner uuid.UUID `envconfig:"TUI_OWNER_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
