package config

import (
	"fmt"

	pkgconfig "github.com/yanis004/WebServices/pkg/config"
)

// Config holds all configuration for the SOAP service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SOAP_HTTP_PORT" envDefault:"8002"`

	// PostgreSQL (shared with the store service)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"user"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"password"`
	PostgresDB   string `env:"STORE_DB_NAME" envDefault:"mydb"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load soap config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	return cfg, nil
}
