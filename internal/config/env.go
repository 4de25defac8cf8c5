package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds HTTP server settings read from the environment.
type ServerConfig struct {
	Addr          string        `env:"RPGO_ADDR" envDefault:":8080"`
	ReadTimeout   time.Duration `env:"RPGO_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout  time.Duration `env:"RPGO_WRITE_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes  int           `env:"RPGO_MAX_BODY_BYTES" envDefault:"65536"`
	LogLevel      string        `env:"RPGO_LOG_LEVEL" envDefault:"info"`
	AllowedOrigin string        `env:"RPGO_ALLOWED_ORIGIN"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig reads ServerConfig from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.MaxBodyBytes <= 0 {
		return ServerConfig{}, fmt.Errorf("RPGO_MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}
