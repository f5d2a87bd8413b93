package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the full service configuration, parsed from environment
// variables at startup.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Token  TokenConfig
	Consul ConsulConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"             envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT"             envDefault:"3001"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MongoConfig holds document store settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"medication-interaction"`
}

// TokenConfig holds access token settings.
type TokenConfig struct {
	AccessTokenSecret    string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiresIn time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN" envDefault:"10m"`
}

// ConsulConfig holds optional service registration settings.
type ConsulConfig struct {
	Enabled     bool   `env:"CONSUL_ENABLED" envDefault:"false"`
	Address     string `env:"CONSUL_ADDRESS" envDefault:"localhost:8500"`
	ServiceName string `env:"CONSUL_SERVICE_NAME" envDefault:"medication-api"`
}

// Load creates a Config instance from environment variables.
func Load(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks if the configuration is usable.
func (c *Config) validate() error {
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing ACCESS_TOKEN_SECRET environment variable")
	}
	if c.Token.AccessTokenExpiresIn <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRES_IN must be positive")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("SERVER_PORT must be positive")
	}
	if c.Consul.Enabled && c.Consul.Address == "" {
		return fmt.Errorf("missing CONSUL_ADDRESS environment variable")
	}

	return nil
}
