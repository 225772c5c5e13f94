package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	EndpointAddr          string        `env:"ADDRESS"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"JWT_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_TTL"`
}

// parseEnv overlays values from environment variables. Unset variables keep
// the current values.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration
	}
}
