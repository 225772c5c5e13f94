// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/avlasov/fileshare/internal/flagx"
	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the fileshare CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
type Config struct {
	ServerEndpointAddr string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
}

type envConfig struct {
	ServerEndpointAddr string `env:"SERVER_ADDRESS"`
}

func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}
	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
}

func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// LoadConfig applies defaults, then overlays the environment and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
