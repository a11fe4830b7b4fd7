package main

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/kbukum/primekit/config"
	"github.com/kbukum/primekit/observability"
	"github.com/kbukum/primekit/server"
	"github.com/kbukum/primekit/service"
	"github.com/kbukum/primekit/version"
)

const (
	serviceName = "primesd"
	envPrefix   = "PRIMES"
)

// Config is the primesd configuration, read from config.yml and PRIMES_*
// environment variables.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Primes        service.Config       `yaml:"primes" mapstructure:"primes"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Primes.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate reports the problems of every section together.
func (c *Config) Validate() error {
	err := multierr.Combine(
		c.ServiceConfig.Validate(),
		c.Server.Validate(),
		c.Observability.Validate(),
	)
	if perr := c.Primes.Validate(); perr != nil {
		err = multierr.Append(err, fmt.Errorf("primes: %w", perr))
	}
	return err
}

// loadConfig reads, defaults and validates the configuration. An empty path
// searches the usual config.yml locations.
func loadConfig(path string) (*Config, error) {
	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
