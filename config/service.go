package config

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/kbukum/primekit/logger"
)

// Environments accepted by ServiceConfig.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig holds the fields every service binary needs. Service configs
// embed it:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields. Development turns on debug mode.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate reports every invalid field, not just the first.
func (c *ServiceConfig) Validate() error {
	var err error
	if c.Name == "" {
		err = multierr.Append(err, fmt.Errorf("config.name is required"))
	}
	if !slices.Contains(Environments, c.Environment) {
		err = multierr.Append(err, fmt.Errorf("config.environment must be one of %v (got: %q)", Environments, c.Environment))
	}
	if lerr := c.Logging.Validate(); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("config.logging: %w", lerr))
	}
	return err
}
