package service

import (
	"github.com/kbukum/primekit/prime"
	"github.com/kbukum/primekit/validation"
)

// Config controls the shared generator and the size of the queries Primes accepts.
type Config struct {
	// Generator is the prime.Kind shared by every query.
	Generator string             `yaml:"generator" mapstructure:"generator" json:"generator" validate:"oneof=naive incremental segmented"`
	Window    prime.WindowConfig `yaml:"window" mapstructure:"window" json:"window"`
	// MaxQuerySpan caps max-min of a bounded query.
	MaxQuerySpan uint64 `yaml:"max_query_span" mapstructure:"max_query_span" json:"max_query_span" validate:"gte=1"`
	// MaxCount caps the count of a First query.
	MaxCount int `yaml:"max_count" mapstructure:"max_count" json:"max_count" validate:"gte=1"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Generator == "" {
		c.Generator = string(prime.KindSegmented)
	}
	c.Window.ApplyDefaults()
	if c.MaxQuerySpan == 0 {
		c.MaxQuerySpan = 10_000_000
	}
	if c.MaxCount == 0 {
		c.MaxCount = 100_000
	}
}

// Validate checks the generator name, window policy and limits.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
