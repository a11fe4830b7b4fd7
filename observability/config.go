package observability

import (
	"fmt"
	"time"
)

// Config is the observability section of a service configuration.
// Tracing and metrics are exported over OTLP/HTTP when enabled.
type Config struct {
	Tracing        bool          `yaml:"tracing" mapstructure:"tracing"`
	Metrics        bool          `yaml:"metrics" mapstructure:"metrics"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the sample rate and export interval.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability: sample_rate must be within [0, 1], got %v", c.SampleRate)
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("observability: metric_interval must not be negative")
	}
	return nil
}

// Tracer derives the tracer configuration for a service.
func (c *Config) Tracer(service, version, environment string) *TracerConfig {
	return &TracerConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// Meter derives the meter configuration for a service.
func (c *Config) Meter(service, version, environment string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.MetricInterval,
	}
}
