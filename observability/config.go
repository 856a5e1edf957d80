package observability

import (
	"errors"
	"time"
)

// Config configures the OpenTelemetry providers.
type Config struct {
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate *float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	// MetricInterval is the metric export interval.
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`

	DisableTracing bool `yaml:"disable_tracing" mapstructure:"disable_tracing"`
	DisableMetrics bool `yaml:"disable_metrics" mapstructure:"disable_metrics"`
}

func (c *Config) ApplyDefaults() {
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == nil {
		rate := 1.0
		c.SampleRate = &rate
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return errors.New("observability: service_name is required")
	}
	if c.SampleRate != nil && (*c.SampleRate < 0 || *c.SampleRate > 1) {
		return errors.New("observability: sample_rate must be between 0 and 1")
	}
	if c.MetricInterval < 0 {
		return errors.New("observability: metric_interval must not be negative")
	}
	return nil
}
