package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/middlewarekit/resilience"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "httpclient"
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs and health reports.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a complete request/response exchange. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are applied to every request before request-specific headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures the transport for https upstreams.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// H2C speaks HTTP/2 over cleartext TCP with prior knowledge.
	// Only http:// upstreams can be reached; TLS must be unset.
	H2C bool `yaml:"h2c" mapstructure:"h2c"`

	// Auth is the default authentication. A request's own Auth replaces it.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Retry enables retries of failed requests when non-nil.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// CircuitBreaker enables fail-fast behavior when non-nil.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter throttles outgoing requests when non-nil.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	if c.H2C && c.TLS.IsEnabled() {
		return fmt.Errorf("httpclient: h2c cannot be combined with tls")
	}
	return nil
}

// DefaultRetryConfig returns a retry config that only retries transient
// HTTP failures.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns a circuit breaker config that counts
// only transient HTTP failures.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.IsFailure = countsAsFailure
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
