// Package tracing sets up the OpenTelemetry tracer provider for the eyeosee
// tooling.
package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	// ErrTracingEndpointRequired is returned when tracing is enabled without an endpoint.
	ErrTracingEndpointRequired = errors.New("tracing: endpoint is required when tracing is enabled")

	// ErrTracingEndpointInvalidFormat is returned for an endpoint without a host.
	ErrTracingEndpointInvalidFormat = errors.New("tracing: endpoint must be a URL with a host (e.g. http://jaeger:4318)")

	// ErrTracingServiceNameRequired is returned for an empty service name.
	ErrTracingServiceNameRequired = errors.New("tracing: service name is required")

	// ErrTracingTimeoutInvalid is returned for a non-positive export timeout.
	ErrTracingTimeoutInvalid = errors.New("tracing: timeout must be positive")

	// ErrTracingSamplingRateInvalid is returned for a rate outside [0, 1].
	ErrTracingSamplingRateInvalid = errors.New("tracing: sampling rate must be between 0.0 and 1.0")
)

// Config holds the tracer provider settings.
type Config struct {
	Enabled bool `yaml:"enabled" env:"ENABLED" env-default:"false"`

	// Endpoint is the OTLP HTTP endpoint, e.g. "http://jaeger:4318".
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`

	ServiceName string `yaml:"serviceName" env:"SERVICE_NAME" env-default:"eyeosee"`
	Version     string `yaml:"-"`
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`

	// Insecure uses plain HTTP.
	Insecure bool `yaml:"insecure" env:"INSECURE" env-default:"false"`

	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"5s"`

	// SamplingRate is the sampled fraction of root spans.
	SamplingRate float64 `yaml:"samplingRate" env:"SAMPLING_RATE" env-default:"1.0"`
}

// Validate checks the config. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return ErrTracingEndpointRequired
	}
	if u, err := url.Parse(c.Endpoint); err != nil || u.Host == "" {
		return ErrTracingEndpointInvalidFormat
	}
	if c.ServiceName == "" {
		return ErrTracingServiceNameRequired
	}
	if c.Timeout <= 0 {
		return ErrTracingTimeoutInvalid
	}
	if c.SamplingRate < 0.0 || c.SamplingRate > 1.0 {
		return fmt.Errorf("%w, got: %g", ErrTracingSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}

// DefaultConfig returns tracing disabled.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "eyeosee",
		Environment:  "development",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}
