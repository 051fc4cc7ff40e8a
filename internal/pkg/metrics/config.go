package metrics

import (
	"net/url"
	"time"
)

// Config holds the Pushgateway settings.
type Config struct {
	Enabled bool `yaml:"enabled" env:"ENABLED" env-default:"false"`

	// PushgatewayURL, e.g. "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"PUSHGATEWAY_URL"`

	JobName string `yaml:"jobName" env:"JOB_NAME" env-default:"eyeosee"`

	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"10s"`

	// InstanceLabel overrides the instance grouping label (hostname by default).
	InstanceLabel string `yaml:"instanceLabel" env:"INSTANCE_LABEL"`
}

// Validate checks the config. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}
	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// DefaultConfig returns metrics disabled with default job and timeout.
func DefaultConfig() Config {
	return Config{
		JobName: "eyeosee",
		Timeout: 10 * time.Second,
	}
}
