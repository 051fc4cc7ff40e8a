package metrics

import "github.com/sghaida/eyeosee/internal/pkg/logging"

// NewCollector returns a NopCollector when metrics are disabled and a
// PrometheusCollector otherwise.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewPrometheusCollector(config, logger)
}
