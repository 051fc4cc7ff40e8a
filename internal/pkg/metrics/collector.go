// Package metrics records generator runs and pushes them to a Prometheus
// Pushgateway.
//
// NewCollector picks the implementation from Config: PrometheusCollector when
// enabled, NopCollector otherwise.
package metrics

import (
	"context"
	"time"
)

// GenerateRun describes one generator run.
type GenerateRun struct {
	// Output is the container file path.
	Output string

	// Files is the number of scanned source files.
	Files int

	// Items is the number of discovered exports.
	Items int

	Duration time.Duration

	// Changed reports whether the output file was rewritten.
	Changed bool

	Success bool
}

// Collector records generator metrics.
type Collector interface {
	// RecordGenerate records the outcome of one run.
	RecordGenerate(run GenerateRun)

	// Push sends the collected metrics. Failures are logged, never returned.
	Push(ctx context.Context) error
}
