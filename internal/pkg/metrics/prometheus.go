package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/sghaida/eyeosee/internal/pkg/logging"
)

// PrometheusCollector records generator runs in its own registry and pushes
// them on Push.
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	runDuration *prometheus.HistogramVec
	runs        *prometheus.CounterVec
	items       *prometheus.GaugeVec
	files       *prometheus.GaugeVec

	instance string
}

// NewPrometheusCollector registers:
//   - eyeosee_generate_duration_seconds (histogram)
//   - eyeosee_generate_runs_total (counter, by status and changed)
//   - eyeosee_generate_items (gauge)
//   - eyeosee_generate_files (gauge)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("metrics: cannot resolve hostname, using 'unknown'", "error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eyeosee",
			Name:      "generate_duration_seconds",
			Help:      "Duration of container generation in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"output", "status"},
	)
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eyeosee",
			Name:      "generate_runs_total",
			Help:      "Total number of generator runs",
		},
		[]string{"output", "status", "changed"},
	)
	items := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "eyeosee",
			Name:      "generate_items",
			Help:      "Number of container items discovered by the last run",
		},
		[]string{"output"},
	)
	files := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "eyeosee",
			Name:      "generate_files",
			Help:      "Number of source files scanned by the last run",
		},
		[]string{"output"},
	)

	registry := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{runDuration, runs, items, files} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}

	return &PrometheusCollector{
		config:      config,
		logger:      logger,
		registry:    registry,
		runDuration: runDuration,
		runs:        runs,
		items:       items,
		files:       files,
		instance:    instance,
	}, nil
}

const maxLabelLength = 128

// sanitizeLabel replaces control characters and truncates to maxLabelLength runes.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordGenerate implements Collector.
func (c *PrometheusCollector) RecordGenerate(run GenerateRun) {
	status := "success"
	if !run.Success {
		status = "error"
	}
	output := sanitizeLabel(run.Output)

	c.runDuration.WithLabelValues(output, status).Observe(run.Duration.Seconds())
	c.runs.WithLabelValues(output, status, fmt.Sprint(run.Changed)).Inc()
	if run.Success {
		c.items.WithLabelValues(output).Set(float64(run.Items))
		c.files.WithLabelValues(output).Set(float64(run.Files))
	}

	c.logger.Debug("metrics: generate recorded",
		"output", output,
		"status", status,
		"duration_ms", run.Duration.Milliseconds(),
	)
}

// Push implements Collector. Errors are logged and nil is returned.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}
	if ctx.Err() != nil {
		c.logger.Debug("metrics: push cancelled")
		return nil
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("metrics: push to Pushgateway failed",
			"error", err.Error(),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("metrics: pushed", "job", c.config.JobName, "instance", c.instance)
	return nil
}

// GetRegistry exposes the registry for tests.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry { return c.registry }
