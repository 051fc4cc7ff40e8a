package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/sghaida/eyeosee/internal/config"
	"github.com/sghaida/eyeosee/internal/constants"
	"github.com/sghaida/eyeosee/internal/generator"
	"github.com/sghaida/eyeosee/internal/pkg/logging"
	"github.com/sghaida/eyeosee/internal/pkg/metrics"
	"github.com/sghaida/eyeosee/internal/pkg/tracing"
	"github.com/sghaida/eyeosee/internal/watch"
)

// ProvideRunID generates a random run identifier.
func ProvideRunID() RunID {
	return RunID(uuid.NewString())
}

// ProvideLogger creates the logger from cfg.Logging. Empty fields fall back
// to the logging defaults.
func ProvideLogger(cfg *config.Config, runID RunID) logging.Logger {
	logCfg := logging.DefaultConfig()

	if cfg != nil {
		if cfg.Logging.Level != "" {
			logCfg.Level = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logCfg.Format = cfg.Logging.Format
		}
		if cfg.Logging.Output != "" {
			logCfg.Output = cfg.Logging.Output
		}
		if cfg.Logging.FilePath != "" {
			logCfg.FilePath = cfg.Logging.FilePath
		}
		if cfg.Logging.MaxSize > 0 {
			logCfg.MaxSize = cfg.Logging.MaxSize
		}
		if cfg.Logging.MaxBackups > 0 {
			logCfg.MaxBackups = cfg.Logging.MaxBackups
		}
		if cfg.Logging.MaxAge > 0 {
			logCfg.MaxAge = cfg.Logging.MaxAge
		}
		logCfg.Compress = cfg.Logging.Compress
	}

	return logging.NewLogger(logCfg).With("run_id", string(runID))
}

// ProvideMetricsCollector creates the collector from cfg.Metrics. It falls
// back to a NopCollector on error.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics, logger)
	if err != nil {
		logger.Error("cannot create metrics collector, using nop collector", "error", err.Error())
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider installs the global tracer provider from cfg.Tracing
// and returns its shutdown function. It falls back to a no-op on error.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	tracingCfg := cfg.Tracing
	tracingCfg.Version = constants.Version
	if tracingCfg.ServiceName == "" {
		tracingCfg.ServiceName = cfg.Name
	}

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("cannot initialize tracing, using nop provider", "error", err.Error())
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideGenerator creates the generator from cfg.
func ProvideGenerator(cfg *config.Config, logger logging.Logger, collector metrics.Collector) *generator.Generator {
	return generator.New(generator.Options{
		Root:          cfg.Root,
		Includes:      cfg.Includes,
		Excludes:      cfg.Excludes,
		GoMod:         cfg.GoModPath(),
		Output:        cfg.OutputPath(),
		RuntimeModule: cfg.RuntimeModule,
		Package:       cfg.Package,
	}, logger, collector)
}

// ProvideWatcher creates the watch loop around gen.
func ProvideWatcher(cfg *config.Config, gen *generator.Generator, logger logging.Logger) *watch.Watcher {
	return watch.New(watch.Options{
		Root:     cfg.Root,
		Includes: cfg.Includes,
		Excludes: cfg.Excludes,
		Output:   cfg.OutputPath(),
		Debounce: cfg.Watch.Debounce,
	}, gen, logger)
}
