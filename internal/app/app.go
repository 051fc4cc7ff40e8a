// Package app assembles the generator and its ambient services from a loaded
// configuration. The graph is built by Wire (see wire.go).
package app

import (
	"context"
	"errors"

	"github.com/sghaida/eyeosee/internal/config"
	"github.com/sghaida/eyeosee/internal/generator"
	"github.com/sghaida/eyeosee/internal/pkg/logging"
	"github.com/sghaida/eyeosee/internal/pkg/metrics"
	"github.com/sghaida/eyeosee/internal/watch"
)

// RunID correlates the log records, spans and metrics of one invocation.
type RunID string

// App holds the initialized dependencies of one CLI invocation.
//
// Adding a dependency:
//  1. add the field
//  2. add its provider to providers.go
//  3. add the provider to ProviderSet in wire.go
//  4. regenerate wire_gen.go with go generate ./internal/app/...
type App struct {
	Config *config.Config

	RunID RunID

	// Logger carries the run_id attribute.
	Logger logging.Logger

	// Metrics is a NopCollector unless metrics are enabled.
	Metrics metrics.Collector

	// TracerShutdown flushes buffered spans. A no-op unless tracing is enabled.
	TracerShutdown func(context.Context) error

	Generator *generator.Generator

	Watcher *watch.Watcher
}

// Close pushes the collected metrics and flushes spans.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Metrics.Push(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.TracerShutdown(ctx); err != nil {
		a.Logger.Warn("tracer shutdown failed", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
