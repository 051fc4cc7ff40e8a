package metrics

import "context"

// NopCollector records nothing.
type NopCollector struct{}

// NewNopCollector creates a NopCollector.
func NewNopCollector() *NopCollector { return &NopCollector{} }

// RecordGenerate is a no-op.
func (c *NopCollector) RecordGenerate(GenerateRun) {}

// Push is a no-op.
func (c *NopCollector) Push(context.Context) error { return nil }
