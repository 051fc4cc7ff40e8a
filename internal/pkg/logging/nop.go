package logging

// NopLogger discards everything.
type NopLogger struct{}

// NewNopLogger returns a Logger that discards everything. Handy in tests.
func NewNopLogger() Logger { return &NopLogger{} }

func (n *NopLogger) Debug(_ string, _ ...any) {}
func (n *NopLogger) Info(_ string, _ ...any)  {}
func (n *NopLogger) Warn(_ string, _ ...any)  {}
func (n *NopLogger) Error(_ string, _ ...any) {}

// With returns n itself.
func (n *NopLogger) With(_ ...any) Logger { return n }
