package di

import (
	"sort"
	"sync"
)

// Logger is the logging surface the runtime needs. It is satisfied by the
// slog-based loggers used across the tooling.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Container or an Initializer.
type Option func(*options)

type options struct {
	logger Logger
}

func newOptions(opts []Option) options {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Container is a named registry of items.
//
// Registering under an already-used name replaces the previous entry (last
// write wins). Resolution never mutates the registry; overrides live in a
// per-call overlay.
type Container struct {
	mu    sync.RWMutex
	items map[string]Item

	// generation changes on every registration; component memo slots use it to
	// notice registry changes.
	generation uint64

	logger Logger
}

// New creates an empty container.
func New(opts ...Option) *Container {
	o := newOptions(opts)
	return &Container{
		items:  make(map[string]Item),
		logger: o.logger,
	}
}

// Register stores item under its metadata name and binds it to c.
func (c *Container) Register(item Item) error {
	if isAbsent(item) {
		return ErrNilItem
	}
	meta := item.Metadata()

	c.mu.Lock()
	_, replaced := c.items[meta.Name]
	c.items[meta.Name] = item
	c.generation++
	c.mu.Unlock()

	if b, ok := item.(binder); ok {
		b.bind(c)
	}

	if replaced {
		c.logger.Debug("di: item replaced", "name", meta.Name, "kind", meta.Kind.String())
	} else {
		c.logger.Debug("di: item registered", "name", meta.Name, "kind", meta.Kind.String())
	}
	return nil
}

// Get returns the item registered under name.
func (c *Container) Get(name string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[name]
	return it, ok
}

// Resolve implements Resolver.
func (c *Container) Resolve(key string) (any, bool) {
	it, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return it, true
}

// Keys returns the registered names in lexical order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered items.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Manifest returns a snapshot of the registry.
func (c *Container) Manifest() Manifest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := make(Manifest, len(c.items))
	for k, v := range c.items {
		m[k] = v
	}
	return m
}

func (c *Container) gen() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// resolve builds the dependency set for deps under the given overrides. A nil
// container resolves from the overrides alone.
func (c *Container) resolve(name string, deps []string, overrides Overrides) DependencySet {
	var reg Resolver
	if c != nil {
		reg = c
	}
	set := buildDependencies(overlay{overrides: overrides, registry: reg}, deps)
	if set.Len() < len(deps) && c != nil {
		c.logger.Debug("di: unresolved dependencies", "item", name, "declared", len(deps), "resolved", set.Len())
	}
	return set
}
