package di

import (
	"context"
	"fmt"
	"sync"
)

// Module groups the items declared by one source file.
type Module struct {
	// Source identifies the file, relative to the wiring package, without
	// extension (e.g. "../greet/decorate").
	Source string

	Items []Item
}

// Bootstrap registers modules on a container exactly once each.
//
// Run may be called repeatedly; modules already registered are skipped, so a
// later call only picks up what a failed or cancelled earlier call left behind.
type Bootstrap struct {
	container *Container
	modules   []Module

	mu          sync.Mutex
	initialized map[string]bool
}

// NewBootstrap creates a bootstrap over modules, registered in the given order.
func NewBootstrap(c *Container, modules ...Module) *Bootstrap {
	return &Bootstrap{
		container:   c,
		modules:     modules,
		initialized: make(map[string]bool, len(modules)),
	}
}

// Run registers every module not yet initialized. It stops at the first
// registration error or when ctx is done.
func (b *Bootstrap) Run(ctx context.Context) error {
	if b.container == nil {
		return ErrNilContainer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, m := range b.modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if b.initialized[m.Source] {
			continue
		}
		for _, it := range m.Items {
			if err := b.container.Register(it); err != nil {
				return fmt.Errorf("bootstrap %s: %w", m.Source, err)
			}
		}
		b.initialized[m.Source] = true
		b.container.logger.Debug("di: module initialized", "source", m.Source, "items", len(m.Items))
	}
	return nil
}

// Initialized reports whether the module from source has been registered.
func (b *Bootstrap) Initialized(source string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized[source]
}
