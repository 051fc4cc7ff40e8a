package di

import "sync/atomic"

// FunctionImpl is the implementation wrapped by a Function. It receives the
// caller's argument and the resolved dependency set.
type FunctionImpl[A, R any] func(arg A, deps DependencySet) R

// Function is a registered plain function or hook with one argument.
//
// Functions and hooks share the same mechanics; only the kind differs.
type Function[A, R any] struct {
	meta      Metadata
	deps      []string
	impl      FunctionImpl[A, R]
	container atomic.Pointer[Container]
}

// NewFunction declares a function item without registering it.
func NewFunction[A, R any](name string, deps []string, fn FunctionImpl[A, R]) *Function[A, R] {
	return newFunction(KindFunction, name, deps, fn)
}

// NewHook declares a hook item without registering it.
func NewHook[A, R any](name string, deps []string, fn FunctionImpl[A, R]) *Function[A, R] {
	return newFunction(KindHook, name, deps, fn)
}

// RegisterFunction declares a function item and registers it on c.
func RegisterFunction[A, R any](c *Container, name string, deps []string, fn FunctionImpl[A, R]) *Function[A, R] {
	f := NewFunction(name, deps, fn)
	mustRegister(c, f)
	return f
}

// RegisterHook declares a hook item and registers it on c.
func RegisterHook[A, R any](c *Container, name string, deps []string, fn FunctionImpl[A, R]) *Function[A, R] {
	f := NewHook(name, deps, fn)
	mustRegister(c, f)
	return f
}

func newFunction[A, R any](kind Kind, name string, deps []string, fn FunctionImpl[A, R]) *Function[A, R] {
	if fn == nil {
		panic("di: nil implementation for " + name)
	}
	return &Function[A, R]{
		meta: Metadata{Kind: kind, Name: name},
		deps: append([]string(nil), deps...),
		impl: fn,
	}
}

// Metadata implements Item.
func (f *Function[A, R]) Metadata() Metadata { return f.meta }

// Dependencies returns a copy of the declared dependency list.
func (f *Function[A, R]) Dependencies() []string { return append([]string(nil), f.deps...) }

// Call resolves the dependencies and invokes the implementation.
//
// Overrides take precedence over the registry for this call only. A function
// with no declared dependencies ignores them.
func (f *Function[A, R]) Call(arg A, overrides ...Overrides) R {
	var ov Overrides
	if len(f.deps) > 0 {
		ov = mergeOverrides(overrides)
	}
	return f.impl(arg, f.container.Load().resolve(f.meta.Name, f.deps, ov))
}

// Extract implements Extractor. The returned func resolves without overrides.
func (f *Function[A, R]) Extract() any {
	return func(arg A) R { return f.Call(arg) }
}

func (f *Function[A, R]) bind(c *Container) { f.container.Store(c) }
