package di

import (
	"io"
	"maps"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// ComponentImpl renders props to w using the resolved dependencies.
type ComponentImpl[P any] func(w io.Writer, props P, deps DependencySet) error

// Component is a registered renderer.
//
// The dependency set of the last render is memoized and reused while the
// props, the overrides and the container generation stay shallowly equal.
type Component[P any] struct {
	meta      Metadata
	deps      []string
	impl      ComponentImpl[P]
	container atomic.Pointer[Container]

	mu   sync.Mutex
	memo *componentMemo[P]
}

type componentMemo[P any] struct {
	container  *Container
	generation uint64
	props      P
	overrides  Overrides
	set        DependencySet
}

// NewComponent declares a component item without registering it.
func NewComponent[P any](name string, deps []string, impl ComponentImpl[P]) *Component[P] {
	if impl == nil {
		panic("di: nil implementation for " + name)
	}
	return &Component[P]{
		meta: Metadata{Kind: KindComponent, Name: name},
		deps: append([]string(nil), deps...),
		impl: impl,
	}
}

// RegisterComponent declares a component item and registers it on c.
func RegisterComponent[P any](c *Container, name string, deps []string, impl ComponentImpl[P]) *Component[P] {
	comp := NewComponent(name, deps, impl)
	mustRegister(c, comp)
	return comp
}

// Metadata implements Item.
func (c *Component[P]) Metadata() Metadata { return c.meta }

// Dependencies returns a copy of the declared dependency list.
func (c *Component[P]) Dependencies() []string { return append([]string(nil), c.deps...) }

// Render resolves the dependencies (overrides first, then the registry) and
// renders props to w.
func (c *Component[P]) Render(w io.Writer, props P, overrides ...Overrides) error {
	return c.impl(w, props, c.dependencies(props, mergeOverrides(overrides)))
}

// RenderString renders into a string.
func (c *Component[P]) RenderString(props P, overrides ...Overrides) (string, error) {
	var sb strings.Builder
	if err := c.Render(&sb, props, overrides...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Extract implements Extractor. The returned func renders without overrides.
func (c *Component[P]) Extract() any {
	return func(w io.Writer, props P) error { return c.Render(w, props) }
}

func (c *Component[P]) bind(ct *Container) {
	c.container.Store(ct)
	c.mu.Lock()
	c.memo = nil
	c.mu.Unlock()
}

func (c *Component[P]) dependencies(props P, overrides Overrides) DependencySet {
	ct := c.container.Load()
	var gen uint64
	if ct != nil {
		gen = ct.gen()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m := c.memo; m != nil &&
		m.container == ct &&
		m.generation == gen &&
		shallowEqual(m.props, props) &&
		shallowEqual(m.overrides, overrides) {
		return m.set
	}

	set := ct.resolve(c.meta.Name, c.deps, overrides)
	// The caller may mutate its bag between renders.
	c.memo = &componentMemo[P]{
		container:  ct,
		generation: gen,
		props:      props,
		overrides:  maps.Clone(overrides),
		set:        set,
	}
	return set
}

// shallowEqual compares two values one level deep: struct fields and map
// entries are compared by identity for reference kinds and by value otherwise.
// Funcs are never equal unless both are nil.
func shallowEqual(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !sameValue(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if va.IsNil() || vb.IsNil() || va.Len() == 0 || vb.Len() == 0 {
			return va.Len() == vb.Len()
		}
		if va.Len() != vb.Len() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key())
			if !other.IsValid() || !sameValue(iter.Value(), other) {
				return false
			}
		}
		return true
	}
	return sameValue(va, vb)
}

func sameValue(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	case reflect.Slice:
		return a.Len() == b.Len() && a.Pointer() == b.Pointer()
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		if ea.Type() != eb.Type() {
			return false
		}
		return sameValue(ea, eb)
	}
	if a.Comparable() && b.Comparable() {
		return a.Equal(b)
	}
	return false
}
