package di

import (
	"reflect"
	"sort"
)

// Resolver looks up a dependency by key.
//
// It is intentionally:
// - read-only
// - side effect free
type Resolver interface {
	Resolve(key string) (val any, ok bool)
}

// Overrides is a caller-supplied partial mapping that takes precedence over the
// registry for exactly one call or render.
type Overrides map[string]any

// DependencySet is the immutable result of resolving a dependency list. It is
// built fresh for every call/render and discarded afterwards.
type DependencySet struct {
	keys   []string
	values map[string]any
}

// Get returns the resolved value for key. Keys that were neither overridden nor
// registered are absent.
func (s DependencySet) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key was resolved.
func (s DependencySet) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the resolved keys in dependency-list order.
func (s DependencySet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of resolved keys.
func (s DependencySet) Len() int { return len(s.keys) }

// NewDependencySet builds a set directly from values, in lexical key order.
// It is mostly useful to call an implementation in isolation (tests, previews).
func NewDependencySet(values map[string]any) DependencySet {
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if isAbsent(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return buildDependencies(mapResolver(values), keys)
}

// mapResolver resolves from a plain map.
type mapResolver map[string]any

func (m mapResolver) Resolve(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// overlay is the two-level lookup: the ephemeral overrides are consulted first,
// then the shared registry. The registry itself is never written.
type overlay struct {
	overrides Overrides
	registry  Resolver
}

// Resolve implements Resolver.
func (o overlay) Resolve(key string) (any, bool) {
	if v, ok := o.overrides[key]; ok && !isAbsent(v) {
		return v, true
	}
	if o.registry == nil {
		return nil, false
	}
	v, ok := o.registry.Resolve(key)
	if !ok || isAbsent(v) {
		return nil, false
	}
	return v, true
}

// buildDependencies resolves every key in deps, in order, and keeps only the
// keys that resolved.
func buildDependencies(r Resolver, deps []string) DependencySet {
	set := DependencySet{
		keys:   make([]string, 0, len(deps)),
		values: make(map[string]any, len(deps)),
	}
	for _, key := range deps {
		if _, dup := set.values[key]; dup {
			continue
		}
		v, ok := r.Resolve(key)
		if !ok {
			continue
		}
		set.keys = append(set.keys, key)
		set.values[key] = v
	}
	return set
}

// mergeOverrides flattens the optional trailing override bags of a call. Later
// bags win per key.
func mergeOverrides(bags []Overrides) Overrides {
	switch len(bags) {
	case 0:
		return nil
	case 1:
		return bags[0]
	}
	out := Overrides{}
	for _, b := range bags {
		for k, v := range b {
			out[k] = v
		}
	}
	return out
}

// isAbsent reports whether v counts as "not supplied": a nil interface or a
// typed nil of a nillable kind.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
