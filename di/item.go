package di

import "sort"

// Kind tags what an Item wraps.
type Kind string

const (
	KindConfig    Kind = "CONFIG"
	KindComponent Kind = "COMPONENT"
	KindFunction  Kind = "FUNCTION"
	KindHook      Kind = "HOOK"
)

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// Metadata is attached to every item at construction time and never changes.
type Metadata struct {
	Kind Kind
	Name string
}

// Item is a named, tagged, resolvable unit stored in a Container.
type Item interface {
	Metadata() Metadata
}

// Extractor is implemented by items that can be normalized back to their plain
// consumable form (see Extract).
type Extractor interface {
	Extract() any
}

// binder is implemented by the items of this package so that a Container can
// attach itself on registration.
type binder interface {
	bind(c *Container)
}

// Extract normalizes an item to the value a dependent implementation consumes:
//
//   - *Config[T]        -> T
//   - *Function[A, R]   -> func(A) R
//   - *Component[P]     -> func(io.Writer, P) error
//   - *DynamicFunction  -> func(...any) ([]any, error)
//
// Values that are not extractable are returned unchanged. Extracted callables
// resolve their own dependencies without overrides.
func Extract(v any) any {
	if ex, ok := v.(Extractor); ok {
		return ex.Extract()
	}
	return v
}

// Manifest associates dependency keys with their items. Generated wiring files
// expose one as ContainerDependencies.
type Manifest map[string]Item

// Keys returns the manifest keys in lexical order.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Kind returns the kind of the item registered under key.
func (m Manifest) Kind(key string) (Kind, bool) {
	it, ok := m[key]
	if !ok || it == nil {
		return "", false
	}
	return it.Metadata().Kind, true
}

// Extract returns the extracted form of the item registered under key.
func (m Manifest) Extract(key string) (any, bool) {
	it, ok := m[key]
	if !ok || it == nil {
		return nil, false
	}
	return Extract(it), true
}
