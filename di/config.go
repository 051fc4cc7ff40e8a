package di

// Config is a registered plain value.
type Config[T any] struct {
	meta  Metadata
	value T
}

// NewConfig declares a config item without registering it.
func NewConfig[T any](name string, value T) *Config[T] {
	return &Config[T]{
		meta:  Metadata{Kind: KindConfig, Name: name},
		value: value,
	}
}

// RegisterConfig declares a config item and registers it on c.
func RegisterConfig[T any](c *Container, name string, value T) *Config[T] {
	cfg := NewConfig(name, value)
	mustRegister(c, cfg)
	return cfg
}

// Metadata implements Item.
func (c *Config[T]) Metadata() Metadata { return c.meta }

// Value returns the registered value unchanged.
func (c *Config[T]) Value() T { return c.value }

// Extract implements Extractor.
func (c *Config[T]) Extract() any { return c.value }

func mustRegister(c *Container, item Item) {
	if c == nil {
		panic(ErrNilContainer)
	}
	if err := c.Register(item); err != nil {
		panic(err)
	}
}
