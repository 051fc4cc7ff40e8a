package di_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sghaida/eyeosee/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decoration struct{ Marker string }

//
// -----------------------------------------------------------------------------
// Register / Get
// -----------------------------------------------------------------------------

// TestNew_Empty verifies a new container holds no items.
func TestNew_Empty(t *testing.T) {
	t.Parallel()

	c := di.New()
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

// TestGet_ReturnsMetadataPerKind verifies Get returns the item registered under a
// name with that name and the right kind tag.
func TestGet_ReturnsMetadataPerKind(t *testing.T) {
	t.Parallel()

	c := di.New()
	di.RegisterConfig(c, "CONFIG", decoration{Marker: "**"})
	di.RegisterFunction(c, "fn", nil, func(s string, _ di.DependencySet) string { return s })
	di.RegisterHook(c, "useHook", nil, func(s string, _ di.DependencySet) int { return len(s) })
	di.RegisterComponent(c, "Comp", nil, func(_ io.Writer, _ struct{}, _ di.DependencySet) error { return nil })
	di.RegisterDynamicFunction(c, "dyn", nil, func() {})
	di.RegisterDynamicHook(c, "useDyn", nil, func() {})

	tests := []struct {
		name string
		kind di.Kind
	}{
		{"CONFIG", di.KindConfig},
		{"fn", di.KindFunction},
		{"useHook", di.KindHook},
		{"Comp", di.KindComponent},
		{"dyn", di.KindFunction},
		{"useDyn", di.KindHook},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			it, ok := c.Get(tt.name)
			require.True(t, ok)
			assert.Equal(t, di.Metadata{Kind: tt.kind, Name: tt.name}, it.Metadata())
		})
	}

	assert.Equal(t, []string{"CONFIG", "Comp", "dyn", "fn", "useDyn", "useHook"}, c.Keys())
	assert.Equal(t, 6, c.Len())
}

// TestRegister_LastWriteWins verifies re-registering a name replaces the entry.
func TestRegister_LastWriteWins(t *testing.T) {
	t.Parallel()

	c := di.New()
	first := di.RegisterConfig(c, "CONFIG", 1)
	second := di.RegisterConfig(c, "CONFIG", 2)

	got, ok := c.Get("CONFIG")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
	assert.Equal(t, 1, c.Len())
}

// TestRegister_NilItem verifies nil items are rejected.
func TestRegister_NilItem(t *testing.T) {
	t.Parallel()

	c := di.New()
	require.True(t, errors.Is(c.Register(nil), di.ErrNilItem))

	var cfg *di.Config[int]
	require.True(t, errors.Is(c.Register(cfg), di.ErrNilItem))
	assert.Equal(t, 0, c.Len())
}

// TestRegisterX_NilContainerPanics verifies the Register* helpers need a container.
func TestRegisterX_NilContainerPanics(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, di.ErrNilContainer, func() {
		di.RegisterConfig[int](nil, "CONFIG", 1)
	})
}

// TestManifest_Snapshot verifies Manifest copies the registry and exposes kinds
// and extracted values.
func TestManifest_Snapshot(t *testing.T) {
	t.Parallel()

	c := di.New()
	di.RegisterConfig(c, "CONFIG", decoration{Marker: "##"})

	m := c.Manifest()
	di.RegisterConfig(c, "LATER", 1)

	assert.Equal(t, []string{"CONFIG"}, m.Keys())

	kind, ok := m.Kind("CONFIG")
	require.True(t, ok)
	assert.Equal(t, di.KindConfig, kind)

	v, ok := m.Extract("CONFIG")
	require.True(t, ok)
	assert.Equal(t, decoration{Marker: "##"}, v)

	_, ok = m.Kind("LATER")
	assert.False(t, ok)
	_, ok = m.Extract("LATER")
	assert.False(t, ok)
}

// TestExtract verifies items normalize to their consumable form and plain values
// pass through.
func TestExtract(t *testing.T) {
	t.Parallel()

	c := di.New()
	cfg := di.RegisterConfig(c, "CONFIG", "value")
	fn := di.RegisterFunction(c, "double", nil, func(n int, _ di.DependencySet) int { return n * 2 })
	comp := di.RegisterComponent(c, "Comp", nil, func(w io.Writer, p string, _ di.DependencySet) error {
		_, err := io.WriteString(w, "<"+p+">")
		return err
	})
	dyn := di.RegisterDynamicFunction(c, "sum", nil, func(a, b int) int { return a + b })

	assert.Equal(t, "value", di.Extract(cfg))
	assert.Equal(t, 42, di.Extract(42))

	double, ok := di.Extract(fn).(func(int) int)
	require.True(t, ok)
	assert.Equal(t, 8, double(4))

	render, ok := di.Extract(comp).(func(io.Writer, string) error)
	require.True(t, ok)
	var sb strings.Builder
	require.NoError(t, render(&sb, "x"))
	assert.Equal(t, "<x>", sb.String())

	sum, ok := di.Extract(dyn).(func(...any) ([]any, error))
	require.True(t, ok)
	out, err := sum(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{3}, out)
}
