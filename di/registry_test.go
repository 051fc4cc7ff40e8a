package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// overlay / buildDependencies
// -----------------------------------------------------------------------------

// TestBuildDependencies_Precedence verifies per key: a present non-nil override
// wins, else the registry value, else the key is absent.
func TestBuildDependencies_Precedence(t *testing.T) {
	t.Parallel()

	var nilFn func()
	var nilPtr *int

	registry := mapResolver{
		"a": "registry-a",
		"b": "registry-b",
		"c": "registry-c",
		"d": "registry-d",
	}

	tests := []struct {
		name      string
		overrides Overrides
		key       string
		want      any
		wantOK    bool
	}{
		{name: "override wins", overrides: Overrides{"a": "override-a"}, key: "a", want: "override-a", wantOK: true},
		{name: "registry when not overridden", overrides: Overrides{"a": "override-a"}, key: "b", want: "registry-b", wantOK: true},
		{name: "nil override falls through", overrides: Overrides{"c": nil}, key: "c", want: "registry-c", wantOK: true},
		{name: "typed nil func falls through", overrides: Overrides{"d": nilFn}, key: "d", want: "registry-d", wantOK: true},
		{name: "typed nil pointer falls through", overrides: Overrides{"d": nilPtr}, key: "d", want: "registry-d", wantOK: true},
		{name: "zero value override wins", overrides: Overrides{"a": ""}, key: "a", want: "", wantOK: true},
		{name: "override only key", overrides: Overrides{"x": 1}, key: "x", want: 1, wantOK: true},
		{name: "absent", overrides: nil, key: "missing", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set := buildDependencies(overlay{overrides: tt.overrides, registry: registry}, []string{tt.key})
			got, ok := set.Get(tt.key)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, set.Has(tt.key))
		})
	}
}

// TestBuildDependencies_OrderAndDuplicates verifies keys keep declaration order,
// duplicates collapse and unresolved keys are dropped.
func TestBuildDependencies_OrderAndDuplicates(t *testing.T) {
	t.Parallel()

	r := mapResolver{"b": 2, "a": 1}
	set := buildDependencies(r, []string{"b", "missing", "a", "b"})

	assert.Equal(t, []string{"b", "a"}, set.Keys())
	assert.Equal(t, 2, set.Len())

	keys := set.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, set.Keys())
}

// TestOverlay_NilRegistry verifies an unbound lookup resolves overrides only.
func TestOverlay_NilRegistry(t *testing.T) {
	t.Parallel()

	o := overlay{overrides: Overrides{"a": 1}}

	v, ok := o.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = o.Resolve("b")
	assert.False(t, ok)
}

// TestOverlay_DoesNotMutateRegistry verifies overrides never leak into the registry.
func TestOverlay_DoesNotMutateRegistry(t *testing.T) {
	t.Parallel()

	c := New()
	RegisterConfig(c, "CONFIG", "registry")

	set := c.resolve("check", []string{"CONFIG"}, Overrides{"CONFIG": "override"})
	got, _ := set.Get("CONFIG")
	assert.Equal(t, "override", got)

	it, ok := c.Get("CONFIG")
	require.True(t, ok)
	assert.Equal(t, "registry", Extract(it))
}

// TestNewDependencySet verifies a set built from a map skips absent values and
// orders keys lexically.
func TestNewDependencySet(t *testing.T) {
	t.Parallel()

	var nilMap map[string]int
	set := NewDependencySet(map[string]any{"b": 2, "a": 1, "nil": nil, "nilMap": nilMap})

	assert.Equal(t, []string{"a", "b"}, set.Keys())
	assert.False(t, set.Has("nil"))
	assert.False(t, set.Has("nilMap"))
}

//
// -----------------------------------------------------------------------------
// mergeOverrides / isAbsent
// -----------------------------------------------------------------------------

// TestMergeOverrides verifies later bags win per key.
func TestMergeOverrides(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mergeOverrides(nil))

	one := Overrides{"a": 1}
	assert.Equal(t, one, mergeOverrides([]Overrides{one}))

	got := mergeOverrides([]Overrides{{"a": 1, "b": 1}, nil, {"b": 2}})
	assert.Equal(t, Overrides{"a": 1, "b": 2}, got)
}

// TestIsAbsent covers untyped and typed nils of every nillable kind.
func TestIsAbsent(t *testing.T) {
	t.Parallel()

	var (
		fn  func()
		ptr *int
		m   map[string]int
		s   []int
		ch  chan int
		err error
	)

	assert.True(t, isAbsent(nil))
	assert.True(t, isAbsent(fn))
	assert.True(t, isAbsent(ptr))
	assert.True(t, isAbsent(m))
	assert.True(t, isAbsent(s))
	assert.True(t, isAbsent(ch))
	assert.True(t, isAbsent(err))

	assert.False(t, isAbsent(0))
	assert.False(t, isAbsent(""))
	assert.False(t, isAbsent(false))
	assert.False(t, isAbsent([]int{}))
	assert.False(t, isAbsent(func() {}))
}
