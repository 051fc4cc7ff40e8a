package di_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sghaida/eyeosee/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinWithMarker(sep string, parts []string, deps di.DependencySet) (string, error) {
	cfg, err := di.TryUse[decoration](deps, "CONFIG")
	if err != nil {
		return "", err
	}
	return cfg.Marker + strings.Join(parts, sep) + cfg.Marker, nil
}

// TestDynamicFunction_SplitsArgsAtArityMinusOne verifies positional arguments
// and the optional trailing override bag.
func TestDynamicFunction_SplitsArgsAtArityMinusOne(t *testing.T) {
	t.Parallel()

	c := di.New()
	di.RegisterConfig(c, "CONFIG", decoration{Marker: "*"})
	fn := di.RegisterDynamicFunction(c, "join", []string{"CONFIG"}, joinWithMarker)

	assert.Equal(t, 2, fn.Arity())

	out, err := fn.Invoke("-", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "*a-b*", out[0])
	assert.Nil(t, out[1])

	out, err = fn.Invoke("-", []string{"a", "b"}, di.Overrides{"CONFIG": decoration{Marker: "#"}})
	require.NoError(t, err)
	assert.Equal(t, "#a-b#", out[0])

	out, err = fn.Invoke("-", []string{"a"}, map[string]any{"CONFIG": decoration{Marker: "+"}})
	require.NoError(t, err)
	assert.Equal(t, "+a+", out[0])

	out, err = fn.Invoke("-", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "**", out[0])
}

// TestDynamicFunction_NoDepsAllPositional verifies that without dependencies
// every argument is positional and no override bag is accepted.
func TestDynamicFunction_NoDepsAllPositional(t *testing.T) {
	t.Parallel()

	fn := di.NewDynamicFunction("sum", nil, func(a, b int) int { return a + b })

	out, err := fn.Invoke(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{3}, out)

	_, err = fn.Invoke(1, 2, di.Overrides{})
	var arity di.ArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, di.ArityError{Name: "sum", Want: 2, Got: 3}, arity)
}

// TestDynamicFunction_InvokeErrors covers arity, argument type and override type errors.
func TestDynamicFunction_InvokeErrors(t *testing.T) {
	t.Parallel()

	fn := di.NewDynamicHook("useJoin", []string{"CONFIG"}, joinWithMarker)

	tests := []struct {
		name  string
		args  []any
		check func(t *testing.T, err error)
	}{
		{
			name: "too few",
			args: []any{"-"},
			check: func(t *testing.T, err error) {
				var e di.ArityError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, 2, e.Want)
				assert.Equal(t, 1, e.Got)
			},
		},
		{
			name: "too many",
			args: []any{"-", nil, nil, nil},
			check: func(t *testing.T, err error) {
				var e di.ArityError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, 4, e.Got)
			},
		},
		{
			name: "wrong argument type",
			args: []any{1, []string{}},
			check: func(t *testing.T, err error) {
				var e di.ArgumentTypeError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, 0, e.Index)
				assert.Equal(t, "string", e.Want)
				assert.Equal(t, "int", e.Got)
			},
		},
		{
			name: "nil for non-nillable",
			args: []any{nil, []string{}},
			check: func(t *testing.T, err error) {
				var e di.ArgumentTypeError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, "nil", e.Got)
			},
		},
		{
			name: "bad override bag",
			args: []any{"-", []string{}, "nope"},
			check: func(t *testing.T, err error) {
				var e di.OverridesTypeError
				require.True(t, errors.As(err, &e))
				assert.Equal(t, "string", e.Got)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := fn.Invoke(tt.args...)
			require.Error(t, err)
			assert.Nil(t, out)
			tt.check(t, err)
		})
	}
}

// TestNewDynamicFunction_Panics verifies construction rejects unusable functions.
func TestNewDynamicFunction_Panics(t *testing.T) {
	t.Parallel()

	var nilFn func()

	assert.Panics(t, func() { di.NewDynamicFunction("x", nil, 42) })
	assert.Panics(t, func() { di.NewDynamicFunction("x", nil, nilFn) })
	assert.Panics(t, func() { di.NewDynamicFunction("x", nil, func(...int) {}) })
	assert.Panics(t, func() { di.NewDynamicFunction("x", []string{"CONFIG"}, func(string) {}) })
	assert.NotPanics(t, func() { di.NewDynamicFunction("x", nil, func(di.DependencySet) {}) })
}
