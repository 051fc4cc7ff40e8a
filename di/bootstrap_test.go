package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sghaida/eyeosee/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModules() []di.Module {
	return []di.Module{
		{Source: "../greet/config", Items: []di.Item{di.NewConfig("CONFIG", decoration{Marker: "**"})}},
		{Source: "../greet/decorate", Items: []di.Item{di.NewFunction("decorateMessage", []string{"CONFIG"}, decorate)}},
	}
}

// TestBootstrap_RegistersModulesOnce verifies every module is registered and
// marked initialized, and that later runs skip it.
func TestBootstrap_RegistersModulesOnce(t *testing.T) {
	t.Parallel()

	c := di.New()
	b := di.NewBootstrap(c, testModules()...)

	assert.False(t, b.Initialized("../greet/config"))
	require.NoError(t, b.Run(context.Background()))

	assert.True(t, b.Initialized("../greet/config"))
	assert.True(t, b.Initialized("../greet/decorate"))
	assert.Equal(t, []string{"CONFIG", "decorateMessage"}, c.Keys())

	// A replacement registered in between survives a second run.
	replacement := di.RegisterConfig(c, "CONFIG", decoration{Marker: "##"})
	require.NoError(t, b.Run(context.Background()))

	got, ok := c.Get("CONFIG")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

// TestBootstrap_ItemsResolveAfterRun verifies bootstrapped items are bound to the
// container.
func TestBootstrap_ItemsResolveAfterRun(t *testing.T) {
	t.Parallel()

	mods := testModules()
	fn := mods[1].Items[0].(*di.Function[string, string])

	c := di.New()
	require.NoError(t, di.NewBootstrap(c, mods...).Run(context.Background()))
	assert.Equal(t, "** hi **", fn.Call("hi"))
}

// TestBootstrap_Errors covers cancellation, nil items and a missing container.
func TestBootstrap_Errors(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := di.New()
		b := di.NewBootstrap(c, testModules()...)
		require.ErrorIs(t, b.Run(ctx), context.Canceled)
		assert.Equal(t, 0, c.Len())
		assert.False(t, b.Initialized("../greet/config"))
	})

	t.Run("nil item", func(t *testing.T) {
		t.Parallel()

		c := di.New()
		b := di.NewBootstrap(c,
			di.Module{Source: "ok", Items: []di.Item{di.NewConfig("A", 1)}},
			di.Module{Source: "broken", Items: []di.Item{nil}},
		)
		err := b.Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, di.ErrNilItem))
		assert.Contains(t, err.Error(), "bootstrap broken")
		assert.True(t, b.Initialized("ok"))
		assert.False(t, b.Initialized("broken"))
	})

	t.Run("nil container", func(t *testing.T) {
		t.Parallel()

		b := di.NewBootstrap(nil, testModules()...)
		require.ErrorIs(t, b.Run(context.Background()), di.ErrNilContainer)
	})
}
