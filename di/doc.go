// Package di is the runtime half of eyeosee: a named container of configs,
// components, functions and hooks whose dependencies are resolved by key at
// call time.
//
// Items are usually declared as package-level variables and registered by a
// generated wiring file (see cmd/eyeosee):
//
//	var DecorateMessage = di.NewFunction("decorateMessage", []string{"CONFIG"},
//		func(msg string, deps di.DependencySet) string {
//			cfg, _ := di.Use[Decoration](deps, "CONFIG")
//			return cfg.Marker + " " + msg + " " + cfg.Marker
//		})
//
// They can also be registered directly on a container:
//
//	c := di.New()
//	di.RegisterConfig(c, "CONFIG", Decoration{Marker: "**"})
//
// # Resolution
//
// Every call or render builds a fresh DependencySet. For each declared key the
// per-call Overrides win when present and non-nil, then the registry, and keys
// found in neither are simply absent. Resolution is lenient; use TryUse or
// MustUse to fail at the point of use.
//
// Overrides apply to one call only. Dependencies extracted from the set resolve
// their own dependencies from the registry.
//
// # Readiness
//
// InitializerFactory wraps a bootstrap (typically the generated InitContainer)
// and hands out Gates that render a fallback, or answer 503 over HTTP, until the
// bootstrap has completed.
//
// # Import
//
//	"github.com/sghaida/eyeosee/di"
package di
