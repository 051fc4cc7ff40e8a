// Package eyeosee is a small dependency container for Go with a code generator
// that wires it.
//
// Items (configs, functions, hooks and components) are declared as exported
// package variables with the constructors of the di package:
//
//	var Config = di.NewConfig("CONFIG", Decoration{Left: "**", Right: "**"})
//
// The eyeosee command scans the sources for such declarations and writes one
// container file that imports them, maps every dependency key to its item and
// registers them all in a single bootstrap:
//
//	eyeosee generate --root . --container-path wiring/container.gen.go
//	eyeosee watch
//
// Layout:
//   - di: the runtime (container, items, resolution, bootstrap, readiness gate)
//   - cmd/eyeosee: the generator CLI
//   - internal/analyzer: source scanning
//   - internal/generator: container file rendering
//   - internal/watch: regeneration on file changes
//   - examples/messages: an end-to-end project using a generated container
package eyeosee
