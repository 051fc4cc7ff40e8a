package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRuntime = "example.com/proj/di"

type projHarness struct {
	t   *testing.T
	dir string
}

func newProj(t *testing.T) *projHarness {
	t.Helper()
	p := &projHarness{t: t, dir: t.TempDir()}
	p.write("go.mod", "module example.com/proj\n\ngo 1.22\n")
	return p
}

func (p *projHarness) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, filepath.FromSlash(rel))
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (p *projHarness) path(rel string) string {
	return filepath.Join(p.dir, filepath.FromSlash(rel))
}

func (p *projHarness) options() Options {
	return Options{
		Root:          p.dir,
		Includes:      []string{"**/*.go"},
		Excludes:      []string{"**/*_test.go"},
		RuntimeModule: testRuntime,
		Output:        p.path("wiring/container.gen.go"),
	}
}

// writeGreet writes a small config/function/hook/component project.
func writeGreet(p *projHarness) {
	p.write("greet/config.go", `package greet

import di "example.com/proj/di"

const configKey = "CONFIG"

type Decoration struct{ Marker string }

var Config = di.NewConfig(configKey, Decoration{Marker: "**"})
`)
	p.write("greet/decorate.go", `package greet

import "example.com/proj/di"

var DecorateMessage = di.NewFunction("decorateMessage", []string{"CONFIG"},
	func(msg string, deps di.DependencySet) string { return msg })

var UseDecoratedMessage = di.NewHook[string, string]("useDecoratedMessage", []string{"decorateMessage"},
	func(msg string, deps di.DependencySet) string { return msg })
`)
	p.write("ui/decorator.go", `package ui

import (
	"io"

	rt "example.com/proj/di"
)

type Props struct{ Message string }

var MessageDecorator = rt.NewComponent("MessageDecorator", []string{"useDecoratedMessage"},
	func(w io.Writer, p Props, deps rt.DependencySet) error { return nil })
`)
}
