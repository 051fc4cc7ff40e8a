package generator

import "text/template"

type goImport struct {
	Name string
	Path string
}

type aliasVar struct {
	Alias string
	Ref   string
}

type sourceGroup struct {
	Source string
	Vars   []aliasVar
}

type manifestEntry struct {
	Key   string
	Alias string
}

type moduleEntry struct {
	Source  string
	Aliases []string
}

type fileData struct {
	Package       string
	Hash          string
	RuntimeModule string
	Imports       []goImport
	Groups        []sourceGroup
	Manifest      []manifestEntry
	Modules       []moduleEntry
}

var containerTpl = template.Must(template.New("container").Parse(`// Code generated by eyeosee; DO NOT EDIT.
// Sources-SHA256: {{.Hash}}

package {{.Package}}

import (
	"context"

	di "{{.RuntimeModule}}"
{{- range .Imports }}
	{{- if .Name }}
	{{ .Name }} "{{ .Path }}"
	{{- else }}
	"{{ .Path }}"
	{{- end }}
{{- end }}
)
{{- if .Groups }}

var (
{{- range $i, $g := .Groups }}
	{{- if $i }}
{{ end }}
	// {{ $g.Source }}
	{{- range $g.Vars }}
	{{ .Alias }} = {{ .Ref }}
	{{- end }}
{{- end }}
)
{{- end }}

// ContainerDependencies maps every discovered dependency key to its item.
var ContainerDependencies = di.Manifest{
{{- range .Manifest }}
	{{ printf "%q" .Key }}: {{ .Alias }},
{{- end }}
}

// Container holds every registered item.
var Container = di.New()

// RegisterComponent registers a component on Container.
func RegisterComponent[P any](name string, deps []string, impl di.ComponentImpl[P]) *di.Component[P] {
	return di.RegisterComponent(Container, name, deps, impl)
}

// RegisterHook registers a hook on Container.
func RegisterHook[A, R any](name string, deps []string, fn di.FunctionImpl[A, R]) *di.Function[A, R] {
	return di.RegisterHook(Container, name, deps, fn)
}

// RegisterFunction registers a function on Container.
func RegisterFunction[A, R any](name string, deps []string, fn di.FunctionImpl[A, R]) *di.Function[A, R] {
	return di.RegisterFunction(Container, name, deps, fn)
}

// RegisterConfig registers a config value on Container.
func RegisterConfig[T any](name string, value T) *di.Config[T] {
	return di.RegisterConfig(Container, name, value)
}

var modules = []di.Module{
{{- range .Modules }}
	{Source: {{ printf "%q" .Source }}, Items: []di.Item{ {{- range $i, $a := .Aliases }}{{ if $i }}, {{ end }}{{ $a }}{{ end -}} }},
{{- end }}
}

var bootstrap = di.NewBootstrap(Container, modules...)

// InitContainer registers every module that has not been registered yet.
func InitContainer(ctx context.Context) error {
	return bootstrap.Run(ctx)
}

// ContainerInitializer gates rendering until InitContainer has completed.
var ContainerInitializer = di.InitializerFactory(InitContainer)
`))
