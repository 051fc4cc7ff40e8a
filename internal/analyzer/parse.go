package analyzer

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sghaida/eyeosee/di"
)

// constructor describes a runtime function that declares an item.
type constructor struct {
	kind di.Kind

	// keyArg is the index of the dependency key argument.
	keyArg int
}

var constructors = map[string]constructor{
	"NewConfig":          {di.KindConfig, 0},
	"NewComponent":       {di.KindComponent, 0},
	"NewFunction":        {di.KindFunction, 0},
	"NewHook":            {di.KindHook, 0},
	"NewDynamicFunction": {di.KindFunction, 0},
	"NewDynamicHook":     {di.KindHook, 0},

	"RegisterConfig":          {di.KindConfig, 1},
	"RegisterComponent":       {di.KindComponent, 1},
	"RegisterFunction":        {di.KindFunction, 1},
	"RegisterHook":            {di.KindHook, 1},
	"RegisterDynamicFunction": {di.KindFunction, 1},
	"RegisterDynamicHook":     {di.KindHook, 1},
}

// localConstructors are the entry points of the generated container file.
// Files in the output's package call them unqualified, key first.
var localConstructors = map[string]constructor{
	"RegisterConfig":    {di.KindConfig, 0},
	"RegisterComponent": {di.KindComponent, 0},
	"RegisterFunction":  {di.KindFunction, 0},
	"RegisterHook":      {di.KindHook, 0},
}

type decl struct {
	name string
	key  string

	// keyConst names a constant declared in another file of the package; key
	// is empty until it is resolved.
	keyConst string

	kind di.Kind
	line int
}

type parsedFile struct {
	path string
	pkg  string

	decls []decl

	// skipped holds eligible exports whose key could not be resolved.
	skipped []string

	err error
}

// parseFile parses one file and collects its eligible declarations in source
// order. Local files also match the unqualified entry points of the generated
// container file.
func parseFile(fset *token.FileSet, filename, runtimeModule string, local bool) parsedFile {
	out := parsedFile{path: filename}

	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		out.err = err
		return out
	}
	out.pkg = f.Name.Name

	alias := runtimeAlias(f, runtimeModule)
	if alias == "" && !local {
		return out
	}
	consts := stringConsts(f)

	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != len(vs.Values) {
				continue
			}
			for i, ident := range vs.Names {
				if ident.Name == "_" || !ast.IsExported(ident.Name) {
					continue
				}
				ctor, call, ok := matchConstructor(vs.Values[i], alias, local)
				if !ok || len(call.Args) <= ctor.keyArg {
					continue
				}
				d := decl{
					name: ident.Name,
					kind: ctor.kind,
					line: fset.Position(ident.Pos()).Line,
				}
				arg := call.Args[ctor.keyArg]
				if key, ok := resolveKey(arg, consts); ok {
					d.key = key
				} else if id, ok := arg.(*ast.Ident); ok {
					d.keyConst = id.Name
				} else {
					out.skipped = append(out.skipped, ident.Name)
					continue
				}
				out.decls = append(out.decls, d)
			}
		}
	}
	return out
}

// runtimeAlias returns the name the file refers to the runtime package by, or
// "" when the file does not import it.
func runtimeAlias(f *ast.File, runtimeModule string) string {
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != runtimeModule {
			continue
		}
		if imp.Name != nil {
			switch imp.Name.Name {
			case "_", ".":
				return ""
			}
			return imp.Name.Name
		}
		return path.Base(p)
	}
	return ""
}

// matchConstructor reports whether expr is a call of <alias>.<constructor>, or
// of an unqualified generated entry point when local is set, possibly with
// explicit type arguments.
func matchConstructor(expr ast.Expr, alias string, local bool) (constructor, *ast.CallExpr, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return constructor{}, nil, false
	}

	fun := call.Fun
	switch x := fun.(type) {
	case *ast.IndexExpr:
		fun = x.X
	case *ast.IndexListExpr:
		fun = x.X
	}

	if id, ok := fun.(*ast.Ident); ok {
		if !local {
			return constructor{}, nil, false
		}
		ctor, ok := localConstructors[id.Name]
		return ctor, call, ok
	}

	sel, ok := fun.(*ast.SelectorExpr)
	if !ok || alias == "" {
		return constructor{}, nil, false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != alias {
		return constructor{}, nil, false
	}
	ctor, ok := constructors[sel.Sel.Name]
	return ctor, call, ok
}

// stringConsts collects the file's package-level untyped or typed constants
// initialized with a string literal.
func stringConsts(f *ast.File) map[string]string {
	out := map[string]string{}
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != len(vs.Values) {
				continue
			}
			for i, ident := range vs.Names {
				if s, ok := stringLit(vs.Values[i]); ok {
					out[ident.Name] = s
				}
			}
		}
	}
	return out
}

// packageConsts collects the string constants of every non-test Go file of
// package pkg in dir.
func packageConsts(fset *token.FileSet, dir, pkg string) map[string]string {
	out := map[string]string{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil || f.Name.Name != pkg {
			continue
		}
		for k, v := range stringConsts(f) {
			out[k] = v
		}
	}
	return out
}

func resolveKey(expr ast.Expr, consts map[string]string) (string, bool) {
	if s, ok := stringLit(expr); ok {
		return s, true
	}
	if id, ok := expr.(*ast.Ident); ok {
		s, ok := consts[id.Name]
		return s, ok
	}
	return "", false
}

func stringLit(expr ast.Expr) (string, bool) {
	if p, ok := expr.(*ast.ParenExpr); ok {
		return stringLit(p.X)
	}
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
