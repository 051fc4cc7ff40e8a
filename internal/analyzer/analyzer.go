// Package analyzer discovers container items declared in Go source files.
//
// The scan is syntactic: an eligible export is an exported package-level var
// initialized with one of the runtime's New*/Register* constructors, whose
// dependency key is a string literal or a same-file string constant.
package analyzer

import (
	"context"
	"fmt"
	"go/token"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sghaida/eyeosee/di"
	"github.com/sghaida/eyeosee/internal/pkg/logging"
)

// Options configures one analysis.
type Options struct {
	// Root is the directory patterns are resolved against.
	Root string

	// Includes and Excludes are doublestar patterns relative to Root.
	Includes []string
	Excludes []string

	// RuntimeModule is the import path of the di runtime package.
	RuntimeModule string

	// GoMod is the go.mod used to compute import paths. Empty means: walk up
	// from Root.
	GoMod string

	// Output is the generated file. It is never scanned; files in its
	// directory are reported as Local.
	Output string

	// Concurrency bounds parallel parsing. Zero means GOMAXPROCS.
	Concurrency int
}

// Export is one eligible exported declaration.
type Export struct {
	// Name is the exported identifier, e.g. DecorateMessage.
	Name string

	// Alias is the unique identifier the generated file uses for it.
	Alias string

	// DependencyName is the key the item registers under.
	DependencyName string

	Kind di.Kind

	Line int
}

// FileExports is the analysis result for one source file.
type FileExports struct {
	// Path is the absolute file path.
	Path string

	// Rel is Path relative to Root, slash separated.
	Rel string

	// Dir is the absolute directory of the file.
	Dir string

	PackageName string

	// ImportPath is the package import path; empty for Local files and files
	// that could not be placed in the module.
	ImportPath string

	// Local reports whether the file lives in the output's directory.
	Local bool

	Exports []Export
}

// Module describes the Go module the analysis ran in.
type Module struct {
	Root string
	Path string
}

// Result is the outcome of Analyze. Files keeps discovery order and includes
// files with zero exports.
type Result struct {
	Root   string
	Module Module
	Files  []FileExports
}

// Exports returns the number of eligible exports across all files.
func (r *Result) Exports() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Exports)
	}
	return n
}

// Contributing returns the files with at least one export.
func (r *Result) Contributing() []FileExports {
	out := make([]FileExports, 0, len(r.Files))
	for _, f := range r.Files {
		if len(f.Exports) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// Analyzer runs analyses.
type Analyzer struct {
	opts   Options
	logger logging.Logger
}

// New creates an Analyzer.
func New(opts Options, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Analyzer{opts: opts, logger: logger}
}

// Analyze expands the patterns, parses every file and collects the eligible
// exports. A file that cannot be parsed, belongs to package main or lies
// outside the module yields zero exports and a warning; the run continues.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	root, err := filepath.Abs(a.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("analyzer: resolve root: %w", err)
	}

	var outputAbs, outputDir string
	if a.opts.Output != "" {
		if outputAbs, err = filepath.Abs(a.opts.Output); err != nil {
			return nil, fmt.Errorf("analyzer: resolve output: %w", err)
		}
		outputDir = filepath.Dir(outputAbs)
	}

	mod, err := a.module(root)
	if err != nil {
		return nil, err
	}

	files, err := expandPatterns(root, a.opts.Includes, a.opts.Excludes, outputAbs)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	parsed := make([]parsedFile, len(files))

	g, gctx := errgroup.WithContext(ctx)
	limit := a.opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(root, filepath.FromSlash(rel))
			local := outputDir != "" && filepath.Dir(path) == outputDir
			parsed[i] = parseFile(fset, path, a.opts.RuntimeModule, local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Root: root, Module: mod, Files: make([]FileExports, 0, len(files))}
	pkgConsts := map[string]map[string]string{}
	next := 0
	for i, rel := range files {
		p := parsed[i]
		fe := FileExports{
			Path:        p.path,
			Rel:         rel,
			Dir:         filepath.Dir(p.path),
			PackageName: p.pkg,
		}
		fe.Local = outputDir != "" && fe.Dir == outputDir

		switch {
		case p.err != nil:
			a.logger.Warn("analyzer: cannot parse file, skipping its exports", "file", rel, "error", p.err)
			p.decls = nil
		case p.pkg == "main" && !fe.Local && len(p.decls) > 0:
			a.logger.Warn("analyzer: package main cannot be imported, skipping its exports", "file", rel)
			p.decls = nil
		}

		if !fe.Local && len(p.decls) > 0 {
			ip, err := importPathForDir(mod, fe.Dir)
			if err != nil {
				a.logger.Warn("analyzer: file is outside the module, skipping its exports", "file", rel, "error", err)
				p.decls = nil
			} else {
				fe.ImportPath = ip
			}
		}

		decls := p.decls[:0:0]
		for _, d := range p.decls {
			if d.keyConst != "" {
				consts, ok := pkgConsts[fe.Dir]
				if !ok {
					consts = packageConsts(fset, fe.Dir, p.pkg)
					pkgConsts[fe.Dir] = consts
				}
				key, ok := consts[d.keyConst]
				if !ok {
					p.skipped = append(p.skipped, d.name)
					continue
				}
				d.key = key
			}
			decls = append(decls, d)
		}

		for _, d := range decls {
			fe.Exports = append(fe.Exports, Export{
				Name:           d.name,
				Alias:          fmt.Sprintf("%s_%d", lowerFirst(d.name), next),
				DependencyName: d.key,
				Kind:           d.kind,
				Line:           d.line,
			})
			next++
		}
		for _, s := range p.skipped {
			a.logger.Warn("analyzer: dependency key is not a string constant, skipping export",
				"file", rel, "name", s)
		}

		res.Files = append(res.Files, fe)
	}

	a.logger.Debug("analyzer: done", "files", len(res.Files), "exports", next)
	return res, nil
}

func (a *Analyzer) module(root string) (Module, error) {
	if a.opts.GoMod != "" {
		return readModule(a.opts.GoMod)
	}
	mod, err := findModule(root)
	if err != nil {
		a.logger.Warn("analyzer: no go.mod found, only local files can contribute", "root", root, "error", err)
		return Module{}, nil
	}
	return mod, nil
}
