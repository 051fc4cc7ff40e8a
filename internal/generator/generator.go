// Package generator writes the container wiring file: a Go file that imports
// every package declaring container items, exposes them as a manifest and
// registers them on a container in one bootstrap.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sghaida/eyeosee/internal/analyzer"
	"github.com/sghaida/eyeosee/internal/pkg/apperrors"
	"github.com/sghaida/eyeosee/internal/pkg/logging"
	"github.com/sghaida/eyeosee/internal/pkg/metrics"
)

const tracerName = "github.com/sghaida/eyeosee/internal/generator"

// Options configures the generator. Relative paths are resolved against the
// working directory.
type Options struct {
	Root          string
	Includes      []string
	Excludes      []string
	GoMod         string
	Output        string
	RuntimeModule string

	// Package overrides the package clause of the output.
	Package string
}

// Result summarizes one run.
type Result struct {
	Output string

	// Files is the number of scanned files.
	Files int

	// Contributing is the number of files with at least one export.
	Contributing int

	// Items is the number of exports in the output.
	Items int

	// Changed reports whether the output was rewritten.
	Changed bool

	Duration time.Duration
}

// Generator produces the container file.
type Generator struct {
	opts    Options
	logger  logging.Logger
	metrics metrics.Collector
	tracer  trace.Tracer
}

// New creates a Generator. nil logger and collector default to no-ops.
func New(opts Options, logger logging.Logger, collector metrics.Collector) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if collector == nil {
		collector = metrics.NewNopCollector()
	}
	return &Generator{
		opts:    opts,
		logger:  logger,
		metrics: collector,
		tracer:  otel.Tracer(tracerName),
	}
}

// Generate analyzes the sources and writes the container file if its content
// changed. When the output does not exist yet, a placeholder with an empty
// manifest is written first so packages importing it keep compiling.
func (g *Generator) Generate(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "generate", trace.WithAttributes(attribute.String("output", g.opts.Output)))
	defer span.End()

	res = &Result{Output: g.opts.Output}
	defer func() {
		res.Duration = time.Since(start)
		g.metrics.RecordGenerate(metrics.GenerateRun{
			Output:   g.opts.Output,
			Files:    res.Files,
			Items:    res.Items,
			Duration: res.Duration,
			Changed:  res.Changed,
			Success:  err == nil,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	output, err := filepath.Abs(g.opts.Output)
	if err != nil {
		return res, fmt.Errorf("generator: resolve output: %w", err)
	}
	outDir := filepath.Dir(output)

	pkg, err := packageName(g.opts.Package, output)
	if err != nil {
		return res, err
	}

	if err := g.ensurePlaceholder(output, pkg); err != nil {
		return res, err
	}

	analysis, err := g.analyze(ctx, output)
	if err != nil {
		return res, err
	}
	res.Files = len(analysis.Files)

	src, items, err := g.render(ctx, analysis, outDir, pkg)
	if err != nil {
		return res, err
	}
	res.Items = items
	res.Contributing = len(analysis.Contributing())

	changed, err := g.write(ctx, output, src)
	if err != nil {
		return res, err
	}
	res.Changed = changed

	g.logger.Info("container generated",
		"output", g.opts.Output,
		"files", res.Files,
		"contributing", res.Contributing,
		"items", res.Items,
		"changed", res.Changed,
	)
	span.SetAttributes(attribute.Int("items", res.Items), attribute.Bool("changed", res.Changed))
	return res, nil
}

func (g *Generator) analyze(ctx context.Context, output string) (*analyzer.Result, error) {
	ctx, span := g.tracer.Start(ctx, "analyze")
	defer span.End()

	a := analyzer.New(analyzer.Options{
		Root:          g.opts.Root,
		Includes:      g.opts.Includes,
		Excludes:      g.opts.Excludes,
		RuntimeModule: g.opts.RuntimeModule,
		GoMod:         g.opts.GoMod,
		Output:        output,
	}, g.logger)

	res, err := a.Analyze(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("files", len(res.Files)), attribute.Int("exports", res.Exports()))
	return res, nil
}

func (g *Generator) render(ctx context.Context, analysis *analyzer.Result, outDir, pkg string) ([]byte, int, error) {
	_, span := g.tracer.Start(ctx, "render")
	defer span.End()

	data, dups := buildFileData(analysis, outDir, pkg, g.opts.RuntimeModule)
	for _, d := range dups {
		g.logger.Warn("duplicate dependency key, last declaration wins",
			"key", d.key, "previous", d.previous, "winner", d.winner)
	}

	src, err := renderSource(data)
	if err != nil {
		span.RecordError(err)
		return nil, 0, err
	}
	return src, analysis.Exports(), nil
}

func (g *Generator) write(ctx context.Context, output string, src []byte) (bool, error) {
	_, span := g.tracer.Start(ctx, "write")
	defer span.End()

	existing, err := os.ReadFile(output)
	if err == nil && bytes.Equal(existing, src) {
		return false, nil
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		span.RecordError(err)
		return false, apperrors.NewAppError(apperrors.ErrGenerateWrite, "cannot write "+g.opts.Output, err)
	}
	return true, nil
}

// ensurePlaceholder writes an empty container file when output is missing.
func (g *Generator) ensurePlaceholder(output, pkg string) error {
	_, err := os.Stat(output)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewAppError(apperrors.ErrGeneratePlaceholder, "cannot stat "+g.opts.Output, err)
	}

	src, err := renderSource(fileData{Package: pkg, Hash: sha256Hex(nil), RuntimeModule: g.opts.RuntimeModule})
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrGeneratePlaceholder, "cannot render placeholder", err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return apperrors.NewAppError(apperrors.ErrGeneratePlaceholder, "cannot create output directory", err)
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return apperrors.NewAppError(apperrors.ErrGeneratePlaceholder, "cannot write placeholder "+g.opts.Output, err)
	}
	g.logger.Debug("placeholder written", "output", g.opts.Output)
	return nil
}

func renderSource(data fileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := containerTpl.Execute(&buf, data); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrGenerateRender, "cannot execute template", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrGenerateFormat, "generated source does not format", err)
	}
	return src, nil
}
