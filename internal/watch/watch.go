// Package watch regenerates the container file whenever a scanned source file
// changes.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/sghaida/eyeosee/internal/generator"
	"github.com/sghaida/eyeosee/internal/pkg/apperrors"
	"github.com/sghaida/eyeosee/internal/pkg/logging"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Runner runs one generation.
type Runner interface {
	Generate(ctx context.Context) (*generator.Result, error)
}

// Options configures a Watcher.
type Options struct {
	Root     string
	Includes []string
	Excludes []string

	// Output is ignored so that writing it does not trigger another run.
	Output string

	Debounce time.Duration
}

// Watcher runs the generator once, then again after every burst of relevant
// file events. Runs never overlap.
type Watcher struct {
	opts   Options
	runner Runner
	logger logging.Logger

	// ready, when set, is closed once the initial run is done and the
	// directories are watched.
	ready chan struct{}
}

// New creates a Watcher.
func New(opts Options, runner Runner, logger logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts, runner: runner, logger: logger}
}

// Run blocks until ctx is done. Generation failures are logged and the loop
// keeps going; only setup failures are returned.
func (w *Watcher) Run(ctx context.Context) error {
	root, err := filepath.Abs(w.opts.Root)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrWatchSetup, "cannot resolve root", err)
	}
	output := ""
	if w.opts.Output != "" {
		if output, err = filepath.Abs(w.opts.Output); err != nil {
			return apperrors.NewAppError(apperrors.ErrWatchSetup, "cannot resolve output", err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrWatchSetup, "cannot create file watcher", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, root); err != nil {
		return apperrors.NewAppError(apperrors.ErrWatchSetup, "cannot watch "+w.opts.Root, err)
	}

	w.generate(ctx)
	if w.ready != nil {
		close(w.ready)
	}
	w.logger.Info("watching for changes", "root", w.opts.Root, "debounce", w.opts.Debounce.String())

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fsw, ev.Name); err != nil {
						w.logger.Warn("cannot watch new directory", "dir", ev.Name, "error", err)
					}
					// Files created before the directory was watched.
					pending = w.reset(timer, pending)
					continue
				}
			}
			if !w.relevant(root, output, ev) {
				continue
			}
			w.logger.Debug("source changed", "file", ev.Name, "op", ev.Op.String())
			pending = w.reset(timer, pending)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-timer.C:
			pending = false
			w.generate(ctx)
		}
	}
}

func (w *Watcher) reset(timer *time.Timer, pending bool) bool {
	if pending && !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(w.opts.Debounce)
	return true
}

func (w *Watcher) generate(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	res, err := w.runner.Generate(ctx)
	if err != nil {
		w.logger.Error("generation failed", "error", err)
		return
	}
	if res != nil && res.Changed {
		w.logger.Info("container updated", "output", res.Output, "items", res.Items)
	}
}

// relevant reports whether ev concerns a scanned source file.
func (w *Watcher) relevant(root, output string, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil || name == output {
		return false
	}
	rel, err := filepath.Rel(root, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, ex := range w.opts.Excludes {
		if ok, _ := doublestar.Match(ex, rel); ok {
			return false
		}
	}
	includes := w.opts.Includes
	if len(includes) == 0 {
		includes = []string{"**/*.go"}
	}
	for _, in := range includes {
		if ok, _ := doublestar.Match(in, rel); ok {
			return true
		}
	}
	return false
}

// addTree watches dir and every directory below it, skipping hidden ones.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("cannot watch directory", "dir", path, "error", err)
		}
		return nil
	})
}
