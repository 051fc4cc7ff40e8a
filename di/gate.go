package di

import (
	"context"
	"io"
	"net/http"
	"sync"
)

// GateState is the readiness of a mounted Gate.
type GateState int

const (
	GatePending GateState = iota
	GateReady
)

// String implements fmt.Stringer.
func (s GateState) String() string {
	switch s {
	case GatePending:
		return "pending"
	case GateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Renderer writes output to w.
type Renderer func(w io.Writer) error

// Initializer produces gates that hold back rendering until a bootstrap
// completes.
type Initializer struct {
	bootstrap func(context.Context) error
	logger    Logger
}

// InitializerFactory creates an Initializer for bootstrap.
func InitializerFactory(bootstrap func(context.Context) error, opts ...Option) *Initializer {
	o := newOptions(opts)
	return &Initializer{bootstrap: bootstrap, logger: o.logger}
}

// Mount starts the bootstrap in its own goroutine and returns the gate that
// tracks it. Each Mount runs bootstrap again.
func (i *Initializer) Mount(ctx context.Context) *Gate {
	g := &Gate{
		logger: i.logger,
		done:   make(chan struct{}),
	}
	go g.run(ctx, i.bootstrap)
	return g
}

// Gate is Pending until its bootstrap returns nil, then Ready for good.
// A failed bootstrap leaves it Pending with Err set.
type Gate struct {
	logger Logger

	mu        sync.RWMutex
	state     GateState
	err       error
	unmounted bool

	done chan struct{}
}

func (g *Gate) run(ctx context.Context, bootstrap func(context.Context) error) {
	defer close(g.done)

	var err error
	if bootstrap != nil {
		err = bootstrap(ctx)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unmounted {
		return
	}
	if err != nil {
		g.err = err
		g.logger.Error("di: container initialization failed", "error", err)
		return
	}
	g.state = GateReady
}

// State returns the current state.
func (g *Gate) State() GateState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Ready reports whether the gate is Ready.
func (g *Gate) Ready() bool { return g.State() == GateReady }

// Err returns the bootstrap error, if any.
func (g *Gate) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

// Wait blocks until the bootstrap returns or ctx is done. It returns the
// bootstrap error, or ctx.Err() if ctx finished first.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unmount detaches the gate. A bootstrap completing afterwards no longer
// changes its state.
func (g *Gate) Unmount() {
	g.mu.Lock()
	g.unmounted = true
	g.mu.Unlock()
}

// Render writes children once Ready, fallback otherwise. A nil renderer writes
// nothing.
func (g *Gate) Render(w io.Writer, children, fallback Renderer) error {
	r := fallback
	if g.Ready() {
		r = children
	}
	if r == nil {
		return nil
	}
	return r(w)
}

// Middleware returns HTTP middleware that serves fallback until the gate is
// Ready. Without a fallback it answers 503 Service Unavailable.
func (g *Gate) Middleware(fallback http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.Ready() {
				next.ServeHTTP(w, r)
				return
			}
			if fallback != nil {
				fallback.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
}
