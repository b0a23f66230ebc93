// Package modern implements the engine over a declarative host.Path. The
// host renders destinations and applies their titles itself; this engine
// only mutates the path and forwards length changes.
package modern

import (
	"log/slog"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
)

// Engine drives a host.Path.
type Engine[R comparable] struct {
	path    host.Path[R]
	builder func(R) host.View
	logger  *slog.Logger
	// base is the content installed by SetRoot, if any.
	base    func() host.View
}

// New binds an engine to path. Every length change the path reports,
// including user-driven ones, is forwarded verbatim to onSize.
func New[R comparable](path host.Path[R], builder func(R) host.View, onSize engine.SizeObserver, logger *slog.Logger) *Engine[R] {
	e := &Engine[R]{path: path, builder: builder, logger: logger}
	if onSize != nil {
		path.OnLenChange(func(n int) { onSize(n) })
	}
	return e
}

func (e *Engine[R]) Kind() engine.Kind { return engine.KindModern }

// Mount installs root as the path's base content and returns the path. A
// route installed by SetRoot keeps precedence over root.
func (e *Engine[R]) Mount(root func() host.View) any {
	if e.base != nil {
		root = e.base
	}
	e.path.Mount(root, e.Destination)
	return e.path
}

func (e *Engine[R]) Push(r R) { e.path.Append(r) }

func (e *Engine[R]) Pop() {
	if e.path.Len() > 0 {
		e.path.RemoveLast()
	}
}

func (e *Engine[R]) PopToRoot() { e.path.Reset() }

func (e *Engine[R]) ReplaceStack(routes []R) { e.path.Replace(routes) }

// SetRoot renders r as the permanent base content; only children live on
// the path.
func (e *Engine[R]) SetRoot(r R, children []R) {
	e.base = func() host.View { return e.builder(r) }
	e.path.Mount(e.base, e.Destination)
	e.path.Replace(children)
	e.logger.Debug("modern engine root replaced", "children", len(children))
}

func (e *Engine[R]) Depth() int { return e.path.Len() }

// Destination renders a route on the path.
func (e *Engine[R]) Destination(r R) host.View {
	return e.builder(r)
}
