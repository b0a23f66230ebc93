package router

import (
	"log/slog"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine/legacy"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine/modern"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/google/uuid"
)

// State is the router lifecycle state.
type State int

const (
	StateUninitialized State = iota // No engine yet
	StateMounted                    // Engine selected and pinned
)

func (s State) String() string {
	if s == StateMounted {
		return "mounted"
	}
	return "uninitialized"
}

// Op names a router operation for observers.
type Op string

const (
	OpPush      Op = "push"
	OpPop       Op = "pop"
	OpPopToRoot Op = "pop_to_root"
	OpReplace   Op = "replace_stack"
	OpSetRoot   Op = "set_root"
)

// Observer is notified about router activity. Calls happen on the UI
// context.
type Observer interface {
	EngineSelected(kind engine.Kind)
	Navigated(op Op, depth int)
	Reconciled(from, to int)
}

type nopObserver struct{}

func (nopObserver) EngineSelected(engine.Kind) {}
func (nopObserver) Navigated(Op, int)          {}
func (nopObserver) Reconciled(int, int)        {}

type options struct {
	registry *route.Registry
	observer Observer
	logger   *slog.Logger
}

// Option configures a Router.
type Option func(*options)

// WithRegistry supplies the registry the legacy engine reads styles from and
// Back consults for back predicates.
func WithRegistry(reg *route.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithObserver attaches an observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger replaces the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Router is the navigation state holder. It keeps a logical stack of the
// routes above the root, forwards every operation to exactly one engine,
// and trims the logical stack when the host reports that the user navigated
// back on their own.
//
// The engine is chosen on the first Mount or navigation call, by asking the
// host environment once whether it supports a declarative path, and never
// changes afterwards.
//
// Routers are confined to the UI context.
type Router[R comparable] struct {
	id        string
	env       host.Environment[R]
	builder   func(R) host.View
	registry  *route.Registry
	observer  Observer
	logger    *slog.Logger
	state     State
	engine    engine.Engine[R]
	stack     *Stack[R]
	container any
}

// New creates a router over env. builder renders each route.
func New[R comparable](env host.Environment[R], builder func(R) host.View, opts ...Option) *Router[R] {
	o := options{
		observer: nopObserver{},
		logger:   internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	return &Router[R]{
		id:       id,
		env:      env,
		builder:  builder,
		registry: o.registry,
		observer: o.observer,
		logger:   o.logger.With("router", id),
		stack:    NewStack[R](),
	}
}

// NewAny creates a router over erased routes that renders through the
// registry's default builder.
func NewAny(env host.Environment[route.Any], reg *route.Registry, opts ...Option) *Router[route.Any] {
	builder := route.AnyBuilder(reg)
	opts = append([]Option{WithRegistry(reg)}, opts...)
	return New(env, func(a route.Any) host.View { return builder(a) }, opts...)
}

// ID identifies the router in logs.
func (r *Router[R]) ID() string { return r.id }

// State reports whether an engine has been selected.
func (r *Router[R]) State() State { return r.state }

// EngineKind returns the pinned engine variant, or 0 before one is selected.
func (r *Router[R]) EngineKind() engine.Kind {
	if r.engine == nil {
		return 0
	}
	return r.engine.Kind()
}

// CurrentStack returns a copy of the logical stack, bottom first. The root
// is never part of it.
func (r *Router[R]) CurrentStack() []R {
	return r.stack.Routes()
}

// Mount installs root as the base content and returns the host container to
// embed. Repeated calls return the first container.
func (r *Router[R]) Mount(root func() host.View) any {
	if r.container != nil {
		return r.container
	}
	r.container = r.obtainEngine().Mount(root)
	return r.container
}

// Push appends next to the logical stack and the host.
func (r *Router[R]) Push(next R) {
	e := r.obtainEngine()
	r.stack.Push(next)
	e.Push(next)
	r.observer.Navigated(OpPush, r.stack.Len())
}

// Pop removes the top route. No-op on an empty stack.
func (r *Router[R]) Pop() {
	if r.stack.IsEmpty() {
		return
	}
	r.stack.Pop()
	if r.engine != nil {
		r.engine.Pop()
	}
	r.observer.Navigated(OpPop, r.stack.Len())
}

// PopToRoot clears the logical stack and returns the host to its root.
func (r *Router[R]) PopToRoot() {
	r.stack.Clear()
	if r.engine != nil {
		r.engine.PopToRoot()
	}
	r.observer.Navigated(OpPopToRoot, 0)
}

// ReplaceStack swaps every route above the root for routes.
func (r *Router[R]) ReplaceStack(routes []R) {
	e := r.obtainEngine()
	r.stack.Replace(routes)
	e.ReplaceStack(routes)
	r.observer.Navigated(OpReplace, r.stack.Len())
}

// SetRoot makes root the base of navigation with children above it. The
// logical stack becomes children on every engine; root is never mirrored.
func (r *Router[R]) SetRoot(root R, children []R) {
	e := r.obtainEngine()
	r.stack.Replace(children)
	e.SetRoot(root, children)
	r.observer.Navigated(OpSetRoot, r.stack.Len())
}

// Back performs a user-initiated back, such as a hardware key. The top
// route's back predicate may consume it. Reports whether a route was
// popped.
func (r *Router[R]) Back() bool {
	top, ok := r.stack.Peek()
	if !ok {
		return false
	}
	if r.registry != nil {
		a := route.Erase(top)
		if d, ok := r.registry.ResolveStyle(a); ok && d.ConsumesBack(a.Value()) {
			r.logger.Debug("back consumed by route", "type", a.TypeID())
			return false
		}
	}
	r.Pop()
	return true
}

// reconcile receives the host's depth after it changed. The logical stack
// only ever shrinks here.
func (r *Router[R]) reconcile(n int) {
	cur := r.stack.Len()
	switch {
	case n < 0:
		r.logger.Warn("ignoring negative host depth", "depth", n)
	case n < cur:
		r.stack.Trim(n)
		r.logger.Debug("logical stack trimmed to host depth", "from", cur, "to", n)
		r.observer.Reconciled(cur, n)
	case n > cur:
		r.logger.Warn("host depth exceeds logical stack; ignoring", "host", n, "logical", cur)
	}
}

func (r *Router[R]) obtainEngine() engine.Engine[R] {
	if r.engine != nil {
		return r.engine
	}

	if r.env.SupportsPath() {
		r.engine = modern.New(r.env.Path(), r.builder, r.reconcile, r.logger)
	} else {
		r.engine = legacy.New(r.env.Controllers(), r.builder, r.registry, r.reconcile, r.logger)
	}
	r.state = StateMounted

	r.logger.Info("navigation engine selected", "engine", r.engine.Kind().String())
	r.observer.EngineSelected(r.engine.Kind())
	return r.engine
}
