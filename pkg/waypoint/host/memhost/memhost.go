// Package memhost is an in-memory host. It implements every host primitive
// and can simulate user-driven back navigation, which makes it the host for
// tests, the scenario CLI, and headless runs.
package memhost

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
)

// Env is an in-memory host.Environment.
type Env[R comparable] struct {
	modern      bool
	path        *Path[R]
	controllers *Controllers
}

// New creates a host. modern selects whether it advertises the declarative
// path primitive.
func New[R comparable](modern bool) *Env[R] {
	return &Env[R]{
		modern:      modern,
		path:        &Path[R]{},
		controllers: NewControllers(host.ThemeAppearances()),
	}
}

func (e *Env[R]) SupportsPath() bool                { return e.modern }
func (e *Env[R]) Path() host.Path[R]                { return e.path }
func (e *Env[R]) Controllers() host.ControllerStack { return e.controllers }

// PathHost exposes the concrete path for simulation.
func (e *Env[R]) PathHost() *Path[R] { return e.path }

// ControllerHost exposes the concrete controller stack for simulation.
func (e *Env[R]) ControllerHost() *Controllers { return e.controllers }

// Path is an in-memory host.Path.
type Path[R comparable] struct {
	routes      []R
	onLenChange func(int)
	root        func() host.View
	destination func(R) host.View
}

func (p *Path[R]) Append(r R) {
	p.routes = append(p.routes, r)
	p.changed()
}

func (p *Path[R]) RemoveLast() {
	if len(p.routes) == 0 {
		return
	}
	p.routes = p.routes[:len(p.routes)-1]
	p.changed()
}

func (p *Path[R]) Reset() {
	p.Replace(nil)
}

func (p *Path[R]) Replace(routes []R) {
	before := len(p.routes)
	p.routes = append([]R(nil), routes...)
	if before != len(p.routes) {
		p.changed()
	}
}

func (p *Path[R]) Len() int { return len(p.routes) }

func (p *Path[R]) Routes() []R { return append([]R(nil), p.routes...) }

func (p *Path[R]) OnLenChange(fn func(int)) { p.onLenChange = fn }

func (p *Path[R]) Mount(root func() host.View, destination func(R) host.View) {
	p.root = root
	p.destination = destination
}

// Visible renders what the host would show: the destination for the last
// route, or the root content when the path is empty.
func (p *Path[R]) Visible() host.View {
	if len(p.routes) == 0 {
		if p.root == nil {
			return nil
		}
		return p.root()
	}
	if p.destination == nil {
		return nil
	}
	return p.destination(p.routes[len(p.routes)-1])
}

// UserSwipeBack simulates the user dismissing the top destination.
func (p *Path[R]) UserSwipeBack() bool {
	if len(p.routes) == 0 {
		return false
	}
	p.RemoveLast()
	return true
}

// UserPopTo simulates a long-press back menu jump that keeps n routes.
func (p *Path[R]) UserPopTo(n int) {
	if n < 0 || n >= len(p.routes) {
		return
	}
	p.routes = p.routes[:n]
	p.changed()
}

func (p *Path[R]) changed() {
	if p.onLenChange != nil {
		p.onLenChange(len(p.routes))
	}
}
