// Package legacy implements the engine over an imperative
// host.ControllerStack. Unlike the modern engine it applies each route's
// style itself: title, bar appearance and custom back affordance are set on
// every frame it builds, and the bar is re-derived whenever a frame is shown.
package legacy

import (
	"image/color"
	"log/slog"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Engine drives a host.ControllerStack.
type Engine[R comparable] struct {
	nav      host.ControllerStack
	builder  func(R) host.View
	registry *route.Registry
	onSize   engine.SizeObserver
	logger   *slog.Logger

	baseline    host.Appearances
	root        func() host.View
	// base is the bottom frame once one exists: root content, a placeholder
	// awaiting Mount, or the route given to SetRoot. It is not counted in
	// Depth and the host never pops it.
	base        *host.Frame
	baseIsRoute bool
	iconSize    int
}

// New binds an engine to nav and becomes its delegate. The bar's current
// appearance is captured as the baseline for unstyled frames. registry may
// be nil, in which case no styling is applied.
func New[R comparable](nav host.ControllerStack, builder func(R) host.View, registry *route.Registry, onSize engine.SizeObserver, logger *slog.Logger) *Engine[R] {
	e := &Engine[R]{
		nav:      nav,
		builder:  builder,
		registry: registry,
		onSize:   onSize,
		logger:   logger,
		baseline: nav.Bar().Appearances(),
		iconSize: constants.DefaultBackIconSize,
	}
	nav.SetDelegate(e)
	return e
}

func (e *Engine[R]) Kind() engine.Kind { return engine.KindLegacy }

// Mount installs root content as the bottom frame, keeping any frames pushed
// before mounting above it, and returns the controller stack. A route
// installed by SetRoot stays at the bottom.
func (e *Engine[R]) Mount(root func() host.View) any {
	e.root = root
	if e.baseIsRoute {
		return e.nav
	}

	frames := e.nav.Frames()
	if e.base != nil && len(frames) > 0 {
		frames = frames[1:]
	}
	e.base = e.rootFrame()
	e.nav.SetFrames(append([]*host.Frame{e.base}, frames...), false)
	return e.nav
}

// Push adds a frame for r. Before any bottom frame exists a placeholder is
// installed under it so r stays poppable.
func (e *Engine[R]) Push(r R) {
	if e.base == nil {
		e.base = e.rootFrame()
		frames := append([]*host.Frame{e.base}, e.nav.Frames()...)
		e.nav.SetFrames(append(frames, e.makeFrame(r)), true)
		return
	}
	e.nav.Push(e.makeFrame(r), true)
}

func (e *Engine[R]) Pop() {
	e.nav.Pop(true)
}

func (e *Engine[R]) PopToRoot() {
	e.nav.PopToRoot(true)
}

// ReplaceStack rebuilds everything above the bottom frame, one frame per
// route.
func (e *Engine[R]) ReplaceStack(routes []R) {
	if e.base == nil {
		e.base = e.rootFrame()
	}
	frames := make([]*host.Frame, 0, len(routes)+1)
	frames = append(frames, e.base)
	for _, r := range routes {
		frames = append(frames, e.makeFrame(r))
	}
	e.nav.SetFrames(frames, false)
	e.applyBar(e.nav.Top())
}

// SetRoot rebuilds the stack as r followed by children. r is a real frame
// but is not counted in Depth.
func (e *Engine[R]) SetRoot(r R, children []R) {
	e.base = e.makeFrame(r)
	e.baseIsRoute = true
	frames := make([]*host.Frame, 0, len(children)+1)
	frames = append(frames, e.base)
	for _, c := range children {
		frames = append(frames, e.makeFrame(c))
	}
	e.nav.SetFrames(frames, false)
	e.applyBar(e.nav.Top())
}

func (e *Engine[R]) Depth() int {
	n := len(e.nav.Frames())
	if e.base != nil && n > 0 {
		n--
	}
	return n
}

// DidShow re-derives the bar for the frame now on top and reports the new
// depth.
func (e *Engine[R]) DidShow(top *host.Frame, _ bool) {
	e.applyBar(top)
	if e.onSize != nil {
		e.onSize(e.Depth())
	}
}

// ShouldBeginBackGesture blocks the edge swipe when the top route's back
// predicate consumes back navigation.
func (e *Engine[R]) ShouldBeginBackGesture() bool {
	if len(e.nav.Frames()) <= 1 {
		return false
	}
	d, a, ok := e.styleOf(e.nav.Top())
	if !ok || !d.HasBackAction() {
		return true
	}
	return !d.ConsumesBack(a.Value())
}

func (e *Engine[R]) rootFrame() *host.Frame {
	f := &host.Frame{}
	if e.root != nil {
		f.Content = e.root()
	}
	return f
}

func (e *Engine[R]) makeFrame(r R) *host.Frame {
	f := &host.Frame{Content: e.builder(r), Route: r}
	if e.registry == nil {
		return f
	}

	a := route.Erase(r)
	d, ok := e.registry.ResolveStyle(a)
	if !ok {
		return f
	}

	if title, ok := d.Title(a.Value()); ok {
		f.Title = title
	}
	f.LargeTitles = d.PrefersLargeTitles
	if d.HasAppearance() {
		ap := e.appearanceFor(d)
		f.Appearance = &ap
	}
	if d.HasBackAction() {
		f.BackItem = e.backItem(d, a)
	}
	return f
}

func (e *Engine[R]) appearanceFor(d *route.Descriptor) host.Appearances {
	a := e.baseline.Standard
	if d.BackgroundColor != nil {
		a.BackgroundColor = d.BackgroundColor
	}
	if d.TitleColor != nil {
		a.TitleColor = d.TitleColor
	}
	if d.TintColor != nil {
		a.TintColor = d.TintColor
	}
	a.LargeTitles = d.PrefersLargeTitles
	return host.Uniform(a)
}

func (e *Engine[R]) backItem(d *route.Descriptor, a route.Any) *host.BackItem {
	var tint color.Color = e.baseline.Standard.TintColor
	if d.TintColor != nil {
		tint = d.TintColor
	}

	item := &host.BackItem{
		OnTap: func() {
			if d.ConsumesBack(a.Value()) {
				e.logger.Debug("back navigation consumed by route", "type", a.TypeID())
				return
			}
			e.nav.Pop(true)
		},
	}

	icon, err := internal.BackChevron(tint, e.iconSize)
	if err != nil {
		e.logger.Error("failed to rasterise back chevron", "error", err)
	} else {
		item.Icon = icon
	}
	return item
}

// applyBar replaces all three appearance slots with the frame's appearance,
// or with the baseline when the frame has none.
func (e *Engine[R]) applyBar(top *host.Frame) {
	if top != nil && top.Appearance != nil {
		e.nav.Bar().SetAppearances(*top.Appearance)
		return
	}
	e.nav.Bar().SetAppearances(e.baseline)
}

func (e *Engine[R]) styleOf(f *host.Frame) (*route.Descriptor, route.Any, bool) {
	if f == nil || f.Route == nil || e.registry == nil {
		return nil, route.Any{}, false
	}
	r, ok := f.Route.(R)
	if !ok {
		return nil, route.Any{}, false
	}
	a := route.Erase(r)
	d, ok := e.registry.ResolveStyle(a)
	return d, a, ok
}
