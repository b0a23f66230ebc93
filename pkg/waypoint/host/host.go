// Package host defines the navigation primitives waypoint drives. A host is
// whatever actually shows screens: a native toolkit binding, an SDL shell, or
// the in-memory host in memhost.
//
// Two primitives exist. Path is a declarative stack of route values that the
// host renders on its own and whose length the user can shrink (swipe back).
// ControllerStack is an imperative stack of Frames with a navigation bar,
// lifecycle callbacks, and gesture interception.
package host

import (
	"image"
	"image/color"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// View is an opaque handle to screen content.
type View = any

// Environment describes what a host supports and hands out its primitives.
type Environment[R comparable] interface {
	// SupportsPath reports whether the host has a declarative Path primitive.
	// Routers check this once.
	SupportsPath() bool

	// Path returns the host's declarative path. Only called when SupportsPath
	// is true.
	Path() Path[R]

	// Controllers returns the host's controller stack. Only called when
	// SupportsPath is false.
	Controllers() ControllerStack
}

// Path is a declarative navigation path of route values.
type Path[R comparable] interface {
	Append(r R)
	RemoveLast()
	Reset()
	Replace(routes []R)
	Len() int
	Routes() []R

	// OnLenChange registers the single observer of length changes. It fires
	// for every change, including ones the user makes.
	OnLenChange(fn func(n int))

	// Mount installs the root content and the destination builder the host
	// uses for every route on the path.
	Mount(root func() View, destination func(R) View)
}

// ControllerStack is an imperative stack of frames.
type ControllerStack interface {
	Push(f *Frame, animated bool)
	Pop(animated bool) *Frame
	PopToRoot(animated bool)
	SetFrames(frames []*Frame, animated bool)
	Frames() []*Frame
	Top() *Frame

	// SetDelegate registers the single lifecycle and gesture delegate.
	SetDelegate(d Delegate)

	Bar() NavigationBar
}

// Delegate receives controller stack lifecycle callbacks.
type Delegate interface {
	// DidShow fires after any push, pop, interactive pop or whole-stack
	// replacement, with the frame now on top.
	DidShow(top *Frame, animated bool)

	// ShouldBeginBackGesture gates the edge-swipe back gesture.
	ShouldBeginBackGesture() bool
}

// NavigationBar exposes the bar's appearance slots.
type NavigationBar interface {
	Appearances() Appearances
	// SetAppearances replaces all three slots at once.
	SetAppearances(a Appearances)
}

// BarAppearance is one navigation bar state.
type BarAppearance struct {
	BackgroundColor color.Color
	TitleColor      color.Color
	TintColor       color.Color
	LargeTitles     bool
}

// Appearances holds the standard, scroll-edge and compact bar states.
type Appearances struct {
	Standard   BarAppearance
	ScrollEdge BarAppearance
	Compact    BarAppearance
}

// Uniform uses a for all three slots.
func Uniform(a BarAppearance) Appearances {
	return Appearances{Standard: a, ScrollEdge: a, Compact: a}
}

// ThemeAppearances derives the baseline bar from the active theme.
func ThemeAppearances() Appearances {
	theme := internal.GetTheme()
	return Uniform(BarAppearance{
		BackgroundColor: theme.BarBackgroundColor,
		TitleColor:      theme.TitleColor,
		TintColor:       theme.TintColor,
		LargeTitles:     theme.LargeTitles,
	})
}

// BackItem replaces a frame's default back affordance.
type BackItem struct {
	Icon  image.Image
	OnTap func()
}

// Frame hosts one screen in a ControllerStack.
type Frame struct {
	Content     View
	Route       any // Route value hosted; nil for root content
	Title       string
	LargeTitles bool
	Appearance  *Appearances // nil inherits whatever the bar shows
	BackItem    *BackItem    // nil uses the default back affordance
}
