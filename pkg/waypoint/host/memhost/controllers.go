package memhost

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
)

// Controllers is an in-memory host.ControllerStack.
type Controllers struct {
	frames   []*host.Frame
	delegate host.Delegate
	bar      *Bar
}

// NewControllers creates an empty stack whose bar starts at initial.
func NewControllers(initial host.Appearances) *Controllers {
	return &Controllers{bar: &Bar{current: initial}}
}

func (c *Controllers) Push(f *host.Frame, animated bool) {
	c.frames = append(c.frames, f)
	c.didShow(animated)
}

func (c *Controllers) Pop(animated bool) *host.Frame {
	if len(c.frames) <= 1 {
		return nil
	}
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	c.didShow(animated)
	return top
}

func (c *Controllers) PopToRoot(animated bool) {
	if len(c.frames) <= 1 {
		return
	}
	c.frames = c.frames[:1]
	c.didShow(animated)
}

func (c *Controllers) SetFrames(frames []*host.Frame, animated bool) {
	c.frames = append([]*host.Frame(nil), frames...)
	c.didShow(animated)
}

func (c *Controllers) Frames() []*host.Frame {
	return append([]*host.Frame(nil), c.frames...)
}

func (c *Controllers) Top() *host.Frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func (c *Controllers) SetDelegate(d host.Delegate) { c.delegate = d }

func (c *Controllers) Bar() host.NavigationBar { return c.bar }

// ConcreteBar exposes the bar for inspection.
func (c *Controllers) ConcreteBar() *Bar { return c.bar }

// UserSwipeBack simulates an edge swipe. The delegate may refuse it.
// Reports whether a frame was popped.
func (c *Controllers) UserSwipeBack() bool {
	if len(c.frames) <= 1 {
		return false
	}
	if c.delegate != nil && !c.delegate.ShouldBeginBackGesture() {
		return false
	}
	return c.Pop(true) != nil
}

// TapBack simulates the back affordance in the bar. A frame's BackItem
// replaces the default pop.
func (c *Controllers) TapBack() {
	top := c.Top()
	if top == nil || len(c.frames) <= 1 {
		return
	}
	if top.BackItem != nil && top.BackItem.OnTap != nil {
		top.BackItem.OnTap()
		return
	}
	c.Pop(true)
}

func (c *Controllers) didShow(animated bool) {
	if c.delegate != nil && len(c.frames) > 0 {
		c.delegate.DidShow(c.Top(), animated)
	}
}

// Bar is an in-memory host.NavigationBar.
type Bar struct {
	current host.Appearances
	writes  int
}

func (b *Bar) Appearances() host.Appearances { return b.current }

func (b *Bar) SetAppearances(a host.Appearances) {
	b.current = a
	b.writes++
}

// Writes counts SetAppearances calls.
func (b *Bar) Writes() int { return b.writes }
