package router_test

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host/memhost"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Screen struct {
	Name string `json:"name"`
	ID   int    `json:"id,omitempty"`
}

var home = Screen{Name: "home"}

func detail(id int) Screen { return Screen{Name: "detail", ID: id} }

// guarded consumes back navigation.
var guarded = Screen{Name: "form", ID: 99}

var red = color.RGBA{R: 0xFF, A: 0xFF}

func screenStyle() route.Style[Screen] {
	return route.Style[Screen]{
		Title:           func(s Screen) (string, bool) { return fmt.Sprintf("%s %d", s.Name, s.ID), true },
		BackgroundColor: red,
		BackAction:      func(s Screen) bool { return s == guarded },
	}
}

type fixture struct {
	router *router.Router[route.Any]
	env    *memhost.Env[route.Any]
	reg    *route.Registry
	modern bool
}

func newFixture(t *testing.T, modern bool, opts ...router.Option) fixture {
	t.Helper()
	reg := route.NewRegistry(route.WithDebug(true), route.WithLogger(internal.NopLogger()))
	route.RegisterMain(reg, func(s Screen) route.View { return "screen:" + s.Name }, route.WithStyle(screenStyle()))

	env := memhost.New[route.Any](modern)
	opts = append([]router.Option{router.WithLogger(internal.NopLogger())}, opts...)
	r := router.NewAny(env, reg, opts...)
	r.Mount(func() host.View { return "root" })
	return fixture{router: r, env: env, reg: reg, modern: modern}
}

func (f fixture) hostDepth() int {
	if f.modern {
		return f.env.PathHost().Len()
	}
	return len(f.env.ControllerHost().Frames()) - 1
}

func (f fixture) swipeBack() bool {
	if f.modern {
		return f.env.PathHost().UserSwipeBack()
	}
	return f.env.ControllerHost().UserSwipeBack()
}

func wrap(screens ...Screen) []route.Any {
	out := make([]route.Any, 0, len(screens))
	for _, s := range screens {
		out = append(out, route.Wrap(s))
	}
	return out
}

func forEachEngine(t *testing.T, fn func(t *testing.T, f fixture)) {
	for _, modern := range []bool{true, false} {
		name := "legacy"
		if modern {
			name = "modern"
		}
		t.Run(name, func(t *testing.T) {
			fn(t, newFixture(t, modern))
		})
	}
}

func TestScenario(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		r := f.router

		r.Push(route.Wrap(home))
		assert.Equal(t, wrap(home), r.CurrentStack())

		r.Push(route.Wrap(detail(1)))
		assert.Equal(t, wrap(home, detail(1)), r.CurrentStack())

		r.Pop()
		assert.Equal(t, wrap(home), r.CurrentStack())

		r.ReplaceStack(wrap(detail(2), detail(3)))
		assert.Equal(t, wrap(detail(2), detail(3)), r.CurrentStack())
		assert.Equal(t, 2, f.hostDepth())

		r.PopToRoot()
		assert.Empty(t, r.CurrentStack())
		assert.Equal(t, 0, f.hostDepth())
	})
}

func TestHostDepthTracksLogicalStack(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		r := f.router
		steps := []func(){
			func() { r.Push(route.Wrap(home)) },
			func() { r.Push(route.Wrap(detail(1))) },
			func() { r.Push(route.Wrap(detail(2))) },
			func() { r.Pop() },
			func() { r.ReplaceStack(wrap(detail(5), detail(6), detail(7))) },
			func() { r.SetRoot(route.Wrap(home), wrap(detail(8))) },
			func() { r.Pop() },
			func() { r.Pop() },
		}
		for i, step := range steps {
			step()
			assert.Equal(t, len(r.CurrentStack()), f.hostDepth(), "step %d", i)
		}
	})
}

func TestSetRootExcludesRoot(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		f.router.SetRoot(route.Wrap(home), wrap(detail(1)))
		assert.Equal(t, wrap(detail(1)), f.router.CurrentStack())

		if f.modern {
			assert.Equal(t, wrap(detail(1)), f.env.PathHost().Routes())

			// The root route is the base content shown under the path.
			f.router.Pop()
			assert.Equal(t, route.Titled{Content: "screen:home", Title: "home 0"}, f.env.PathHost().Visible())
			return
		}
		frames := f.env.ControllerHost().Frames()
		require.Len(t, frames, 2)
		assert.Equal(t, route.Wrap(home), frames[0].Route)
		assert.Equal(t, route.Wrap(detail(1)), frames[1].Route)
	})
}

func TestSetRootWithoutChildren(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		f.router.Push(route.Wrap(detail(1)))
		f.router.SetRoot(route.Wrap(home), nil)
		assert.Empty(t, f.router.CurrentStack())
		assert.Equal(t, 0, f.hostDepth())
	})
}

func TestPopOnEmptyIsNoop(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		f.router.Pop()
		f.router.PopToRoot()
		assert.Empty(t, f.router.CurrentStack())
		assert.Equal(t, 0, f.hostDepth())
	})
}

func TestUserSwipeBackTrimsStack(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		f.router.ReplaceStack(wrap(home, detail(1), detail(2)))

		require.True(t, f.swipeBack())
		assert.Equal(t, wrap(home, detail(1)), f.router.CurrentStack())

		require.True(t, f.swipeBack())
		require.True(t, f.swipeBack())
		assert.Empty(t, f.router.CurrentStack())
		assert.False(t, f.swipeBack())
	})
}

func TestUserPopToTrimsToPrefix(t *testing.T) {
	f := newFixture(t, true)
	f.router.ReplaceStack(wrap(home, detail(1), detail(2), detail(3)))

	f.env.PathHost().UserPopTo(1)
	assert.Equal(t, wrap(home), f.router.CurrentStack())
}

func TestHostGrowthIsIgnored(t *testing.T) {
	f := newFixture(t, true)
	f.router.Push(route.Wrap(home))

	// The host path grows without the router asking.
	f.env.PathHost().Append(route.Wrap(detail(1)))
	assert.Equal(t, wrap(home), f.router.CurrentStack())
}

func TestLegacyBackTapTrimsStack(t *testing.T) {
	f := newFixture(t, false)
	f.router.ReplaceStack(wrap(home, detail(1)))

	f.env.ControllerHost().TapBack()
	assert.Equal(t, wrap(home), f.router.CurrentStack())
}

func TestLegacyBackActionConsumesBack(t *testing.T) {
	f := newFixture(t, false)
	f.router.ReplaceStack(wrap(home, guarded))
	nav := f.env.ControllerHost()

	assert.False(t, nav.UserSwipeBack(), "gesture must not begin")
	nav.TapBack()
	assert.Equal(t, wrap(home, guarded), f.router.CurrentStack())
	assert.Len(t, nav.Frames(), 3)

	// Explicit router pops are not gated.
	f.router.Pop()
	assert.Equal(t, wrap(home), f.router.CurrentStack())
	assert.True(t, nav.UserSwipeBack())
	assert.Empty(t, f.router.CurrentStack())
}

func TestBackHonoursBackAction(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		assert.False(t, f.router.Back())

		f.router.ReplaceStack(wrap(home, guarded))
		assert.False(t, f.router.Back())
		assert.Len(t, f.router.CurrentStack(), 2)

		f.router.ReplaceStack(wrap(home, detail(1)))
		assert.True(t, f.router.Back())
		assert.Equal(t, wrap(home), f.router.CurrentStack())
		assert.Equal(t, 1, f.hostDepth())
	})
}

func TestLegacyAppliesStyle(t *testing.T) {
	f := newFixture(t, false)
	nav := f.env.ControllerHost()
	baseline := host.ThemeAppearances()
	require.Equal(t, baseline, nav.ConcreteBar().Appearances())

	f.router.Push(route.Wrap(detail(4)))

	top := nav.Top()
	assert.Equal(t, "detail 4", top.Title)
	require.NotNil(t, top.Appearance)
	require.NotNil(t, top.BackItem)
	assert.NotNil(t, top.BackItem.Icon)

	bar := nav.ConcreteBar().Appearances()
	assert.Equal(t, red, bar.Standard.BackgroundColor)
	assert.Equal(t, bar.Standard, bar.ScrollEdge)
	assert.Equal(t, bar.Standard, bar.Compact)
	assert.Equal(t, baseline.Standard.TitleColor, bar.Standard.TitleColor)

	f.router.Pop()
	assert.Equal(t, baseline, nav.ConcreteBar().Appearances())
}

func TestLegacyReplaceAppliesTopStyle(t *testing.T) {
	f := newFixture(t, false)
	nav := f.env.ControllerHost()

	f.router.ReplaceStack(wrap(home, detail(1)))
	assert.Equal(t, red, nav.ConcreteBar().Appearances().Standard.BackgroundColor)
	assert.Nil(t, nav.Frames()[0].Route)
	assert.Equal(t, "root", nav.Frames()[0].Content)

	f.router.ReplaceStack(nil)
	assert.Equal(t, host.ThemeAppearances(), nav.ConcreteBar().Appearances())
}

func TestLegacyWithoutRegistryStyleIsBaseline(t *testing.T) {
	env := memhost.New[Screen](false)
	r := router.New(env, func(s Screen) host.View { return s.Name }, router.WithLogger(internal.NopLogger()))
	r.Mount(func() host.View { return "root" })

	r.Push(detail(1))
	top := env.ControllerHost().Top()
	assert.Empty(t, top.Title)
	assert.Nil(t, top.Appearance)
	assert.Nil(t, top.BackItem)
	assert.Equal(t, host.ThemeAppearances(), env.ControllerHost().ConcreteBar().Appearances())
}

func TestModernDestinationsCarryTitles(t *testing.T) {
	f := newFixture(t, true)
	assert.Equal(t, "root", f.env.PathHost().Visible())

	f.router.Push(route.Wrap(detail(3)))
	assert.Equal(t, route.Titled{Content: "screen:detail", Title: "detail 3"}, f.env.PathHost().Visible())
}

func TestUnregisteredRouteRendersPlaceholder(t *testing.T) {
	f := newFixture(t, true)
	type Unknown struct{ N int }

	f.router.Push(route.Wrap(Unknown{N: 1}))
	_, ok := f.env.PathHost().Visible().(route.Placeholder)
	assert.True(t, ok)
}

type countingEnv struct {
	*memhost.Env[Screen]
	calls  int
	modern bool
}

func (c *countingEnv) SupportsPath() bool {
	c.calls++
	v := c.modern
	c.modern = !c.modern
	return v
}

func TestEngineSelectedOnceAndPinned(t *testing.T) {
	env := &countingEnv{Env: memhost.New[Screen](true), modern: true}
	r := router.New[Screen](env, func(s Screen) host.View { return s.Name }, router.WithLogger(internal.NopLogger()))

	assert.Equal(t, router.StateUninitialized, r.State())
	assert.Equal(t, engine.Kind(0), r.EngineKind())

	// Pop on an empty router does not need an engine.
	r.Pop()
	r.PopToRoot()
	assert.Equal(t, router.StateUninitialized, r.State())

	r.Push(home)
	r.Push(detail(1))
	r.ReplaceStack([]Screen{detail(2)})
	r.SetRoot(home, nil)
	r.Mount(func() host.View { return nil })

	assert.Equal(t, router.StateMounted, r.State())
	assert.Equal(t, engine.KindModern, r.EngineKind())
	assert.Equal(t, 1, env.calls)
}

func TestMountReturnsSameContainer(t *testing.T) {
	forEachEngine(t, func(t *testing.T, f fixture) {
		first := f.router.Mount(func() host.View { return "other" })
		second := f.router.Mount(func() host.View { return "another" })
		assert.Same(t, first, second)
	})
}

func TestLegacyMountKeepsEarlierPushes(t *testing.T) {
	env := memhost.New[Screen](false)
	r := router.New(env, func(s Screen) host.View { return s.Name }, router.WithLogger(internal.NopLogger()))

	r.Push(home)
	r.Push(detail(1))
	r.Mount(func() host.View { return "root" })

	frames := env.ControllerHost().Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, "root", frames[0].Content)
	assert.Equal(t, []Screen{home, detail(1)}, r.CurrentStack())

	r.Pop()
	assert.Len(t, env.ControllerHost().Frames(), 2)
}

func TestLegacyNavigationBeforeMountConverges(t *testing.T) {
	env := memhost.New[Screen](false)
	r := router.New(env, func(s Screen) host.View { return s.Name }, router.WithLogger(internal.NopLogger()))
	ctl := env.ControllerHost()

	r.Push(home)
	r.Pop()
	assert.Empty(t, r.CurrentStack())
	assert.Len(t, ctl.Frames(), 1)

	r.Push(detail(1))
	require.True(t, ctl.UserSwipeBack())
	assert.Empty(t, r.CurrentStack())
	assert.Len(t, ctl.Frames(), 1)

	r.Push(detail(2))
	r.Push(detail(3))
	require.True(t, ctl.UserSwipeBack())
	assert.Equal(t, []Screen{detail(2)}, r.CurrentStack())
	assert.Len(t, ctl.Frames(), len(r.CurrentStack())+1)
}

func TestSetRootSurvivesLaterMount(t *testing.T) {
	for _, modern := range []bool{true, false} {
		t.Run(fmt.Sprintf("modern=%v", modern), func(t *testing.T) {
			env := memhost.New[Screen](modern)
			r := router.New(env, func(s Screen) host.View { return "screen:" + s.Name }, router.WithLogger(internal.NopLogger()))

			r.SetRoot(home, []Screen{detail(1)})
			r.Mount(func() host.View { return "root" })
			r.PopToRoot()

			if modern {
				assert.Equal(t, "screen:home", env.PathHost().Visible())
			} else {
				frames := env.ControllerHost().Frames()
				require.Len(t, frames, 1)
				assert.Equal(t, home, frames[0].Route)
			}
			assert.Empty(t, r.CurrentStack())
		})
	}
}

type recorder struct {
	engines    []engine.Kind
	ops        []router.Op
	reconciled [][2]int
}

func (r *recorder) EngineSelected(k engine.Kind)  { r.engines = append(r.engines, k) }
func (r *recorder) Navigated(op router.Op, _ int) { r.ops = append(r.ops, op) }
func (r *recorder) Reconciled(from, to int)       { r.reconciled = append(r.reconciled, [2]int{from, to}) }

func TestObserver(t *testing.T) {
	rec := &recorder{}
	f := newFixture(t, true, router.WithObserver(rec))

	f.router.Push(route.Wrap(home))
	f.router.Push(route.Wrap(detail(1)))
	f.router.Pop()
	f.router.ReplaceStack(wrap(detail(1), detail(2)))
	f.router.SetRoot(route.Wrap(home), nil)
	f.router.PopToRoot()
	f.router.Push(route.Wrap(home))
	f.swipeBack()

	assert.Equal(t, []engine.Kind{engine.KindModern}, rec.engines)
	assert.Equal(t, []router.Op{
		router.OpPush, router.OpPush, router.OpPop, router.OpReplace,
		router.OpSetRoot, router.OpPopToRoot, router.OpPush,
	}, rec.ops)
	assert.Equal(t, [][2]int{{1, 0}}, rec.reconciled)
}

func TestTypedRouterWithoutRegistry(t *testing.T) {
	env := memhost.New[Screen](true)
	r := router.New(env, func(s Screen) host.View { return s.Name }, router.WithLogger(internal.NopLogger()))

	r.Push(home)
	r.Push(guarded)
	assert.True(t, r.Back(), "no registry means no back predicate")
	assert.Equal(t, []Screen{home}, r.CurrentStack())
}
