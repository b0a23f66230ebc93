package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host/memhost"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/uiloop"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Screen is the route type scenarios navigate with.
type Screen struct {
	Name string `json:"name"`
}

// Scenario is a scripted navigation session.
type Scenario struct {
	Engine  string   `yaml:"engine"`
	Root    string   `yaml:"root"`
	Guarded []string `yaml:"guarded"`
	Steps   []Step   `yaml:"steps"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Push      string       `yaml:"push"`
	Pop       bool         `yaml:"pop"`
	PopToRoot bool         `yaml:"pop_to_root"`
	Replace   []string     `yaml:"replace"`
	SetRoot   *SetRootStep `yaml:"set_root"`
	Swipe     int          `yaml:"swipe"`
	TapBack   bool         `yaml:"tap_back"`
	Back      bool         `yaml:"back"`
}

// SetRootStep replaces the root and the stack above it.
type SetRootStep struct {
	Root     string   `yaml:"root"`
	Children []string `yaml:"children"`
}

// LoadScenario reads and validates a YAML scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return &sc, nil
}

// Validate reports every malformed step.
func (sc *Scenario) Validate() error {
	var err error
	switch sc.Engine {
	case "", "modern", "legacy":
	default:
		err = multierr.Append(err, fmt.Errorf("engine %q: want modern or legacy", sc.Engine))
	}
	for i, st := range sc.Steps {
		if n := st.actions(); n != 1 {
			err = multierr.Append(err, fmt.Errorf("step %d: %d actions, want exactly one", i+1, n))
		}
		if st.Swipe < 0 {
			err = multierr.Append(err, fmt.Errorf("step %d: negative swipe count", i+1))
		}
		if st.SetRoot != nil && st.SetRoot.Root == "" {
			err = multierr.Append(err, fmt.Errorf("step %d: set_root needs a root", i+1))
		}
	}
	return err
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Push != "",
		st.Pop,
		st.PopToRoot,
		st.Replace != nil,
		st.SetRoot != nil,
		st.Swipe != 0,
		st.TapBack,
		st.Back,
	} {
		if set {
			n++
		}
	}
	return n
}

func (st Step) String() string {
	switch {
	case st.Push != "":
		return "push " + st.Push
	case st.Pop:
		return "pop"
	case st.PopToRoot:
		return "pop_to_root"
	case st.Replace != nil:
		return "replace [" + strings.Join(st.Replace, " ") + "]"
	case st.SetRoot != nil:
		return "set_root " + st.SetRoot.Root + " [" + strings.Join(st.SetRoot.Children, " ") + "]"
	case st.Swipe != 0:
		return fmt.Sprintf("swipe x%d", st.Swipe)
	case st.TapBack:
		return "tap_back"
	case st.Back:
		return "back"
	}
	return "noop"
}

// Runner plays scenarios on an in-memory host, one step per UI loop task.
type Runner struct {
	reg  *route.Registry
	loop *uiloop.Loop
	out  io.Writer
	opts []router.Option

	env    *memhost.Env[route.Any]
	router *router.Router[route.Any]
}

// NewRunner creates a runner. reg receives the Screen registration and opts
// are passed to the router.
func NewRunner(reg *route.Registry, loop *uiloop.Loop, out io.Writer, opts ...router.Option) *Runner {
	return &Runner{reg: reg, loop: loop, out: out, opts: opts}
}

// Run plays sc against the engine named by kind ("" uses the scenario's).
// The UI loop runs for the duration of the call. A Runner runs once.
func (r *Runner) Run(ctx context.Context, sc *Scenario, kind string) error {
	return r.run(ctx, sc, kind, nil)
}

// run plays sc, then keeps the UI loop alive while then runs.
func (r *Runner) run(ctx context.Context, sc *Scenario, kind string, then func(ctx context.Context) error) error {
	if kind == "" {
		kind = sc.Engine
	}
	r.register(sc.Guarded)
	r.env = memhost.New[route.Any](kind != "legacy")
	r.router = router.NewAny(r.env, r.reg, r.opts...)

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(gctx)
	g.Go(func() error {
		if err := r.loop.Run(loopCtx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer stop()
		if err := r.play(loopCtx, sc); err != nil {
			return err
		}
		if then == nil {
			return nil
		}
		if err := then(loopCtx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return g.Wait()
}

func (r *Runner) play(ctx context.Context, sc *Scenario) error {
	rootName := sc.Root
	if rootName == "" {
		rootName = "root"
	}

	var header string
	err := r.loop.Call(ctx, func() {
		r.router.Mount(func() host.View { return rootName })
		header = fmt.Sprintf("engine %s, root %s", r.router.EngineKind(), rootName)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, header)

	for i, st := range sc.Steps {
		var line string
		err := r.loop.Call(ctx, func() {
			r.apply(st)
			line = fmt.Sprintf("%2d  %-28s logical=%s host=%s", i+1, st, names(r.router.CurrentStack()), r.hostStack())
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

// report prints the stacks after a step not driven by the scenario. Runs on
// the UI loop.
func (r *Runner) report(label string) {
	fmt.Fprintf(r.out, "    %-28s logical=%s host=%s\n", label, names(r.router.CurrentStack()), r.hostStack())
}

func (r *Runner) apply(st Step) {
	switch {
	case st.Push != "":
		r.router.Push(route.Wrap(Screen{Name: st.Push}))
	case st.Pop:
		r.router.Pop()
	case st.PopToRoot:
		r.router.PopToRoot()
	case st.Replace != nil:
		r.router.ReplaceStack(screens(st.Replace))
	case st.SetRoot != nil:
		r.router.SetRoot(route.Wrap(Screen{Name: st.SetRoot.Root}), screens(st.SetRoot.Children))
	case st.Swipe != 0:
		for range st.Swipe {
			r.userBack(false)
		}
	case st.TapBack:
		r.userBack(true)
	case st.Back:
		r.router.Back()
	}
}

// userBack simulates navigation the host performs without the router.
func (r *Runner) userBack(tap bool) {
	if r.router.EngineKind() == engine.KindModern {
		r.env.PathHost().UserSwipeBack()
		return
	}
	if tap {
		r.env.ControllerHost().TapBack()
		return
	}
	r.env.ControllerHost().UserSwipeBack()
}

func (r *Runner) hostStack() string {
	if r.router.EngineKind() == engine.KindModern {
		return names(r.env.PathHost().Routes())
	}
	frames := r.env.ControllerHost().Frames()
	out := make([]string, 0, len(frames))
	for _, f := range frames {
		a, ok := f.Route.(route.Any)
		if !ok {
			out = append(out, "<root>")
			continue
		}
		out = append(out, screenName(a))
	}
	return "[" + strings.Join(out, " ") + "]"
}

// SaveStack returns the router's logical stack as JSON.
func (r *Runner) SaveStack() ([]byte, error) {
	return router.SaveStack(r.router)
}

// register installs Screen, styled from the registry's catalog when it has
// an entry and titled from the screen name otherwise.
func (r *Runner) register(guarded []string) {
	title := cases.Title(language.English)
	style := route.Style[Screen]{
		Title: func(s Screen) (string, bool) { return title.String(s.Name), s.Name != "" },
		BackAction: func(s Screen) bool {
			return slices.Contains(guarded, s.Name)
		},
	}
	if d, ok := r.reg.CatalogStyle(route.TypeIDOf[Screen]()); ok {
		if d.TitleFunc != nil {
			style.Title = func(s Screen) (string, bool) { return d.Title(s) }
		}
		style.PrefersLargeTitles = d.PrefersLargeTitles
		style.BackgroundColor = d.BackgroundColor
		style.TitleColor = d.TitleColor
		style.TintColor = d.TintColor
	}
	route.RegisterMain(r.reg, func(s Screen) route.View { return "screen:" + s.Name }, route.WithStyle(style))
}

func screens(list []string) []route.Any {
	out := make([]route.Any, 0, len(list))
	for _, name := range list {
		out = append(out, route.Wrap(Screen{Name: name}))
	}
	return out
}

func screenName(a route.Any) string {
	if s, ok := route.As[Screen](a); ok {
		return s.Name
	}
	return a.String()
}

func names(stack []route.Any) string {
	out := make([]string, 0, len(stack))
	for _, a := range stack {
		out = append(out, screenName(a))
	}
	return "[" + strings.Join(out, " ") + "]"
}
