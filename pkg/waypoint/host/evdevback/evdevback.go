//go:build linux

package evdevback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/uiloop"
	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"
)

// EV_KEY value for a press; 0 is a release and 2 an autorepeat.
const keyPressed int32 = 1

// DefaultKeys are the key codes treated as back.
var DefaultKeys = []evdev.EvCode{evdev.KEY_BACK, evdev.KEY_ESC}

// Source is a stream of input events. *evdev.InputDevice satisfies it.
type Source interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Backer is satisfied by *router.Router.
type Backer interface {
	Back() bool
}

// Listener reads key events and posts onBack for every back press.
type Listener struct {
	keys    map[evdev.EvCode]struct{}
	post    func(func())
	onBack  func()
	logger  *slog.Logger
	presses atomic.Int64
}

// Option configures a Listener.
type Option func(*Listener)

// WithKeys replaces DefaultKeys.
func WithKeys(codes ...evdev.EvCode) Option {
	return func(l *Listener) {
		l.keys = make(map[evdev.EvCode]struct{}, len(codes))
		for _, c := range codes {
			l.keys[c] = struct{}{}
		}
	}
}

// WithLogger replaces the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Listener) { l.logger = logger }
}

// New creates a listener. post hands work to the UI context, onBack runs
// there once per press.
func New(post func(func()), onBack func(), opts ...Option) *Listener {
	l := &Listener{
		post:   post,
		onBack: onBack,
		logger: internal.GetInternalLogger(),
	}
	WithKeys(DefaultKeys...)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ForRouter creates a listener that calls r.Back on loop.
func ForRouter(loop *uiloop.Loop, r Backer, opts ...Option) *Listener {
	return New(loop.Post, func() { r.Back() }, opts...)
}

// Presses counts the back presses delivered so far.
func (l *Listener) Presses() int64 { return l.presses.Load() }

// Listen opens the input device at path and serves it until ctx is done.
func (l *Listener) Listen(ctx context.Context, path string) error {
	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("evdevback: open %s: %w", path, err)
	}
	name, _ := dev.Name()
	l.logger.Info("listening for hardware back", "device", name, "path", path)
	return l.Serve(ctx, dev)
}

// Serve reads src until ctx is done or a read fails, then closes src.
func (l *Listener) Serve(ctx context.Context, src Source) error {
	stop := context.AfterFunc(ctx, func() { _ = src.Close() })
	defer func() {
		if stop() {
			_ = src.Close()
		}
	}()

	for {
		ev, err := src.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("evdevback: read: %w", err)
		}
		if !l.isBackPress(ev) {
			continue
		}
		l.presses.Inc()
		l.logger.Debug("hardware back pressed", "code", ev.Code)
		l.post(l.onBack)
	}
}

// isBackPress ignores releases and autorepeat.
func (l *Listener) isBackPress(ev *evdev.InputEvent) bool {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Value != keyPressed {
		return false
	}
	_, ok := l.keys[ev.Code]
	return ok
}
