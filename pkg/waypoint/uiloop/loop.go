// Package uiloop provides the confined UI execution context. Routers,
// engines and confined route builders run on it; anything originating on
// another goroutine (hardware keys, host callbacks, background work) is
// handed over with Post or Call.
package uiloop

import (
	"context"
	"errors"

	"go.uber.org/atomic"
)

// ErrStopped is returned by Call when the loop is not running.
var ErrStopped = errors.New("ui loop stopped")

// Loop runs queued tasks one at a time on the goroutine that called Run.
type Loop struct {
	tasks   chan func()
	running atomic.Bool
	stopped atomic.Bool
	busy    atomic.Bool
	done    chan struct{}
}

// New creates a loop with room for queue pending tasks.
func New(queue int) *Loop {
	if queue < 1 {
		queue = 1
	}
	return &Loop{
		tasks: make(chan func(), queue),
		done:  make(chan struct{}),
	}
}

// Run drains tasks until ctx is cancelled. Call it from the goroutine that
// owns the UI. A loop runs once; Run returns ErrStopped afterwards.
func (l *Loop) Run(ctx context.Context) error {
	if l.stopped.Load() {
		return ErrStopped
	}
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("ui loop already running")
	}
	defer close(l.done)
	defer l.running.Store(false)
	defer l.stopped.Store(true)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	l.busy.Store(true)
	defer l.busy.Store(false)
	fn()
}

// Post enqueues fn without waiting. It blocks only while the queue is full.
// Tasks posted once the loop has stopped are dropped.
func (l *Loop) Post(fn func()) {
	if l.stopped.Load() {
		return
	}
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Call runs fn on the loop and waits for it to return. A call made before Run
// starts waits for it. It must not be called from a task already running on
// the loop.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	if l.stopped.Load() {
		return ErrStopped
	}
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

// Confined reports whether a loop task is executing. It does not identify
// the calling goroutine, so another goroutine running at the same moment as
// a task also sees true. Used for best-effort debug assertions only.
func (l *Loop) Confined() bool {
	return l.busy.Load()
}

// Running reports whether Run is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
