package swipe

import (
	"context"
	"errors"
	"time"
)

// ErrLoopStopped is returned by Loop calls made after Run has returned.
var ErrLoopStopped = errors.New("swipe: loop stopped")

// Timer is a cancellable scheduled task.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred work. The real clock wraps time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Loop serializes every input, timer callback and query for a Controller
// onto one goroutine. Deferred removals are timers keyed by card id; they
// post back into the queue rather than touching the deck directly.
type Loop struct {
	ctrl     *Controller
	clock    Clock
	queue    chan func()
	done     chan struct{}
	timers   map[string]Timer
	observer func(Snapshot)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the wall clock used for deferred removals.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithObserver registers a callback invoked on the loop goroutine with a
// fresh snapshot after every state change.
func WithObserver(fn func(Snapshot)) LoopOption {
	return func(l *Loop) { l.observer = fn }
}

// WithQueueSize sets the event queue buffer.
func WithQueueSize(n int) LoopOption {
	return func(l *Loop) { l.queue = make(chan func(), n) }
}

// NewLoop wraps ctrl. The controller must not be used directly once Run
// has started.
func NewLoop(ctrl *Controller, opts ...LoopOption) *Loop {
	l := &Loop{
		ctrl:   ctrl,
		clock:  realClock{},
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
		timers: make(map[string]Timer),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes events until ctx is cancelled. Pending timers are stopped
// on exit.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		close(l.done)
		for id, t := range l.timers {
			t.Stop()
			delete(l.timers, id)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (l *Loop) post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case <-l.done:
		return ErrLoopStopped
	case l.queue <- fn:
		return nil
	}
}

// call posts fn and waits for it to run.
func (l *Loop) call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	if err := l.post(func() { fn(); close(ran) }); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) notify() {
	if l.observer != nil {
		l.observer(l.ctrl.Snapshot())
	}
}

func (l *Loop) cancelTimers() {
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
}

func (l *Loop) schedule(r Removal) {
	l.timers[r.CardID] = l.clock.AfterFunc(r.Delay, func() {
		_ = l.post(func() { l.complete(r) })
	})
}

func (l *Loop) complete(r Removal) {
	// a stale callback must not drop the timer of a newer generation
	if r.Generation == l.ctrl.Generation() {
		delete(l.timers, r.CardID)
	}
	if _, ok := l.ctrl.Remove(r); ok {
		l.notify()
	}
}

// Initialize replaces the deck and cancels any scheduled removal.
func (l *Loop) Initialize(ctx context.Context, cards []CardRecord) error {
	var err error
	if cerr := l.call(ctx, func() {
		if err = l.ctrl.Initialize(cards); err != nil {
			return
		}
		l.cancelTimers()
		l.notify()
	}); cerr != nil {
		return cerr
	}
	return err
}

// Reset restores the original deck and cancels any scheduled removal.
func (l *Loop) Reset(ctx context.Context) error {
	return l.call(ctx, func() {
		l.ctrl.Reset()
		l.cancelTimers()
		l.notify()
	})
}

// Pointer enqueues a pointer event without waiting for it to be handled.
func (l *Loop) Pointer(ev PointerEvent) error {
	return l.post(func() {
		if r, ok := l.ctrl.Handle(ev); ok {
			l.schedule(r)
		}
		l.notify()
	})
}

// Swipe commits a card directly, as a button press would.
func (l *Loop) Swipe(cardID string, dir Direction) error {
	return l.post(func() {
		if r, ok := l.ctrl.Swipe(cardID, dir); ok {
			l.schedule(r)
			l.notify()
		}
	})
}

// Settle returns a snapped-back card to idle.
func (l *Loop) Settle(cardID string) error {
	return l.post(func() {
		l.ctrl.Settle(cardID)
		l.notify()
	})
}

// Snapshot returns the current engine output. It is ordered after every
// event posted before it.
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := l.call(ctx, func() { s = l.ctrl.Snapshot() })
	return s, err
}

// Deck returns every remaining card in stacking order.
func (l *Loop) Deck(ctx context.Context) ([]CardRecord, error) {
	var d []CardRecord
	err := l.call(ctx, func() { d = l.ctrl.Deck() })
	return d, err
}
