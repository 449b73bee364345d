package animation

import (
	stderrors "errors"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/platform"
)

// ErrNoDispatcher is reported when a timer starts before the engine has
// registered a platform dispatcher.
var ErrNoDispatcher = stderrors.New("no platform dispatcher registered")

// PeriodicTimer calls a callback on the UI thread at a fixed interval.
//
// Each run posts one deferred callback through [platform.DispatchAfter].
// The next run is armed only after the callback returns, so the period is
// the interval plus the callback's own cost. At most one callback is pending
// per timer.
//
// The first run is posted with zero delay, so a started timer fires on the
// next turn of the UI loop.
type PeriodicTimer struct {
	interval time.Duration
	callback func(now time.Time)

	mu         sync.Mutex
	active     bool
	cancel     func()
	generation uint64
}

// NewPeriodicTimer creates a stopped timer. A non-positive interval defaults
// to one second.
func NewPeriodicTimer(interval time.Duration, callback func(now time.Time)) *PeriodicTimer {
	if interval <= 0 {
		interval = time.Second
	}
	return &PeriodicTimer{interval: interval, callback: callback}
}

// Interval returns the delay between runs.
func (t *PeriodicTimer) Interval() time.Duration {
	return t.interval
}

// Start activates the timer. Starting an active timer does nothing.
func (t *PeriodicTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return
	}
	t.active = true
	t.generation++
	t.scheduleLocked(0)
}

// Stop deactivates the timer and cancels the pending run, if any.
func (t *PeriodicTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	t.active = false
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// IsActive reports whether the timer is running.
func (t *PeriodicTimer) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *PeriodicTimer) scheduleLocked(delay time.Duration) {
	gen := t.generation
	cancel, ok := platform.DispatchAfter(delay, func() { t.fire(gen) })
	if !ok {
		t.active = false
		t.cancel = nil
		errors.Report(&errors.DriftError{
			Op:   "animation.PeriodicTimer.Start",
			Kind: errors.KindDispatch,
			Err:  ErrNoDispatcher,
		})
		return
	}
	t.cancel = cancel
}

func (t *PeriodicTimer) fire(gen uint64) {
	t.mu.Lock()
	if !t.active || gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.cancel = nil
	t.mu.Unlock()

	if t.callback != nil {
		t.callback(Now())
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active && gen == t.generation {
		t.scheduleLocked(t.interval)
	}
}
