// Package platform routes callbacks onto the UI thread.
package platform

import (
	"sync"
	"time"
)

// Dispatcher runs callbacks on the UI thread.
type Dispatcher interface {
	// Post queues callback to run as soon as possible.
	Post(callback func())
	// PostDelayed queues callback to run after delay. The returned function
	// removes the callback if it has not run yet.
	PostDelayed(delay time.Duration, callback func()) (cancel func())
}

var (
	dispatchMu sync.RWMutex
	dispatcher Dispatcher
)

// RegisterDispatcher sets the dispatcher used to schedule callbacks on the UI
// thread and returns the previous one. The engine calls this during
// initialization; passing nil unregisters.
func RegisterDispatcher(d Dispatcher) Dispatcher {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()
	prev := dispatcher
	dispatcher = d
	return prev
}

func currentDispatcher() Dispatcher {
	dispatchMu.RLock()
	defer dispatchMu.RUnlock()
	return dispatcher
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatcher
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	d := currentDispatcher()
	if d == nil || callback == nil {
		return false
	}
	d.Post(callback)
	return true
}

// DispatchAfter schedules a callback to run on the UI thread after delay.
// The cancel function is safe to call more than once and after the callback
// has run. ok is false if nothing was scheduled.
func DispatchAfter(delay time.Duration, callback func()) (cancel func(), ok bool) {
	d := currentDispatcher()
	if d == nil || callback == nil {
		return func() {}, false
	}
	return d.PostDelayed(delay, callback), true
}
