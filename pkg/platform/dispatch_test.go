package platform

import (
	"testing"
	"time"
)

type recordingDispatcher struct {
	posted  []func()
	delays  []time.Duration
	cancels int
}

func (d *recordingDispatcher) Post(callback func()) {
	d.posted = append(d.posted, callback)
}

func (d *recordingDispatcher) PostDelayed(delay time.Duration, callback func()) func() {
	d.posted = append(d.posted, callback)
	d.delays = append(d.delays, delay)
	return func() { d.cancels++ }
}

func TestDispatchWithoutDispatcher(t *testing.T) {
	prev := RegisterDispatcher(nil)
	defer RegisterDispatcher(prev)

	if Dispatch(func() {}) {
		t.Error("Dispatch should fail without a dispatcher")
	}
	cancel, ok := DispatchAfter(time.Second, func() {})
	if ok {
		t.Error("DispatchAfter should fail without a dispatcher")
	}
	cancel()
}

func TestDispatchRoutesToDispatcher(t *testing.T) {
	d := &recordingDispatcher{}
	prev := RegisterDispatcher(d)
	defer RegisterDispatcher(prev)

	ran := 0
	if !Dispatch(func() { ran++ }) {
		t.Fatal("Dispatch returned false")
	}
	cancel, ok := DispatchAfter(time.Second, func() { ran++ })
	if !ok {
		t.Fatal("DispatchAfter returned false")
	}
	cancel()

	if len(d.posted) != 2 {
		t.Fatalf("posted = %d, want 2", len(d.posted))
	}
	if len(d.delays) != 1 || d.delays[0] != time.Second {
		t.Errorf("delays = %v, want [1s]", d.delays)
	}
	if d.cancels != 1 {
		t.Errorf("cancels = %d, want 1", d.cancels)
	}
	for _, fn := range d.posted {
		fn()
	}
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

func TestDispatchNilCallback(t *testing.T) {
	d := &recordingDispatcher{}
	prev := RegisterDispatcher(d)
	defer RegisterDispatcher(prev)

	if Dispatch(nil) {
		t.Error("Dispatch(nil) should return false")
	}
	if _, ok := DispatchAfter(0, nil); ok {
		t.Error("DispatchAfter with nil callback should return false")
	}
	if len(d.posted) != 0 {
		t.Error("nil callbacks must not reach the dispatcher")
	}
}
