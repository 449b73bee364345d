package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/engine"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/layout"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600

	// maxPumpPasses bounds Pump so a message that keeps re-posting itself
	// with no delay cannot hang a test.
	maxPumpPasses = 1000
)

// ErrPumpLimit is returned when Pump keeps finding due messages after
// maxPumpPasses passes.
var ErrPumpLimit = errors.New("Pump exceeded its pass limit: messages keep re-posting with no delay")

// RenderTester hosts a render object in a real engine driven by a fake
// clock. Timers, frame scheduling, and dispatch all run on the engine's
// looper, which only advances when the test calls Pump or Advance.
type RenderTester struct {
	clock     *FakeClock
	prevClock animation.Clock
	engine    *engine.Engine
	frames    []*graphics.DisplayList
	closed    bool
}

// NewRenderTester creates a tester with the default surface size.
// Call Close when done, or use NewRenderTesterWithT instead.
func NewRenderTester() *RenderTester {
	clk := NewFakeClock()
	t := &RenderTester{clock: clk}
	t.prevClock = animation.SetClock(clk)
	t.engine = engine.New(
		graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		engine.WithFrameListener(func(frame *graphics.DisplayList) {
			t.frames = append(t.frames, frame)
		}),
	)
	return t
}

// NewRenderTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewRenderTesterWithT(t *testing.T) *RenderTester {
	tester := NewRenderTester()
	t.Cleanup(tester.Close)
	return tester
}

// Close detaches the root, restores the platform dispatcher, and restores
// the animation clock. Closing twice does nothing.
func (t *RenderTester) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.engine.Close()
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock. Prefer Advance, which also pumps.
func (t *RenderTester) Clock() *FakeClock {
	return t.clock
}

// Engine returns the engine hosting the root.
func (t *RenderTester) Engine() *engine.Engine {
	return t.engine
}

// SetSize sets the logical surface size.
func (t *RenderTester) SetSize(size graphics.Size) {
	t.engine.SetSize(size)
}

// PumpRoot installs root as the engine's root and pumps.
func (t *RenderTester) PumpRoot(root layout.RenderBox) error {
	t.engine.SetRoot(root)
	return t.Pump()
}

// Pump runs looper messages until none are due at the current fake time.
// Messages posted during a pass, such as the frame a repaint request
// schedules, run in the following pass.
func (t *RenderTester) Pump() error {
	looper := t.engine.Looper()
	for range maxPumpPasses {
		if looper.RunPending() == 0 {
			return nil
		}
	}
	return ErrPumpLimit
}

// Advance moves the fake clock forward by d in one step and pumps.
func (t *RenderTester) Advance(d time.Duration) error {
	t.clock.Advance(d)
	return t.Pump()
}

// AdvanceBy moves the fake clock forward by d in steps of at most step,
// pumping after each one.
func (t *RenderTester) AdvanceBy(d, step time.Duration) error {
	if step <= 0 {
		return t.Advance(d)
	}
	for d > 0 {
		s := min(step, d)
		if err := t.Advance(s); err != nil {
			return err
		}
		d -= s
	}
	return nil
}

// Frames returns the number of frames drawn so far.
func (t *RenderTester) Frames() int {
	return len(t.frames)
}

// LastFrame returns the most recent frame, or nil.
func (t *RenderTester) LastFrame() *graphics.DisplayList {
	if len(t.frames) == 0 {
		return nil
	}
	return t.frames[len(t.frames)-1]
}

// LastFrameOps returns the most recent frame as serialized ops.
func (t *RenderTester) LastFrameOps() []DisplayOp {
	frame := t.LastFrame()
	if frame == nil {
		return nil
	}
	return SerializeDisplayList(frame)
}
