package engine

import (
	"sync/atomic"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/layout"
	"github.com/go-drift/clockface/pkg/platform"
)

// FrameListener receives every frame the engine records.
type FrameListener func(frame *graphics.DisplayList)

// Option configures an Engine.
type Option func(*Engine)

// WithBackground sets the color each frame is cleared to.
func WithBackground(color graphics.Color) Option {
	return func(e *Engine) { e.background = color }
}

// WithFrameListener registers a callback invoked after each frame.
func WithFrameListener(listener FrameListener) Option {
	return func(e *Engine) { e.onFrame = listener }
}

// WithLooper makes the engine use an existing looper.
func WithLooper(looper *Looper) Option {
	return func(e *Engine) { e.looper = looper }
}

// Engine hosts one root render object on a surface of fixed logical size.
//
// The engine registers its looper as the platform dispatcher, so timers and
// other deferred work started by render objects run on the engine's UI
// thread. Any layout or paint request schedules a single frame on the
// looper; the frame lays out the root with loose constraints bounded by the
// surface, and records the paint into a display list that hosts replay on
// their own canvas.
//
// Engine methods other than ScheduleFrame must be called on the UI thread,
// i.e. from looper callbacks or from the goroutine driving the looper.
type Engine struct {
	looper     *Looper
	owner      *layout.PipelineOwner
	root       layout.RenderBox
	size       graphics.Size
	background graphics.Color
	onFrame    FrameListener

	recorder       graphics.PictureRecorder
	lastFrame      *graphics.DisplayList
	frames         int
	frameScheduled atomic.Bool
	surfaceDirty   bool
	prevDispatcher platform.Dispatcher
	closed         bool
}

// New creates an engine for a surface of the given size.
func New(size graphics.Size, opts ...Option) *Engine {
	e := &Engine{
		size:       size,
		background: graphics.ColorBlack,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.looper == nil {
		e.looper = NewLooper()
	}
	e.owner = &layout.PipelineOwner{OnNeedVisualUpdate: e.ScheduleFrame}
	e.prevDispatcher = platform.RegisterDispatcher(e.looper)
	return e
}

// Looper returns the engine's message queue.
func (e *Engine) Looper() *Looper {
	return e.looper
}

// Owner returns the pipeline owner render objects attach to.
func (e *Engine) Owner() *layout.PipelineOwner {
	return e.owner
}

// Root returns the hosted render object.
func (e *Engine) Root() layout.RenderBox {
	return e.root
}

// SetRoot replaces the hosted render object. The previous root is detached,
// which stops its timers, and the new one is attached.
func (e *Engine) SetRoot(root layout.RenderBox) {
	if e.root == root {
		return
	}
	if e.root != nil {
		e.root.Detach()
	}
	e.root = root
	if root != nil && !e.closed {
		root.Attach(e.owner)
	}
	e.surfaceDirty = true
	e.ScheduleFrame()
}

// Size returns the surface size.
func (e *Engine) Size() graphics.Size {
	return e.size
}

// SetSize resizes the surface and schedules a relayout.
func (e *Engine) SetSize(size graphics.Size) {
	if e.size == size {
		return
	}
	e.size = size
	if e.root != nil {
		e.root.MarkNeedsLayout()
	}
	e.surfaceDirty = true
	e.ScheduleFrame()
}

// ScheduleFrame posts a frame to the looper unless one is already pending.
// It is safe to call from any goroutine.
func (e *Engine) ScheduleFrame() {
	if !e.frameScheduled.CompareAndSwap(false, true) {
		return
	}
	e.looper.Post(func() {
		e.frameScheduled.Store(false)
		e.DrawFrame()
	})
}

// FrameScheduled reports whether a frame is pending on the looper.
func (e *Engine) FrameScheduled() bool {
	return e.frameScheduled.Load()
}

// DrawFrame lays out the root and, when it or the surface changed since the
// last frame, paints it and returns the recorded frame. A frame with nothing
// to repaint returns the previous frame without notifying listeners. It
// returns nil when there is no root or the engine is closed. Panics in
// layout or paint are reported and leave the previous frame in place.
func (e *Engine) DrawFrame() (frame *graphics.DisplayList) {
	if e.root == nil || e.closed {
		return nil
	}
	defer errors.RecoverWithCallback("engine.DrawFrame", func(any) {
		e.recorder.EndRecording()
		e.surfaceDirty = true
		frame = nil
	})

	relayout := e.owner.NeedsLayout()
	e.owner.FlushLayoutForRoot(e.root, layout.Loose(e.size))
	dirty := e.owner.FlushPaint()
	if len(dirty) == 0 && !relayout && !e.surfaceDirty && e.lastFrame != nil {
		return e.lastFrame
	}

	canvas := e.recorder.BeginRecording(e.size)
	canvas.Clear(e.background)
	e.root.Paint(&layout.PaintContext{Canvas: canvas})
	frame = e.recorder.EndRecording()

	for _, obj := range append(dirty, e.root) {
		if painted, ok := obj.(interface{ ClearNeedsPaint() }); ok {
			painted.ClearNeedsPaint()
		}
	}
	e.surfaceDirty = false
	e.lastFrame = frame
	e.frames++
	if e.onFrame != nil {
		e.onFrame(frame)
	}
	return frame
}

// LastFrame returns the most recently recorded frame, or nil.
func (e *Engine) LastFrame() *graphics.DisplayList {
	return e.lastFrame
}

// Frames returns how many frames have been drawn.
func (e *Engine) Frames() int {
	return e.frames
}

// Close detaches the root and restores the previous platform dispatcher.
// Closing twice does nothing.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if e.root != nil {
		e.root.Detach()
	}
	platform.RegisterDispatcher(e.prevDispatcher)
}
