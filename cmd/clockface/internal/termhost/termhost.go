// Package termhost runs a render object in a terminal.
//
// Each frame is rasterized with graphics.ImageCanvas onto a surface twice
// as tall as the terminal, then copied to the screen as upper half-block
// cells: the foreground paints the top pixel and the background the bottom
// one, which keeps pixels roughly square.
package termhost

import (
	"context"
	"errors"
	"image"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/clockface/pkg/engine"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/widgets"
)

const upperHalfBlock = '▀'

// Action is what a key press asks the host to do.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionQuit
)

// KeyAction maps a key to an action: m toggles the clock mode, q, Esc and
// Ctrl+C quit.
func KeyAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch r {
		case 'm', 'M':
			return ActionToggle
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

// SurfaceSize returns the pixel surface for a terminal of cols x rows cells.
func SurfaceSize(cols, rows int) graphics.Size {
	return graphics.Size{Width: float64(cols), Height: float64(rows * 2)}
}

// Blit copies img onto screen, two vertical pixels per cell. Pixels outside
// img are black.
func Blit(screen tcell.Screen, img *image.RGBA) {
	cols, rows := screen.Size()
	for y := range rows {
		for x := range cols {
			style := tcell.StyleDefault.
				Foreground(pixel(img, x, 2*y)).
				Background(pixel(img, x, 2*y+1))
			screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
}

func pixel(img *image.RGBA, x, y int) tcell.Color {
	p := image.Pt(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	if !p.In(img.Bounds()) {
		return tcell.ColorBlack
	}
	c := img.RGBAAt(p.X, p.Y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Host drives an engine whose frames are shown on a tcell screen.
type Host struct {
	screen tcell.Screen
	clock  *widgets.Clock
	engine *engine.Engine
	frames atomic.Int64
}

// New creates a host for clock. The screen must already be initialized;
// the caller finalizes it after Run returns.
func New(screen tcell.Screen, clock *widgets.Clock, opts ...engine.Option) *Host {
	h := &Host{screen: screen, clock: clock}
	cols, rows := screen.Size()
	opts = append(opts, engine.WithFrameListener(h.present))
	h.engine = engine.New(SurfaceSize(cols, rows), opts...)
	return h
}

// Engine returns the engine hosting the clock. Outside Run, it may only be
// used before Run starts or after it returns.
func (h *Host) Engine() *engine.Engine {
	return h.engine
}

// Frames returns how many frames have been shown.
func (h *Host) Frames() int {
	return int(h.frames.Load())
}

func (h *Host) present(frame *graphics.DisplayList) {
	size := frame.Size()
	canvas := graphics.NewImageCanvas(int(size.Width), int(size.Height))
	frame.Paint(canvas)
	Blit(h.screen, canvas.Image())
	h.screen.Show()
	h.frames.Add(1)
}

// Run shows the clock until ctx is cancelled or a quit key is pressed. The
// engine's looper runs on its own goroutine and is the only goroutine that
// touches the clock.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	looper := h.engine.Looper()
	done := make(chan error, 1)
	go func() { done <- looper.Run(ctx) }()
	looper.Post(func() { h.engine.SetRoot(h.clock) })

	var err error
loop:
	for {
		select {
		case ev := <-events:
			if h.handle(ev) == ActionQuit {
				break loop
			}
		case err = <-done:
			break loop
		}
	}
	cancel()
	if err == nil {
		err = <-done
	}

	// The looper has stopped, so this goroutine now owns the engine.
	h.engine.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Host) handle(ev tcell.Event) Action {
	looper := h.engine.Looper()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		looper.Post(func() { h.engine.SetSize(SurfaceSize(cols, rows)) })
		h.screen.Sync()
	case *tcell.EventKey:
		action := KeyAction(ev.Key(), ev.Rune())
		if action == ActionToggle {
			looper.Post(func() { h.clock.SetShowAnalog(!h.clock.ShowAnalog()) })
		}
		return action
	}
	return ActionNone
}
