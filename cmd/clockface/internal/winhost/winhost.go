// Package winhost runs a render object in a desktop window.
//
// The host implements ebiten.Game. Update is the UI thread: it drains the
// engine's looper, so timers and frames run there, and Draw replays the last
// recorded frame onto the screen.
package winhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/go-drift/clockface/pkg/engine"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/widgets"
)

// Host is an ebiten.Game showing a clock.
type Host struct {
	clock    *widgets.Clock
	engine   *engine.Engine
	attached bool
	// size is the latest window size reported to Layout.
	size graphics.Size
}

// New creates a host for clock with a surface of the given size.
func New(clock *widgets.Clock, size graphics.Size, opts ...engine.Option) *Host {
	return &Host{
		clock:  clock,
		engine: engine.New(size, opts...),
		size:   size,
	}
}

// Engine returns the engine hosting the clock.
func (h *Host) Engine() *engine.Engine {
	return h.engine
}

// Update handles input and runs due looper messages.
func (h *Host) Update() error {
	h.sync()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.Toggle()
	}
	h.engine.Looper().RunPending()
	return nil
}

// sync attaches the clock on the first update and applies the window size.
func (h *Host) sync() {
	if !h.attached {
		h.engine.SetRoot(h.clock)
		h.attached = true
	}
	h.engine.SetSize(h.size)
}

// Toggle switches the clock between the dial and the digital readout.
func (h *Host) Toggle() {
	h.clock.SetShowAnalog(!h.clock.ShowAnalog())
}

// Draw replays the last frame.
func (h *Host) Draw(screen *ebiten.Image) {
	frame := h.engine.LastFrame()
	if frame == nil {
		return
	}
	frame.Paint(NewCanvas(screen))
}

// Layout records the window size; the next Update resizes the surface.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.size = graphics.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

// Close detaches the clock and releases the engine.
func (h *Host) Close() {
	h.engine.Close()
}

// Run opens a window titled title and blocks until it is closed.
func Run(h *Host, title string) error {
	defer h.Close()
	size := h.engine.Size()
	ebiten.SetWindowSize(int(size.Width), int(size.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(h); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
