package testbed

import (
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/layout"
)

// LayoutBox is a fixed-size box that paints a dot in its color.
// With a non-zero Blink it repaints itself on that interval while attached.
type LayoutBox struct {
	layout.RenderBoxBase
	Width  float64
	Height float64
	Color  graphics.Color

	Paints int
	timer  *animation.PeriodicTimer
}

// NewLayoutBox creates a box of the given size.
func NewLayoutBox(width, height float64, color graphics.Color) *LayoutBox {
	b := &LayoutBox{Width: width, Height: height, Color: color}
	b.SetSelf(b)
	return b
}

// Blink makes the box repaint every interval while attached.
func (b *LayoutBox) Blink(interval time.Duration) *LayoutBox {
	b.timer = animation.NewPeriodicTimer(interval, func(time.Time) { b.MarkNeedsPaint() })
	return b
}

func (b *LayoutBox) DidAttach() {
	if b.timer != nil {
		b.timer.Start()
	}
}

func (b *LayoutBox) WillDetach() {
	if b.timer != nil {
		b.timer.Stop()
	}
}

func (b *LayoutBox) PerformLayout() {
	b.SetSize(b.Constraints().Constrain(graphics.Size{Width: b.Width, Height: b.Height}))
}

func (b *LayoutBox) Paint(ctx *layout.PaintContext) {
	b.Paints++
	if b.Color == 0 {
		return
	}
	size := b.Size()
	ctx.Canvas.DrawCircle(
		graphics.Offset{X: size.Width / 2, Y: size.Height / 2},
		min(size.Width, size.Height)/2,
		graphics.Paint{Color: b.Color},
	)
}
