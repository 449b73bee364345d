package winhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/go-drift/clockface/pkg/graphics"
)

// Canvas replays drawing commands onto an ebiten image. Lines and circles
// go through the vector package with anti-aliasing on; text is drawn with
// the font.Face each run was laid out with.
type Canvas struct {
	dst    *ebiten.Image
	origin graphics.Offset
	stack  []graphics.Offset
}

// NewCanvas creates a canvas drawing onto dst.
func NewCanvas(dst *ebiten.Image) *Canvas {
	return &Canvas{dst: dst}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.origin)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.origin = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.origin = c.origin.Translate(dx, dy)
}

func (c *Canvas) Clear(color graphics.Color) {
	c.dst.Fill(color.NRGBA())
}

func (c *Canvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	if paint.Color.Alpha8() == 0 {
		return
	}
	start = start.Translate(c.origin.X, c.origin.Y)
	end = end.Translate(c.origin.X, c.origin.Y)
	width := float32(max(paint.StrokeWidth, 1))
	clr := paint.Color.NRGBA()

	vector.StrokeLine(c.dst, float32(start.X), float32(start.Y), float32(end.X), float32(end.Y), width, clr, true)
	if paint.StrokeCap == graphics.CapRound {
		vector.DrawFilledCircle(c.dst, float32(start.X), float32(start.Y), width/2, clr, true)
		vector.DrawFilledCircle(c.dst, float32(end.X), float32(end.Y), width/2, clr, true)
	}
}

func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	if paint.Color.Alpha8() == 0 || radius <= 0 {
		return
	}
	center = center.Translate(c.origin.X, c.origin.Y)
	cx, cy := float32(center.X), float32(center.Y)
	clr := paint.Color.NRGBA()

	switch paint.Style {
	case graphics.PaintStyleStroke:
		vector.StrokeCircle(c.dst, cx, cy, float32(radius), float32(paint.StrokeWidth), clr, true)
	case graphics.PaintStyleFillAndStroke:
		vector.DrawFilledCircle(c.dst, cx, cy, float32(radius+paint.StrokeWidth/2), clr, true)
	default:
		vector.DrawFilledCircle(c.dst, cx, cy, float32(radius), clr, true)
	}
}

func (c *Canvas) DrawText(layout *graphics.TextLayout, position graphics.Offset) {
	if layout == nil {
		return
	}
	position = position.Translate(c.origin.X, c.origin.Y)
	baseline := int(position.Y + layout.Ascent)
	for _, run := range layout.Runs {
		if run.Face == nil || run.Text == "" {
			continue
		}
		text.Draw(c.dst, run.Text, run.Face, int(position.X+run.X), baseline, run.Style.Color.NRGBA())
	}
}

func (c *Canvas) Size() graphics.Size {
	b := c.dst.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
