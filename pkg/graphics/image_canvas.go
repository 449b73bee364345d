package graphics

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageCanvas rasterizes drawing commands onto an *image.RGBA.
//
// Shapes are scan-converted with golang.org/x/image/vector, which gives
// anti-aliased edges; text is drawn with the font.Face resolved at layout
// time. ImageCanvas supports translation only.
type ImageCanvas struct {
	img    *image.RGBA
	raster *vector.Rasterizer
	origin Offset
	stack  []Offset
}

// NewImageCanvas creates a canvas backed by a new transparent image of the
// given pixel size.
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

func (c *ImageCanvas) Save() {
	c.stack = append(c.stack, c.origin)
}

func (c *ImageCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.origin = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *ImageCanvas) Translate(dx, dy float64) {
	c.origin = c.origin.Translate(dx, dy)
}

func (c *ImageCanvas) Clear(color Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *ImageCanvas) DrawLine(start, end Offset, paint Paint) {
	if paint.Color.Alpha8() == 0 {
		return
	}
	start = start.Translate(c.origin.X, c.origin.Y)
	end = end.Translate(c.origin.X, c.origin.Y)
	half := math.Max(paint.StrokeWidth, 1) / 2

	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	c.beginPath()
	if length > 0 {
		ux, uy := dx/length, dy/length
		if paint.StrokeCap == CapSquare {
			start = start.Translate(-ux*half, -uy*half)
			end = end.Translate(ux*half, uy*half)
		}
		// Wound the same way as circlePath so caps add to the body.
		nx, ny := uy*half, -ux*half
		c.raster.MoveTo(float32(start.X+nx), float32(start.Y+ny))
		c.raster.LineTo(float32(end.X+nx), float32(end.Y+ny))
		c.raster.LineTo(float32(end.X-nx), float32(end.Y-ny))
		c.raster.LineTo(float32(start.X-nx), float32(start.Y-ny))
		c.raster.ClosePath()
	}
	if paint.StrokeCap == CapRound {
		c.circlePath(start, half, false)
		c.circlePath(end, half, false)
	}
	c.fill(paint.Color)
}

func (c *ImageCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if paint.Color.Alpha8() == 0 || radius <= 0 {
		return
	}
	center = center.Translate(c.origin.X, c.origin.Y)
	half := paint.StrokeWidth / 2
	c.beginPath()
	switch paint.Style {
	case PaintStyleStroke:
		c.circlePath(center, radius+half, false)
		if inner := radius - half; inner > 0 {
			c.circlePath(center, inner, true)
		}
	case PaintStyleFillAndStroke:
		c.circlePath(center, radius+half, false)
	default:
		c.circlePath(center, radius, false)
	}
	c.fill(paint.Color)
}

func (c *ImageCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil {
		return
	}
	position = position.Translate(c.origin.X, c.origin.Y)
	baseline := position.Y + layout.Ascent
	for _, run := range layout.Runs {
		if run.Face == nil || run.Text == "" {
			continue
		}
		drawer := font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(run.Style.Color.NRGBA()),
			Face: run.Face,
			Dot: fixed.Point26_6{
				X: floatToFixed(position.X + run.X),
				Y: floatToFixed(baseline),
			},
		}
		drawer.DrawString(run.Text)
	}
}

func (c *ImageCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *ImageCanvas) beginPath() {
	b := c.img.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
}

func (c *ImageCanvas) fill(color Color) {
	c.raster.DrawOp = draw.Over
	c.raster.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{})
}

// circlePath appends a closed polygon approximating a circle. Reversed
// winding cuts a hole out of an enclosing shape.
func (c *ImageCanvas) circlePath(center Offset, radius float64, reverse bool) {
	segments := max(16, int(math.Ceil(2*math.Pi*radius/2)))
	step := 2 * math.Pi / float64(segments)
	if reverse {
		step = -step
	}
	c.raster.MoveTo(float32(center.X+radius), float32(center.Y))
	for i := 1; i < segments; i++ {
		theta := float64(i) * step
		c.raster.LineTo(float32(center.X+radius*math.Cos(theta)), float32(center.Y+radius*math.Sin(theta)))
	}
	c.raster.ClosePath()
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
