package widgets

import (
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/layout"
)

// Clock is a render box that shows the current time as an analog dial or as
// digital text.
//
// The clock is always square. While attached to a pipeline it repaints
// itself once per refresh interval; the redraw timer is started in
// DidAttach and stopped in WillDetach, so a detached clock leaves nothing
// scheduled.
//
//	clock := widgets.NewClock(
//	    widgets.WithStyle(style),
//	    widgets.WithShowAnalog(false),
//	)
//	eng.SetRoot(clock)
//
// Clock methods must be called on the UI thread.
type Clock struct {
	layout.RenderBoxBase

	style      ClockStyle
	showAnalog bool
	padding    layout.EdgeInsets
	location   *time.Location
	fonts      *graphics.FontManager
	interval   time.Duration
	onTick     func(now time.Time)
	timer      *animation.PeriodicTimer
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithStyle sets the clock's colors and sizes.
func WithStyle(style ClockStyle) ClockOption {
	return func(c *Clock) { c.style = style }
}

// WithPadding insets the dial within the clock's bounds.
func WithPadding(padding layout.EdgeInsets) ClockOption {
	return func(c *Clock) { c.padding = padding }
}

// WithLocation shows the time in loc instead of the local time zone.
func WithLocation(loc *time.Location) ClockOption {
	return func(c *Clock) { c.location = loc }
}

// WithShowAnalog selects the initial display mode.
func WithShowAnalog(show bool) ClockOption {
	return func(c *Clock) { c.showAnalog = show }
}

// WithTickListener registers a callback run after each scheduled repaint
// request, with the time of the tick.
func WithTickListener(listener func(now time.Time)) ClockOption {
	return func(c *Clock) { c.onTick = listener }
}

// WithRefreshInterval changes how often the clock repaints.
func WithRefreshInterval(interval time.Duration) ClockOption {
	return func(c *Clock) { c.interval = interval }
}

// WithFontManager sets the font manager used for numerals.
func WithFontManager(fonts *graphics.FontManager) ClockOption {
	return func(c *Clock) { c.fonts = fonts }
}

// NewClock creates an analog clock with the default style.
func NewClock(opts ...ClockOption) *Clock {
	c := &Clock{
		style:      DefaultClockStyle(),
		showAnalog: true,
		interval:   time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SetSelf(c)
	c.timer = animation.NewPeriodicTimer(c.interval, c.tick)
	return c
}

func (c *Clock) tick(now time.Time) {
	c.MarkNeedsPaint()
	if c.onTick != nil {
		c.onTick(now)
	}
}

// DidAttach starts the redraw timer.
func (c *Clock) DidAttach() {
	c.timer.Start()
}

// WillDetach cancels the pending redraw.
func (c *Clock) WillDetach() {
	c.timer.Stop()
}

// Ticking reports whether the redraw timer is running.
func (c *Clock) Ticking() bool {
	return c.timer.IsActive()
}

// ShowAnalog reports whether the clock shows the dial.
func (c *Clock) ShowAnalog() bool {
	return c.showAnalog
}

// SetShowAnalog switches between the dial and the digital readout.
func (c *Clock) SetShowAnalog(show bool) {
	if c.showAnalog == show {
		return
	}
	c.showAnalog = show
	c.MarkNeedsPaint()
}

// Style returns the current style.
func (c *Clock) Style() ClockStyle {
	return c.style
}

// SetStyle replaces the style and repaints.
func (c *Clock) SetStyle(style ClockStyle) {
	if c.style == style {
		return
	}
	c.style = style
	c.MarkNeedsPaint()
}

// Padding returns the insets around the dial.
func (c *Clock) Padding() layout.EdgeInsets {
	return c.padding
}

// SetPadding changes the insets around the dial, then relayouts and
// repaints.
func (c *Clock) SetPadding(padding layout.EdgeInsets) {
	if c.padding == padding {
		return
	}
	c.padding = padding
	c.MarkNeedsLayout()
	c.MarkNeedsPaint()
}

// PerformLayout sizes the clock to the largest square that fits the
// available space after padding, then adds the padding back.
//
// The available space on an axis is the maximum constraint, or the minimum
// when the maximum is unbounded. The result is square even under tight,
// non-square constraints.
func (c *Clock) PerformLayout() {
	inner := c.Constraints().Deflate(c.padding)
	width := inner.MaxWidth
	if !inner.HasBoundedWidth() {
		width = inner.MinWidth
	}
	height := inner.MaxHeight
	if !inner.HasBoundedHeight() {
		height = inner.MinHeight
	}

	side := min(width, height)
	c.SetSize(graphics.Size{
		Width:  side + c.padding.Horizontal(),
		Height: side + c.padding.Vertical(),
	})
}

// Paint draws the dial or the digital readout for the current time.
func (c *Clock) Paint(ctx *layout.PaintContext) {
	size := c.Size()
	width := min(size.Width-c.padding.Horizontal(), size.Height-c.padding.Vertical())
	if width <= 0 {
		return
	}
	center := graphics.Offset{
		X: c.padding.Left + width/2,
		Y: c.padding.Top + width/2,
	}
	tod := TimeOfDayOf(c.now())

	if c.showAnalog {
		c.paintDegrees(ctx.Canvas, center, width)
		c.paintHourLabels(ctx.Canvas, center, width)
		c.paintNeedles(ctx.Canvas, center, width, tod)
		c.paintCenter(ctx.Canvas, center)
		return
	}
	c.paintDigital(ctx.Canvas, center, width, tod)
}

func (c *Clock) now() time.Time {
	now := animation.Now()
	if c.location != nil {
		now = now.In(c.location)
	}
	return now
}

func (c *Clock) paintDegrees(canvas graphics.Canvas, center graphics.Offset, width float64) {
	paint := graphics.Paint{
		Style:       graphics.PaintStyleFillAndStroke,
		StrokeWidth: TickStrokeWidth(width),
		StrokeCap:   graphics.CapRound,
	}
	for _, tick := range DegreeTicks(center, width) {
		paint.Color = c.style.Degrees.WithAlpha8(tick.Alpha())
		canvas.DrawLine(tick.Start, tick.End, paint)
	}
}

func (c *Clock) paintHourLabels(canvas graphics.Canvas, center graphics.Offset, width float64) {
	fonts := c.fontManager()
	if fonts == nil {
		return
	}
	style := graphics.TextStyle{
		Color:      c.style.HoursValues,
		FontFamily: c.style.FontFamily,
		FontSize:   HourLabelSize(width),
	}
	for _, label := range HourLabels(center, width) {
		text, err := graphics.LayoutText(label.Text, style, fonts)
		if err != nil {
			c.reportText(err)
			return
		}
		canvas.DrawText(text, CenteredTextOrigin(text, label.Anchor))
	}
}

func (c *Clock) paintNeedles(canvas graphics.Canvas, center graphics.Offset, width float64, tod TimeOfDay) {
	hour, minute, second := NeedleAngles(tod)
	needles := []struct {
		angle  float64
		length float64
		width  float64
		color  graphics.Color
	}{
		{hour, width * hourNeedleRatio, c.style.HourNeedleWidth, c.style.HoursNeedle},
		{minute, width * minuteNeedleRatio, c.style.MinuteNeedleWidth, c.style.MinutesNeedle},
		{second, width * secondNeedleRatio, c.style.SecondNeedleWidth, c.style.SecondsNeedle},
	}
	for _, n := range needles {
		start, end := NeedleSegment(center, n.angle, c.style.NeedleBackLength, n.length)
		canvas.DrawLine(start, end, graphics.Paint{
			Color:       n.color,
			Style:       graphics.PaintStyleFill,
			StrokeWidth: n.width,
		})
	}
}

func (c *Clock) paintCenter(canvas graphics.Canvas, center graphics.Offset) {
	canvas.DrawCircle(center, c.style.CenterDotRadius, graphics.Paint{
		Color: c.style.CenterInner,
		Style: graphics.PaintStyleFill,
	})
	canvas.DrawCircle(center, c.style.CenterRingRadius, graphics.Paint{
		Color:       c.style.CenterOuter,
		Style:       graphics.PaintStyleStroke,
		StrokeWidth: c.style.CenterRingWidth,
	})
}

func (c *Clock) paintDigital(canvas graphics.Canvas, center graphics.Offset, width float64, tod TimeOfDay) {
	fonts := c.fontManager()
	if fonts == nil {
		return
	}
	style := graphics.TextStyle{
		Color:      c.style.Numbers,
		FontFamily: c.style.FontFamily,
		FontSize:   DigitalTextSize(width),
	}
	text, err := graphics.LayoutSpans(DigitalSpans(tod, style), fonts)
	if err != nil {
		c.reportText(err)
		return
	}
	canvas.DrawText(text, graphics.Offset{
		X: center.X - text.Size.Width/2,
		Y: center.Y - text.Size.Height/2,
	})
}

func (c *Clock) fontManager() *graphics.FontManager {
	if c.fonts != nil {
		return c.fonts
	}
	// Initialization failures are reported once by the graphics package.
	return graphics.DefaultFontManager()
}

func (c *Clock) reportText(err error) {
	errors.Report(&errors.DriftError{
		Op:   "widgets.Clock.Paint",
		Kind: errors.KindRender,
		Err:  err,
	})
}
