package widgets

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-drift/clockface/pkg/graphics"
)

// Proportions of the dial, as fractions of the dial width.
const (
	hourNeedleRatio   = 0.2
	minuteNeedleRatio = 0.3
	secondNeedleRatio = 0.4

	tickOuterInset    = 0.01
	tickInnerInset    = 0.05
	tickStrokeRatio   = 0.010
	hourLabelInset    = 0.1
	hourLabelRatio    = 0.085
	digitalTextRatio  = 0.2
	meridiemSizeRatio = 0.3
)

// Tick alpha values: ticks on hour positions are opaque, the rest dimmed.
const (
	minorTickAlpha = 140
	majorTickAlpha = 255
)

// TimeOfDay is a wall-clock time on a 12-hour dial.
//
// Hour is in 0..11, so noon and midnight are both 0 and PM tells them apart.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
	PM     bool
}

// TimeOfDayOf converts t to a TimeOfDay in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h := t.Hour()
	return TimeOfDay{
		Hour:   h % 12,
		Minute: t.Minute(),
		Second: t.Second(),
		PM:     h >= 12,
	}
}

// NeedleAngles returns the hour, minute, and second needle angles in degrees,
// measured clockwise from 12 o'clock. The hour needle carries the minute and
// second fractions, and the minute needle carries the second fraction.
func NeedleAngles(tod TimeOfDay) (hour, minute, second float64) {
	h := float64(tod.Hour)
	m := float64(tod.Minute)
	s := float64(tod.Second)

	hour = math.Mod(h+m/60+s/3600, 12) / 12 * 360
	minute = (m + s/60) / 60 * 360
	second = s / 60 * 360
	return hour, minute, second
}

// PolarOffset returns the point at radius from center in the direction of
// angle, in degrees clockwise from 12 o'clock.
func PolarOffset(center graphics.Offset, angle, radius float64) graphics.Offset {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return graphics.Offset{
		X: center.X + radius*sin,
		Y: center.Y - radius*cos,
	}
}

// NeedleSegment returns the endpoints of a needle pointing at angle. The
// needle starts backLength from the center and ends length from it, both
// along the same ray.
func NeedleSegment(center graphics.Offset, angle, backLength, length float64) (start, end graphics.Offset) {
	return PolarOffset(center, angle, backLength), PolarOffset(center, angle, length)
}

// DegreeTick is one dial mark.
type DegreeTick struct {
	Start graphics.Offset
	End   graphics.Offset
	// Major marks sit on hour positions.
	Major bool
}

// Alpha returns the tick's opacity.
func (t DegreeTick) Alpha() uint8 {
	if t.Major {
		return majorTickAlpha
	}
	return minorTickAlpha
}

// DegreeTicks returns the 60 minute marks of a dial of the given width,
// starting at 12 o'clock and going clockwise. Each mark runs inward from
// just inside the rim.
func DegreeTicks(center graphics.Offset, width float64) []DegreeTick {
	radius := width / 2
	outer := radius - width*tickOuterInset
	inner := radius - width*tickInnerInset

	ticks := make([]DegreeTick, 0, 60)
	for angle := 0; angle < 360; angle += 6 {
		ticks = append(ticks, DegreeTick{
			Start: PolarOffset(center, float64(angle), outer),
			End:   PolarOffset(center, float64(angle), inner),
			Major: angle%30 == 0,
		})
	}
	return ticks
}

// TickStrokeWidth returns the stroke width of the dial marks.
func TickStrokeWidth(width float64) float64 {
	return width * tickStrokeRatio
}

// HourLabel is an hour numeral and the point its text is centered on.
type HourLabel struct {
	Text   string
	Anchor graphics.Offset
}

// HourLabels returns the numerals 12, 1, ..., 11 placed clockwise around a
// dial of the given width.
func HourLabels(center graphics.Offset, width float64) []HourLabel {
	radius := width/2 - width*hourLabelInset
	labels := make([]HourLabel, 0, 12)
	for i := range 12 {
		n := i
		if n == 0 {
			n = 12
		}
		labels = append(labels, HourLabel{
			Text:   strconv.Itoa(n),
			Anchor: PolarOffset(center, float64(i*30), radius),
		})
	}
	return labels
}

// HourLabelSize returns the font size of the hour numerals.
func HourLabelSize(width float64) float64 {
	return width * hourLabelRatio
}

// CenteredTextOrigin returns the top-left point that centers a text layout
// on anchor, horizontally by advance width and vertically by the midpoint
// of ascent and descent.
func CenteredTextOrigin(text *graphics.TextLayout, anchor graphics.Offset) graphics.Offset {
	baseline := anchor.Y + (text.Ascent-text.Descent)/2
	return graphics.Offset{
		X: anchor.X - text.Size.Width/2,
		Y: baseline - text.Ascent,
	}
}

// Meridiem returns "AM" or "PM".
func (t TimeOfDay) Meridiem() string {
	if t.PM {
		return "PM"
	}
	return "AM"
}

// FormatDigital formats t as HH:MM:SS followed by AM or PM, with no
// separator before the suffix.
func FormatDigital(t TimeOfDay) string {
	return fmt.Sprintf("%02d:%02d:%02d%s", t.Hour, t.Minute, t.Second, t.Meridiem())
}

// DigitalSpans splits the digital readout into the time and a smaller
// AM/PM suffix.
func DigitalSpans(t TimeOfDay, style graphics.TextStyle) []graphics.TextSpan {
	return []graphics.TextSpan{
		{Text: fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second), Style: style},
		{Text: t.Meridiem(), Style: style.Scaled(meridiemSizeRatio)},
	}
}

// DigitalTextSize returns the font size of the digital readout.
func DigitalTextSize(width float64) float64 {
	return width * digitalTextRatio
}
