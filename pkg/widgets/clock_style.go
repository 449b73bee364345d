package widgets

import "github.com/go-drift/clockface/pkg/graphics"

// ClockStyle holds the colors and fixed-size parts of a [Clock].
//
// Colors follow the dial parts they paint. The needle widths, back length,
// and center hub sizes are in logical pixels and do not scale with the dial.
type ClockStyle struct {
	CenterInner   graphics.Color
	CenterOuter   graphics.Color
	HoursNeedle   graphics.Color
	MinutesNeedle graphics.Color
	SecondsNeedle graphics.Color
	Degrees       graphics.Color
	HoursValues   graphics.Color
	Numbers       graphics.Color

	// NeedleBackLength is the gap between the center and where each needle
	// starts.
	NeedleBackLength float64

	HourNeedleWidth   float64
	MinuteNeedleWidth float64
	SecondNeedleWidth float64

	// CenterDotRadius is the radius of the filled hub.
	CenterDotRadius float64
	// CenterRingRadius and CenterRingWidth describe the stroked ring
	// around the hub.
	CenterRingRadius float64
	CenterRingWidth  float64

	// FontFamily selects a family registered with the clock's font
	// manager. Empty uses the default family.
	FontFamily string
}

// Default clock colors.
const (
	DefaultPrimaryColor   = graphics.ColorWhite
	DefaultSecondaryColor = graphics.ColorLightGray
)

// DefaultClockStyle returns white needles, ticks, and numerals, with a light
// gray seconds needle and hub.
func DefaultClockStyle() ClockStyle {
	return ClockStyle{
		CenterInner:   DefaultSecondaryColor,
		CenterOuter:   DefaultPrimaryColor,
		HoursNeedle:   DefaultPrimaryColor,
		MinutesNeedle: DefaultPrimaryColor,
		SecondsNeedle: DefaultSecondaryColor,
		Degrees:       DefaultPrimaryColor,
		HoursValues:   DefaultPrimaryColor,
		Numbers:       graphics.ColorWhite,

		NeedleBackLength:  25,
		HourNeedleWidth:   20,
		MinuteNeedleWidth: 15,
		SecondNeedleWidth: 10,

		CenterDotRadius:  15,
		CenterRingRadius: 20,
		CenterRingWidth:  10,
	}
}
