// Package widgets provides the clock render object.
//
// [Clock] paints either an analog dial or a digital readout of the current
// time and repaints itself once per second while attached to a pipeline:
//
//	eng := engine.New(graphics.Size{Width: 480, Height: 480})
//	clock := widgets.NewClock(widgets.WithLocation(time.UTC))
//	eng.SetRoot(clock)
//	...
//	clock.SetShowAnalog(false) // switch to HH:MM:SSAM
//
// # Dial geometry
//
// Angles are in degrees, clockwise from 12 o'clock. Points on the dial are
// computed directly from sine and cosine in [PolarOffset], so needles move
// continuously through every quadrant. Proportional parts of the dial (tick
// marks, numerals, needle lengths) scale with the dial width; needle widths
// and the center hub come from [ClockStyle] in logical pixels.
//
// The pure helpers ([NeedleAngles], [NeedleSegment], [DegreeTicks],
// [HourLabels], [FormatDigital]) are exported so hosts and tests can reason
// about a frame without painting it.
package widgets
