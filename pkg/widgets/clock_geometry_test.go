package widgets

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/graphics"
)

const epsilon = 1e-9

func TestNeedleAngles(t *testing.T) {
	tests := []struct {
		name                string
		tod                 TimeOfDay
		hour, minute, secnd float64
	}{
		{"midnight", TimeOfDay{}, 0, 0, 0},
		{"three o'clock", TimeOfDay{Hour: 3}, 90, 0, 0},
		{"half past six", TimeOfDay{Hour: 6, Minute: 30}, 195, 180, 0},
		{"seconds carry into minutes", TimeOfDay{Minute: 15, Second: 30}, 7.75, 93, 180},
		{"seconds carry into hours", TimeOfDay{Hour: 11, Minute: 59, Second: 59}, 359.9916666666667, 359.9, 354},
		{"hour past eleven wraps", TimeOfDay{Hour: 12}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, s := NeedleAngles(tt.tod)
			if math.Abs(h-tt.hour) > 1e-6 {
				t.Errorf("hour angle = %v, want %v", h, tt.hour)
			}
			if math.Abs(m-tt.minute) > 1e-6 {
				t.Errorf("minute angle = %v, want %v", m, tt.minute)
			}
			if math.Abs(s-tt.secnd) > 1e-6 {
				t.Errorf("second angle = %v, want %v", s, tt.secnd)
			}
		})
	}
}

func TestNeedleSegmentCardinalDirections(t *testing.T) {
	center := graphics.Offset{X: 100, Y: 100}
	tests := []struct {
		angle      float64
		start, end graphics.Offset
	}{
		{0, graphics.Offset{X: 100, Y: 75}, graphics.Offset{X: 100, Y: 50}},
		{90, graphics.Offset{X: 125, Y: 100}, graphics.Offset{X: 150, Y: 100}},
		{180, graphics.Offset{X: 100, Y: 125}, graphics.Offset{X: 100, Y: 150}},
		{270, graphics.Offset{X: 75, Y: 100}, graphics.Offset{X: 50, Y: 100}},
	}
	for _, tt := range tests {
		start, end := NeedleSegment(center, tt.angle, 25, 50)
		if !near(start, tt.start) || !near(end, tt.end) {
			t.Errorf("NeedleSegment(%v°) = %v -> %v, want %v -> %v", tt.angle, start, end, tt.start, tt.end)
		}
	}
}

func TestNeedleSegmentContinuousAtQuadrantBoundaries(t *testing.T) {
	center := graphics.Offset{X: 360, Y: 360}
	const length = 0.4 * 720
	for _, boundary := range []float64{90, 180, 270, 360} {
		for _, delta := range []float64{1e-3, 1e-6} {
			_, before := NeedleSegment(center, boundary-delta, 25, length)
			_, after := NeedleSegment(center, math.Mod(boundary+delta, 360), 25, length)
			if d := distance(before, after); d > 1 {
				t.Errorf("discontinuity of %v at %v°", d, boundary)
			}
		}
	}
}

func TestNeedleSegmentSweepHasNoSeams(t *testing.T) {
	center := graphics.Offset{X: 200, Y: 200}
	_, prev := NeedleSegment(center, 0, 25, 160)
	for step := 1; step <= 3600; step++ {
		_, end := NeedleSegment(center, float64(step)/10, 25, 160)
		// A 0.1° step at radius 160 moves the tip about 0.28 units.
		if d := distance(prev, end); d > 0.3 {
			t.Fatalf("jump of %v at %v°", d, float64(step)/10)
		}
		prev = end
	}
}

func TestTimeOfDayOf(t *testing.T) {
	tests := []struct {
		in   time.Time
		want TimeOfDay
	}{
		{time.Date(2024, 1, 1, 1, 2, 3, 0, time.UTC), TimeOfDay{1, 2, 3, false}},
		{time.Date(2024, 1, 1, 13, 5, 9, 0, time.UTC), TimeOfDay{1, 5, 9, true}},
		{time.Date(2024, 1, 1, 12, 15, 0, 0, time.UTC), TimeOfDay{0, 15, 0, true}},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeOfDay{0, 0, 0, false}},
	}
	for _, tt := range tests {
		if got := TimeOfDayOf(tt.in); got != tt.want {
			t.Errorf("TimeOfDayOf(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDigital(t *testing.T) {
	tests := []struct {
		tod  TimeOfDay
		want string
	}{
		{TimeOfDay{Hour: 1, Minute: 2, Second: 3}, "01:02:03AM"},
		{TimeOfDay{Hour: 11, Minute: 59, Second: 59, PM: true}, "11:59:59PM"},
		{TimeOfDay{Minute: 15, PM: true}, "00:15:00PM"},
	}
	for _, tt := range tests {
		if got := FormatDigital(tt.tod); got != tt.want {
			t.Errorf("FormatDigital(%+v) = %q, want %q", tt.tod, got, tt.want)
		}
	}
}

func TestDigitalSpans(t *testing.T) {
	base := graphics.TextStyle{FontSize: 100, Color: graphics.ColorWhite}
	spans := DigitalSpans(TimeOfDay{Hour: 1, Minute: 2, Second: 3}, base)
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0].Text+spans[1].Text != "01:02:03AM" {
		t.Errorf("joined spans = %q", spans[0].Text+spans[1].Text)
	}
	if spans[0].Style.FontSize != 100 {
		t.Errorf("time size = %v, want 100", spans[0].Style.FontSize)
	}
	if math.Abs(spans[1].Style.FontSize-30) > epsilon {
		t.Errorf("suffix size = %v, want 30", spans[1].Style.FontSize)
	}
	if spans[1].Style.Color != graphics.ColorWhite {
		t.Error("suffix should keep the base color")
	}
}

func TestDegreeTicks(t *testing.T) {
	center := graphics.Offset{X: 250, Y: 250}
	ticks := DegreeTicks(center, 500)
	if len(ticks) != 60 {
		t.Fatalf("ticks = %d, want 60", len(ticks))
	}

	major := 0
	for i, tick := range ticks {
		if tick.Major {
			major++
			if tick.Alpha() != 255 {
				t.Errorf("major tick %d alpha = %d", i, tick.Alpha())
			}
		} else if tick.Alpha() != 140 {
			t.Errorf("minor tick %d alpha = %d", i, tick.Alpha())
		}
		outer := distance(center, tick.Start)
		inner := distance(center, tick.End)
		if math.Abs(outer-245) > 1e-6 || math.Abs(inner-225) > 1e-6 {
			t.Errorf("tick %d radii = %v..%v, want 245..225", i, outer, inner)
		}
	}
	if major != 12 {
		t.Errorf("major ticks = %d, want 12", major)
	}
	if !near(ticks[0].Start, graphics.Offset{X: 250, Y: 5}) {
		t.Errorf("first tick starts at %v, want the top of the dial", ticks[0].Start)
	}
	if got := TickStrokeWidth(500); math.Abs(got-5) > epsilon {
		t.Errorf("TickStrokeWidth = %v, want 5", got)
	}
}

func TestHourLabels(t *testing.T) {
	center := graphics.Offset{X: 100, Y: 100}
	labels := HourLabels(center, 200)
	if len(labels) != 12 {
		t.Fatalf("labels = %d, want 12", len(labels))
	}
	want := map[string]graphics.Offset{
		"12": {X: 100, Y: 20},
		"3":  {X: 180, Y: 100},
		"6":  {X: 100, Y: 180},
		"9":  {X: 20, Y: 100},
	}
	for _, label := range labels {
		if anchor, ok := want[label.Text]; ok && !near(label.Anchor, anchor) {
			t.Errorf("label %s at %v, want %v", label.Text, label.Anchor, anchor)
		}
	}
	if labels[0].Text != "12" || labels[1].Text != "1" || labels[11].Text != "11" {
		t.Errorf("labels out of order: %v", labels)
	}
}

func TestCenteredTextOrigin(t *testing.T) {
	text := &graphics.TextLayout{
		Size:    graphics.Size{Width: 40, Height: 30},
		Ascent:  22,
		Descent: 8,
	}
	got := CenteredTextOrigin(text, graphics.Offset{X: 100, Y: 50})
	// baseline = 50 + (22-8)/2 = 57, top = 57 - 22 = 35
	want := graphics.Offset{X: 80, Y: 35}
	if !near(got, want) {
		t.Errorf("CenteredTextOrigin = %v, want %v", got, want)
	}
}

func near(a, b graphics.Offset) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func distance(a, b graphics.Offset) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
