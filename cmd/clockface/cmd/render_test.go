package cmd

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/graphics"
)

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"analog", []string{"--size", "120", "--time", "03:00:00"}},
		{"digital", []string{"--size", "120", "--time", "03:00:00", "--digital"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Background = graphics.ColorBlue
			opts, err := parseClockArgs(tt.args, cfg, renderFlags)
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := renderPNG(&buf, opts, time.Now()); err != nil {
				t.Fatalf("renderPNG: %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
				t.Fatalf("bounds = %v", b)
			}
			r, g, b, a := img.At(1, 1).RGBA()
			if r != 0 || g != 0 || b != 0xFFFF || a != 0xFFFF {
				t.Errorf("corner = %v, want the blue background", img.At(1, 1))
			}
		})
	}
}

func TestRenderPNGDrawsNeedles(t *testing.T) {
	opts, err := parseClockArgs([]string{"--size", "200", "--time", "03:00:00"}, testConfig(), renderFlags)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := renderPNG(&buf, opts, time.Now()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	// At 3:00 the hour needle runs from x=125 to x=140 on the center row.
	if r, _, _, _ := img.At(132, 100).RGBA(); r < 0x8000 {
		t.Errorf("hour needle pixel = %v, want white", img.At(132, 100))
	}
	// Nothing is drawn along the 9 o'clock side of the center.
	if r, _, _, _ := img.At(60, 100).RGBA(); r != 0 {
		t.Errorf("pixel left of center = %v, want background", img.At(60, 100))
	}
}

func TestRenderPNGRestoresClock(t *testing.T) {
	opts, err := parseClockArgs([]string{"--size", "50", "--time", "01:00"}, testConfig(), renderFlags)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := renderPNG(&buf, opts, time.Now()); err != nil {
		t.Fatal(err)
	}
	if d := time.Since(animation.Now()); d < -time.Minute || d > time.Minute {
		t.Errorf("animation clock still fixed after render: %v", animation.Now())
	}
}
