package cmd

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/engine"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Paint one frame to a PNG",
		Long: `Paint the clock once and write it as a PNG image.

The image is square. Without --time the current time is drawn; with it,
today's date at the given time in the configured location.

Flags:
  --out FILE        Output file (default: clock.png, "-" for stdout)
  --size N          Image width and height in pixels (default: clock.size or 480)
  --time HH:MM:SS   Time of day to draw, 24-hour
  --digital         Draw the digital readout instead of the dial
  --analog          Draw the dial even if clock.mode is digital`,
		Usage: "clockface render [--out FILE] [--size N] [--time HH:MM:SS] [--digital]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := parseClockArgs(args, cfg, renderFlags)
	if err != nil {
		return err
	}

	if opts.out == "-" {
		return renderPNG(os.Stdout, opts, time.Now())
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	if err := renderPNG(f, opts, time.Now()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", opts.out, opts.size, opts.size)
	return nil
}

// fixedClock always reports the same instant.
type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// renderPNG paints one frame of the clock at opts.instant(now) and encodes
// it to w.
func renderPNG(w io.Writer, opts clockArgs, now time.Time) error {
	prev := animation.SetClock(fixedClock(opts.instant(now)))
	defer animation.SetClock(prev)

	size := graphics.Size{Width: float64(opts.size), Height: float64(opts.size)}
	eng := engine.New(size, engine.WithBackground(opts.cfg.Background))
	defer eng.Close()

	eng.SetRoot(widgets.NewClock(opts.clockOptions()...))
	frame := eng.DrawFrame()
	if frame == nil {
		return fmt.Errorf("failed to paint the clock")
	}

	canvas := graphics.NewImageCanvas(opts.size, opts.size)
	frame.Paint(canvas)
	if err := png.Encode(w, canvas.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
