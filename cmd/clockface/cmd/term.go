package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/clockface/cmd/clockface/internal/sound"
	"github.com/go-drift/clockface/cmd/clockface/internal/termhost"
	"github.com/go-drift/clockface/pkg/engine"
	"github.com/go-drift/clockface/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "term",
		Short: "Show the clock in the terminal",
		Long: `Show a live clock in the terminal.

The clock fills the largest square that fits the window and redraws once
per second. Press m to switch between the dial and the digital readout,
q or Esc to quit.

Flags:
  --digital         Start with the digital readout
  --analog          Start with the dial
  --tick            Play a short tone every second
  --log FILE        Write diagnostics to FILE instead of discarding them
  --debug-addr ADDR Serve render tree and frame stats over HTTP on ADDR`,
		Usage: "clockface term [--digital] [--tick] [--log FILE] [--debug-addr ADDR]",
		Run:   runTerm,
	})
}

func runTerm(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := parseClockArgs(args, cfg, termFlags)
	if err != nil {
		return err
	}

	// Anything written to stderr would scribble over the screen.
	restoreLogs, err := redirectLogs(opts.logFile, io.Discard)
	if err != nil {
		return err
	}
	defer restoreLogs()

	var extra []widgets.ClockOption
	if opts.tick {
		ticker := sound.NewTicker()
		if err := ticker.Init(); err != nil {
			// Non-fatal, the clock runs without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer ticker.Close()
			extra = append(extra, widgets.WithTickListener(func(time.Time) { ticker.Tick() }))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	clock := widgets.NewClock(opts.clockOptions(extra...)...)
	host := termhost.New(screen, clock, engine.WithBackground(cfg.Background))
	if opts.debugAddr != "" {
		srv, err := host.Engine().StartDebugServer(opts.debugAddr)
		if err != nil {
			return err
		}
		defer srv.Close()
		log.Printf("Debug server listening on http://%s", srv.Addr())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(ctx)
}
