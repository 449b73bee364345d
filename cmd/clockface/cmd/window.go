package cmd

import (
	"log"
	"os"

	"github.com/go-drift/clockface/cmd/clockface/internal/winhost"
	"github.com/go-drift/clockface/pkg/engine"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "window",
		Short: "Show the clock in a window",
		Long: `Open a desktop window showing a live clock.

The window starts at clock.size pixels square and can be resized. Click or
press m to switch between the dial and the digital readout, q or Esc to
close.

Flags:
  --size N          Initial window size in pixels
  --digital         Start with the digital readout
  --analog          Start with the dial
  --log FILE        Write diagnostics to FILE instead of stderr
  --debug-addr ADDR Serve render tree and frame stats over HTTP on ADDR`,
		Usage: "clockface window [--size N] [--digital] [--log FILE] [--debug-addr ADDR]",
		Run:   runWindow,
	})
}

func runWindow(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := parseClockArgs(args, cfg, windowFlags)
	if err != nil {
		return err
	}
	restoreLogs, err := redirectLogs(opts.logFile, os.Stderr)
	if err != nil {
		return err
	}
	defer restoreLogs()

	size := graphics.Size{Width: float64(opts.size), Height: float64(opts.size)}
	clock := widgets.NewClock(opts.clockOptions()...)
	host := winhost.New(clock, size, engine.WithBackground(cfg.Background))
	if opts.debugAddr != "" {
		srv, err := host.Engine().StartDebugServer(opts.debugAddr)
		if err != nil {
			host.Close()
			return err
		}
		defer srv.Close()
		log.Printf("Debug server listening on http://%s", srv.Addr())
	}
	return winhost.Run(host, cfg.AppName)
}
