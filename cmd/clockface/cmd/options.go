package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/widgets"
)

// clockArgs holds the flags of the clock commands, starting from the
// resolved configuration. at is the time of day to render when hasTime is
// set.
type clockArgs struct {
	cfg        *config.Resolved
	showAnalog bool
	size       int
	tick       bool
	at         time.Duration
	hasTime    bool
	out        string
	logFile    string
	debugAddr  string
}

// Flags accepted by each clock command.
var (
	renderFlags = []string{"--digital", "--analog", "--size", "--time", "--out"}
	termFlags   = []string{"--digital", "--analog", "--tick", "--log", "--debug-addr"}
	windowFlags = []string{"--digital", "--analog", "--size", "--log", "--debug-addr"}
)

// parseClockArgs applies args on top of cfg. Flags outside allowed are
// rejected, even when another command accepts them.
func parseClockArgs(args []string, cfg *config.Resolved, allowed []string) (clockArgs, error) {
	opts := clockArgs{
		cfg:        cfg,
		showAnalog: cfg.ShowAnalog,
		size:       cfg.Size,
		tick:       cfg.Tick,
		out:        "clock.png",
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}
		if !slices.Contains(allowed, arg) {
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
		switch arg {
		case "--digital":
			opts.showAnalog = false
		case "--analog":
			opts.showAnalog = true
		case "--tick":
			opts.tick = true
		case "--size":
			v, err := value()
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--size must be a positive integer (got %q)", v)
			}
			opts.size = n
		case "--time":
			v, err := value()
			if err != nil {
				return opts, err
			}
			at, err := parseTimeOfDay(v)
			if err != nil {
				return opts, err
			}
			opts.at, opts.hasTime = at, true
		case "--out":
			v, err := value()
			if err != nil {
				return opts, err
			}
			opts.out = v
		case "--log":
			v, err := value()
			if err != nil {
				return opts, err
			}
			opts.logFile = v
		case "--debug-addr":
			v, err := value()
			if err != nil {
				return opts, err
			}
			opts.debugAddr = v
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

// parseTimeOfDay parses HH:MM or HH:MM:SS on a 24-hour clock into the time
// since midnight.
func parseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("--time must be HH:MM or HH:MM:SS (got %q)", s)
}

// instant returns the time to show: today at the --time value in the
// configured location, or now.
func (o clockArgs) instant(now time.Time) time.Time {
	now = now.In(o.cfg.Location)
	if !o.hasTime {
		return now
	}
	h, m, s := int(o.at/time.Hour), int(o.at/time.Minute)%60, int(o.at/time.Second)%60
	return time.Date(now.Year(), now.Month(), now.Day(), h, m, s, 0, o.cfg.Location)
}

func (o clockArgs) clockOptions(extra ...widgets.ClockOption) []widgets.ClockOption {
	opts := append(o.cfg.ClockOptions(), widgets.WithShowAnalog(o.showAnalog))
	return append(opts, extra...)
}
