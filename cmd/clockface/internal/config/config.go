package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	drifterrors "github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/layout"
	"github.com/go-drift/clockface/pkg/widgets"
)

// FileName is the optional project configuration file.
const FileName = "clockface.yaml"

// DefaultSize is the surface size used when clock.size is unset.
const DefaultSize = 480

// Config represents the optional clockface.yaml configuration.
type Config struct {
	App   AppConfig   `yaml:"app"`
	Clock ClockConfig `yaml:"clock"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// ClockConfig contains the clock settings.
type ClockConfig struct {
	Mode     string      `yaml:"mode,omitempty"`
	Size     *int        `yaml:"size,omitempty"`
	Padding  float64     `yaml:"padding,omitempty"`
	Location string      `yaml:"location,omitempty"`
	Tick     bool        `yaml:"tick,omitempty"`
	Colors   ColorConfig `yaml:"colors"`
}

// ColorConfig names the color of each clock part. Values accept anything
// graphics.ParseColor does.
type ColorConfig struct {
	CenterInner   string `yaml:"center_inner,omitempty"`
	CenterOuter   string `yaml:"center_outer,omitempty"`
	HoursNeedle   string `yaml:"hours_needle,omitempty"`
	MinutesNeedle string `yaml:"minutes_needle,omitempty"`
	SecondsNeedle string `yaml:"seconds_needle,omitempty"`
	Degrees       string `yaml:"degrees,omitempty"`
	HoursValues   string `yaml:"hours_values,omitempty"`
	Numbers       string `yaml:"numbers,omitempty"`
	Background    string `yaml:"background,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	ShowAnalog bool
	Size       int
	Padding    layout.EdgeInsets
	Location   *time.Location
	Tick       bool
	Style      widgets.ClockStyle
	Background graphics.Color
}

// ClockOptions returns the widget options for the resolved settings.
func (r *Resolved) ClockOptions() []widgets.ClockOption {
	return []widgets.ClockOption{
		widgets.WithStyle(r.Style),
		widgets.WithShowAnalog(r.ShowAnalog),
		widgets.WithPadding(r.Padding),
		widgets.WithLocation(r.Location),
	}
}

// LoadOptional reads clockface.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// LoadFile reads a configuration file that must exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Resolve loads configuration and resolves defaults. When path is empty,
// clockface.yaml in dir is used if present; otherwise path must exist.
func Resolve(dir, path string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path == "" {
		cfg, err = LoadOptional(dir)
	} else {
		cfg, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return resolveConfig(dir, cfg)
}

func resolveConfig(dir string, cfg *Config) (*Resolved, error) {
	// A missing go.mod is fine; the app name falls back to the directory.
	modulePath, _ := modulePath(dir)

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	showAnalog, err := resolveMode(cfg.Clock.Mode)
	if err != nil {
		return nil, err
	}

	size := DefaultSize
	if cfg.Clock.Size != nil {
		size = *cfg.Clock.Size
		if size <= 0 {
			return nil, invalid("clock.size", fmt.Sprint(size), "must be positive")
		}
	}

	if cfg.Clock.Padding < 0 {
		return nil, invalid("clock.padding", fmt.Sprint(cfg.Clock.Padding), "must not be negative")
	}

	location, err := resolveLocation(cfg.Clock.Location)
	if err != nil {
		return nil, err
	}

	style, background, err := resolveColors(cfg.Clock.Colors)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		ShowAnalog: showAnalog,
		Size:       size,
		Padding:    layout.EdgeInsetsAll(cfg.Clock.Padding),
		Location:   location,
		Tick:       cfg.Clock.Tick,
		Style:      style,
		Background: background,
	}, nil
}

func resolveMode(mode string) (showAnalog bool, err error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "analog":
		return true, nil
	case "digital":
		return false, nil
	default:
		return false, invalid("clock.mode", mode, "expected analog or digital")
	}
}

func resolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, invalid("clock.location", name, err.Error())
	}
	return loc, nil
}

func resolveColors(colors ColorConfig) (widgets.ClockStyle, graphics.Color, error) {
	style := widgets.DefaultClockStyle()
	background := graphics.ColorBlack

	fields := []struct {
		key   string
		value string
		dst   *graphics.Color
	}{
		{"clock.colors.center_inner", colors.CenterInner, &style.CenterInner},
		{"clock.colors.center_outer", colors.CenterOuter, &style.CenterOuter},
		{"clock.colors.hours_needle", colors.HoursNeedle, &style.HoursNeedle},
		{"clock.colors.minutes_needle", colors.MinutesNeedle, &style.MinutesNeedle},
		{"clock.colors.seconds_needle", colors.SecondsNeedle, &style.SecondsNeedle},
		{"clock.colors.degrees", colors.Degrees, &style.Degrees},
		{"clock.colors.hours_values", colors.HoursValues, &style.HoursValues},
		{"clock.colors.numbers", colors.Numbers, &style.Numbers},
		{"clock.colors.background", colors.Background, &background},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		c, err := graphics.ParseColor(f.value)
		if err != nil {
			return style, background, invalid(f.key, f.value, err.Error())
		}
		*f.dst = c
	}
	return style, background, nil
}

func invalid(key, value, reason string) error {
	return fmt.Errorf("invalid %s: %w", FileName, &drifterrors.ConfigError{
		Key:    key,
		Value:  value,
		Reason: reason,
	})
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// returns the current directory when there is none.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "clockface"
	}
	return base
}
