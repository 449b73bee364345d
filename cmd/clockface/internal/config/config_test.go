package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	drifterrors "github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/layout"
	"github.com/go-drift/clockface/pkg/widgets"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/desk/wallclock/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "example.com/desk/wallclock/v2" {
		t.Errorf("ModulePath = %q", cfg.ModulePath)
	}
	if cfg.AppName != "wallclock" {
		t.Errorf("AppName = %q, want wallclock", cfg.AppName)
	}
	if !cfg.ShowAnalog {
		t.Error("default mode should be analog")
	}
	if cfg.Size != DefaultSize {
		t.Errorf("Size = %d, want %d", cfg.Size, DefaultSize)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %v, want Local", cfg.Location)
	}
	if cfg.Style != widgets.DefaultClockStyle() {
		t.Error("default style expected")
	}
	if cfg.Background != graphics.ColorBlack {
		t.Errorf("Background = %v", cfg.Background)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kitchen")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "" || cfg.AppName != "kitchen" {
		t.Errorf("ModulePath = %q, AppName = %q", cfg.ModulePath, cfg.AppName)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: lobby
clock:
  mode: Digital
  size: 320
  padding: 12
  location: UTC
  tick: true
  colors:
    seconds_needle: red
    numbers: "#00FF00"
    background: "#80000000"
`)

	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.AppName != "lobby" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.ShowAnalog {
		t.Error("mode digital should disable the dial")
	}
	if cfg.Size != 320 {
		t.Errorf("Size = %d", cfg.Size)
	}
	if cfg.Padding != layout.EdgeInsetsAll(12) {
		t.Errorf("Padding = %v", cfg.Padding)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v", cfg.Location)
	}
	if !cfg.Tick {
		t.Error("Tick should be set")
	}
	if cfg.Style.SecondsNeedle != graphics.ColorRed || cfg.Style.Numbers != graphics.ColorGreen {
		t.Errorf("colors = %v / %v", cfg.Style.SecondsNeedle, cfg.Style.Numbers)
	}
	if cfg.Style.HoursNeedle != widgets.DefaultPrimaryColor {
		t.Error("unset colors should keep their defaults")
	}
	if cfg.Background != graphics.Color(0x80000000) {
		t.Errorf("Background = %v", cfg.Background)
	}
	if got := len(cfg.ClockOptions()); got != 4 {
		t.Errorf("ClockOptions = %d options", got)
	}
}

func TestResolveExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "night.yaml", "clock:\n  mode: digital\n")

	cfg, err := Resolve(t.TempDir(), path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ShowAnalog {
		t.Error("explicit file was not used")
	}

	_, err = Resolve(dir, filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing explicit file: err = %v, want ErrNotExist", err)
	}
}

func TestResolveInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"mode", "clock:\n  mode: sundial\n", "clock.mode"},
		{"zero size", "clock:\n  size: 0\n", "clock.size"},
		{"negative size", "clock:\n  size: -4\n", "clock.size"},
		{"negative padding", "clock:\n  padding: -1\n", "clock.padding"},
		{"location", "clock:\n  location: Mars/Olympus_Mons\n", "clock.location"},
		{"color name", "clock:\n  colors:\n    degrees: chartreuse\n", "clock.colors.degrees"},
		{"color hex", "clock:\n  colors:\n    background: \"#12345\"\n", "clock.colors.background"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.content)

			_, err := Resolve(dir, "")
			var cfgErr *drifterrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want a ConfigError", err)
			}
			if cfgErr.Key != tt.key {
				t.Errorf("Key = %q, want %q", cfgErr.Key, tt.key)
			}
		})
	}
}

func TestResolveMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "clock: [unterminated\n")
	if _, err := Resolve(dir, ""); err == nil {
		t.Error("expected a parse error")
	}
}

func TestDefaultAppName(t *testing.T) {
	tests := []struct {
		modulePath string
		dir        string
		want       string
	}{
		{"github.com/acme/clockface", "/src/other", "clockface"},
		{"github.com/acme/clockface/v3", "/src/other", "clockface"},
		{"", "/src/hallway", "hallway"},
		{"", "/", "clockface"},
	}
	for _, tt := range tests {
		if got := defaultAppName(tt.modulePath, tt.dir); got != tt.want {
			t.Errorf("defaultAppName(%q, %q) = %q, want %q", tt.modulePath, tt.dir, got, tt.want)
		}
	}
}
