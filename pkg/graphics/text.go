package graphics

import (
	stderrors "errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-drift/clockface/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// DefaultFontFamily names the bundled Go Regular face.
	DefaultFontFamily = "Go"
)

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color      Color
	FontFamily string
	FontSize   float64
}

// WithColor returns a copy of the TextStyle with the specified color.
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}

// Scaled returns a copy of the TextStyle with the font size multiplied by
// factor, the equivalent of a relative size span.
func (s TextStyle) Scaled(factor float64) TextStyle {
	s.FontSize = s.effectiveSize() * factor
	return s
}

func (s TextStyle) effectiveSize() float64 {
	if s.FontSize <= 0 {
		return defaultFontSize
	}
	return s.FontSize
}

// TextSpan is a run of text sharing one style.
type TextSpan struct {
	Text  string
	Style TextStyle
}

// TextRun is a shaped span positioned on the layout's shared baseline.
type TextRun struct {
	Text  string
	Style TextStyle
	Face  font.Face
	// X is the run's horizontal offset from the layout's left edge.
	X       float64
	Width   float64
	Ascent  float64
	Descent float64
}

// TextLayout contains measured text metrics and resolved font faces.
// All runs sit on a single baseline located Ascent pixels below the top.
type TextLayout struct {
	Text    string
	Runs    []TextRun
	Size    Size
	Ascent  float64
	Descent float64
}

// FontManager manages font registration and face caching.
//
// Faces are cached per family and size. A font.Face is not safe for
// concurrent use, so layouts must stay on the UI thread that created them.
type FontManager struct {
	mu          sync.Mutex
	fonts       map[string]*opentype.Font
	faces       map[faceKey]font.Face
	defaultName string
}

type faceKey struct {
	family string
	size   float64
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go Regular font
// registered as the default family.
func NewFontManager() (*FontManager, error) {
	manager := &FontManager{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	if err := manager.RegisterFont(DefaultFontFamily, goregular.TTF); err != nil {
		return nil, err
	}
	manager.defaultName = DefaultFontFamily
	return manager, nil
}

// DefaultFontManagerErr returns a shared font manager with a bundled font.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.DriftError{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindInit,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns a shared font manager with a bundled font.
// Returns nil if initialization failed; the failure has already been reported.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers a new font family from TrueType or OpenType data.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[name] = parsed
	for key := range m.faces {
		if key.family == name {
			delete(m.faces, key)
		}
	}
	return nil
}

// Face resolves a font face for the given style.
func (m *FontManager) Face(style TextStyle) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	family := style.FontFamily
	if family == "" {
		family = m.defaultName
	}
	parsed, ok := m.fonts[family]
	if !ok {
		return nil, fmt.Errorf("font family %q not registered", family)
	}
	key := faceKey{family: family, size: style.effectiveSize()}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %s/%.1f: %w", family, key.size, err)
	}
	m.faces[key] = face
	return face, nil
}

// LayoutText measures a single-style string.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	return LayoutSpans([]TextSpan{{Text: text, Style: style}}, manager)
}

// LayoutSpans measures a sequence of styled spans laid out left to right on
// one line. Runs of different sizes share the baseline of the tallest run.
func LayoutSpans(spans []TextSpan, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	layout := &TextLayout{Runs: make([]TextRun, 0, len(spans))}
	x := 0.0
	for _, span := range spans {
		face, err := manager.Face(span.Style)
		if err != nil {
			return nil, err
		}
		metrics := face.Metrics()
		run := TextRun{
			Text:    span.Text,
			Style:   span.Style,
			Face:    face,
			X:       x,
			Width:   fixedToFloat(font.MeasureString(face, span.Text)),
			Ascent:  fixedToFloat(metrics.Ascent),
			Descent: fixedToFloat(metrics.Descent),
		}
		x += run.Width
		layout.Text += span.Text
		layout.Ascent = math.Max(layout.Ascent, run.Ascent)
		layout.Descent = math.Max(layout.Descent, run.Descent)
		layout.Runs = append(layout.Runs, run)
	}
	layout.Size = Size{Width: x, Height: layout.Ascent + layout.Descent}
	return layout, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
