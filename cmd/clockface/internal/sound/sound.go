// Package sound plays the optional once-per-second tick.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	tickFrequency = 880
	tickDuration  = 40 * time.Millisecond
	tickVolume    = 0.25
)

// Ticker plays a short tone on each Tick once initialized.
type Ticker struct {
	mu          sync.Mutex
	initialized bool
}

// NewTicker creates a ticker. Call Init before the first Tick.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Init opens the speaker.
func (t *Ticker) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	t.initialized = true
	return nil
}

// Tick plays one tone. It does nothing before Init succeeds.
func (t *Ticker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}
	tone, err := Tone(sampleRate, tickFrequency, tickDuration, tickVolume)
	if err != nil {
		return
	}
	speaker.Play(tone)
}

// Close releases the speaker.
func (t *Ticker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}
	speaker.Close()
	t.initialized = false
}

// Tone returns a sine tone of the given length at volume in (0, 1].
func Tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	tone := beep.Take(sr.N(d), sine)
	// math.Log2(0) is -Inf, so silence is its own case.
	if volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(volume)}, nil
}
