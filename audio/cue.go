// Package audio plays the shutter cue that confirms a hotkey snapshot.
// Audio is optional: without an output device every call is a no-op.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/graphwin/window"
)

const (
	sampleRate = beep.SampleRate(44100)

	clickFreq     = 1760.0
	clickDuration = 30 * time.Millisecond
	toneFreq      = 880.0
	toneDuration  = 60 * time.Millisecond
)

// Cue owns the speaker mixer and plays the shutter sound
type Cue struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewCue creates a cue at the given linear volume, clamped to [0, 1]
func NewCue(volume float64) *Cue {
	return &Cue{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
	}
}

// Initialize opens the speaker. Failure is logged and returned; the cue
// stays silent
func (c *Cue) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		window.Logger().Warn("audio unavailable", "error", err)
		return fmt.Errorf("failed to init speaker: %w", err)
	}

	speaker.Play(c.mixer)
	c.initialized = true
	window.Logger().Debug("audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// Cleanup stops pending cues
func (c *Cue) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker shutdown; an empty mixer keeps it silent
	c.initialized = false
}

// Play queues one shutter cue
func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.volume == 0 {
		return
	}

	s, err := Shutter(sampleRate, c.volume)
	if err != nil {
		window.Logger().Warn("failed to build shutter cue", "error", err)
		return
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// OnSnapshot plays the cue; matches window.Options.OnSnapshot
func (c *Cue) OnSnapshot(path string) {
	c.Play()
}

// Shutter builds the cue: a short high click followed by a lower tone,
// scaled to volume
func Shutter(sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	click, err := generators.SineTone(sr, clickFreq)
	if err != nil {
		return nil, fmt.Errorf("failed to create click tone: %w", err)
	}
	tone, err := generators.SineTone(sr, toneFreq)
	if err != nil {
		return nil, fmt.Errorf("failed to create shutter tone: %w", err)
	}

	seq := beep.Seq(
		beep.Take(sr.N(clickDuration), click),
		beep.Take(sr.N(toneDuration), tone),
	)

	return &effects.Volume{
		Streamer: seq,
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-6)),
		Silent:   volume <= 0,
	}, nil
}
