// Package pacer implements the frame pacing primitives of the window:
// a plain delay, a fixed-rate delay that never drops frames, and a
// fixed-rate delay that skips rendering to catch up when the drawing loop
// falls behind.
//
// A Pacer is owned by one drawing goroutine. Its frame state is not guarded;
// only the published statistics are safe to read from other goroutines.
package pacer

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/graphwin/clock"
	"github.com/lixenwraith/graphwin/status"
)

// ErrInvalidFPS is returned when a frame rate is not positive or exceeds
// MaxFPS
var ErrInvalidFPS = errors.New("invalid fps")

// MaxFPS is the highest rate with a non-zero frame period
const MaxFPS = int(time.Second)

// Target is the surface being paced
type Target interface {
	// Sync publishes pending drawing to the screen
	Sync()

	// Done is closed when the window closes
	Done() <-chan struct{}
}

// Stats are cumulative frame counts
type Stats struct {
	Rendered int64
	Skipped  int64
}

// Pacer tracks frame timing for one window
type Pacer struct {
	clock  clock.Clock
	target Target

	lastFrameTime time.Time
	framesToSkip  int // pre-scheduled skips still to hand out
	framesSkipped int // skips since the last forced recovery
	lastRender    time.Time

	rendered *atomic.Int64
	skipped  *atomic.Int64
	fps      *status.AtomicFloat
}

// New creates a pacer publishing into reg; a nil reg gets a private registry
func New(c clock.Clock, target Target, reg *status.Registry) *Pacer {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Pacer{
		clock:    c,
		target:   target,
		rendered: reg.Ints.Get(status.FramesRendered),
		skipped:  reg.Ints.Get(status.FramesSkipped),
		fps:      reg.Floats.Get(status.FrameRate),
	}
}

// Delay syncs the target and sleeps until d has elapsed since the call
// started. Returns immediately when the target is closed
func (p *Pacer) Delay(d time.Duration) {
	if p.closed() {
		return
	}
	start := p.clock.Now()
	p.target.Sync()
	p.clock.SleepUntil(start.Add(d), p.target.Done())
}

// DelayFPS syncs and sleeps so that consecutive calls are one frame period
// apart. Frames are never skipped; under overload the rate simply drops
// Returns false without syncing when the target is closed
func (p *Pacer) DelayFPS(fps int) (bool, error) {
	if fps <= 0 || fps > MaxFPS {
		return false, fmt.Errorf("%w: %d", ErrInvalidFPS, fps)
	}
	if p.closed() {
		return false, nil
	}

	period := framePeriod(fps)
	if p.lastFrameTime.IsZero() {
		p.lastFrameTime = p.clock.Now()
	}

	p.renderFrame(period)
	return true, nil
}

// DelayJFPS paces like DelayFPS but skips frames when behind schedule
//
// A false return means the caller must not draw this iteration and should
// just advance its logic. At most maxSkip consecutive iterations are
// skipped; once maxSkip skips have accumulated, the next late frame is
// rendered regardless and the tally starts over. maxSkip <= 0 never skips
func (p *Pacer) DelayJFPS(fps, maxSkip int) (bool, error) {
	if fps <= 0 || fps > MaxFPS {
		return false, fmt.Errorf("%w: %d", ErrInvalidFPS, fps)
	}
	if p.closed() {
		return false, nil
	}

	if p.framesToSkip > 0 {
		p.framesToSkip--
		p.markSkipped()
		return false, nil
	}

	period := framePeriod(fps)
	now := p.clock.Now()
	if p.lastFrameTime.IsZero() {
		p.lastFrameTime = now
	}

	if elapsed := now.Sub(p.lastFrameTime); elapsed >= period {
		if p.framesSkipped >= maxSkip {
			// Forced recovery bounds how stale the screen can get
			p.framesSkipped = 0
		} else {
			// Clamped before the int conversion so extreme lag cannot overflow
			owed := math.Round(float64(elapsed) / float64(period))
			n := max(1, int(math.Min(owed, float64(maxSkip-p.framesSkipped))))
			p.framesToSkip = n - 1
			p.lastFrameTime = now
			p.markSkipped()
			return false, nil
		}
	}

	p.renderFrame(period)
	return true, nil
}

// Reset forgets frame timing and skip state
// The next paced call starts a new schedule
func (p *Pacer) Reset() {
	p.lastFrameTime = time.Time{}
	p.lastRender = time.Time{}
	p.framesToSkip = 0
	p.framesSkipped = 0
}

// Stats returns cumulative rendered and skipped frame counts
func (p *Pacer) Stats() Stats {
	return Stats{
		Rendered: p.rendered.Load(),
		Skipped:  p.skipped.Load(),
	}
}

// FrameRate returns the rate measured between the last two rendered frames
func (p *Pacer) FrameRate() float64 {
	return p.fps.Get()
}

func (p *Pacer) renderFrame(period time.Duration) {
	p.target.Sync()
	p.clock.SleepUntil(p.lastFrameTime.Add(period), p.target.Done())
	p.lastFrameTime = p.clock.Now()
	p.markRendered(p.lastFrameTime)
}

func (p *Pacer) markRendered(at time.Time) {
	p.rendered.Add(1)
	if !p.lastRender.IsZero() {
		if interval := at.Sub(p.lastRender); interval > 0 {
			p.fps.Set(float64(time.Second) / float64(interval))
		}
	}
	p.lastRender = at
}

func (p *Pacer) markSkipped() {
	p.framesSkipped++
	p.skipped.Add(1)
}

func (p *Pacer) closed() bool {
	select {
	case <-p.target.Done():
		return true
	default:
		return false
	}
}

func framePeriod(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}
