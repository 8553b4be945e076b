package pacer

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/graphwin/clock"
	"github.com/lixenwraith/graphwin/status"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeTarget struct {
	syncs int
	done  chan struct{}
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{done: make(chan struct{})}
}

func (f *fakeTarget) Sync()                 { f.syncs++ }
func (f *fakeTarget) Done() <-chan struct{} { return f.done }

func newTestPacer() (*Pacer, *clock.MockClock, *fakeTarget, *status.Registry) {
	mc := clock.NewMockClock(epoch)
	target := newFakeTarget()
	reg := status.NewRegistry()
	return New(mc, target, reg), mc, target, reg
}

func TestDelaySleepsFromCallStart(t *testing.T) {
	p, mc, target, _ := newTestPacer()

	p.Delay(250 * time.Millisecond)

	if target.syncs != 1 {
		t.Errorf("Expected 1 sync, got %d", target.syncs)
	}
	if got := mc.Now().Sub(epoch); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms elapsed, got %v", got)
	}
}

func TestDelayClosedIsNoop(t *testing.T) {
	p, mc, target, _ := newTestPacer()
	close(target.done)

	p.Delay(time.Second)

	if target.syncs != 0 {
		t.Errorf("Expected no sync on closed target, got %d", target.syncs)
	}
	if !mc.Now().Equal(epoch) {
		t.Errorf("Expected no time to pass, got %v", mc.Now().Sub(epoch))
	}
}

func TestDelayFPSInvalid(t *testing.T) {
	p, _, _, _ := newTestPacer()

	for _, fps := range []int{0, -30, MaxFPS + 1, 2_000_000_000} {
		if _, err := p.DelayFPS(fps); !errors.Is(err, ErrInvalidFPS) {
			t.Errorf("fps=%d: expected ErrInvalidFPS, got %v", fps, err)
		}
		if _, err := p.DelayJFPS(fps, 3); !errors.Is(err, ErrInvalidFPS) {
			t.Errorf("fps=%d: expected ErrInvalidFPS from DelayJFPS, got %v", fps, err)
		}
	}
}

func TestDelayFPSClosed(t *testing.T) {
	p, _, target, _ := newTestPacer()
	close(target.done)

	ok, err := p.DelayFPS(60)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Expected false on closed target")
	}
	if target.syncs != 0 {
		t.Errorf("Expected no sync, got %d", target.syncs)
	}
}

func TestDelayFPSSixtyFor120Frames(t *testing.T) {
	p, mc, target, _ := newTestPacer()

	for i := 0; i < 120; i++ {
		ok, err := p.DelayFPS(60)
		if err != nil || !ok {
			t.Fatalf("Frame %d: expected (true, nil), got (%v, %v)", i, ok, err)
		}
	}

	elapsed := mc.Now().Sub(epoch)
	period := time.Second / 60
	if diff := elapsed - 2*time.Second; diff < -time.Microsecond || diff > period {
		t.Errorf("Expected ~2s elapsed, got %v", elapsed)
	}
	if target.syncs != 120 {
		t.Errorf("Expected 120 syncs, got %d", target.syncs)
	}
	if got := p.Stats(); got.Rendered != 120 || got.Skipped != 0 {
		t.Errorf("Expected 120 rendered 0 skipped, got %+v", got)
	}
}

func TestDelayFPSIntervalsMatchPeriod(t *testing.T) {
	p, mc, _, _ := newTestPacer()
	period := time.Second / 30

	p.DelayFPS(30)
	prev := mc.Now()
	for i := 0; i < 10; i++ {
		// Simulated drawing work shorter than a frame
		mc.Advance(5 * time.Millisecond)
		p.DelayFPS(30)
		now := mc.Now()
		if interval := now.Sub(prev); interval != period {
			t.Errorf("Frame %d: expected interval %v, got %v", i, period, interval)
		}
		prev = now
	}

	if rate := p.FrameRate(); rate < 29.9 || rate > 30.1 {
		t.Errorf("Expected measured rate ~30, got %.2f", rate)
	}
}

func TestDelayFPSNeverSkipsUnderOverload(t *testing.T) {
	p, mc, target, _ := newTestPacer()

	p.DelayFPS(100)
	for i := 0; i < 5; i++ {
		mc.Advance(50 * time.Millisecond) // 5 periods of work
		ok, _ := p.DelayFPS(100)
		if !ok {
			t.Fatalf("Frame %d: DelayFPS must never skip", i)
		}
	}
	if target.syncs != 6 {
		t.Errorf("Expected every frame synced, got %d", target.syncs)
	}
	if sleeps := mc.Sleeps(); len(sleeps) != 1 {
		t.Errorf("Expected only the first frame to sleep, got %v", sleeps)
	}
}

func TestDelayJFPSCatchUpScenario(t *testing.T) {
	p, mc, target, _ := newTestPacer()

	for i := 0; i < 3; i++ {
		if ok, _ := p.DelayJFPS(10, 3); !ok {
			t.Fatalf("Call %d: expected on-time frame to render", i+1)
		}
	}

	// Fourth call arrives five periods late
	mc.Advance(500 * time.Millisecond)

	consecutiveFalse := 0
	for i := 0; i < 10; i++ {
		ok, err := p.DelayJFPS(10, 3)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if ok {
			break
		}
		consecutiveFalse++
	}

	if consecutiveFalse == 0 || consecutiveFalse > 3 {
		t.Errorf("Expected 1..3 consecutive skips, got %d", consecutiveFalse)
	}
	if got := p.Stats(); got.Skipped != int64(consecutiveFalse) || got.Rendered != 4 {
		t.Errorf("Expected %d skipped and 4 rendered, got %+v", consecutiveFalse, got)
	}
	if target.syncs != 4 {
		t.Errorf("Expected skipped frames not to sync, got %d syncs", target.syncs)
	}
}

func TestDelayJFPSForcedRecovery(t *testing.T) {
	p, mc, _, _ := newTestPacer()
	const maxSkip = 2

	p.DelayJFPS(10, maxSkip)

	// Every call is badly late: skips must be capped and a render forced
	var results []bool
	for i := 0; i < 12; i++ {
		mc.Advance(time.Second)
		ok, _ := p.DelayJFPS(10, maxSkip)
		results = append(results, ok)
	}

	run := 0
	for i, ok := range results {
		if ok {
			run = 0
			continue
		}
		run++
		if run > maxSkip {
			t.Fatalf("Call %d: %d consecutive skips exceeds maxSkip=%d (%v)", i, run, maxSkip, results)
		}
	}

	rendered := 0
	for _, ok := range results {
		if ok {
			rendered++
		}
	}
	if rendered == 0 {
		t.Errorf("Expected forced recoveries to render, got %v", results)
	}
}

func TestDelayJFPSSkipFractionBound(t *testing.T) {
	for _, maxSkip := range []int{1, 3, 10} {
		p, mc, _, _ := newTestPacer()

		for i := 0; i < 2000; i++ {
			// Work alternates between light and very heavy frames
			if i%7 == 0 {
				mc.Advance(800 * time.Millisecond)
			} else {
				mc.Advance(3 * time.Millisecond)
			}
			p.DelayJFPS(60, maxSkip)
		}

		s := p.Stats()
		fraction := float64(s.Skipped) / float64(s.Skipped+s.Rendered)
		bound := float64(maxSkip) / float64(maxSkip+1)
		if fraction > bound {
			t.Errorf("maxSkip=%d: skipped fraction %.3f exceeds bound %.3f (%+v)", maxSkip, fraction, bound, s)
		}
	}
}

func TestDelayJFPSZeroMaxSkipNeverSkips(t *testing.T) {
	p, mc, _, _ := newTestPacer()

	p.DelayJFPS(10, 0)
	for i := 0; i < 5; i++ {
		mc.Advance(time.Second)
		if ok, _ := p.DelayJFPS(10, 0); !ok {
			t.Fatalf("Call %d: expected maxSkip=0 to render every frame", i)
		}
	}
	if got := p.Stats().Skipped; got != 0 {
		t.Errorf("Expected no skips, got %d", got)
	}
}

func TestDelayJFPSOnTimeNeverSkips(t *testing.T) {
	p, mc, _, _ := newTestPacer()

	for i := 0; i < 50; i++ {
		mc.Advance(10 * time.Millisecond)
		if ok, _ := p.DelayJFPS(20, 5); !ok {
			t.Fatalf("Call %d: expected on-time frame to render", i)
		}
	}
}

func TestDelayJFPSClosed(t *testing.T) {
	p, mc, target, _ := newTestPacer()
	p.DelayJFPS(10, 3)
	mc.Advance(time.Second)
	close(target.done)

	if ok, err := p.DelayJFPS(10, 3); ok || err != nil {
		t.Errorf("Expected (false, nil) when closed, got (%v, %v)", ok, err)
	}
	if target.syncs != 1 {
		t.Errorf("Expected no sync after close, got %d", target.syncs)
	}
}

func TestResetStartsNewSchedule(t *testing.T) {
	p, mc, _, _ := newTestPacer()

	p.DelayJFPS(10, 3)
	mc.Advance(2 * time.Second)
	p.Reset()

	if ok, _ := p.DelayJFPS(10, 3); !ok {
		t.Error("Expected first frame after Reset to render")
	}
}

func TestStatsPublishedToRegistry(t *testing.T) {
	p, _, _, reg := newTestPacer()

	p.DelayFPS(50)
	p.DelayFPS(50)

	if got := reg.Ints.Get(status.FramesRendered).Load(); got != 2 {
		t.Errorf("Expected registry to show 2 rendered frames, got %d", got)
	}
	if rate := reg.Floats.Get(status.FrameRate).Get(); rate < 49.9 || rate > 50.1 {
		t.Errorf("Expected registry rate ~50, got %.2f", rate)
	}
}

func TestDelayFPSRealClock(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time pacing")
	}

	target := newFakeTarget()
	p := New(clock.NewMonotonicClock(), target, nil)

	const fps, frames = 100, 20
	start := time.Now()
	for i := 0; i < frames; i++ {
		p.DelayFPS(fps)
	}
	elapsed := time.Since(start)

	// First call seeds the schedule, so frames periods elapse in total
	want := frames * (time.Second / fps)
	if elapsed < want-time.Second/fps || elapsed > want+100*time.Millisecond {
		t.Errorf("Expected ~%v elapsed, got %v", want, elapsed)
	}
}

func TestDelayJFPSMaxRateHonoursSkipBound(t *testing.T) {
	p, mc, _, _ := newTestPacer()
	const maxSkip = 3

	consecutive, worst := 0, 0
	for i := 0; i < 40; i++ {
		// Far behind on every call at a 1ns period
		mc.Advance(time.Second)
		ok, err := p.DelayJFPS(MaxFPS, maxSkip)
		if err != nil {
			t.Fatalf("Call %d: unexpected error: %v", i, err)
		}
		if ok {
			consecutive = 0
			continue
		}
		consecutive++
		worst = max(worst, consecutive)
	}

	if worst > maxSkip {
		t.Errorf("Expected at most %d consecutive skips, got %d", maxSkip, worst)
	}
	if p.framesToSkip < 0 || p.framesToSkip >= maxSkip {
		t.Errorf("Expected pending skips within [0, %d), got %d", maxSkip, p.framesToSkip)
	}
	if p.Stats().Rendered == 0 {
		t.Error("Expected forced recovery frames to render")
	}
}

func TestPacerSleepReleasedByClose(t *testing.T) {
	tests := []struct {
		name  string
		delay func(p *Pacer)
	}{
		{"DelayFPS", func(p *Pacer) { p.DelayFPS(1) }},
		{"DelayJFPS", func(p *Pacer) { p.DelayJFPS(1, 3) }},
		{"Delay", func(p *Pacer) { p.Delay(10 * time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newFakeTarget()
			p := New(clock.NewMonotonicClock(), target, nil)

			returned := make(chan time.Duration, 1)
			go func() {
				start := time.Now()
				tt.delay(p)
				returned <- time.Since(start)
			}()

			time.Sleep(30 * time.Millisecond)
			close(target.done)

			select {
			case elapsed := <-returned:
				if elapsed > 500*time.Millisecond {
					t.Errorf("Expected prompt release on close, took %v", elapsed)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Pacer kept sleeping after close")
			}
		})
	}
}
