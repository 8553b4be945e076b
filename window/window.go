// Package window implements a graphics window whose drawing program runs on
// its own goroutine while a windowing runtime paints and delivers input on
// another.
//
// The drawing goroutine calls the blocking API (Pause, GetChar, GetKey,
// GetMouseMessage and the Delay family). The runtime's event goroutine calls
// the On* callbacks, which only store input and release waiters. Closing the
// window releases every pending wait; afterwards blocking calls return
// sentinel values at once, so a drawing loop can simply test IsRunning.
package window

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/graphwin/canvas"
	"github.com/lixenwraith/graphwin/clock"
	"github.com/lixenwraith/graphwin/message"
	"github.com/lixenwraith/graphwin/pacer"
	"github.com/lixenwraith/graphwin/render"
	"github.com/lixenwraith/graphwin/status"
)

// Options configure a new Window. Zero fields take defaults
type Options struct {
	Width, Height int
	Mode          render.Mode
	Freshness     time.Duration
	CaptureDir    string
	SnapshotKey   message.Key

	Clock   clock.Clock
	Status  *status.Registry
	Runtime Runtime

	// OnSnapshot runs on the event goroutine after a hotkey snapshot is saved
	OnSnapshot func(path string)
}

// DefaultOptions returns a 640x480 immediate-mode window configuration
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      480,
		Mode:        render.ModeImmediate,
		Freshness:   message.DefaultFreshness,
		CaptureDir:  ".",
		SnapshotKey: message.KeyF10,
	}
}

// Window is a drawable window shared by a drawing goroutine and an event
// goroutine
type Window struct {
	width, height int

	clock  clock.Clock
	canvas *canvas.Canvas
	bridge *render.Bridge
	pacer  *pacer.Pacer
	status *status.Registry

	rtMu    sync.RWMutex
	runtime Runtime

	keys     *message.Mailbox[message.KeyEvent]
	chars    *message.Mailbox[rune]
	mouse    *message.Mailbox[message.MouseMessage]
	anyInput *message.Signal

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once

	captureMu    sync.Mutex
	captureDir   string
	captureCount atomic.Int64
	snapshotKey  message.Key
	onSnapshot   func(path string)

	keyEvents    *atomic.Int64
	mouseEvents  *atomic.Int64
	snapshots    *atomic.Int64
	lastSnapshot *status.AtomicString
	modeName     *status.AtomicString
}

// New opens a window with the given options
func New(opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}

	defaults := DefaultOptions()
	if opts.Freshness <= 0 {
		opts.Freshness = defaults.Freshness
	}
	if opts.CaptureDir == "" {
		opts.CaptureDir = defaults.CaptureDir
	}
	if opts.SnapshotKey == message.KeyNone {
		opts.SnapshotKey = defaults.SnapshotKey
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewMonotonicClock()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Runtime == nil {
		opts.Runtime = NopRuntime{}
	}

	w := &Window{
		width:        opts.Width,
		height:       opts.Height,
		clock:        opts.Clock,
		canvas:       canvas.New(opts.Width, opts.Height),
		status:       opts.Status,
		runtime:      opts.Runtime,
		keys:         message.NewMailbox[message.KeyEvent](opts.Freshness),
		chars:        message.NewMailbox[rune](opts.Freshness),
		mouse:        message.NewMailbox[message.MouseMessage](opts.Freshness),
		anyInput:     message.NewSignal(),
		done:         make(chan struct{}),
		captureDir:   opts.CaptureDir,
		snapshotKey:  opts.SnapshotKey,
		onSnapshot:   opts.OnSnapshot,
		keyEvents:    opts.Status.Ints.Get(status.KeyEvents),
		mouseEvents:  opts.Status.Ints.Get(status.MouseEvents),
		snapshots:    opts.Status.Ints.Get(status.Snapshots),
		lastSnapshot: opts.Status.Strings.Get(status.LastSnapshot),
		modeName:     opts.Status.Strings.Get(status.RenderMode),
	}
	w.bridge = render.NewBridge(w.canvas, w.requestRepaint)
	w.pacer = pacer.New(w.clock, w, w.status)
	w.SetRenderMode(opts.Mode)
	w.running.Store(true)

	Logger().Info("window opened", "width", w.width, "height", w.height, "mode", opts.Mode.String())
	return w, nil
}

// Width returns the canvas width in pixels
func (w *Window) Width() int { return w.width }

// Height returns the canvas height in pixels
func (w *Window) Height() int { return w.height }

// Canvas returns the live drawing surface
func (w *Window) Canvas() *canvas.Canvas { return w.canvas }

// Status returns the metrics registry the window publishes into
func (w *Window) Status() *status.Registry { return w.status }

// IsRunning reports whether the window is still open
func (w *Window) IsRunning() bool { return w.running.Load() }

// Done is closed when the window closes
func (w *Window) Done() <-chan struct{} { return w.done }

// SetRuntime attaches the windowing runtime. Called by the runtime before
// the drawing goroutine starts
func (w *Window) SetRuntime(rt Runtime) {
	if rt == nil {
		rt = NopRuntime{}
	}
	w.rtMu.Lock()
	defer w.rtMu.Unlock()
	w.runtime = rt
}

func (w *Window) rt() Runtime {
	w.rtMu.RLock()
	defer w.rtMu.RUnlock()
	return w.runtime
}

// SetRenderMode switches between immediate and manual rendering
// The switch itself does not repaint. After close only the mode is recorded
func (w *Window) SetRenderMode(mode render.Mode) {
	w.bridge.SetMode(mode)
	w.modeName.Store(mode.String())
	Logger().Debug("render mode changed", "mode", mode.String())
}

// RenderMode returns the current render mode
func (w *Window) RenderMode() render.Mode {
	return w.bridge.Mode()
}

// IsImmediate reports whether drawing reaches the screen without Sync
func (w *Window) IsImmediate() bool {
	return w.bridge.Mode() == render.ModeImmediate
}

// Sync publishes the live canvas and requests a repaint
func (w *Window) Sync() {
	w.bridge.Sync()
}

// Visible returns a copy of the frame last published by Sync
func (w *Window) Visible() *image.RGBA {
	return w.bridge.Visible()
}

// Delay publishes the canvas and sleeps for d
// Requires manual mode; a closed window returns at once
func (w *Window) Delay(d time.Duration) error {
	if err := w.requireManual("Delay"); err != nil {
		return err
	}
	w.pacer.Delay(d)
	return nil
}

// DelayFPS paces the drawing loop to fps without skipping frames
// Returns false once the window is closed
func (w *Window) DelayFPS(fps int) (bool, error) {
	if err := w.requireManual("DelayFPS"); err != nil {
		return false, err
	}
	return w.pacer.DelayFPS(fps)
}

// DelayJFPS paces the drawing loop to fps, skipping up to maxSkip frames in
// a row when behind. On false the caller must not draw this iteration
func (w *Window) DelayJFPS(fps, maxSkip int) (bool, error) {
	if err := w.requireManual("DelayJFPS"); err != nil {
		return false, err
	}
	return w.pacer.DelayJFPS(fps, maxSkip)
}

// FrameStats returns rendered and skipped frame totals
func (w *Window) FrameStats() pacer.Stats {
	return w.pacer.Stats()
}

// GetCursorPos returns the pointer position in canvas pixels
func (w *Window) GetCursorPos() (x, y int) {
	rt := w.rt()
	gx, gy := rt.CursorPos()
	return rt.MapCursorToClient(gx, gy)
}

// Close closes the window from the drawing side; same as OnClose
func (w *Window) Close() {
	w.OnClose()
}

// OnClose marks the window closed and releases every waiter
// Idempotent; called by the runtime when the window system closes it
func (w *Window) OnClose() {
	w.closeOnce.Do(func() {
		w.running.Store(false)
		close(w.done)

		w.anyInput.Set()
		w.keys.Release()
		w.chars.Release()
		w.mouse.Release()
		w.bridge.Detach()

		Logger().Info("window closed")
	})
}

func (w *Window) requireManual(op string) error {
	if w.bridge.Mode() != render.ModeManual {
		return fmt.Errorf("%w: %s requires manual render mode", ErrInvalidMode, op)
	}
	return nil
}

func (w *Window) requestRepaint() {
	w.rt().RequestRepaint()
}
