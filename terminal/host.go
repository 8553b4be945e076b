package terminal

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphwin/message"
	"github.com/lixenwraith/graphwin/status"
	"github.com/lixenwraith/graphwin/window"
)

// quitSignal marks the interrupt that ends Serve
type quitSignal struct{}

// statusKeys are the metrics shown on the status line
var statusKeys = []string{
	status.RenderMode,
	status.FrameRate,
	status.FramesRendered,
	status.FramesSkipped,
	status.LastSnapshot,
}

// Host runs a window inside a tcell screen and implements window.Runtime
type Host struct {
	screen tcell.Screen
	win    *window.Window

	statusLine bool

	stopping       atomic.Bool
	repaintPending atomic.Bool
	repaints       *atomic.Int64

	mu               sync.Mutex
	cursorX, cursorY int
	buttons          tcell.ButtonMask

	// Event goroutine only
	frame *image.RGBA
	cells *image.RGBA
}

// NewHost attaches win to an initialized screen. With statusLine set the
// bottom row shows pacing and snapshot metrics
func NewHost(screen tcell.Screen, win *window.Window, statusLine bool) *Host {
	h := &Host{
		screen:     screen,
		win:        win,
		statusLine: statusLine,
		repaints:   win.Status().Ints.Get(status.Repaints),
		frame:      image.NewRGBA(image.Rect(0, 0, win.Width(), win.Height())),
	}
	screen.EnableMouse()
	screen.HideCursor()
	win.SetRuntime(h)
	return h
}

// Window returns the hosted window
func (h *Host) Window() *window.Window {
	return h.win
}

// Serve polls screen events on the calling goroutine until Stop, window
// close, context cancellation or Ctrl+C. The window is closed on return so
// a blocked drawing goroutine always wakes
func (h *Host) Serve(ctx context.Context) error {
	defer h.win.Close()

	served := make(chan struct{})
	defer close(served)
	go func() {
		select {
		case <-ctx.Done():
		case <-h.win.Done():
		case <-served:
			return
		}
		h.Stop()
	}()

	window.Logger().Debug("terminal host started", "width", h.win.Width(), "height", h.win.Height())
	defer window.Logger().Debug("terminal host stopped")

	h.paint()
	for !h.stopping.Load() {
		ev := h.screen.PollEvent()
		if ev == nil {
			break
		}
		if !h.handle(ev) {
			break
		}
	}
	return ctx.Err()
}

// Stop ends Serve. Safe from any goroutine and before Serve starts
func (h *Host) Stop() {
	h.stopping.Store(true)
	// A full queue still ends the loop on the next event via the flag
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
}

func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			return false
		}
		h.repaintPending.Store(false)
		h.paint()

	case *tcell.EventResize:
		h.screen.Sync()
		h.paint()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			h.win.OnClose()
			return false
		}
		if kev, ok := convertKey(ev); ok {
			// Snapshot failures are logged by the window
			_ = h.win.OnKeyPress(kev)
		}

	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	now := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	h.mu.Lock()
	prev := h.buttons
	h.buttons = now
	h.cursorX, h.cursorY = x, y
	h.mu.Unlock()

	pressed, released := now&^prev, prev&^now
	if pressed == 0 && released == 0 {
		return
	}

	px, py := h.MapCursorToClient(x, y)
	if pressed != 0 {
		h.win.OnMousePress(message.MouseEvent{X: px, Y: py, Buttons: convertButtons(pressed)})
	}
	if released != 0 {
		h.win.OnMouseRelease(message.MouseEvent{X: px, Y: py, Buttons: convertButtons(released)})
	}
}

// RequestRepaint schedules a paint on the event goroutine. Requests made
// while one is pending are merged
func (h *Host) RequestRepaint() {
	if !h.repaintPending.CompareAndSwap(false, true) {
		return
	}
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		h.repaintPending.Store(false)
	}
}

// CursorPos returns the cell of the last mouse event
func (h *Host) CursorPos() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursorX, h.cursorY
}

// MapCursorToClient converts a cell position to the window pixel at the
// cell's centre, clamped to the window
func (h *Host) MapCursorToClient(gx, gy int) (int, int) {
	cols, rows := h.drawArea()
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	w, ht := h.win.Width(), h.win.Height()
	x := (2*gx + 1) * w / (2 * cols)
	y := (2*gy + 1) * ht / (2 * rows)
	return clamp(x, 0, w-1), clamp(y, 0, ht-1)
}

// drawArea returns the cell grid available to the canvas
func (h *Host) drawArea() (cols, rows int) {
	cols, rows = h.screen.Size()
	if h.statusLine && rows > 0 {
		rows--
	}
	return cols, rows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
