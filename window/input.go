package window

import (
	"image/draw"

	"github.com/lixenwraith/graphwin/message"
)

// Pause publishes the canvas and blocks until a key press, a mouse press or
// the window closes. Frame pacing restarts afterwards
func (w *Window) Pause() {
	if !w.IsRunning() {
		return
	}
	w.Sync()

	ready := w.anyInput.Arm()
	select {
	case <-ready:
	case <-w.done:
	}
	w.pacer.Reset()
}

// GetChar returns the character typed within the freshness window, or
// blocks for the next one. Returns ' ' when the window is closed
func (w *Window) GetChar() rune {
	if !w.IsRunning() {
		return ' '
	}
	now := w.clock.Now()
	w.Sync()

	ch, ok := w.chars.Take(now, w.done)
	if !ok {
		return ' '
	}
	return ch
}

// GetKey returns the key pressed within the freshness window, or blocks for
// the next one. Returns (KeyEscape, ModNone) when the window is closed
func (w *Window) GetKey() (message.Key, message.Modifier) {
	if !w.IsRunning() {
		return message.KeyEscape, message.ModNone
	}
	now := w.clock.Now()
	w.Sync()

	ev, ok := w.keys.Take(now, w.done)
	if !ok {
		return message.KeyEscape, message.ModNone
	}
	return ev.Key, ev.Mods
}

// GetMouseMessage returns the mouse press or release seen within the
// freshness window, or blocks for the next one
// Returns the zero message (kind None, no buttons) when the window is closed
func (w *Window) GetMouseMessage() message.MouseMessage {
	if !w.IsRunning() {
		return message.MouseMessage{}
	}
	now := w.clock.Now()
	w.Sync()

	msg, ok := w.mouse.Take(now, w.done)
	if !ok {
		return message.MouseMessage{}
	}
	return msg
}

// HasKbHit reports whether a character arrived within the freshness window
func (w *Window) HasKbHit() bool {
	return w.chars.IsFresh(w.clock.Now())
}

// HasKbMsg reports whether a key press arrived within the freshness window
func (w *Window) HasKbMsg() bool {
	return w.keys.IsFresh(w.clock.Now())
}

// HasMouseMsg reports whether a mouse message arrived within the freshness
// window
func (w *Window) HasMouseMsg() bool {
	return w.mouse.IsFresh(w.clock.Now())
}

// OnPaint draws the current frame into dst. Event goroutine only
func (w *Window) OnPaint(dst draw.Image) {
	w.bridge.Paint(dst)
}

// OnMousePress records a button press and wakes Pause
func (w *Window) OnMousePress(ev message.MouseEvent) {
	defer w.anyInput.Set()

	w.mouse.Set(message.MouseMessage{
		X:       ev.X,
		Y:       ev.Y,
		Kind:    message.MousePress,
		Buttons: ev.Buttons,
	}, w.clock.Now())
	w.mouseEvents.Add(1)
}

// OnMouseRelease records a button release
func (w *Window) OnMouseRelease(ev message.MouseEvent) {
	w.mouse.Set(message.MouseMessage{
		X:       ev.X,
		Y:       ev.Y,
		Kind:    message.MouseRelease,
		Buttons: ev.Buttons,
	}, w.clock.Now())
	w.mouseEvents.Add(1)
}

// OnKeyPress records a key press, routes printable keys to the char mailbox
// and wakes Pause. The snapshot chord additionally saves the canvas; a save
// failure is logged and returned but leaves input delivery intact
func (w *Window) OnKeyPress(ev message.KeyEvent) error {
	defer w.anyInput.Set()

	now := w.clock.Now()
	if ch, ok := ev.Char(); ok {
		w.chars.Set(ch, now)
	}
	w.keys.Set(ev, now)
	w.keyEvents.Add(1)

	if w.isSnapshotChord(ev) {
		_, err := w.SaveSnapshot()
		return err
	}
	return nil
}

func (w *Window) isSnapshotChord(ev message.KeyEvent) bool {
	const chord = message.ModCtrl | message.ModShift | message.ModAlt
	return ev.Key == w.snapshotKey && ev.Mods&chord != 0
}
