// Package render connects the live drawing raster to what the window paints.
//
// The bridge keeps two buffers: the live Image the drawing goroutine mutates
// and a visible copy the event goroutine paints. In immediate mode every
// mutation refreshes the visible copy and requests a repaint; in manual mode
// the visible copy changes only on Sync, so a frame can be composed off
// screen.
package render

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// Bridge owns the live/visible buffer pair of one window
type Bridge struct {
	mu       sync.RWMutex
	live     Image
	visible  *image.RGBA
	mode     Mode
	listener ListenerID
	attached bool
	detached bool
	repaint  func()
}

// NewBridge creates a bridge in manual mode over live
// repaint is called after the visible buffer changes; nil disables it
func NewBridge(live Image, repaint func()) *Bridge {
	b := &Bridge{
		live:    live,
		mode:    ModeManual,
		repaint: repaint,
	}
	if live != nil {
		b.visible = live.Snapshot()
	}
	return b
}

// SetMode switches render mode without scheduling a repaint
func (b *Bridge) SetMode(mode Mode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mode = mode
	if b.live == nil || b.detached {
		return
	}

	switch {
	case mode == ModeImmediate && !b.attached:
		b.listener = b.live.AddListener(b.onLiveChanged)
		b.attached = true
	case mode == ModeManual && b.attached:
		b.live.RemoveListener(b.listener)
		b.attached = false
	}
}

// Mode returns the current render mode
func (b *Bridge) Mode() Mode {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mode
}

// Sync copies live into visible and requests a repaint
// Redundant calls are harmless
func (b *Bridge) Sync() {
	b.copyLive()
	b.requestRepaint()
}

// Paint draws the current frame into dst
// Immediate mode paints live directly; manual mode paints the visible copy
func (b *Bridge) Paint(dst draw.Image) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch {
	case b.mode == ModeImmediate && b.live != nil:
		b.live.DrawTo(dst)
	case b.visible != nil:
		draw.Draw(dst, dst.Bounds(), b.visible, b.visible.Bounds().Min, draw.Src)
	default:
		draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}
}

// Visible returns a copy of the buffer manual mode paints
func (b *Bridge) Visible() *image.RGBA {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.visible == nil {
		return nil
	}
	out := image.NewRGBA(b.visible.Bounds())
	copy(out.Pix, b.visible.Pix)
	return out
}

// Detach removes the immediate-mode listener from live for good; later
// SetMode calls only record the mode. The mode itself is left unchanged
func (b *Bridge) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.detached = true
	if b.attached {
		b.live.RemoveListener(b.listener)
		b.attached = false
	}
}

// onLiveChanged runs on the drawing goroutine after each mutation
func (b *Bridge) onLiveChanged() {
	b.copyLive()
	b.requestRepaint()
}

func (b *Bridge) copyLive() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.live == nil || b.visible == nil {
		return
	}
	b.live.DrawTo(b.visible)
}

func (b *Bridge) requestRepaint() {
	if b.repaint != nil {
		b.repaint()
	}
}
