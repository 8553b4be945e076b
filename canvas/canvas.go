// Package canvas provides the live raster drawn on by window programs,
// backed by a gg software drawing context.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/graphwin/render"
)

// Canvas is a mutex-guarded gg context that notifies listeners after every
// mutation. It implements render.Image
type Canvas struct {
	mu         sync.Mutex
	dc         *gg.Context
	background color.Color
	listeners  map[render.ListenerID]func()
	nextID     render.ListenerID
}

// New creates a white canvas of the given size
func New(width, height int) *Canvas {
	c := &Canvas{
		dc:         gg.NewContext(width, height),
		background: color.White,
		listeners:  make(map[render.ListenerID]func()),
	}
	c.dc.ClearWithColor(gg.FromColor(c.background))
	c.dc.SetColor(color.Black)
	return c
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return image.Rect(0, 0, c.dc.Width(), c.dc.Height())
}

// DrawTo copies the canvas into dst
func (c *Canvas) DrawTo(dst draw.Image) {
	src := c.Snapshot()
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
}

// Snapshot returns a copy of the canvas pixels
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	img := c.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Save writes the canvas to path as PNG
func (c *Canvas) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save canvas to %s: %w", path, err)
	}
	return nil
}

// AddListener registers fn to run after each mutation
func (c *Canvas) AddListener(fn func()) render.ListenerID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.listeners[c.nextID] = fn
	return c.nextID
}

// RemoveListener unregisters a listener
func (c *Canvas) RemoveListener(id render.ListenerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, id)
}

// Fill paints the whole canvas with col
func (c *Canvas) Fill(col color.Color) {
	_ = c.mutate(func(dc *gg.Context) error {
		dc.ClearWithColor(gg.FromColor(col))
		return nil
	})
}

// SetBackground sets the color used by Clear
func (c *Canvas) SetBackground(col color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = col
}

// Clear fills the canvas with the background color
func (c *Canvas) Clear() {
	c.mu.Lock()
	bg := c.background
	c.mu.Unlock()
	c.Fill(bg)
}

// SetColor sets the pen and brush color for subsequent shapes
// Not a mutation: listeners are not notified
func (c *Canvas) SetColor(col color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.SetColor(col)
}

// SetLineWidth sets the stroke width
func (c *Canvas) SetLineWidth(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.SetLineWidth(width)
}

// PutPixel sets one pixel
func (c *Canvas) PutPixel(x, y int, col color.Color) {
	_ = c.mutate(func(dc *gg.Context) error {
		dc.SetPixel(x, y, gg.FromColor(col))
		return nil
	})
}

// Line strokes a segment
func (c *Canvas) Line(x1, y1, x2, y2 float64) error {
	return c.mutate(func(dc *gg.Context) error {
		dc.DrawLine(x1, y1, x2, y2)
		return dc.Stroke()
	})
}

// Circle strokes a circle outline
func (c *Canvas) Circle(x, y, r float64) error {
	return c.mutate(func(dc *gg.Context) error {
		dc.DrawCircle(x, y, r)
		return dc.Stroke()
	})
}

// FillCircle fills a disc
func (c *Canvas) FillCircle(x, y, r float64) error {
	return c.mutate(func(dc *gg.Context) error {
		dc.DrawCircle(x, y, r)
		return dc.Fill()
	})
}

// Ellipse strokes an ellipse outline
func (c *Canvas) Ellipse(x, y, rx, ry float64) error {
	return c.mutate(func(dc *gg.Context) error {
		dc.DrawEllipse(x, y, rx, ry)
		return dc.Stroke()
	})
}

// Rectangle strokes a rectangle outline
func (c *Canvas) Rectangle(x, y, w, h float64) error {
	return c.mutate(func(dc *gg.Context) error {
		dc.DrawRectangle(x, y, w, h)
		return dc.Stroke()
	})
}

// FillRectangle fills a rectangle
func (c *Canvas) FillRectangle(x, y, w, h float64) error {
	return c.mutate(func(dc *gg.Context) error {
		dc.DrawRectangle(x, y, w, h)
		return dc.Fill()
	})
}

// Draw runs fn against the underlying context as a single mutation
func (c *Canvas) Draw(fn func(dc *gg.Context) error) error {
	return c.mutate(fn)
}

// mutate applies fn under the lock, then notifies listeners unlocked so
// they may read the canvas back
func (c *Canvas) mutate(fn func(dc *gg.Context) error) error {
	c.mu.Lock()
	err := fn(c.dc)
	fns := make([]func(), 0, len(c.listeners))
	for _, l := range c.listeners {
		fns = append(fns, l)
	}
	c.mu.Unlock()

	for _, l := range fns {
		l()
	}
	return err
}
