package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = '▀'

// paint draws the window's visible frame into the cell grid
func (h *Host) paint() {
	cols, rows := h.drawArea()
	h.repaints.Add(1)

	if cols > 0 && rows > 0 {
		h.win.OnPaint(h.frame)

		cells := h.cellBuffer(cols, rows*2)
		xdraw.NearestNeighbor.Scale(cells, cells.Bounds(), h.frame, h.frame.Bounds(), xdraw.Src, nil)

		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				style := tcell.StyleDefault.
					Foreground(toColor(cells.RGBAAt(x, 2*y))).
					Background(toColor(cells.RGBAAt(x, 2*y+1)))
				h.screen.SetContent(x, y, halfBlock, nil, style)
			}
		}
	}

	if h.statusLine {
		h.drawStatus(cols, rows)
	}
	h.screen.Show()
}

// cellBuffer returns a scratch image of the given size, reused across paints
func (h *Host) cellBuffer(w, ht int) *image.RGBA {
	if h.cells == nil || h.cells.Bounds().Dx() != w || h.cells.Bounds().Dy() != ht {
		h.cells = image.NewRGBA(image.Rect(0, 0, w, ht))
	}
	return h.cells
}

func (h *Host) drawStatus(cols, row int) {
	style := tcell.StyleDefault.Reverse(true)
	text := []rune(h.win.Status().Summary(statusKeys...))
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		h.screen.SetContent(x, row, r, nil, style)
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
