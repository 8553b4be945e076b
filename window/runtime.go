package window

// Runtime is the windowing system hosting a Window
// Its methods are called from the drawing goroutine and must not block
type Runtime interface {
	// RequestRepaint schedules OnPaint on the event goroutine
	RequestRepaint()

	// CursorPos returns the pointer position in runtime coordinates
	CursorPos() (gx, gy int)

	// MapCursorToClient converts runtime coordinates to canvas pixels
	MapCursorToClient(gx, gy int) (x, y int)
}

// NopRuntime is a headless runtime: repaints are dropped and the cursor
// stays at the origin
type NopRuntime struct{}

func (NopRuntime) RequestRepaint()                         {}
func (NopRuntime) CursorPos() (int, int)                   { return 0, 0 }
func (NopRuntime) MapCursorToClient(gx, gy int) (int, int) { return gx, gy }
