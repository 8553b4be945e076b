// Package terminal hosts a window in a tcell screen.
//
// Each terminal cell shows two vertically stacked pixels using the upper
// half block, foreground for the top pixel and background for the bottom.
// The canvas is scaled to the cell grid with nearest-neighbour sampling.
//
// Host owns the event goroutine: it polls tcell events, converts them into
// window callbacks and paints on demand. Run starts the event loop and the
// user's drawing function on separate goroutines and returns when both exit.
package terminal
