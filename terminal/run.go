package terminal

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/graphwin/window"
)

// Run serves h on one goroutine and calls userMain on another, returning
// when both have exited. Returning from userMain closes the window and stops
// the host; closing the window, from Ctrl+C or ctx, unblocks userMain
func Run(ctx context.Context, h *Host, userMain func(w *window.Window)) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return h.Serve(ctx)
	})
	g.Go(func() error {
		defer h.Stop()
		defer h.win.Close()
		userMain(h.win)
		return nil
	})

	return g.Wait()
}
