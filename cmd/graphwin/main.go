package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphwin/audio"
	"github.com/lixenwraith/graphwin/config"
	"github.com/lixenwraith/graphwin/message"
	"github.com/lixenwraith/graphwin/render"
	"github.com/lixenwraith/graphwin/terminal"
	"github.com/lixenwraith/graphwin/window"
)

var configPath = flag.String("config", "", "Path to TOML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "graphwin: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes the window logger to log_file; stderr belongs to the
// terminal UI, so without a file logging stays off
func setupLogging(cfg *config.Config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	lvl, _ := cfg.Level()
	window.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})))
	return func() { f.Close() }, nil
}

func run(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\ngraphwin crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	opts := cfg.WindowOptions()
	if cfg.Audio {
		cue := audio.NewCue(float64(cfg.Volume) / 100)
		// Non-fatal, the window runs without sound
		if err := cue.Initialize(); err == nil {
			defer cue.Cleanup()
			opts.OnSnapshot = cue.OnSnapshot
		}
	}

	win, err := window.New(opts)
	if err != nil {
		return err
	}
	host := terminal.NewHost(screen, win, cfg.StatusLine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return terminal.Run(ctx, host, func(w *window.Window) {
		animate(w, cfg.FPS, cfg.MaxSkip)
	})
}

// animate shows a title frame until any input, then scrolls a sine wave
// with frame skipping. Clicks leave markers; Escape or q quits
func animate(w *window.Window, fps, maxSkip int) {
	cv := w.Canvas()
	width, height := float64(w.Width()), float64(w.Height())

	cv.Clear()
	cv.SetLineWidth(2)
	cv.SetColor(color.RGBA{R: 40, G: 90, B: 200, A: 255})
	_ = cv.Rectangle(4, 4, width-8, height-8)
	_ = cv.FillCircle(width/2, height/2, math.Min(width, height)/6)
	w.Pause()

	w.SetRenderMode(render.ModeManual)

	var (
		phase   float64
		markers []message.MouseMessage
	)
	for w.IsRunning() {
		if w.HasKbMsg() {
			key, _ := w.GetKey()
			if key == message.KeyEscape || key == message.KeyForRune('Q') {
				return
			}
		}
		if w.HasMouseMsg() {
			if msg := w.GetMouseMessage(); msg.Kind == message.MousePress {
				markers = append(markers, msg)
			}
		}

		phase += 2 * math.Pi / float64(fps)
		draw, err := w.DelayJFPS(fps, maxSkip)
		if err != nil {
			window.Logger().Error("pacing failed", "error", err)
			return
		}
		if !draw {
			continue
		}
		drawWave(w, phase, markers)
	}
}

func drawWave(w *window.Window, phase float64, markers []message.MouseMessage) {
	cv := w.Canvas()
	width, height := float64(w.Width()), float64(w.Height())
	mid, amp := height/2, height/3

	cv.Clear()
	cv.SetColor(color.Gray{Y: 180})
	_ = cv.Line(0, mid, width, mid)

	cv.SetColor(color.RGBA{R: 200, G: 30, B: 30, A: 255})
	const step = 4.0
	prevY := mid + amp*math.Sin(phase)
	for x := step; x <= width; x += step {
		y := mid + amp*math.Sin(phase+x/width*4*math.Pi)
		_ = cv.Line(x-step, prevY, x, y)
		prevY = y
	}

	cv.SetColor(color.RGBA{G: 140, B: 60, A: 255})
	for _, m := range markers {
		_ = cv.FillCircle(float64(m.X), float64(m.Y), 4)
	}
}
