// Package config loads window settings from a TOML file and GRAPHWIN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/graphwin/message"
	"github.com/lixenwraith/graphwin/render"
	"github.com/lixenwraith/graphwin/window"
)

// ErrInvalid reports an out-of-range or malformed setting
var ErrInvalid = errors.New("invalid config")

const envPrefix = "GRAPHWIN_"

// Config holds every tunable of the graphwin binary
type Config struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	RenderMode  string `toml:"render_mode"`
	FreshnessMs int    `toml:"freshness_ms"`
	CaptureDir  string `toml:"capture_dir"`
	SnapshotKey string `toml:"snapshot_key"`

	FPS     int `toml:"fps"`
	MaxSkip int `toml:"max_skip"`

	Audio  bool `toml:"audio"`
	Volume int  `toml:"volume"`

	StatusLine bool `toml:"status_line"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Width:       640,
		Height:      480,
		RenderMode:  render.ModeImmediate.String(),
		FreshnessMs: int(message.DefaultFreshness / time.Millisecond),
		CaptureDir:  ".",
		SnapshotKey: "F10",
		FPS:         60,
		MaxSkip:     10,
		Audio:       true,
		Volume:      50,
		StatusLine:  true,
		LogLevel:    "info",
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"FRESHNESS_MS", &c.FreshnessMs},
		{"FPS", &c.FPS},
		{"MAX_SKIP", &c.MaxSkip},
		{"VOLUME", &c.Volume},
	}
	for _, e := range ints {
		if v := os.Getenv(envPrefix + e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalid, envPrefix, e.name, v)
			}
			*e.dst = n
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"AUDIO", &c.Audio},
		{"STATUS_LINE", &c.StatusLine},
	}
	for _, e := range bools {
		if v := os.Getenv(envPrefix + e.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalid, envPrefix, e.name, v)
			}
			*e.dst = b
		}
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"RENDER_MODE", &c.RenderMode},
		{"CAPTURE_DIR", &c.CaptureDir},
		{"SNAPSHOT_KEY", &c.SnapshotKey},
		{"LOG_FILE", &c.LogFile},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, e := range strs {
		if v, ok := os.LookupEnv(envPrefix + e.name); ok {
			*e.dst = v
		}
	}
	return nil
}

// Validate checks ranges and parses the enumerated settings
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FreshnessMs <= 0:
		return fmt.Errorf("%w: freshness_ms %d", ErrInvalid, c.FreshnessMs)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.MaxSkip < 0:
		return fmt.Errorf("%w: max_skip %d", ErrInvalid, c.MaxSkip)
	case c.Volume < 0 || c.Volume > 100:
		return fmt.Errorf("%w: volume %d", ErrInvalid, c.Volume)
	}

	if _, err := render.ParseMode(c.RenderMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, ok := message.ParseFunctionKey(c.SnapshotKey); !ok {
		return fmt.Errorf("%w: snapshot_key %q", ErrInvalid, c.SnapshotKey)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses log_level
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

// Freshness returns freshness_ms as a duration
func (c *Config) Freshness() time.Duration {
	return time.Duration(c.FreshnessMs) * time.Millisecond
}

// WindowOptions converts a validated config into window options
func (c *Config) WindowOptions() window.Options {
	opts := window.DefaultOptions()
	opts.Width, opts.Height = c.Width, c.Height
	opts.Freshness = c.Freshness()
	opts.CaptureDir = c.CaptureDir

	if mode, err := render.ParseMode(c.RenderMode); err == nil {
		opts.Mode = mode
	}
	if key, ok := message.ParseFunctionKey(c.SnapshotKey); ok {
		opts.SnapshotKey = key
	}
	return opts
}
