package render

import (
	"fmt"
	"strings"
)

// Mode selects how drawing reaches the screen
type Mode uint8

const (
	// ModeImmediate repaints after every mutation of the live image
	ModeImmediate Mode = iota
	// ModeManual shows the live image only after an explicit Sync
	ModeManual
)

// String returns the config spelling of the mode
func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeManual:
		return "manual"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "immediate" or "manual" (case-insensitive)
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immediate", "auto":
		return ModeImmediate, nil
	case "manual":
		return ModeManual, nil
	default:
		return ModeImmediate, fmt.Errorf("unknown render mode %q", s)
	}
}
