package message

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key
// Printable keys use their upper-case code point; special keys live above
// the Unicode range so the two never collide
type Key uint32

const (
	KeyNone Key = 0

	keySpecialBase Key = 0x01000000
)

// Special keys
const (
	KeyEscape Key = keySpecialBase + iota
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyEnter
	KeyInsert
	KeyDelete
	KeyPause
	KeyPrint
	KeyClear
	KeyHome
	KeyEnd
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyPageUp
	KeyPageDown
)

// Function keys
const (
	KeyF1 Key = keySpecialBase + 0x30 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// KeyEvent is a key press delivered by the windowing runtime
// Rune holds the produced character for printable keys, 0 otherwise
type KeyEvent struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// KeyForRune maps a printable character to its key code
func KeyForRune(r rune) Key {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return Key(r)
}

// IsSpecial reports whether k is a non-character key
func (k Key) IsSpecial() bool {
	return k >= keySpecialBase
}

// Char returns the character a key press contributes to the char mailbox
// Only printable ASCII and Return produce characters
func (e KeyEvent) Char() (rune, bool) {
	if e.Key == KeyEnter {
		return '\r', true
	}
	if e.Rune >= 0x20 && e.Rune < 0x7f {
		return e.Rune, true
	}
	return 0, false
}

var specialKeyNames = map[Key]string{
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyBackspace: "Backspace",
	KeyEnter:     "Enter",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyPause:     "Pause",
	KeyPrint:     "Print",
	KeyClear:     "Clear",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyLeft:      "Left",
	KeyUp:        "Up",
	KeyRight:     "Right",
	KeyDown:      "Down",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
}

// String returns a human-readable key name
func (k Key) String() string {
	if name, ok := specialKeyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if k == KeyNone {
		return "None"
	}
	if k == ' ' {
		return "Space"
	}
	if !k.IsSpecial() {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%#x)", uint32(k))
}

// ParseFunctionKey parses "F1".."F12" (case-insensitive)
func ParseFunctionKey(name string) (Key, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k := KeyF1; k <= KeyF12; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return KeyNone, false
}

// String returns modifiers joined with '+'
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if m&ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}
