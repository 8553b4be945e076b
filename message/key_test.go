package message

import "testing"

func TestKeyEventChar(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want rune
		ok   bool
	}{
		{"letter", KeyEvent{Key: KeyForRune('a'), Rune: 'a'}, 'a', true},
		{"upper", KeyEvent{Key: KeyForRune('A'), Rune: 'A', Mods: ModShift}, 'A', true},
		{"space", KeyEvent{Key: ' ', Rune: ' '}, ' ', true},
		{"return", KeyEvent{Key: KeyEnter}, '\r', true},
		{"function", KeyEvent{Key: KeyF10}, 0, false},
		{"escape", KeyEvent{Key: KeyEscape}, 0, false},
		{"non-ascii", KeyEvent{Key: Key('é'), Rune: 'é'}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ev.Char()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestKeyForRune(t *testing.T) {
	if KeyForRune('a') != KeyForRune('A') {
		t.Error("Expected case-folded key codes to match")
	}
	if KeyForRune('a').IsSpecial() {
		t.Error("Expected letter key not to be special")
	}
	if !KeyEscape.IsSpecial() || !KeyF12.IsSpecial() {
		t.Error("Expected escape and F12 to be special")
	}
}

func TestParseFunctionKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"F10", KeyF10, true},
		{"f1", KeyF1, true},
		{" F12 ", KeyF12, true},
		{"F13", KeyNone, false},
		{"Escape", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseFunctionKey(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFunctionKey(%q): expected (%v, %v), got (%v, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestModifierString(t *testing.T) {
	if got := (ModCtrl | ModShift).String(); got != "Ctrl+Shift" {
		t.Errorf("Expected Ctrl+Shift, got %s", got)
	}
	if got := ModNone.String(); got != "None" {
		t.Errorf("Expected None, got %s", got)
	}
}
