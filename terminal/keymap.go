package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphwin/message"
)

var specialKeys = map[tcell.Key]message.Key{
	tcell.KeyEscape:     message.KeyEscape,
	tcell.KeyTab:        message.KeyTab,
	tcell.KeyBacktab:    message.KeyBacktab,
	tcell.KeyBackspace:  message.KeyBackspace,
	tcell.KeyBackspace2: message.KeyBackspace,
	tcell.KeyEnter:      message.KeyEnter,
	tcell.KeyInsert:     message.KeyInsert,
	tcell.KeyDelete:     message.KeyDelete,
	tcell.KeyPause:      message.KeyPause,
	tcell.KeyPrint:      message.KeyPrint,
	tcell.KeyClear:      message.KeyClear,
	tcell.KeyHome:       message.KeyHome,
	tcell.KeyEnd:        message.KeyEnd,
	tcell.KeyLeft:       message.KeyLeft,
	tcell.KeyUp:         message.KeyUp,
	tcell.KeyRight:      message.KeyRight,
	tcell.KeyDown:       message.KeyDown,
	tcell.KeyPgUp:       message.KeyPageUp,
	tcell.KeyPgDn:       message.KeyPageDown,
	tcell.KeyF1:         message.KeyF1,
	tcell.KeyF2:         message.KeyF2,
	tcell.KeyF3:         message.KeyF3,
	tcell.KeyF4:         message.KeyF4,
	tcell.KeyF5:         message.KeyF5,
	tcell.KeyF6:         message.KeyF6,
	tcell.KeyF7:         message.KeyF7,
	tcell.KeyF8:         message.KeyF8,
	tcell.KeyF9:         message.KeyF9,
	tcell.KeyF10:        message.KeyF10,
	tcell.KeyF11:        message.KeyF11,
	tcell.KeyF12:        message.KeyF12,
}

func convertMods(m tcell.ModMask) message.Modifier {
	var mods message.Modifier
	if m&tcell.ModShift != 0 {
		mods |= message.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= message.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= message.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= message.ModMeta
	}
	return mods
}

// convertKey maps a tcell key event to a window key event
// Returns false for keys the window does not model
func convertKey(ev *tcell.EventKey) (message.KeyEvent, bool) {
	mods := convertMods(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		return message.KeyEvent{Key: message.KeyForRune(r), Rune: r, Mods: mods}, true
	}

	// Control codes alias Tab, Enter and Backspace, so the table goes first
	if k, ok := specialKeys[ev.Key()]; ok {
		return message.KeyEvent{Key: k, Mods: mods}, true
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('A' + ev.Key() - tcell.KeyCtrlA)
		return message.KeyEvent{Key: message.KeyForRune(r), Mods: mods | message.ModCtrl}, true
	}

	return message.KeyEvent{}, false
}

func convertButtons(b tcell.ButtonMask) message.MouseButton {
	var buttons message.MouseButton
	if b&tcell.Button1 != 0 {
		buttons |= message.ButtonLeft
	}
	if b&tcell.Button2 != 0 {
		buttons |= message.ButtonRight
	}
	if b&tcell.Button3 != 0 {
		buttons |= message.ButtonMiddle
	}
	return buttons
}
