package message

// MouseButton is a bitmask of mouse buttons
type MouseButton uint8

const (
	ButtonNone   MouseButton = 0
	ButtonLeft   MouseButton = 1 << 0
	ButtonRight  MouseButton = 1 << 1
	ButtonMiddle MouseButton = 1 << 2
)

// MouseKind tags a mouse message
type MouseKind uint8

const (
	MouseNone MouseKind = iota
	MousePress
	MouseRelease
)

// MouseEvent is a button transition delivered by the windowing runtime in
// client coordinates
type MouseEvent struct {
	X, Y    int
	Buttons MouseButton
}

// MouseMessage is what the drawing goroutine reads back
type MouseMessage struct {
	X, Y    int
	Kind    MouseKind
	Buttons MouseButton
}

// String returns human-readable button names
func (b MouseButton) String() string {
	switch b {
	case ButtonNone:
		return "None"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	s := ""
	for _, named := range []MouseButton{ButtonLeft, ButtonRight, ButtonMiddle} {
		if b&named != 0 {
			if s != "" {
				s += "+"
			}
			s += named.String()
		}
	}
	return s
}

// String returns human-readable kind name
func (k MouseKind) String() string {
	switch k {
	case MousePress:
		return "Press"
	case MouseRelease:
		return "Release"
	default:
		return "None"
	}
}
