package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
	MouseBtnBack    // Button 4 (if supported)
	MouseBtnForward // Button 5 (if supported)
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// MouseMode controls which mouse events are reported (bitmask)
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // Press/release events
	MouseModeDrag   MouseMode = 1 << 1 // Drag events (button held + motion)
	MouseModeMotion MouseMode = 1 << 2 // All motion events
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	case MouseBtnBack:
		return "Back"
	case MouseBtnForward:
		return "Forward"
	default:
		return "None"
	}
}

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}

// mouseEnableSequence/csiMouseDisable toggle SGR extended mouse reporting
// (mode 1006) plus the motion (1003) and button-event (1002) tracking
// protocols. Motion reporting is only requested when motion is true,
// since it generates an event on every pixel of cursor travel.
func mouseEnableSequence(motion bool) []byte {
	if motion {
		return []byte("\x1b[?1002h\x1b[?1003h\x1b[?1006h")
	}
	return []byte("\x1b[?1002h\x1b[?1006h")
}

var csiMouseDisable = []byte("\x1b[?1003l\x1b[?1002l\x1b[?1006l")

// parseSGRMouse decodes an SGR (mode 1006) mouse report of the form
// ESC [ < Cb ; Cx ; Cy (M|m), returning the number of bytes consumed.
// Coordinates arrive 1-based on the wire and are normalized to 0-based.
func parseSGRMouse(data []byte) (int, Event) {
	// data[0:3] == ESC [ <
	i := 3
	n := len(data)

	cb, i, ok := scanMouseInt(data, i, n)
	if !ok || i >= n || data[i] != ';' {
		return 0, Event{}
	}
	i++

	cx, i, ok := scanMouseInt(data, i, n)
	if !ok || i >= n || data[i] != ';' {
		return 0, Event{}
	}
	i++

	cy, i, ok := scanMouseInt(data, i, n)
	if !ok || i >= n {
		return 0, Event{}
	}

	final := data[i]
	if final != 'M' && final != 'm' {
		return 0, Event{}
	}
	i++

	btn, action, mod := decodeMouseButtonByte(cb, final == 'm')

	return i, Event{
		Type: EventMouse,
		Mouse: MouseEvent{
			Button:    btn,
			Action:    action,
			X:         cx - 1,
			Y:         cy - 1,
			Modifiers: mod,
		},
	}
}

// scanMouseInt reads an unsigned decimal integer starting at i, returning
// the value, the index just past it, and whether at least one digit was
// consumed.
func scanMouseInt(data []byte, i, n int) (int, int, bool) {
	start := i
	val := 0
	for i < n && data[i] >= '0' && data[i] <= '9' {
		val = val*10 + int(data[i]-'0')
		i++
	}
	return val, i, i > start
}

// decodeMouseButtonByte splits the Cb byte of an SGR report into button
// identity, action, and modifiers per the xterm mouse tracking spec.
func decodeMouseButtonByte(cb int, isRelease bool) (MouseButton, MouseAction, Modifier) {
	var mod Modifier
	if cb&4 != 0 {
		mod |= ModShift
	}
	if cb&8 != 0 {
		mod |= ModAlt
	}
	if cb&16 != 0 {
		mod |= ModCtrl
	}

	motionBit := cb&32 != 0
	lowBits := cb & 3

	if cb&64 != 0 {
		// Wheel events: bit 6 set, low bits select direction.
		if lowBits == 0 {
			return MouseBtnWheelUp, MouseActionPress, mod
		}
		return MouseBtnWheelDown, MouseActionPress, mod
	}

	var btn MouseButton
	switch lowBits {
	case 0:
		btn = MouseBtnLeft
	case 1:
		btn = MouseBtnMiddle
	case 2:
		btn = MouseBtnRight
	default:
		btn = MouseBtnNone // motion with no button held
	}

	switch {
	case isRelease:
		return btn, MouseActionRelease, mod
	case motionBit && btn != MouseBtnNone:
		return btn, MouseActionDrag, mod
	case motionBit:
		return btn, MouseActionMove, mod
	default:
		return btn, MouseActionPress, mod
	}
}