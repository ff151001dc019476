package terminal

// EventType distinguishes input event categories.
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventMouse
	EventError  // Read error
	EventClosed // Input closed
)

// Event is a decoded terminal input event. Exactly one of the Key/Mouse
// fields is meaningful, selected by Type.
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier

	Mouse MouseEvent

	Width  int // EventResize
	Height int // EventResize

	Err error
}

// MouseEvent carries a decoded SGR mouse report, coordinates already
// normalized to 0-based (the wire protocol is 1-based).
type MouseEvent struct {
	Button    MouseButton
	Action    MouseAction
	X, Y      int
	Modifiers Modifier
}
