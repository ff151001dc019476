// Package event implements the engine's typed publish/subscribe bus:
// on/once/on_all subscriptions, per-handler failure isolation, and a
// bounded history of recent envelopes.
//
// Grounded on the teacher's event/events duplicate pair: the fixed-size
// overwrite-oldest ring buffer from event.EventQueue backs History, and
// the name/registry split from events.Router's Handler registration
// informed the on/once/on_all subscriber bookkeeping below — both
// reworked for synchronous single-goroutine delivery instead of the
// teacher's lock-free MPSC queue, since the engine's event loop is the
// only goroutine that ever touches the bus (see engine package).
package event

// Type identifies an event. The engine emits a closed set of these as
// named constants; callers may also publish arbitrary free-form string
// types for their own signaling.
type Type string

const (
	FrameStart          Type = "frame_start"
	FrameEnd            Type = "frame_end"
	FrameDrop           Type = "frame_drop"
	Resize              Type = "resize"
	PatternBeforeChange Type = "pattern_before_change"
	PatternChange       Type = "pattern_change"
	ThemeChange         Type = "theme_change"
	FPSChange           Type = "fps_change"
	Pause               Type = "pause"
	Resume              Type = "resume"
	MouseMove           Type = "mouse_move"
	MouseClick          Type = "mouse_click"
	ToastShow           Type = "toast_show"
)

// Envelope wraps every delivered payload with its type and emission time.
type Envelope struct {
	Type        Type
	TimestampMs int64
	Data        any
}

// Handler receives delivered envelopes. A panicking handler is recovered
// by the bus and must not prevent delivery to the remaining handlers.
type Handler func(Envelope)

// Subscription is returned by On/Once/OnAll; Unsubscribe removes exactly
// the handler it was returned for. Safe to call more than once.
type Subscription struct {
	unsubscribe func()
}

func (s Subscription) Unsubscribe() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
