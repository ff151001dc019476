package event

// historyCap mirrors the teacher's event.EventQueue ring size, sized down
// to the spec's "last 100 envelopes" requirement instead of a game-frame
// buffer depth.
const historyCap = 100

type subscriber struct {
	id      uint64
	handler Handler
	once    bool
}

// Bus is a synchronous typed publish/subscribe bus. It has no internal
// locking: the engine's event loop is the only goroutine that ever calls
// into it (see SPEC_FULL.md's concurrency model), so subscribe/publish/
// unsubscribe are all plain sequential operations.
type Bus struct {
	handlers map[Type][]*subscriber
	all      []*subscriber
	nextID   uint64

	history    [historyCap]Envelope
	historyLen int
	historyPos int // next write slot, wraps

	panicHandler func(Envelope, any)
}

// SetPanicHandler installs a callback invoked whenever a subscriber panics
// during dispatch. Delivery to other subscribers always continues
// regardless of whether a handler is installed.
func (b *Bus) SetPanicHandler(fn func(Envelope, any)) {
	b.panicHandler = fn
}

// NewBus returns an empty bus ready for subscriptions.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]*subscriber)}
}

// On registers handler for a single event type. Returns a handle whose
// Unsubscribe removes exactly this registration.
func (b *Bus) On(t Type, handler Handler) Subscription {
	return b.subscribe(t, handler, false)
}

// Once registers handler for a single event type; it is removed after its
// first delivery, before the handler runs a second time.
func (b *Bus) Once(t Type, handler Handler) Subscription {
	return b.subscribe(t, handler, true)
}

func (b *Bus) subscribe(t Type, handler Handler, once bool) Subscription {
	b.nextID++
	sub := &subscriber{id: b.nextID, handler: handler, once: once}
	b.handlers[t] = append(b.handlers[t], sub)
	return Subscription{unsubscribe: func() {
		b.handlers[t] = removeSub(b.handlers[t], sub.id)
	}}
}

// OnAll registers handler to receive every published event, regardless
// of type.
func (b *Bus) OnAll(handler Handler) Subscription {
	b.nextID++
	sub := &subscriber{id: b.nextID, handler: handler}
	b.all = append(b.all, sub)
	return Subscription{unsubscribe: func() {
		b.all = removeSub(b.all, sub.id)
	}}
}

func removeSub(subs []*subscriber, id uint64) []*subscriber {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

// Publish wraps data in an envelope stamped with nowMs, records it in the
// bounded history, and delivers it to every type-specific and catch-all
// handler. A handler that panics is recovered and passed to the callback
// installed via SetPanicHandler, if any; delivery continues to the remaining handlers.
func (b *Bus) Publish(t Type, nowMs int64, data any) {
	env := Envelope{Type: t, TimestampMs: nowMs, Data: data}
	b.record(env)

	if subs := b.handlers[t]; len(subs) > 0 {
		// Snapshot: a handler may unsubscribe (itself or another) during
		// dispatch, which mutates b.handlers[t] in place.
		snapshot := append([]*subscriber(nil), subs...)
		var fired []uint64
		for _, s := range snapshot {
			b.invoke(s.handler, env)
			if s.once {
				fired = append(fired, s.id)
			}
		}
		for _, id := range fired {
			b.handlers[t] = removeSub(b.handlers[t], id)
		}
	}

	if len(b.all) > 0 {
		snapshot := append([]*subscriber(nil), b.all...)
		for _, s := range snapshot {
			b.invoke(s.handler, env)
		}
	}
}

func (b *Bus) invoke(h Handler, env Envelope) {
	defer func() {
		if r := recover(); r != nil && b.panicHandler != nil {
			b.panicHandler(env, r)
		}
	}()
	h(env)
}

func (b *Bus) record(env Envelope) {
	b.history[b.historyPos] = env
	b.historyPos = (b.historyPos + 1) % historyCap
	if b.historyLen < historyCap {
		b.historyLen++
	}
}

// History returns the last N published envelopes (N ≤ 100) in emission
// order, oldest first.
func (b *Bus) History() []Envelope {
	out := make([]Envelope, b.historyLen)
	start := b.historyPos - b.historyLen
	if start < 0 {
		start += historyCap
	}
	for i := 0; i < b.historyLen; i++ {
		out[i] = b.history[(start+i)%historyCap]
	}
	return out
}

// ClearHistory discards all recorded envelopes without affecting live
// subscriptions.
func (b *Bus) ClearHistory() {
	b.historyLen = 0
	b.historyPos = 0
}
