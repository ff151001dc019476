package engine

import "time"

// clock hands out absolute monotonic millisecond timestamps for the
// render time parameter (spec §4.3's "time passed to render is an
// absolute monotonic millisecond timestamp").
//
// Grounded on the teacher's engine.PausableClock, simplified: that type
// tracks cumulative paused duration under a RWMutex so multiple
// goroutines (scheduler, systems, UI) can all read consistent game time
// concurrently. This engine's frame loop is the only goroutine that ever
// calls render (SPEC_FULL.md's single-threaded cooperative model), and a
// paused pattern simply isn't ticked at all rather than needing its
// passed timestamp to freeze — so the pause-duration bookkeeping has
// nothing left to do and is dropped; only the monotonic epoch survives.
type clock struct {
	start time.Time
}

func newClock() *clock {
	return &clock{start: time.Now()}
}

// nowMs returns milliseconds elapsed since the clock was created.
func (c *clock) nowMs() float64 {
	return float64(time.Since(c.start).Microseconds()) / 1000.0
}
