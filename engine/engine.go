// Package engine implements the AnimationEngine: the single-threaded
// cooperative frame loop that drives pattern rendering, publishes
// lifecycle events, and feeds the performance monitor (spec §4.3).
//
// Grounded on the teacher's engine.ClockScheduler for the overall shape
// (tick loop, pause-aware scheduling, drift-aware rescheduling, cached
// metric pointers) but radically simplified: ClockScheduler runs two
// goroutines coordinating game ticks against a separate render loop via
// handoff channels, because it drives a real-time multiplayer game. This
// engine has no such handoff — SPEC_FULL.md's frame loop both updates and
// renders on the same tick, on the same goroutine, with input delivered
// asynchronously through the renderer's own event channel — so there is
// exactly one loop, and other goroutines reach it only through the Post
// dispatch channel.
package engine

import (
	"time"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/event"
	"github.com/lixenwraith/glyphstorm/metric"
	"github.com/lixenwraith/glyphstorm/pattern"
)

// Renderer is the subset of renderer.Renderer the engine depends on.
type Renderer interface {
	GetSize() buffer.Size
	GetBuffer() *buffer.Buffer
	Render() (uint32, error)
	ClearScreen()
}

// Callback is a no-argument engine lifecycle hook.
type Callback func()

// Engine is the AnimationEngine: it owns the current pattern, the frame
// clock, and publishes every lifecycle event spec.md §4.3 enumerates.
type Engine struct {
	renderer Renderer
	bus      *event.Bus
	perf     *PerformanceMonitor
	clock    *clock

	current     pattern.Pattern
	patternName string

	running bool
	paused  bool
	fps     uint32

	frameNumber uint64
	lastSize    buffer.Size
	lastTickMs  float64

	// switching suppresses the overlay arbiter for approximately one
	// frame after a pattern swap, so a colored overlay write can never
	// interleave with the full-screen clear a swap forces (spec §4.7).
	switching bool

	mouse *buffer.Point

	beforeTerminalRender Callback
	afterRender          Callback

	// dispatch is the single channel every other goroutine (terminal
	// input reader, resize/signal watchers) posts closures onto instead
	// of touching engine state directly, per SPEC_FULL.md §5's dispatch
	// channel addition. tick drains it fully before rendering, so every
	// closure runs on the frame-loop goroutine with no locking.
	dispatch chan func()
}

// dispatchQueueCap bounds the dispatch channel; once it is full, Post
// drops further closures instead of blocking or growing without limit.
const dispatchQueueCap = 256

// New creates an Engine bound to renderer and bus, publishing metrics
// through reg. The pattern must be set via SetPattern before Run.
func New(r Renderer, bus *event.Bus, reg *metric.Registry) *Engine {
	return &Engine{
		renderer: r,
		bus:      bus,
		perf:     newPerformanceMonitor(reg),
		clock:    newClock(),
		fps:      30,
		lastSize: r.GetSize(),
		dispatch: make(chan func(), dispatchQueueCap),
	}
}

// Post enqueues f to run on the frame-loop goroutine at the start of the
// next tick (while paused, on the next Run iteration). Safe to call from
// any goroutine. If the queue is full, f is
// dropped rather than blocking the caller — a producer (the input
// reader) outrunning a stalled frame loop should not deadlock on it.
func (e *Engine) Post(f func()) {
	select {
	case e.dispatch <- f:
	default:
	}
}

// drainDispatch runs every closure queued since the last tick, in order.
func (e *Engine) drainDispatch() {
	for {
		select {
		case f := <-e.dispatch:
			f()
		default:
			return
		}
	}
}

// SetMouse records the last known pointer position for the next render
// call; nil means the pointer is outside the drawable area or mouse
// tracking is off. NotifyMouseMove updates the same position as it
// forwards a move event.
func (e *Engine) SetMouse(pos *buffer.Point) {
	e.mouse = pos
}

// NotifyMouseMove records the pointer position, publishes MouseMove, and
// probes the current pattern for MouseMoveHandler (spec §6's "motion ...
// forwarded to the active pattern if it implements the handlers").
func (e *Engine) NotifyMouseMove(pos buffer.Point) {
	e.mouse = &pos
	e.bus.Publish(event.MouseMove, int64(e.clock.nowMs()), pos)
	if h, ok := e.current.(pattern.MouseMoveHandler); ok {
		h.OnMouseMove(pos)
	}
}

// NotifyMouseClick publishes MouseClick and probes the current pattern
// for MouseClickHandler.
func (e *Engine) NotifyMouseClick(pos buffer.Point) {
	e.bus.Publish(event.MouseClick, int64(e.clock.nowMs()), pos)
	if h, ok := e.current.(pattern.MouseClickHandler); ok {
		h.OnMouseClick(pos)
	}
}

// SetBeforeTerminalRenderCallback installs the hook invoked after pattern
// render but before the renderer emits terminal diffs.
func (e *Engine) SetBeforeTerminalRenderCallback(cb Callback) {
	e.beforeTerminalRender = cb
}

// SetAfterRenderCallback installs the hook invoked after the renderer has
// emitted diffs — this is where the debug overlay and bottom overlay
// arbiter run.
func (e *Engine) SetAfterRenderCallback(cb Callback) {
	e.afterRender = cb
}

// Start marks the engine running, resetting the tick reference so the
// next Run iteration doesn't treat time since construction as owed ticks.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.lastTickMs = e.clock.nowMs()
}

// Stop halts the frame loop. Run's caller observes this via IsRunning and
// exits its loop; Stop itself does not block.
func (e *Engine) Stop() {
	e.running = false
}

// Pause toggles paused state, emitting Pause or Resume. While paused, Run
// skips ticks entirely; no FRAME_START/FRAME_END fire.
func (e *Engine) Pause() {
	e.paused = !e.paused
	if e.paused {
		e.bus.Publish(event.Pause, int64(e.clock.nowMs()), nil)
		return
	}
	// Resuming: treat "now" as the reference tick so the frame immediately
	// after resume isn't charged for the entire paused interval.
	e.lastTickMs = e.clock.nowMs()
	e.bus.Publish(event.Resume, int64(e.clock.nowMs()), nil)
}

// IsRunning reports whether Start has been called without a matching Stop.
func (e *Engine) IsRunning() bool { return e.running }

// IsPaused reports current pause state.
func (e *Engine) IsPaused() bool { return e.paused }

// FrameNumber returns the number of ticks executed so far.
func (e *Engine) FrameNumber() uint64 { return e.frameNumber }

// CurrentPatternName returns the active pattern's name, or "" before the
// first SetPattern call. Satisfies command.Engine for the executor's
// pattern-query commands.
func (e *Engine) CurrentPatternName() string { return e.patternName }

// SwitchInProgress reports whether a pattern swap occurred within
// approximately the last frame. The overlay arbiter checks this before
// writing to the bottom row.
func (e *Engine) SwitchInProgress() bool { return e.switching }

// SetFPS changes the target frame rate, emits FPSChange, and notifies the
// current pattern if it implements FPSChanger.
func (e *Engine) SetFPS(fps uint32) {
	if fps == 0 {
		fps = 1
	}
	e.fps = fps
	e.bus.Publish(event.FPSChange, int64(e.clock.nowMs()), fps)
	if fc, ok := e.current.(pattern.FPSChanger); ok {
		fc.OnFPSChange(fps)
	}
}

// SetPattern swaps in a new pattern, running the full lifecycle: emit
// PATTERN_BEFORE_CHANGE, deactivate and reset the old pattern, install
// the new one, reset and activate it, force a hard screen clear, then
// emit PATTERN_CHANGE. The overlay arbiter is suppressed for the next
// frame via the switching flag.
func (e *Engine) SetPattern(p pattern.Pattern) {
	now := int64(e.clock.nowMs())
	e.bus.Publish(event.PatternBeforeChange, now, e.patternName)

	if e.current != nil {
		if d, ok := e.current.(pattern.Deactivator); ok {
			d.OnDeactivate()
		}
		e.current.Reset()
	}

	e.current = p
	e.patternName = p.Name()
	p.Reset()
	if a, ok := p.(pattern.Activator); ok {
		a.OnActivate()
	}

	e.renderer.ClearScreen()
	e.switching = true

	e.bus.Publish(event.PatternChange, int64(e.clock.nowMs()), e.patternName)
}

// Run drives the frame loop until stop closes. Scheduling is single-
// threaded cooperative: each iteration checks elapsed time against the
// target frame interval and, if due, performs one tick; otherwise it
// yields with a minimal delay so the loop never busy-waits (spec §4.3,
// §5).
func (e *Engine) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		if e.running && !e.paused {
			now := e.clock.nowMs()
			target := 1000.0 / float64(e.fps)
			if now-e.lastTickMs >= target {
				e.lastTickMs = now
				e.tick(now, target)
			}
		} else if e.paused {
			// No tick runs while paused; drain posted input here so a
			// resume or quit key still takes effect.
			e.drainDispatch()
		}

		time.Sleep(time.Millisecond)
	}
}

// tick executes one per-tick protocol pass (spec §4.3, steps 1-9).
func (e *Engine) tick(nowMs, targetMs float64) {
	start := nowMs
	e.drainDispatch()
	e.frameNumber++
	e.bus.Publish(event.FrameStart, int64(nowMs), e.frameNumber)

	size := e.renderer.GetSize()
	if size != e.lastSize {
		e.lastSize = size
		e.bus.Publish(event.Resize, int64(nowMs), size)
		if r, ok := e.current.(pattern.Resizer); ok {
			r.OnResize(size)
		}
	}

	back := e.renderer.GetBuffer()
	back.Clear()
	patternSize := buffer.Size{Width: size.Width, Height: size.Height - 1}

	renderedOK := e.safeRenderPattern(nowMs, patternSize)

	var patternMs, terminalMs float64
	var changed uint32
	if renderedOK {
		patternMs = e.clock.nowMs() - nowMs

		if e.beforeTerminalRender != nil {
			e.beforeTerminalRender()
		}

		beforeDiff := e.clock.nowMs()
		n, err := e.renderer.Render()
		if err == nil {
			changed = n
		}
		terminalMs = e.clock.nowMs() - beforeDiff

		if e.afterRender != nil {
			e.afterRender()
		}
	}

	e.perf.recordFrame(patternMs, terminalMs, changed)

	total := e.clock.nowMs() - start
	if total > targetMs*1.5 {
		e.bus.Publish(event.FrameDrop, int64(e.clock.nowMs()), total)
		e.perf.recordDrop()
	}
	if total > 0 {
		e.perf.recordActualFPS(1000.0 / total)
	}

	e.bus.Publish(event.FrameEnd, int64(e.clock.nowMs()), e.frameNumber)

	if e.switching {
		e.switching = false
	}
}

// safeRenderPattern invokes the current pattern's Render guarded against
// panics: a recovered panic increments that pattern's error counter and
// skips the remainder of the frame (no terminal diff, no render
// callbacks); the next frame proceeds normally (spec §7).
func (e *Engine) safeRenderPattern(nowMs float64, size buffer.Size) (ok bool) {
	if e.current == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			e.perf.PatternError(e.patternName).Add(1)
		}
	}()
	e.current.Render(e.renderer.GetBuffer(), nowMs, size, e.mouse)
	return true
}
