// Package pattern defines the capability-probed contract every visual
// pattern implements, plus three optional composition helpers
// (SceneGraph, SpriteManager, ParticleSystem) patterns may use internally.
//
// Grounded on the teacher's render.SystemRenderer (the capability-set
// idea: a renderer implements a required interface and is probed for
// optional ones via type assertion — see render/interface.go) rather than
// a single monolithic interface every pattern must fully implement.
package pattern

import "github.com/lixenwraith/glyphstorm/buffer"

// Pattern is the contract every visual pattern must satisfy. Optional
// capabilities (mouse handling, presets, metrics, lifecycle hooks) are
// probed via type assertion against the additional interfaces below —
// a pattern need only implement the ones it uses.
type Pattern interface {
	// Name is a stable identifier; its lowercase form is also the
	// pattern's canonical selection key.
	Name() string

	// Render draws into back, given an absolute monotonic millisecond
	// timestamp and the pattern's drawable size (terminal size minus the
	// bottom overlay row). mouse is nil when the pointer is outside the
	// drawable area or mouse tracking is disabled.
	Render(back *buffer.Buffer, timeMs float64, size buffer.Size, mouse *buffer.Point)

	// Reset clears all internal transient state and zeros any
	// last-time bookkeeping. Must be safe to call at any time and
	// idempotent.
	Reset()
}

// MouseMoveHandler is probed after every mouse-move event.
type MouseMoveHandler interface {
	OnMouseMove(pos buffer.Point)
}

// MouseClickHandler is probed after every mouse-click event.
type MouseClickHandler interface {
	OnMouseClick(pos buffer.Point)
}

// PresetApplier applies a preset by id, reporting whether it recognized
// it. Patterns exposing this should also expose Presets.
type PresetApplier interface {
	ApplyPreset(id uint32) bool
}

// PresetInfo describes one entry in a pattern's preset catalogue.
type PresetInfo struct {
	ID          uint32
	Name        string
	Description string
}

// PresetCatalogue is probed by the executor to list selectable presets.
type PresetCatalogue interface {
	Presets() []PresetInfo
}

// MetricsProvider exposes named numeric diagnostics for the debug overlay.
type MetricsProvider interface {
	GetMetrics() map[string]float64
}

// Activator is called once when the engine swaps this pattern in.
type Activator interface {
	OnActivate()
}

// Deactivator is called once when the engine swaps this pattern out,
// before Reset.
type Deactivator interface {
	OnDeactivate()
}

// Resizer is notified on every terminal resize.
type Resizer interface {
	OnResize(size buffer.Size)
}

// FPSChanger is notified whenever the engine's target frame rate changes.
type FPSChanger interface {
	OnFPSChange(fps uint32)
}
