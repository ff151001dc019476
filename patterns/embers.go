package patterns

import (
	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/pattern"
)

// Embers is a continuous bottom-center emitter of rising, buoyant
// particles that cool and fade as they climb, driven entirely through
// pattern.ParticleSystem.
//
// Palette and motion grounded on cmd/ember-sandbox/main.go's ColorPalette
// (hot-core -> mid -> edge gradient stops) and its upward-drifting,
// turbulent ember motion, adapted from a single centered glow sprite to
// a standing emitter feeding ParticleSystem's pool.
type Embers struct {
	theme    *buffer.Theme
	system   *pattern.ParticleSystem
	emitter  *pattern.Emitter
	lastMs   float64
	hasLast  bool
	preset   uint32
}

const embersCap = 400

// NewEmbers returns an Embers pattern painted with theme.
func NewEmbers(theme *buffer.Theme) *Embers {
	e := &Embers{theme: theme}
	e.Reset()
	return e
}

func (e *Embers) Name() string { return "embers" }

func (e *Embers) Reset() {
	e.system = pattern.NewParticleSystem(embersCap)
	e.hasLast = false
	e.lastMs = 0
	e.preset = 1
	e.installEmitter(14, -6, -3, 0.2)
}

// installEmitter replaces the single standing emitter with one tuned by
// rate, base upward velocity, velocity spread, and a positive-Y (on-screen
// downward) acceleration that slows the rise.
// Pos.X is re-centered on the next Render once the buffer size is known;
// until then it emits from column 0, which is harmless since the first
// Render call always happens before any particle reaches its lifetime.
func (e *Embers) installEmitter(rate, velY, velSpread, accelY float64) {
	if e.emitter != nil {
		e.system.RemoveEmitter(e.emitter)
	}
	e.emitter = e.system.AddEmitter(&pattern.Emitter{
		RatePerSecond: rate,
		Lifetime:      3.5,
		MinVelX:       -velSpread, MaxVelX: velSpread,
		MinVelY: velY - 1, MaxVelY: velY + 1,
		AccelX: 0, AccelY: accelY,
		ColorA: e.theme.ColorFor(1.0),
		ColorB: e.theme.ColorFor(0.0),
		Chars:  []rune{'.', '*', 'o', '^'},
	})
}

func (e *Embers) Render(back *buffer.Buffer, timeMs float64, size buffer.Size, _ *buffer.Point) {
	if size.Width == 0 || size.Height == 0 {
		return
	}
	e.emitter.Pos = buffer.Point{X: size.Width / 2, Y: size.Height - 1}

	if !e.hasLast {
		e.hasLast = true
		e.lastMs = timeMs
	}
	dt := (timeMs - e.lastMs) / 1000
	if dt < 0 || dt > 1 {
		dt = 0
	}
	e.lastMs = timeMs

	e.system.Update(dt)
	e.system.Render(back, size)
}

// ApplyPreset is a pure parameter reset (new emitter config, no random
// seeding) and therefore idempotent.
func (e *Embers) ApplyPreset(id uint32) bool {
	switch id {
	case 1:
		e.installEmitter(14, -6, -3, 0.2)
	case 2:
		e.installEmitter(30, -10, -6, 0.5)
	case 3:
		e.installEmitter(6, -3, -1, 0.05)
	default:
		return false
	}
	e.preset = id
	return true
}

func (e *Embers) Presets() []pattern.PresetInfo {
	return []pattern.PresetInfo{
		{ID: 1, Name: "hearth", Description: "steady campfire drift"},
		{ID: 2, Name: "forge", Description: "dense, fast-rising sparks"},
		{ID: 3, Name: "dying", Description: "sparse, slow embers"},
	}
}
