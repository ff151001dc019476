package patterns

import (
	"math/rand"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/pattern"
)

// starCount is the fixed sprite population. Starfield never grows or
// shrinks the pool; a star that drifts off one edge wraps to the other.
const starCount = 120

// Starfield drives a fixed population of single-glyph sprites through
// pattern.SpriteManager: each star is a velocity sprite with a
// single-frame glyph, wrapping at buffer edges instead of despawning.
//
// Grounded on pattern.SpriteManager (see its doc comment for the
// missile-sandbox trail lineage) for motion/render, reseeded here with
// per-star depth (speed + brightness banding) rather than the sprite
// manager's frame-animation machinery, which starfield doesn't need.
type Starfield struct {
	theme   *buffer.Theme
	sprites *pattern.SpriteManager
	lastMs  float64
	seeded  bool
	preset  uint32
}

// NewStarfield returns a Starfield pattern painted with theme.
func NewStarfield(theme *buffer.Theme) *Starfield {
	s := &Starfield{theme: theme, sprites: pattern.NewSpriteManager()}
	s.Reset()
	return s
}

func (s *Starfield) Name() string { return "starfield" }

// Reset reseeds every star at a random position with depth-banded speed
// and brightness. Unlike ApplyPreset, Reset always reseeds: it is the
// engine's pattern-switch hook, not a user-facing idempotent action.
func (s *Starfield) Reset() {
	s.sprites = pattern.NewSpriteManager()
	s.lastMs = 0
	s.seeded = false
	s.preset = 1
	s.seedDefault()
}

func (s *Starfield) seedDefault() { s.seed(1.0) }

// seed populates starCount stars with speed/brightness drawn from
// depth bands scaled by speedMul. Depth 0 (far) is dim and slow; depth 2
// (near) is bright and fast, giving a parallax impression without any
// real z-axis.
func (s *Starfield) seed(speedMul float64) {
	s.sprites = pattern.NewSpriteManager()
	for i := 0; i < starCount; i++ {
		depth := rand.Intn(3)
		baseSpeed := []float64{2, 5, 9}[depth] * speedMul
		intensity := []float64{0.3, 0.6, 1.0}[depth]
		sp := s.sprites.Add(&pattern.Sprite{
			VelX:   baseSpeed,
			Frames: [][]string{{string(starGlyph(depth))}},
			Active: true,
		})
		sp.Color = s.theme.ColorFor(intensity)
		sp.Pos = buffer.Point{} // placed on first Render once size is known
		sp.VelY = 0
		sp.Scale = 1
	}
	s.seeded = false
}

func starGlyph(depth int) rune {
	switch depth {
	case 0:
		return '.'
	case 1:
		return '+'
	default:
		return '*'
	}
}

func (s *Starfield) Render(back *buffer.Buffer, timeMs float64, size buffer.Size, _ *buffer.Point) {
	if size.Width == 0 || size.Height == 0 {
		return
	}
	if !s.seeded {
		// Re-add each star so the sprite manager takes the new position
		// as its sub-cell starting point.
		stars := s.sprites.Sprites()
		s.sprites = pattern.NewSpriteManager()
		for _, sp := range stars {
			sp.Pos = buffer.Point{X: rand.Intn(size.Width), Y: rand.Intn(size.Height)}
			s.sprites.Add(sp)
		}
		s.seeded = true
		s.lastMs = timeMs
	}

	dt := (timeMs - s.lastMs) / 1000
	if dt < 0 || dt > 1 {
		dt = 0 // first frame or a large clock jump: skip motion, not a crash
	}
	s.lastMs = timeMs

	s.sprites.Update(dt, size)
	for _, sp := range s.sprites.Sprites() {
		sp.Pos.X = ((sp.Pos.X % size.Width) + size.Width) % size.Width
	}
	s.sprites.Render(back, size)
}

// ApplyPreset changes the star-field density feel by rescaling drift
// speed and reseeding positions. Not idempotent: each application draws
// fresh random positions via math/rand, so applying the same preset
// twice in a row does not reproduce the prior frame. This is a
// deliberate trade against forcing starfield to fake a frozen layout.
func (s *Starfield) ApplyPreset(id uint32) bool {
	switch id {
	case 1:
		s.seed(1.0)
	case 2:
		s.seed(2.5)
	case 3:
		s.seed(0.4)
	default:
		return false
	}
	s.preset = id
	return true
}

func (s *Starfield) Presets() []pattern.PresetInfo {
	return []pattern.PresetInfo{
		{ID: 1, Name: "drift", Description: "default parallax drift"},
		{ID: 2, Name: "warp", Description: "fast streaking stars"},
		{ID: 3, Name: "still", Description: "slow, near-static field"},
	}
}
