package pattern

import "github.com/lixenwraith/glyphstorm/buffer"

// Sprite is a positioned, animated multi-frame glyph shape. Frames are
// string arrays (each string a row) so a sprite can be a small multi-line
// glyph block, not just a single character.
type Sprite struct {
	Pos      buffer.Point
	VelX     float64 // cells/second
	VelY     float64
	preciseX float64
	preciseY float64

	Frames       [][]string
	CurrentFrame int
	FrameTime    float64 // accumulated seconds since last frame advance
	FrameDur     float64 // seconds per frame

	Color  buffer.Color
	Scale  float64
	Active bool
}

// SpriteManager owns a list of sprites, advancing their animation and
// motion each tick and drawing the active ones.
//
// Grounded on the missile-sandbox demo's Particle/Trail update-then-
// compact idiom (position += velocity, age out, filter-in-place), scaled
// up from a single trail array to a general sprite list with multi-frame
// animation state instead of a single fading character.
type SpriteManager struct {
	sprites []*Sprite
}

// NewSpriteManager returns an empty sprite manager.
func NewSpriteManager() *SpriteManager {
	return &SpriteManager{}
}

// Add appends a sprite and returns it for further configuration.
func (m *SpriteManager) Add(s *Sprite) *Sprite {
	s.preciseX = float64(s.Pos.X)
	s.preciseY = float64(s.Pos.Y)
	if s.Scale == 0 {
		s.Scale = 1
	}
	m.sprites = append(m.sprites, s)
	return s
}

// Sprites returns the live sprite list (including inactive ones; call
// RemoveInactive to compact).
func (m *SpriteManager) Sprites() []*Sprite {
	return m.sprites
}

// Update advances frame animation and applies velocity-integrated motion
// to every sprite, active or not (an inactive sprite simply stops being
// drawn; RemoveInactive reclaims its slot).
func (m *SpriteManager) Update(dtSeconds float64, _ buffer.Size) {
	for _, s := range m.sprites {
		if len(s.Frames) > 1 && s.FrameDur > 0 {
			s.FrameTime += dtSeconds
			for s.FrameTime >= s.FrameDur {
				s.FrameTime -= s.FrameDur
				s.CurrentFrame = (s.CurrentFrame + 1) % len(s.Frames)
			}
		}

		s.preciseX += s.VelX * dtSeconds
		s.preciseY += s.VelY * dtSeconds
		s.Pos.X = int(s.preciseX)
		s.Pos.Y = int(s.preciseY)
	}
}

// Render draws every active sprite's current frame centered on its
// position. Space characters in a frame row are transparent. Cells
// outside buffer bounds are silently clipped.
func (m *SpriteManager) Render(back *buffer.Buffer, size buffer.Size) {
	for _, s := range m.sprites {
		if !s.Active || s.CurrentFrame >= len(s.Frames) {
			continue
		}
		frame := s.Frames[s.CurrentFrame]
		originY := s.Pos.Y - len(frame)/2
		for row, line := range frame {
			y := originY + row
			if y < 0 || y >= size.Height {
				continue
			}
			originX := s.Pos.X - len([]rune(line))/2
			for col, ch := range []rune(line) {
				if ch == ' ' {
					continue
				}
				x := originX + col
				if x < 0 || x >= size.Width {
					continue
				}
				back.Set(x, y, buffer.Cell{Char: ch}.WithColor(s.Color))
			}
		}
	}
}

// RemoveInactive compacts the sprite list, dropping every sprite with
// Active == false.
func (m *SpriteManager) RemoveInactive() {
	live := m.sprites[:0]
	for _, s := range m.sprites {
		if s.Active {
			live = append(live, s)
		}
	}
	m.sprites = live
}
