package pattern

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/glyphstorm/buffer"
)

// particle is one live point in a ParticleSystem's pool.
type particle struct {
	x, y           float64
	velX, velY     float64
	accelX, accelY float64
	life, maxLife  float64
	char           rune
	colorA, colorB buffer.Color
	src            *Emitter
}

// Emitter describes a source of particles. Continuous emitters (Burst
// false) accumulate a fractional particle debt each Update and release
// whole particles as it crosses 1; burst emitters release BurstCount
// particles on the next Update and are then spent.
type Emitter struct {
	Pos             buffer.Point
	RatePerSecond   float64
	Lifetime        float64 // seconds
	MinVelX, MaxVelX float64
	MinVelY, MaxVelY float64
	AccelX, AccelY  float64
	ColorA, ColorB  buffer.Color // interpolation range, A at birth, B at death
	Chars           []rune
	Burst           bool
	BurstCount      int
	MaxParticles    int // 0 means no per-emitter cap

	spent bool
	debt  float64
	count int // particles currently alive from this emitter
}

// ParticleSystem is a bounded pool of particles driven by one or more
// emitters.
//
// Grounded on the missile-sandbox demo's Particle type (position,
// velocity, Age/MaxAge, ColorStart/ColorEnd) and its UpdateTrail
// live-slice compaction idiom, generalized from a single missile's fixed
// smoke/helix/flare spawn calls to configurable emitters with rate,
// burst, and color-range parameters, plus a system-wide hard cap the
// teacher's per-missile trail never needed.
type ParticleSystem struct {
	particles []particle
	emitters  []*Emitter
	cap       int
	rng       *rand.Rand
}

// NewParticleSystem returns a system with the given hard cap on
// simultaneously live particles across all emitters.
func NewParticleSystem(cap int) *ParticleSystem {
	return &ParticleSystem{cap: cap, rng: rand.New(rand.NewSource(1))}
}

// AddEmitter registers an emitter and returns it for further configuration.
func (p *ParticleSystem) AddEmitter(e *Emitter) *Emitter {
	p.emitters = append(p.emitters, e)
	return e
}

// RemoveEmitter drops an emitter; particles it already emitted keep
// living out their lifetime.
func (p *ParticleSystem) RemoveEmitter(e *Emitter) {
	for i, em := range p.emitters {
		if em == e {
			p.emitters = append(p.emitters[:i], p.emitters[i+1:]...)
			return
		}
	}
}

// Update advances emission and particle motion by dtSeconds. Continuous
// emitters accrue fractional debt; burst emitters fire once then remove
// themselves. Particles are advanced by velocity-then-acceleration
// integration and expire when life drops to zero or below.
func (p *ParticleSystem) Update(dtSeconds float64) {
	live := p.particles[:0]
	for i := range p.particles {
		pt := &p.particles[i]
		pt.life -= dtSeconds
		if pt.life <= 0 {
			continue
		}
		pt.velX += pt.accelX * dtSeconds
		pt.velY += pt.accelY * dtSeconds
		pt.x += pt.velX * dtSeconds
		pt.y += pt.velY * dtSeconds
		live = append(live, *pt)
	}
	p.particles = live

	// Recount per-emitter live particles after compaction.
	for _, e := range p.emitters {
		e.count = 0
	}
	for i := range p.particles {
		if src := p.particles[i].src; src != nil {
			src.count++
		}
	}

	spentEmitters := p.emitters[:0]
	for _, e := range p.emitters {
		if e.Burst {
			if !e.spent {
				p.emit(e, e.BurstCount)
				e.spent = true
			}
			continue // burst emitters are dropped below regardless
		}
		e.debt += e.RatePerSecond * dtSeconds
		n := int(e.debt)
		if n > 0 {
			e.debt -= float64(n)
			p.emit(e, n)
		}
		spentEmitters = append(spentEmitters, e)
	}
	p.emitters = spentEmitters
}

func (p *ParticleSystem) emit(e *Emitter, n int) {
	if len(e.Chars) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		if len(p.particles) >= p.cap {
			return // global cap: silently drop further emission
		}
		if e.MaxParticles > 0 && e.count >= e.MaxParticles {
			return
		}
		pt := particle{
			x: float64(e.Pos.X), y: float64(e.Pos.Y),
			velX:    e.MinVelX + p.rng.Float64()*(e.MaxVelX-e.MinVelX),
			velY:    e.MinVelY + p.rng.Float64()*(e.MaxVelY-e.MinVelY),
			life:    e.Lifetime,
			maxLife: e.Lifetime,
			char:    e.Chars[p.rng.Intn(len(e.Chars))],
			colorA:  e.ColorA,
			colorB:  e.ColorB,
			src:     e,
		}
		pt.accelX, pt.accelY = e.AccelX, e.AccelY
		p.particles = append(p.particles, pt)
		e.count++
	}
}

// Render draws every live particle at the floor of its position, colored
// by interpolating ColorA→ColorB over life/maxLife and clipped to size.
func (p *ParticleSystem) Render(back *buffer.Buffer, size buffer.Size) {
	for _, pt := range p.particles {
		x, y := int(math.Floor(pt.x)), int(math.Floor(pt.y))
		if x < 0 || x >= size.Width || y < 0 || y >= size.Height {
			continue
		}
		t := 1 - pt.life/pt.maxLife
		back.Set(x, y, buffer.Cell{Char: pt.char}.WithColor(lerpColor(pt.colorA, pt.colorB, t)))
	}
}

func lerpColor(a, b buffer.Color, t float64) buffer.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return buffer.Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}
