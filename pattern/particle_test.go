package pattern

import (
	"testing"

	"github.com/lixenwraith/glyphstorm/buffer"
)

func TestContinuousEmitterAccumulatesFractionalDebt(t *testing.T) {
	ps := NewParticleSystem(100)
	ps.AddEmitter(&Emitter{
		RatePerSecond: 2, // one particle every 0.5s
		Lifetime:      5,
		Chars:         []rune{'*'},
	})

	ps.Update(0.4) // debt 0.8, no emission yet
	if len(ps.particles) != 0 {
		t.Fatalf("expected no particles before debt crosses 1, got %d", len(ps.particles))
	}
	ps.Update(0.4) // debt 1.6 -> emits 1, carries 0.6
	if len(ps.particles) != 1 {
		t.Fatalf("expected exactly 1 particle once debt crossed 1, got %d", len(ps.particles))
	}
}

func TestBurstEmitterFiresOnceThenRemoved(t *testing.T) {
	ps := NewParticleSystem(100)
	ps.AddEmitter(&Emitter{Burst: true, BurstCount: 5, Lifetime: 1, Chars: []rune{'*'}})

	ps.Update(0.016)
	if len(ps.particles) != 5 {
		t.Fatalf("expected burst to emit 5 particles immediately, got %d", len(ps.particles))
	}
	if len(ps.emitters) != 0 {
		t.Fatalf("expected burst emitter to be removed after firing, got %d remaining", len(ps.emitters))
	}

	ps.Update(0.016) // no emitters left, particle count must not grow
	if len(ps.particles) != 5 {
		t.Fatalf("expected no further emission after burst emitter removed, got %d", len(ps.particles))
	}
}

func TestGlobalCapDropsFurtherEmission(t *testing.T) {
	ps := NewParticleSystem(3)
	ps.AddEmitter(&Emitter{Burst: true, BurstCount: 10, Lifetime: 1, Chars: []rune{'*'}})

	ps.Update(0.016)
	if len(ps.particles) != 3 {
		t.Fatalf("expected emission capped at 3, got %d", len(ps.particles))
	}
}

func TestParticlesExpireAndCompact(t *testing.T) {
	ps := NewParticleSystem(10)
	ps.AddEmitter(&Emitter{Burst: true, BurstCount: 1, Lifetime: 0.1, Chars: []rune{'*'}})

	ps.Update(0.016) // spawn
	if len(ps.particles) != 1 {
		t.Fatalf("expected 1 particle spawned, got %d", len(ps.particles))
	}
	ps.Update(0.2) // life goes negative, should be compacted away
	if len(ps.particles) != 0 {
		t.Fatalf("expected expired particle to be compacted away, got %d", len(ps.particles))
	}
}

func TestParticleRenderClipsOutOfBounds(t *testing.T) {
	ps := NewParticleSystem(10)
	ps.AddEmitter(&Emitter{
		Pos: buffer.Point{X: -5, Y: -5}, Burst: true, BurstCount: 1,
		Lifetime: 5, Chars: []rune{'*'},
	})
	ps.Update(0.016)

	back := buffer.New(buffer.Size{Width: 10, Height: 10})
	ps.Render(back, buffer.Size{Width: 10, Height: 10}) // must not panic on out-of-bounds particle
}

func TestLerpColorInterpolatesAndClampsT(t *testing.T) {
	a := buffer.Color{R: 0, G: 0, B: 0}
	b := buffer.Color{R: 100, G: 100, B: 100}
	mid := lerpColor(a, b, 0.5)
	if mid.R != 50 {
		t.Fatalf("expected midpoint R=50, got %d", mid.R)
	}
	clamped := lerpColor(a, b, 2.0)
	if clamped.R != 100 {
		t.Fatalf("expected t to clamp to 1, got R=%d", clamped.R)
	}
}
