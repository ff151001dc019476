package patterns

import (
	"testing"

	"github.com/lixenwraith/glyphstorm/buffer"
)

func TestEmbersEmitsParticlesOverTime(t *testing.T) {
	e := NewEmbers(testTheme(t))
	size := buffer.Size{Width: 30, Height: 15}
	back := buffer.New(size)

	e.Render(back, 0, size, nil)
	for ms := 100.0; ms <= 2000; ms += 100 {
		e.Render(back, ms, size, nil)
	}

	wrote := false
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			if back.Get(x, y) != buffer.EmptyCell {
				wrote = true
			}
		}
	}
	if !wrote {
		t.Fatalf("expected embers to have emitted at least one visible particle after 2s")
	}
}

func TestEmbersZeroSizeDoesNotPanic(t *testing.T) {
	e := NewEmbers(testTheme(t))
	back := buffer.New(buffer.Size{Width: 0, Height: 0})
	e.Render(back, 0, buffer.Size{Width: 0, Height: 0}, nil)
}

func TestEmbersApplyPresetRejectsUnknownID(t *testing.T) {
	e := NewEmbers(testTheme(t))
	if e.ApplyPreset(99) {
		t.Fatalf("expected unknown preset id to be rejected")
	}
}

func TestEmbersApplyPresetIsIdempotent(t *testing.T) {
	e := NewEmbers(testTheme(t))
	e.ApplyPreset(2)
	e.ApplyPreset(2)
	if e.preset != 2 {
		t.Fatalf("expected preset to remain 2 after reapplying, got %d", e.preset)
	}
}

func TestEmbersPresetsNonEmpty(t *testing.T) {
	e := NewEmbers(testTheme(t))
	if len(e.Presets()) == 0 {
		t.Fatalf("expected a non-empty preset catalogue")
	}
}
