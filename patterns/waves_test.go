package patterns

import (
	"testing"

	"github.com/lixenwraith/glyphstorm/buffer"
)

func testTheme(t *testing.T) *buffer.Theme {
	t.Helper()
	th, err := buffer.NewTheme("test", buffer.Color{R: 0}, buffer.Color{R: 255})
	if err != nil {
		t.Fatalf("NewTheme: %v", err)
	}
	return th
}

func TestWavesRenderWritesNonSpaceCells(t *testing.T) {
	w := NewWaves(testTheme(t))
	back := buffer.New(buffer.Size{Width: 20, Height: 10})

	w.Render(back, 1000, buffer.Size{Width: 20, Height: 10}, nil)

	wrote := false
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if back.Get(x, y) != buffer.EmptyCell {
				wrote = true
			}
		}
	}
	if !wrote {
		t.Fatalf("expected waves to paint at least one non-empty cell")
	}
}

func TestWavesApplyPresetRejectsUnknownID(t *testing.T) {
	w := NewWaves(testTheme(t))
	if w.ApplyPreset(99) {
		t.Fatalf("expected unknown preset id to be rejected")
	}
}

func TestWavesApplyPresetIsIdempotent(t *testing.T) {
	w := NewWaves(testTheme(t))
	w.ApplyPreset(2)
	first := *w
	w.ApplyPreset(2)
	if w.freqX != first.freqX || w.freqY != first.freqY || w.speed != first.speed {
		t.Fatalf("expected re-applying the same preset to be a no-op")
	}
}

func TestWavesPresetsNonEmpty(t *testing.T) {
	w := NewWaves(testTheme(t))
	if len(w.Presets()) == 0 {
		t.Fatalf("expected a non-empty preset catalogue")
	}
}

func TestWavesResetRestoresDefaults(t *testing.T) {
	w := NewWaves(testTheme(t))
	w.ApplyPreset(3)
	w.Reset()
	if w.presetID != 1 {
		t.Fatalf("expected Reset to restore preset 1, got %d", w.presetID)
	}
}
