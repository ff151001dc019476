package patterns

import (
	"math"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/pattern"
)

// Waves is a sine-interference field driven directly by the render
// timestamp: no per-instance dt integration is needed since the field
// is purely a function of (x, y, time_ms), making Reset a no-op beyond
// clearing the preset back to its default.
//
// Grounded on cmd/ember-sandbox's layered sine/turbulence glow math
// (JaggedAmp/TurbAmp-style stacked sin() terms), simplified from a
// single centered glow to a full-field interference pattern.
type Waves struct {
	theme *buffer.Theme

	freqX, freqY float64
	speed        float64
	glyphs       string
	presetID     uint32
}

var wavesGlyphs = " .:-=+*#%@"

// NewWaves returns a Waves pattern painted with theme.
func NewWaves(theme *buffer.Theme) *Waves {
	w := &Waves{theme: theme}
	w.Reset()
	return w
}

func (w *Waves) Name() string { return "waves" }

// Reset restores the default preset parameters. Idempotent: applying it
// repeatedly leaves identical state (documented per SPEC_FULL.md §9's
// open-question resolution on preset idempotence).
func (w *Waves) Reset() {
	w.freqX, w.freqY = 0.15, 0.22
	w.speed = 0.0012
	w.glyphs = wavesGlyphs
	w.presetID = 1
}

func (w *Waves) Render(back *buffer.Buffer, timeMs float64, size buffer.Size, _ *buffer.Point) {
	t := timeMs * w.speed
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			v := math.Sin(float64(x)*w.freqX+t) + math.Sin(float64(y)*w.freqY-t*1.3)
			intensity := (v + 2) / 4 // v ranges [-2,2] -> [0,1]
			glyphIdx := int(intensity * float64(len(w.glyphs)-1))
			if glyphIdx < 0 {
				glyphIdx = 0
			} else if glyphIdx >= len(w.glyphs) {
				glyphIdx = len(w.glyphs) - 1
			}
			ch := rune(w.glyphs[glyphIdx])
			if ch == ' ' {
				continue
			}
			back.Set(x, y, buffer.Cell{Char: ch}.WithColor(w.theme.ColorFor(intensity)))
		}
	}
}

// ApplyPreset is a pure parameter reset and therefore idempotent.
func (w *Waves) ApplyPreset(id uint32) bool {
	switch id {
	case 1:
		w.freqX, w.freqY, w.speed, w.glyphs = 0.15, 0.22, 0.0012, wavesGlyphs
	case 2:
		w.freqX, w.freqY, w.speed, w.glyphs = 0.35, 0.08, 0.002, wavesGlyphs
	case 3:
		w.freqX, w.freqY, w.speed, w.glyphs = 0.08, 0.35, 0.0008, " .oO@"
	default:
		return false
	}
	w.presetID = id
	return true
}

func (w *Waves) Presets() []pattern.PresetInfo {
	return []pattern.PresetInfo{
		{ID: 1, Name: "calm", Description: "slow, wide interference"},
		{ID: 2, Name: "ripple", Description: "fast horizontal ripples"},
		{ID: 3, Name: "swell", Description: "slow vertical swell, bold glyphs"},
	}
}
