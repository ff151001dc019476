package buffer

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is a named, immutable palette. ColorFor maps an intensity in
// [0,1] to a Color by interpolating through the theme's stops in
// perceptually-uniform Lab space, which avoids the muddy midpoints plain
// RGB lerp produces on wide-gamut stops (e.g. red -> blue).
type Theme struct {
	Name  string
	stops []colorful.Color
}

// NewTheme builds a theme from two or more RGB stops, evenly spaced across
// [0,1]. The palette is immutable after construction: stops is copied and
// never mutated by ColorFor.
func NewTheme(name string, stops ...Color) (*Theme, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("theme %q: need at least 2 stops, got %d", name, len(stops))
	}
	cs := make([]colorful.Color, len(stops))
	for i, s := range stops {
		cs[i] = colorful.Color{R: float64(s.R) / 255, G: float64(s.G) / 255, B: float64(s.B) / 255}
	}
	return &Theme{Name: name, stops: cs}, nil
}

// ColorFor returns the palette color for intensity, clamped to [0,1].
// Endpoints are defined exactly: ColorFor(0) is the first stop, ColorFor(1)
// is the last stop. The mapping is monotone along the stop sequence.
func (t *Theme) ColorFor(intensity float64) Color {
	if intensity <= 0 {
		return fromColorful(t.stops[0])
	}
	if intensity >= 1 {
		return fromColorful(t.stops[len(t.stops)-1])
	}
	segments := len(t.stops) - 1
	scaled := intensity * float64(segments)
	idx := int(scaled)
	if idx >= segments {
		idx = segments - 1
	}
	frac := scaled - float64(idx)
	blended := t.stops[idx].BlendLab(t.stops[idx+1], frac)
	return fromColorful(blended)
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
