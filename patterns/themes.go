// Package patterns ships the demo pattern catalogue and theme registry
// that make cmd/glyphstorm a runnable program: this is explicitly
// ambient scope (SPEC_FULL.md §4.11), not the "concrete visual
// algorithms" the core specification leaves to external collaborators.
package patterns

import (
	"math/rand"
	"strings"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/terminal"
)

// fromRGB adapts terminal's named truecolor swatches to buffer.Color so
// theme stops can be written as names instead of raw {R,G,B} literals.
func fromRGB(c terminal.RGB) buffer.Color {
	return buffer.Color{R: c.R, G: c.G, B: c.B}
}

// ThemeRegistry is the fixed, ordered set of themes this build ships.
// It satisfies command.Themes.
type ThemeRegistry struct {
	themes []*buffer.Theme
}

// NewThemeRegistry builds the default theme set. Grounded on
// cmd/ember-sandbox/main.go's ColorPalette gradient-stop style (named
// palette, hot-core -> mid -> edge stops) adapted to buffer.Theme's
// two-or-more-stop ColorFor contract.
func NewThemeRegistry() *ThemeRegistry {
	mk := func(name string, stops ...buffer.Color) *buffer.Theme {
		th, err := buffer.NewTheme(name, stops...)
		if err != nil {
			panic(err) // built-in themes are a programming error if malformed
		}
		return th
	}

	return &ThemeRegistry{themes: []*buffer.Theme{
		mk("ocean", buffer.Color{R: 5, G: 15, B: 40}, buffer.Color{R: 20, G: 90, B: 140}, buffer.Color{R: 140, G: 220, B: 235}),
		mk("fire", buffer.Color{R: 30, G: 5, B: 5}, buffer.Color{R: 200, G: 60, B: 20}, buffer.Color{R: 255, G: 220, B: 140}),
		mk("mono", buffer.Color{R: 10, G: 10, B: 10}, buffer.Color{R: 130, G: 130, B: 130}, buffer.Color{R: 245, G: 245, B: 245}),
		mk("forest", buffer.Color{R: 5, G: 20, B: 10}, buffer.Color{R: 30, G: 110, B: 50}, buffer.Color{R: 180, G: 235, B: 150}),
		mk("dusk", fromRGB(terminal.DeepNavy), fromRGB(terminal.DeepPurple), fromRGB(terminal.PaleLavender)),
		mk("neon", fromRGB(terminal.Obsidian), fromRGB(terminal.VibrantCyan), fromRGB(terminal.NeonGreen)),
	}}
}

// Count returns the number of registered themes.
func (r *ThemeRegistry) Count() int { return len(r.themes) }

// Theme returns the theme at 1-based index i.
func (r *ThemeRegistry) Theme(i int) (*buffer.Theme, bool) {
	if i < 1 || i > len(r.themes) {
		return nil, false
	}
	return r.themes[i-1], true
}

// NameByIndex implements command.Themes.
func (r *ThemeRegistry) NameByIndex(i int) (string, bool) {
	th, ok := r.Theme(i)
	if !ok {
		return "", false
	}
	return th.Name, true
}

// IndexByName resolves a case-insensitive partial match, first exact
// then substring, mirroring Catalogue.ByName's resolution order.
func (r *ThemeRegistry) IndexByName(partial string) (int, string, bool) {
	partial = strings.ToLower(partial)
	for i, th := range r.themes {
		if strings.ToLower(th.Name) == partial {
			return i + 1, th.Name, true
		}
	}
	for i, th := range r.themes {
		if strings.Contains(strings.ToLower(th.Name), partial) {
			return i + 1, th.Name, true
		}
	}
	return 0, "", false
}

// Names returns every theme name in registration order.
func (r *ThemeRegistry) Names() []string {
	names := make([]string, len(r.themes))
	for i, th := range r.themes {
		names[i] = th.Name
	}
	return names
}

// Random returns a uniformly random theme's 1-based index and name.
func (r *ThemeRegistry) Random() (int, string) {
	i := rand.Intn(len(r.themes))
	return i + 1, r.themes[i].Name
}
