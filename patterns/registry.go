package patterns

import (
	"math/rand"
	"strings"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/command"
	"github.com/lixenwraith/glyphstorm/pattern"
)

// Registry is the ordered, named pattern catalogue. It satisfies
// command.Catalogue.
type Registry struct {
	entries []command.PatternEntry
}

// NewRegistry builds the three demo patterns against the given theme.
// Rebuild (and re-install the active one into the engine) on every
// theme change, per spec §4.10's theme-switch contract.
func NewRegistry(theme *buffer.Theme) *Registry {
	return &Registry{entries: []command.PatternEntry{
		{Name: "waves", Pattern: NewWaves(theme)},
		{Name: "starfield", Pattern: NewStarfield(theme)},
		{Name: "embers", Pattern: NewEmbers(theme)},
	}}
}

// Count returns the number of registered patterns.
func (r *Registry) Count() int { return len(r.entries) }

// ByIndex resolves a 1-based index.
func (r *Registry) ByIndex(i int) (command.PatternEntry, bool) {
	if i < 1 || i > len(r.entries) {
		return command.PatternEntry{}, false
	}
	return r.entries[i-1], true
}

// ByName resolves a case-insensitive partial match: exact match first,
// then first substring match in registration order.
func (r *Registry) ByName(partial string) (command.PatternEntry, int, bool) {
	partial = strings.ToLower(partial)
	for i, e := range r.entries {
		if strings.ToLower(e.Name) == partial {
			return e, i + 1, true
		}
	}
	for i, e := range r.entries {
		if strings.Contains(strings.ToLower(e.Name), partial) {
			return e, i + 1, true
		}
	}
	return command.PatternEntry{}, 0, false
}

// Names returns every pattern name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Random returns a uniformly random entry and its 1-based index.
func (r *Registry) Random() (command.PatternEntry, int) {
	i := rand.Intn(len(r.entries))
	return r.entries[i], i + 1
}

// All returns every pattern in registration order, for callers (the
// engine's resize/fps broadcast) that need to notify every catalogue
// member rather than just the active one.
func (r *Registry) All() []pattern.Pattern {
	out := make([]pattern.Pattern, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Pattern
	}
	return out
}
