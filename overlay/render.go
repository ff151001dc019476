package overlay

import (
	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/mattn/go-runewidth"
)

// ModeSource answers the two mutual-exclusion questions the arbiter
// needs each frame. The command and pattern-selection packages implement
// this (or the engine wires small closures) so overlay has no import
// dependency on either.
type ModeSource interface {
	CommandModeActive() bool
	CommandModeText() string

	PatternSelectModeActive() bool
	PatternSelectModeText() string

	// SwitchInProgress mirrors engine.Engine.SwitchInProgress: when true
	// the arbiter must not write at all this frame.
	SwitchInProgress() bool
}

// Arbiter is the single authority for the terminal's bottom row. Render
// is invoked once per frame from the engine's after-render callback.
type Arbiter struct {
	source ModeSource
	msg    message
}

// New creates an Arbiter reading mode state from source.
func New(source ModeSource) *Arbiter {
	return &Arbiter{source: source}
}

// Render writes the bottom row per spec §4.7's strict priority: command
// mode, then pattern-selection mode, then a pending message banner, then
// nothing (erase the line). Any panic from a downstream write is
// recovered and swallowed — a transiently inconsistent terminal must
// never crash the process.
func (a *Arbiter) Render(back *buffer.Buffer, size buffer.Size) {
	defer func() { recover() }()

	if a.source.SwitchInProgress() {
		return
	}

	y := size.Height - 1
	if y < 0 {
		return
	}

	switch {
	case a.source.CommandModeActive():
		a.writeLine(back, y, size.Width, a.source.CommandModeText(), buffer.Color{R: 230, G: 230, B: 255}, 0)
	case a.source.PatternSelectModeActive():
		a.writeLine(back, y, size.Width, a.source.PatternSelectModeText(), buffer.Color{R: 255, G: 230, B: 180}, 0)
	default:
		if m, ok := a.pendingMessage(); ok {
			style := severityStyles[m.severity]
			a.writeLine(back, y, size.Width, m.text, style.Fg, style.Icon)
			return
		}
		a.eraseLine(back, y, size.Width)
	}
}

// writeLine paints text into the bottom row starting at column 0 (column 2
// if icon is set), advancing by each rune's actual terminal column width
// (go-runewidth) rather than assuming one column per rune — command text
// and pattern/theme names may contain wide CJK glyphs or the severity
// icons themselves, and a naive one-column advance would desync every
// cell after the first wide rune.
func (a *Arbiter) writeLine(back *buffer.Buffer, y, width int, text string, fg buffer.Color, icon rune) {
	x := 0
	if icon != 0 {
		back.SetOverlay(0, y, buffer.Cell{Char: icon}.WithColor(fg))
		x = runewidth.RuneWidth(icon)
		if x < 2 {
			x = 2
		}
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x+w > width {
			break
		}
		back.SetOverlay(x, y, buffer.Cell{Char: r}.WithColor(fg))
		x += w
	}
	for ; x < width; x++ {
		back.SetOverlay(x, y, buffer.EmptyCell)
	}
}

// eraseLine drops the bottom row's overlay writes from a previous frame
// rather than painting blanks over them: SetOverlay entries never expire
// on their own, so once nothing is pending the row's entries must be
// cleared or the last banner would be pinned in the diff forever.
// Overlay entries on other rows (the debug line) are left alone.
func (a *Arbiter) eraseLine(back *buffer.Buffer, y, width int) {
	back.ClearOverlayRow(y)
}
