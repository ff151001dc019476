// Package overlay implements the bottom-row arbiter: the single
// authority writing to the terminal's last row, with strict priority
// between command mode, pattern-selection mode, and transient message
// banners (spec §4.7).
//
// Grounded on terminal/tui/toast.go's ToastSeverity/ToastColors palette
// (reused directly for message-banner styling below) and the teacher's
// general "one authority writes to a reserved region" idea behind
// terminal/tui/status_bar.go — both TUI-widget code that draws through
// tui.Region onto its own render target; this package instead writes
// through buffer.Buffer's overlay layer (SetOverlay/ClearOverlayRow), since
// that's the mechanism this repo's renderer already diffs against (see
// buffer.Buffer's overlay-wins-at-diff-time invariant) and because the
// bottom row is the one row patterns are contractually forbidden to
// write to (spec §4.3's pattern_size excludes it).
package overlay

import (
	"time"

	"github.com/lixenwraith/glyphstorm/buffer"
)

// Severity mirrors the teacher's tui.ToastSeverity four-value set and its
// color/icon table, reused verbatim for message-banner styling.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// severityStyle is copied from terminal/tui/toast.go's ToastColors/
// ToastIcons tables, minus Bg: buffer.Cell carries only a foreground
// color (the renderer always paints the theme/terminal default
// background — see buffer.Cell's doc comment), so the background half
// of the teacher's per-severity palette has nothing to bind to here.
type severityStyle struct {
	Fg   buffer.Color
	Icon rune
}

var severityStyles = map[Severity]severityStyle{
	SeverityInfo:    {Fg: buffer.Color{R: 200, G: 200, B: 200}, Icon: 'i'},
	SeveritySuccess: {Fg: buffer.Color{R: 120, G: 220, B: 120}, Icon: '✓'},
	SeverityWarning: {Fg: buffer.Color{R: 255, G: 200, B: 60}, Icon: '⚠'},
	SeverityError:   {Fg: buffer.Color{R: 255, G: 90, B: 90}, Icon: '✗'},
}

// Default clearance durations per spec §4.7: 1.5s general, 2.0s for
// pattern names, 2.5s for command results.
const (
	DefaultClearance       = 1500 * time.Millisecond
	PatternNameClearance   = 2000 * time.Millisecond
	CommandResultClearance = 2500 * time.Millisecond
)
