// Package command implements the multi-key command buffer, parser, and
// executor: the compact textual command language layered on top of the
// engine and pattern catalogue (spec §4.8–4.10).
//
// Grounded on the teacher's mode.ExecuteCommand dispatch table
// (mode/commands.go) for the executor's switch-by-verb shape, and on
// terminal/tui's line-editing widgets for the buffer's cursor/history
// bookkeeping.
package command

import "time"

// Sentinel is the fixed first character of an active command buffer, per
// the data model's literal invariant (buffer[0] == '0'). It can never be
// deleted or moved past by the cursor.
const Sentinel = '0'

const (
	historyCap    = 50
	InactivityTTL = 10 * time.Second
)

// Buffer is the multi-key input accumulator activated by the command
// key. Not safe for concurrent use; the engine's single event loop is
// its only caller (spec §5's single-dispatch-channel model).
type Buffer struct {
	active  bool
	text    []rune
	cursor  int
	history []string
	histPos int // -1 means "not browsing history"

	expires time.Time
}

// NewBuffer returns an inactive buffer ready for Activate.
func NewBuffer() *Buffer {
	return &Buffer{histPos: -1}
}

// Active reports whether the buffer is currently capturing input.
func (b *Buffer) Active() bool { return b.active }

// Text returns the buffer contents including the leading sentinel.
func (b *Buffer) Text() string { return string(b.text) }

// Cursor returns the current cursor position, 1 ≤ cursor ≤ len(text).
func (b *Buffer) Cursor() int { return b.cursor }

// Activate resets the buffer to just the sentinel and starts the
// inactivity timer (tracked as an absolute deadline; the caller's timer
// loop polls Expired or schedules its own callback — see engine wiring).
func (b *Buffer) Activate(now time.Time) {
	b.active = true
	b.text = []rune{Sentinel}
	b.cursor = 1
	b.histPos = -1
	b.touch(now)
}

func (b *Buffer) touch(now time.Time) {
	b.expires = now.Add(InactivityTTL)
}

// Expired reports whether the inactivity timer has elapsed as of now.
// The caller is expected to call Cancel when this returns true.
func (b *Buffer) Expired(now time.Time) bool {
	return b.active && now.After(b.expires)
}

// AddChar inserts c at the cursor and advances it. No-op when inactive.
func (b *Buffer) AddChar(c rune, now time.Time) {
	if !b.active {
		return
	}
	b.text = append(b.text[:b.cursor], append([]rune{c}, b.text[b.cursor:]...)...)
	b.cursor++
	b.touch(now)
}

// Backspace removes the character before the cursor. The sentinel at
// index 0 can never be removed: backspace at cursor == 1 is a no-op.
func (b *Buffer) Backspace(now time.Time) {
	if !b.active || b.cursor <= 1 {
		return
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	b.touch(now)
}

// MoveCursorLeft moves the cursor left, bounded at 1 (the sentinel is
// never a valid cursor position).
func (b *Buffer) MoveCursorLeft() {
	if !b.active {
		return
	}
	if b.cursor > 1 {
		b.cursor--
	}
}

// MoveCursorRight moves the cursor right, bounded at len(text).
func (b *Buffer) MoveCursorRight() {
	if !b.active {
		return
	}
	if b.cursor < len(b.text) {
		b.cursor++
	}
}

// PreviousCommand loads the previous history entry (most-recent-first),
// placing the cursor at the end of the loaded text.
func (b *Buffer) PreviousCommand(now time.Time) {
	if !b.active || len(b.history) == 0 {
		return
	}
	if b.histPos+1 < len(b.history) {
		b.histPos++
	}
	b.loadHistory(now)
}

// NextCommand loads the next (more recent) history entry, or clears back
// to an empty sentinel-only buffer once history is exhausted forward.
func (b *Buffer) NextCommand(now time.Time) {
	if !b.active || b.histPos < 0 {
		return
	}
	b.histPos--
	if b.histPos < 0 {
		b.text = []rune{Sentinel}
		b.cursor = 1
		b.touch(now)
		return
	}
	b.loadHistory(now)
}

func (b *Buffer) loadHistory(now time.Time) {
	entry := b.history[len(b.history)-1-b.histPos]
	b.text = []rune(entry)
	b.cursor = len(b.text)
	b.touch(now)
}

// Execute yields the current buffer text, deactivates, and appends to
// history iff the buffer (beyond the sentinel) is non-empty and not a
// duplicate of the most recent entry. History is capped at 50 entries,
// oldest dropped first.
func (b *Buffer) Execute() string {
	text := string(b.text)
	b.deactivate()

	if len([]rune(text)) > 1 {
		if len(b.history) == 0 || b.history[len(b.history)-1] != text {
			b.history = append(b.history, text)
			if len(b.history) > historyCap {
				b.history = b.history[len(b.history)-historyCap:]
			}
		}
	}
	return text
}

// Cancel deactivates the buffer without touching history.
func (b *Buffer) Cancel() {
	b.deactivate()
}

func (b *Buffer) deactivate() {
	b.active = false
	b.text = nil
	b.cursor = 0
	b.histPos = -1
}

// History returns a copy of the history deque, oldest first.
func (b *Buffer) History() []string {
	out := make([]string, len(b.history))
	copy(out, b.history)
	return out
}
