package command

import "time"

// SelectModeTTL is the pattern-selection buffer's inactivity timeout
// (spec §5: "pattern-mode inactivity (5 s) cancels the pattern-selection
// buffer"), distinct from the command buffer's 10-second TTL.
const SelectModeTTL = 5 * time.Second

// SelectMode is the lightweight digit-accumulator behind the keyboard
// surface's `p` key: it never takes the full command grammar, only a
// 1-based pattern index typed digit by digit, confirmed with Enter or
// cancelled with Escape/timeout.
//
// Grounded on Buffer's activate/touch/expire shape (spec §4.8), reduced
// to the single digits-only field this mode actually needs.
type SelectMode struct {
	active  bool
	digits  []rune
	expires time.Time
}

// NewSelectMode returns an inactive selector.
func NewSelectMode() *SelectMode { return &SelectMode{} }

// Active reports whether pattern-selection input is being captured.
func (s *SelectMode) Active() bool { return s.active }

// Activate begins capture with an empty digit accumulator.
func (s *SelectMode) Activate(now time.Time) {
	s.active = true
	s.digits = nil
	s.touch(now)
}

func (s *SelectMode) touch(now time.Time) { s.expires = now.Add(SelectModeTTL) }

// Expired reports whether the inactivity timer has elapsed.
func (s *SelectMode) Expired(now time.Time) bool {
	return s.active && now.After(s.expires)
}

// AddDigit appends a digit to the accumulator. No-op when inactive or c
// is not a digit.
func (s *SelectMode) AddDigit(c rune, now time.Time) {
	if !s.active || c < '0' || c > '9' {
		return
	}
	s.digits = append(s.digits, c)
	s.touch(now)
}

// Backspace drops the last typed digit.
func (s *SelectMode) Backspace(now time.Time) {
	if !s.active || len(s.digits) == 0 {
		return
	}
	s.digits = s.digits[:len(s.digits)-1]
	s.touch(now)
}

// Text renders the current prompt for the overlay arbiter.
func (s *SelectMode) Text() string {
	if len(s.digits) == 0 {
		return "Select pattern: (type a number, Enter to confirm)"
	}
	return "Select pattern: " + string(s.digits)
}

// Confirm returns the accumulated 1-based index and deactivates. ok is
// false when no digits were typed.
func (s *SelectMode) Confirm() (index int, ok bool) {
	defer s.cancel()
	if len(s.digits) == 0 {
		return 0, false
	}
	n := 0
	for _, d := range s.digits {
		n = n*10 + int(d-'0')
	}
	return n, true
}

// Cancel deactivates without returning a selection.
func (s *SelectMode) Cancel() { s.cancel() }

func (s *SelectMode) cancel() {
	s.active = false
	s.digits = nil
}
