package terminal

// Key identifies a decoded input key, independent of which escape
// sequence (if any) produced it.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune // printable character, see Event.Rune

	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab  // Shift+Tab
	KeyShiftTab // alias of KeyBacktab
	KeyBackspace
	KeyDelete
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter: KeyCtrlA = Ctrl+A (0x01) through KeyCtrlZ = Ctrl+Z (0x1A).
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH // often same byte as backspace
	KeyCtrlI // often same byte as tab
	KeyCtrlJ // often same byte as enter
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM // often same byte as enter
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketLeft
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier is a bitset of the modifier keys held alongside a Key.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// modDigits lists every xterm modifier parameter (2 through 8) this
// decoder recognizes, in the order CSI sequences enumerate them.
var modDigits = []struct {
	digit int
	mod   Modifier
}{
	{2, ModShift},
	{3, ModAlt},
	{4, ModShift | ModAlt},
	{5, ModCtrl},
	{6, ModShift | ModCtrl},
	{7, ModAlt | ModCtrl},
	{8, ModShift | ModAlt | ModCtrl},
}

// escapeSequence maps one escape sequence's tail (the bytes after
// `ESC [` or `ESC O`) to the key and modifier it represents.
type escapeSequence struct {
	seq string
	key Key
	mod Modifier
}

// csiLetter is a CSI sequence whose unmodified form is a single final
// letter (ESC [ X) and whose modified forms are `ESC [ 1 ; <mod> X`.
type csiLetter struct {
	letter byte
	key    Key
}

var csiArrowsAndNav = []csiLetter{
	{'A', KeyUp},
	{'B', KeyDown},
	{'C', KeyRight},
	{'D', KeyLeft},
	{'H', KeyHome},
	{'F', KeyEnd},
}

var csiF1ToF4 = []csiLetter{
	{'P', KeyF1},
	{'Q', KeyF2},
	{'R', KeyF3},
	{'S', KeyF4},
}

// csiTilde is a CSI sequence of the numeric-parameter form `ESC [ N ~`,
// whose modified forms are `ESC [ N ; <mod> ~`.
type csiTilde struct {
	param int
	key   Key
}

var csiNavTilde = []csiTilde{
	{2, KeyInsert},
	{3, KeyDelete},
	{5, KeyPageUp},
	{6, KeyPageDown},
}

// csiFunctionTildeBare are function keys only ever sent as a bare
// `ESC [ N ~` with no modifier-parameter form (F1-F4 use the P/Q/R/S
// form above for modified presses instead).
var csiFunctionTildeBare = []csiTilde{
	{11, KeyF1},
	{12, KeyF2},
	{13, KeyF3},
	{14, KeyF4},
}

// csiFunctionTildeModded are function keys xterm also sends modified,
// as `ESC [ N ; <mod> ~`.
var csiFunctionTildeModded = []csiTilde{
	{15, KeyF5},
	{17, KeyF6},
	{18, KeyF7},
	{19, KeyF8},
	{20, KeyF9},
	{21, KeyF10},
	{23, KeyF11},
	{24, KeyF12},
}

// buildCSISequences expands the compact tables above into every literal
// sequence xterm-family terminals send, including each modifier
// combination. This replaces what would otherwise be several hundred
// hand-written literal table rows with the handful of per-key facts
// that actually vary.
func buildCSISequences() []escapeSequence {
	var out []escapeSequence

	for _, c := range csiArrowsAndNav {
		out = append(out, escapeSequence{string(c.letter), c.key, ModNone})
		for _, m := range modDigits {
			out = append(out, escapeSequence{itoa(1) + ";" + itoa(m.digit) + string(c.letter), c.key, m.mod})
		}
	}
	out = append(out, escapeSequence{"Z", KeyBacktab, ModShift})

	for _, c := range csiF1ToF4 {
		for _, m := range modDigits {
			out = append(out, escapeSequence{itoa(1) + ";" + itoa(m.digit) + string(c.letter), c.key, m.mod})
		}
	}

	for _, t := range csiNavTilde {
		out = append(out, escapeSequence{itoa(t.param) + "~", t.key, ModNone})
		for _, m := range modDigits {
			out = append(out, escapeSequence{itoa(t.param) + ";" + itoa(m.digit) + "~", t.key, m.mod})
		}
	}
	for _, t := range csiFunctionTildeBare {
		out = append(out, escapeSequence{itoa(t.param) + "~", t.key, ModNone})
	}
	for _, t := range csiFunctionTildeModded {
		out = append(out, escapeSequence{itoa(t.param) + "~", t.key, ModNone})
		for _, m := range modDigits {
			out = append(out, escapeSequence{itoa(t.param) + ";" + itoa(m.digit) + "~", t.key, m.mod})
		}
	}

	// vt-style F1-F5, distinct from the xterm `ESC [ 1 1 ~` family above.
	out = append(out,
		escapeSequence{"[A", KeyF1, ModNone},
		escapeSequence{"[B", KeyF2, ModNone},
		escapeSequence{"[C", KeyF3, ModNone},
		escapeSequence{"[D", KeyF4, ModNone},
		escapeSequence{"[E", KeyF5, ModNone},
		escapeSequence{"7~", KeyHome, ModNone},
		escapeSequence{"8~", KeyEnd, ModNone},
	)

	return out
}

// itoa avoids importing strconv for what's always a one- or two-digit
// non-negative parameter.
func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

// ss3Sequences maps `ESC O <tail>` sequences: cursor keys in
// application mode, plus the numeric keypad's application-mode output.
var ss3Sequences = []escapeSequence{
	{"A", KeyUp, ModNone},
	{"B", KeyDown, ModNone},
	{"C", KeyRight, ModNone},
	{"D", KeyLeft, ModNone},
	{"H", KeyHome, ModNone},
	{"F", KeyEnd, ModNone},
	{"P", KeyF1, ModNone},
	{"Q", KeyF2, ModNone},
	{"R", KeyF3, ModNone},
	{"S", KeyF4, ModNone},

	{"M", KeyEnter, ModNone}, // keypad enter
	{"X", KeyRune, ModNone},  // keypad =
	{"j", KeyRune, ModNone},  // keypad *
	{"k", KeyRune, ModNone},  // keypad +
	{"l", KeyRune, ModNone},  // keypad ,
	{"m", KeyRune, ModNone},  // keypad -
	{"n", KeyRune, ModNone},  // keypad .
	{"o", KeyRune, ModNone},  // keypad /
	{"p", KeyRune, ModNone},  // keypad 0
	{"q", KeyRune, ModNone},  // keypad 1
	{"r", KeyRune, ModNone},  // keypad 2
	{"s", KeyRune, ModNone},  // keypad 3
	{"t", KeyRune, ModNone},  // keypad 4
	{"u", KeyRune, ModNone},  // keypad 5
	{"v", KeyRune, ModNone},  // keypad 6
	{"w", KeyRune, ModNone},  // keypad 7
	{"x", KeyRune, ModNone},  // keypad 8
	{"y", KeyRune, ModNone},  // keypad 9
}

var csiMap = buildSequenceMap(buildCSISequences())
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s
	}
	return m
}

// lookupCSI resolves the tail of an `ESC [` sequence. The string(seq)
// conversion at the map-index site doesn't allocate.
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

// lookupSS3 resolves the tail of an `ESC O` sequence.
func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}
