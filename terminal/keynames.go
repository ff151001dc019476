package terminal

// keyToName maps Key constants to the canonical string names used in
// config files and command-mode key bindings.
var keyToName = buildKeyNames()

func buildKeyNames() map[Key]string {
	m := map[Key]string{
		KeyEscape:    "escape",
		KeyEnter:     "enter",
		KeyTab:       "tab",
		KeyBacktab:   "backtab",
		KeyBackspace: "backspace",
		KeyDelete:    "delete",
		KeySpace:     "space",

		KeyUp:       "up",
		KeyDown:     "down",
		KeyLeft:     "left",
		KeyRight:    "right",
		KeyHome:     "home",
		KeyEnd:      "end",
		KeyPageUp:   "page_up",
		KeyPageDown: "page_down",
		KeyInsert:   "insert",

		KeyF1:  "f1",
		KeyF2:  "f2",
		KeyF3:  "f3",
		KeyF4:  "f4",
		KeyF5:  "f5",
		KeyF6:  "f6",
		KeyF7:  "f7",
		KeyF8:  "f8",
		KeyF9:  "f9",
		KeyF10: "f10",
		KeyF11: "f11",
		KeyF12: "f12",

		KeyCtrlSpace:        "ctrl_space",
		KeyCtrlBackslash:    "ctrl_backslash",
		KeyCtrlBracketLeft:  "ctrl_bracket_left",
		KeyCtrlBracketRight: "ctrl_bracket_right",
		KeyCtrlCaret:        "ctrl_caret",
		KeyCtrlUnderscore:   "ctrl_underscore",
	}

	// KeyCtrlA..KeyCtrlZ are consecutive constants, one per letter.
	for i := 0; i < 26; i++ {
		m[KeyCtrlA+Key(i)] = "ctrl_" + string(rune('a'+i))
	}
	return m
}

// nameToKey is the reverse lookup, built from keyToName plus aliases.
var nameToKey = buildNameToKey()

func buildNameToKey() map[string]Key {
	m := make(map[string]Key, len(keyToName)+1)
	for k, v := range keyToName {
		m[v] = k
	}
	m["shift_tab"] = KeyBacktab
	return m
}

// KeyName returns the canonical string name for k, or "" for KeyNone
// and KeyRune (which have no fixed name).
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key, reporting false if the
// name is unrecognized.
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}
