package command

import "testing"

func TestParseEmptyAndSentinelOnly(t *testing.T) {
	for _, in := range []string{"", "   ", "0"} {
		if _, ok := Parse(in); ok {
			t.Fatalf("Parse(%q) should yield None", in)
		}
	}
}

func TestParsePreset(t *testing.T) {
	pc, ok := Parse("03")
	if !ok || pc.Kind != KindPreset || pc.PresetNum != 3 {
		t.Fatalf("expected preset 3, got %+v ok=%v", pc, ok)
	}
}

func TestParseFavoriteLoadAndSave(t *testing.T) {
	pc, ok := Parse("0f2")
	if !ok || pc.Kind != KindFavoriteLoad || pc.FavoriteSlot != 2 {
		t.Fatalf("expected favorite-load 2, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0F7")
	if !ok || pc.Kind != KindFavoriteSave || pc.FavoriteSlot != 7 {
		t.Fatalf("expected favorite-save 7, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0fl")
	if !ok || pc.Kind != KindSpecial || pc.Special != SpecialListFavorites {
		t.Fatalf("expected list-favorites special, got %+v ok=%v", pc, ok)
	}
}

func TestParsePatternSwitchByIndexAndName(t *testing.T) {
	pc, ok := Parse("0p2")
	if !ok || pc.Kind != KindPatternSwitch || pc.PatternID != "2" || pc.PatternPreset != NoPreset {
		t.Fatalf("expected pattern switch to 2, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0pwaves")
	if !ok || pc.PatternID != "waves" {
		t.Fatalf("expected pattern switch to waves, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0pwaves.3")
	if !ok || pc.PatternID != "waves" || pc.PatternPreset != 3 {
		t.Fatalf("expected pattern switch to waves with preset 3, got %+v ok=%v", pc, ok)
	}
}

func TestParseLonePAndTAreListSpecials(t *testing.T) {
	pc, ok := Parse("0p")
	if !ok || pc.Special != SpecialListPatterns {
		t.Fatalf("expected list-patterns, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0t")
	if !ok || pc.Special != SpecialListThemes {
		t.Fatalf("expected list-themes, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0tr")
	if !ok || pc.Special != SpecialRandomTheme {
		t.Fatalf("expected random-theme, got %+v ok=%v", pc, ok)
	}
}

func TestParseThemeSwitch(t *testing.T) {
	pc, ok := Parse("0t2")
	if !ok || pc.Kind != KindThemeSwitch || pc.ThemeID != "2" {
		t.Fatalf("expected theme switch to 2, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0tocean")
	if !ok || pc.ThemeID != "ocean" {
		t.Fatalf("expected theme switch to ocean, got %+v ok=%v", pc, ok)
	}
}

func TestParseRandomAndQueryMarks(t *testing.T) {
	cases := map[string]SpecialKind{
		"0*":  SpecialRandomPreset,
		"0**": SpecialRandomAll,
		"0?":  SpecialListPresetsCurrent,
		"0??": SpecialCatalogPresets,
	}
	for in, want := range cases {
		pc, ok := Parse(in)
		if !ok || pc.Special != want {
			t.Fatalf("Parse(%q): expected special %v, got %+v ok=%v", in, want, pc, ok)
		}
	}
}

func TestParseSingleLetterSpecials(t *testing.T) {
	cases := map[string]SpecialKind{
		"0r": SpecialRandomize,
		"0s": SpecialSaveConfig,
		"0x": SpecialResetPattern,
		"0h": SpecialHistory,
		`0\`: SpecialUndo,
		"0.": SpecialRepeat,
	}
	for in, want := range cases {
		pc, ok := Parse(in)
		if !ok || pc.Special != want {
			t.Fatalf("Parse(%q): expected special %v, got %+v ok=%v", in, want, pc, ok)
		}
	}
}

func TestParseShuffleToggle(t *testing.T) {
	pc, ok := Parse("0!")
	if !ok || pc.Special != SpecialShuffleToggle || pc.SpecialArg != "" {
		t.Fatalf("expected bare shuffle toggle, got %+v ok=%v", pc, ok)
	}
	pc, ok = Parse("0!30")
	if !ok || pc.Special != SpecialShuffleToggle || pc.SpecialArg != "30" {
		t.Fatalf("expected shuffle toggle with interval 30, got %+v ok=%v", pc, ok)
	}
	if _, ok := Parse("0!500"); ok {
		t.Fatalf("expected out-of-range shuffle interval to fail to parse")
	}
	pc, ok = Parse("0!!")
	if !ok || pc.Special != SpecialShuffleAllToggle {
		t.Fatalf("expected shuffle-all toggle, got %+v ok=%v", pc, ok)
	}
}

func TestParseSearch(t *testing.T) {
	pc, ok := Parse("0/wav")
	if !ok || pc.Kind != KindSpecial || pc.Special != SpecialSearch || pc.SpecialArg != "wav" {
		t.Fatalf("expected search for 'wav', got %+v ok=%v", pc, ok)
	}
}

func TestParseCombination(t *testing.T) {
	pc, ok := Parse("0p2 + t3 + 04")
	if !ok || pc.Kind != KindCombination || len(pc.Combination) != 3 {
		t.Fatalf("expected 3-part combination, got %+v ok=%v", pc, ok)
	}
	if pc.Combination[0].Kind != KindPatternSwitch || pc.Combination[1].Kind != KindThemeSwitch || pc.Combination[2].Kind != KindPreset {
		t.Fatalf("unexpected combination parts: %+v", pc.Combination)
	}
}

func TestParseCombinationDropsUnparseableParts(t *testing.T) {
	pc, ok := Parse("0p2+zzz!!!+t3")
	if !ok || pc.Kind != KindCombination || len(pc.Combination) != 2 {
		t.Fatalf("expected unparseable middle part dropped, got %+v ok=%v", pc, ok)
	}
}

func TestParseCombinationAllPartsFailYieldsNone(t *testing.T) {
	if _, ok := Parse("0zzz+???invalid"); ok {
		t.Fatalf("expected combination with no valid parts to yield None")
	}
}

func TestParseUnknownTokenYieldsNone(t *testing.T) {
	if _, ok := Parse("0qqqqq"); ok {
		t.Fatalf("expected unknown token to yield None")
	}
}
