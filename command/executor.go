package command

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/glyphstorm/config"
	"github.com/lixenwraith/glyphstorm/pattern"
)

// Result is the outcome of Execute: every executed command reports one,
// never an error return — failures are user-facing messages, not Go
// errors, per spec §4.10 and §7's "invalid command ... explanatory
// message; nothing changes" policy.
type Result struct {
	Success bool
	Message string
}

func ok(format string, a ...any) Result  { return Result{Success: true, Message: fmt.Sprintf(format, a...)} }
func fail(format string, a ...any) Result { return Result{Success: false, Message: fmt.Sprintf(format, a...)} }

// PatternEntry is one registered pattern plus its canonical name, as the
// catalogue reports it.
type PatternEntry struct {
	Name    string
	Pattern pattern.Pattern
}

// Catalogue resolves pattern ids (1-based index or case-insensitive
// partial name) against the registered set. The engine/cmd wiring owns
// the concrete registry; the executor only ever reads it.
type Catalogue interface {
	Count() int
	ByIndex(i int) (PatternEntry, bool) // 1-based
	ByName(partial string) (PatternEntry, int, bool)
	Names() []string
	Random() (PatternEntry, int)
}

// Themes resolves theme ids the same way Catalogue resolves patterns.
type Themes interface {
	Count() int
	NameByIndex(i int) (string, bool) // 1-based
	IndexByName(partial string) (int, string, bool)
	Names() []string
	Random() (int, string)
}

// Engine is the subset of engine.Engine the executor drives: swapping
// the active pattern and reading which one is active.
type Engine interface {
	SetPattern(p pattern.Pattern)
	CurrentPatternName() string

	// Post enqueues f to run on the frame-loop goroutine at the start of
	// the next tick. Safe to call from any goroutine; the shuffle
	// scheduler's timer callback uses this to reach engine/executor
	// state without violating the single-event-loop invariant above.
	Post(f func())
}

// Executor applies parsed commands to engine/pattern/theme/favorite
// state (spec §4.10). Not safe for concurrent use beyond the single
// event loop that also owns the engine and command buffer.
type Executor struct {
	engine     Engine
	patterns   Catalogue
	themes     Themes
	collab     config.Collaborator // nil if no config/favorites backing is wired
	onTheme    func(themeIndex int, themeName string)
	currentTheme int

	shuffle *shuffleScheduler
	now     func() time.Time
}

// NewExecutor wires an executor against its collaborators. collab may be
// nil: favorite operations then fail per spec §7's "config collaborator
// unavailable" case. onThemeChange is invoked after every successful
// theme switch; the caller is expected to rebuild patterns for the new
// theme and reinstall the active one via engine.SetPattern.
func NewExecutor(engine Engine, patterns Catalogue, themes Themes, collab config.Collaborator, onThemeChange func(int, string)) *Executor {
	e := &Executor{
		engine:       engine,
		patterns:     patterns,
		themes:       themes,
		collab:       collab,
		onTheme:      onThemeChange,
		currentTheme: 1, // 1-based; caller should UpdateState once the real initial theme is known
		now:          time.Now,
	}
	e.shuffle = newShuffleScheduler(e)
	return e
}

// UpdateState keeps the executor in sync after a direct keyboard-driven
// theme change (spec §4.10's closing paragraph). Only the theme index is
// recorded; the active pattern is always read back from the engine.
func (e *Executor) UpdateState(themeIndex int) {
	e.currentTheme = themeIndex
}

// Cleanup stops the shuffle scheduler's timer, if any.
func (e *Executor) Cleanup() {
	e.shuffle.stop()
}

// ShuffleInfo returns a short human string describing the active
// shuffle mode, or "" when none is running.
func (e *Executor) ShuffleInfo() string {
	return e.shuffle.info()
}

// Execute applies a single parsed command.
func (e *Executor) Execute(pc ParsedCommand) Result {
	switch pc.Kind {
	case KindPreset:
		return e.applyPresetToCurrent(pc.PresetNum)
	case KindFavoriteLoad:
		return e.loadFavorite(pc.FavoriteSlot)
	case KindFavoriteSave:
		return e.saveFavorite(pc.FavoriteSlot)
	case KindPatternSwitch:
		return e.switchPattern(pc.PatternID, pc.PatternPreset)
	case KindThemeSwitch:
		return e.switchTheme(pc.ThemeID)
	case KindSpecial:
		return e.special(pc)
	case KindCombination:
		return e.combination(pc.Combination)
	default:
		return fail("unrecognized command")
	}
}

func (e *Executor) currentPatternName() string {
	if e.engine == nil {
		return ""
	}
	return e.engine.CurrentPatternName()
}

func (e *Executor) applyPresetToCurrent(n int) Result {
	entry, _, found := e.patterns.ByName(e.currentPatternName())
	if !found {
		return fail("no active pattern")
	}
	applier, supported := entry.Pattern.(pattern.PresetApplier)
	if !supported || !applier.ApplyPreset(uint32(n)) {
		return fail("preset %d not supported by %s", n, entry.Name)
	}
	return ok("Applied preset %d to %s", n, entry.Name)
}

func (e *Executor) switchPattern(id string, presetSuffix int) Result {
	entry, found := e.resolvePattern(id)
	if !found {
		return fail("unknown pattern: %s", id)
	}
	e.engine.SetPattern(entry.Pattern)

	if presetSuffix == NoPreset {
		return ok("Switched to %s", entry.Name)
	}
	if applier, supported := entry.Pattern.(pattern.PresetApplier); supported && applier.ApplyPreset(uint32(presetSuffix)) {
		return ok("Switched to %s, applied preset %d", entry.Name, presetSuffix)
	}
	return ok("Switched to %s (preset %d not supported)", entry.Name, presetSuffix)
}

func (e *Executor) resolvePattern(id string) (PatternEntry, bool) {
	if n, err := strconv.Atoi(id); err == nil {
		return e.patterns.ByIndex(n)
	}
	entry, _, found := e.patterns.ByName(id)
	return entry, found
}

func (e *Executor) switchTheme(id string) Result {
	var idx int
	var name string
	if n, err := strconv.Atoi(id); err == nil {
		nm, found := e.themes.NameByIndex(n)
		if !found {
			return fail("unknown theme: %s", id)
		}
		idx, name = n, nm
	} else {
		i, nm, found := e.themes.IndexByName(id)
		if !found {
			return fail("unknown theme: %s", id)
		}
		idx, name = i, nm
	}

	e.currentTheme = idx
	if e.onTheme != nil {
		e.onTheme(idx, name)
	}
	return ok("Theme set to %s", name)
}

func (e *Executor) loadFavorite(slot int) Result {
	if e.collab == nil {
		return fail("no config collaborator available")
	}
	rec, found := e.collab.GetFavorite(slot)
	if !found {
		return fail("favorite slot %d is empty", slot)
	}

	patEntry, patFound := e.resolvePattern(rec.PatternName)
	themeIdx, themeName, themeFound := e.themes.IndexByName(rec.ThemeName)
	if !patFound || !themeFound {
		return fail("favorite slot %d references an unresolved pattern or theme", slot)
	}

	if themeIdx != e.currentTheme {
		e.currentTheme = themeIdx
		if e.onTheme != nil {
			e.onTheme(themeIdx, themeName)
		}
	}
	e.engine.SetPattern(patEntry.Pattern)

	msg := fmt.Sprintf("Loaded favorite %d: %s / %s", slot, patEntry.Name, themeName)
	if rec.Preset != nil {
		if applier, supported := patEntry.Pattern.(pattern.PresetApplier); supported {
			applier.ApplyPreset(uint32(*rec.Preset))
		}
	}
	if rec.Note != "" {
		msg += " — " + rec.Note
	}
	return ok("%s", msg)
}

func (e *Executor) saveFavorite(slot int) Result {
	if e.collab == nil {
		return fail("no config collaborator available")
	}
	themeName, _ := e.themes.NameByIndex(e.currentTheme)
	rec := config.FavoriteSlot{
		PatternName: e.currentPatternName(),
		ThemeName:   themeName,
		SavedAt:     config.NowISO8601(e.now()),
	}
	if err := e.collab.SaveFavorite(slot, rec); err != nil {
		return fail("failed to save favorite %d: %v", slot, err)
	}
	return ok("Saved favorite %d: %s / %s", slot, rec.PatternName, rec.ThemeName)
}

func (e *Executor) special(pc ParsedCommand) Result {
	switch pc.Special {
	case SpecialListPatterns:
		return ok("Patterns: %s", strings.Join(e.patterns.Names(), ", "))
	case SpecialListThemes:
		return ok("Themes: %s", strings.Join(e.themes.Names(), ", "))
	case SpecialListFavorites:
		return e.listFavorites()
	case SpecialListPresetsCurrent:
		return e.listPresets(e.currentPatternName())
	case SpecialCatalogPresets:
		return e.catalogPresets()
	case SpecialRandomPreset:
		return e.randomPreset()
	case SpecialRandomAll:
		return e.randomAll()
	case SpecialRandomTheme:
		idx, name := e.themes.Random()
		e.currentTheme = idx
		if e.onTheme != nil {
			e.onTheme(idx, name)
		}
		return ok("Random theme: %s", name)
	case SpecialRandomize:
		return e.randomize()
	case SpecialSaveConfig:
		return e.saveConfig()
	case SpecialResetPattern:
		return e.resetPattern()
	case SpecialShuffleToggle:
		return e.shuffle.toggle(false, pc.SpecialArg)
	case SpecialShuffleAllToggle:
		return e.shuffle.toggle(true, "")
	case SpecialSearch:
		return e.search(pc.SpecialArg)
	case SpecialHistory:
		return fail("history: not implemented")
	case SpecialUndo:
		return fail("undo: not implemented")
	case SpecialRepeat:
		return fail("repeat: not implemented")
	default:
		return fail("unknown special command")
	}
}

func (e *Executor) listFavorites() Result {
	if e.collab == nil {
		return fail("no config collaborator available")
	}
	all := e.collab.GetAllFavorites()
	if len(all) == 0 {
		return ok("No favorites saved")
	}
	slots := make([]int, 0, len(all))
	for slot := range all {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		rec := all[slot]
		parts = append(parts, fmt.Sprintf("%d: %s/%s", slot, rec.PatternName, rec.ThemeName))
	}
	return ok("Favorites: %s", strings.Join(parts, ", "))
}

func (e *Executor) listPresets(patternName string) Result {
	entry, _, found := e.patterns.ByName(patternName)
	if !found {
		return fail("no active pattern")
	}
	catalogue, supported := entry.Pattern.(pattern.PresetCatalogue)
	if !supported {
		return fail("%s has no presets", entry.Name)
	}
	return ok("%s presets: %s", entry.Name, formatPresets(catalogue.Presets()))
}

func (e *Executor) catalogPresets() Result {
	var sb strings.Builder
	for i, name := range e.patterns.Names() {
		if i > 0 {
			sb.WriteString("; ")
		}
		entry, _, found := e.patterns.ByName(name)
		if !found {
			continue
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		if catalogue, supported := entry.Pattern.(pattern.PresetCatalogue); supported {
			sb.WriteString(formatPresets(catalogue.Presets()))
		} else {
			sb.WriteString("(none)")
		}
	}
	return ok("%s", sb.String())
}

func formatPresets(presets []pattern.PresetInfo) string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = fmt.Sprintf("%d:%s", i+1, p.Name)
	}
	return strings.Join(names, ", ")
}

func (e *Executor) randomPreset() Result {
	entry, _, found := e.patterns.ByName(e.currentPatternName())
	if !found {
		return fail("no active pattern")
	}
	catalogue, supported := entry.Pattern.(pattern.PresetCatalogue)
	if !supported || len(catalogue.Presets()) == 0 {
		return fail("%s has no presets", entry.Name)
	}
	n := rand.Intn(len(catalogue.Presets())) + 1
	return e.applyPresetToCurrent(n)
}

// randomize picks a random pattern and a random theme (spec's `r`),
// distinct from `**` which additionally randomizes the preset.
func (e *Executor) randomize() Result {
	entry, idx := e.patterns.Random()
	themeIdx, themeName := e.themes.Random()

	e.currentTheme = themeIdx
	if e.onTheme != nil {
		e.onTheme(themeIdx, themeName)
	}
	e.engine.SetPattern(entry.Pattern)
	return ok("Randomized: %s (#%d) / %s", entry.Name, idx, themeName)
}

func (e *Executor) randomAll() Result {
	res := e.randomize()
	if !res.Success {
		return res
	}
	presetRes := e.randomPreset()
	if presetRes.Success {
		return ok("%s, %s", res.Message, presetRes.Message)
	}
	return res
}

func (e *Executor) saveConfig() Result {
	if e.collab == nil {
		return fail("no config collaborator available")
	}
	snap := config.Snapshot{
		Pattern: e.currentPatternName(),
	}
	if name, found := e.themes.NameByIndex(e.currentTheme); found {
		snap.Theme = name
	}
	if err := e.collab.Save(snap); err != nil {
		return fail("failed to save config: %v", err)
	}
	return ok("Config saved")
}

func (e *Executor) resetPattern() Result {
	entry, _, found := e.patterns.ByName(e.currentPatternName())
	if !found {
		return fail("no active pattern")
	}
	entry.Pattern.Reset()
	return ok("Reset %s", entry.Name)
}

func (e *Executor) search(term string) Result {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return fail("usage: /TERM")
	}
	var patterns, themes []string
	for _, name := range e.patterns.Names() {
		if strings.Contains(strings.ToLower(name), term) {
			patterns = append(patterns, name)
		}
	}
	for _, name := range e.themes.Names() {
		if strings.Contains(strings.ToLower(name), term) {
			themes = append(themes, name)
		}
	}
	if len(patterns) == 0 && len(themes) == 0 {
		return fail("no matches for %q", term)
	}
	return ok("Patterns: [%s] Themes: [%s]", strings.Join(patterns, ", "), strings.Join(themes, ", "))
}

// combination runs each sub-command in order, aggregating messages with
// a separator; overall success requires every sub-command to succeed.
// Failures are prefixed with a cross marker in the aggregate message.
func (e *Executor) combination(subs []ParsedCommand) Result {
	var msgs []string
	allOK := true
	for _, sub := range subs {
		res := e.Execute(sub)
		if !res.Success {
			allOK = false
			msgs = append(msgs, "✗ "+res.Message)
		} else {
			msgs = append(msgs, res.Message)
		}
	}
	return Result{Success: allOK, Message: strings.Join(msgs, " | ")}
}
