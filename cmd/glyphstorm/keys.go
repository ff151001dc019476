package main

import (
	"fmt"
	"time"

	"github.com/lixenwraith/glyphstorm/command"
	"github.com/lixenwraith/glyphstorm/engine"
	"github.com/lixenwraith/glyphstorm/overlay"
	"github.com/lixenwraith/glyphstorm/pattern"
	"github.com/lixenwraith/glyphstorm/patterns"
	"github.com/lixenwraith/glyphstorm/renderer"
)

// mouseMoveMinInterval throttles forwarded pointer motion to roughly
// 60Hz (spec §6: "motion events ... throttled"), independent of however
// fast the terminal actually reports them.
const mouseMoveMinInterval = time.Second / 60

// uiState holds everything the input router needs to turn a decoded
// renderer.InputEvent into engine/executor calls. It is only ever
// touched from closures posted through engine.Engine.Post, so all of
// its fields are effectively single-goroutine despite being populated
// from main and read from the renderer's own event-reading goroutine.
type uiState struct {
	eng        *engine.Engine
	exec       *command.Executor
	catalogue  *catalogueHolder
	themes     *patterns.ThemeRegistry
	cmdBuf     *command.Buffer
	selectMode *command.SelectMode
	arbiter    *overlay.Arbiter

	fps          uint32
	qualityIdx   int
	themeIdx     int
	debugOverlay *bool

	lastMouseMoveMs float64

	// presetIdx tracks the 0-based position in the active pattern's own
	// preset list so `.`/`,` can cycle it without the executor's by-id
	// ApplyPreset call revealing which slot is "current".
	presetIdx map[string]int

	shutdown func()
}

func (s *uiState) handleInput(ev renderer.InputEvent) {
	switch ev.Kind {
	case renderer.InputKey:
		s.handleKey(ev)
	case renderer.InputMouse:
		s.handleMouse(ev.Mouse)
	case renderer.InputResize:
		// The engine re-queries size itself every tick; nothing to do here.
	case renderer.InputError, renderer.InputClosed:
		s.shutdown()
	}
}

func (s *uiState) handleKey(ev renderer.InputEvent) {
	now := time.Now()

	if s.cmdBuf.Active() {
		s.handleCommandModeKey(ev, now)
		return
	}
	if s.selectMode.Active() {
		s.handleSelectModeKey(ev, now)
		return
	}

	if ev.IsCharacter {
		if ev.Rune >= '1' && ev.Rune <= '9' {
			s.switchToIndex(int(ev.Rune - '0'))
			return
		}
		switch ev.Rune {
		case ' ':
			s.eng.Pause()
		case '.':
			s.stepPreset(1)
		case ',':
			s.stepPreset(-1)
		case 'n':
			s.stepPattern(1)
		case 'b':
			s.stepPattern(-1)
		case 'p':
			s.selectMode.Activate(now)
			s.arbiter.ShowMessage(s.selectMode.Text(), overlay.SeverityInfo, overlay.DefaultClearance)
		case 'c':
			s.cmdBuf.Activate(now)
		case '+':
			s.adjustFPS(5)
		case '-':
			s.adjustFPS(-5)
		case '[':
			s.stepQuality(-1)
		case ']':
			s.stepQuality(1)
		case 't':
			s.cycleTheme()
		case '?':
			s.toggleHelp()
		case 'd':
			*s.debugOverlay = !*s.debugOverlay
		case 'r':
			s.runQuick(command.ParsedCommand{Kind: command.KindSpecial, Special: command.SpecialRandomize})
		case 's':
			s.runQuick(command.ParsedCommand{Kind: command.KindSpecial, Special: command.SpecialSaveConfig})
		case 'q':
			s.shutdown()
		}
		return
	}

	switch ev.KeyName {
	case "space":
		s.eng.Pause()
	case "escape", "ctrl_c":
		s.shutdown()
	}
}

func (s *uiState) handleCommandModeKey(ev renderer.InputEvent, now time.Time) {
	switch {
	case ev.KeyName == "enter":
		text := s.cmdBuf.Execute()
		if pc, ok := command.Parse(text); ok {
			res := s.exec.Execute(pc)
			s.arbiter.ShowCommandResult(res.Message, res.Success)
		}
	case ev.KeyName == "escape":
		s.cmdBuf.Cancel()
	case ev.KeyName == "backspace":
		s.cmdBuf.Backspace(now)
	case ev.KeyName == "left":
		s.cmdBuf.MoveCursorLeft()
	case ev.KeyName == "right":
		s.cmdBuf.MoveCursorRight()
	case ev.KeyName == "up":
		s.cmdBuf.PreviousCommand(now)
	case ev.KeyName == "down":
		s.cmdBuf.NextCommand(now)
	case ev.IsCharacter:
		s.cmdBuf.AddChar(ev.Rune, now)
	}
}

func (s *uiState) handleSelectModeKey(ev renderer.InputEvent, now time.Time) {
	switch {
	case ev.KeyName == "enter":
		if idx, ok := s.selectMode.Confirm(); ok {
			s.switchToIndex(idx)
		}
	case ev.KeyName == "escape":
		s.selectMode.Cancel()
	case ev.KeyName == "backspace":
		s.selectMode.Backspace(now)
	case ev.IsCharacter:
		s.selectMode.AddDigit(ev.Rune, now)
	}
}

func (s *uiState) handleMouse(m renderer.MouseEvent) {
	switch m.Action {
	case "move", "drag":
		nowMs := float64(time.Now().UnixNano()) / 1e6
		if nowMs-s.lastMouseMoveMs < float64(mouseMoveMinInterval/time.Millisecond) {
			return
		}
		s.lastMouseMoveMs = nowMs
		s.eng.NotifyMouseMove(m.Pos)
	case "press":
		if m.Button == "left" {
			s.eng.NotifyMouseClick(m.Pos)
		}
	}
}

func (s *uiState) switchToIndex(idx int) {
	entry, found := s.catalogue.ByIndex(idx)
	if !found {
		s.arbiter.ShowMessage(fmt.Sprintf("no pattern at index %d", idx), overlay.SeverityWarning, overlay.DefaultClearance)
		return
	}
	s.eng.SetPattern(entry.Pattern)
}

func (s *uiState) stepPattern(delta int) {
	count := s.catalogue.Count()
	if count == 0 {
		return
	}
	_, idx, found := s.catalogue.ByName(s.eng.CurrentPatternName())
	if !found {
		idx = 1
	}
	next := ((idx-1+delta)%count + count) % count
	entry, _ := s.catalogue.ByIndex(next + 1)
	s.eng.SetPattern(entry.Pattern)
}

// stepPreset cycles the active pattern's preset list, wrapping modulo its
// length, per spec §6's `.`/`,` next/prev preset behavior.
func (s *uiState) stepPreset(delta int) {
	entry, _, found := s.catalogue.ByName(s.eng.CurrentPatternName())
	if !found {
		return
	}
	catalogue, supportsList := entry.Pattern.(pattern.PresetCatalogue)
	applier, supportsApply := entry.Pattern.(pattern.PresetApplier)
	if !supportsList || !supportsApply {
		return
	}
	presets := catalogue.Presets()
	if len(presets) == 0 {
		return
	}

	if s.presetIdx == nil {
		s.presetIdx = make(map[string]int)
	}
	cur := s.presetIdx[entry.Name]
	next := ((cur+delta)%len(presets) + len(presets)) % len(presets)
	s.presetIdx[entry.Name] = next

	if applier.ApplyPreset(presets[next].ID) {
		s.arbiter.ShowMessage("preset: "+presets[next].Name, overlay.SeverityInfo, overlay.DefaultClearance)
	}
}

func (s *uiState) adjustFPS(delta int) {
	n := int(s.fps) + delta
	if n < 10 {
		n = 10
	}
	if n > 60 {
		n = 60
	}
	s.fps = uint32(n)
	s.eng.SetFPS(s.fps)
}

func (s *uiState) stepQuality(delta int) {
	n := s.qualityIdx + delta
	if n < 0 {
		n = 0
	}
	if n > len(qualityOrder)-1 {
		n = len(qualityOrder) - 1
	}
	s.qualityIdx = n
	s.fps = qualityFPS[qualityOrder[n]]
	s.eng.SetFPS(s.fps)
	s.arbiter.ShowMessage("quality: "+qualityOrder[n], overlay.SeverityInfo, overlay.DefaultClearance)
}

func (s *uiState) cycleTheme() {
	n := s.themeIdx + 1
	if n > s.themes.Count() {
		n = 1
	}
	name, ok := s.themes.NameByIndex(n)
	if !ok {
		return
	}
	s.themeIdx = n
	rebuildPatterns(s.catalogue, s.themes, s.eng, n)
	s.exec.UpdateState(n)
	s.arbiter.ShowMessage("theme: "+name, overlay.SeverityInfo, overlay.DefaultClearance)
}

func (s *uiState) toggleHelp() {
	s.arbiter.ShowMessage(helpText, overlay.SeverityInfo, overlay.DefaultClearance)
}

func (s *uiState) runQuick(pc command.ParsedCommand) {
	res := s.exec.Execute(pc)
	s.arbiter.ShowCommandResult(res.Message, res.Success)
}

const helpText = "1-9 pattern | n/b next/prev | ./, preset | p select | c command | space pause | +/- fps | [/] quality | t theme | d debug | r random | s save | q quit"
