package overlay

import (
	"testing"
	"time"

	"github.com/lixenwraith/glyphstorm/buffer"
)

type fakeModeSource struct {
	commandActive bool
	commandText   string
	selectActive  bool
	selectText    string
	switching     bool
}

func (f *fakeModeSource) CommandModeActive() bool      { return f.commandActive }
func (f *fakeModeSource) CommandModeText() string       { return f.commandText }
func (f *fakeModeSource) PatternSelectModeActive() bool { return f.selectActive }
func (f *fakeModeSource) PatternSelectModeText() string { return f.selectText }
func (f *fakeModeSource) SwitchInProgress() bool        { return f.switching }

func cellAt(back *buffer.Buffer, x, y int) buffer.Cell {
	for _, c := range back.EnumerateChanges() {
		if c.X == x && c.Y == y {
			return c.Cell
		}
	}
	return buffer.EmptyCell
}

func TestPriorityCommandModeBeatsEverything(t *testing.T) {
	src := &fakeModeSource{commandActive: true, commandText: ":set fps 30", selectActive: true}
	a := New(src)
	a.ShowMessage("ignored", SeverityInfo, time.Second)

	back := buffer.New(buffer.Size{Width: 20, Height: 3})
	a.Render(back, back.Size())

	if cellAt(back, 0, 2).Char != ':' {
		t.Fatalf("expected command-mode text to win the bottom row")
	}
}

func TestPrioritySelectModeBeatsMessage(t *testing.T) {
	src := &fakeModeSource{selectActive: true, selectText: "1:waves 2:starfield"}
	a := New(src)
	a.ShowMessage("hello", SeverityInfo, time.Second)

	back := buffer.New(buffer.Size{Width: 20, Height: 3})
	a.Render(back, back.Size())

	if cellAt(back, 0, 2).Char != '1' {
		t.Fatalf("expected pattern-select text to win over a pending message")
	}
}

func TestMessageShowsWhenNoModeActive(t *testing.T) {
	src := &fakeModeSource{}
	a := New(src)
	a.ShowPatternName("embers")

	back := buffer.New(buffer.Size{Width: 20, Height: 3})
	a.Render(back, back.Size())

	if cellAt(back, 2, 2).Char != 'e' {
		t.Fatalf("expected pattern name to render starting after the icon column")
	}
}

func TestMessageExpiresAndErasesLine(t *testing.T) {
	src := &fakeModeSource{}
	a := New(src)
	a.ShowMessage("bye", SeverityInfo, time.Millisecond)
	time.Sleep(2 * time.Millisecond)

	back := buffer.New(buffer.Size{Width: 20, Height: 3})
	back.SetOverlay(0, 2, buffer.Cell{Char: 'x'})
	a.Render(back, back.Size())

	if _, ok := a.pendingMessage(); ok {
		t.Fatalf("expected message to be expired")
	}
	if cellAt(back, 0, 2).Char == 'x' {
		t.Fatalf("expected the stale bottom-row overlay cell to be erased")
	}
}

func TestSwitchInProgressSuppressesAllWrites(t *testing.T) {
	src := &fakeModeSource{switching: true, commandActive: true, commandText: "hello"}
	a := New(src)

	back := buffer.New(buffer.Size{Width: 10, Height: 2})
	changesBefore := len(back.EnumerateChanges())
	a.Render(back, back.Size())
	changesAfter := len(back.EnumerateChanges())

	if changesBefore != 0 || changesAfter != 0 {
		t.Fatalf("expected no overlay writes while a pattern switch is in progress")
	}
}

func TestCommandResultSeverityReflectsOK(t *testing.T) {
	a := New(&fakeModeSource{})
	a.ShowCommandResult("saved", true)
	if a.msg.severity != SeveritySuccess {
		t.Fatalf("expected success severity for ok result")
	}
	a.ShowCommandResult("bad arg", false)
	if a.msg.severity != SeverityError {
		t.Fatalf("expected error severity for failed result")
	}
}

func TestNewMessageCancelsPending(t *testing.T) {
	a := New(&fakeModeSource{})
	a.ShowMessage("first", SeverityInfo, time.Hour)
	a.ShowMessage("second", SeverityWarning, time.Hour)

	m, ok := a.pendingMessage()
	if !ok || m.text != "second" {
		t.Fatalf("expected the newer message to replace the pending one, got %+v ok=%v", m, ok)
	}
}

func TestZeroHeightSizeDoesNotPanic(t *testing.T) {
	a := New(&fakeModeSource{})
	back := buffer.New(buffer.Size{Width: 10, Height: 0})
	a.Render(back, back.Size())
}
