package renderer

import (
	"testing"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/terminal"
)

// fakeTerm is a minimal in-memory stand-in for terminal.Terminal.
type fakeTerm struct {
	w, h      int
	events    chan terminal.Event
	lastCells []terminal.Cell
	lastW     int
	lastH     int
	cleared   int
}

func newFakeTerm(w, h int) *fakeTerm {
	return &fakeTerm{w: w, h: h, events: make(chan terminal.Event, 4)}
}

func (f *fakeTerm) Init(mouseEnabled bool) error { return nil }
func (f *fakeTerm) Fini()                        {}
func (f *fakeTerm) Size() (int, int)             { return f.w, f.h }
func (f *fakeTerm) Events() <-chan terminal.Event { return f.events }
func (f *fakeTerm) ColorMode() terminal.ColorMode { return terminal.ColorModeTrueColor }
func (f *fakeTerm) SetCursorVisible(bool)         {}
func (f *fakeTerm) PostEvent(terminal.Event)      {}

func (f *fakeTerm) Flush(cells []terminal.Cell, w, h int) uint32 {
	f.lastCells = append([]terminal.Cell(nil), cells...)
	f.lastW, f.lastH = w, h
	var n uint32
	for _, c := range cells {
		if c.Rune != 0 {
			n++
		}
	}
	return n
}

func (f *fakeTerm) Clear(bg terminal.RGB) {
	f.cleared++
}

func TestRenderEmitsWrittenCells(t *testing.T) {
	ft := newFakeTerm(4, 3)
	r := NewWithTerminal(ft)
	if err := r.Init(false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	r.GetBuffer().Set(1, 1, buffer.Cell{Char: 'x'}.WithColor(buffer.Color{R: 200}))

	n, err := r.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 changed cell, got %d", n)
	}
	if ft.lastCells[1*4+1].Rune != 'x' {
		t.Fatalf("expected mirror to carry the written cell through to Flush")
	}
}

func TestRenderIdempotentWithoutMutation(t *testing.T) {
	ft := newFakeTerm(2, 2)
	r := NewWithTerminal(ft)
	r.Init(false)

	r.GetBuffer().Set(0, 0, buffer.Cell{Char: 'a'})
	if _, err := r.Render(); err != nil {
		t.Fatal(err)
	}

	n, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected no changes on second render without mutation, got %d", n)
	}
}

func TestClearScreenForcesFullRedraw(t *testing.T) {
	ft := newFakeTerm(2, 2)
	r := NewWithTerminal(ft)
	r.Init(false)

	r.GetBuffer().Set(0, 0, buffer.Cell{Char: 'a'})
	r.Render()

	r.ClearScreen()
	if ft.cleared != 1 {
		t.Fatalf("expected terminal Clear to be invoked once, got %d", ft.cleared)
	}

	n, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatalf("expected a full redraw after ClearScreen even with no new writes")
	}
}

func TestTranslateKeyEvent(t *testing.T) {
	ev := translate(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyEscape})
	if ev.Kind != InputKey || ev.KeyName != "escape" || ev.IsCharacter {
		t.Fatalf("unexpected translation: %+v", ev)
	}

	ev = translate(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q'})
	if !ev.IsCharacter || ev.Rune != 'q' {
		t.Fatalf("expected character event for plain rune, got %+v", ev)
	}
}

func TestTranslateMouseEventNormalizesReported(t *testing.T) {
	ev := translate(terminal.Event{
		Type: terminal.EventMouse,
		Mouse: terminal.MouseEvent{
			Button: terminal.MouseBtnLeft,
			Action: terminal.MouseActionPress,
			X:      9,
			Y:      4,
		},
	})
	if ev.Kind != InputMouse || ev.Mouse.Pos != (buffer.Point{X: 9, Y: 4}) {
		t.Fatalf("unexpected mouse translation: %+v", ev)
	}
}
