// Package renderer owns the terminal session on behalf of the animation
// engine: it translates buffer.Buffer diffs into terminal escape sequences
// and turns raw terminal input into the engine's InputEvent stream.
//
// Grounded on the teacher's terminal.termImpl / outputBuffer pairing in
// terminal/terminal.go and terminal/output.go; this package is the thin
// buffer.Cell <-> terminal.Cell adapter layer plus the key/mouse event
// translation spec.md §4.2 asks the renderer for.
package renderer

import (
	"strings"

	"github.com/lixenwraith/glyphstorm/buffer"
	"github.com/lixenwraith/glyphstorm/terminal"
)

// InputKind distinguishes the kinds of InputEvent the renderer delivers.
type InputKind uint8

const (
	InputKey InputKind = iota
	InputMouse
	InputResize
	InputError
	InputClosed
)

// InputEvent is the renderer's own decoded input shape: logical key names
// plus the raw codepoint and an is-character flag, per the spec's
// key-mapping guarantee, and mouse coordinates already normalized 0-based.
type InputEvent struct {
	Kind InputKind

	KeyName     string // canonical name, e.g. "escape", "ctrl_c", ""  for plain runes
	Rune        rune
	IsCharacter bool
	Shift       bool
	Alt         bool
	Ctrl        bool

	Mouse MouseEvent

	Width, Height int // InputResize

	Err error
}

// MouseEvent mirrors terminal.MouseEvent with buffer.Point coordinates.
type MouseEvent struct {
	Button string // "left", "right", "middle", "wheel_up", "wheel_down", "none"
	Action string // "press", "release", "move", "drag"
	Pos    buffer.Point
	Shift  bool
	Alt    bool
	Ctrl   bool
}

// Renderer implements spec.md §4.2's TerminalRenderer contract: own the
// terminal session, translate Buffer diffs to minimal escape sequences,
// and surface keyboard/mouse input.
type Renderer struct {
	term term
	buf  *buffer.Buffer

	// mirror tracks the same front-buffer-equivalent state as buffer.Buffer
	// internally, translated to terminal.Cell, so Flush always receives a
	// complete grid (the terminal's own diff is keyed on that, not on the
	// sparse Change list buffer.EnumerateChanges returns).
	mirror []terminal.Cell
	mw, mh int
}

// term is the subset of terminal.Terminal the renderer depends on,
// satisfied by terminal.New() in production and a fake in tests.
type term interface {
	Init(mouseEnabled bool) error
	Fini()
	Size() (int, int)
	Events() <-chan terminal.Event
	Flush(cells []terminal.Cell, width, height int) uint32
	Clear(bg terminal.RGB)
	SetCursorVisible(visible bool)
	PostEvent(terminal.Event)
}

// New creates a Renderer bound to the OS terminal.
func New() *Renderer {
	return &Renderer{term: terminal.New()}
}

// NewWithTerminal creates a Renderer bound to an arbitrary term
// implementation, for tests.
func NewWithTerminal(t term) *Renderer {
	return &Renderer{term: t}
}

// Init switches to the alternate screen, enables raw mode, hides the
// cursor, optionally enables mouse tracking, queries size, and allocates
// the backing Buffer.
func (r *Renderer) Init(mouseEnabled bool) error {
	if err := r.term.Init(mouseEnabled); err != nil {
		return err
	}
	w, h := r.term.Size()
	r.buf = buffer.New(buffer.Size{Width: w, Height: h})
	r.term.SetCursorVisible(false)
	return nil
}

// GetSize returns current terminal dimensions, re-queried.
func (r *Renderer) GetSize() buffer.Size {
	w, h := r.term.Size()
	return buffer.Size{Width: w, Height: h}
}

// GetBuffer returns the cell grid patterns render into.
func (r *Renderer) GetBuffer() *buffer.Buffer {
	return r.buf
}

// Render emits every changed cell since the last call (or since the last
// ClearScreen) and returns the count. After it returns, terminal style
// state is guaranteed back to default foreground/background with no
// lingering attributes.
func (r *Renderer) Render() (uint32, error) {
	w, h := r.term.Size()
	size := r.buf.Size()
	if w != size.Width || h != size.Height {
		r.buf.Resize(buffer.Size{Width: w, Height: h})
		r.ClearScreen()
		size = r.buf.Size()
	}

	if r.mw != size.Width || r.mh != size.Height {
		r.mirror = make([]terminal.Cell, size.Width*size.Height)
		r.mw, r.mh = size.Width, size.Height
	}

	changes := r.buf.EnumerateChanges()
	if len(changes) == 0 {
		return 0, nil
	}

	for _, ch := range changes {
		r.mirror[ch.Y*size.Width+ch.X] = toTerminalCell(ch.Cell)
	}

	return r.term.Flush(r.mirror, size.Width, size.Height), nil
}

// ClearScreen hard-clears and forces a full redraw on the next Render.
func (r *Renderer) ClearScreen() {
	r.term.Clear(terminal.RGBBlack)
	if r.buf != nil {
		r.buf.InvalidateFront()
	}
	for i := range r.mirror {
		r.mirror[i] = terminal.Cell{}
	}
}

// Cleanup restores cooked mode, shows the cursor, disables mouse tracking,
// and leaves the alternate screen. Safe to call more than once.
func (r *Renderer) Cleanup() {
	r.term.Fini()
}

// Events returns the translated input event stream.
func (r *Renderer) Events() <-chan InputEvent {
	out := make(chan InputEvent, 16)
	go func() {
		for ev := range r.term.Events() {
			out <- translate(ev)
		}
		close(out)
	}()
	return out
}

func toTerminalCell(c buffer.Cell) terminal.Cell {
	tc := terminal.Cell{Rune: c.Char}
	if c.HasColor {
		tc.Fg = terminal.RGB{R: c.Color.R, G: c.Color.G, B: c.Color.B}
	}
	if c.Attrs&buffer.AttrBold != 0 {
		tc.Attrs |= terminal.AttrBold
	}
	if c.Attrs&buffer.AttrReverse != 0 {
		tc.Attrs |= terminal.AttrReverse
	}
	if c.Attrs&buffer.AttrUnderline != 0 {
		tc.Attrs |= terminal.AttrUnderline
	}
	return tc
}

func translate(ev terminal.Event) InputEvent {
	switch ev.Type {
	case terminal.EventKey:
		out := InputEvent{
			Kind:  InputKey,
			Shift: ev.Modifiers&terminal.ModShift != 0,
			Alt:   ev.Modifiers&terminal.ModAlt != 0,
			Ctrl:  ev.Modifiers&terminal.ModCtrl != 0,
		}
		if ev.Key == terminal.KeyRune {
			out.IsCharacter = true
			out.Rune = ev.Rune
		} else {
			out.KeyName = terminal.KeyName(ev.Key)
		}
		return out
	case terminal.EventMouse:
		return InputEvent{
			Kind: InputMouse,
			Mouse: MouseEvent{
				Button: strings.Replace(strings.ToLower(ev.Mouse.Button.String()), "wheel", "wheel_", 1),
				Action: strings.ToLower(ev.Mouse.Action.String()),
				Pos:    buffer.Point{X: ev.Mouse.X, Y: ev.Mouse.Y},
				Shift:  ev.Mouse.Modifiers&terminal.ModShift != 0,
				Alt:    ev.Mouse.Modifiers&terminal.ModAlt != 0,
				Ctrl:   ev.Mouse.Modifiers&terminal.ModCtrl != 0,
			},
		}
	case terminal.EventResize:
		return InputEvent{Kind: InputResize, Width: ev.Width, Height: ev.Height}
	case terminal.EventError:
		return InputEvent{Kind: InputError, Err: ev.Err}
	default:
		return InputEvent{Kind: InputClosed}
	}
}
