package terminal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFg256     Attr = 1 << 6 // Fg.R is 256-color palette index
	AttrBg256     Attr = 1 << 7 // Bg.R is 256-color palette index
)

// AttrStyle masks only the style bits (excludes color mode flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// Cell is this package's own render-side cell shape (distinct from
// buffer.Cell, which the renderer converts to this once per flush).
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal provides low-level terminal access: raw mode lifecycle, diffed
// cell flush, and a decoded input event stream.
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor, and
	// optionally enables SGR mouse tracking (motion + buttons).
	Init(mouseEnabled bool) error

	// Fini restores terminal state. Safe to call multiple times.
	Fini()

	// Size returns current terminal dimensions, re-queried from the OS.
	Size() (width, height int)

	// Events returns the channel of decoded input events (keys, mouse,
	// resize, errors, and any synthetic events injected via PostEvent).
	Events() <-chan Event

	// ColorMode returns detected color capability
	ColorMode() ColorMode

	// Flush writes cell buffer to terminal, diffed against the previous
	// frame. Cells are row-major: cells[y*width + x]. Returns the number
	// of cells actually written.
	Flush(cells []Cell, width, height int) uint32

	// Clear fills screen with specified background color and forces a
	// full redraw on the next Flush.
	Clear(bg RGB)

	// SetCursorVisible shows/hides cursor
	SetCursorVisible(visible bool)

	// PostEvent injects a synthetic event into the Events stream.
	PostEvent(Event)
}

// termImpl implements Terminal on top of a Backend and a decoder.
type termImpl struct {
	backend Backend
	out     io.Writer

	colorMode ColorMode
	width     int
	height    int

	output  *outputBuffer
	decoder *decoder

	syntheticCh chan Event
	mergedCh    chan Event
	mergeStop   chan struct{}
	mergeDone   chan struct{}

	cursorVisible atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a new Terminal instance talking to the OS's native backend.
func New() Terminal {
	return &termImpl{
		backend:     newBackend(),
		out:         os.Stdout,
		syntheticCh: make(chan Event, 16),
	}
}

func (t *termImpl) Init(mouseEnabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	w, h := t.backend.Size()
	t.width = w
	t.height = h
	t.colorMode = DetectColorMode()

	t.output = newOutputBuffer(t.out, t.colorMode)
	t.output.resize(w, h)

	ow := t.output.writer
	ow.Write(csiAltScreenEnter)
	ow.Write(csiCursorHide)
	if mouseEnabled {
		ow.Write(mouseEnableSequence(true))
	}
	ow.Flush()

	t.decoder = newDecoder(t.backend)
	t.decoder.start()

	t.backend.SetResizeHandler(func(w, h int) {
		t.decoder.sendEvent(Event{Type: EventResize, Width: w, Height: h})
	})

	t.mergedCh = make(chan Event, 16)
	t.mergeStop = make(chan struct{})
	t.mergeDone = make(chan struct{})
	go t.mergeLoop()

	t.initialized = true
	return nil
}

// mergeLoop fans synthetic and decoded events into one channel so callers
// never need to select across two sources.
func (t *termImpl) mergeLoop() {
	defer close(t.mergeDone)
	for {
		select {
		case <-t.mergeStop:
			return
		case ev := <-t.syntheticCh:
			t.mergedCh <- ev
		case ev := <-t.decoder.events():
			t.mergedCh <- ev
		}
	}
}

func (t *termImpl) Events() <-chan Event {
	return t.mergedCh
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.decoder != nil {
		t.decoder.stop()
	}
	if t.mergeStop != nil {
		close(t.mergeStop)
		<-t.mergeDone
	}

	ow := t.output.writer
	ow.Write(csiMouseDisable)
	ow.Write(csiCursorShow)
	ow.Write(csiAltScreenExit)
	ow.Write(csiSGR0)
	ow.Flush()

	t.backend.Fini()

	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized && !t.finalized {
		t.width, t.height = t.backend.Size()
	}
	return t.width, t.height
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

// Flush writes cell buffer to terminal, diffing against the front buffer.
// Holds the lock for the entire operation to prevent a race with Clear.
func (t *termImpl) Flush(cells []Cell, width, height int) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return 0
	}

	if width != t.width || height != t.height {
		t.width = width
		t.height = height
	}

	return t.output.flush(cells, width, height)
}

func (t *termImpl) Clear(bg RGB) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.output.clear(bg)
	t.output.forceFullRedraw()
}

func (t *termImpl) SetCursorVisible(visible bool) {
	if t.cursorVisible.Swap(visible) == visible {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	if visible {
		w.Write(csiCursorShow)
	} else {
		w.Write(csiCursorHide)
	}
	w.Flush()
}

func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
		// Channel full, drop.
	}
}

// EmergencyReset attempts to restore terminal to a sane state.
// Call this from panic recovery if Fini() cannot be called normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseDisable)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiRIS) // Full reset as last resort
}
