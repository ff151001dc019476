package buffer

// Change is one cell that differs between front and back (after the
// overlay layer is applied on top of back).
type Change struct {
	X, Y int
	Cell Cell
}

// Buffer holds the front grid (last emitted to the terminal), the back
// grid (the frame being composed), and a sparse overlay layer that is
// merged on top of back only at diff time — it never mutates the cells a
// pattern wrote.
//
// Grounded on the teacher's render.RenderBuffer / terminal.outputBuffer
// double-buffer-plus-diff shape, generalized to the spec's Option<Color>
// cell model instead of always-opaque RGB blending.
type Buffer struct {
	front, back []Cell
	overlay     map[int]Cell // key: y*width+x
	width       int
	height      int
}

// New creates a buffer with the given dimensions. Both grids start filled
// with EmptyCell.
func New(size Size) *Buffer {
	b := &Buffer{overlay: make(map[int]Cell)}
	b.Resize(size)
	return b
}

// Resize reallocates both grids to the new dimensions. Content is
// discarded; callers must expect a full redraw next frame (the renderer
// achieves this by also reallocating its own front copy via ClearScreen).
func (b *Buffer) Resize(size Size) {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	n := size.Width * size.Height
	b.front = make([]Cell, n)
	b.back = make([]Cell, n)
	for i := range b.front {
		b.front[i] = EmptyCell
		b.back[i] = EmptyCell
	}
	b.width = size.Width
	b.height = size.Height
	b.overlay = make(map[int]Cell)
}

// Size returns the buffer's current dimensions.
func (b *Buffer) Size() Size {
	return Size{Width: b.width, Height: b.height}
}

// Clear resets the back buffer to EmptyCell in O(width*height).
func (b *Buffer) Clear() {
	for i := range b.back {
		b.back[i] = EmptyCell
	}
}

// InvalidateFront forces the next EnumerateChanges call to report every
// cell in back (merged with overlay), regardless of what it reported last
// time. Used by the renderer's ClearScreen so a hard terminal clear is
// always followed by a full redraw rather than a diff against stale state.
func (b *Buffer) InvalidateFront() {
	for i := range b.front {
		b.front[i] = invalidCell
	}
}

// invalidCell can never equal a real cell: Attrs never legitimately carries
// every bit at once.
var invalidCell = Cell{Attrs: ^Attr(0)}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell into the back buffer. Writes outside bounds are a
// silent no-op — patterns are never allowed to crash the renderer by
// writing off-grid.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.back[y*b.width+x] = c
}

// Get reads a cell from the back buffer. Returns EmptyCell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return EmptyCell
	}
	return b.back[y*b.width+x]
}

// SetOverlay writes a cell into the sparse overlay layer, which wins over
// whatever the pattern wrote to back at the same position when diffing.
// Used exclusively by the bottom-row overlay arbiter (§4.7); patterns never
// call this.
func (b *Buffer) SetOverlay(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.overlay[y*b.width+x] = c
}

// ClearOverlay drops all pending overlay writes without touching back.
func (b *Buffer) ClearOverlay() {
	for k := range b.overlay {
		delete(b.overlay, k)
	}
}

// ClearOverlayRow drops pending overlay writes in row y only, leaving
// overlay entries on other rows (e.g. the arbiter's bottom-row banner)
// untouched. Used by callers that paint a debug overlay on a row of
// their own and must retract it cleanly once toggled off.
func (b *Buffer) ClearOverlayRow(y int) {
	base := y * b.width
	for x := 0; x < b.width; x++ {
		delete(b.overlay, base+x)
	}
}

// EnumerateChanges yields every cell where (back merged with overlay)
// differs from front, then advances front to match. Calling it twice in a
// row without an intervening Set/SetOverlay yields an empty slice the
// second time — front has already absorbed the prior call's changes.
func (b *Buffer) EnumerateChanges() []Change {
	var changes []Change
	for i := range b.back {
		cell := b.back[i]
		if ov, ok := b.overlay[i]; ok {
			cell = ov
		}
		if cell != b.front[i] {
			x := i % b.width
			y := i / b.width
			changes = append(changes, Change{X: x, Y: y, Cell: cell})
			b.front[i] = cell
		}
	}
	return changes
}
