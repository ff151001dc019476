// Package buffer holds the cell grid that patterns render into and the
// terminal diffs against: colors, sizes, points, cells, themes, and the
// double-buffered grid itself.
package buffer

// Color is a 24-bit RGB color. Zero value is black, not "no color" — a
// Cell with HasColor false means "terminal default foreground".
type Color struct {
	R, G, B uint8
}

// Attr is a bitmask of text attributes a Cell may carry.
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrReverse   Attr = 1 << 1
	AttrUnderline Attr = 1 << 2
)

// Size is a terminal dimension in cells.
type Size struct {
	Width, Height int
}

// Point is an integer cell coordinate. Pattern-local math may use
// fractional coordinates of its own and round to Point only when writing.
type Point struct {
	X, Y int
}

// Cell is a single character cell: a grapheme-cluster-or-ascii rune plus an
// optional foreground color. HasColor false means "terminal default
// foreground" (Color is then ignored). Cells never carry a background; the
// renderer always paints the theme/terminal default background.
//
// Color is stored by value, not by pointer, so that Cell stays a plain
// comparable struct — the buffer's diff (§4.1) relies on `==` to detect
// unchanged cells, and a pointer field would make two cells with identical
// colors compare unequal whenever a pattern allocates a fresh *Color each
// frame.
type Cell struct {
	Char     rune
	HasColor bool
	Color    Color
	Attrs    Attr
}

// EmptyCell is the canonical blank cell used to clear the back buffer.
var EmptyCell = Cell{Char: ' '}

// WithColor returns a copy of c with its color set. Convenience for
// patterns building literal cells inline.
func (c Cell) WithColor(col Color) Cell {
	c.HasColor = true
	c.Color = col
	return c
}
