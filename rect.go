package tui

// Rect is an integer rectangle in terminal cells.
// Column and Row are the zero-indexed top-left corner.
type Rect struct {
	Column, Row   int
	Width, Height int
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(column, row, width, height int) Rect {
	return Rect{Column: column, Row: row, Width: width, Height: height}
}

// Value returns r itself, so a plain Rect satisfies RectProvider.
func (r Rect) Value() Rect {
	return r
}

// Valid reports whether the rectangle has non-negative dimensions.
func (r Rect) Valid() bool {
	return r.Width >= 0 && r.Height >= 0
}

// Right returns the column of the right edge (exclusive).
func (r Rect) Right() int {
	return r.Column + r.Width
}

// Bottom returns the row of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Row + r.Height
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the cell (x, y) is inside the rectangle.
// Left and top edges are inside; right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Column && x < r.Right() && y >= r.Row && y < r.Bottom()
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.Column += dx
	r.Row += dy
	return r
}

// Outset returns a new Rect grown by n cells on every side.
// Negative n shrinks it; dimensions never go below zero.
func (r Rect) Outset(n int) Rect {
	out := Rect{
		Column: r.Column - n,
		Row:    r.Row - n,
		Width:  r.Width + 2*n,
		Height: r.Height + 2*n,
	}
	out.Width = max(out.Width, 0)
	out.Height = max(out.Height, 0)
	return out
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, returns an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	column := max(r.Column, other.Column)
	row := max(r.Row, other.Row)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	if right <= column || bottom <= row {
		return Rect{}
	}
	return Rect{Column: column, Row: row, Width: right - column, Height: bottom - row}
}

// Intersects returns true if the two rectangles overlap.
// Touching edges do not count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// RectProvider supplies a rectangle. Static geometry is a plain Rect;
// derived geometry is usually a *Computed[Rect].
type RectProvider interface {
	Value() Rect
}

// RectFunc adapts a function to RectProvider. It is evaluated on every read,
// so components read it through their per-tick cache.
type RectFunc func() Rect

// Value calls f.
func (f RectFunc) Value() Rect {
	return f()
}
