package tui

import (
	"io"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Canvas is a double-buffered grid of cells bound to an output sink.
// Draws go to the current frame; Flush writes the difference against the
// previous frame in a single Write and then copies current into previous.
//
// A Canvas is not safe for concurrent use. The scheduler owns it.
type Canvas struct {
	out      io.Writer
	cols     int
	rows     int
	current  []Cell
	previous []Cell

	// fullRepaint makes the next flush treat every cell as dirty.
	fullRepaint bool

	profile Profile
	esc     *escBuilder

	now       func() time.Time
	lastFlush time.Time
	fps       float64
	frames    uint64
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithProfile sets the color profile used to encode styles.
// Without it the profile is detected from the environment.
func WithProfile(p Profile) CanvasOption {
	return func(c *Canvas) {
		c.profile = p
	}
}

// withCanvasClock replaces time.Now for FPS bookkeeping in tests.
func withCanvasClock(now func() time.Time) CanvasOption {
	return func(c *Canvas) {
		c.now = now
	}
}

// NewCanvas creates a canvas of cols×rows blank cells writing to out.
// Negative dimensions are treated as zero.
func NewCanvas(out io.Writer, cols, rows int, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		out:     out,
		profile: DetectProfile(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.allocate(cols, rows)
	c.esc = newEscBuilder(c.cols * c.rows * 4)
	return c
}

func (c *Canvas) allocate(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	c.cols, c.rows = cols, rows
	c.current = make([]Cell, cols*rows)
	c.previous = make([]Cell, cols*rows)
	for i := range c.current {
		c.current[i] = blankCell
		c.previous[i] = blankCell
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Bounds returns the canvas area as a Rect at the origin.
func (c *Canvas) Bounds() Rect {
	return NewRect(0, 0, c.cols, c.rows)
}

// Profile returns the color profile in use.
func (c *Canvas) Profile() Profile {
	return c.profile
}

// SetProfile changes the color profile. The next flush repaints everything
// because the encoding of every styled cell may have changed.
func (c *Canvas) SetProfile(p Profile) {
	if p == c.profile {
		return
	}
	c.profile = p
	c.fullRepaint = true
}

// FPS returns the exponentially smoothed flush rate.
func (c *Canvas) FPS() float64 {
	return c.fps
}

// Frames returns how many flushes have completed successfully.
func (c *Canvas) Frames() uint64 {
	return c.frames
}

func (c *Canvas) idx(x, y int) int {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return -1
	}
	return y*c.cols + x
}

// Cell returns the cell at (x, y) of the current frame, or the zero Cell
// when out of bounds.
func (c *Canvas) Cell(x, y int) Cell {
	i := c.idx(x, y)
	if i < 0 {
		return Cell{}
	}
	return c.current[i]
}

// SetCell places cell at (x, y), clipping silently. Any wide character that
// it partially overwrites is blanked so no orphan halves remain.
func (c *Canvas) SetCell(x, y int, cell Cell) {
	i := c.idx(x, y)
	if i < 0 {
		return
	}

	c.clearWideAt(x, y)
	if cell.Width == 2 {
		if x+1 >= c.cols {
			// Does not fit on this row.
			c.current[i] = Cell{Rune: ' ', Style: cell.Style, Width: 1}
			return
		}
		c.clearWideAt(x+1, y)
		c.current[i] = cell
		c.current[i+1] = Cell{Style: cell.Style, Width: 0}
		return
	}
	c.current[i] = cell
}

// clearWideAt blanks the wide character covering (x, y), if any.
func (c *Canvas) clearWideAt(x, y int) {
	i := c.idx(x, y)
	cell := c.current[i]
	switch {
	case cell.IsContinuation():
		if x > 0 {
			c.current[i-1] = blankCell
		}
		c.current[i] = blankCell
	case cell.Width == 2:
		c.current[i] = blankCell
		if x+1 < c.cols {
			c.current[i+1] = blankCell
		}
	}
}

// Draw writes s at (x, y) one grapheme cluster per cell (two for wide
// clusters) and returns the number of columns s spans. Anything outside the
// canvas is clipped silently. Draw does not wrap.
func (c *Canvas) Draw(x, y int, s string, style Style) int {
	col := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if w < 1 {
			w = 1
		}
		w = min(w, 2)

		if runes[0] == '\n' || runes[0] == '\r' || runes[0] == '\t' {
			runes = []rune{' '}
		}
		cell := Cell{Rune: runes[0], Style: style, Width: uint8(w)}
		if len(runes) > 1 {
			cell.Extra = string(runes[1:])
		}
		if col >= 0 && col+w <= c.cols {
			c.SetCell(col, y, cell)
		}
		col += w
	}
	return col - x
}

// Fill sets every cell of rect (clipped to the canvas) to r in style.
func (c *Canvas) Fill(rect Rect, r rune, style Style) {
	rect = rect.Intersect(c.Bounds())
	if rect.IsEmpty() {
		return
	}
	cell := NewCell(r, style)
	step := max(int(cell.Width), 1)
	for y := rect.Row; y < rect.Bottom(); y++ {
		for x := rect.Column; x+step <= rect.Right(); x += step {
			c.SetCell(x, y, cell)
		}
	}
}

// Clear blanks the current frame. The previous frame is untouched, so the
// next flush erases whatever was on screen.
func (c *Canvas) Clear() {
	for i := range c.current {
		c.current[i] = blankCell
	}
}

// Resize reallocates both frames blank at the new size and schedules a
// full repaint. Resizing to the current size does nothing.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	if cols == c.cols && rows == c.rows {
		return
	}
	c.allocate(cols, rows)
	c.fullRepaint = true
}

// Invalidate forces the next flush to repaint every cell, for use after
// something else has written to the terminal (for example a screen clear).
func (c *Canvas) Invalidate() {
	c.fullRepaint = true
}

func (c *Canvas) dirty(i int) bool {
	return c.fullRepaint || c.current[i] != c.previous[i]
}

// Flush encodes every dirty run of the current frame and writes it with one
// Write call. A frame identical to the previous one writes nothing. On a sink
// error the previous frame is left as it was and *SinkWriteError is returned.
func (c *Canvas) Flush() error {
	c.esc.Reset()
	for y := 0; y < c.rows; y++ {
		row := y * c.cols
		x := 0
		for x < c.cols {
			if !c.dirty(row + x) {
				x++
				continue
			}
			start := x
			for x < c.cols && c.dirty(row+x) {
				x++
			}
			c.encodeRun(y, start, x)
		}
	}

	if c.esc.Len() > 0 {
		if err := c.write(c.esc.Bytes()); err != nil {
			return err
		}
		copy(c.previous, c.current)
	}
	c.fullRepaint = false
	c.tick()
	return nil
}

// encodeRun emits the cells in [start, end) of row y as spans of identical
// style, each prefixed with a cursor position and a full SGR.
func (c *Canvas) encodeRun(y, start, end int) {
	row := y * c.cols
	// A run never begins on the right half of a wide character or ends on its
	// left half; widen it to whole characters.
	if c.current[row+start].IsContinuation() && start > 0 {
		start--
	}
	if c.current[row+end-1].Width == 2 && end < c.cols {
		end++
	}

	var spanStyle Style
	open := false
	for x := start; x < end; x++ {
		cell := c.current[row+x]
		if cell.IsContinuation() {
			continue
		}
		if !open || cell.Style != spanStyle {
			c.esc.MoveTo(x, y)
			c.esc.SetStyle(cell.Style, c.profile)
			spanStyle = cell.Style
			open = true
		}
		if cell.Rune == 0 {
			c.esc.WriteString(" ")
			continue
		}
		c.esc.WriteString(cell.text())
	}
}

func (c *Canvas) write(p []byte) error {
	n, err := c.out.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

// writeControl writes terminal control sequences built by fn in one Write.
// Only the scheduler uses it, so all output still goes through the canvas.
func (c *Canvas) writeControl(fn func(e *escBuilder)) error {
	e := newEscBuilder(64)
	fn(e)
	if e.Len() == 0 {
		return nil
	}
	return c.write(e.Bytes())
}

func (c *Canvas) tick() {
	now := c.now()
	if !c.lastFlush.IsZero() {
		if dt := now.Sub(c.lastFlush).Seconds(); dt > 0 {
			inst := 1 / dt
			if c.fps == 0 {
				c.fps = inst
			} else {
				c.fps = c.fps*0.9 + inst*0.1
			}
		}
	}
	c.lastFlush = now
	c.frames++
}

// Line returns row y of the current frame as text with trailing spaces
// removed. It is meant for tests and debugging.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.rows {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < c.cols; x++ {
		cell := c.current[y*c.cols+x]
		if cell.IsContinuation() {
			continue
		}
		if cell.Rune == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(cell.text())
	}
	return strings.TrimRight(sb.String(), " ")
}
