package tui

import (
	"github.com/mattn/go-runewidth"
)

// Cell represents a single character cell in the canvas.
// Wide characters (CJK, emoji) occupy two cells; the first cell holds
// the rune, the following cell is a continuation with Width 0.
// Cells are comparable with ==.
type Cell struct {
	Rune  rune
	Extra string // combining runes that follow Rune in a grapheme cluster
	Style Style
	Width uint8 // 1 or 2; 0 for continuation
}

// blankCell is what a freshly allocated or cleared frame holds.
var blankCell = Cell{Rune: ' ', Width: 1}

// NewCell creates a new Cell with automatic width detection.
func NewCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Style: style,
		Width: uint8(RuneWidth(r)),
	}
}

// IsContinuation returns true if this cell is the second half of a wide character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// IsBlank returns true for a space with default styling.
func (c Cell) IsBlank() bool {
	return c == blankCell
}

// text returns the printable content of the cell.
func (c Cell) text() string {
	if c.Extra == "" {
		return string(c.Rune)
	}
	return string(c.Rune) + c.Extra
}

// RuneWidth returns the display width of a rune in terminal cells,
// clamped to 1 or 2. Control and zero-width runes still take a cell.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return min(w, 2)
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
