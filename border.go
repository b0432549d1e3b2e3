package tui

// BorderStyle selects the box-drawing characters of a border.
type BorderStyle int

const (
	// BorderNone draws nothing.
	BorderNone BorderStyle = iota
	// BorderSingle uses single-line box-drawing characters (─, │, ┌, etc.)
	BorderSingle
	// BorderDouble uses double-line box-drawing characters (═, ║, ╔, etc.)
	BorderDouble
	// BorderRounded uses rounded corner characters (─, │, ╭, ╮, ╰, ╯)
	BorderRounded
	// BorderThick uses heavy box-drawing characters (━, ┃, ┏, etc.)
	BorderThick
	// BorderASCII uses + - | for terminals without box-drawing glyphs.
	BorderASCII
)

// BorderChars holds the characters used to draw a border, clockwise from
// the top-left corner.
type BorderChars struct {
	TopLeft     rune
	Top         rune
	TopRight    rune
	Right       rune
	BottomRight rune
	Bottom      rune
	BottomLeft  rune
	Left        rune
}

var borderChars = map[BorderStyle]BorderChars{
	BorderSingle:  {'┌', '─', '┐', '│', '┘', '─', '└', '│'},
	BorderDouble:  {'╔', '═', '╗', '║', '╝', '═', '╚', '║'},
	BorderRounded: {'╭', '─', '╮', '│', '╯', '─', '╰', '│'},
	BorderThick:   {'┏', '━', '┓', '┃', '┛', '━', '┗', '┃'},
	BorderASCII:   {'+', '-', '+', '|', '+', '-', '+', '|'},
}

// Chars returns the characters for this border style. BorderNone and
// unknown styles return the zero value.
func (b BorderStyle) Chars() BorderChars {
	return borderChars[b]
}

// ParseBorderStyle maps a config name to a BorderStyle.
func ParseBorderStyle(name string) (BorderStyle, bool) {
	switch name {
	case "none", "":
		return BorderNone, true
	case "single", "sharp":
		return BorderSingle, true
	case "double":
		return BorderDouble, true
	case "rounded":
		return BorderRounded, true
	case "thick":
		return BorderThick, true
	case "ascii":
		return BorderASCII, true
	}
	return BorderNone, false
}

// DrawBorder outlines rect on the canvas. Only the outline is drawn; the
// interior is left alone. Cells outside the canvas are clipped, so a border
// partly off-screen still shows its visible edges. Rectangles smaller than
// 2x2 draw nothing.
func DrawBorder(c *Canvas, rect Rect, border BorderStyle, style Style) {
	if border == BorderNone || rect.Width < 2 || rect.Height < 2 {
		return
	}
	ch := border.Chars()

	left, top := rect.Column, rect.Row
	right, bottom := rect.Right()-1, rect.Bottom()-1

	for x := left + 1; x < right; x++ {
		c.SetCell(x, top, NewCell(ch.Top, style))
		c.SetCell(x, bottom, NewCell(ch.Bottom, style))
	}
	for y := top + 1; y < bottom; y++ {
		c.SetCell(left, y, NewCell(ch.Left, style))
		c.SetCell(right, y, NewCell(ch.Right, style))
	}
	c.SetCell(left, top, NewCell(ch.TopLeft, style))
	c.SetCell(right, top, NewCell(ch.TopRight, style))
	c.SetCell(left, bottom, NewCell(ch.BottomLeft, style))
	c.SetCell(right, bottom, NewCell(ch.BottomRight, style))
}
