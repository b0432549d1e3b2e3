package tui

import (
	"strconv"
)

// escBuilder efficiently builds ANSI escape sequences into one buffer.
// The canvas reuses a single builder so a frame is one allocation-free append.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a new escape sequence builder with the given initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built escape sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt writes an integer to the buffer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// decset writes CSI ? n h (enable) or CSI ? n l (disable).
func (e *escBuilder) decset(mode int, on bool) {
	e.writeCSI()
	e.buf = append(e.buf, '?')
	e.writeInt(mode)
	if on {
		e.buf = append(e.buf, 'h')
	} else {
		e.buf = append(e.buf, 'l')
	}
}

// MoveTo moves the cursor to the specified position.
// x and y are 0-indexed; ANSI sequences use 1-indexed positions.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the entire screen and homes the cursor.
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
	e.writeCSI()
	e.buf = append(e.buf, 'H')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.decset(25, false)
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.decset(25, true)
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.decset(1049, true)
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.decset(1049, false)
}

// EnableMouse enables button (1000) and drag (1002) tracking with
// SGR-1006 coordinates, which work beyond column 223.
func (e *escBuilder) EnableMouse() {
	e.decset(1000, true)
	e.decset(1002, true)
	e.decset(1006, true)
}

// DisableMouse disables mouse reporting in reverse order.
func (e *escBuilder) DisableMouse() {
	e.decset(1006, false)
	e.decset(1002, false)
	e.decset(1000, false)
}

// EnableBracketedPaste makes the terminal wrap pasted text in CSI 200~ / CSI 201~.
func (e *escBuilder) EnableBracketedPaste() {
	e.decset(2004, true)
}

// DisableBracketedPaste turns bracketed paste off.
func (e *escBuilder) DisableBracketedPaste() {
	e.decset(2004, false)
}

// ResetStyle resets all text attributes to default.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// SetStyle writes a full SGR for s. It always starts with a reset so the
// sequence does not depend on whatever style the terminal had before.
func (e *escBuilder) SetStyle(s Style, p Profile) {
	e.writeCSI()
	e.buf = append(e.buf, '0')

	for _, a := range attrTable {
		if s.Attrs&a.attr != 0 {
			e.buf = append(e.buf, ';', a.sgr)
		}
	}

	e.appendColor(p.Convert(s.Fg), true)
	e.appendColor(p.Convert(s.Bg), false)

	e.buf = append(e.buf, 'm')
}

// appendColor appends the SGR parameters for an already degraded color.
func (e *escBuilder) appendColor(c Color, fg bool) {
	base := 48
	if fg {
		base = 38
	}

	switch c.Type() {
	case ColorANSI:
		idx := int(c.Index())
		e.buf = append(e.buf, ';')
		switch {
		case idx < 8 && fg:
			e.writeInt(30 + idx)
		case idx < 8:
			e.writeInt(40 + idx)
		case idx < 16 && fg:
			e.writeInt(90 + idx - 8)
		case idx < 16:
			e.writeInt(100 + idx - 8)
		default:
			e.writeInt(base)
			e.buf = append(e.buf, ';', '5', ';')
			e.writeInt(idx)
		}

	case ColorRGB:
		r, g, b := c.RGB()
		e.buf = append(e.buf, ';')
		e.writeInt(base)
		e.buf = append(e.buf, ';', '2', ';')
		e.writeInt(int(r))
		e.buf = append(e.buf, ';')
		e.writeInt(int(g))
		e.buf = append(e.buf, ';')
		e.writeInt(int(b))
	}
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
