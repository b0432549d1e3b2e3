package tui

import (
	"fmt"
	"strings"
)

// Attr is a set of SGR text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough

	// AttrNone is the empty set.
	AttrNone Attr = 0
)

// attrTable lists every attribute with its SGR parameter and its name in
// config files, in the order SetStyle emits them.
var attrTable = [...]struct {
	attr Attr
	sgr  byte
	name string
}{
	{AttrBold, '1', "bold"},
	{AttrDim, '2', "dim"},
	{AttrItalic, '3', "italic"},
	{AttrUnderline, '4', "underline"},
	{AttrBlink, '5', "blink"},
	{AttrReverse, '7', "reverse"},
	{AttrStrikethrough, '9', "strikethrough"},
}

// ParseAttr looks up an attribute by its config name, ignoring case.
func ParseAttr(name string) (Attr, error) {
	for _, a := range attrTable {
		if strings.EqualFold(name, a.name) {
			return a.attr, nil
		}
	}
	return AttrNone, fmt.Errorf("unknown attribute %q", name)
}

// String joins the attribute names with "|".
func (a Attr) String() string {
	if a == AttrNone {
		return "none"
	}
	var names []string
	for _, e := range attrTable {
		if a&e.attr != 0 {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, "|")
}

// Style is what a cell is painted with. The zero value is the terminal
// default. Styles are compared with == when the canvas diffs frames.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// NewStyle returns the default style.
func NewStyle() Style {
	return Style{}
}

// Foreground returns s with fg c.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns s with bg c.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// With returns s with attributes a added.
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Without returns s with attributes a cleared.
func (s Style) Without(a Attr) Style {
	s.Attrs &^= a
	return s
}

// HasAttr reports whether every attribute in a is set.
func (s Style) HasAttr(a Attr) bool {
	return s.Attrs&a == a
}

// Shorthands for With.
func (s Style) Bold() Style          { return s.With(AttrBold) }
func (s Style) Dim() Style           { return s.With(AttrDim) }
func (s Style) Italic() Style        { return s.With(AttrItalic) }
func (s Style) Underline() Style     { return s.With(AttrUnderline) }
func (s Style) Blink() Style         { return s.With(AttrBlink) }
func (s Style) Reverse() Style       { return s.With(AttrReverse) }
func (s Style) Strikethrough() Style { return s.With(AttrStrikethrough) }
