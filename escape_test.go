package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscBuilder_Sequences(t *testing.T) {
	type tc struct {
		build func(e *escBuilder)
		want  string
	}

	tests := map[string]tc{
		"move to origin": {
			build: func(e *escBuilder) { e.MoveTo(0, 0) },
			want:  "\x1b[1;1H",
		},
		"move is row then column": {
			build: func(e *escBuilder) { e.MoveTo(9, 4) },
			want:  "\x1b[5;10H",
		},
		"clear screen": {
			build: func(e *escBuilder) { e.ClearScreen() },
			want:  "\x1b[2J\x1b[H",
		},
		"cursor": {
			build: func(e *escBuilder) {
				e.HideCursor()
				e.ShowCursor()
			},
			want: "\x1b[?25l\x1b[?25h",
		},
		"alt screen": {
			build: func(e *escBuilder) {
				e.EnterAltScreen()
				e.ExitAltScreen()
			},
			want: "\x1b[?1049h\x1b[?1049l",
		},
		"mouse on and off": {
			build: func(e *escBuilder) {
				e.EnableMouse()
				e.DisableMouse()
			},
			want: "\x1b[?1000h\x1b[?1002h\x1b[?1006h\x1b[?1006l\x1b[?1002l\x1b[?1000l",
		},
		"bracketed paste": {
			build: func(e *escBuilder) {
				e.EnableBracketedPaste()
				e.DisableBracketedPaste()
			},
			want: "\x1b[?2004h\x1b[?2004l",
		},
		"reset": {
			build: func(e *escBuilder) { e.ResetStyle() },
			want:  "\x1b[0m",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEscBuilder(16)
			tt.build(e)
			assert.Equal(t, tt.want, string(e.Bytes()))
		})
	}
}

func TestEscBuilder_SetStyle(t *testing.T) {
	type tc struct {
		style   Style
		profile Profile
		want    string
	}

	tests := map[string]tc{
		"default": {
			style: NewStyle(), profile: ProfileTrueColor,
			want: "\x1b[0m",
		},
		"every attribute": {
			style:   Style{Attrs: AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse | AttrStrikethrough},
			profile: ProfileTrueColor,
			want:    "\x1b[0;1;2;3;4;5;7;9m",
		},
		"basic colors": {
			style: NewStyle().Foreground(Green).Background(Black), profile: ProfileTrueColor,
			want: "\x1b[0;32;40m",
		},
		"rgb degraded to 16": {
			style: NewStyle().Background(RGBColor(30, 110, 200)), profile: ProfileANSI16,
			want: "\x1b[0;44m",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEscBuilder(16)
			e.SetStyle(tt.style, tt.profile)
			assert.Equal(t, tt.want, string(e.Bytes()))
		})
	}
}

func TestEscBuilder_Reset(t *testing.T) {
	e := newEscBuilder(4)
	e.WriteString("abc")
	assert.Equal(t, 3, e.Len())
	e.Reset()
	assert.Zero(t, e.Len())
}
