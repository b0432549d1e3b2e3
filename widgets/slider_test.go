package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tui "github.com/grindlemire/tuikit"
)

func newTestSlider(t *testing.T, root *tui.Root, dir Direction) *Slider {
	t.Helper()
	rect := tui.NewRect(0, 0, 10, 2)
	if dir == Vertical {
		rect = tui.NewRect(0, 0, 2, 10)
	}
	s, err := NewSlider(root, SliderOptions{
		Rect:      rect,
		Value:     5,
		Min:       1,
		Max:       10,
		Step:      1,
		Direction: dir,
	})
	require.NoError(t, err)
	return s
}

func TestSlider_DragWhileActive(t *testing.T) {
	root, _ := newTestRoot(t, 20, 12)
	s := newTestSlider(t, root, Horizontal)

	var changes []float64
	s.OnChange(func(v float64) { changes = append(changes, v) })

	root.Dispatch(
		tui.MousePress{X: 3, Y: 0, Button: tui.MouseLeft, Action: tui.MousePressed},
		tui.MousePress{X: 5, Y: 0, Button: tui.MouseLeft, Action: tui.MouseDrag},
	)

	assert.Equal(t, tui.StateActive, s.State())
	assert.Equal(t, 7.0, s.Value())
	assert.Equal(t, []float64{7}, changes)

	// Capture keeps the drag going outside the rectangle.
	root.Dispatch(tui.MousePress{X: 15, Y: 4, Button: tui.MouseLeft, Action: tui.MouseDrag})
	assert.Equal(t, 10.0, s.Value())

	root.Dispatch(tui.MousePress{X: 15, Y: 4, Button: tui.MouseLeft, Action: tui.MouseReleased})
	assert.Equal(t, tui.StateFocused, s.State())

	// No longer active: drags elsewhere leave the value alone.
	root.Dispatch(tui.MousePress{X: 2, Y: 0, Button: tui.MouseLeft, Action: tui.MouseDrag})
	assert.Equal(t, 10.0, s.Value())
	assert.Equal(t, []float64{7, 10}, changes)
}

func TestSlider_VerticalUsesRows(t *testing.T) {
	root, _ := newTestRoot(t, 20, 12)
	s := newTestSlider(t, root, Vertical)

	root.Dispatch(
		tui.MousePress{X: 0, Y: 4, Action: tui.MousePressed},
		tui.MousePress{X: 9, Y: 1, Action: tui.MouseDrag},
	)

	assert.Equal(t, 2.0, s.Value())
}

func TestSlider_Keys(t *testing.T) {
	type tc struct {
		dir   Direction
		keys  []tui.KeyPress
		value float64
	}

	tests := map[string]tc{
		"right steps up": {
			dir:   Horizontal,
			keys:  []tui.KeyPress{{Key: tui.KeyRight}, {Key: tui.KeyRight}},
			value: 7,
		},
		"left steps down": {
			dir:   Horizontal,
			keys:  []tui.KeyPress{{Key: tui.KeyLeft}},
			value: 4,
		},
		"down steps up vertically": {
			dir:   Vertical,
			keys:  []tui.KeyPress{{Key: tui.KeyDown}},
			value: 6,
		},
		"home and end": {
			dir:   Horizontal,
			keys:  []tui.KeyPress{{Key: tui.KeyEnd}},
			value: 10,
		},
		"home": {
			dir:   Horizontal,
			keys:  []tui.KeyPress{{Key: tui.KeyHome}, {Key: tui.KeyLeft}},
			value: 1,
		},
		"modified arrows ignored": {
			dir:   Horizontal,
			keys:  []tui.KeyPress{{Key: tui.KeyRight, Mod: tui.ModCtrl}},
			value: 5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, _ := newTestRoot(t, 20, 12)
			s := newTestSlider(t, root, tt.dir)
			require.True(t, root.Focus(s.Component))

			for _, k := range tt.keys {
				root.Dispatch(k)
			}
			assert.Equal(t, tt.value, s.Value())
		})
	}
}

func TestSlider_SetValueClamps(t *testing.T) {
	root, _ := newTestRoot(t, 20, 12)
	s := newTestSlider(t, root, Horizontal)

	emitted := 0
	s.OnChange(func(float64) { emitted++ })

	s.SetValue(-4)
	assert.Equal(t, 1.0, s.Value())
	s.SetValue(1)
	assert.Equal(t, 1, emitted, "unchanged value must not emit")
	s.SetValue(99)
	assert.Equal(t, 10.0, s.Value())
	assert.Equal(t, 2, emitted)
}

func TestNewSlider_Errors(t *testing.T) {
	type tc struct {
		opts SliderOptions
	}

	tests := map[string]tc{
		"max below min": {opts: SliderOptions{Min: 5, Max: 1}},
		"negative step": {opts: SliderOptions{Min: 0, Max: 1, Step: -1}},
		"negative size": {opts: SliderOptions{Max: 1, Rect: tui.NewRect(0, 0, -1, 1)}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, _ := newTestRoot(t, 20, 12)
			_, err := NewSlider(root, tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestSlider_InitialValueClamped(t *testing.T) {
	root, _ := newTestRoot(t, 20, 12)
	s, err := NewSlider(root, SliderOptions{Value: 50, Min: 0, Max: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Value())
	assert.Equal(t, 1.0, s.Step())
}

func TestSlider_DrawThumb(t *testing.T) {
	type tc struct {
		dir    Direction
		value  float64
		thumbX int
		thumbY int
	}

	tests := map[string]tc{
		"horizontal min":  {dir: Horizontal, value: 1, thumbX: 0, thumbY: 0},
		"horizontal max":  {dir: Horizontal, value: 10, thumbX: 9, thumbY: 1},
		"horizontal five": {dir: Horizontal, value: 5, thumbX: 4, thumbY: 1},
		"vertical max":    {dir: Vertical, value: 10, thumbX: 1, thumbY: 9},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, _ := newTestRoot(t, 20, 12)
			s := newTestSlider(t, root, tt.dir)
			s.SetValue(tt.value)
			tick(root)

			cell := root.Canvas().Cell(tt.thumbX, tt.thumbY)
			assert.True(t, cell.Style.HasAttr(tui.AttrReverse))
		})
	}
}

func TestSlider_ThumbThemeFollowsState(t *testing.T) {
	root, _ := newTestRoot(t, 20, 12)
	base := tui.RGBColor(1, 1, 1)
	active := tui.RGBColor(2, 2, 2)
	s, err := NewSlider(root, SliderOptions{
		Rect:       tui.NewRect(0, 0, 10, 1),
		Min:        0,
		Max:        9,
		ThumbTheme: tui.NewTheme(tui.NewStyle().Background(base)).With(tui.StateActive, tui.NewStyle().Background(active)),
	})
	require.NoError(t, err)

	tick(root)
	assert.Equal(t, base, root.Canvas().Cell(0, 0).Style.Bg)

	root.Dispatch(tui.MousePress{X: 5, Y: 0, Action: tui.MousePressed})
	require.Equal(t, tui.StateActive, s.State())
	tick(root)
	assert.Equal(t, active, root.Canvas().Cell(0, 0).Style.Bg)
}
