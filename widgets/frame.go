package widgets

import (
	tui "github.com/grindlemire/tuikit"
)

// FrameOptions controls the frame of a Box.
type FrameOptions struct {
	Enabled bool
	Border  tui.BorderStyle
	// Theme overrides the box theme for the border. Left nil, the border
	// follows the box theme as it changes.
	Theme *tui.Theme
}

// Frame is a border that follows its target's rectangle, one cell outside
// it, and mirrors the target's state and z-index. The target is looked up
// on every tick, so moving, resizing or restacking the target carries the
// frame along.
type Frame struct {
	*tui.Component
	border tui.BorderStyle
	// theme pins the border theme; nil uses the target's.
	theme  *tui.Theme
}

// NewFrame creates a frame owned by parent and tracking target. A nil theme
// makes the frame follow the target's theme.
func NewFrame(parent tui.Parent, target *tui.Component, border tui.BorderStyle, theme *tui.Theme) (*Frame, error) {
	root := parent.Root()
	f := &Frame{border: border, theme: theme}
	initial := target.Theme()
	if theme != nil {
		initial = *theme
	}
	rect := tui.NewComputed(root, func() tui.Rect {
		if target.Destroyed() {
			return tui.Rect{}
		}
		return target.Rect().Outset(1)
	})
	c, err := root.NewComponent(parent, tui.ComponentOptions{
		Rect:   rect,
		Theme:  initial,
		ZIndex: target.ZIndex(),
		Target: target,
		Update: f.update,
		Draw:   f.draw,
	})
	if err != nil {
		return nil, err
	}
	f.Component = c
	return f, nil
}

// Border returns the border style.
func (f *Frame) Border() tui.BorderStyle {
	return f.border
}

// SetTheme pins the border theme, detaching it from the target's.
func (f *Frame) SetTheme(t tui.Theme) {
	f.theme = &t
	f.Component.SetTheme(t)
}

func (f *Frame) update(c *tui.Component) {
	t := c.Target()
	if t == nil {
		return
	}
	c.SetZIndex(t.ZIndex())
	if f.theme == nil {
		c.SetTheme(t.Theme())
	}
}

func (f *Frame) draw(c *tui.Component, canvas *tui.Canvas) {
	state := c.State()
	if t := c.Target(); t != nil {
		state = t.State()
	}
	tui.DrawBorder(canvas, c.Rect(), f.border, c.Theme().Style(state))
}
