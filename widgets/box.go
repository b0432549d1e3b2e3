package widgets

import (
	tui "github.com/grindlemire/tuikit"
	"github.com/grindlemire/tuikit/internal/debug"
)

// BoxOptions configures NewBox.
type BoxOptions struct {
	Rect        tui.RectProvider
	Theme       tui.Theme
	ZIndex      int
	Interactive bool
	Frame       FrameOptions
}

// Box fills its rectangle with its themed style and can carry a Frame
// drawn one cell outside it.
type Box struct {
	*tui.Component

	frameOpts FrameOptions
	frame     *Frame

	// content draws on top of the fill; widgets built on Box set it.
	content func(canvas *tui.Canvas, rect tui.Rect, style tui.Style)
}

// NewBox creates a box under parent. Boxes are not interactive unless
// opts.Interactive is set.
func NewBox(parent tui.Parent, opts BoxOptions) (*Box, error) {
	b := &Box{frameOpts: opts.Frame}
	c, err := parent.Root().NewComponent(parent, tui.ComponentOptions{
		Rect:        opts.Rect,
		Theme:       opts.Theme,
		ZIndex:      opts.ZIndex,
		Interactive: opts.Interactive,
		Update:      b.update,
		Draw:        b.draw,
	})
	if err != nil {
		return nil, err
	}
	b.Component = c
	return b, nil
}

// SetFrame changes the frame settings. The frame is created or removed on
// the next update.
func (b *Box) SetFrame(opts FrameOptions) {
	b.frameOpts = opts
	if b.frame != nil {
		b.frame.border = opts.Border
		if opts.Theme != nil {
			b.frame.SetTheme(*opts.Theme)
		} else {
			b.frame.theme = nil
		}
	}
}

// Frame returns the current frame, or nil.
func (b *Box) Frame() *Frame {
	return b.frame
}

func (b *Box) update(*tui.Component) {
	switch {
	case b.frame != nil && !b.frameOpts.Enabled:
		b.frame.Destroy()
		b.frame = nil
	case b.frame == nil && b.frameOpts.Enabled:
		f, err := NewFrame(b, b.Component, b.frameOpts.Border, b.frameOpts.Theme)
		if err != nil {
			debug.Log("box %d: create frame: %v", b.ID(), err)
			return
		}
		b.frame = f
	}
}

func (b *Box) draw(c *tui.Component, canvas *tui.Canvas) {
	rect := c.Rect()
	style := c.Style()
	canvas.Fill(rect, ' ', style)
	if b.content != nil {
		b.content(canvas, rect, style)
	}
}
