package widgets

import (
	"strings"

	tui "github.com/grindlemire/tuikit"
)

// ButtonOptions configures NewButton.
type ButtonOptions struct {
	Rect   tui.RectProvider
	Theme  tui.Theme
	ZIndex int
	Label  string
	Frame  FrameOptions
}

// Button is an interactive box with a centered label. It is pressed by a
// click released inside it, or by Enter or Space while focused. A press
// emits ValueChange{Value: true}.
type Button struct {
	*Box
	label string
}

// NewButton creates a button under parent.
func NewButton(parent tui.Parent, opts ButtonOptions) (*Button, error) {
	box, err := NewBox(parent, BoxOptions{
		Rect:        opts.Rect,
		Theme:       opts.Theme,
		ZIndex:      opts.ZIndex,
		Interactive: true,
		Frame:       opts.Frame,
	})
	if err != nil {
		return nil, err
	}
	b := &Button{Box: box, label: opts.Label}
	box.content = b.drawLabel

	b.On(tui.EventMousePress, func(ev tui.Event) bool {
		m := ev.(tui.MousePress)
		if m.Action == tui.MouseReleased && b.State() == tui.StateActive && b.Rect().Contains(m.X, m.Y) {
			b.Press()
			return true
		}
		return false
	})
	b.On(tui.EventKeyPress, func(ev tui.Event) bool {
		k := ev.(tui.KeyPress)
		if k.Is(tui.KeyEnter) || k.IsRune(' ') {
			b.Press()
			return true
		}
		return false
	})
	return b, nil
}

// Label returns the label text.
func (b *Button) Label() string {
	return b.label
}

// SetLabel changes the label text. Lines are separated by "\n".
func (b *Button) SetLabel(s string) {
	b.label = s
}

// Press emits the press event.
func (b *Button) Press() {
	b.Emit(tui.EventValueChange, tui.ValueChange{Value: true})
}

// OnPress registers fn to run on every press.
func (b *Button) OnPress(fn func()) tui.ListenerID {
	return b.On(tui.EventValueChange, func(tui.Event) bool {
		fn()
		return false
	})
}

func (b *Button) drawLabel(canvas *tui.Canvas, rect tui.Rect, style tui.Style) {
	if b.label == "" {
		return
	}
	lines := strings.Split(b.label, "\n")
	top := rect.Row + (rect.Height-len(lines))/2
	for i, line := range lines {
		y := top + i
		if y < rect.Row || y >= rect.Bottom() {
			continue
		}
		w := tui.StringWidth(line)
		x := rect.Column + max((rect.Width-w)/2, 0)
		drawClipped(canvas, x, y, line, style, rect)
	}
}

// drawClipped draws s but never past the right edge of clip.
func drawClipped(canvas *tui.Canvas, x, y int, s string, style tui.Style, clip tui.Rect) {
	var sb strings.Builder
	width := 0
	for _, r := range s {
		rw := tui.RuneWidth(r)
		if x+width+rw > clip.Right() {
			break
		}
		sb.WriteRune(r)
		width += rw
	}
	canvas.Draw(x, y, sb.String(), style)
}
