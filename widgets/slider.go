package widgets

import (
	"fmt"
	"math"

	tui "github.com/grindlemire/tuikit"
)

// Direction is the axis a slider moves along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// SliderOptions configures NewSlider.
type SliderOptions struct {
	Rect   tui.RectProvider
	Theme  tui.Theme
	ZIndex int
	// ThumbTheme styles the thumb. Unset states fall back like any Theme;
	// the zero value draws a reversed cell.
	ThumbTheme tui.Theme
	Value      float64
	Min        float64
	Max        float64
	// Step is the change per cell of drag or per arrow key. Zero means 1.
	Step      float64
	Direction Direction
	Frame     FrameOptions
}

// Slider is an interactive box with a thumb. While the slider is active,
// dragging moves the value by Step per cell of pointer movement along its
// axis; arrow keys step it while focused. The value always stays within
// [Min, Max] and every change emits ValueChange{Value: float64}.
type Slider struct {
	*Box

	value, min, max, step float64
	direction             Direction
	thumb                 tui.Theme
}

// NewSlider creates a slider under parent.
func NewSlider(parent tui.Parent, opts SliderOptions) (*Slider, error) {
	if opts.Max < opts.Min {
		return nil, fmt.Errorf("slider: max %v is below min %v", opts.Max, opts.Min)
	}
	if opts.Step < 0 {
		return nil, fmt.Errorf("slider: negative step %v", opts.Step)
	}
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

	s := &Slider{
		Box:       box,
		min:       opts.Min,
		max:       opts.Max,
		step:      opts.Step,
		direction: opts.Direction,
		thumb:     opts.ThumbTheme,
	}
	if s.step == 0 {
		s.step = 1
	}
	if !s.thumb.Has(tui.StateBase) {
		s.thumb = s.thumb.With(tui.StateBase, tui.NewStyle().Reverse())
	}
	s.value = s.clamp(opts.Value)
	box.content = s.drawThumb

	s.On(tui.EventMousePress, s.onMouse)
	s.On(tui.EventKeyPress, s.onKey)
	return s, nil
}

// Value returns the current value.
func (s *Slider) Value() float64 { return s.value }

// Min returns the lower bound.
func (s *Slider) Min() float64 { return s.min }

// Max returns the upper bound.
func (s *Slider) Max() float64 { return s.max }

// Step returns the step.
func (s *Slider) Step() float64 { return s.step }

// SetValue clamps v into range and emits ValueChange if the value moved.
func (s *Slider) SetValue(v float64) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	s.Emit(tui.EventValueChange, tui.ValueChange{Value: v})
}

// OnChange registers fn to run with every new value.
func (s *Slider) OnChange(fn func(float64)) tui.ListenerID {
	return s.On(tui.EventValueChange, func(ev tui.Event) bool {
		if v, ok := ev.(tui.ValueChange).Value.(float64); ok {
			fn(v)
		}
		return false
	})
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.min, math.Min(s.max, v))
}

func (s *Slider) onMouse(ev tui.Event) bool {
	m := ev.(tui.MousePress)
	if m.Action != tui.MouseDrag || s.State() != tui.StateActive {
		return m.Action == tui.MousePressed
	}
	delta := m.MoveX
	if s.direction == Vertical {
		delta = m.MoveY
	}
	if delta != 0 {
		s.SetValue(s.value + float64(delta)*s.step)
	}
	return true
}

func (s *Slider) onKey(ev tui.Event) bool {
	k := ev.(tui.KeyPress)
	if k.Mod != tui.ModNone {
		return false
	}
	inc, dec := tui.KeyRight, tui.KeyLeft
	if s.direction == Vertical {
		inc, dec = tui.KeyDown, tui.KeyUp
	}
	switch k.Key {
	case inc:
		s.SetValue(s.value + s.step)
	case dec:
		s.SetValue(s.value - s.step)
	case tui.KeyHome:
		s.SetValue(s.min)
	case tui.KeyEnd:
		s.SetValue(s.max)
	default:
		return false
	}
	return true
}

// normalized maps the value onto [0, 1].
func (s *Slider) normalized() float64 {
	if s.max == s.min {
		return 0
	}
	return (s.value - s.min) / (s.max - s.min)
}

func (s *Slider) drawThumb(canvas *tui.Canvas, rect tui.Rect, _ tui.Style) {
	if rect.IsEmpty() {
		return
	}
	style := s.thumb.Style(s.State())
	n := s.normalized()
	switch s.direction {
	case Horizontal:
		x := rect.Column + int(math.Round(n*float64(rect.Width-1)))
		canvas.Fill(tui.NewRect(x, rect.Row, 1, rect.Height), ' ', style)
	case Vertical:
		y := rect.Row + int(math.Round(n*float64(rect.Height-1)))
		canvas.Fill(tui.NewRect(rect.Column, y, rect.Width, 1), ' ', style)
	}
}
