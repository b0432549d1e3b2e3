package main

import (
	"fmt"

	tui "github.com/grindlemire/tuikit"
	"github.com/grindlemire/tuikit/widgets"
)

// scene holds the demo's widgets so tests can poke at them.
type scene struct {
	box        *widgets.Box
	button     *widgets.Button
	dragButton *widgets.Button
	hSlider    *widgets.Slider
	vSlider    *widgets.Slider
	status     *tui.Component

	presses int
	message string
}

func buildScene(root *tui.Root, cfg tui.Config) (*scene, error) {
	root.SetBackground(tui.NewStyle().Background(tui.RGBColor(0x33, 0x33, 0x33)))

	base := tui.NewTheme(tui.NewStyle().Background(tui.BrightBlue)).
		With(tui.StateFocused, tui.NewStyle().Background(tui.Cyan)).
		With(tui.StateActive, tui.NewStyle().Background(tui.Blue))

	themes := map[string]tui.Theme{}
	for _, name := range []string{"box", "frame", "button", "slider", "slider_thumb"} {
		fallback := base
		if name == "slider_thumb" {
			fallback = tui.NewTheme(tui.NewStyle().Background(tui.Magenta))
		}
		t, err := cfg.Theme(name, fallback)
		if err != nil {
			return nil, err
		}
		themes[name] = t
	}
	frameTheme := themes["frame"]
	frame := widgets.FrameOptions{Enabled: true, Border: tui.BorderRounded, Theme: &frameTheme}

	s := &scene{message: "Tab to move focus, drag the sliders"}
	var err error

	s.box, err = widgets.NewBox(root, widgets.BoxOptions{
		Rect:        tui.NewRect(2, 3, 10, 5),
		Theme:       themes["box"],
		Interactive: true,
		Frame:       frame,
	})
	if err != nil {
		return nil, err
	}

	s.button, err = widgets.NewButton(root, widgets.ButtonOptions{
		Rect:  tui.NewRect(15, 3, 10, 5),
		Theme: themes["button"],
		Label: "Press",
		Frame: frame,
	})
	if err != nil {
		return nil, err
	}
	s.button.OnPress(func() {
		s.presses++
		s.message = fmt.Sprintf("pressed %d times", s.presses)
	})

	if err := s.addDragButton(root, themes["button"], frame); err != nil {
		return nil, err
	}

	s.hSlider, err = widgets.NewSlider(root, widgets.SliderOptions{
		Rect:       tui.NewRect(61, 3, 10, 2),
		Theme:      themes["slider"],
		ThumbTheme: themes["slider_thumb"],
		Value:      5,
		Min:        1,
		Max:        10,
		Step:       1,
		Frame:      frame,
	})
	if err != nil {
		return nil, err
	}
	s.vSlider, err = widgets.NewSlider(root, widgets.SliderOptions{
		Rect:       tui.NewRect(61, 10, 2, 5),
		Theme:      themes["slider"],
		ThumbTheme: themes["slider_thumb"],
		Value:      5,
		Min:        1,
		Max:        10,
		Step:       1,
		Direction:  widgets.Vertical,
		Frame:      frame,
	})
	if err != nil {
		return nil, err
	}
	for _, sl := range []*widgets.Slider{s.hSlider, s.vSlider} {
		sl.OnChange(func(float64) {
			s.message = fmt.Sprintf("sliders %.0f / %.0f", s.hSlider.Value(), s.vSlider.Value())
		})
	}

	s.status, err = s.addStatus(root)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// addDragButton adds a button that follows the pointer while it is held.
func (s *scene) addDragButton(root *tui.Root, theme tui.Theme, frame widgets.FrameOptions) error {
	pos := tui.NewRect(30, 3, 14, 3)
	b, err := widgets.NewButton(root, widgets.ButtonOptions{
		Rect:  tui.RectFunc(func() tui.Rect { return pos }),
		Theme: theme,
		Label: "Drag me",
		Frame: frame,
	})
	if err != nil {
		return err
	}
	b.On(tui.EventMousePress, func(ev tui.Event) bool {
		m := ev.(tui.MousePress)
		if m.Action == tui.MouseDrag && b.State() == tui.StateActive {
			pos = pos.Translate(m.MoveX, m.MoveY)
		}
		return false
	})
	s.dragButton = b
	return nil
}

// addStatus adds the status line and the FPS counter along the top row.
func (s *scene) addStatus(root *tui.Root) (*tui.Component, error) {
	canvas := root.Canvas()
	style := tui.NewStyle().Foreground(tui.BrightWhite).Background(tui.RGBColor(0x33, 0x33, 0x33))

	var last tui.Tick
	root.On(tui.EventTick, func(ev tui.Event) bool {
		last = ev.(tui.Tick)
		return false
	})

	return root.NewComponent(nil, tui.ComponentOptions{
		Rect: tui.RectFunc(func() tui.Rect {
			cols, _ := canvas.Size()
			return tui.NewRect(0, 0, cols, 1)
		}),
		ZIndex: 100,
		Draw: func(c *tui.Component, canvas *tui.Canvas) {
			rect := c.Rect()
			canvas.Draw(rect.Column+1, rect.Row, s.message, style)
			fps := fmt.Sprintf("%5.1f fps  frame %d", canvas.FPS(), last.Frame)
			if last.Skipped > 0 {
				fps = fmt.Sprintf("%s  skipped %d", fps, last.Skipped)
			}
			canvas.Draw(rect.Right()-tui.StringWidth(fps)-1, rect.Row, fps, style)
		},
	})
}
