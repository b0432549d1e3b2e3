package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tui "github.com/grindlemire/tuikit"
)

func newTestScene(t *testing.T) (*tui.Root, *scene) {
	t.Helper()
	canvas := tui.NewCanvas(&bytes.Buffer{}, 80, 24, tui.WithProfile(tui.ProfileTrueColor))
	root := tui.NewRoot(canvas)
	s, err := buildScene(root, tui.DefaultConfig())
	require.NoError(t, err)
	root.Update()
	root.Draw()
	return root, s
}

func TestScene_ButtonPressUpdatesStatus(t *testing.T) {
	root, s := newTestScene(t)

	root.Dispatch(
		tui.MousePress{X: 16, Y: 4, Action: tui.MousePressed},
		tui.MousePress{X: 16, Y: 4, Action: tui.MouseReleased},
	)
	root.Update()
	root.Draw()

	assert.Equal(t, 1, s.presses)
	assert.Contains(t, root.Canvas().Line(0), "pressed 1 times")
}

func TestScene_DragButtonFollowsPointer(t *testing.T) {
	root, s := newTestScene(t)
	start := s.dragButton.Rect()

	root.Dispatch(
		tui.MousePress{X: 31, Y: 4, Action: tui.MousePressed},
		tui.MousePress{X: 35, Y: 6, Action: tui.MouseDrag},
	)
	root.Update()

	assert.Equal(t, start.Translate(4, 2), s.dragButton.Rect())
}

func TestScene_SliderDragUpdatesStatus(t *testing.T) {
	root, s := newTestScene(t)

	root.Dispatch(
		tui.MousePress{X: 63, Y: 3, Action: tui.MousePressed},
		tui.MousePress{X: 65, Y: 3, Action: tui.MouseDrag},
	)
	root.Update()
	root.Draw()

	assert.Equal(t, 7.0, s.hSlider.Value())
	assert.Contains(t, root.Canvas().Line(0), "sliders 7 / 5")
}

func TestScene_TabCyclesInteractiveWidgets(t *testing.T) {
	root, s := newTestScene(t)

	root.Dispatch(tui.KeyPress{Key: tui.KeyTab})
	assert.Equal(t, s.box.Component, root.Focused())

	root.Dispatch(tui.KeyPress{Key: tui.KeyTab})
	assert.Equal(t, s.button.Component, root.Focused())

	root.Dispatch(tui.KeyPress{Key: tui.KeyTab, Mod: tui.ModShift}, tui.KeyPress{Key: tui.KeyTab, Mod: tui.ModShift})
	assert.Equal(t, s.vSlider.Component, root.Focused())
}
