package widgets

import (
	"bytes"
	"testing"

	tui "github.com/grindlemire/tuikit"
)

func newTestRoot(t *testing.T, cols, rows int) (*tui.Root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	canvas := tui.NewCanvas(&out, cols, rows, tui.WithProfile(tui.ProfileTrueColor))
	return tui.NewRoot(canvas), &out
}

// tick runs one update and draw pass the way the scheduler does.
func tick(root *tui.Root) {
	root.Update()
	root.Draw()
}
