package tui

import "strconv"

// MouseButton represents which mouse button was involved in an event.
type MouseButton int

const (
	// MouseLeft is the left (primary) mouse button.
	MouseLeft MouseButton = iota
	// MouseMiddle is the middle mouse button (scroll wheel click).
	MouseMiddle
	// MouseRight is the right (secondary) mouse button.
	MouseRight
	// MouseNone indicates no button (plain motion, legacy release).
	MouseNone
	// MouseWheelUp is a scroll wheel up event.
	MouseWheelUp
	// MouseWheelDown is a scroll wheel down event.
	MouseWheelDown
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	case MouseNone:
		return "None"
	case MouseWheelUp:
		return "WheelUp"
	case MouseWheelDown:
		return "WheelDown"
	}
	return "Unknown"
}

// MouseAction represents the type of mouse transition.
type MouseAction int

const (
	// MousePressed indicates a button was pressed.
	MousePressed MouseAction = iota
	// MouseReleased indicates a button was released.
	MouseReleased
	// MouseDrag indicates motion while a button is held.
	MouseDrag
	// MouseMove indicates motion with no button held.
	MouseMove
	// MouseScroll indicates a wheel notch; see ScrollDelta.
	MouseScroll
)

// String returns the action name.
func (a MouseAction) String() string {
	switch a {
	case MousePressed:
		return "Pressed"
	case MouseReleased:
		return "Released"
	case MouseDrag:
		return "Drag"
	case MouseMove:
		return "Move"
	case MouseScroll:
		return "Scroll"
	}
	return "Unknown"
}

// MousePress represents a mouse report.
type MousePress struct {
	// X is the column position (0-indexed).
	X int
	// Y is the row position (0-indexed).
	Y int
	// Button is which mouse button was involved.
	Button MouseButton
	// Action is the transition kind.
	Action MouseAction
	// ScrollDelta is -1 for wheel up, +1 for wheel down, 0 otherwise.
	ScrollDelta int
	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier
	// MoveX and MoveY are the movement since the previous pointer report.
	// The dispatcher fills them in; the decoder leaves them zero.
	MoveX, MoveY int
}

// Kind implements Event.
func (MousePress) Kind() EventKind { return EventMousePress }

// Pressed reports whether this is a button press.
func (m MousePress) Pressed() bool {
	return m.Action == MousePressed
}

// Encode returns the SGR-1006 report a terminal would send for m.
func (m MousePress) Encode() []byte {
	var cb int
	switch m.Button {
	case MouseLeft:
		cb = 0
	case MouseMiddle:
		cb = 1
	case MouseRight:
		cb = 2
	case MouseNone:
		cb = 3
	case MouseWheelUp:
		cb = 64
	case MouseWheelDown:
		cb = 65
	}
	if m.Mod.Has(ModShift) {
		cb |= 4
	}
	if m.Mod.Has(ModAlt) {
		cb |= 8
	}
	if m.Mod.Has(ModCtrl) {
		cb |= 16
	}
	if m.Action == MouseDrag || m.Action == MouseMove {
		cb |= 32
	}

	final := byte('M')
	if m.Action == MouseReleased {
		final = 'm'
	}

	buf := make([]byte, 0, 16)
	buf = append(buf, '\x1b', '[', '<')
	buf = strconv.AppendInt(buf, int64(cb), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(m.X+1), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(m.Y+1), 10)
	return append(buf, final)
}
