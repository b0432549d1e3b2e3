package tui

import (
	"slices"
	"strconv"

	"github.com/grindlemire/tuikit/internal/debug"
)

// dispatcher routes events to components and owns the focus state: at most
// one focused component, at most one active component (possibly the same
// one) and at most one component holding pointer capture. It is the only
// code that changes a component's State.
type dispatcher struct {
	root *Root

	focused  *Component
	active   *Component
	captured *Component

	lastX, lastY int
	havePointer  bool
}

func newDispatcher(root *Root) *dispatcher {
	return &dispatcher{root: root}
}

// dispatch routes one event. Transitions are total; nothing here fails.
func (d *dispatcher) dispatch(ev Event) {
	switch e := ev.(type) {
	case KeyPress:
		d.key(e)
	case MousePress:
		d.mouse(e)
	case Paste:
		if d.root.listeners.emit(EventPaste, e) {
			return
		}
		if d.focused != nil {
			d.focused.Emit(EventPaste, e)
		}
	case Resize:
		d.root.listeners.emit(EventResize, e)
		for _, c := range d.root.registry.all() {
			c.Emit(EventResize, e)
		}
	default:
		d.root.listeners.emit(ev.Kind(), ev)
	}
}

// key routes a key press: root bindings, then root listeners, then the
// focused component, then the built-in focus keys.
func (d *dispatcher) key(k KeyPress) {
	if d.root.bindings.dispatch(k) {
		return
	}
	if d.root.listeners.emit(EventKeyPress, k) {
		return
	}
	if d.focused != nil && d.focused.Emit(EventKeyPress, k) {
		return
	}

	switch {
	case k.Is(KeyTab, ModShift):
		d.focusPrev()
	case k.Is(KeyTab, ModNone):
		d.focusNext()
	case k.Is(KeyEscape):
		d.captured = nil
		if d.active != nil {
			d.set(d.focused, nil)
		}
	}
}

func (d *dispatcher) mouse(m MousePress) {
	switch m.Action {
	case MousePressed, MouseScroll:
	default:
		if d.havePointer {
			m.MoveX = m.X - d.lastX
			m.MoveY = m.Y - d.lastY
		}
	}
	d.lastX, d.lastY, d.havePointer = m.X, m.Y, true

	if d.root.listeners.emit(EventMousePress, m) {
		return
	}

	switch {
	case d.captured != nil && (m.Action == MouseDrag || m.Action == MouseMove || m.Action == MouseReleased):
		c := d.captured
		c.Emit(EventMousePress, m)
		if m.Action == MouseReleased {
			d.captured = nil
			if d.active == c {
				d.set(d.focused, nil)
			}
		}

	case m.Action == MousePressed:
		hit := d.hitTest(m.X, m.Y)
		if hit == nil {
			d.captured = nil
			d.set(nil, nil)
			return
		}
		d.captured = hit
		d.set(hit, hit)
		hit.Emit(EventMousePress, m)

	default:
		if hit := d.hitTest(m.X, m.Y); hit != nil {
			hit.Emit(EventMousePress, m)
		}
	}
}

// hitTest returns the topmost focusable component containing (x, y).
func (d *dispatcher) hitTest(x, y int) *Component {
	for _, c := range d.root.registry.hitOrder() {
		if c.focusable() && c.Rect().Contains(x, y) {
			return c
		}
	}
	return nil
}

// focusNext moves focus to the next focusable component in registration
// order, wrapping. With nothing focused it picks the first one.
func (d *dispatcher) focusNext() {
	d.cycle(1)
}

// focusPrev moves focus backwards; with nothing focused it picks the last one.
func (d *dispatcher) focusPrev() {
	d.cycle(-1)
}

func (d *dispatcher) cycle(dir int) {
	items := d.root.registry.focusable()
	n := len(items)
	if n == 0 {
		return
	}

	idx := slices.Index(items, d.focused)
	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+dir)%n + n) % n
	}
	d.set(items[idx], nil)
}

// set installs new focused and active components and emits stateChange on
// every component whose state changed.
func (d *dispatcher) set(focused, active *Component) {
	prevFocused, prevActive := d.focused, d.active
	d.focused, d.active = focused, active
	if prevFocused != focused || prevActive != active {
		debug.Log("focus: focused=%s active=%s", componentName(focused), componentName(active))
	}
	for _, c := range []*Component{prevFocused, prevActive, focused, active} {
		d.refresh(c)
	}
}

// refresh recomputes c's state and emits stateChange when it moved.
func (d *dispatcher) refresh(c *Component) {
	if c == nil || c.destroyed {
		return
	}
	next := StateBase
	switch {
	case c.disabled:
		next = StateDisabled
	case c == d.active:
		next = StateActive
	case c == d.focused:
		next = StateFocused
	}
	if next == c.state {
		return
	}
	prev := c.state
	c.state = next
	c.Emit(EventStateChange, StateChange{From: prev, To: next})
}

// revalidate drops focus, active and capture from a component that can no
// longer hold them, then refreshes its state.
func (d *dispatcher) revalidate(c *Component) {
	if !c.focusable() {
		if d.captured == c {
			d.captured = nil
		}
		focused, active := d.focused, d.active
		if focused == c {
			focused = nil
		}
		if active == c {
			active = nil
		}
		if focused != d.focused || active != d.active {
			d.set(focused, active)
		}
	}
	d.refresh(c)
}

// forget drops every reference to a destroyed component without emitting
// anything on it.
func (d *dispatcher) forget(c *Component) {
	if d.captured == c {
		d.captured = nil
	}
	if d.focused == c {
		d.focused = nil
	}
	if d.active == c {
		d.active = nil
	}
}

// focus gives c keyboard focus, clearing any active component.
// It reports false if c cannot take focus.
func (d *dispatcher) focus(c *Component) bool {
	if c == nil {
		d.set(nil, nil)
		return true
	}
	if c.root != d.root || !c.focusable() {
		return false
	}
	d.set(c, nil)
	return true
}

func componentName(c *Component) string {
	if c == nil {
		return "none"
	}
	return "#" + strconv.FormatUint(uint64(c.id), 10)
}
