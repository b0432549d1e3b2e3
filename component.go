package tui

import (
	"slices"

	"github.com/grindlemire/tuikit/internal/debug"
)

// ComponentID identifies a component within its Root.
type ComponentID uint64

// Parent owns components: either the Root or another Component. Destroying
// a parent destroys everything it owns.
type Parent interface {
	Root() *Root
	adopt(c *Component)
	disown(c *Component)
	alive() bool
}

// ComponentOptions configures NewComponent. The zero value is a visible,
// non-interactive component with an empty rectangle.
type ComponentOptions struct {
	// Rect supplies the geometry: a plain Rect, a *Computed[Rect] or a RectFunc.
	Rect        RectProvider
	Theme       Theme
	ZIndex      int
	Hidden      bool
	Interactive bool
	Disabled    bool
	// Target is a non-owning reference to another component, typically used
	// by decorations that follow it.
	Target *Component
	Update func(c *Component)
	Draw   func(c *Component, canvas *Canvas)
}

// Component is a positioned, themed and stateful node registered with a Root.
// Components are created with Root.NewComponent and must only be touched on
// the goroutine that runs the scheduler.
type Component struct {
	id       ComponentID
	root     *Root
	parent   Parent
	children []*Component

	rect      RectProvider
	rectCache Rect
	rectGen   uint64
	rectValid bool

	theme       Theme
	zIndex      int
	visible     bool
	interactive bool
	disabled    bool
	state       State
	target      *Component

	update func(*Component)
	draw   func(*Component, *Canvas)

	listeners listeners
	destroyed bool
}

// ID returns the component's identifier, unique within its Root.
func (c *Component) ID() ComponentID { return c.id }

// Root returns the root the component is registered with.
func (c *Component) Root() *Root { return c.root }

// Parent returns the owner of the component.
func (c *Component) Parent() Parent { return c.parent }

// Children returns a copy of the components this one owns.
func (c *Component) Children() []*Component { return slices.Clone(c.children) }

func (c *Component) adopt(child *Component) {
	c.children = append(c.children, child)
}

func (c *Component) disown(child *Component) {
	c.children = slices.DeleteFunc(c.children, func(x *Component) bool { return x == child })
}

func (c *Component) alive() bool { return !c.destroyed }

// Rect returns the component's rectangle. A provider is evaluated at most
// once per root generation; negative dimensions from a provider are clamped
// to zero.
func (c *Component) Rect() Rect {
	gen := c.root.generation
	if c.rectValid && c.rectGen == gen {
		return c.rectCache
	}
	r := c.rect.Value()
	if !r.Valid() {
		debug.Log("component %d: provider returned invalid rect %+v", c.id, r)
		r.Width = max(r.Width, 0)
		r.Height = max(r.Height, 0)
	}
	c.rectCache, c.rectGen, c.rectValid = r, gen, true
	return r
}

// SetRect replaces the rectangle provider. A provider producing a negative
// width or height is rejected with *InvalidGeometryError.
func (c *Component) SetRect(p RectProvider) error {
	if p == nil {
		p = Rect{}
	}
	if r := p.Value(); !r.Valid() {
		return &InvalidGeometryError{Rect: r}
	}
	c.rect = p
	c.rectValid = false
	return nil
}

// Theme returns the component's theme.
func (c *Component) Theme() Theme { return c.theme }

// SetTheme replaces the theme.
func (c *Component) SetTheme(t Theme) { c.theme = t }

// Style resolves the theme for the current state.
func (c *Component) Style() Style { return c.theme.Style(c.state) }

// State returns the interaction state. Only the dispatcher changes it.
func (c *Component) State() State { return c.state }

// ZIndex returns the draw and hit-test priority.
func (c *Component) ZIndex() int { return c.zIndex }

// SetZIndex changes the draw and hit-test priority.
func (c *Component) SetZIndex(z int) { c.zIndex = z }

// Visible reports whether the component is drawn.
func (c *Component) Visible() bool { return c.visible }

// SetVisible shows or hides the component. A hidden component loses focus.
func (c *Component) SetVisible(v bool) {
	c.visible = v
	c.root.dispatcher.revalidate(c)
}

// Interactive reports whether the component takes part in hit-testing and
// focus traversal.
func (c *Component) Interactive() bool { return c.interactive }

// SetInteractive changes whether the component can be hit or focused.
func (c *Component) SetInteractive(v bool) {
	c.interactive = v
	c.root.dispatcher.revalidate(c)
}

// Disabled reports whether the component is disabled.
func (c *Component) Disabled() bool { return c.disabled }

// SetDisabled enables or disables the component. A disabled component
// loses focus and is drawn with its disabled style.
func (c *Component) SetDisabled(v bool) {
	c.disabled = v
	c.root.dispatcher.revalidate(c)
}

// Target returns the non-owning target reference, or nil.
func (c *Component) Target() *Component {
	if c.target != nil && c.target.destroyed {
		return nil
	}
	return c.target
}

// SetTarget changes the target reference.
func (c *Component) SetTarget(t *Component) { c.target = t }

// Destroyed reports whether Destroy has been called.
func (c *Component) Destroyed() bool { return c.destroyed }

// focusable reports whether the component can be hit or take focus.
func (c *Component) focusable() bool {
	return !c.destroyed && c.visible && c.interactive && !c.disabled
}

// On registers a handler for kind. Registrations made during dispatch take
// effect from the next batch of events.
func (c *Component) On(kind EventKind, h Handler) ListenerID {
	if c.destroyed {
		return 0
	}
	return c.listeners.on(kind, h)
}

// Off removes a registration.
func (c *Component) Off(id ListenerID) {
	c.listeners.off(id)
}

// Emit delivers ev to the component's handlers for kind and reports whether
// one handled it. A destroyed component handles nothing.
func (c *Component) Emit(kind EventKind, ev Event) bool {
	if c.destroyed {
		return false
	}
	return c.listeners.emit(kind, ev)
}

// Update runs the update hook.
func (c *Component) Update() {
	if c.destroyed || c.update == nil {
		return
	}
	c.update(c)
}

// Draw runs the draw hook. It is a no-op once the component is destroyed.
func (c *Component) Draw(canvas *Canvas) {
	if c.destroyed || c.draw == nil {
		return
	}
	c.draw(c, canvas)
}

// Destroy emits EventDestroy, then destroys every owned child, drops the
// component's listeners and removes it from its root, its parent and the
// focus state. Calling it again does nothing.
func (c *Component) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.listeners.emit(EventDestroy, Destroyed{})

	for _, child := range slices.Clone(c.children) {
		child.Destroy()
	}
	c.children = nil

	c.root.dispatcher.forget(c)
	c.root.registry.remove(c)
	c.parent.disown(c)

	c.listeners.clear()
	c.update, c.draw = nil, nil
	c.target = nil
	debug.Log("component %d destroyed", c.id)
}
