package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/grindlemire/tuikit/internal/debug"
)

// Root is the top-level surface. It owns the canvas, the component
// registry, the focus state and every component created through it.
// Closing the Root destroys them all.
type Root struct {
	canvas     *Canvas
	registry   registry
	dispatcher *dispatcher
	listeners  listeners
	bindings   KeyMap

	background    Style
	hasBackground bool

	generation uint64
	nextID     ComponentID
	children   []*Component
	closed     bool

	// dispatching counts nested Dispatch calls; frozen holds the tables
	// pinned by the outermost one.
	dispatching int
	frozen      []*listeners
}

// NewRoot creates a root drawing into canvas.
func NewRoot(canvas *Canvas) *Root {
	r := &Root{canvas: canvas}
	r.dispatcher = newDispatcher(r)
	return r
}

// Root returns r, so a Root can be passed wherever a Parent is expected.
func (r *Root) Root() *Root { return r }

func (r *Root) adopt(c *Component) {
	r.children = append(r.children, c)
}

func (r *Root) disown(c *Component) {
	r.children = slices.DeleteFunc(r.children, func(x *Component) bool { return x == c })
}

func (r *Root) alive() bool { return !r.closed }

// Canvas returns the canvas the root draws into.
func (r *Root) Canvas() *Canvas { return r.canvas }

// Generation returns the tick generation. Update advances it, which
// invalidates every Computed bound to the root.
func (r *Root) Generation() uint64 { return r.generation }

// SetBackground makes Draw fill the whole canvas with style before any
// component draws.
func (r *Root) SetBackground(style Style) {
	r.background = style
	r.hasBackground = true
}

// ClearBackground turns the background fill off.
func (r *Root) ClearBackground() {
	r.hasBackground = false
}

// NewComponent creates a component owned by parent (the root itself when
// parent is nil) and appends it to the registry.
func (r *Root) NewComponent(parent Parent, opts ComponentOptions) (*Component, error) {
	if parent == nil {
		parent = r
	}
	if parent.Root() != r {
		return nil, errors.New("tui: parent belongs to a different root")
	}
	if !r.alive() || !parent.alive() {
		return nil, ErrDestroyed
	}

	provider := opts.Rect
	if provider == nil {
		provider = Rect{}
	}
	if rect := provider.Value(); !rect.Valid() {
		return nil, &InvalidGeometryError{Rect: rect}
	}

	r.nextID++
	c := &Component{
		id:          r.nextID,
		root:        r,
		parent:      parent,
		rect:        provider,
		theme:       opts.Theme,
		zIndex:      opts.ZIndex,
		visible:     !opts.Hidden,
		interactive: opts.Interactive,
		disabled:    opts.Disabled,
		target:      opts.Target,
		update:      opts.Update,
		draw:        opts.Draw,
	}
	if c.disabled {
		c.state = StateDisabled
	}
	if r.dispatching > 0 {
		c.listeners.freeze()
		r.frozen = append(r.frozen, &c.listeners)
	}
	parent.adopt(c)
	r.registry.add(c)
	return c, nil
}

// Components returns the live components in registration order.
func (r *Root) Components() []*Component {
	return r.registry.all()
}

// Focused returns the focused component, or nil.
func (r *Root) Focused() *Component { return r.dispatcher.focused }

// Active returns the active component, or nil.
func (r *Root) Active() *Component { return r.dispatcher.active }

// Focus moves keyboard focus to c, or clears it when c is nil. It reports
// false when c cannot take focus.
func (r *Root) Focus(c *Component) bool {
	return r.dispatcher.focus(c)
}

// On registers a root-level handler. Root handlers see key, mouse and
// paste events before any component and can consume them.
func (r *Root) On(kind EventKind, h Handler) ListenerID {
	return r.listeners.on(kind, h)
}

// Off removes a root-level registration.
func (r *Root) Off(id ListenerID) {
	r.listeners.off(id)
}

// Emit delivers ev to root-level handlers for kind.
func (r *Root) Emit(kind EventKind, ev Event) bool {
	return r.listeners.emit(kind, ev)
}

// Bind adds a root-level key binding. Bindings run before root listeners
// and before the focused component.
func (r *Root) Bind(b KeyBinding) error {
	next := append(slices.Clone(r.bindings), b)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("bind %+v: %w", b.Pattern, err)
	}
	r.bindings = next
	return nil
}

// Dispatch routes a batch of events. Every listener table is frozen for the
// duration of the batch, so handlers added or removed while it runs take
// effect from the next batch. A Dispatch made from inside a handler joins
// the outer batch and leaves the tables frozen.
func (r *Root) Dispatch(events ...Event) {
	if len(events) == 0 {
		return
	}
	if r.dispatching == 0 {
		r.freeze()
	}
	r.dispatching++
	defer func() {
		r.dispatching--
		if r.dispatching == 0 {
			r.thaw()
		}
	}()
	for _, ev := range events {
		r.dispatcher.dispatch(ev)
	}
}

func (r *Root) freeze() {
	r.frozen = make([]*listeners, 0, r.registry.len()+1)
	r.frozen = append(r.frozen, &r.listeners)
	for _, c := range r.registry.items {
		r.frozen = append(r.frozen, &c.listeners)
	}
	for _, t := range r.frozen {
		t.freeze()
	}
}

// thaw also releases components created during the batch, including
// any that were destroyed before it ended.
func (r *Root) thaw() {
	for _, t := range r.frozen {
		t.thaw()
	}
	r.frozen = nil
}

// Update advances the generation and runs update hooks in registration order.
func (r *Root) Update() {
	r.generation++
	for _, c := range r.registry.all() {
		c.Update()
	}
}

// Draw paints the background, if any, and then every visible component
// whose rectangle intersects the canvas, in ascending z-index order.
func (r *Root) Draw() {
	bounds := r.canvas.Bounds()
	if r.hasBackground {
		r.canvas.Fill(bounds, ' ', r.background)
	}
	for _, c := range r.registry.drawOrder() {
		if c.destroyed || !c.visible {
			continue
		}
		if !c.Rect().Intersects(bounds) {
			continue
		}
		c.Draw(r.canvas)
	}
}

// Close destroys every component the root owns. The root accepts no new
// components afterwards. Calling Close again does nothing.
func (r *Root) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for _, c := range slices.Clone(r.children) {
		c.Destroy()
	}
	debug.Log("root closed")
}
