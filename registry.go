package tui

import (
	"cmp"
	"slices"
)

// registry is the ordered list of live components of one Root.
// Registration order drives update hooks and focus traversal;
// z-index (stable by registration) drives drawing and hit-testing.
type registry struct {
	items []*Component
}

func (r *registry) add(c *Component) {
	r.items = append(r.items, c)
}

func (r *registry) remove(c *Component) {
	r.items = slices.DeleteFunc(r.items, func(x *Component) bool { return x == c })
}

// all returns a copy in registration order, safe to range over while hooks
// create or destroy components.
func (r *registry) all() []*Component {
	return slices.Clone(r.items)
}

func (r *registry) len() int {
	return len(r.items)
}

// drawOrder returns components by ascending z-index. Equal z-indices keep
// registration order, so later registrations paint on top.
func (r *registry) drawOrder() []*Component {
	out := slices.Clone(r.items)
	slices.SortStableFunc(out, func(a, b *Component) int {
		return cmp.Compare(a.zIndex, b.zIndex)
	})
	return out
}

// hitOrder is drawOrder reversed: whatever paints on top is hit first.
func (r *registry) hitOrder() []*Component {
	out := r.drawOrder()
	slices.Reverse(out)
	return out
}

// focusable returns the components that can take focus, in registration order.
func (r *registry) focusable() []*Component {
	var out []*Component
	for _, c := range r.items {
		if c.focusable() {
			out = append(out, c)
		}
	}
	return out
}
