package tui

// Generation is implemented by anything that advances once per tick.
// Root implements it; the scheduler advances it before update hooks run.
type Generation interface {
	Generation() uint64
}

// Computed is a pull-based memoized value. It is re-evaluated at most once per
// generation of its source and cached within that generation.
//
// There is no dependency tracking: a Computed that reads another Computed
// simply calls Value on it, and both are refreshed lazily on the next tick.
type Computed[T any] struct {
	src   Generation
	fn    func() T
	value T
	gen   uint64
	valid bool
}

// NewComputed creates a Computed bound to src's generation counter.
func NewComputed[T any](src Generation, fn func() T) *Computed[T] {
	return &Computed[T]{src: src, fn: fn}
}

// Value returns the cached value, evaluating fn first if the source has
// advanced since the last evaluation.
func (c *Computed[T]) Value() T {
	gen := c.src.Generation()
	if !c.valid || c.gen != gen {
		c.value = c.fn()
		c.gen = gen
		c.valid = true
	}
	return c.value
}

// Invalidate forces re-evaluation on the next Value call.
func (c *Computed[T]) Invalidate() {
	c.valid = false
}
