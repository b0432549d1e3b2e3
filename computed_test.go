package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGeneration uint64

func (g *fakeGeneration) Generation() uint64 { return uint64(*g) }

func TestComputed_MemoizedPerGeneration(t *testing.T) {
	var gen fakeGeneration
	calls := 0
	c := NewComputed(&gen, func() int {
		calls++
		return calls * 10
	})

	assert.Equal(t, 10, c.Value())
	assert.Equal(t, 10, c.Value())
	assert.Equal(t, 1, calls)

	gen++
	assert.Equal(t, 20, c.Value())
	assert.Equal(t, 2, calls)

	c.Invalidate()
	assert.Equal(t, 30, c.Value())
}

func TestComputed_Chained(t *testing.T) {
	root := newTestRoot(t, 20, 10)
	width := 4
	inner := NewComputed(root, func() Rect { return NewRect(2, 2, width, 3) })
	outer := NewComputed(root, func() Rect { return inner.Value().Outset(1) })

	assert.Equal(t, NewRect(1, 1, 6, 5), outer.Value())

	width = 8
	assert.Equal(t, NewRect(1, 1, 6, 5), outer.Value(), "stale until the next tick")

	root.Update()
	assert.Equal(t, NewRect(1, 1, 10, 5), outer.Value())
}

func TestComputed_AsRectProvider(t *testing.T) {
	root := newTestRoot(t, 20, 10)
	x := 1
	c, err := root.NewComponent(nil, ComponentOptions{
		Rect: NewComputed(root, func() Rect { return NewRect(x, 0, 2, 2) }),
	})
	assert.NoError(t, err)

	x = 5
	root.Update()
	assert.Equal(t, 5, c.Rect().Column)
}
