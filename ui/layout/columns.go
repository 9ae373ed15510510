package layout

import (
	"math"

	"masonry/log"
)

// ResolveColumns returns how many columns of at most maxColumnWidth fit in
// viewportWidth, rounding up. It never returns less than one: a width that
// cannot be resolved (zero, negative, NaN, infinite) or a non-positive
// maxColumnWidth yields FallbackColumns.
func ResolveColumns(viewportWidth, maxColumnWidth float64) int {
	if !(viewportWidth > 0) || math.IsInf(viewportWidth, 0) || !(maxColumnWidth > 0) {
		return FallbackColumns
	}
	n := int(math.Ceil(viewportWidth / maxColumnWidth))
	if n < 1 {
		return FallbackColumns
	}
	return n
}

// Host is the part of the viewport the column counter depends on.
type Host interface {
	Width() float64
	Subscribe(fn func(width, height float64)) (unsubscribe func())
}

// ColumnCounter keeps the column count in sync with a resizable host.
type ColumnCounter struct {
	maxColumnWidth float64
	columns        int

	unsubscribe func()
	nextID      int
	listeners   map[int]func(columns int)
	order       []int
}

// NewColumnCounter resolves the initial column count from host and re-resolves
// it on every resize. Call Close to stop listening.
func NewColumnCounter(host Host, maxColumnWidth float64) *ColumnCounter {
	c := &ColumnCounter{
		maxColumnWidth: maxColumnWidth,
		columns:        ResolveColumns(host.Width(), maxColumnWidth),
		listeners:      make(map[int]func(columns int)),
	}
	c.unsubscribe = host.Subscribe(func(width, _ float64) {
		c.resize(width)
	})
	return c
}

// Columns returns the current column count.
func (c *ColumnCounter) Columns() int {
	return c.columns
}

// MaxColumnWidth returns the configured maximum column width.
func (c *ColumnCounter) MaxColumnWidth() float64 {
	return c.maxColumnWidth
}

// OnChange registers fn to be called with the column count after every
// resize. The returned function removes it.
func (c *ColumnCounter) OnChange(fn func(columns int)) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.order = append(c.order, id)

	return func() {
		delete(c.listeners, id)
		for i, o := range c.order {
			if o == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// Close deregisters the counter from its host. Further resizes are ignored.
func (c *ColumnCounter) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.listeners = make(map[int]func(columns int))
	c.order = nil
}

func (c *ColumnCounter) resize(width float64) {
	prev := c.columns
	c.columns = ResolveColumns(width, c.maxColumnWidth)
	if prev != c.columns {
		log.LayoutTrace("columns %d -> %d at width %.0f", prev, c.columns, width)
	}

	ids := append([]int(nil), c.order...)
	for _, id := range ids {
		if fn, ok := c.listeners[id]; ok {
			fn(c.columns)
		}
	}
}
