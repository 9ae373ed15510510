// Package cache remembers the measured height of each box as a ratio of the
// viewport width, so a box keeps its shape across re-renders and resizes
// instead of jumping back to its provisional height.
package cache

import (
	"math"

	"masonry/log"
)

// ratioScale is the fixed-point scale of stored ratios.
const ratioScale = 1000

// WidthSource reports the current viewport width in pixels.
type WidthSource interface {
	Width() float64
}

// Policy decides which boxes may be recorded.
type Policy interface {
	Allows(boxID int) bool
}

type allBoxes struct{}

func (allBoxes) Allows(int) bool { return true }

// AllBoxes records every box.
func AllBoxes() Policy { return allBoxes{} }

type singleBox int

func (s singleBox) Allows(id int) bool { return int(s) == id }

// SingleBox records only the box with the given id and ignores the rest.
func SingleBox(id int) Policy { return singleBox(id) }

// Option configures a LayoutCache.
type Option func(*LayoutCache)

// WithPolicy sets the recording policy. The default is AllBoxes.
func WithPolicy(p Policy) Option {
	return func(c *LayoutCache) {
		if p != nil {
			c.policy = p
		}
	}
}

// LayoutCache maps box ids to height/width ratios. It belongs to one grid and
// is not safe for concurrent use.
type LayoutCache struct {
	viewport WidthSource
	policy   Policy
	ratios   map[int]float64
	version  uint64
}

// New creates an empty cache reading the viewport width from viewport.
func New(viewport WidthSource, opts ...Option) *LayoutCache {
	c := &LayoutCache{
		viewport: viewport,
		policy:   AllBoxes(),
		ratios:   make(map[int]float64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecordObservedSize stores ceil(height / viewportWidth * 1000) for boxID,
// overwriting any earlier value. Measurements with a non-positive dimension
// (element not laid out yet) and a non-positive viewport width are ignored,
// as are ids the policy rejects. It reports whether a ratio was stored.
func (c *LayoutCache) RecordObservedSize(boxID int, width, height float64) bool {
	if !(width > 0) || !(height > 0) {
		log.LayoutTrace("skip record for box %d: size %.0fx%.0f", boxID, width, height)
		return false
	}
	if !c.policy.Allows(boxID) {
		return false
	}

	vw := c.viewport.Width()
	if !(vw > 0) || math.IsInf(vw, 0) {
		return false
	}

	c.ratios[boxID] = math.Ceil(height / vw * ratioScale)
	c.version++
	return true
}

// EstimatedHeight returns floor(ratio * viewportWidth / 1000) for boxID using
// the current viewport width. The boolean is false when nothing was recorded.
func (c *LayoutCache) EstimatedHeight(boxID int) (float64, bool) {
	ratio, ok := c.ratios[boxID]
	if !ok {
		return 0, false
	}
	return math.Floor(ratio * c.viewport.Width() / ratioScale), true
}

// Ratio returns the stored ratio for boxID.
func (c *LayoutCache) Ratio(boxID int) (float64, bool) {
	r, ok := c.ratios[boxID]
	return r, ok
}

// Has reports whether boxID has a ratio.
func (c *LayoutCache) Has(boxID int) bool {
	_, ok := c.ratios[boxID]
	return ok
}

// Len returns the number of recorded boxes.
func (c *LayoutCache) Len() int {
	return len(c.ratios)
}

// Version changes whenever a ratio is written or the cache is reset.
func (c *LayoutCache) Version() uint64 {
	return c.version
}

// Reset drops every ratio.
func (c *LayoutCache) Reset() {
	c.ratios = make(map[int]float64)
	c.version++
}
