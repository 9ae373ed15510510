package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewport struct{ width float64 }

func (f *fakeViewport) Width() float64 { return f.width }

func TestRoundTrip(t *testing.T) {
	vp := &fakeViewport{width: 800}
	c := New(vp)

	require.True(t, c.RecordObservedSize(5, 800, 200))

	h, ok := c.EstimatedHeight(5)
	require.True(t, ok)
	assert.InDelta(t, 200, h, 1)

	vp.width = 1600
	h, ok = c.EstimatedHeight(5)
	require.True(t, ok)
	assert.InDelta(t, 400, h, 2, "estimate scales with the current viewport width")
}

func TestRatioRounding(t *testing.T) {
	vp := &fakeViewport{width: 1000}
	c := New(vp)

	c.RecordObservedSize(1, 100, 123.4)
	r, ok := c.Ratio(1)
	require.True(t, ok)
	assert.Equal(t, 124.0, r, "ratio rounds up")

	vp.width = 999
	h, _ := c.EstimatedHeight(1)
	assert.Equal(t, 123.0, h, "estimate rounds down")
}

func TestUnknownIDHasNoValue(t *testing.T) {
	c := New(&fakeViewport{width: 800})
	h, ok := c.EstimatedHeight(42)
	assert.False(t, ok)
	assert.Zero(t, h)
	assert.False(t, c.Has(42))
}

func TestZeroMeasurementsAreIgnored(t *testing.T) {
	vp := &fakeViewport{width: 800}
	c := New(vp)

	assert.False(t, c.RecordObservedSize(1, 0, 200))
	assert.False(t, c.RecordObservedSize(1, 200, 0))
	assert.False(t, c.RecordObservedSize(1, -5, 200))
	assert.Equal(t, 0, c.Len())

	vp.width = 0
	assert.False(t, c.RecordObservedSize(1, 200, 200), "unknown viewport width is not recorded")
	assert.Equal(t, 0, c.Len())
}

func TestOverwrite(t *testing.T) {
	c := New(&fakeViewport{width: 1000})
	c.RecordObservedSize(3, 100, 100)
	c.RecordObservedSize(3, 100, 300)

	h, ok := c.EstimatedHeight(3)
	require.True(t, ok)
	assert.Equal(t, 300.0, h)
	assert.Equal(t, 1, c.Len())
}

func TestSingleBoxPolicy(t *testing.T) {
	c := New(&fakeViewport{width: 1000}, WithPolicy(SingleBox(0)))

	assert.False(t, c.RecordObservedSize(1, 100, 100))
	assert.True(t, c.RecordObservedSize(0, 100, 100))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has(0))
	assert.False(t, c.Has(1))
}

func TestNilPolicyKeepsDefault(t *testing.T) {
	c := New(&fakeViewport{width: 1000}, WithPolicy(nil))
	assert.True(t, c.RecordObservedSize(9, 10, 10))
}

func TestVersionAndReset(t *testing.T) {
	c := New(&fakeViewport{width: 1000})
	v0 := c.Version()

	c.RecordObservedSize(1, 10, 10)
	v1 := c.Version()
	assert.NotEqual(t, v0, v1)

	c.RecordObservedSize(1, 0, 10)
	assert.Equal(t, v1, c.Version(), "ignored writes keep the version")

	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.NotEqual(t, v1, c.Version())
}

func TestInstancesAreIndependent(t *testing.T) {
	vp := &fakeViewport{width: 1000}
	a := New(vp)
	b := New(vp)

	a.RecordObservedSize(1, 10, 10)
	assert.True(t, a.Has(1))
	assert.False(t, b.Has(1))
}
