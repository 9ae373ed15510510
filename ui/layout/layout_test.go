package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/box"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		maxWidth float64
		want     int
	}{
		{name: "exact multiple", width: 1024, maxWidth: 256, want: 4},
		{name: "rounds up", width: 1000, maxWidth: 256, want: 4},
		{name: "just over", width: 1025, maxWidth: 256, want: 5},
		{name: "narrower than one column", width: 100, maxWidth: 256, want: 1},
		{name: "zero width falls back", width: 0, maxWidth: 256, want: 1},
		{name: "negative width falls back", width: -50, maxWidth: 256, want: 1},
		{name: "NaN width falls back", width: math.NaN(), maxWidth: 256, want: 1},
		{name: "infinite width falls back", width: math.Inf(1), maxWidth: 256, want: 1},
		{name: "zero max width falls back", width: 1024, maxWidth: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColumns(tt.width, tt.maxWidth))
		})
	}
}

func TestResolveColumnsIsIdempotent(t *testing.T) {
	for w := 0.0; w < 3000; w += 37 {
		assert.Equal(t, ResolveColumns(w, 256), ResolveColumns(w, 256))
		assert.GreaterOrEqual(t, ResolveColumns(w, 256), 1)
	}
}

func TestColumnCounter(t *testing.T) {
	vp := NewViewport(1024, 768)
	counter := NewColumnCounter(vp, 256)
	require.Equal(t, 4, counter.Columns())

	var notified []int
	counter.OnChange(func(columns int) { notified = append(notified, columns) })

	t.Run("resize updates synchronously once per event", func(t *testing.T) {
		vp.Resize(600, 768)
		assert.Equal(t, 3, counter.Columns())
		assert.Equal(t, []int{3}, notified)

		vp.Resize(600, 400)
		assert.Equal(t, 3, counter.Columns(), "same width resolves the same count")
		assert.Equal(t, []int{3, 3}, notified)

		vp.Resize(2000, 400)
		assert.Equal(t, 8, counter.Columns())
		assert.Len(t, notified, 3)
	})

	t.Run("close removes the resize listener", func(t *testing.T) {
		require.Equal(t, 1, vp.Listeners())
		counter.Close()
		assert.Equal(t, 0, vp.Listeners())

		vp.Resize(256, 100)
		assert.Equal(t, 8, counter.Columns(), "closed counter ignores resizes")
		assert.Len(t, notified, 3)

		counter.Close()
	})
}

func TestViewportSubscribe(t *testing.T) {
	vp := NewViewport(0, 0)

	var calls []string
	unsubA := vp.Subscribe(func(w, h float64) { calls = append(calls, "a") })
	var unsubB func()
	unsubB = vp.Subscribe(func(w, h float64) {
		calls = append(calls, "b")
		unsubB()
	})
	vp.Subscribe(func(w, h float64) { calls = append(calls, "c") })

	vp.Resize(10, 20)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	w, h := vp.Size()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, h)

	vp.Resize(11, 20)
	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, calls)

	unsubA()
	unsubA()
	assert.Equal(t, 1, vp.Listeners())
}

func boxesWithHeights(heights ...float64) []box.Box {
	boxes := make([]box.Box, len(heights))
	for i, h := range heights {
		boxes[i] = box.Box{ID: i, Height: h}
	}
	return boxes
}

func TestDistributePlacesEveryBoxOnce(t *testing.T) {
	rng := box.NewSeededRand(7)
	for n := 0; n <= 60; n += 7 {
		for c := 1; c <= 9; c++ {
			heights := make([]float64, n)
			for i := range heights {
				heights[i] = float64(80 + rng.IntN(160))
			}
			boxes := boxesWithHeights(heights...)

			out := Distribute(c, boxes)
			require.Len(t, out, n, "n=%d c=%d", n, c)

			seen := make(map[int]bool, n)
			for _, b := range out {
				assert.False(t, seen[b.ID], "box %d placed twice", b.ID)
				seen[b.ID] = true
			}
			assert.Len(t, seen, n)
		}
	}
}

func TestDistributeEqualHeightsBalance(t *testing.T) {
	const h = 100.0
	for n := 0; n <= 40; n++ {
		for c := 1; c <= 6; c++ {
			heights := make([]float64, n)
			for i := range heights {
				heights[i] = h
			}
			cols := Columns(c, boxesWithHeights(heights...))
			require.Len(t, cols, c)

			lo, hi := math.Inf(1), math.Inf(-1)
			for _, col := range cols {
				lo = math.Min(lo, col.Height)
				hi = math.Max(hi, col.Height)
			}
			assert.LessOrEqual(t, hi-lo, h, "n=%d c=%d", n, c)
		}
	}
}

func TestColumnsGreedyOrder(t *testing.T) {
	cols := Columns(3, boxesWithHeights(100, 50, 50, 20, 10, 200))

	ids := func(c Column) []int {
		var out []int
		for _, b := range c.Boxes {
			out = append(out, b.ID)
		}
		return out
	}

	// 100 -> col0 (tie, lowest index), 50 -> col1, 50 -> col2,
	// 20 -> col1 (tie between 1 and 2), 10 -> col2, 200 -> col2 (60 < 70 < 100).
	want := [][]int{{0}, {1, 3}, {2, 4, 5}}
	got := [][]int{ids(cols[0]), ids(cols[1]), ids(cols[2])}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("column assignment mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []float64{100, 70, 260}, []float64{cols[0].Height, cols[1].Height, cols[2].Height})

	flat := Distribute(3, boxesWithHeights(100, 50, 50, 20, 10, 200))
	var order []int
	for _, b := range flat {
		order = append(order, b.ID)
	}
	assert.Equal(t, []int{0, 1, 3, 2, 4, 5}, order)
}

func TestDistributeZeroColumns(t *testing.T) {
	boxes := boxesWithHeights(10, 20, 30)
	for _, c := range []int{0, -1} {
		out := Distribute(c, boxes)
		assert.NotNil(t, out)
		assert.Empty(t, out)
		assert.Empty(t, Columns(c, boxes))
	}
}

func TestDistributorMemoizes(t *testing.T) {
	var d Distributor
	boxes := boxesWithHeights(10, 20, 30, 40)

	flat1, cols1 := d.Distribute(2, boxes)
	flat2, cols2 := d.Distribute(2, boxes)
	assert.Equal(t, 1, d.Computations())
	assert.Equal(t, flat1, flat2)
	assert.Equal(t, cols1, cols2)

	d.Distribute(3, boxes)
	assert.Equal(t, 2, d.Computations(), "column change recomputes")

	other := append([]box.Box(nil), boxes...)
	d.Distribute(3, other)
	assert.Equal(t, 3, d.Computations(), "new box slice recomputes")

	d.Invalidate()
	d.Distribute(3, other)
	assert.Equal(t, 4, d.Computations())
}

func TestDetermineMode(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		columnWidth int
		want        LayoutMode
	}{
		{name: "wide columns", width: 120, height: 40, columnWidth: 28, want: LayoutFull},
		{name: "standard columns", width: 120, height: 40, columnWidth: 16, want: LayoutStandard},
		{name: "compact columns", width: 80, height: 24, columnWidth: 9, want: LayoutCompact},
		{name: "tiny columns", width: 80, height: 24, columnWidth: 5, want: LayoutMinimal},
		{name: "terminal too narrow", width: 10, height: 24, columnWidth: 30, want: LayoutMinimal},
		{name: "terminal too short", width: 80, height: 3, columnWidth: 30, want: LayoutMinimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineMode(tt.width, tt.height, tt.columnWidth))
		})
	}
	assert.Equal(t, "standard", LayoutStandard.String())
	assert.Equal(t, "unknown", LayoutMode(42).String())
}

func defaultMetrics() Metrics {
	return Metrics{CellWidth: 8, CellHeight: 16, ColumnGap: 16}
}

func TestComputeConstraintsFillsWidth(t *testing.T) {
	m := defaultMetrics()
	for _, width := range []int{1, 20, 79, 80, 100, 128, 157, 200} {
		vw, _ := ViewportSize(width, 30, m)
		columns := ResolveColumns(vw, DefaultMaxColumnWidth)
		c := ComputeConstraints(width, 30, columns, m)

		assert.Equal(t, width, c.TotalWidth(), "width %d", width)
		assert.Len(t, c.ColumnWidths, columns)
		for i := 1; i < len(c.ColumnWidths); i++ {
			assert.LessOrEqual(t, c.ColumnWidths[i-1]-c.ColumnWidths[i], 1, "column widths differ by at most one")
		}
	}
}

func TestComputeConstraints(t *testing.T) {
	m := defaultMetrics()

	c := ComputeConstraints(128, 40, 4, m)
	assert.Equal(t, 1024.0, c.ViewportWidth)
	assert.Equal(t, 640.0, c.ViewportHeight)
	assert.Equal(t, 2, c.GapWidth)
	assert.Equal(t, []int{31, 31, 30, 30}, c.ColumnWidths)
	assert.Equal(t, 39, c.GridHeight)
	assert.Equal(t, LayoutFull, c.Mode)
	assert.False(t, c.ShowMinWarning)

	t.Run("gaps dropped when they do not fit", func(t *testing.T) {
		c := ComputeConstraints(4, 10, 3, m)
		assert.Equal(t, 0, c.GapWidth)
		assert.Equal(t, 4, c.TotalWidth())
		assert.True(t, c.ShowMinWarning)
	})

	t.Run("non-positive columns fall back", func(t *testing.T) {
		c := ComputeConstraints(50, 10, 0, m)
		assert.Equal(t, FallbackColumns, c.Columns)
		assert.Equal(t, []int{50}, c.ColumnWidths)
	})

	t.Run("zero size", func(t *testing.T) {
		c := ComputeConstraints(0, 0, 1, m)
		assert.Equal(t, []int{0}, c.ColumnWidths)
		assert.Equal(t, 0, c.GridHeight)
		assert.Equal(t, LayoutMinimal, c.Mode)
	})
}

func TestMetrics(t *testing.T) {
	m := defaultMetrics()
	assert.Equal(t, 5, m.Rows(80))
	assert.Equal(t, 6, m.Rows(81))
	assert.Equal(t, 1, m.Rows(0))
	assert.Equal(t, 1, Metrics{}.Rows(100))
	assert.Equal(t, 2, m.GapCells())
	assert.Equal(t, 0, Metrics{CellWidth: 8}.GapCells())
	assert.Equal(t, 80.0, m.PixelsWide(10))
	assert.Equal(t, 160.0, m.PixelsHigh(10))
}

func TestComputeDegradation(t *testing.T) {
	m := defaultMetrics()

	wide := ComputeDegradation(ComputeConstraints(128, 40, 4, m))
	assert.False(t, wide.HidePixelLabel)
	assert.False(t, wide.HidePadding)
	assert.False(t, wide.HideHints)
	assert.Equal(t, BoxMarginRows, wide.MarginRows())

	narrow := ComputeDegradation(ComputeConstraints(40, 20, 8, m))
	assert.True(t, narrow.HidePixelLabel)
	assert.True(t, narrow.HidePadding)
	assert.True(t, narrow.HideHints)
	assert.True(t, narrow.HideMargins)
	assert.Equal(t, 0, narrow.MarginRows())
}
