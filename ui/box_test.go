package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/box"
	"masonry/testing/snapshot"
	"masonry/ui/layout"
)

var testMetrics = layout.Metrics{CellWidth: 8, CellHeight: 16, ColumnGap: 16}

func testBox(id int, height float64) box.Box {
	return box.Box{ID: id, MinWidth: 96, MaxWidth: 256, Height: height, Color: box.FormatHSL(120)}
}

type sizes struct {
	calls [][2]float64
}

func (s *sizes) record(w, h float64) {
	s.calls = append(s.calls, [2]float64{w, h})
}

func TestBoxViewMountsOnce(t *testing.T) {
	var got sizes
	v := NewBoxView(testBox(3, 100), testMetrics, WithOnMounted(got.record))

	out := v.Mount(20)
	v.Mount(20)
	v.Mount(25)

	require.Len(t, got.calls, 1)
	// 20 cells wide, ceil(100/16) = 7 rows
	assert.Equal(t, [2]float64{160, 112}, got.calls[0])
	assert.True(t, v.Mounted())
	assert.Equal(t, 7, lipgloss.Height(out))
	assert.Equal(t, 20, lipgloss.Width(out))
}

func TestBoxViewSkipsZeroSize(t *testing.T) {
	var got sizes
	v := NewBoxView(testBox(1, 100), testMetrics, WithOnMounted(got.record))

	assert.Empty(t, v.Mount(0))
	assert.Empty(t, got.calls, "an unlaid-out box must not report")
	assert.False(t, v.Mounted())

	v.Mount(10)
	require.Len(t, got.calls, 1)
	assert.Equal(t, [2]float64{80, 112}, got.calls[0])
}

func TestBoxViewScaledNeverMeasures(t *testing.T) {
	var got sizes
	v := NewBoxView(testBox(1, 100), testMetrics, WithOnMounted(got.record))
	v.Update(testBox(1, 96), true, false, layout.Degradation{})

	out := v.Mount(20)
	assert.Empty(t, got.calls)
	assert.Equal(t, 6, lipgloss.Height(out))
}

func TestBoxViewWidth(t *testing.T) {
	v := NewBoxView(testBox(1, 100), testMetrics)

	v.Render(50)
	w, rows := v.Size()
	assert.Equal(t, 32, w, "256px max width is 32 cells")
	assert.Equal(t, 7, rows)

	v.Render(12)
	w, _ = v.Size()
	assert.Equal(t, 12, w, "a narrow column shrinks the box")
}

func TestBoxViewLabels(t *testing.T) {
	t.Run("id and height", func(t *testing.T) {
		out := snapshot.StripANSI(NewBoxView(testBox(3, 100), testMetrics).Render(20))
		assert.Contains(t, out, "#3")
		assert.Contains(t, out, "100px")
	})

	t.Run("single row", func(t *testing.T) {
		out := snapshot.StripANSI(NewBoxView(testBox(3, 10), testMetrics).Render(20))
		assert.Equal(t, 1, lipgloss.Height(out))
		assert.Contains(t, out, "#3 10px")
	})

	t.Run("pixel label hidden", func(t *testing.T) {
		v := NewBoxView(testBox(3, 100), testMetrics)
		v.Update(testBox(3, 100), false, false, layout.Degradation{HidePixelLabel: true})
		out := snapshot.StripANSI(v.Render(20))
		assert.Contains(t, out, "#3")
		assert.NotContains(t, out, "px")
	})

	t.Run("truncated", func(t *testing.T) {
		v := NewBoxView(testBox(3, 100), testMetrics)
		v.Update(testBox(3, 100), false, false, layout.Degradation{HidePadding: true})
		out := snapshot.StripANSI(v.Render(3))

		assert.Contains(t, out, "10…")
		assert.Equal(t, 3, snapshot.Width(out))

		node := v.InspectNode()
		require.NotNil(t, node.Truncated)
		assert.True(t, node.Truncated.Ellipsis)
	})
}

func TestBoxViewClick(t *testing.T) {
	var clicked []int
	v := NewBoxView(testBox(9, 100), testMetrics, WithOnClick(func(b box.Box) {
		clicked = append(clicked, b.ID)
	}))

	v.Click()
	v.Click()
	assert.Equal(t, []int{9, 9}, clicked)

	NewBoxView(testBox(1, 100), testMetrics).Click()
}

func TestBoxViewInspectNode(t *testing.T) {
	v := NewBoxView(testBox(4, 100), testMetrics)
	v.Update(testBox(4, 100), true, true, layout.Degradation{})
	v.Render(20)

	node := v.InspectNode()
	assert.Equal(t, "Box", node.Type)
	assert.Equal(t, "4", node.ID)
	assert.Equal(t, 20, node.Bounds.Width)
	assert.Equal(t, 7, node.Bounds.Height)
	assert.Equal(t, true, node.State["scaled"])
	assert.Equal(t, true, node.State["selected"])
	assert.Equal(t, "#4 100px", node.Content)
	assert.Nil(t, node.Truncated)
}
