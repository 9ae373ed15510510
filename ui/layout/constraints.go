package layout

import (
	"math"

	"masonry/config"
)

// Metrics converts between pixels and terminal cells.
type Metrics struct {
	CellWidth  int
	CellHeight int
	// ColumnGap is the gap between columns in pixels.
	ColumnGap float64
}

// MetricsFromConfig extracts the cell metrics from cfg.
func MetricsFromConfig(cfg *config.Config) Metrics {
	return Metrics{
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		ColumnGap:  cfg.ColumnGap,
	}
}

// PixelsWide converts a width in cells to pixels.
func (m Metrics) PixelsWide(cells int) float64 {
	return float64(cells * m.CellWidth)
}

// PixelsHigh converts a height in rows to pixels.
func (m Metrics) PixelsHigh(rows int) float64 {
	return float64(rows * m.CellHeight)
}

// Rows converts a pixel height to rows, rounding up. Every box gets at least
// one row.
func (m Metrics) Rows(px float64) int {
	if m.CellHeight <= 0 || !(px > 0) {
		return 1
	}
	return max(1, int(math.Ceil(px/float64(m.CellHeight))))
}

// GapCells is the column gap rounded to whole cells.
func (m Metrics) GapCells() int {
	if m.CellWidth <= 0 || m.ColumnGap <= 0 {
		return 0
	}
	return int(math.Round(m.ColumnGap / float64(m.CellWidth)))
}

// Constraints holds the computed geometry of the grid for one terminal size.
type Constraints struct {
	// Terminal dimensions in cells
	TerminalWidth  int
	TerminalHeight int

	// Viewport dimensions in pixels
	ViewportWidth  float64
	ViewportHeight float64

	Mode LayoutMode

	// Columns is the resolved column count. ColumnWidths has one entry per
	// column; together with the gaps they fill the terminal width exactly.
	Columns      int
	ColumnWidths []int
	GapWidth     int

	GridHeight      int
	StatusBarHeight int

	ShowMinWarning bool
}

// ViewportSize converts a terminal size to pixels.
func ViewportSize(width, height int, m Metrics) (float64, float64) {
	return m.PixelsWide(max(width, 0)), m.PixelsHigh(max(height, 0))
}

// ComputeConstraints calculates the grid geometry for a terminal of
// width x height cells split into the given number of columns.
func ComputeConstraints(width, height, columns int, m Metrics) Constraints {
	width = max(width, 0)
	height = max(height, 0)
	if columns < 1 {
		columns = FallbackColumns
	}

	c := Constraints{
		TerminalWidth:   width,
		TerminalHeight:  height,
		Columns:         columns,
		StatusBarHeight: StatusBarHeight,
	}
	c.ViewportWidth, c.ViewportHeight = ViewportSize(width, height, m)
	c.ShowMinWarning = width < MinWidth || height < MinHeight
	c.GridHeight = max(height-c.StatusBarHeight, 0)

	// Drop the gaps when they would eat the whole row.
	gap := m.GapCells()
	if gap*(columns-1) >= width {
		gap = 0
	}
	c.GapWidth = gap

	available := width - gap*(columns-1)
	base, rem := available/columns, available%columns
	c.ColumnWidths = make([]int, columns)
	for i := range c.ColumnWidths {
		c.ColumnWidths[i] = base
		if i < rem {
			c.ColumnWidths[i]++
		}
	}

	c.Mode = DetermineMode(width, height, base)
	return c
}

// MinColumnWidth returns the narrowest column width.
func (c Constraints) MinColumnWidth() int {
	if len(c.ColumnWidths) == 0 {
		return 0
	}
	return c.ColumnWidths[len(c.ColumnWidths)-1]
}

// TotalWidth returns the width covered by columns and gaps.
func (c Constraints) TotalWidth() int {
	total := 0
	for _, w := range c.ColumnWidths {
		total += w
	}
	if len(c.ColumnWidths) > 1 {
		total += c.GapWidth * (len(c.ColumnWidths) - 1)
	}
	return total
}
