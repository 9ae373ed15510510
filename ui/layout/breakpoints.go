package layout

// Terminal breakpoints, in cells.
const (
	// MinWidth is the narrowest terminal the grid is drawn in.
	MinWidth = 20

	// MinHeight is the shortest terminal the grid is drawn in.
	MinHeight = 5

	// HintsHideWidth hides the key hints of the status bar below this width.
	HintsHideWidth = 60
)

// Column width breakpoints, in cells.
const (
	// FullColumnWidth shows every label with generous padding.
	FullColumnWidth = 24

	// StandardColumnWidth is the comfortable column width.
	StandardColumnWidth = 16

	// CompactColumnWidth still fits both labels.
	CompactColumnWidth = 8
)

// Grid defaults, in pixels unless noted.
const (
	// DefaultMaxColumnWidth is the widest a column gets before another is added.
	DefaultMaxColumnWidth = 256

	// DefaultColumnGap is the horizontal gap between columns (1rem).
	DefaultColumnGap = 16

	// FallbackColumns is used whenever the viewport width cannot be resolved.
	FallbackColumns = 1

	// StatusBarHeight is the status bar height in rows.
	StatusBarHeight = 1

	// BoxMarginRows is the empty space below each box in rows.
	BoxMarginRows = 1
)

// Degradation thresholds, in cells of column width.
const (
	PixelLabelHideWidth = 12
	PaddingHideWidth    = 10
)
