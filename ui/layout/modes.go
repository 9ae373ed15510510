// Package layout computes the responsive geometry of the masonry grid: how
// many columns fit, how boxes are spread over them, and how wide each column
// is in terminal cells.
package layout

// LayoutMode represents how roomy the columns are.
type LayoutMode int

const (
	// LayoutFull is for wide columns (>= 24 cells).
	LayoutFull LayoutMode = iota

	// LayoutStandard is the default comfortable layout (>= 16 cells).
	LayoutStandard

	// LayoutCompact drops padding (>= 8 cells).
	LayoutCompact

	// LayoutMinimal is for columns narrower than 8 cells or terminals below
	// the minimum size.
	LayoutMinimal
)

// String returns the string representation of the layout mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineMode calculates the layout mode for a terminal size and the
// resulting column width.
func DetermineMode(width, height, columnWidth int) LayoutMode {
	if width < MinWidth || height < MinHeight {
		return LayoutMinimal
	}

	switch {
	case columnWidth >= FullColumnWidth:
		return LayoutFull
	case columnWidth >= StandardColumnWidth:
		return LayoutStandard
	case columnWidth >= CompactColumnWidth:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}
