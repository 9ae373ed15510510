package layout

// Degradation holds flags indicating which parts of a box or the status bar
// are dropped when space runs out.
type Degradation struct {
	HidePixelLabel bool // column narrower than PixelLabelHideWidth
	HidePadding    bool // column narrower than PaddingHideWidth
	HideHints      bool // terminal narrower than HintsHideWidth
	HideMargins    bool // minimal mode: boxes are stacked without gaps
	ShowMinWarning bool
}

// ComputeDegradation calculates which features should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	colWidth := c.MinColumnWidth()
	return Degradation{
		HidePixelLabel: colWidth < PixelLabelHideWidth,
		HidePadding:    colWidth < PaddingHideWidth,
		HideHints:      c.TerminalWidth < HintsHideWidth,
		HideMargins:    c.Mode == LayoutMinimal,
		ShowMinWarning: c.ShowMinWarning,
	}
}

// MarginRows returns the empty rows below each box.
func (d Degradation) MarginRows() int {
	if d.HideMargins {
		return 0
	}
	return BoxMarginRows
}
