package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"

	"masonry/box"
	"masonry/inspect"
	"masonry/log"
	"masonry/ui/layout"
)

const ellipsis = "…"

var _ inspect.Introspectable = (*BoxView)(nil)

// BoxView renders one box of the grid. The mount notification fires at most
// once per BoxView, the first time it renders with a non-zero size.
type BoxView struct {
	box     box.Box
	metrics layout.Metrics
	deg     layout.Degradation

	selected bool
	// scaled is set when the height comes from the layout cache. A scaled
	// box is never measured again.
	scaled bool

	onMounted func(width, height float64)
	onClick   func(b box.Box)

	mounted bool

	width     int
	rows      int
	labels    []string
	truncated bool
	style     lipgloss.Style
}

// BoxOption configures a BoxView.
type BoxOption func(*BoxView)

// WithOnMounted sets the callback receiving the realized size in pixels.
func WithOnMounted(fn func(width, height float64)) BoxOption {
	return func(v *BoxView) {
		v.onMounted = fn
	}
}

// WithOnClick sets the click handler.
func WithOnClick(fn func(b box.Box)) BoxOption {
	return func(v *BoxView) {
		v.onClick = fn
	}
}

// NewBoxView creates a view for b.
func NewBoxView(b box.Box, m layout.Metrics, opts ...BoxOption) *BoxView {
	v := &BoxView{box: b, metrics: m}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Update replaces the rendered box and its presentation state.
func (v *BoxView) Update(b box.Box, scaled, selected bool, deg layout.Degradation) {
	v.box = b
	v.scaled = scaled
	v.selected = selected
	v.deg = deg
}

// Box returns the box as last rendered.
func (v *BoxView) Box() box.Box {
	return v.box
}

// Mounted reports whether the mount notification has fired.
func (v *BoxView) Mounted() bool {
	return v.mounted
}

// Size returns the last rendered size in cells.
func (v *BoxView) Size() (width, rows int) {
	return v.width, v.rows
}

// Render draws the box into a column of the given width in cells.
func (v *BoxView) Render(columnWidth int) string {
	if columnWidth <= 0 {
		v.width, v.rows, v.labels = 0, 0, nil
		return ""
	}

	v.width = v.boxWidth(columnWidth)
	v.rows = v.metrics.Rows(v.box.Height)

	base := BoxStyle(v.box.Hex())
	if v.selected {
		base = base.Reverse(true)
	}
	idStyle := base.Foreground(BoxInkMuted)
	pxStyle := base.Bold(true)

	style := base.
		Width(v.width).
		Height(v.rows).
		MaxHeight(v.rows).
		Align(lipgloss.Center, lipgloss.Center)
	inner := v.width
	if !v.deg.HidePadding {
		style = style.Padding(0, 1)
		inner = max(v.width-2, 1)
	}
	v.style = style
	v.labels = v.labels[:0]
	v.truncated = false

	id := fmt.Sprintf("#%d", v.box.ID)
	px := fmt.Sprintf("%dpx", int(math.Round(v.box.Height)))

	var lines []string
	switch {
	case v.deg.HidePixelLabel:
		lines = []string{idStyle.Render(v.fit(id, inner))}
	case v.rows == 1:
		lines = []string{pxStyle.Render(v.fit(id+" "+px, inner))}
	default:
		lines = []string{idStyle.Render(v.fit(id, inner)), pxStyle.Render(v.fit(px, inner))}
	}

	return style.Render(strings.Join(lines, "\n"))
}

// Mount renders the box and, on the first render that produced a non-empty
// block, reports the realized size in pixels.
func (v *BoxView) Mount(columnWidth int) string {
	out := v.Render(columnWidth)
	if v.mounted || v.scaled || v.onMounted == nil {
		return out
	}

	w, h := v.measure(out)
	if w <= 0 || h <= 0 {
		return out
	}
	v.mounted = true
	log.RenderTrace("box", "mounted #%d at %.0fx%.0f", v.box.ID, w, h)
	v.onMounted(w, h)
	return out
}

// Click invokes the click handler.
func (v *BoxView) Click() {
	if v.onClick != nil {
		v.onClick(v.box)
	}
}

// InspectNode implements inspect.Introspectable.
func (v *BoxView) InspectNode() *inspect.Node {
	n := inspect.NewNode("Box").
		WithID(fmt.Sprintf("%d", v.box.ID)).
		WithStyles(inspect.ExtractStyleInfo(v.style, "box")).
		WithContent(strings.Join(v.labels, " ")).
		WithState("height", v.box.Height).
		WithState("color", v.box.Color).
		WithState("scaled", v.scaled).
		WithState("selected", v.selected).
		WithState("mounted", v.mounted)
	n.Bounds.Width, n.Bounds.Height = v.width, v.rows
	if v.truncated {
		full := 0
		for _, l := range v.labels {
			full += runewidth.StringWidth(l)
		}
		n.WithTruncation(full, v.width, true)
	}
	return n
}

// boxWidth clamps the column width to the box's maximum width. MinWidth is not
// enforced: a box never overflows its column.
func (v *BoxView) boxWidth(columnWidth int) int {
	if v.metrics.CellWidth <= 0 || !(v.box.MaxWidth > 0) {
		return columnWidth
	}
	maxCells := int(v.box.MaxWidth) / v.metrics.CellWidth
	if maxCells <= 0 {
		return columnWidth
	}
	return min(columnWidth, maxCells)
}

func (v *BoxView) fit(label string, width int) string {
	v.labels = append(v.labels, label)

	if runewidth.StringWidth(label) <= width {
		return label
	}
	v.truncated = true
	return truncate.StringWithTail(label, uint(width), ellipsis)
}

func (v *BoxView) measure(out string) (float64, float64) {
	if out == "" {
		return 0, 0
	}
	first, _, _ := strings.Cut(out, "\n")
	return v.metrics.PixelsWide(ansi.PrintableRuneWidth(first)), v.metrics.PixelsHigh(lipgloss.Height(out))
}
