package inspect

import (
	"fmt"
	"strings"
	"time"

	"masonry/ui/layout"
)

// Snapshot represents the complete UI state at a point in time.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	Terminal TerminalInfo `json:"terminal"`

	App AppInfo `json:"app"`

	Grid GridInfo `json:"grid"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppInfo contains application-level state.
type AppInfo struct {
	// Overlay is the open overlay ("help", "policy") or empty.
	Overlay string `json:"overlay,omitempty"`

	ScrollOffset int `json:"scroll_offset"`

	ErrorMessage string `json:"error_message,omitempty"`
}

// GridInfo describes the masonry grid.
type GridInfo struct {
	InstanceID string `json:"instance_id,omitempty"`

	Mode string `json:"mode"`

	// Columns is the resolved column count.
	Columns      int   `json:"columns"`
	ColumnWidths []int `json:"column_widths"`
	GapWidth     int   `json:"gap_width"`

	// Viewport size in pixels.
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
	MaxColumnWidth float64 `json:"max_column_width"`

	Boxes       int    `json:"boxes"`
	CachedBoxes int    `json:"cached_boxes"`
	CachePolicy string `json:"cache_policy"`
	SelectedID  int    `json:"selected_id"`
	Clicks      int    `json:"clicks"`

	// Order is the render order of box ids, column by column.
	Order []int `json:"order"`

	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HidePixelLabel bool `json:"hide_pixel_label"`
	HidePadding    bool `json:"hide_padding"`
	HideHints      bool `json:"hide_hints"`
	HideMargins    bool `json:"hide_margins"`
	ShowMinWarning bool `json:"show_min_warning"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	Name string `json:"name"`

	Threshold int `json:"threshold"`

	// Active indicates if this breakpoint is currently triggered.
	Active bool `json:"active"`

	// Dimension is "width", "height" or "column_width".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithApp sets application info and returns the snapshot for chaining.
func (s *Snapshot) WithApp(info AppInfo) *Snapshot {
	s.App = info
	return s
}

// WithLayout fills the grid geometry from constraints and degradation. Fields
// set by WithGrid are kept.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Grid.Mode = c.Mode.String()
	s.Grid.Columns = c.Columns
	s.Grid.ColumnWidths = append([]int(nil), c.ColumnWidths...)
	s.Grid.GapWidth = c.GapWidth
	s.Grid.ViewportWidth = c.ViewportWidth
	s.Grid.ViewportHeight = c.ViewportHeight
	s.Grid.Degradation = DegradationInfo{
		HidePixelLabel: d.HidePixelLabel,
		HidePadding:    d.HidePadding,
		HideHints:      d.HideHints,
		HideMargins:    d.HideMargins,
		ShowMinWarning: d.ShowMinWarning,
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "hide_pixel_label", Threshold: layout.PixelLabelHideWidth, Active: d.HidePixelLabel, Dimension: "column_width"},
		{Name: "hide_padding", Threshold: layout.PaddingHideWidth, Active: d.HidePadding, Dimension: "column_width"},
		{Name: "hide_hints", Threshold: layout.HintsHideWidth, Active: d.HideHints, Dimension: "width"},
		{Name: "min_width", Threshold: layout.MinWidth, Active: c.TerminalWidth < layout.MinWidth, Dimension: "width"},
		{Name: "min_height", Threshold: layout.MinHeight, Active: c.TerminalHeight < layout.MinHeight, Dimension: "height"},
	}

	return s
}

// WithGrid sets the grid state that does not come from the layout.
func (s *Snapshot) WithGrid(instanceID string, maxColumnWidth float64, boxes, cached int, policy string, selected, clicks int, order []int) *Snapshot {
	s.Grid.InstanceID = instanceID
	s.Grid.MaxColumnWidth = maxColumnWidth
	s.Grid.Boxes = boxes
	s.Grid.CachedBoxes = cached
	s.Grid.CachePolicy = policy
	s.Grid.SelectedID = selected
	s.Grid.Clicks = clicks
	s.Grid.Order = order
	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	if s.App.Overlay != "" {
		b.WriteString(fmt.Sprintf("Overlay: %s\n", s.App.Overlay))
	}

	b.WriteString("\n--- Grid ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Grid.Mode))
	b.WriteString(fmt.Sprintf("Viewport: %.0fx%.0fpx (max column %.0fpx)\n",
		s.Grid.ViewportWidth, s.Grid.ViewportHeight, s.Grid.MaxColumnWidth))
	b.WriteString(fmt.Sprintf("Columns: %d %v gap=%d\n", s.Grid.Columns, s.Grid.ColumnWidths, s.Grid.GapWidth))
	b.WriteString(fmt.Sprintf("Boxes: %d cached=%d policy=%s\n", s.Grid.Boxes, s.Grid.CachedBoxes, s.Grid.CachePolicy))
	b.WriteString(fmt.Sprintf("Selected: #%d clicks=%d\n", s.Grid.SelectedID, s.Grid.Clicks))

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(node.Type)
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" @%d,%d (%dx%d)", node.Bounds.X, node.Bounds.Y, node.Bounds.Width, node.Bounds.Height))

	if node.Truncated != nil {
		b.WriteString(fmt.Sprintf(" TRUNCATED(%d->%d)",
			node.Truncated.OriginalLength,
			node.Truncated.DisplayLength))
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
