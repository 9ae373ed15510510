package ui

import "github.com/charmbracelet/lipgloss"

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// StatusWarning marks the minimum size warning
	StatusWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}
)

// Box fills are always light pastels, so labels use fixed dark ink
// regardless of the terminal background.
var (
	BoxInk      = lipgloss.Color("#1a1a1a")
	BoxInkMuted = lipgloss.Color("#4B5563")
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Secondary lipgloss.Style
	Muted     lipgloss.Style
}{
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
}

// BoxStyle is the base style of a box with the given fill.
func BoxStyle(fill string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(fill)).
		Foreground(BoxInk)
}

// WarningStyle renders the too-small terminal warning.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(StatusWarning).
		Bold(true)
}
