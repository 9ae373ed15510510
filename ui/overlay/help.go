package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"masonry/keys"
)

var helpOrder = []keys.KeyName{
	keys.KeyUp, keys.KeyDown, keys.KeyLeft, keys.KeyRight,
	keys.KeyClick, keys.KeyPageUp, keys.KeyPageDown,
	keys.KeyResetCache, keys.KeyPolicy, keys.KeyCopy,
	keys.KeyHelp, keys.KeyQuit,
}

// HelpOverlay lists the key bindings.
type HelpOverlay struct {
	title string
	// status is an optional line below the bindings, e.g. the log file path.
	status string

	width int
}

// NewHelpOverlay creates a help overlay with the given title.
func NewHelpOverlay(title string) *HelpOverlay {
	return &HelpOverlay{
		title: title,
		width: 44,
	}
}

// SetStatus updates the status line.
func (h *HelpOverlay) SetStatus(status string) {
	h.status = status
}

// SetWidth sets the overlay width
func (h *HelpOverlay) SetWidth(width int) {
	h.width = width
}

// HandleKeyPress reports whether the overlay was dismissed. Any key closes it.
func (h *HelpOverlay) HandleKeyPress(string) bool {
	return true
}

// Render renders the help overlay
func (h *HelpOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Width(10)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(h.width)

	var content strings.Builder
	content.WriteString(titleStyle.Render(h.title))
	content.WriteString("\n\n")
	for _, k := range helpOrder {
		help := keys.GlobalkeyBindings[k].Help()
		content.WriteString(keyStyle.Render(help.Key))
		content.WriteString(help.Desc)
		content.WriteString("\n")
	}
	if h.status != "" {
		content.WriteString("\n")
		content.WriteString(statusStyle.Render(h.status))
	}

	return boxStyle.Render(strings.TrimRight(content.String(), "\n"))
}
