package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"masonry/config"
)

// PolicyOption is a selectable cache policy.
type PolicyOption struct {
	Policy      string // config.CachePolicy constant
	Name        string
	Description string
	Available   bool
}

// PolicySelectorOverlay lets the user pick which boxes the layout cache
// records.
type PolicySelectorOverlay struct {
	Dismissed bool
	Selected  string
	// BoxID is the box the single policy records.
	BoxID   int
	options []PolicyOption
	cursor  int
	width   int
}

// NewPolicySelectorOverlay creates a selector with the cursor on current.
// boxID is the box the single policy would record; it is unavailable when
// negative.
func NewPolicySelectorOverlay(current string, boxID int) *PolicySelectorOverlay {
	options := []PolicyOption{
		{
			Policy:      config.CachePolicyAll,
			Name:        "All boxes",
			Description: "Every box keeps its measured height\nacross re-renders and resizes.",
			Available:   true,
		},
		{
			Policy:      config.CachePolicySingle,
			Name:        fmt.Sprintf("Single box (#%d)", boxID),
			Description: "Only the selected box is measured;\nthe rest keep their provisional height.",
			Available:   boxID >= 0,
		},
	}

	p := &PolicySelectorOverlay{
		BoxID:   boxID,
		options: options,
		width:   50,
	}
	for i, opt := range options {
		if opt.Policy == current && opt.Available {
			p.cursor = i
		}
	}
	return p
}

// HandleKeyPress processes a key press and reports whether the overlay was
// dismissed.
func (p *PolicySelectorOverlay) HandleKeyPress(key string) bool {
	switch key {
	case "up", "k":
		p.moveCursor(-1)
		return false
	case "down", "j":
		p.moveCursor(1)
		return false
	case "enter":
		if p.options[p.cursor].Available {
			p.Selected = p.options[p.cursor].Policy
			p.Dismissed = true
			return true
		}
		return false
	case "esc", "q":
		p.Dismissed = true
		return true
	default:
		return false
	}
}

// moveCursor moves the cursor, wrapping around and skipping unavailable
// options.
func (p *PolicySelectorOverlay) moveCursor(delta int) {
	next := p.cursor
	for attempts := 0; attempts < len(p.options); attempts++ {
		next = (next + delta + len(p.options)) % len(p.options)
		if p.options[next].Available {
			p.cursor = next
			return
		}
	}
}

// Render renders the policy selector.
func (p *PolicySelectorOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	unavailableStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Strikethrough(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		PaddingLeft(4)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Layout Cache Policy"))
	content.WriteString("\n\n")

	for i, opt := range p.options {
		prefix, nameStyle := "  ", normalStyle
		switch {
		case !opt.Available:
			nameStyle = unavailableStyle
		case i == p.cursor:
			prefix, nameStyle = "> ", selectedStyle
		}

		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(opt.Name))
		content.WriteString("\n")
		for _, line := range strings.Split(opt.Description, "\n") {
			content.WriteString(descStyle.Render(line))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(
		"[Enter] Select  [Esc] Cancel  [↑/↓] Navigate"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(p.width)

	return borderStyle.Render(content.String())
}

// SetWidth sets the width of the overlay
func (p *PolicySelectorOverlay) SetWidth(width int) {
	p.width = width
}

// Cursor returns the highlighted option.
func (p *PolicySelectorOverlay) Cursor() PolicyOption {
	return p.options[p.cursor]
}
