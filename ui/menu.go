package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"masonry/keys"
)

var (
	keyStyle  = TextStyles.Secondary
	descStyle = TextStyles.Muted
	sepStyle  = lipgloss.NewStyle().Foreground(Border)
	statStyle = lipgloss.NewStyle().Foreground(Primary)
)

var separator = " • "
var verticalSeparator = " │ "

// Stats is what the status bar reports about the grid.
type Stats struct {
	Columns int
	Boxes   int
	Cached  int
	Clicks  int
	Mode    string
}

// Menu is the one-line status bar below the grid: grid stats on the left, key
// hints on the right.
type Menu struct {
	options   []keys.KeyName
	width     int
	stats     Stats
	hideHints bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var defaultMenuOptions = []keys.KeyName{keys.KeyClick, keys.KeyResetCache, keys.KeyPolicy, keys.KeyCopy, keys.KeyHelp, keys.KeyQuit}

func NewMenu() *Menu {
	return &Menu{
		options: defaultMenuOptions,
		keyDown: -1,
	}
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetStats updates the reported grid stats.
func (m *Menu) SetStats(s Stats) {
	m.stats = s
}

// SetWidth sets the width of the status bar.
func (m *Menu) SetWidth(width int) {
	m.width = width
}

// SetHideHints drops the key hints, leaving only the stats.
func (m *Menu) SetHideHints(hide bool) {
	m.hideHints = hide
}

func (m *Menu) statsText() string {
	s := m.stats
	return fmt.Sprintf("%d cols%s%d boxes%s%d cached%s%d clicks%s%s",
		s.Columns, separator, s.Boxes, separator, s.Cached, separator, s.Clicks, separator, s.Mode)
}

func (m *Menu) hintsText() (plain, styled string) {
	var p, s strings.Builder
	for i, k := range m.options {
		binding := keys.GlobalkeyBindings[k]

		localKeyStyle, localDescStyle := keyStyle, descStyle
		if m.keyDown == k {
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		p.WriteString(binding.Help().Key + " " + binding.Help().Desc)
		s.WriteString(localKeyStyle.Render(binding.Help().Key))
		s.WriteString(" ")
		s.WriteString(localDescStyle.Render(binding.Help().Desc))

		if i != len(m.options)-1 {
			p.WriteString(separator)
			s.WriteString(sepStyle.Render(separator))
		}
	}
	return p.String(), s.String()
}

func (m *Menu) String() string {
	stats := runewidth.Truncate(m.statsText(), max(m.width, 0), "…")
	used := runewidth.StringWidth(stats)
	line := statStyle.Render(stats)

	if !m.hideHints {
		plain, styled := m.hintsText()
		need := runewidth.StringWidth(plain) + runewidth.StringWidth(verticalSeparator)
		if used+need <= m.width {
			gap := m.width - used - need
			line += strings.Repeat(" ", gap) + sepStyle.Render(verticalSeparator) + styled
			used = m.width
		}
	}

	if used < m.width {
		line += strings.Repeat(" ", m.width-used)
	}
	return line
}
