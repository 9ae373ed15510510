package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyClick
	KeyPageUp
	KeyPageDown
	KeyResetCache
	KeyPolicy
	KeyCopy
	KeyHelp
	KeyEsc
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"left":   KeyLeft,
	"h":      KeyLeft,
	"right":  KeyRight,
	"l":      KeyRight,
	"enter":  KeyClick,
	" ":      KeyClick,
	"pgup":   KeyPageUp,
	"pgdown": KeyPageDown,
	"r":      KeyResetCache,
	"p":      KeyPolicy,
	"y":      KeyCopy,
	"?":      KeyHelp,
	"esc":    KeyEsc,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	KeyClick: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("↵", "click"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	KeyResetCache: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "remeasure"),
	),
	KeyPolicy: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "cache policy"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy layout"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
