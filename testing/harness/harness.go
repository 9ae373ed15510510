// Package harness drives a Bubble Tea model in tests without a terminal.
// Messages are delivered synchronously; commands are returned, not run.
package harness

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness wraps a tea.Model for testing
type Harness struct {
	model tea.Model
}

// New creates a new Harness and sends the initial window size
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	t.Helper()
	h := &Harness{model: model}
	h.Resize(width, height)
	return h
}

// SendMsg sends a tea.Msg to the model and updates it
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// SendKey sends a key press message
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// Keys sends each key in turn and returns the command of the last one
func (h *Harness) Keys(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.SendKey(k)
	}
	return cmd
}

// SendSpecialKey sends a special key (Enter, Esc, arrows, ...)
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// Click sends a left mouse press at cell (x, y)
func (h *Harness) Click(x, y int) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
}

// Wheel sends a mouse wheel event; down scrolls toward the end
func (h *Harness) Wheel(down bool) tea.Cmd {
	button := tea.MouseButtonWheelUp
	if down {
		button = tea.MouseButtonWheelDown
	}
	return h.SendMsg(tea.MouseMsg{Action: tea.MouseActionPress, Button: button})
}

// Resize simulates a terminal resize
func (h *Harness) Resize(width, height int) tea.Cmd {
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current rendered view
func (h *Harness) View() string {
	return h.model.View()
}

// IsQuit reports whether cmd makes the program quit
func IsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// TerminalSize is a terminal size and the number of 256px columns it fits
// with 8px wide cells.
type TerminalSize struct {
	Name    string
	Width   int
	Height  int
	Columns int
}

// CommonSizes covers one column up to ten
var CommonSizes = []TerminalSize{
	{Name: "narrow", Width: 30, Height: 24, Columns: 1},
	{Name: "minimum", Width: 80, Height: 24, Columns: 3},
	{Name: "standard", Width: 120, Height: 40, Columns: 4},
	{Name: "wide", Width: 128, Height: 40, Columns: 4},
	{Name: "large", Width: 200, Height: 50, Columns: 7},
	{Name: "huge", Width: 320, Height: 60, Columns: 10},
}

// TooSmall is below the minimum terminal size
var TooSmall = TerminalSize{Name: "too-small", Width: 16, Height: 4, Columns: 1}

// RunWithSizes runs a test function for each terminal size
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs a test function for all common terminal sizes
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}
