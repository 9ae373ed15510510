package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/box"
	"masonry/config"
	"masonry/testing/harness"
	"masonry/testing/snapshot"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.BoxCount = 30
	return cfg
}

func newTestHome(t *testing.T, width, height int) (*home, *harness.Harness) {
	t.Helper()
	m := newHome(context.Background(), testConfig(), box.NewSeededRand(7))
	t.Cleanup(m.grid.Close)
	return m, harness.New(t, m, width, height)
}

func TestViewFillsTerminal(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		m, h := newTestHome(t, size.Width, size.Height)
		assert.Equal(t, size.Columns, m.grid.Columns())

		view := h.View()
		assert.Equal(t, size.Height, snapshot.Lines(view))
		for i, w := range snapshot.LineWidths(view) {
			assert.Equal(t, size.Width, w, "line %d", i)
		}
	})
}

func TestResizeUpdatesColumns(t *testing.T) {
	m, h := newTestHome(t, 128, 40)
	assert.Equal(t, 4, m.grid.Columns())
	assert.Equal(t, 30, m.grid.Cache().Len(), "every box measured after the first frame")
	assert.Contains(t, snapshot.StripANSI(h.View()), "4 cols")

	h.Resize(64, 40)
	assert.Equal(t, 2, m.grid.Columns())
	assert.Equal(t, 30, m.grid.Cache().Len())
	assert.Contains(t, snapshot.StripANSI(h.View()), "2 cols")
}

func TestTooSmallShowsWarning(t *testing.T) {
	_, h := newTestHome(t, harness.TooSmall.Width, harness.TooSmall.Height)
	assert.Contains(t, snapshot.StripANSI(h.View()), "too small")

	h.Resize(80, 24)
	assert.NotContains(t, snapshot.StripANSI(h.View()), "too small")
}

func TestQuit(t *testing.T) {
	m, h := newTestHome(t, 80, 24)
	assert.False(t, harness.IsQuit(h.SendKey("x")))
	assert.True(t, harness.IsQuit(h.SendKey("q")))
	assert.Equal(t, 30, m.grid.Cache().Len(), "the grid is closed by Run, not by the quit key")

	_, h = newTestHome(t, 80, 24)
	assert.True(t, harness.IsQuit(h.SendSpecialKey(tea.KeyCtrlC)))
}

func TestKeyboardSelectionAndClick(t *testing.T) {
	m, h := newTestHome(t, 128, 40)
	first := m.grid.SelectedID()

	h.SendSpecialKey(tea.KeyEnter)
	assert.Equal(t, 1, m.grid.Clicks())
	assert.Equal(t, first, m.grid.LastClicked())

	h.SendKey("j")
	assert.NotEqual(t, first, m.grid.SelectedID())
	h.Keys("k", "k")
	assert.Equal(t, first, m.grid.SelectedID(), "stops at the top of the column")

	assert.Contains(t, snapshot.StripANSI(h.View()), "1 clicks")
}

func TestMouse(t *testing.T) {
	m, h := newTestHome(t, 128, 40)
	order := m.grid.Order()
	require.NotEmpty(t, order)

	h.Click(0, 0)
	assert.Equal(t, 1, m.grid.Clicks())
	assert.Equal(t, order[0], m.grid.LastClicked())

	h.Click(0, 39)
	assert.Equal(t, 1, m.grid.Clicks(), "clicks on the status bar are ignored")

	h.Wheel(true)
	assert.Equal(t, 3, m.scroll.YOffset)
	h.Wheel(false)
	assert.Equal(t, 0, m.scroll.YOffset)
}

func TestRemeasure(t *testing.T) {
	m, h := newTestHome(t, 128, 40)
	require.Equal(t, 30, m.grid.Cache().Len())
	version := m.grid.Cache().Version()

	assert.NotNil(t, h.SendKey("r"), "pressed key is highlighted")
	assert.Equal(t, 30, m.grid.Cache().Len())
	assert.NotEqual(t, version, m.grid.Cache().Version())

	h.SendMsg(keyupMsg{})
}

func TestHelpOverlay(t *testing.T) {
	m, h := newTestHome(t, 128, 40)

	h.SendKey("?")
	require.Equal(t, stateHelp, m.state)
	view := snapshot.StripANSI(h.View())
	assert.Contains(t, view, "remeasure")
	assert.Contains(t, view, "logs:")
	assert.Equal(t, "help", m.snapshot().App.Overlay)

	h.SendKey("l")
	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, 0, m.grid.Clicks())
}

func TestPolicyOverlay(t *testing.T) {
	m, h := newTestHome(t, 128, 40)
	selected := m.grid.SelectedID()

	h.SendKey("p")
	require.Equal(t, statePolicy, m.state)
	assert.Contains(t, snapshot.StripANSI(h.View()), "Layout Cache Policy")

	h.SendSpecialKey(tea.KeyDown)
	h.SendSpecialKey(tea.KeyEnter)
	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, config.CachePolicySingle, m.grid.CachePolicy())
	assert.Equal(t, 1, m.grid.Cache().Len())
	assert.True(t, m.grid.Cache().Has(selected))

	h.SendKey("p")
	h.SendSpecialKey(tea.KeyEsc)
	assert.Equal(t, stateDefault, m.state)
	assert.Equal(t, config.CachePolicySingle, m.grid.CachePolicy(), "escape keeps the policy")
}

func TestCopyLayout(t *testing.T) {
	orig := copyToClipboard
	t.Cleanup(func() { copyToClipboard = orig })

	t.Run("copies snapshot json", func(t *testing.T) {
		var copied string
		copyToClipboard = func(text string) error {
			copied = text
			return nil
		}

		m, h := newTestHome(t, 128, 40)
		h.SendKey("y")
		assert.Contains(t, copied, `"cache_policy": "all"`)
		assert.Contains(t, copied, `"columns": 4`)
		assert.Empty(t, m.errMsg)
	})

	t.Run("shows error", func(t *testing.T) {
		copyToClipboard = func(string) error {
			return errors.New("no clipboard")
		}

		m, h := newTestHome(t, 128, 40)
		assert.NotNil(t, h.SendKey("y"))
		assert.Contains(t, m.errMsg, "no clipboard")
		assert.Contains(t, snapshot.StripANSI(h.View()), "failed to copy layout")

		h.SendMsg(hideErrMsg{})
		assert.Empty(t, m.errMsg)
	})
}

func TestRenderOnce(t *testing.T) {
	view, snap := RenderOnce(testConfig(), box.NewSeededRand(7), 128, 40)

	require.NotEmpty(t, view)
	assert.Equal(t, 4, snap.Grid.Columns)
	assert.Equal(t, 30, snap.Grid.CachedBoxes)
	assert.Len(t, snap.Grid.Order, 30)
	for i, w := range snapshot.LineWidths(view) {
		assert.Equal(t, 128, w, "line %d", i)
	}
}
