package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"masonry/config"
	"masonry/inspect"
	"masonry/keys"
	"masonry/log"
	"masonry/ui"
	"masonry/ui/layout"
	"masonry/ui/overlay"
)

// maxLayoutPasses bounds how often a layout is repeated after boxes recorded
// new measurements. The second pass applies the cached heights; a third only
// happens when a resize and a measurement coincide.
const maxLayoutPasses = 3

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// Run is the main entrypoint into the application. A nil rng seeds the box
// generator randomly.
func Run(ctx context.Context, cfg *config.Config, rng *rand.Rand) error {
	h := newHome(ctx, cfg, rng)
	defer h.grid.Close()

	p := tea.NewProgram(
		h,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// RenderOnce lays the grid out for a terminal of width x height cells without
// starting the TUI and returns the rendered grid with its snapshot.
func RenderOnce(cfg *config.Config, rng *rand.Rand, width, height int) (string, *inspect.Snapshot) {
	grid := ui.NewGrid(cfg, layout.NewViewport(0, 0), rng)
	defer grid.Close()

	grid.SetSize(width, height)
	settle(grid)
	return grid.View(), grid.Snapshot()
}

func settle(grid *ui.Grid) {
	for pass := 0; pass < maxLayoutPasses; pass++ {
		if !grid.Layout() {
			return
		}
	}
	log.WarningLog.Warn("layout did not settle", "grid", grid.ID(), "passes", maxLayoutPasses)
}

type state int

const (
	stateDefault state = iota
	// stateHelp is the state when the help screen is displayed.
	stateHelp
	// statePolicy is the state when the cache policy selector is displayed.
	statePolicy
)

type home struct {
	ctx context.Context

	appConfig *config.Config

	state state

	width, height int

	// -- UI Components --

	grid *ui.Grid
	// scroll shows the part of the grid that fits above the status bar
	scroll viewport.Model
	menu   *ui.Menu
	// errMsg replaces the status bar until hideErrMsg arrives
	errMsg string

	helpOverlay   *overlay.HelpOverlay
	policyOverlay *overlay.PolicySelectorOverlay
}

func newHome(ctx context.Context, cfg *config.Config, rng *rand.Rand) *home {
	return &home{
		ctx:       ctx,
		appConfig: cfg,
		state:     stateDefault,
		grid:      ui.NewGrid(cfg, layout.NewViewport(0, 0), rng),
		scroll:    viewport.New(0, 0),
		menu:      ui.NewMenu(),
	}
}

func (m *home) Init() tea.Cmd {
	return nil
}

// updateHandleWindowSizeEvent resizes the grid. The column count follows
// synchronously through the viewport subscription.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	log.LayoutTrace("window %dx%d", msg.Width, msg.Height)

	m.grid.SetSize(msg.Width, msg.Height)
	m.relayout()
	m.ensureSelectionVisible()
}

// relayout lays the grid out until no new measurements arrive and pushes the
// result into the scroll viewport and the status bar.
func (m *home) relayout() {
	settle(m.grid)

	c := m.grid.Constraints()
	m.scroll.Width = m.width
	m.scroll.Height = c.GridHeight
	m.scroll.SetContent(m.grid.View())

	m.menu.SetWidth(m.width)
	m.menu.SetHideHints(m.grid.Degradation().HideHints)
	m.menu.SetStats(ui.Stats{
		Columns: m.grid.Columns(),
		Boxes:   len(m.grid.Boxes()),
		Cached:  m.grid.Cache().Len(),
		Clicks:  m.grid.Clicks(),
		Mode:    c.Mode.String(),
	})

	if err := inspect.WriteSnapshot(m.snapshot()); err != nil {
		log.WarningLog.Warn("failed to write inspect snapshot", "err", err)
	}
}

func (m *home) snapshot() *inspect.Snapshot {
	info := inspect.AppInfo{
		ScrollOffset: m.scroll.YOffset,
		ErrorMessage: m.errMsg,
	}
	switch m.state {
	case stateHelp:
		info.Overlay = "help"
	case statePolicy:
		info.Overlay = "policy"
	}
	return m.grid.Snapshot().WithApp(info)
}

// ensureSelectionVisible scrolls so the selected box is on screen.
func (m *home) ensureSelectionVisible() {
	b, ok := m.grid.SelectedBounds()
	if !ok || m.scroll.Height <= 0 {
		return
	}
	if b.Y < m.scroll.YOffset {
		m.scroll.SetYOffset(b.Y)
	} else if bottom := b.Y + b.Height; bottom > m.scroll.YOffset+m.scroll.Height {
		m.scroll.SetYOffset(bottom - m.scroll.Height)
	}
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideErrMsg:
		m.errMsg = ""
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	}
	return m, nil
}

func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != stateDefault || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.scroll.ScrollDown(3)
	case tea.MouseButtonLeft:
		if msg.Y >= m.scroll.Height {
			return m, nil
		}
		if m.grid.ClickAt(msg.X, msg.Y+m.scroll.YOffset) {
			log.InputTrace("click at %d,%d", msg.X, msg.Y)
			m.relayout()
		}
	}
	return m, nil
}

// handleQuit stops the program. Run closes the grid once the program exits.
func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state != stateDefault {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	highlightCmd := m.handleMenuHighlighting(msg)

	switch m.state {
	case stateHelp:
		if m.helpOverlay.HandleKeyPress(msg.String()) {
			m.helpOverlay = nil
			m.state = stateDefault
		}
		return m, nil
	case statePolicy:
		if m.policyOverlay.HandleKeyPress(msg.String()) {
			if m.policyOverlay.Selected != "" {
				m.grid.SetCachePolicy(m.policyOverlay.Selected, m.policyOverlay.BoxID)
			}
			m.policyOverlay = nil
			m.state = stateDefault
			m.relayout()
		}
		return m, nil
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}
	log.InputTrace("key %q", msg.String())

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyUp, keys.KeyDown, keys.KeyLeft, keys.KeyRight:
		m.grid.MoveSelection(directions[name])
		m.relayout()
		m.ensureSelectionVisible()
	case keys.KeyClick:
		m.grid.Click()
		m.relayout()
	case keys.KeyPageUp:
		m.scroll.ViewUp()
	case keys.KeyPageDown:
		m.scroll.ViewDown()
	case keys.KeyResetCache:
		m.grid.ResetCache()
		m.relayout()
	case keys.KeyPolicy:
		m.policyOverlay = overlay.NewPolicySelectorOverlay(m.grid.CachePolicy(), m.grid.SelectedID())
		m.state = statePolicy
	case keys.KeyCopy:
		if err := m.copySnapshot(); err != nil {
			return m, tea.Batch(highlightCmd, m.handleError(err))
		}
	case keys.KeyHelp:
		m.helpOverlay = overlay.NewHelpOverlay("masonry")
		m.helpOverlay.SetStatus("logs: " + log.FileName())
		m.state = stateHelp
	}
	return m, highlightCmd
}

var directions = map[keys.KeyName]ui.Direction{
	keys.KeyUp:    ui.Up,
	keys.KeyDown:  ui.Down,
	keys.KeyLeft:  ui.Left,
	keys.KeyRight: ui.Right,
}

func (m *home) copySnapshot() error {
	data, err := inspect.Marshal(m.snapshot())
	if err != nil {
		return err
	}
	if err := copyToClipboard(string(data)); err != nil {
		return fmt.Errorf("failed to copy layout: %w", err)
	}
	log.InfoLog.Info("copied layout snapshot", "bytes", len(data))
	return nil
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// handleError shows err in place of the status bar and returns a command that
// clears it after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Error("app error", "err", err)
	m.errMsg = err.Error()
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}

		return hideErrMsg{}
	}
}

func (m *home) View() string {
	start := time.Now()
	defer func() {
		log.GetProfiler().RecordFrame(time.Since(start))
	}()

	if m.grid.Constraints().ShowMinWarning {
		warning := ui.WarningStyle().Render(fmt.Sprintf("terminal too small: %dx%d (need %dx%d)",
			m.width, m.height, layout.MinWidth, layout.MinHeight))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, warning)
	}

	status := m.menu.String()
	if m.errMsg != "" {
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Width(m.width).
			MaxHeight(1).
			Render(m.errMsg)
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left, m.scroll.View(), status)

	switch m.state {
	case stateHelp:
		return overlay.PlaceOverlay(m.helpOverlay.Render(), mainView)
	case statePolicy:
		return overlay.PlaceOverlay(m.policyOverlay.Render(), mainView)
	}
	return mainView
}
