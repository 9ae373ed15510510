package ui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"masonry/box"
	"masonry/cache"
	"masonry/config"
	"masonry/inspect"
	"masonry/log"
	"masonry/ui/layout"
)

// Direction is a selection move.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var _ inspect.Introspectable = (*Grid)(nil)

type placement struct {
	column int
	index  int
}

// Grid is the masonry grid: a fixed list of boxes spread over as many columns
// as the viewport needs. Boxes report their size once after their first
// render; later layouts use the cached heights.
type Grid struct {
	id       uuid.UUID
	metrics  layout.Metrics
	viewport *layout.Viewport
	counter  *layout.ColumnCounter
	cache    *cache.LayoutCache

	policy      string
	policyBoxID int

	boxes []box.Box

	// resolved holds the boxes with cached heights applied. It is rebuilt only
	// when the cache or the viewport width changed so the distributor can
	// reuse its last result.
	resolved        []box.Box
	resolvedVersion uint64
	resolvedWidth   float64
	resolvedValid   bool

	distributor layout.Distributor
	views       map[int]*BoxView
	columns     []layout.Column
	order       []int
	placements  map[int]placement
	bounds      map[int]inspect.Bounds

	width, height int
	constraints   layout.Constraints
	degradation   layout.Degradation
	rendered      string

	selected    int
	clicks      int
	lastClicked int

	unsubscribe func()
}

// NewGrid generates cfg.BoxCount boxes from rng and lays them out in
// viewport. A nil rng is seeded randomly.
func NewGrid(cfg *config.Config, viewport *layout.Viewport, rng *rand.Rand) *Grid {
	gen := box.NewGenerator(box.BoundsFromConfig(cfg), rng)
	return NewGridWithBoxes(cfg, viewport, gen.Generate(cfg.BoxCount))
}

// NewGridWithBoxes creates a grid over a fixed list of boxes.
func NewGridWithBoxes(cfg *config.Config, viewport *layout.Viewport, boxes []box.Box) *Grid {
	g := &Grid{
		id:          uuid.New(),
		metrics:     layout.MetricsFromConfig(cfg),
		viewport:    viewport,
		counter:     layout.NewColumnCounter(viewport, cfg.MaxColumnWidth),
		boxes:       boxes,
		views:       make(map[int]*BoxView),
		placements:  make(map[int]placement),
		bounds:      make(map[int]inspect.Bounds),
		selected:    -1,
		lastClicked: -1,
	}
	if len(boxes) > 0 {
		g.selected = boxes[0].ID
	}
	g.setPolicy(cfg.CachePolicy, cfg.CacheBoxID)

	g.unsubscribe = g.counter.OnChange(func(columns int) {
		log.LayoutTrace("grid %s: %d columns", g.id, columns)
	})

	log.InfoLog.Info("grid created", "grid", g.id, "boxes", len(boxes), "columns", g.counter.Columns(), "policy", g.policy)
	return g
}

func policyFor(name string, boxID int) cache.Policy {
	if name == config.CachePolicySingle {
		return cache.SingleBox(boxID)
	}
	return cache.AllBoxes()
}

func (g *Grid) setPolicy(name string, boxID int) {
	if name != config.CachePolicySingle {
		name = config.CachePolicyAll
	}
	g.policy, g.policyBoxID = name, boxID
	g.cache = cache.New(g.viewport, cache.WithPolicy(policyFor(name, boxID)))
	g.remount()
}

// remount drops every box view so the next layout measures them again.
func (g *Grid) remount() {
	g.views = make(map[int]*BoxView)
	g.resolvedValid = false
}

// SetSize resizes the grid to a terminal of width x height cells.
func (g *Grid) SetSize(width, height int) {
	g.width, g.height = width, height
	vw, vh := layout.ViewportSize(width, height, g.metrics)
	g.viewport.Resize(vw, vh)
}

// Layout recomputes the geometry and renders every box. It reports whether
// new measurements were recorded, in which case another layout pass picks up
// the cached heights.
func (g *Grid) Layout() bool {
	done := log.GetProfiler().StartRender("grid")
	defer done()

	before := g.cache.Version()
	columns := g.counter.Columns()
	g.constraints = layout.ComputeConstraints(g.width, g.height, columns, g.metrics)
	g.degradation = layout.ComputeDegradation(g.constraints)

	_, g.columns = g.distributor.Distribute(columns, g.resolve())
	g.render()

	return g.cache.Version() != before
}

func (g *Grid) resolve() []box.Box {
	width := g.viewport.Width()
	if g.resolvedValid && g.resolvedVersion == g.cache.Version() && g.resolvedWidth == width {
		return g.resolved
	}

	resolved := make([]box.Box, len(g.boxes))
	for i, b := range g.boxes {
		if h, ok := g.cache.EstimatedHeight(b.ID); ok {
			b = b.WithHeight(h)
		}
		resolved[i] = b
	}

	g.resolved = resolved
	g.resolvedVersion = g.cache.Version()
	g.resolvedWidth = width
	g.resolvedValid = true
	return resolved
}

func (g *Grid) view(b box.Box) *BoxView {
	if v, ok := g.views[b.ID]; ok {
		return v
	}
	id := b.ID
	v := NewBoxView(b, g.metrics,
		WithOnMounted(func(width, height float64) {
			if g.cache.RecordObservedSize(id, width, height) {
				log.LayoutTrace("recorded box %d: %.0fx%.0f", id, width, height)
			}
		}),
		WithOnClick(g.onBoxClick),
	)
	g.views[b.ID] = v
	return v
}

func (g *Grid) onBoxClick(b box.Box) {
	g.clicks++
	g.lastClicked = b.ID
	log.InfoLog.Info("box clicked", "grid", g.id, "box", b.ID, "height", b.Height, "clicks", g.clicks)
}

func (g *Grid) render() {
	c := g.constraints
	margin := g.degradation.MarginRows()

	g.order = g.order[:0]
	g.placements = make(map[int]placement, len(g.boxes))
	g.bounds = make(map[int]inspect.Bounds, len(g.boxes))

	blocks := make([]string, 0, 2*len(g.columns))
	x := 0
	for ci, col := range g.columns {
		colWidth := c.ColumnWidths[ci]
		if ci > 0 && c.GapWidth > 0 {
			blocks = append(blocks, strings.Repeat(" ", c.GapWidth))
			x += c.GapWidth
		}

		parts := make([]string, 0, len(col.Boxes))
		y := 0
		for bi, b := range col.Boxes {
			v := g.view(b)
			v.Update(b, g.cache.Has(b.ID), b.ID == g.selected, g.degradation)
			out := v.Mount(colWidth)
			w, rows := v.Size()

			g.order = append(g.order, b.ID)
			g.placements[b.ID] = placement{column: ci, index: bi}
			g.bounds[b.ID] = inspect.Bounds{X: x, Y: y, Width: w, Height: rows}

			if margin > 0 {
				out += strings.Repeat("\n", margin)
			}
			parts = append(parts, out)
			y += rows + margin
		}

		column := lipgloss.NewStyle().Width(colWidth).Render(strings.Join(parts, "\n"))
		if colWidth == 0 {
			column = ""
		}
		blocks = append(blocks, column)
		x += colWidth
	}

	g.rendered = lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	log.RenderTrace("grid", "%d boxes in %d columns, %d cached", len(g.order), len(g.columns), g.cache.Len())
}

// View returns the rendered grid. It may be taller than the terminal.
func (g *Grid) View() string {
	return g.rendered
}

// MoveSelection moves the selection to the neighbouring box in direction d.
func (g *Grid) MoveSelection(d Direction) {
	p, ok := g.placements[g.selected]
	if !ok {
		if len(g.order) > 0 {
			g.selected = g.order[0]
		}
		return
	}

	switch d {
	case Up:
		if p.index > 0 {
			g.selected = g.columns[p.column].Boxes[p.index-1].ID
		}
	case Down:
		if p.index < len(g.columns[p.column].Boxes)-1 {
			g.selected = g.columns[p.column].Boxes[p.index+1].ID
		}
	case Left, Right:
		step := 1
		if d == Left {
			step = -1
		}
		for ci := p.column + step; ci >= 0 && ci < len(g.columns); ci += step {
			if len(g.columns[ci].Boxes) > 0 {
				g.selected = g.nearest(ci, g.bounds[g.selected])
				break
			}
		}
	}
	log.InputTrace("selected box %d", g.selected)
}

// nearest returns the box of column ci whose vertical center is closest to
// the center of from.
func (g *Grid) nearest(ci int, from inspect.Bounds) int {
	center := 2*from.Y + from.Height
	best, bestDist := -1, 0
	for _, b := range g.columns[ci].Boxes {
		bb := g.bounds[b.ID]
		dist := 2*bb.Y + bb.Height - center
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = b.ID, dist
		}
	}
	return best
}

// Click clicks the selected box.
func (g *Grid) Click() {
	if v, ok := g.views[g.selected]; ok {
		v.Click()
	}
}

// ClickAt selects and clicks the box at cell (x, y) of the grid view. It
// reports whether a box was hit.
func (g *Grid) ClickAt(x, y int) bool {
	for _, id := range g.order {
		if g.bounds[id].Contains(x, y) {
			g.selected = id
			g.Click()
			return true
		}
	}
	return false
}

// SetCachePolicy replaces the cache with an empty one using the given policy
// and measures every box again. boxID is used by the single policy.
func (g *Grid) SetCachePolicy(policy string, boxID int) {
	g.setPolicy(policy, boxID)
	log.InfoLog.Info("cache policy changed", "grid", g.id, "policy", g.policy, "box", boxID)
}

// ResetCache forgets every measurement and measures every box again.
func (g *Grid) ResetCache() {
	g.cache.Reset()
	g.remount()
	log.InfoLog.Info("cache reset", "grid", g.id)
}

// Close detaches the grid from the viewport and drops its cache.
func (g *Grid) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	g.counter.Close()
	g.cache.Reset()
	g.remount()
	log.InfoLog.Info("grid closed", "grid", g.id)
}

// ID returns the grid instance id.
func (g *Grid) ID() string {
	return g.id.String()
}

// Columns returns the resolved column count.
func (g *Grid) Columns() int {
	return g.counter.Columns()
}

// Constraints returns the geometry of the last layout.
func (g *Grid) Constraints() layout.Constraints {
	return g.constraints
}

// Degradation returns the degradation flags of the last layout.
func (g *Grid) Degradation() layout.Degradation {
	return g.degradation
}

// Boxes returns the generated boxes with their provisional heights.
func (g *Grid) Boxes() []box.Box {
	return g.boxes
}

// Resolved returns the boxes with cached heights applied, as last laid out.
func (g *Grid) Resolved() []box.Box {
	return g.resolved
}

// Order returns the box ids in render order.
func (g *Grid) Order() []int {
	return append([]int(nil), g.order...)
}

// Cache returns the layout cache.
func (g *Grid) Cache() *cache.LayoutCache {
	return g.cache
}

// CachePolicy returns the active cache policy name.
func (g *Grid) CachePolicy() string {
	return g.policy
}

// Distributions returns how many times the boxes were distributed.
func (g *Grid) Distributions() int {
	return g.distributor.Computations()
}

// Clicks returns the number of box clicks.
func (g *Grid) Clicks() int {
	return g.clicks
}

// LastClicked returns the id of the last clicked box, or -1.
func (g *Grid) LastClicked() int {
	return g.lastClicked
}

// SelectedID returns the id of the selected box, or -1 when there are none.
func (g *Grid) SelectedID() int {
	return g.selected
}

// SelectedBounds returns where the selected box was drawn.
func (g *Grid) SelectedBounds() (inspect.Bounds, bool) {
	b, ok := g.bounds[g.selected]
	return b, ok
}

// InspectNode implements inspect.Introspectable.
func (g *Grid) InspectNode() *inspect.Node {
	root := inspect.NewNode("Grid").
		WithID(g.ID()).
		WithBounds(inspect.Bounds{Width: g.constraints.TotalWidth(), Height: lipgloss.Height(g.rendered)}).
		WithState("columns", g.Columns()).
		WithState("cached", g.cache.Len()).
		WithState("policy", g.policy)
	if g.policy == config.CachePolicySingle {
		root.WithState("policy_box", g.policyBoxID)
	}

	x := 0
	for ci, col := range g.columns {
		width := g.constraints.ColumnWidths[ci]
		if ci > 0 {
			x += g.constraints.GapWidth
		}
		cn := inspect.NewNode("Column").
			WithID(fmt.Sprintf("%d", ci)).
			WithBounds(inspect.Bounds{X: x, Width: width}).
			WithState("height", col.Height)
		for _, b := range col.Boxes {
			if v, ok := g.views[b.ID]; ok {
				cn.AddChild(v.InspectNode().WithBounds(g.bounds[b.ID]))
			}
		}
		root.AddChild(cn)
		x += width
	}
	return root
}

// Snapshot describes the grid for inspection.
func (g *Grid) Snapshot() *inspect.Snapshot {
	return inspect.NewSnapshot().
		WithTerminal(g.width, g.height).
		WithLayout(g.constraints, g.degradation).
		WithGrid(g.ID(), g.counter.MaxColumnWidth(), len(g.boxes), g.cache.Len(), g.policy, g.selected, g.clicks, g.Order()).
		WithComponents(g.InspectNode())
}
