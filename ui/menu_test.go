package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"masonry/keys"
	"masonry/testing/snapshot"
)

func testMenu(width int) *Menu {
	m := NewMenu()
	m.SetWidth(width)
	m.SetStats(Stats{Columns: 4, Boxes: 120, Cached: 37, Clicks: 2, Mode: "full"})
	return m
}

func TestMenuShowsStatsAndHints(t *testing.T) {
	out := snapshot.StripANSI(testMenu(160).String())

	assert.Contains(t, out, "4 cols • 120 boxes • 37 cached • 2 clicks • full")
	assert.Contains(t, out, "r remeasure")
	assert.Contains(t, out, "q quit")
	assert.Equal(t, 160, snapshot.Width(out))
	assert.Equal(t, 1, snapshot.Lines(out))
}

func TestMenuDropsHintsThatDoNotFit(t *testing.T) {
	out := snapshot.StripANSI(testMenu(80).String())

	assert.Contains(t, out, "37 cached")
	assert.NotContains(t, out, "quit")
	assert.Equal(t, 80, snapshot.Width(out))
}

func TestMenuHideHints(t *testing.T) {
	m := testMenu(160)
	m.SetHideHints(true)

	assert.Equal(t, "4 cols • 120 boxes • 37 cached • 2 clicks • full", snapshot.Plain(m.String()))
	assert.Equal(t, 160, snapshot.Width(m.String()))
}

func TestMenuTruncatesStats(t *testing.T) {
	out := snapshot.StripANSI(testMenu(20).String())

	assert.Equal(t, 20, snapshot.Width(out))
	assert.Contains(t, out, "…")
}

func TestMenuKeydown(t *testing.T) {
	m := testMenu(160)
	plain := m.String()

	m.Keydown(keys.KeyResetCache)
	assert.Equal(t, snapshot.StripANSI(plain), snapshot.StripANSI(m.String()), "highlighting only changes styles")

	m.ClearKeydown()
	assert.Equal(t, plain, m.String())
}
