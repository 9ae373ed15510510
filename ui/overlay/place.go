// Package overlay draws modal dialogs on top of the grid.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

const resetSeq = "\x1b[0m"

// PlaceOverlay draws fg centered on top of bg. Both may contain ANSI escape
// sequences; styling of the background is kept on either side of fg.
func PlaceOverlay(fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	fgWidth := lipgloss.Width(fg)
	bgWidth := lipgloss.Width(bg)
	if fgWidth >= bgWidth && len(fgLines) >= len(bgLines) {
		return fg
	}

	x := max((bgWidth-fgWidth)/2, 0)
	y := max((len(bgLines)-len(fgLines))/2, 0)

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+len(fgLines) {
			b.WriteString(bgLine)
			continue
		}

		fgLine := fgLines[i-y]
		left := truncate.String(bgLine, uint(x))
		if pad := x - ansi.PrintableRuneWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		b.WriteString(left)
		b.WriteString(resetSeq)
		b.WriteString(fgLine)
		b.WriteString(resetSeq)
		b.WriteString(cutLeft(bgLine, x+ansi.PrintableRuneWidth(fgLine)))
	}
	return b.String()
}

// cutLeft drops the first n printable cells of s. Escape sequences before the
// cut are kept so the remaining text keeps its style.
func cutLeft(s string, n int) string {
	var (
		out     strings.Builder
		seq     strings.Builder
		inSeq   bool
		pos     int
		emitted bool
	)

	for _, r := range s {
		if inSeq {
			seq.WriteRune(r)
			if ansi.IsTerminator(r) {
				out.WriteString(seq.String())
				seq.Reset()
				inSeq = false
			}
			continue
		}
		if r == ansi.Marker {
			inSeq = true
			seq.WriteRune(r)
			continue
		}

		w := runewidth.RuneWidth(r)
		if pos+w <= n && !emitted {
			pos += w
			continue
		}
		emitted = true
		out.WriteRune(r)
	}
	return out.String()
}
