// Package snapshot inspects rendered frames in tests. Styling is stripped
// before anything is measured, and widths are in terminal cells.
package snapshot

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	oscRegex  = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	s = ansiRegex.ReplaceAllString(s, "")
	return oscRegex.ReplaceAllString(s, "")
}

// Plain strips styling and trailing blanks from every line
func Plain(s string) string {
	lines := strings.Split(strings.ReplaceAll(StripANSI(s), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// Lines returns the line count of the rendered output
func Lines(s string) int {
	return len(strings.Split(StripANSI(s), "\n"))
}

// Width returns the maximum line width of the rendered output
func Width(s string) int {
	maxWidth := 0
	for _, line := range strings.Split(StripANSI(s), "\n") {
		maxWidth = max(maxWidth, runewidth.StringWidth(line))
	}
	return maxWidth
}

// LineWidths returns the width of every line of the rendered output
func LineWidths(s string) []int {
	lines := strings.Split(StripANSI(s), "\n")
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = runewidth.StringWidth(line)
	}
	return widths
}

// Crop returns the plain text of the w x h cell region at (x, y). Rows past
// the end of the frame are left out.
func Crop(s string, x, y, w, h int) []string {
	lines := strings.Split(StripANSI(s), "\n")
	if y < 0 || y >= len(lines) || w <= 0 || h <= 0 {
		return nil
	}

	region := make([]string, 0, h)
	for _, line := range lines[y:min(y+h, len(lines))] {
		line = runewidth.TruncateLeft(line, x, "")
		region = append(region, runewidth.Truncate(line, w, ""))
	}
	return region
}
