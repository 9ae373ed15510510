// Package box defines the boxes shown in the grid and generates them.
package box

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Box is one rectangle of the grid. Lengths are in pixels. A Box never changes
// after generation; measured heights are kept by the layout cache.
type Box struct {
	ID       int
	MinWidth float64
	MaxWidth float64
	Height   float64
	Color    string
}

// WithHeight returns a copy of b with the given height.
func (b Box) WithHeight(h float64) Box {
	b.Height = h
	return b
}

// Hex converts the box color to "#rrggbb". Colors that fail to parse map to
// white so a box is always drawn.
func (b Box) Hex() string {
	h, s, l, err := ParseHSL(b.Color)
	if err != nil {
		return "#ffffff"
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

var hslPattern = regexp.MustCompile(`^hsl\((\d{1,3}), (\d{1,3})%, (\d{1,3})%\)$`)

// ParseHSL parses "hsl(H, S%, L%)" and returns hue in degrees with saturation
// and lightness in [0,1].
func ParseHSL(s string) (h, sat, light float64, err error) {
	m := hslPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("invalid hsl color %q", s)
	}

	hue, _ := strconv.Atoi(m[1])
	sp, _ := strconv.Atoi(m[2])
	lp, _ := strconv.Atoi(m[3])
	if hue >= 360 || sp > 100 || lp > 100 {
		return 0, 0, 0, fmt.Errorf("hsl component out of range in %q", s)
	}
	return float64(hue), float64(sp) / 100, float64(lp) / 100, nil
}

// FormatHSL formats a hue with the fixed grid saturation and lightness.
func FormatHSL(hue int) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, Saturation, Lightness)
}
