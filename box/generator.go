package box

import (
	"math/rand/v2"

	"masonry/config"
)

// Fixed color components, in percent.
const (
	Saturation = 70
	Lightness  = 80
)

// Bounds holds the fixed dimensions every generated box shares.
type Bounds struct {
	MinWidth     float64
	MaxWidth     float64
	MinHeight    int
	HeightSpread int
}

// BoundsFromConfig extracts the generator bounds from cfg.
func BoundsFromConfig(cfg *config.Config) Bounds {
	return Bounds{
		MinWidth:     cfg.MinBoxWidth,
		MaxWidth:     cfg.MaxBoxWidth,
		MinHeight:    cfg.MinBoxHeight,
		HeightSpread: cfg.HeightSpread,
	}
}

// Generator produces boxes with random heights and colors.
type Generator struct {
	bounds Bounds
	rng    *rand.Rand
}

// NewGenerator creates a generator drawing from rng. A nil rng uses a randomly
// seeded source.
func NewGenerator(bounds Bounds, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if bounds.HeightSpread <= 0 {
		bounds.HeightSpread = 1
	}
	return &Generator{bounds: bounds, rng: rng}
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns n boxes with ids 0..n-1.
func (g *Generator) Generate(n int) []Box {
	if n <= 0 {
		return []Box{}
	}

	boxes := make([]Box, n)
	for i := range boxes {
		boxes[i] = Box{
			ID:       i,
			MinWidth: g.bounds.MinWidth,
			MaxWidth: g.bounds.MaxWidth,
			Height:   g.RandomHeight(),
			Color:    g.RandomColor(),
		}
	}
	return boxes
}

// RandomHeight draws a provisional height in [MinHeight, MinHeight+HeightSpread).
func (g *Generator) RandomHeight() float64 {
	return float64(g.bounds.MinHeight + g.rng.IntN(g.bounds.HeightSpread))
}

// RandomColor draws a color with a random hue.
func (g *Generator) RandomColor() string {
	return FormatHSL(g.rng.IntN(360))
}
