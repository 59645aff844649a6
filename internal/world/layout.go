package world

import (
	"math"

	"github.com/kitchensim/server/internal/component"
)

// GridLayout places xCount × yCount tables on a grid centred on the kitchen:
// x runs over [-xCount/2, xCount/2) and y over [-yCount/2, yCount/2), each
// step spacing meters apart.
func GridLayout(xCount, yCount int, spacing float64) []component.Position {
	out := make([]component.Position, 0, xCount*yCount)
	xh := float64(xCount) / 2
	yh := float64(yCount) / 2
	for x := -math.Floor(xh); x < xh; x++ {
		for y := -math.Floor(yh); y < yh; y++ {
			out = append(out, component.Position{X: x * spacing, Y: y * spacing})
		}
	}
	return out
}

// DistanceToKitchen is the straight-line distance from the origin.
func DistanceToKitchen(p component.Position) float64 {
	return math.Hypot(p.X, p.Y)
}
