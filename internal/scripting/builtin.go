package scripting

import "math"

// Builtin holds the stock formulas, used directly when scripting is disabled
// and as the Engine's fallback.
type Builtin struct{}

// CookTime is prep time per guest times party size.
func (Builtin) CookTime(partySize int, prepTime float64) float64 {
	return float64(partySize) * prepTime
}

// RateVisit maps final happiness onto 0–5 stars in half-star steps, one half
// star off for a cold plate.
func (Builtin) RateVisit(happiness float64, _ int, coldPlate bool) float64 {
	stars := math.Round(happiness*10) / 2
	if coldPlate {
		stars -= 0.5
	}
	return clampStars(stars)
}

func clampStars(v float64) float64 {
	return math.Max(0, math.Min(5, v))
}
