package market

import (
	"math"
	"math/rand/v2"

	"github.com/dtnitsch/listing-optimizer/models"
)

// trendPeriods are listed oldest first; the result is reversed.
var trendPeriods = []string{"Last 6 months", "Last 90 days", "Last 60 days", "Last 30 days"}

const (
	maxWalk         = 0.10
	stableThreshold = 0.05
)

// synthesizeTrends walks the price through the trend periods with a random
// ±10% step per period and returns them most-recent-first.
func synthesizeTrends(r *rand.Rand, basePrice float64) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(trendPeriods))
	prev := basePrice
	for i, period := range trendPeriods {
		price := prev
		if i > 0 {
			price = prev * (1 + (r.Float64()*2-1)*maxWalk)
		}
		points = append(points, models.TrendPoint{
			Period:       period,
			AveragePrice: round2(price),
			SalesVolume:  10 + r.IntN(90),
			Direction:    classifyDirection(prev, price),
		})
		prev = price
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}

// classifyDirection is stable when the relative change is under 5%.
func classifyDirection(prev, cur float64) models.TrendDirection {
	if prev == 0 {
		return models.TrendStable
	}
	delta := (cur - prev) / prev
	switch {
	case math.Abs(delta) < stableThreshold:
		return models.TrendStable
	case delta > 0:
		return models.TrendIncreasing
	default:
		return models.TrendDecreasing
	}
}
