package market

import (
	"math"

	"github.com/dtnitsch/listing-optimizer/models"
)

const (
	maxConfidence      = 0.9
	fallbackConfidence = 0.1
	pullTowardMarket   = 0.3
)

// PriceStatistics summarizes comparable prices around original. With no
// comparables it degrades to a ±20% band around the original price.
// Average is the exact mean; Min, Max and RecommendedPrice are rounded to
// cents.
func PriceStatistics(original float64, comparables []models.ComparableListing) models.PriceStats {
	if len(comparables) == 0 {
		return models.PriceStats{
			Average:          original,
			Min:              round2(original * 0.8),
			Max:              round2(original * 1.2),
			RecommendedPrice: round2(original),
			Confidence:       fallbackConfidence,
		}
	}

	total := 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range comparables {
		total += c.Price
		lo = math.Min(lo, c.Price)
		hi = math.Max(hi, c.Price)
	}
	average := total / float64(len(comparables))

	return models.PriceStats{
		Average:          average,
		Min:              round2(lo),
		Max:              round2(hi),
		RecommendedPrice: round2(original + pullTowardMarket*(average-original)),
		Confidence:       math.Min(maxConfidence, float64(len(comparables))/10),
	}
}
