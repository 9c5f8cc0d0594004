package market

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dtnitsch/listing-optimizer/models"
)

func listingsAt(prices ...float64) []models.ComparableListing {
	out := make([]models.ComparableListing, len(prices))
	for i, p := range prices {
		out[i] = models.ComparableListing{Title: "comp", Price: p, Condition: "Used", Platform: "eBay"}
	}
	return out
}

func TestPriceStatistics(t *testing.T) {
	tests := []struct {
		name        string
		original    float64
		comparables []models.ComparableListing
		want        models.PriceStats
	}{
		{
			name:     "no comparables",
			original: 100,
			want:     models.PriceStats{Average: 100, Min: 80, Max: 120, RecommendedPrice: 100, Confidence: 0.1},
		},
		{
			name:        "three comparables",
			original:    150,
			comparables: listingsAt(100, 200, 300),
			want:        models.PriceStats{Average: 200, Min: 100, Max: 300, RecommendedPrice: 165, Confidence: 0.3},
		},
		{
			name:        "confidence capped",
			original:    10,
			comparables: listingsAt(10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10),
			want:        models.PriceStats{Average: 10, Min: 10, Max: 10, RecommendedPrice: 10, Confidence: 0.9},
		},
		{
			name:        "recommendation from unrounded mean",
			original:    10,
			comparables: listingsAt(10, 10.07, 10.07),
			want:        models.PriceStats{Average: 30.14 / 3, Min: 10, Max: 10.07, RecommendedPrice: 10.01, Confidence: 0.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceStatistics(tt.original, tt.comparables)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("PriceStatistics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPriceStatistics_RecommendedBetweenOriginalAndAverage(t *testing.T) {
	for _, original := range []float64{5, 50, 500} {
		stats := PriceStatistics(original, listingsAt(40, 60, 80))
		lo, hi := original, stats.Average
		if lo > hi {
			lo, hi = hi, lo
		}
		if stats.RecommendedPrice < lo || stats.RecommendedPrice > hi {
			t.Errorf("original %v: recommended %v outside [%v, %v]", original, stats.RecommendedPrice, lo, hi)
		}
	}
}

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		prev, cur float64
		want      models.TrendDirection
	}{
		{100, 104, models.TrendStable},
		{100, 96, models.TrendStable},
		{100, 105, models.TrendIncreasing},
		{100, 90, models.TrendDecreasing},
		{0, 50, models.TrendStable},
	}
	for _, tt := range tests {
		if got := classifyDirection(tt.prev, tt.cur); got != tt.want {
			t.Errorf("classifyDirection(%v, %v) = %q, want %q", tt.prev, tt.cur, got, tt.want)
		}
	}
}
