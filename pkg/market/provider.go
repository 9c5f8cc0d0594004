package market

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/dtnitsch/listing-optimizer/models"
)

// MarketDataProvider supplies comparable listings for a product.
type MarketDataProvider interface {
	FindComparables(ctx context.Context, facts *models.ProductFacts) ([]models.ComparableListing, error)
}

const (
	maxComparables      = 10
	minSimilarity       = 0.6
	soldDateChance      = 0.7
	soldWithinDays      = 30
	comparablePriceLow  = 0.7
	comparablePriceSpan = 0.6
)

var (
	comparableConditions = []string{"New", "Like New", "Used", "Refurbished", "Open Box"}
	comparablePlatforms  = []string{"eBay", "Amazon", "Mercari", "Facebook Marketplace", "Poshmark"}
	titleVariants        = []string{"%s", "%s - Great Condition", "%s (Tested)", "Lot: %s", "%s + Accessories", "%s Fast Ship"}
)

// SyntheticProvider fabricates comparable listings around the source
// price. It stands in for a live market-data integration.
type SyntheticProvider struct {
	src *randSource
	now func() time.Time
}

// NewSyntheticProvider returns a provider whose output is reproducible for
// a non-zero seed.
func NewSyntheticProvider(seed uint64, now func() time.Time) *SyntheticProvider {
	if now == nil {
		now = time.Now
	}
	return &SyntheticProvider{src: newRandSource(seed), now: now}
}

// FindComparables simulates up to ten candidate listings and keeps those
// whose similarity score is at least 0.6, sorted by price descending.
func (p *SyntheticProvider) FindComparables(ctx context.Context, facts *models.ProductFacts) ([]models.ComparableListing, error) {
	if facts == nil {
		return nil, fmt.Errorf("no product facts")
	}
	return synthesizeComparables(ctx, p.src.child(), p.now(), facts)
}

func synthesizeComparables(ctx context.Context, r *rand.Rand, now time.Time, facts *models.ProductFacts) ([]models.ComparableListing, error) {
	listings := make([]models.ComparableListing, 0, maxComparables)
	for i := 0; i < maxComparables; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		similarity := 0.4 + r.Float64()*0.6
		if similarity < minSimilarity {
			continue
		}

		condition := comparableConditions[r.IntN(len(comparableConditions))]
		listing := models.ComparableListing{
			Title:     fmt.Sprintf(titleVariants[r.IntN(len(titleVariants))], facts.Title),
			Price:     round2(facts.Price * (comparablePriceLow + r.Float64()*comparablePriceSpan)),
			Condition: condition,
			Platform:  comparablePlatforms[r.IntN(len(comparablePlatforms))],
		}
		if r.Float64() < soldDateChance {
			sold := now.AddDate(0, 0, -r.IntN(soldWithinDays)).Truncate(24 * time.Hour)
			listing.SoldDate = &sold
		}
		listings = append(listings, listing)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Price > listings[j].Price
	})
	return listings, nil
}
