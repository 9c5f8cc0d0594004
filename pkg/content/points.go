package content

import (
	"strings"

	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/analytics"
)

const (
	maxSellingPoints = 5
	maxTitlePoints   = 3
	maxConditionPts  = 2
	minImportantLen  = 3
)

var conditionPoints = map[string][]string{
	models.ConditionBrandNew:    {"Factory sealed", "Warranty included"},
	models.ConditionNewOther:    {"Never used", "Includes all original accessories"},
	models.ConditionLikeNew:     {"Minimal signs of use", "Fully functional"},
	models.ConditionRefurbished: {"Professionally refurbished", "Tested and certified"},
	models.ConditionUsed:        {"Gently used", "Tested and working"},
	models.ConditionForParts:    {"Ideal for repair or parts", "Sold as-is"},
}

var genericPoints = []string{
	"Fast and secure shipping",
	"Carefully packaged",
	"Trusted seller",
	"Great value for money",
	"Easy returns",
}

// sellingPoints derives at most five distinct points from the title, the
// condition and the price position, padded from a generic pool.
func sellingPoints(facts *models.ProductFacts, intel *models.MarketIntelligence) []string {
	var points []string
	seen := make(map[string]bool)
	add := func(p string) {
		key := strings.ToLower(p)
		if len(points) >= maxSellingPoints || seen[key] {
			return
		}
		seen[key] = true
		points = append(points, p)
	}

	titled := 0
	for _, word := range importantWords(facts.Title) {
		if titled == maxTitlePoints {
			break
		}
		before := len(points)
		add("Premium " + capitalize(word) + " quality")
		titled += len(points) - before
	}

	cond := conditionPoints[facts.Condition]
	if len(cond) > maxConditionPts {
		cond = cond[:maxConditionPts]
	}
	for _, p := range cond {
		add(p)
	}

	if facts.Price > 0 && facts.Price < intel.PriceStats.Average {
		add("Priced below market average")
		add("Save money compared to similar listings")
	}

	for _, p := range genericPoints {
		add(p)
	}
	return points
}

// importantWords returns the distinct title words longer than three
// characters that are not stop-words, in title order.
func importantWords(title string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range analytics.Tokenize(title) {
		if len(tok) <= minImportantLen || analytics.IsStopword(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
