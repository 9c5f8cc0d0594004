package market

import (
	"math/rand/v2"

	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/analytics"
)

const (
	maxTopKeywords = 10
	minTokenLength = 2
	volumeBaseMin  = 100
	volumeBaseSpan = 900
	lengthBonus    = 25
	frequencyBonus = 150
)

// analyzeKeywords counts the keywords of the listing title and description
// and estimates a search volume for each of the top ten.
func analyzeKeywords(r *rand.Rand, facts *models.ProductFacts) models.KeywordStats {
	a := &analytics.Analytics{MinTokenLength: minTokenLength}
	freq := a.WordFrequency(facts.Title + " " + facts.Description)
	top := analytics.TopN(freq, maxTopKeywords)

	volume := make(map[string]int, len(top))
	for _, kw := range top {
		base := volumeBaseMin + r.IntN(volumeBaseSpan)
		volume[kw] = base + len(kw)*lengthBonus + freq[kw]*frequencyBonus
	}

	return models.KeywordStats{
		TopKeywords:     top,
		Frequency:       freq,
		EstimatedVolume: volume,
	}
}
