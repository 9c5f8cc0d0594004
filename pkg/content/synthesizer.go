// Package content turns extracted listing facts and market research into
// marketplace-ready copy: an optimized title, a sectioned description,
// keywords and selling points.
package content

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/extractor"
)

const (
	titleKeywordPool   = 5
	maxPrependKeywords = 2
	maxKeywords        = 5
	ellipsis           = "..."
	fallbackTitleWords = 8
	untitled           = "Item for Sale"
)

// Synthesizer writes optimized listing copy. It is stateless and safe for
// concurrent use.
type Synthesizer struct {
	logger *slog.Logger
	market models.MarketplaceConfig
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMarketplace sets the boilerplate prefixes stripped from titles.
func WithMarketplace(m models.MarketplaceConfig) Option {
	return func(s *Synthesizer) { s.market = m }
}

// New returns a Synthesizer for the default marketplace.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		logger: slog.New(slog.DiscardHandler),
		market: models.DefaultMarketplace(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the optimized content for facts. Either the whole
// result is returned or a *models.SynthesisError.
func (s *Synthesizer) Synthesize(facts *models.ProductFacts, intel *models.MarketIntelligence) (*models.OptimizedContent, error) {
	if facts == nil {
		return nil, &models.SynthesisError{Stage: models.StageSynthesize, Err: errors.New("no product facts")}
	}
	if intel == nil {
		return nil, s.fail(facts, errors.New("no market intelligence"))
	}
	if math.IsNaN(intel.PriceStats.RecommendedPrice) || math.IsInf(intel.PriceStats.RecommendedPrice, 0) {
		return nil, s.fail(facts, fmt.Errorf("invalid recommended price %v", intel.PriceStats.RecommendedPrice))
	}

	title := s.optimizeTitle(s.baseTitle(facts), intel.KeywordStats.TopKeywords)
	points := sellingPoints(facts, intel)

	keywords := intel.KeywordStats.TopKeywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	s.logger.Debug("content synthesized",
		"title", title,
		"selling_points", len(points),
		"suggested_price", intel.PriceStats.RecommendedPrice)

	return &models.OptimizedContent{
		OptimizedTitle:       title,
		OptimizedDescription: describe(facts, intel, points),
		SuggestedPrice:       intel.PriceStats.RecommendedPrice,
		Keywords:             append([]string{}, keywords...),
		SellingPoints:        points,
	}, nil
}

func (s *Synthesizer) fail(facts *models.ProductFacts, err error) error {
	s.logger.Error("content synthesis failed", "title", facts.Title, "error", err)
	return &models.SynthesisError{Stage: models.StageSynthesize, Title: facts.Title, Err: err}
}

// baseTitle is the boilerplate-free listing title. A listing without one
// borrows the opening words of its description, then a generic label.
func (s *Synthesizer) baseTitle(facts *models.ProductFacts) string {
	if t := extractor.StripBoilerplate(facts.Title, s.market.BoilerplatePrefixes); t != "" {
		return t
	}
	words := strings.Fields(facts.Description)
	if len(words) > fallbackTitleWords {
		words = words[:fallbackTitleWords]
	}
	if t := strings.TrimRight(strings.Join(words, " "), ".,;:!-"); t != "" {
		s.logger.Debug("title derived from description", "title", t)
		return t
	}
	return untitled
}

// optimizeTitle prepends up to two of the top five keywords the title does
// not already mention.
func (s *Synthesizer) optimizeTitle(title string, keywords []string) string {

	if len(keywords) > titleKeywordPool {
		keywords = keywords[:titleKeywordPool]
	}
	var missing []string
	for _, kw := range keywords {
		if kw == "" || containsWord(title, kw) {
			continue
		}
		missing = append(missing, capitalize(kw))
		if len(missing) == maxPrependKeywords {
			break
		}
	}

	if len(missing) > 0 {
		title = strings.TrimSpace(strings.Join(missing, " ") + " " + title)
	}
	return FitTitle(title)
}

// FitTitle truncates title to the marketplace limit, marking the cut with
// an ellipsis.
func FitTitle(title string) string {
	if utf8.RuneCountInString(title) <= models.MaxTitleLength {
		return title
	}
	r := []rune(title)
	return string(r[:models.MaxTitleLength-len(ellipsis)]) + ellipsis
}

func containsWord(text, word string) bool {
	re, err := regexp.Compile(`(?i)(^|[^\pL\pN])` + regexp.QuoteMeta(word) + `($|[^\pL\pN])`)
	if err != nil {
		return strings.Contains(strings.ToLower(text), strings.ToLower(word))
	}
	return re.MatchString(text)
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
