// Package extractor turns raw listing markup into models.ProductFacts.
//
// Each field is read by an ordered cascade of strategies, from structured
// attribute markers through semantic selectors to free-text patterns over
// the whole document; the first strategy yielding a validated value wins.
// Fields that still fail validation afterwards get one field-scoped
// fallback pass driven by page metadata and readability text.
package extractor

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/parser"
)

// Extractor is safe for concurrent use; it keeps no per-page state.
type Extractor struct {
	logger   *slog.Logger
	market   models.MarketplaceConfig
	detector LanguageDetector
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMarketplace sets the title suffix, boilerplate prefixes and
// placeholder image of the target marketplace.
func WithMarketplace(m models.MarketplaceConfig) Option {
	return func(e *Extractor) { e.market = m }
}

// WithLanguageDetector enables language detection of listing text.
func WithLanguageDetector(d LanguageDetector) Option {
	return func(e *Extractor) { e.detector = d }
}

// New returns an Extractor for the default marketplace.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.New(slog.DiscardHandler),
		market: models.DefaultMarketplace(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.market.PlaceholderImageURL == "" {
		e.market.PlaceholderImageURL = models.DefaultMarketplace().PlaceholderImageURL
	}
	return e
}

// Extract never fails: malformed or empty input degrades toward defaults.
// The result always holds at least one image.
func (e *Extractor) Extract(rawHTML string) *models.ProductFacts {
	return e.ExtractPage(rawHTML, "")
}

// ExtractPage is Extract for markup fetched from pageURL. Relative image
// references are resolved against it; an empty or unparsable pageURL
// leaves them unresolved.
func (e *Extractor) ExtractPage(rawHTML, pageURL string) *models.ProductFacts {
	p := newPage(rawHTML, pageURL)

	facts := &models.ProductFacts{
		Condition: models.ConditionUnknown,
		Seller:    models.UnknownSeller,
		Location:  models.UnknownLocation,
	}
	e.primaryPass(p, facts)

	if err := validate(facts); err != nil {
		var incomplete *incompleteError
		if errors.As(err, &incomplete) {
			e.logger.Info("primary extraction incomplete, running fallback", "fields", incomplete.fields)
			e.fallbackPass(p, facts, incomplete.fields)
		}
	}

	facts.Language = detectLanguage(e.detector, strings.TrimSpace(facts.Title+" "+facts.Description))
	return facts
}

func (e *Extractor) primaryPass(p *page, facts *models.ProductFacts) {
	if v, name, ok := firstSuccess(p, e.titleStrategies()); ok {
		facts.Title = v
		e.logger.Debug("field extracted", "field", "title", "strategy", name)
	}
	if v, name, ok := firstSuccess(p, e.descriptionStrategies()); ok {
		facts.Description = v
		e.logger.Debug("field extracted", "field", "description", "strategy", name)
	}
	if v, name, ok := firstSuccess(p, e.priceStrategies()); ok {
		facts.Price = v
		e.logger.Debug("field extracted", "field", "price", "strategy", name)
	}
	if v, name, ok := firstSuccess(p, e.conditionStrategies()); ok {
		facts.Condition = v
		e.logger.Debug("field extracted", "field", "condition", "strategy", name)
	}
	facts.Images = e.extractImages(p)
	facts.Specifications = e.extractSpecs(p)
	if v, _, ok := firstSuccess(p, e.sellerStrategies()); ok {
		facts.Seller = v
	}
	if v, _, ok := firstSuccess(p, e.locationStrategies()); ok {
		facts.Location = v
	}
}

func (e *Extractor) extractImages(p *page) []models.ImageRef {
	if images, name, ok := firstSuccess(p, e.imageStrategies()); ok {
		e.logger.Debug("field extracted", "field", "images", "strategy", name, "count", len(images))
		return images
	}
	e.logger.Debug("no valid image found, using placeholder")
	return []models.ImageRef{e.placeholderImage()}
}

// fallbackPass fills only the fields named in failed; everything else is
// left as the primary pass produced it.
func (e *Extractor) fallbackPass(p *page, facts *models.ProductFacts, failed []string) {
	for _, field := range failed {
		switch field {
		case fieldTitle:
			if v, name, ok := firstSuccess(p, e.fallbackTitleStrategies()); ok {
				facts.Title = v
				e.logger.Debug("fallback field extracted", "field", field, "strategy", name)
			}
		case fieldDescription:
			if v, name, ok := firstSuccess(p, e.fallbackDescriptionStrategies()); ok {
				facts.Description = v
				e.logger.Debug("fallback field extracted", "field", field, "strategy", name)
			}
		case fieldPrice:
			if v, name, ok := firstSuccess(p, e.fallbackPriceStrategies()); ok {
				facts.Price = v
				e.logger.Debug("fallback field extracted", "field", field, "strategy", name)
			}
		case fieldCondition:
			facts.Condition = models.ConditionUsed
			if v, name, ok := firstSuccess(p, e.fallbackConditionStrategies()); ok {
				facts.Condition = v
				e.logger.Debug("fallback field extracted", "field", field, "strategy", name)
			}
		}
	}
	if len(facts.Images) == 0 {
		facts.Images = e.extractImages(p)
	}
}

// mainContent runs readability once per page.
func (e *Extractor) mainContent(p *page) (*parser.MainContent, bool) {
	if !p.mainDone {
		p.mainDone = true
		mc, err := parser.New(p.pageURL).Parse(p.raw)
		if err != nil {
			e.logger.Debug("readability failed", "error", err)
		} else {
			p.main = mc
		}
	}
	return p.main, p.main != nil
}
