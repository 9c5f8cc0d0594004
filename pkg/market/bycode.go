package market

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/listing-optimizer/models"
)

var productCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{5,19}$`)

var (
	codeBrands     = []string{"Apple", "Samsung", "Sony", "Nike", "Canon", "Dell", "Bose", "LEGO", "Nintendo", "KitchenAid"}
	codeCategories = []string{"Wireless Headphones", "Smartphone", "Running Shoes", "Digital Camera", "Laptop", "Smart Watch", "Bluetooth Speaker", "Building Set", "Game Console", "Stand Mixer"}
	codeConditions = []string{models.ConditionBrandNew, models.ConditionLikeNew, models.ConditionUsed, models.ConditionRefurbished}
)

const suggestedKeywords = 5

// ValidateProductCode checks that code looks like a UPC/EAN/SKU style
// identifier.
func ValidateProductCode(code string) error {
	if !productCodePattern.MatchString(code) {
		return &models.ValidationError{
			Field:  "product code",
			Value:  code,
			Reason: "must be 6-20 letters, digits or dashes",
		}
	}
	return nil
}

// ResearchByCode researches a product known only by its code. Placeholder
// facts are synthesized from the code, overlaid with the non-empty fields
// of partial, and researched; the result adds convenience fields for
// callers that never had full facts.
func (r *Researcher) ResearchByCode(ctx context.Context, code string, partial *models.ProductFacts) (*models.CodeResearch, error) {
	code = strings.TrimSpace(code)
	if err := ValidateProductCode(code); err != nil {
		return nil, err
	}

	facts := r.placeholderFacts(code)
	overlay(facts, partial)
	r.logger.Info("researching product code", "code", code, "title", facts.Title)

	intel, err := r.Research(ctx, facts)
	if err != nil {
		return nil, err
	}

	top := intel.KeywordStats.TopKeywords
	if len(top) > suggestedKeywords {
		top = top[:suggestedKeywords]
	}
	trend := models.TrendStable
	if len(intel.Trends) > 0 {
		trend = intel.Trends[0].Direction
	}

	return &models.CodeResearch{
		Code:           code,
		Facts:          *facts,
		Intelligence:   *intel,
		SuggestedTitle: suggestTitle(facts.Title, top),
		SuggestedPrice: intel.PriceStats.RecommendedPrice,
		PriceRange:     models.PriceRange{Min: intel.PriceStats.Min, Max: intel.PriceStats.Max},
		Confidence:     intel.PriceStats.Confidence,
		Trend:          trend,
		TopKeywords:    top,
	}, nil
}

func (r *Researcher) placeholderFacts(code string) *models.ProductFacts {
	rnd := r.src.child()
	brand := codeBrands[rnd.IntN(len(codeBrands))]
	category := codeCategories[rnd.IntN(len(codeCategories))]
	condition := codeConditions[rnd.IntN(len(codeConditions))]

	return &models.ProductFacts{
		Title:       fmt.Sprintf("%s %s %s", brand, category, code),
		Description: fmt.Sprintf("%s %s, product code %s. %s condition.", brand, category, code, condition),
		Price:       round2(20 + rnd.Float64()*480),
		Condition:   condition,
		Images: []models.ImageRef{{
			URL:       models.DefaultMarketplace().PlaceholderImageURL,
			AltText:   "No image available",
			SizeClass: models.SizeMedium,
			IsValid:   true,
		}},
		Specifications: map[string]string{
			"Brand":        brand,
			"Type":         category,
			"Product Code": code,
		},
		Seller:   models.UnknownSeller,
		Location: models.UnknownLocation,
	}
}

// overlay copies the non-empty fields of partial onto facts.
func overlay(facts, partial *models.ProductFacts) {
	if partial == nil {
		return
	}
	if partial.Title != "" {
		facts.Title = partial.Title
	}
	if partial.Description != "" {
		facts.Description = partial.Description
	}
	if partial.Price > 0 {
		facts.Price = partial.Price
	}
	if partial.Condition != "" {
		facts.Condition = partial.Condition
	}
	if len(partial.Images) > 0 {
		facts.Images = append([]models.ImageRef(nil), partial.Images...)
	}
	for k, v := range partial.Specifications {
		facts.Specifications[k] = v
	}
	if partial.Seller != "" {
		facts.Seller = partial.Seller
	}
	if partial.Location != "" {
		facts.Location = partial.Location
	}
}

// suggestTitle appends the top keywords missing from title while the
// result stays within the marketplace title limit.
func suggestTitle(title string, keywords []string) string {
	out := title
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			continue
		}
		candidate := out + " " + strings.ToUpper(kw[:1]) + kw[1:]
		if len([]rune(candidate)) > models.MaxTitleLength {
			break
		}
		out = candidate
	}
	if r := []rune(out); len(r) > models.MaxTitleLength {
		out = string(r[:models.MaxTitleLength-3]) + "..."
	}
	return out
}
