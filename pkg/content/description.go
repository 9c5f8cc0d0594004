package content

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dtnitsch/listing-optimizer/models"
)

const maxDescriptionSpecs = 8

var conditionNotes = map[string]string{
	models.ConditionBrandNew:    "This item is brand new, unused and in its original packaging.",
	models.ConditionNewOther:    "This item is new and unused but may be missing its original packaging or show minor shelf wear.",
	models.ConditionLikeNew:     "This item has been used very lightly and shows little to no signs of wear.",
	models.ConditionRefurbished: "This item has been professionally restored to full working order.",
	models.ConditionUsed:        "This item has been used and may show signs of normal wear. It is fully functional.",
	models.ConditionForParts:    "This item is sold for parts or repair and may not be fully functional.",
}

const defaultConditionNote = "Please review the photos and details for the exact condition of this item."

const callToAction = `Why Buy From Us?
Fast shipping, careful packaging and responsive support on every order.
Add this item to your cart today before it is gone!`

var (
	spaceRun = regexp.MustCompile(`[ \t]+`)
	blankRun = regexp.MustCompile(`\n{3,}`)
)

// describe assembles the optimized description: the original text followed
// by selling points, specifications, condition, pricing analysis and the
// call to action.
func describe(facts *models.ProductFacts, intel *models.MarketIntelligence, points []string) string {
	var b strings.Builder

	b.WriteString(strings.TrimSpace(facts.Description))
	b.WriteString("\n\n")

	b.WriteString("Key Features:\n")
	for i, p := range points {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	b.WriteString("\n")

	if specs := descriptionSpecs(facts.Specifications); len(specs) > 0 {
		b.WriteString("Specifications:\n")
		for _, kv := range specs {
			fmt.Fprintf(&b, "- %s: %s\n", kv[0], kv[1])
		}
		b.WriteString("\n")
	}

	b.WriteString("Condition:\n")
	b.WriteString(conditionNote(facts.Condition))
	b.WriteString("\n\n")

	writePricing(&b, facts.Price, intel.PriceStats)
	b.WriteString("\n")

	b.WriteString(callToAction)

	return normalizeWhitespace(b.String())
}

// descriptionSpecs returns up to eight label/value pairs sorted by label,
// skipping entries that mention a description or title.
func descriptionSpecs(specs map[string]string) [][2]string {
	labels := make([]string, 0, len(specs))
	for label := range specs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([][2]string, 0, maxDescriptionSpecs)
	for _, label := range labels {
		value := specs[label]
		if mentionsContentField(label) || mentionsContentField(value) {
			continue
		}
		out = append(out, [2]string{label, value})
		if len(out) == maxDescriptionSpecs {
			break
		}
	}
	return out
}

func mentionsContentField(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "description") || strings.Contains(s, "title")
}

func conditionNote(condition string) string {
	if note, ok := conditionNotes[condition]; ok {
		return note
	}
	return defaultConditionNote
}

func writePricing(b *strings.Builder, original float64, stats models.PriceStats) {
	b.WriteString("Pricing Analysis:\n")
	fmt.Fprintf(b, "Original price: %s\n", money(original))
	fmt.Fprintf(b, "Market average: %s\n", money(stats.Average))
	fmt.Fprintf(b, "Market range: %s - %s\n", money(stats.Min), money(stats.Max))
	fmt.Fprintf(b, "Recommended price: %s\n", money(stats.RecommendedPrice))
	fmt.Fprintf(b, "Confidence: %.0f%%\n", stats.Confidence*100)

	switch {
	case stats.RecommendedPrice > original:
		fmt.Fprintf(b, "Pricing opportunity: comparable items support a price of %s.\n", money(stats.RecommendedPrice))
	case stats.RecommendedPrice < original:
		fmt.Fprintf(b, "Pricing consideration: comparable items sell for less, consider %s.\n", money(stats.RecommendedPrice))
	default:
		b.WriteString("Pricing is well-aligned with the market.\n")
	}
}

func money(f float64) string {
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// normalizeWhitespace collapses runs of spaces and allows at most one blank
// line between paragraphs.
func normalizeWhitespace(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
