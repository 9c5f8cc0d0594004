package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`[$£€¥]\s*[\d,]+(?:\.\d+)?`)

// ParsePrice returns the first currency amount in text, or 0 when text has
// no currency amount. "$1,234.56" parses to 1234.56.
func ParsePrice(text string) float64 {
	match := currencyPattern.FindString(text)
	if match == "" {
		return 0
	}
	return parseAmount(match)
}

// parseAmount keeps digits and the decimal point and parses the rest.
func parseAmount(s string) float64 {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	d, err := decimal.NewFromString(digits)
	if err != nil || d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

var priceSelectors = []struct {
	name     string
	selector string
}{
	{"x-price", `.x-price-primary .ux-textspans, .x-price-primary, [data-testid="x-price-primary"]`},
	{"item-price", `#prcIsum, #mm-saleDscPrc, #prcIsum_bidPrice, .notranslate`},
	{"price-class", `.price, .product-price, [class*="price"]`},
}

func (e *Extractor) priceStrategies() []strategy[float64] {
	strategies := []strategy[float64]{
		{name: "itemprop-price", try: itempropPrice},
	}
	for _, ps := range priceSelectors {
		strategies = append(strategies, selectorPrice(ps.name, ps.selector))
	}
	return append(strategies, strategy[float64]{name: "document-scan", try: scanPrice})
}

func (e *Extractor) fallbackPriceStrategies() []strategy[float64] {
	return []strategy[float64]{
		{name: "meta-price", try: metaPrice},
		{name: "document-scan", try: scanPrice},
	}
}

// itempropPrice reads schema.org price markup, which usually carries a bare
// number in its content attribute.
func itempropPrice(p *page) (float64, bool) {
	var price float64
	p.doc.Find(`[itemprop="price"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if content, ok := s.Attr("content"); ok {
			price = parseAmount(content)
		}
		if price <= 0 {
			price = ParsePrice(s.Text())
		}
		return price <= 0
	})
	return price, price > 0
}

func selectorPrice(name, selector string) strategy[float64] {
	return strategy[float64]{
		name: name,
		try: func(p *page) (float64, bool) {
			var price float64
			p.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				price = ParsePrice(clean(s.Text()))
				return price <= 0
			})
			return price, price > 0
		},
	}
}

// scanPrice returns the first non-zero currency amount in the page text.
func scanPrice(p *page) (float64, bool) {
	for _, match := range currencyPattern.FindAllString(p.text, -1) {
		if price := parseAmount(match); price > 0 {
			return price, true
		}
	}
	return 0, false
}

func metaPrice(p *page) (float64, bool) {
	for _, key := range []string{"product:price:amount", "og:price:amount", "price"} {
		sel := p.doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"], meta[itemprop="` + key + `"]`)
		if content, ok := sel.First().Attr("content"); ok {
			if price := parseAmount(content); price > 0 {
				return price, true
			}
		}
	}
	return 0, false
}
