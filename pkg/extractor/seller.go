package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	feedbackSuffix = regexp.MustCompile(`\s*(\(\s*[\d,]+\s*\)|[\d.]+%\s*positive.*)$`)
	locatedPrefix  = regexp.MustCompile(`(?i)^\s*(item\s+)?located\s+in\s*:?\s*`)
)

func (e *Extractor) sellerStrategies() []strategy[string] {
	return []strategy[string]{
		selectorText("sellercard", `[data-testid="x-sellercard-atf"] [data-testid="str-title"] a, .x-sellercard-atf__info__about-seller .ux-textspans--BOLD, .x-sellercard-atf__info__about-seller a span`, acceptSeller),
		selectorText("member-badge", `.mbg-nw, #RightSummaryPanel .mbg-nw`, acceptSeller),
		selectorText("itemprop-seller", `[itemprop="seller"] [itemprop="name"], [itemprop="seller"]`, acceptSeller),
		selectorText("seller-name", `.seller-info .seller-name, .seller-name, .seller-info a`, acceptSeller),
		selectorText("seller-link", `a[href*="/usr/"], a[href*="/str/"]`, acceptSeller),
	}
}

func (e *Extractor) locationStrategies() []strategy[string] {
	return []strategy[string]{
		selectorText("itemprop-location", `[itemprop="availableAtOrFrom"]`, AcceptLocation),
		selectorText("item-location", `.ux-labels-values--itemLocation .ux-labels-values__values, #itemLocation .u-flL, .iti-eu-bld-gry`, AcceptLocation),
		selectorText("location-class", `.item-location, .location`, AcceptLocation),
		{name: "located-in", try: locatedIn},
	}
}

func acceptSeller(raw string) (string, bool) {
	s := strings.TrimSpace(feedbackSuffix.ReplaceAllString(raw, ""))
	n := utf8.RuneCountInString(s)
	return s, n >= 2 && n <= 60
}

// AcceptLocation strips a "Located in" prefix and rejects values that are
// too short or long, purely numeric, or shipping notes.
func AcceptLocation(raw string) (string, bool) {
	loc := strings.TrimSpace(locatedPrefix.ReplaceAllString(raw, ""))
	n := utf8.RuneCountInString(loc)
	if n < 2 || n > 100 {
		return "", false
	}
	if strings.Contains(strings.ToLower(loc), "shipping") {
		return "", false
	}
	numeric := strings.IndexFunc(loc, func(r rune) bool {
		return !unicode.IsDigit(r) && !unicode.IsSpace(r) && r != '-' && r != ','
	}) < 0
	if numeric {
		return "", false
	}
	return loc, true
}

// locatedIn finds the innermost element whose text starts with "Located in".
func locatedIn(p *page) (string, bool) {
	best := ""
	p.doc.Find(`span:contains("Located in"), div:contains("Located in"), p:contains("Located in")`).Each(func(_ int, s *goquery.Selection) {
		text := clean(s.Text())
		if !locatedPrefix.MatchString(text) {
			return
		}
		if best == "" || len(text) < len(best) {
			best = text
		}
	})
	if best == "" {
		return "", false
	}
	return AcceptLocation(best)
}
