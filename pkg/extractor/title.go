package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const minTitleLength = 5

// titleStrategies are ordered from structured markers to the <title> tag.
func (e *Extractor) titleStrategies() []strategy[string] {
	return []strategy[string]{
		selectorText("itemprop-name", `h1[itemprop="name"], [itemprop="name"]`, e.acceptTitle),
		selectorText("x-item-title", `[data-testid="x-item-title"] .ux-textspans, h1.x-item-title__mainTitle span`, e.acceptTitle),
		selectorText("item-title", `#itemTitle, h1.it-ttl`, e.acceptTitle),
		selectorText("heading", `.product-title, .listing-title, h1`, e.acceptTitle),
		selectorText("document-title", `title`, e.acceptDocumentTitle),
	}
}

// fallbackTitleStrategies only read page metadata.
func (e *Extractor) fallbackTitleStrategies() []strategy[string] {
	return []strategy[string]{
		metaContent("meta-title", []string{"og:title", "twitter:title", "title"}, e.acceptDocumentTitle),
		{name: "readability", try: func(p *page) (string, bool) {
			mc, ok := e.mainContent(p)
			if !ok {
				return "", false
			}
			return e.acceptDocumentTitle(mc.Title)
		}},
	}
}

func (e *Extractor) acceptTitle(raw string) (string, bool) {
	t := StripBoilerplate(raw, e.market.BoilerplatePrefixes)
	return t, utf8.RuneCountInString(t) > minTitleLength
}

func (e *Extractor) acceptDocumentTitle(raw string) (string, bool) {
	return e.acceptTitle(e.stripTitleSuffix(raw))
}

// stripTitleSuffix removes a trailing marketplace suffix such as "| eBay".
func (e *Extractor) stripTitleSuffix(t string) string {
	suffix := e.market.TitleSuffix
	if suffix == "" {
		return t
	}
	trimmed := strings.TrimRightFunc(t, unicode.IsSpace)
	cut := len(trimmed) - len(suffix)
	if cut > 0 && strings.EqualFold(trimmed[cut:], suffix) {
		return strings.TrimSpace(trimmed[:cut])
	}
	return t
}

// StripBoilerplate removes known marketplace prefixes (e.g. "Details about")
// from a title and collapses its whitespace.
func StripBoilerplate(title string, prefixes []string) string {
	t := clean(title)
	for changed := true; changed; {
		changed = false
		for _, prefix := range prefixes {
			if prefix == "" || len(t) < len(prefix) || !strings.EqualFold(t[:len(prefix)], prefix) {
				continue
			}
			t = strings.TrimLeft(t[len(prefix):], " :-–|")
			changed = true
			break
		}
	}
	return strings.TrimSpace(t)
}
