package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	shortDescription   = 50
	minBlockLength     = 20
	maxDescriptionSize = 1000
)

// descriptionContainers are the structural candidates; the longest wins.
var descriptionContainers = []string{
	`[itemprop="description"]`,
	`[data-testid="x-item-description"]`,
	`.x-item-description`,
	`#viewItemDesc`,
	`#desc_div`,
	`#ds_div`,
	`.item-description`,
	`.product-description`,
	`#description`,
}

func (e *Extractor) descriptionStrategies() []strategy[string] {
	return []strategy[string]{
		{name: "containers", try: containerDescription},
	}
}

func (e *Extractor) fallbackDescriptionStrategies() []strategy[string] {
	return []strategy[string]{
		metaContent("meta-description", []string{"description", "og:description", "twitter:description"}, nonEmpty),
		{name: "readability", try: e.readableDescription},
	}
}

// containerDescription picks the longest container text and, when that is
// still short, tries the page's text blocks instead.
func containerDescription(p *page) (string, bool) {
	best := ""
	for _, sel := range descriptionContainers {
		p.doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := clean(s.Text()); utf8.RuneCountInString(text) > utf8.RuneCountInString(best) {
				best = text
			}
		})
	}

	if utf8.RuneCountInString(best) < shortDescription {
		if blocks := textBlocks(p); utf8.RuneCountInString(blocks) > utf8.RuneCountInString(best) {
			best = blocks
		}
	}
	return best, best != ""
}

// textBlocks joins the distinct leaf paragraph/div texts longer than
// minBlockLength, capped at maxDescriptionSize characters.
func textBlocks(p *page) string {
	seen := make(map[string]struct{})
	var parts []string
	size := 0
	p.doc.Find("p, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Find("p, div").Length() > 0 {
			return true
		}
		text := clean(s.Text())
		if utf8.RuneCountInString(text) <= minBlockLength {
			return true
		}
		if _, dup := seen[text]; dup {
			return true
		}
		seen[text] = struct{}{}
		parts = append(parts, text)
		size += utf8.RuneCountInString(text) + 1
		return size < maxDescriptionSize
	})
	return truncateRunes(strings.Join(parts, " "), maxDescriptionSize)
}

func (e *Extractor) readableDescription(p *page) (string, bool) {
	mc, ok := e.mainContent(p)
	if !ok {
		return "", false
	}
	if mc.Text != "" {
		return truncateRunes(mc.Text, maxDescriptionSize), true
	}
	return mc.Excerpt, mc.Excerpt != ""
}
