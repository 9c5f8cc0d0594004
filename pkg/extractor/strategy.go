package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/listing-optimizer/pkg/parser"
)

// page is the parsed input shared by every strategy of one extraction.
type page struct {
	raw     string
	pageURL string
	base    *url.URL // nil when pageURL is not absolute
	doc     *goquery.Document
	text    string // normalized body text, scripts and styles removed

	main     *parser.MainContent
	mainDone bool
}

func newPage(raw, pageURL string) *page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// Only reader errors reach here; an empty document keeps every
		// strategy on its default path.
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	doc.Find("script,style,noscript,template").Remove()

	body := doc.Find("body")
	text := body.Text()
	if body.Length() == 0 {
		text = doc.Text()
	}
	var base *url.URL
	if u, err := url.Parse(strings.TrimSpace(pageURL)); err == nil && u.IsAbs() && u.Host != "" {
		base = u
	}
	return &page{raw: raw, pageURL: pageURL, base: base, doc: doc, text: clean(text)}
}

// strategy is one step of a selector cascade.
type strategy[T any] struct {
	name string
	try  func(p *page) (T, bool)
}

// firstSuccess evaluates strategies in order and returns the first
// accepted value along with the name of the strategy that produced it.
func firstSuccess[T any](p *page, strategies []strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.try(p); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}

// selectorText builds a strategy that walks the elements matching selector
// in document order and returns the first text accepted by accept.
func selectorText(name, selector string, accept func(string) (string, bool)) strategy[string] {
	return strategy[string]{
		name: name,
		try: func(p *page) (string, bool) {
			var out string
			var found bool
			p.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				out, found = accept(clean(s.Text()))
				return !found
			})
			return out, found
		},
	}
}

// metaContent builds a strategy reading the content attribute of the first
// <meta> tag whose name or property is one of keys.
func metaContent(name string, keys []string, accept func(string) (string, bool)) strategy[string] {
	return strategy[string]{
		name: name,
		try: func(p *page) (string, bool) {
			for _, key := range keys {
				sel := p.doc.Find(`meta[name="` + key + `"], meta[property="` + key + `"], meta[itemprop="` + key + `"]`)
				content, ok := sel.First().Attr("content")
				if !ok {
					continue
				}
				if v, ok := accept(clean(content)); ok {
					return v, true
				}
			}
			return "", false
		},
	}
}

// clean normalizes whitespace, including non-breaking spaces.
func clean(s string) string {
	return parser.NormalizeText(strings.ReplaceAll(s, "\u00a0", " "))
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
