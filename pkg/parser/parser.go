// Package parser isolates the main readable content of a page with
// go-readability, for pages where no listing selector matched.
package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// MainContent is the readable core of a page.
type MainContent struct {
	Title   string
	Excerpt string
	Text    string
}

// Parser wraps a readability parser. The zero value is not usable; call New.
type Parser struct {
	pageURL *url.URL
}

// New returns a Parser that resolves relative links against baseURL. An
// empty or invalid baseURL falls back to a bare https URL.
func New(baseURL string) *Parser {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "https", Host: "localhost"}
	}
	return &Parser{pageURL: u}
}

// Parse extracts the main content of html.
func (p *Parser) Parse(html string) (*MainContent, error) {
	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(html), p.pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability parse: %w", err)
	}

	// The article body is HTML; flatten it block by block.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article content: %w", err)
	}
	var blocks []string
	doc.Find("h1,h2,h3,h4,p,li").Each(func(i int, s *goquery.Selection) {
		if text := NormalizeText(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	return &MainContent{
		Title:   NormalizeText(article.Title),
		Excerpt: NormalizeText(article.Excerpt),
		Text:    strings.Join(blocks, "\n"),
	}, nil
}

// NormalizeText cleans up a string by trimming space and joining its lines
// with single spaces.
func NormalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
