// Package fetcher retrieves listing pages. Every implementation reports
// transport failures as *models.NetworkError.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/listing-optimizer/models"
)

const maxBodyBytes = 10 << 20

// Fetcher retrieves the HTML of one page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.FetchedPage, error)
}

// HTTPFetcher fetches pages with a plain HTTP GET.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) { f.client.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewHTTPFetcher returns an HTTPFetcher with a 30s timeout unless
// configured otherwise.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: models.DefaultConfig().Fetch.UserAgent,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs url. Non-2xx responses and transport failures are returned
// as *models.NetworkError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.NetworkError{Kind: models.NetworkTransport, URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := f.now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &models.NetworkError{Kind: models.NetworkRateLimit, URL: url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &models.NetworkError{Kind: models.NetworkHTTPStatus, URL: url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(url, fmt.Errorf("failed to read response body: %w", err))
	}

	f.logger.Debug("fetched page", "url", url, "status", resp.StatusCode,
		"bytes", len(body), "elapsed", f.now().Sub(start))
	return NewPage(url, string(body), f.now()), nil
}

// NewPage builds a FetchedPage, reading the document title and meta tags.
func NewPage(url, html string, fetchedAt time.Time) *models.FetchedPage {
	page := &models.FetchedPage{
		URL:       url,
		HTML:      html,
		Metadata:  map[string]string{},
		Timestamp: fetchedAt,
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return page
	}
	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("name", s.AttrOr("property", ""))
		content, ok := s.Attr("content")
		if key == "" || !ok {
			return
		}
		key = strings.ToLower(key)
		if _, seen := page.Metadata[key]; !seen {
			page.Metadata[key] = strings.TrimSpace(content)
		}
	})
	return page
}

// classify maps a transport error onto a NetworkError kind.
func classify(url string, err error) *models.NetworkError {
	var dnsErr *net.DNSError
	var netErr net.Error
	kind := models.NetworkTransport
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = models.NetworkTimeout
	case errors.As(err, &dnsErr):
		kind = models.NetworkDNS
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = models.NetworkTimeout
	}
	return &models.NetworkError{Kind: kind, URL: url, Err: err}
}
