package fetcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/caching"
)

// CachingFetcher serves pages from a file cache and falls through to the
// wrapped Fetcher on a miss.
type CachingFetcher struct {
	next   Fetcher
	cache  *caching.Cache
	logger *slog.Logger
}

// NewCachingFetcher wraps next with cache. A nil logger discards output.
func NewCachingFetcher(next Fetcher, cache *caching.Cache, logger *slog.Logger) *CachingFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachingFetcher{next: next, cache: cache, logger: logger}
}

// Fetch serves url from the cache when fresh and stores successful
// fetches from next.
func (c *CachingFetcher) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	if data, ok := c.cache.Get(url); ok {
		c.logger.Debug("cache hit", "url", url)
		return NewPage(url, string(data), time.Now()), nil
	}

	page, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(url, []byte(page.HTML)); err != nil {
		c.logger.Warn("failed to cache page", "url", url, "error", err)
	}
	return page, nil
}
