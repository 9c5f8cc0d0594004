// Package market synthesizes comparable-market intelligence for a listing:
// comparable listings, price statistics, keyword statistics and price
// trends.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/listing-optimizer/models"
)

// Researcher runs market research. It holds no per-request state and is
// safe for concurrent use.
type Researcher struct {
	provider MarketDataProvider
	src      *randSource
	now      func() time.Time
	logger   *slog.Logger
	seed     uint64
}

// Option configures a Researcher.
type Option func(*Researcher)

// WithProvider replaces the synthetic comparable-listing provider.
func WithProvider(p MarketDataProvider) Option {
	return func(r *Researcher) { r.provider = p }
}

// WithSeed makes keyword volumes, trends and the default provider
// reproducible. Zero keeps them random.
func WithSeed(seed uint64) Option {
	return func(r *Researcher) { r.seed = seed }
}

// WithClock sets the time source used for sold dates.
func WithClock(now func() time.Time) Option {
	return func(r *Researcher) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Researcher) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResearcher returns a Researcher backed by a SyntheticProvider unless
// WithProvider is given.
func NewResearcher(opts ...Option) *Researcher {
	r := &Researcher{
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.src = newRandSource(r.seed)
	if r.provider == nil {
		// Offset so the provider stream differs from the researcher's own.
		seed := r.seed
		if seed != 0 {
			seed++
		}
		r.provider = NewSyntheticProvider(seed, r.now)
	}
	return r
}

// Research combines comparable listings, keyword analysis and trend
// analysis, which run concurrently, with price statistics computed from
// the comparables. On failure no partial result is returned.
func (r *Researcher) Research(ctx context.Context, facts *models.ProductFacts) (*models.MarketIntelligence, error) {
	if facts == nil {
		return nil, &models.SynthesisError{Stage: models.StageResearch, Err: errors.New("no product facts")}
	}
	if facts.Price < 0 || math.IsNaN(facts.Price) || math.IsInf(facts.Price, 0) {
		return nil, r.fail(facts, fmt.Errorf("invalid price %v", facts.Price))
	}

	keywordRand, trendRand := r.src.child(), r.src.child()

	var (
		comparables []models.ComparableListing
		keywords    models.KeywordStats
		trends      []models.TrendPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comparables, err = r.provider.FindComparables(gctx, facts)
		if err != nil {
			return fmt.Errorf("comparable listings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		keywords = analyzeKeywords(keywordRand, facts)
		return gctx.Err()
	})
	g.Go(func() error {
		trends = synthesizeTrends(trendRand, facts.Price)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, r.fail(facts, err)
	}

	stats := PriceStatistics(facts.Price, comparables)
	if comparables == nil {
		comparables = []models.ComparableListing{}
	}

	r.logger.Debug("research complete",
		"title", facts.Title,
		"comparables", len(comparables),
		"recommended_price", stats.RecommendedPrice,
		"confidence", stats.Confidence)

	return &models.MarketIntelligence{
		ComparableListings: comparables,
		PriceStats:         stats,
		KeywordStats:       keywords,
		Trends:             trends,
	}, nil
}

func (r *Researcher) fail(facts *models.ProductFacts, err error) error {
	r.logger.Error("research failed", "title", facts.Title, "error", err)
	return &models.SynthesisError{Stage: models.StageResearch, Title: facts.Title, Err: err}
}
