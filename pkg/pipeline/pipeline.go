// Package pipeline sequences the listing optimization stages: fetch,
// extract, research, synthesize and render. It is the only package that
// knows the stage order.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/listing-optimizer/internal/common"
	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/content"
	"github.com/dtnitsch/listing-optimizer/pkg/extractor"
	"github.com/dtnitsch/listing-optimizer/pkg/fetcher"
	"github.com/dtnitsch/listing-optimizer/pkg/market"
	"github.com/dtnitsch/listing-optimizer/pkg/render"
)

// ProgressFunc is told when each stage starts.
type ProgressFunc func(stage models.Stage, detail string)

// Pipeline holds the stage components. A Pipeline is safe for concurrent
// runs over independent inputs.
type Pipeline struct {
	fetcher     fetcher.Fetcher
	extractor   *extractor.Extractor
	researcher  *market.Researcher
	synthesizer *content.Synthesizer
	renderer    *render.Renderer
	market      models.MarketplaceConfig
	logger      *slog.Logger
	progress    ProgressFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractor replaces the default Extractor.
func WithExtractor(e *extractor.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithResearcher replaces the default Researcher, e.g. to seed it or
// plug in a MarketDataProvider.
func WithResearcher(r *market.Researcher) Option {
	return func(p *Pipeline) { p.researcher = r }
}

// WithSynthesizer replaces the default Synthesizer.
func WithSynthesizer(s *content.Synthesizer) Option {
	return func(p *Pipeline) { p.synthesizer = s }
}

// WithRenderer replaces the default Renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

// WithMarketplace sets the domain and listing path accepted by Run.
func WithMarketplace(m models.MarketplaceConfig) Option {
	return func(p *Pipeline) { p.market = m }
}

// WithLogger sets the logger handed to default components.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress registers fn to be told when each stage starts.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// New builds a Pipeline around f. Components not supplied by options get
// their defaults for the configured marketplace.
func New(f fetcher.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:  f,
		market:   models.DefaultMarketplace(),
		logger:   slog.New(slog.DiscardHandler),
		progress: func(models.Stage, string) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = extractor.New(extractor.WithMarketplace(p.market), extractor.WithLogger(p.logger))
	}
	if p.researcher == nil {
		p.researcher = market.NewResearcher(market.WithLogger(p.logger))
	}
	if p.synthesizer == nil {
		p.synthesizer = content.New(content.WithMarketplace(p.market), content.WithLogger(p.logger))
	}
	if p.renderer == nil {
		p.renderer = render.MustNew(render.WithPlaceholderImage(p.market.PlaceholderImageURL), render.WithLogger(p.logger))
	}
	return p
}

// Run optimizes the listing at rawURL. templatePath is accepted for
// callers that select a template by path; the rendered document comes
// from the configured Renderer.
//
// A malformed URL fails with *models.ValidationError before any stage
// runs, and fetch failures are returned exactly as the Fetcher reported
// them. Every other failure is a *models.PipelineError naming the stage.
func (p *Pipeline) Run(ctx context.Context, rawURL, templatePath string) (*models.PipelineResult, error) {
	listingURL := common.SanitizeURL(rawURL)
	if err := ValidateListingURL(listingURL, p.market); err != nil {
		return nil, err
	}
	if p.fetcher == nil {
		return nil, &models.PipelineError{Stage: models.StageFetch, Err: errors.New("no fetcher configured")}
	}

	start := time.Now()
	log := p.logger.With("url", listingURL)
	if templatePath != "" {
		log.Debug("template path supplied", "template_path", templatePath)
	}

	p.progress(models.StageFetch, listingURL)
	page, err := p.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		var netErr *models.NetworkError
		if errors.As(err, &netErr) {
			log.Error("fetch failed", "kind", netErr.Kind, "error", err)
			return nil, err
		}
		return nil, p.fail(log, models.StageFetch, err)
	}

	p.progress(models.StageExtract, listingURL)
	if err := ctx.Err(); err != nil {
		return nil, p.fail(log, models.StageExtract, err)
	}
	pageURL := page.URL
	if pageURL == "" {
		pageURL = listingURL
	}
	facts := p.extractor.ExtractPage(page.HTML, pageURL)
	log.Info("listing extracted", "title", facts.Title, "price", facts.Price, "images", len(facts.Images))

	result, err := p.optimize(ctx, log, facts)
	if err != nil {
		return nil, err
	}
	log.Info("pipeline complete", "elapsed", time.Since(start))
	return result, nil
}

func (p *Pipeline) optimize(ctx context.Context, log *slog.Logger, facts *models.ProductFacts) (*models.PipelineResult, error) {
	p.progress(models.StageResearch, facts.Title)
	intel, err := p.researcher.Research(ctx, facts)
	if err != nil {
		return nil, p.fail(log, models.StageResearch, err)
	}

	p.progress(models.StageSynthesize, facts.Title)
	optimized, err := p.synthesizer.Synthesize(facts, intel)
	if err != nil {
		return nil, p.fail(log, models.StageSynthesize, err)
	}

	p.progress(models.StageRender, optimized.OptimizedTitle)
	if err := ctx.Err(); err != nil {
		return nil, p.fail(log, models.StageRender, err)
	}
	html, err := p.renderer.Render(optimized, facts)
	if err != nil {
		return nil, p.fail(log, models.StageRender, err)
	}

	return &models.PipelineResult{
		OriginalDetails:  *facts,
		OptimizedContent: *optimized,
		RenderedHTML:     html,
		ResearchData:     intel,
	}, nil
}

// ResearchCode researches a bare product code without fetching or
// extracting anything.
func (p *Pipeline) ResearchCode(ctx context.Context, code string, partial *models.ProductFacts) (*models.CodeResearch, error) {
	p.progress(models.StageResearch, code)
	res, err := p.researcher.ResearchByCode(ctx, code, partial)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return nil, err
		}
		return nil, p.fail(p.logger.With("code", code), models.StageResearch, err)
	}
	return res, nil
}

func (p *Pipeline) fail(log *slog.Logger, stage models.Stage, err error) error {
	log.Error("pipeline stage failed", "stage", stage, "error", err)
	return &models.PipelineError{Stage: stage, Err: err}
}

// ValidateListingURL accepts http(s) URLs on the marketplace domain, or a
// subdomain of it, whose path contains the listing marker.
func ValidateListingURL(raw string, m models.MarketplaceConfig) error {
	invalid := func(reason string) error {
		return &models.ValidationError{Field: "listing URL", Value: raw, Reason: reason}
	}
	if raw == "" {
		return invalid("empty")
	}
	if strings.ContainsAny(raw, " \t\n") {
		return invalid("contains whitespace")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return invalid(err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("scheme must be http or https")
	}
	host := strings.ToLower(u.Hostname())
	domain := strings.ToLower(m.Domain)
	if host == "" || (host != domain && !strings.HasSuffix(host, "."+domain)) {
		return invalid("not a " + m.Domain + " address")
	}
	if m.ListingPathMarker != "" && !strings.Contains(u.Path, m.ListingPathMarker) {
		return invalid("path lacks listing marker " + m.ListingPathMarker)
	}
	return nil
}
