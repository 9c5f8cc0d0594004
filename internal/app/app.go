// Package app holds the wiring shared by the CLI commands: configuration,
// logging, pipeline construction and exit codes.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/listing-optimizer/internal/logging"
	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/caching"
	"github.com/dtnitsch/listing-optimizer/pkg/content"
	"github.com/dtnitsch/listing-optimizer/pkg/db"
	"github.com/dtnitsch/listing-optimizer/pkg/extractor"
	"github.com/dtnitsch/listing-optimizer/pkg/fetcher"
	"github.com/dtnitsch/listing-optimizer/pkg/market"
	"github.com/dtnitsch/listing-optimizer/pkg/pipeline"
	"github.com/dtnitsch/listing-optimizer/pkg/render"
)

// Exit codes.
const (
	ExitValidation = 1
	ExitFailure    = 2
)

// Env is the resolved configuration and logger for one command.
type Env struct {
	Config *models.Config
	Logger *slog.Logger
}

// Load reads the config file named by --config and applies CLI flag
// overrides on top of file and environment values.
func Load(c *cli.Context) (*Env, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitFailure)
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.Bool("quiet") {
		cfg.Log.Level = "error"
	}
	if c.IsSet("seed") {
		cfg.Research.Seed = c.Uint64("seed")
	}
	if c.IsSet("output-dir") {
		cfg.Output.Dir = c.String("output-dir")
	}
	if c.IsSet("db") {
		cfg.Output.DBPath = c.String("db")
	}
	if c.IsSet("browser") {
		cfg.Fetch.Browser = c.Bool("browser")
	}
	if c.IsSet("timeout") {
		cfg.Fetch.Timeout = c.Duration("timeout")
	}
	if c.IsSet("cache-dir") {
		cfg.Fetch.CacheDir = c.String("cache-dir")
	}

	return &Env{
		Config: cfg,
		Logger: logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr),
	}, nil
}

// Fetcher returns the HTTP or browser fetcher, wrapped in the file cache
// when a cache directory is configured.
func (e *Env) Fetcher() (fetcher.Fetcher, error) {
	fc := e.Config.Fetch
	log := logging.Component(e.Logger, "fetcher")

	var f fetcher.Fetcher
	if fc.Browser {
		f = fetcher.NewBrowserFetcher(fc.Timeout, fc.UserAgent, "", log)
	} else {
		f = fetcher.NewHTTPFetcher(
			fetcher.WithTimeout(fc.Timeout),
			fetcher.WithUserAgent(fc.UserAgent),
			fetcher.WithLogger(log),
		)
	}

	if fc.CacheDir == "" {
		return f, nil
	}
	cache, err := caching.NewCache(fc.CacheDir, fc.CacheTTL)
	if err != nil {
		return nil, err
	}
	return fetcher.NewCachingFetcher(f, cache, log), nil
}

// Researcher builds the market researcher for the configured seed.
func (e *Env) Researcher() *market.Researcher {
	return market.NewResearcher(
		market.WithSeed(e.Config.Research.Seed),
		market.WithLogger(logging.Component(e.Logger, "market")),
	)
}

// Pipeline wires every stage. templatePath, when set, replaces the
// built-in document template.
func (e *Env) Pipeline(templatePath string, detectLanguage bool) (*pipeline.Pipeline, error) {
	m := e.Config.Marketplace

	f, err := e.Fetcher()
	if err != nil {
		return nil, err
	}

	extractOpts := []extractor.Option{
		extractor.WithMarketplace(m),
		extractor.WithLogger(logging.Component(e.Logger, "extractor")),
	}
	if detectLanguage {
		extractOpts = append(extractOpts, extractor.WithLanguageDetector(extractor.NewLanguageDetector()))
	}

	renderOpts := []render.Option{
		render.WithPlaceholderImage(m.PlaceholderImageURL),
		render.WithLogger(logging.Component(e.Logger, "render")),
	}
	if templatePath != "" {
		text, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("failed to read template: %v", err), ExitValidation)
		}
		renderOpts = append(renderOpts, render.WithTemplate(string(text)))
	}
	renderer, err := render.New(renderOpts...)
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitValidation)
	}

	return pipeline.New(f,
		pipeline.WithMarketplace(m),
		pipeline.WithExtractor(extractor.New(extractOpts...)),
		pipeline.WithResearcher(e.Researcher()),
		pipeline.WithSynthesizer(content.New(
			content.WithMarketplace(m),
			content.WithLogger(logging.Component(e.Logger, "content")),
		)),
		pipeline.WithRenderer(renderer),
		pipeline.WithLogger(logging.Component(e.Logger, "pipeline")),
		pipeline.WithProgress(func(stage models.Stage, detail string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, detail)
		}),
	), nil
}

// OpenHistory opens the run history database.
func (e *Env) OpenHistory() (*db.DB, error) {
	return db.Open(e.Config.Output.DBPath)
}

// Record stores a run, logging instead of failing when history is
// unavailable.
func (e *Env) Record(run *db.Run) {
	database, err := e.OpenHistory()
	if err != nil {
		e.Logger.Warn("run history unavailable", "error", err)
		return
	}
	defer database.Close()
	if _, err := database.InsertRun(run); err != nil {
		e.Logger.Warn("failed to record run", "error", err)
	}
}

// FailedStage names the stage an error came from.
func FailedStage(err error) models.Stage {
	var (
		vErr *models.ValidationError
		nErr *models.NetworkError
		pErr *models.PipelineError
		sErr *models.SynthesisError
	)
	switch {
	case errors.As(err, &vErr):
		return models.StageValidate
	case errors.As(err, &nErr):
		return models.StageFetch
	case errors.As(err, &pErr):
		return pErr.Stage
	case errors.As(err, &sErr):
		return sErr.Stage
	}
	return ""
}

// ExitError converts a pipeline error into a cli exit error carrying the
// message, the failed stage and the matching exit code.
func ExitError(err error) error {
	code := ExitFailure
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		code = ExitValidation
	}
	msg := err.Error()
	if stage := FailedStage(err); stage != "" {
		msg = fmt.Sprintf("error (stage %s): %v", stage, err)
	}
	return cli.Exit(msg, code)
}
