package research

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/listing-optimizer/internal/app"
	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/db"
	"github.com/dtnitsch/listing-optimizer/pkg/pipeline"
)

func ResearchAction(c *cli.Context) error {
	code := strings.TrimSpace(c.Args().First())
	if code == "" {
		return cli.Exit("Error: a product code is required (lo research <code>)", app.ExitValidation)
	}
	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" {
		return cli.Exit(fmt.Sprintf("Error: unknown format %q (json or yaml)", format), app.ExitValidation)
	}

	env, err := app.Load(c)
	if err != nil {
		return err
	}
	p := pipeline.New(nil,
		pipeline.WithMarketplace(env.Config.Marketplace),
		pipeline.WithResearcher(env.Researcher()),
		pipeline.WithLogger(env.Logger),
	)

	startTime := time.Now()
	run := &db.Run{Kind: db.KindResearch, Input: code, CreatedAt: startTime}

	res, err := p.ResearchCode(c.Context, code, partialFacts(c))
	run.Duration = time.Since(startTime)
	if err != nil {
		run.Status = db.StatusFailed
		run.FailedStage = string(app.FailedStage(err))
		run.ErrorMessage = err.Error()
		env.Record(run)
		return app.ExitError(err)
	}

	run.Status = db.StatusSuccess
	run.Title = res.SuggestedTitle
	run.OriginalPrice = res.Facts.Price
	run.SuggestedPrice = res.SuggestedPrice
	run.Confidence = res.Confidence

	out := io.Writer(os.Stdout)
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to create output file: %v", err), app.ExitFailure)
		}
		defer f.Close()
		out = f
		run.OutputPath = path
	}
	env.Record(run)

	return write(out, format, res)
}

// partialFacts collects the facts a caller already knows from flags.
func partialFacts(c *cli.Context) *models.ProductFacts {
	partial := &models.ProductFacts{
		Title:       c.String("title"),
		Description: c.String("description"),
		Price:       c.Float64("price"),
		Condition:   c.String("condition"),
	}
	if brand := c.String("brand"); brand != "" {
		partial.Specifications = map[string]string{"Brand": brand}
	}
	return partial
}

func write(w io.Writer, format string, res *models.CodeResearch) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
