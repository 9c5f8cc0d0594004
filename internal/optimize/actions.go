package optimize

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/listing-optimizer/internal/app"
	"github.com/dtnitsch/listing-optimizer/internal/common"
	"github.com/dtnitsch/listing-optimizer/pkg/db"
	"github.com/dtnitsch/listing-optimizer/pkg/storage"
)

func OptimizeAction(c *cli.Context) error {
	rawURL := c.Args().First()
	if c.IsSet("url") {
		rawURL = c.String("url")
	}
	if rawURL == "" {
		return cli.Exit("Error: a listing URL is required (lo optimize <url>)", app.ExitValidation)
	}

	env, err := app.Load(c)
	if err != nil {
		return err
	}
	p, err := env.Pipeline(c.String("template"), !c.Bool("no-language"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	startTime := time.Now()
	listingURL := common.SanitizeURL(rawURL)
	run := &db.Run{Kind: db.KindOptimize, Input: listingURL, CreatedAt: startTime}

	result, err := p.Run(ctx, listingURL, c.String("template"))
	run.Duration = time.Since(startTime)
	if err != nil {
		run.Status = db.StatusFailed
		run.FailedStage = string(app.FailedStage(err))
		run.ErrorMessage = err.Error()
		env.Record(run)
		return app.ExitError(err)
	}

	store, err := storage.New(env.Config.Output.Dir)
	if err != nil {
		return cli.Exit(err.Error(), app.ExitFailure)
	}
	written, err := store.WriteListing(common.OutputName(listingURL), listingURL, result)
	if err != nil {
		return cli.Exit(err.Error(), app.ExitFailure)
	}

	run.Status = db.StatusSuccess
	run.Title = result.OptimizedContent.OptimizedTitle
	run.OriginalPrice = result.OriginalDetails.Price
	run.SuggestedPrice = result.OptimizedContent.SuggestedPrice
	if result.ResearchData != nil {
		run.Confidence = result.ResearchData.PriceStats.Confidence
	}
	run.OutputPath = written.HTMLPath
	env.Record(run)

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Optimized title: %s\n", result.OptimizedContent.OptimizedTitle)
	fmt.Printf("Original price:  $%.2f\n", result.OriginalDetails.Price)
	fmt.Printf("Suggested price: $%.2f\n", result.OptimizedContent.SuggestedPrice)
	fmt.Printf("HTML:    %s\n", written.HTMLPath)
	fmt.Printf("Summary: %s\n", written.SummaryPath)
	fmt.Printf("Done in %s\n", run.Duration.Round(time.Millisecond))
	return nil
}
