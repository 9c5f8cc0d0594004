package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/listing-optimizer/internal/db"
	"github.com/dtnitsch/listing-optimizer/internal/optimize"
	"github.com/dtnitsch/listing-optimizer/internal/research"
)

func main() {
	app := &cli.App{
		Name:  "lo",
		Usage: "optimize marketplace listings: extract, research, rewrite and render",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "listing-optimizer.yaml", Usage: "YAML config file (optional)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.StringFlag{Name: "db", Usage: "run history database path"},
			&cli.Uint64Flag{Name: "seed", Usage: "seed for reproducible market research (0 = random)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "optimize",
				Usage:     "optimize a listing by URL and write the HTML document and summary",
				ArgsUsage: "<listing-url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "listing URL (alternative to the argument)"},
					&cli.StringFlag{Name: "template", Usage: "custom html/template file for the document"},
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "directory for generated files"},
					&cli.BoolFlag{Name: "browser", Usage: "render the page in headless Chrome before extracting"},
					&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "fetch timeout"},
					&cli.StringFlag{Name: "cache-dir", Usage: "cache fetched pages in this directory"},
					&cli.BoolFlag{Name: "no-language", Usage: "skip language detection"},
					&cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
				},
				Action: optimize.OptimizeAction,
			},
			{
				Name:      "research",
				Usage:     "research a product by UPC/EAN/SKU code without a listing",
				ArgsUsage: "<product-code>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "known product title"},
					&cli.StringFlag{Name: "description", Usage: "known product description"},
					&cli.Float64Flag{Name: "price", Usage: "known price"},
					&cli.StringFlag{Name: "condition", Usage: "known condition"},
					&cli.StringFlag{Name: "brand", Usage: "known brand"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json or yaml"},
					&cli.StringFlag{Name: "output", Usage: "write the bundle to this file instead of stdout"},
				},
				Action: research.ResearchAction,
			},
			{
				Name:      "history",
				Usage:     "list recorded runs, or show one run by ID",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum runs to list"},
					&cli.BoolFlag{Name: "failed", Usage: "only failed runs"},
				},
				Action: db.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
