// Package storage writes optimized listings to disk: the rendered HTML
// document and a sibling plain-text summary.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dtnitsch/listing-optimizer/models"
)

type Storage struct {
	dir string
	now func() time.Time
}

// Written describes the files produced for one listing.
type Written struct {
	HTMLPath    string
	SummaryPath string
	SizeBytes   int64
}

// New creates dir if it doesn't exist.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}
	return &Storage{dir: dir, now: time.Now}, nil
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// WriteListing stores <name>.html and <name>.txt under the output directory.
func (s *Storage) WriteListing(name, sourceURL string, result *models.PipelineResult) (*Written, error) {
	htmlPath := filepath.Join(s.dir, name+".html")
	if err := s.SaveFile(htmlPath, []byte(result.RenderedHTML)); err != nil {
		return nil, err
	}

	summaryPath := filepath.Join(s.dir, name+".txt")
	if err := s.SaveFile(summaryPath, []byte(Summary(sourceURL, result, s.now()))); err != nil {
		return nil, err
	}

	return &Written{
		HTMLPath:    htmlPath,
		SummaryPath: summaryPath,
		SizeBytes:   int64(len(result.RenderedHTML)),
	}, nil
}

// Summary is the human-readable digest written next to the HTML.
func Summary(sourceURL string, result *models.PipelineResult, generated time.Time) string {
	facts := result.OriginalDetails
	opt := result.OptimizedContent

	var b strings.Builder
	fmt.Fprintf(&b, "Listing Optimization Summary\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source: %s\n\n", sourceURL)

	fmt.Fprintf(&b, "Original title:  %s\n", facts.Title)
	fmt.Fprintf(&b, "Optimized title: %s\n", opt.OptimizedTitle)
	fmt.Fprintf(&b, "Condition: %s\n", facts.Condition)
	fmt.Fprintf(&b, "Original price:  $%s\n", humanize.FormatFloat("#,###.##", facts.Price))
	fmt.Fprintf(&b, "Suggested price: $%s\n", humanize.FormatFloat("#,###.##", opt.SuggestedPrice))

	if r := result.ResearchData; r != nil {
		fmt.Fprintf(&b, "Comparables: %s\n", humanize.Comma(int64(len(r.ComparableListings))))
		fmt.Fprintf(&b, "Confidence: %.0f%%\n", r.PriceStats.Confidence*100)
		if len(r.Trends) > 0 {
			fmt.Fprintf(&b, "Trend (%s): %s\n", r.Trends[0].Period, r.Trends[0].Direction)
		}
	}
	fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(opt.Keywords, ", "))
	fmt.Fprintf(&b, "Images: %d\n", len(facts.Images))
	fmt.Fprintf(&b, "Document size: %s\n", humanize.Bytes(uint64(len(result.RenderedHTML))))

	if len(opt.SellingPoints) > 0 {
		b.WriteString("\nSelling points:\n")
		for _, p := range opt.SellingPoints {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}
	return b.String()
}
