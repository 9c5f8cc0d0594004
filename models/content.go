package models

import "time"

// MaxTitleLength is the marketplace limit on listing titles, in characters.
const MaxTitleLength = 80

// OptimizedContent is the marketing copy produced for a listing.
type OptimizedContent struct {
	OptimizedTitle       string   `json:"optimized_title" yaml:"optimized_title"`
	OptimizedDescription string   `json:"optimized_description" yaml:"optimized_description"`
	SuggestedPrice       float64  `json:"suggested_price" yaml:"suggested_price"`
	Keywords             []string `json:"keywords" yaml:"keywords"`
	SellingPoints        []string `json:"selling_points" yaml:"selling_points"`
}

// PipelineResult is the final artifact of one pipeline run.
type PipelineResult struct {
	OriginalDetails  ProductFacts        `json:"original_details" yaml:"original_details"`
	OptimizedContent OptimizedContent    `json:"optimized_content" yaml:"optimized_content"`
	RenderedHTML     string              `json:"rendered_html" yaml:"rendered_html"`
	ResearchData     *MarketIntelligence `json:"research_data,omitempty" yaml:"research_data,omitempty"`
}

// FetchedPage is what the fetch layer hands to the pipeline.
type FetchedPage struct {
	URL       string            `json:"url"`
	HTML      string            `json:"-"`
	Title     string            `json:"title"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
