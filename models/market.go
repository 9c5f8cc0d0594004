package models

import "time"

// TrendDirection classifies the price movement of one trend period.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// ComparableListing is a market reference point used for pricing.
type ComparableListing struct {
	Title     string     `json:"title" yaml:"title"`
	Price     float64    `json:"price" yaml:"price"`
	Condition string     `json:"condition" yaml:"condition"`
	Platform  string     `json:"platform" yaml:"platform"`
	SoldDate  *time.Time `json:"sold_date,omitempty" yaml:"sold_date,omitempty"`
}

// PriceStats summarizes comparable prices. Confidence is in [0, 0.9].
type PriceStats struct {
	Average          float64 `json:"average" yaml:"average"`
	Min              float64 `json:"min" yaml:"min"`
	Max              float64 `json:"max" yaml:"max"`
	RecommendedPrice float64 `json:"recommended_price" yaml:"recommended_price"`
	Confidence       float64 `json:"confidence" yaml:"confidence"`
}

// KeywordStats holds keyword frequencies of the listing text and a volume
// estimate per top keyword.
type KeywordStats struct {
	TopKeywords     []string       `json:"top_keywords" yaml:"top_keywords"`
	Frequency       map[string]int `json:"frequency" yaml:"frequency"`
	EstimatedVolume map[string]int `json:"estimated_volume" yaml:"estimated_volume"`
}

// TrendPoint is the average price and volume over one reporting period.
type TrendPoint struct {
	Period       string         `json:"period" yaml:"period"`
	AveragePrice float64        `json:"average_price" yaml:"average_price"`
	SalesVolume  int            `json:"sales_volume" yaml:"sales_volume"`
	Direction    TrendDirection `json:"direction" yaml:"direction"`
}

// MarketIntelligence is the output of the research stage. Trends are
// ordered most-recent-first.
type MarketIntelligence struct {
	ComparableListings []ComparableListing `json:"comparable_listings" yaml:"comparable_listings"`
	PriceStats         PriceStats          `json:"price_stats" yaml:"price_stats"`
	KeywordStats       KeywordStats        `json:"keyword_stats" yaml:"keyword_stats"`
	Trends             []TrendPoint        `json:"trends" yaml:"trends"`
}

// PriceRange is a closed price interval.
type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// CodeResearch is the extended research bundle returned for a bare product
// code, for callers that never had full listing facts.
type CodeResearch struct {
	Code           string             `json:"code" yaml:"code"`
	Facts          ProductFacts       `json:"facts" yaml:"facts"`
	Intelligence   MarketIntelligence `json:"intelligence" yaml:"intelligence"`
	SuggestedTitle string             `json:"suggested_title" yaml:"suggested_title"`
	SuggestedPrice float64            `json:"suggested_price" yaml:"suggested_price"`
	PriceRange     PriceRange         `json:"price_range" yaml:"price_range"`
	Confidence     float64            `json:"confidence" yaml:"confidence"`
	Trend          TrendDirection     `json:"trend" yaml:"trend"`
	TopKeywords    []string           `json:"top_keywords" yaml:"top_keywords"`
}
