// Package models defines the records passed between pipeline stages, the
// pipeline error taxonomy, and runtime configuration.
package models

// SizeClass is the canonical size bucket of a listing image.
type SizeClass string

const (
	SizeThumbnail SizeClass = "thumbnail"
	SizeMedium    SizeClass = "medium"
	SizeLarge     SizeClass = "large"
)

// UnknownSeller is the sentinel seller value used when no seller could be found.
const UnknownSeller = "Unknown Seller"

// UnknownLocation is the sentinel location value used when no location could be found.
const UnknownLocation = "Unknown Location"

// ImageRef points at one listing image. It is created once per extraction
// attempt and never mutated afterwards.
type ImageRef struct {
	URL       string    `json:"url" yaml:"url"`
	AltText   string    `json:"alt_text,omitempty" yaml:"alt_text,omitempty"`
	SizeClass SizeClass `json:"size_class" yaml:"size_class"`
	IsValid   bool      `json:"is_valid" yaml:"is_valid"`
}

// ProductFacts is the structured view of a single marketplace listing.
// Images always holds at least one entry; the extractor substitutes a
// placeholder when the page has none.
type ProductFacts struct {
	Title          string            `json:"title" yaml:"title"`
	Description    string            `json:"description" yaml:"description"`
	Price          float64           `json:"price" yaml:"price"`
	Condition      string            `json:"condition" yaml:"condition"`
	Images         []ImageRef        `json:"images" yaml:"images"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	Seller         string            `json:"seller" yaml:"seller"`
	Location       string            `json:"location" yaml:"location"`
	Language       string            `json:"language,omitempty" yaml:"language,omitempty"` // ISO 639-1, empty when undetected
}

// HasSeller reports whether the seller is known.
func (p *ProductFacts) HasSeller() bool {
	return p.Seller != "" && p.Seller != UnknownSeller
}

// Canonical condition labels assigned by the extractor.
const (
	ConditionBrandNew    = "Brand New"
	ConditionNewOther    = "New Other"
	ConditionLikeNew     = "Like New"
	ConditionRefurbished = "Refurbished"
	ConditionUsed        = "Used"
	ConditionForParts    = "For Parts"
	ConditionUnknown     = "Unknown"
)
