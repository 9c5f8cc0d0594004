package content

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/dtnitsch/listing-optimizer/models"
)

func widgetFacts() *models.ProductFacts {
	return &models.ProductFacts{
		Title:       "Widget Pro",
		Description: "A   sturdy widget.\n\n\n\nWorks great.",
		Price:       79.99,
		Condition:   models.ConditionUsed,
		Specifications: map[string]string{
			"Brand":            "Acme",
			"Color":            "Red",
			"Item description": "see above",
			"Model":            "WP-1",
		},
		Seller:   models.UnknownSeller,
		Location: models.UnknownLocation,
	}
}

func widgetIntel(recommended float64) *models.MarketIntelligence {
	return &models.MarketIntelligence{
		PriceStats: models.PriceStats{
			Average:          100,
			Min:              70,
			Max:              130,
			RecommendedPrice: recommended,
			Confidence:       0.5,
		},
		KeywordStats: models.KeywordStats{
			TopKeywords: []string{"widget", "sturdy", "works", "great", "pro", "acme"},
		},
	}
}

func TestSynthesize(t *testing.T) {
	got, err := New().Synthesize(widgetFacts(), widgetIntel(86))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if got.OptimizedTitle != "Sturdy Works Widget Pro" {
		t.Errorf("OptimizedTitle = %q", got.OptimizedTitle)
	}
	if got.SuggestedPrice != 86 {
		t.Errorf("SuggestedPrice = %v, want 86", got.SuggestedPrice)
	}
	if diff := cmp.Diff([]string{"widget", "sturdy", "works", "great", "pro"}, got.Keywords); diff != "" {
		t.Errorf("Keywords mismatch (-want +got):\n%s", diff)
	}

	wantPoints := []string{
		"Premium Widget quality",
		"Gently used",
		"Tested and working",
		"Priced below market average",
		"Save money compared to similar listings",
	}
	if diff := cmp.Diff(wantPoints, got.SellingPoints); diff != "" {
		t.Errorf("SellingPoints mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_DescriptionSections(t *testing.T) {
	got, err := New().Synthesize(widgetFacts(), widgetIntel(86))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	desc := got.OptimizedDescription

	order := []string{
		"A sturdy widget.\n\nWorks great.",
		"Key Features:\n1. Premium Widget quality\n2. Gently used",
		"Specifications:\n- Brand: Acme\n- Color: Red\n- Model: WP-1",
		"Condition:\n" + conditionNotes[models.ConditionUsed],
		"Pricing Analysis:\nOriginal price: $79.99\nMarket average: $100.00\nMarket range: $70.00 - $130.00\nRecommended price: $86.00\nConfidence: 50%",
		"Pricing opportunity",
		"Why Buy From Us?",
	}
	last := -1
	for _, section := range order {
		idx := strings.Index(desc, section)
		if idx < 0 {
			t.Fatalf("description missing %q:\n%s", section, desc)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}

	if strings.Contains(desc, "Item description") {
		t.Error("description lists a spec mentioning description")
	}
	if strings.Contains(desc, "\n\n\n") || strings.Contains(desc, "  ") {
		t.Errorf("whitespace not normalized:\n%q", desc)
	}
}

func TestSynthesize_PricingNote(t *testing.T) {
	tests := []struct {
		name        string
		recommended float64
		want        string
	}{
		{"higher", 86, "Pricing opportunity"},
		{"lower", 70, "Pricing consideration"},
		{"equal", 79.99, "well-aligned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Synthesize(widgetFacts(), widgetIntel(tt.recommended))
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if !strings.Contains(got.OptimizedDescription, tt.want) {
				t.Errorf("description lacks %q", tt.want)
			}
		})
	}
}

func TestSynthesize_NoSpecsSection(t *testing.T) {
	facts := widgetFacts()
	facts.Specifications = nil
	got, err := New().Synthesize(facts, widgetIntel(80))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if strings.Contains(got.OptimizedDescription, "Specifications:") {
		t.Error("empty specifications produced a section")
	}
}

func TestSynthesize_TitleLength(t *testing.T) {
	titles := []string{
		"",
		"Details about Widget",
		strings.Repeat("Extraordinary ", 10),
		strings.Repeat("ü", 120),
		"Details about " + strings.Repeat("x", 79),
	}
	for _, title := range titles {
		facts := widgetFacts()
		facts.Title = title
		got, err := New().Synthesize(facts, widgetIntel(80))
		if err != nil {
			t.Fatalf("Synthesize(%q) error = %v", title, err)
		}
		if n := utf8.RuneCountInString(got.OptimizedTitle); n > models.MaxTitleLength {
			t.Errorf("title %q has %d characters", got.OptimizedTitle, n)
		}
	}
}

func TestSynthesize_Errors(t *testing.T) {
	var synthErr *models.SynthesisError

	_, err := New().Synthesize(nil, widgetIntel(1))
	if !errors.As(err, &synthErr) {
		t.Fatalf("nil facts error = %v, want SynthesisError", err)
	}

	_, err = New().Synthesize(widgetFacts(), nil)
	if !errors.As(err, &synthErr) {
		t.Fatalf("nil intel error = %v, want SynthesisError", err)
	}
	if synthErr.Title != "Widget Pro" || synthErr.Stage != models.StageSynthesize {
		t.Errorf("error = %+v", synthErr)
	}
}

func TestSynthesize_UntitledListing(t *testing.T) {
	tests := []struct {
		name        string
		title, desc string
		keywords    []string
		want        string
	}{
		{"description words", "", "Solid brass desk lamp, rewired and working well in every way.", nil, "Solid brass desk lamp, rewired and working well"},
		{"short description", "", "Brass lamp.", nil, "Brass lamp"},
		{"boilerplate only", "Details about", "", nil, "Item for Sale"},
		{"generic label with keywords", "", "", []string{"lamp"}, "Lamp Item for Sale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := &models.ProductFacts{Title: tt.title, Description: tt.desc, Condition: models.ConditionUsed}
			intel := &models.MarketIntelligence{KeywordStats: models.KeywordStats{TopKeywords: tt.keywords}}

			got, err := New().Synthesize(facts, intel)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if got.OptimizedTitle != tt.want {
				t.Errorf("OptimizedTitle = %q, want %q", got.OptimizedTitle, tt.want)
			}
		})
	}
}

func TestFitTitle(t *testing.T) {
	long := strings.Repeat("a", 81)
	got := FitTitle(long)
	if got != strings.Repeat("a", 77)+"..." {
		t.Errorf("FitTitle(81 chars) = %q", got)
	}
	if FitTitle("short") != "short" {
		t.Error("short title changed")
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text, word string
		want       bool
	}{
		{"Sony Headphones", "sony", true},
		{"Sonyx Headphones", "sony", false},
		{"WH-1000XM4 case", "1000xm4", true},
		{"", "sony", false},
	}
	for _, tt := range tests {
		if got := containsWord(tt.text, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestSellingPoints_Padding(t *testing.T) {
	facts := &models.ProductFacts{Title: "Box", Price: 50, Condition: models.ConditionUnknown}
	intel := &models.MarketIntelligence{PriceStats: models.PriceStats{Average: 40}}

	got := sellingPoints(facts, intel)
	if diff := cmp.Diff(genericPoints, got); diff != "" {
		t.Errorf("sellingPoints mismatch (-want +got):\n%s", diff)
	}
}
