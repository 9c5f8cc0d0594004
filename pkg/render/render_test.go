package render

import (
	"strings"
	"testing"

	"github.com/dtnitsch/listing-optimizer/models"
)

func sampleContent() *models.OptimizedContent {
	return &models.OptimizedContent{
		OptimizedTitle:       "Sturdy Widget Pro",
		OptimizedDescription: "A sturdy widget.\n\nKey Features:\n1. Premium Widget quality\n2. Gently used",
		SuggestedPrice:       1234.5,
		Keywords:             []string{"widget", "sturdy"},
		SellingPoints:        []string{"Premium Widget quality", "Gently used"},
	}
}

func sampleFacts() *models.ProductFacts {
	return &models.ProductFacts{
		Title:     "Widget Pro",
		Price:     79.99,
		Condition: models.ConditionUsed,
		Images: []models.ImageRef{
			{URL: "https://i.ebayimg.com/images/g/abc/s-l1600.jpg", AltText: "Front", SizeClass: models.SizeLarge, IsValid: true},
			{URL: "https://i.ebayimg.com/images/g/def/s-l1600.jpg", SizeClass: models.SizeLarge, IsValid: true},
		},
		Specifications: map[string]string{"Model": "WP-1", "Brand": "Acme <b>"},
		Seller:         "widget_world",
		Location:       "Austin, Texas",
		Language:       "de",
	}
}

func mustRender(t *testing.T, r *Renderer, c *models.OptimizedContent, f *models.ProductFacts) string {
	t.Helper()
	out, err := r.Render(c, f)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out
}

func TestRender(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out := mustRender(t, r, sampleContent(), sampleFacts())

	wants := []string{
		`<html lang="de">`,
		`<title>Sturdy Widget Pro</title>`,
		`<div class="price">$1,234.50</div>`,
		`<img src="https://i.ebayimg.com/images/g/abc/s-l1600.jpg" alt="Front" class="large">`,
		`alt="Sturdy Widget Pro"`,
		`<li>Gently used</li>`,
		`<p>Key Features:<br>1. Premium Widget quality<br>2. Gently used</p>`,
		`<tr><th>Brand</th><td>Acme &lt;b&gt;</td></tr>`,
		`widget_world &middot; Austin, Texas`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "<th>Brand</th>") > strings.Index(out, "<th>Model</th>") {
		t.Error("specifications not sorted by label")
	}
}

func TestRender_Deterministic(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	facts := sampleFacts()
	for i := 0; i < 20; i++ {
		facts.Specifications[strings.Repeat("k", i+1)] = "v"
	}

	first := mustRender(t, r, sampleContent(), facts)
	for i := 0; i < 5; i++ {
		if got := mustRender(t, r, sampleContent(), facts); got != first {
			t.Fatal("rendering the same input produced different output")
		}
	}
}

func TestRender_MinimalFacts(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	facts := &models.ProductFacts{
		Title:     "Widget Pro",
		Condition: models.ConditionUsed,
		Images: []models.ImageRef{{
			URL:       models.DefaultMarketplace().PlaceholderImageURL,
			AltText:   "No image available",
			SizeClass: models.SizeMedium,
			IsValid:   true,
		}},
		Seller:   models.UnknownSeller,
		Location: models.UnknownLocation,
	}
	out := mustRender(t, r, sampleContent(), facts)

	if strings.Contains(out, `class="specifications"`) {
		t.Error("empty specifications rendered a section")
	}
	if strings.Contains(out, `class="seller"`) || strings.Contains(out, models.UnknownSeller) {
		t.Error("unknown seller rendered a seller block")
	}
	if strings.Count(out, "<img ") != 1 || !strings.Contains(out, "via.placeholder.com") {
		t.Error("placeholder should be the only gallery image")
	}
	if !strings.Contains(out, `<html lang="en">`) {
		t.Error("missing default language")
	}
}

func TestRender_NoImages(t *testing.T) {
	r, err := New(WithPlaceholderImage("https://example.com/none.png"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	facts := sampleFacts()
	facts.Images = []models.ImageRef{{URL: "javascript:alert(1)", IsValid: false}}

	out := mustRender(t, r, sampleContent(), facts)
	if !strings.Contains(out, `src="https://example.com/none.png"`) {
		t.Error("placeholder image not rendered")
	}
	if strings.Contains(out, "javascript:") {
		t.Error("invalid image rendered")
	}
}

func TestNew_CustomTemplate(t *testing.T) {
	r, err := New(WithTemplate(`{{.Title}}|{{.Price}}|{{len .Images}}`))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out := mustRender(t, r, sampleContent(), sampleFacts())
	if out != "Sturdy Widget Pro|$1,234.50|2" {
		t.Errorf("Render() = %q", out)
	}

	if _, err := New(WithTemplate(`{{.Title`)); err == nil {
		t.Error("New() with a malformed template should fail")
	}
}

func TestRender_NilInput(t *testing.T) {
	r, _ := New()
	if _, err := r.Render(nil, sampleFacts()); err == nil {
		t.Error("Render(nil, facts) should fail")
	}
}
