// Package render produces the final listing document. Rendering is pure:
// the same content and facts always yield byte-identical output.
package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dtnitsch/listing-optimizer/models"
)

//go:embed listing.html.tmpl
var defaultTemplate string

const (
	defaultLang   = "en"
	summaryLength = 160
)

var funcs = template.FuncMap{"join": strings.Join}

// Renderer executes a parsed listing template.
type Renderer struct {
	tmpl        *template.Template
	logger      *slog.Logger
	placeholder string
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	text        string
	logger      *slog.Logger
	placeholder string
}

// WithTemplate replaces the built-in document template.
func WithTemplate(text string) Option {
	return func(c *rendererConfig) { c.text = text }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *rendererConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPlaceholderImage sets the image rendered when facts carry none.
func WithPlaceholderImage(url string) Option {
	return func(c *rendererConfig) { c.placeholder = url }
}

// New parses the template once. Only a custom template can fail to parse.
func New(opts ...Option) (*Renderer, error) {
	cfg := &rendererConfig{
		text:        defaultTemplate,
		logger:      slog.New(slog.DiscardHandler),
		placeholder: models.DefaultMarketplace().PlaceholderImageURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tmpl, err := template.New("listing").Funcs(funcs).Parse(cfg.text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing template: %w", err)
	}
	return &Renderer{tmpl: tmpl, logger: cfg.logger, placeholder: cfg.placeholder}, nil
}

// MustNew is like New but panics if the template cannot be parsed.
func MustNew(opts ...Option) *Renderer {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Render returns the listing document for content and facts.
func (r *Renderer) Render(content *models.OptimizedContent, facts *models.ProductFacts) (string, error) {
	if content == nil || facts == nil {
		return "", errors.New("render: content and facts are required")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.buildView(content, facts)); err != nil {
		r.logger.Error("template execution failed", "title", content.OptimizedTitle, "error", err)
		return "", fmt.Errorf("failed to render listing: %w", err)
	}

	r.logger.Debug("listing rendered", "title", content.OptimizedTitle, "bytes", buf.Len())
	return buf.String(), nil
}

type specRow struct {
	Label, Value string
}

type view struct {
	Lang          string
	Title         string
	Summary       string
	Price         string
	Condition     string
	Keywords      []string
	SellingPoints []string
	Paragraphs    [][]string
	Images        []models.ImageRef
	Specs         []specRow
	ShowSeller    bool
	Seller        string
	Location      string
}

func (r *Renderer) buildView(content *models.OptimizedContent, facts *models.ProductFacts) view {
	title := content.OptimizedTitle
	if title == "" {
		title = facts.Title
	}

	lang := facts.Language
	if lang == "" {
		lang = defaultLang
	}

	condition := facts.Condition
	if condition == "" {
		condition = models.ConditionUnknown
	}

	location := facts.Location
	if location == models.UnknownLocation {
		location = ""
	}

	return view{
		Lang:          lang,
		Title:         title,
		Summary:       summarize(content.OptimizedDescription),
		Price:         "$" + humanize.FormatFloat("#,###.##", content.SuggestedPrice),
		Condition:     condition,
		Keywords:      content.Keywords,
		SellingPoints: content.SellingPoints,
		Paragraphs:    paragraphs(content.OptimizedDescription),
		Images:        r.gallery(facts.Images, title),
		Specs:         sortedSpecs(facts.Specifications),
		ShowSeller:    facts.HasSeller(),
		Seller:        facts.Seller,
		Location:      location,
	}
}

// gallery keeps valid images and falls back to the placeholder so the
// document always shows at least one.
func (r *Renderer) gallery(images []models.ImageRef, title string) []models.ImageRef {
	out := make([]models.ImageRef, 0, len(images))
	for _, img := range images {
		if !img.IsValid || img.URL == "" {
			continue
		}
		if img.AltText == "" {
			img.AltText = title
		}
		out = append(out, img)
	}
	if len(out) == 0 {
		out = append(out, models.ImageRef{
			URL:       r.placeholder,
			AltText:   "No image available",
			SizeClass: models.SizeMedium,
			IsValid:   true,
		})
	}
	return out
}

func sortedSpecs(specs map[string]string) []specRow {
	rows := make([]specRow, 0, len(specs))
	for label, value := range specs {
		rows = append(rows, specRow{Label: label, Value: value})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

// paragraphs splits text on blank lines, keeping line breaks inside each
// paragraph.
func paragraphs(text string) [][]string {
	var out [][]string
	for _, block := range strings.Split(strings.TrimSpace(text), "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			out = append(out, lines)
		}
	}
	return out
}

func summarize(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if r := []rune(s); len(r) > summaryLength {
		s = string(r[:summaryLength-3]) + "..."
	}
	return s
}
