package extractor

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/listing-optimizer/models"
)

const maxImages = 12

// imageAttrs is the attribute priority for a candidate element.
var imageAttrs = []string{"data-zoom-src", "zoom-src", "data-src", "src", "content"}

// imageLocations are tried in order; the first location yielding at least
// one valid image provides the gallery.
var imageLocations = []struct {
	name     string
	selector string
}{
	{"main-image", `#icImg, #mainImgHldr img`},
	{"carousel", `.ux-image-carousel-item img, [data-testid="ux-image-carousel"] img`},
	{"itemprop-image", `[itemprop="image"]`},
	{"gallery", `.product-image img, .gallery img, .img-wrapper img`},
	{"any-image", `img`},
	{"og-image", `meta[property="og:image"]`},
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {}, ".avif": {},
}

// imageHosts serve images without file extensions in their paths.
var imageHosts = []string{"ebayimg.com", "ebaystatic.com", "media-amazon.com", "images-amazon.com", "cdn.shopify.com", "cloudfront.net"}

var junkImageTokens = []string{"spacer", "pixel", "1x1", "blank.gif", "sprite", "/icons/", "logo"}

var (
	ebaySizeToken   = regexp.MustCompile(`s-l\d+\.(jpg|jpeg|png|webp)`)
	amazonSizeToken = regexp.MustCompile(`\._[A-Z0-9,_]+_\.`)

	explicitSizeTokens = []*regexp.Regexp{
		regexp.MustCompile(`s-l(\d+)`),
		regexp.MustCompile(`(\d{2,4})x\d{2,4}`),
		regexp.MustCompile(`[?&](?:w|width)=(\d+)`),
	}
	thumbnailTokens = []string{"thumb", "small", "tiny", "_sm", "-sm"}
	largeTokens     = []string{"large", "zoom", "big", "original", "full", "hires"}
)

func (e *Extractor) imageStrategies() []strategy[[]models.ImageRef] {
	strategies := make([]strategy[[]models.ImageRef], 0, len(imageLocations))
	for _, loc := range imageLocations {
		strategies = append(strategies, imagesAt(loc.name, loc.selector))
	}
	return strategies
}

func imagesAt(name, selector string) strategy[[]models.ImageRef] {
	return strategy[[]models.ImageRef]{
		name: name,
		try: func(p *page) ([]models.ImageRef, bool) {
			var images []models.ImageRef
			seen := make(map[string]struct{})
			p.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				img, ok := imageFromElement(s, p.base)
				if !ok {
					return true
				}
				if _, dup := seen[img.URL]; dup {
					return true
				}
				seen[img.URL] = struct{}{}
				images = append(images, img)
				return len(images) < maxImages
			})
			return images, len(images) > 0
		},
	}
}

// imageFromElement takes the first valid URL among the element's attributes.
func imageFromElement(s *goquery.Selection, base *url.URL) (models.ImageRef, bool) {
	for _, attr := range imageAttrs {
		raw, ok := s.Attr(attr)
		if !ok {
			continue
		}
		u, ok := ValidateImageURL(resolveRef(base, raw))
		if !ok {
			continue
		}
		u = UpgradeImageURL(u)
		alt, _ := s.Attr("alt")
		return models.ImageRef{
			URL:       u,
			AltText:   clean(alt),
			SizeClass: ClassifyImageSize(u),
			IsValid:   true,
		}, true
	}
	return models.ImageRef{}, false
}

// ValidateImageURL normalizes raw and reports whether it points at an image
// by extension or by a known image host.
func ValidateImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return "", false
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}

	lower := strings.ToLower(u.Path)
	for _, junk := range junkImageTokens {
		if strings.Contains(lower, junk) {
			return "", false
		}
	}

	if _, ok := imageExtensions[path.Ext(lower)]; ok {
		return u.String(), true
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range imageHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return u.String(), true
		}
	}
	return "", false
}

// resolveRef resolves a relative reference against base. Absolute,
// protocol-relative and data references pass through.
func resolveRef(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if base == nil || raw == "" || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "data:") {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil || ref.IsAbs() {
		return raw
	}
	return base.ResolveReference(ref).String()
}

// UpgradeImageURL rewrites URLs of recognized hosts to their highest
// resolution variant.
func UpgradeImageURL(u string) string {
	switch {
	case strings.Contains(u, "ebayimg.com"):
		return ebaySizeToken.ReplaceAllString(u, "s-l1600.$1")
	case strings.Contains(u, "media-amazon.com"), strings.Contains(u, "images-amazon.com"):
		return amazonSizeToken.ReplaceAllString(u, ".")
	}
	return u
}

// ClassifyImageSize buckets an image by explicit size tokens first, then by
// generic naming hints, defaulting to medium.
func ClassifyImageSize(u string) models.SizeClass {
	lower := strings.ToLower(u)
	for _, re := range explicitSizeTokens {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		px, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch {
		case px <= 150:
			return models.SizeThumbnail
		case px <= 800:
			return models.SizeMedium
		default:
			return models.SizeLarge
		}
	}
	for _, tok := range thumbnailTokens {
		if strings.Contains(lower, tok) {
			return models.SizeThumbnail
		}
	}
	for _, tok := range largeTokens {
		if strings.Contains(lower, tok) {
			return models.SizeLarge
		}
	}
	return models.SizeMedium
}

// placeholderImage is substituted when a page has no valid image.
func (e *Extractor) placeholderImage() models.ImageRef {
	return models.ImageRef{
		URL:       e.market.PlaceholderImageURL,
		AltText:   "No image available",
		SizeClass: models.SizeMedium,
		IsValid:   true,
	}
}
