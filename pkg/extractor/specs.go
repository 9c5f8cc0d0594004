package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxSpecLabel = 50
	maxSpecValue = 200
)

// specSources are independent readers of label/value markup; mergeSpecs
// folds them in this order so later sources win on shared labels.
var specSources = []func(p *page) map[string]string{
	labelValueSpecs,
	tableSpecs,
	definitionSpecs,
}

func (e *Extractor) extractSpecs(p *page) map[string]string {
	candidates := make([]map[string]string, 0, len(specSources))
	for _, src := range specSources {
		candidates = append(candidates, src(p))
	}
	return mergeSpecs(candidates...)
}

// mergeSpecs returns a new map holding every pair; the last writer wins.
func mergeSpecs(sources ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, src := range sources {
		for k, v := range src {
			merged[k] = v
		}
	}
	return merged
}

// specPair cleans one candidate pair and reports whether it is kept.
func specPair(label, value string) (string, string, bool) {
	label = strings.TrimRight(clean(label), ": ")
	value = clean(value)
	if label == "" || value == "" {
		return "", "", false
	}
	if utf8.RuneCountInString(label) > maxSpecLabel || utf8.RuneCountInString(value) > maxSpecValue {
		return "", "", false
	}
	return label, value, true
}

// labelValueSpecs reads item-specifics style label/value lists.
func labelValueSpecs(p *page) map[string]string {
	out := make(map[string]string)
	p.doc.Find(".ux-labels-values").Each(func(_ int, s *goquery.Selection) {
		label := s.Find(".ux-labels-values__labels").First().Text()
		value := s.Find(".ux-labels-values__values").First().Text()
		if l, v, ok := specPair(label, value); ok {
			out[l] = v
		}
	})
	p.doc.Find(".item-specifics li, .specifications li, .specs li").Each(func(_ int, s *goquery.Selection) {
		label, value, found := strings.Cut(s.Text(), ":")
		if !found {
			return
		}
		if l, v, ok := specPair(label, value); ok {
			out[l] = v
		}
	})
	return out
}

// tableSpecs reads table rows holding label/value cell pairs; rows with
// four cells hold two pairs.
func tableSpecs(p *page) map[string]string {
	out := make(map[string]string)
	p.doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() == 0 || cells.Length()%2 != 0 || cells.Length() > 4 {
			return
		}
		for i := 0; i+1 < cells.Length(); i += 2 {
			if l, v, ok := specPair(cells.Eq(i).Text(), cells.Eq(i+1).Text()); ok {
				out[l] = v
			}
		}
	})
	return out
}

// definitionSpecs reads <dt>/<dd> pairs.
func definitionSpecs(p *page) map[string]string {
	out := make(map[string]string)
	p.doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		if l, v, ok := specPair(dt.Text(), dd.Text()); ok {
			out[l] = v
		}
	})
	return out
}
