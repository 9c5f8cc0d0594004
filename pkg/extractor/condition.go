package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/listing-optimizer/models"
)

type conditionRule struct {
	pattern *regexp.Regexp
	label   string
}

// conditionRules are evaluated in order; the first match wins.
var conditionRules = []conditionRule{
	{regexp.MustCompile(`(?i)\b(brand[\s-]+new|new\s+with\s+tags|new\s+in\s+box|factory\s+sealed|bnib|bnwt|nwt|nib)\b`), models.ConditionBrandNew},
	{regexp.MustCompile(`(?i)\b(new\s+without\s+tags|new\s+other|open[\s-]+box|nwot)\b`), models.ConditionNewOther},
	{regexp.MustCompile(`(?i)\b(like[\s-]+new|mint\s+condition|excellent\s+condition)\b`), models.ConditionLikeNew},
	{regexp.MustCompile(`(?i)\b(refurbished|renewed|remanufactured)\b`), models.ConditionRefurbished},
	{regexp.MustCompile(`(?i)\b(for\s+parts|not\s+working|parts\s+only)\b`), models.ConditionForParts},
	{regexp.MustCompile(`(?i)\b(pre[\s-]?owned|used|second[\s-]?hand)\b`), models.ConditionUsed},
}

// schemaConditions maps schema.org itemCondition values.
var schemaConditions = map[string]string{
	"newcondition":         models.ConditionBrandNew,
	"usedcondition":        models.ConditionUsed,
	"refurbishedcondition": models.ConditionRefurbished,
	"damagedcondition":     models.ConditionForParts,
}

// ClassifyCondition maps free text to a canonical condition label, or
// models.ConditionUnknown when nothing matches.
func ClassifyCondition(text string) string {
	for _, rule := range conditionRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return models.ConditionUnknown
}

// classifyLabel is ClassifyCondition for short structural labels, where a
// bare "New" is meaningful.
func classifyLabel(text string) (string, bool) {
	label := ClassifyCondition(text)
	if label == models.ConditionUnknown && strings.EqualFold(strings.TrimSpace(text), "new") {
		label = models.ConditionBrandNew
	}
	return label, label != models.ConditionUnknown
}

func (e *Extractor) conditionStrategies() []strategy[string] {
	return []strategy[string]{
		{name: "schema-condition", try: schemaCondition},
		selectorText("condition-label", `[data-testid="x-item-condition"] .ux-textspans, .x-item-condition-text .ux-textspans, #vi-itm-cond, .condText, .item-condition, .condition`, classifyLabel),
		{name: "document-classifier", try: documentCondition},
	}
}

func (e *Extractor) fallbackConditionStrategies() []strategy[string] {
	return []strategy[string]{
		{name: "document-classifier", try: documentCondition},
		{name: "readability-classifier", try: func(p *page) (string, bool) {
			mc, ok := e.mainContent(p)
			if !ok {
				return "", false
			}
			label := ClassifyCondition(mc.Text)
			return label, label != models.ConditionUnknown
		}},
	}
}

func schemaCondition(p *page) (string, bool) {
	var label string
	p.doc.Find(`[itemprop="itemCondition"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"content", "href"} {
			v, ok := s.Attr(attr)
			if !ok {
				continue
			}
			key := strings.ToLower(v[strings.LastIndex(v, "/")+1:])
			if l, known := schemaConditions[key]; known {
				label = l
				return false
			}
		}
		if l, ok := classifyLabel(clean(s.Text())); ok {
			label = l
			return false
		}
		return true
	})
	return label, label != ""
}

func documentCondition(p *page) (string, bool) {
	label := ClassifyCondition(p.text)
	return label, label != models.ConditionUnknown
}
