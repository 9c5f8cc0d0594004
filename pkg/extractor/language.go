package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// minLanguageSample is the shortest text worth running detection on.
const minLanguageSample = 20

// LanguageDetector is the part of a lingua detector the extractor uses.
type LanguageDetector interface {
	DetectLanguageOf(text string) (lingua.Language, bool)
}

// NewLanguageDetector builds a detector for the languages common on
// international marketplace listings.
func NewLanguageDetector() LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.German, lingua.French, lingua.Spanish, lingua.Italian, lingua.Dutch).
		WithLowAccuracyMode().
		Build()
}

// detectLanguage returns the lowercase ISO 639-1 code of text, or "".
func detectLanguage(d LanguageDetector, text string) string {
	if d == nil || utf8.RuneCountInString(text) < minLanguageSample {
		return ""
	}
	lang, ok := d.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
