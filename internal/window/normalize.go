package window

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	diacriticStrip  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	whitespaceField = func(r rune) bool { return unicode.IsSpace(r) }
)

// NormalizeTitle trims, case-folds, and diacritic-folds a window title so
// comparisons tolerate locale differences and cosmetic retitling. Interior
// whitespace runs collapse to single spaces.
func NormalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ""
	}
	stripped, _, err := transform.String(diacriticStrip, trimmed)
	if err != nil {
		stripped = trimmed
	}
	// Casers are stateful; build one per call rather than sharing.
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.FieldsFunc(folded, whitespaceField), " ")
}
