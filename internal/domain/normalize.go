package domain

import (
	"strings"
)

// NormalizeLemma prepares a lemma for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//
// Diacritics, hyphens, and apostrophes are preserved; Dutch lemmas such
// as "café" or "'s-Gravenhage" keep their marks.
func NormalizeLemma(lemma string) string {
	return strings.ToLower(strings.TrimSpace(lemma))
}
