package quiz

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a string for answer comparison: strips all
// whitespace and the $ math delimiter, then lower-cases. Stored answer
// keys and rendered option text frequently disagree on spacing and math
// markup ("$4$ " vs "4"), so byte equality would miscount scores.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '$' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
