package notes

import (
	"regexp"
	"strings"
)

// typoFixes are conservative, meaning-preserving touch-ups. Matches are
// space-delimited on purpose so fragments inside longer words survive.
var typoFixes = []struct{ from, to string }{
	{" teh ", " the "},
	{" patiet ", " patient "},
	{" paitent ", " patient "},
	{" diabetse", " diabetes"},
	{" diabtes", " diabetes"},
	{" hypertesion", " hypertension"},
	{" bp ", " BP "},
}

var (
	punctBeforeRe = regexp.MustCompile(`\s+([,.;:!?])`)
	punctAfterRe  = regexp.MustCompile(`([,.;:!?])(\S)`)
)

// Tidy performs very light grammar and spelling cleanup without changing
// meaning: a small typo map and punctuation spacing.
func Tidy(text string) string {
	if text == "" {
		return text
	}
	s := text
	for _, f := range typoFixes {
		s = strings.ReplaceAll(s, f.from, f.to)
	}
	s = punctBeforeRe.ReplaceAllString(s, "$1")
	s = punctAfterRe.ReplaceAllString(s, "$1 $2")
	return s
}
