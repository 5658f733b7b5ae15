// Package section is the single vocabulary for clinical section headers.
// Both the arranger and the enricher historically carried their own copies of
// the header patterns; they now share this one to avoid drift.
package section

import (
	"regexp"
	"strings"
)

// Canonical section keys.
const (
	Subjective = "subjective"
	Objective  = "objective"
	Assessment = "assessment"
	Plan       = "plan"
	FollowUp   = "follow-up"
)

// Order is the fixed chart order of canonical sections.
var Order = []string{Subjective, Objective, Assessment, Plan, FollowUp}

// headerRe recognizes a full header line, optionally prefixed with one or two
// markdown hashes and suffixed with ':' or '-'. Case-insensitive, line-anchored.
var headerRe = regexp.MustCompile(`(?im)^(#{0,2}\s*(subjective|objective|assessment|plan|follow-?up))\s*[:\-]?\s*$`)

// Match is one recognized header occurrence within a text.
type Match struct {
	Key   string // normalized canonical key
	Start int    // byte offset of the header line
	End   int    // byte offset just past the header line
}

// Headers returns every recognized header line in document order.
// "followup" and "follow-up" normalize to the same key.
func Headers(text string) []Match {
	idx := headerRe.FindAllStringSubmatchIndex(text, -1)
	if idx == nil {
		return nil
	}
	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		key := Normalize(text[m[4]:m[5]])
		matches = append(matches, Match{Key: key, Start: m[0], End: m[1]})
	}
	return matches
}

// Normalize lowers a raw header token and folds the follow-up spelling variants.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "followup" {
		key = FollowUp
	}
	return key
}

// Title returns the canonical display title for a key ("Follow-up" exactly so).
func Title(key string) string {
	if key == FollowUp {
		return "Follow-up"
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// detectKeys is the narrower vocabulary used for presence detection. It has no
// markdown-hash allowance and includes the bare "soap" marker; this mirrors
// the metadata side of the original tooling, which never looked for follow-up.
var detectKeys = []string{Subjective, Objective, Assessment, Plan, "soap"}

var detectRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(detectKeys))
	for _, k := range detectKeys {
		res[k] = regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(k) + `\s*[:\-]?\s*$`)
	}
	return res
}()

// Detect reports which detection keys have a header-only line anywhere in the
// text, in vocabulary order.
func Detect(text string) []string {
	var found []string
	for _, k := range detectKeys {
		if detectRes[k].MatchString(text) {
			found = append(found, k)
		}
	}
	return found
}

// Hints are the loose header tokens the scrubber lightly capitalizes.
var Hints = []string{
	"subjective", "objective", "assessment", "plan",
	"s:", "o:", "a:", "p:", "soap", "assessment & plan",
}

// HintPatterns compiles one line-anchored pattern per hint token.
func HintPatterns() []*regexp.Regexp {
	pats := make([]*regexp.Regexp, 0, len(Hints))
	for _, h := range Hints {
		pats = append(pats, regexp.MustCompile(`(?im)^(?:#{0,2}\s*)`+regexp.QuoteMeta(h)+`\s*[:\-]?\s*$`))
	}
	return pats
}
