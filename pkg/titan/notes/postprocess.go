package notes

import (
	"regexp"
	"strings"
)

// defaultSuspectMeds are common mis-hears and non-medications worth flagging
// for manual review.
var defaultSuspectMeds = []string{"naphthalene", "napthalene", "metrolax", "metrolax®", "antivenom"}

const medFlag = "  [FLAG:? verify medication name]"

var (
	mrnRe       = regexp.MustCompile(`\bmrn\b\s*[:#]?\s*\w+`)
	ageRe       = regexp.MustCompile(`\b(\d{1,3})\s*y/?o\b|\bage\s*:\s*\d{1,3}\b`)
	genderRe    = regexp.MustCompile(`\b(male|female|man|woman|m|f)\b`)
	medHeaderRe = regexp.MustCompile(`(?i)^\s*\[?medication review\]?\s*$`)
	medBulletRe = regexp.MustCompile(`^\s*[-•]\s*`)
	medTokenRe  = regexp.MustCompile(`\s|,|\d`)
)

// Postprocessor applies chart-level cleanup on top of the polished text:
// contradictory "not provided" demographics are dropped and suspicious
// medication names inside a Medication Review block are flagged.
type Postprocessor struct {
	suspect map[string]struct{}
}

// NewPostprocessor creates a postprocessor with the built-in suspect-med list
// plus any extra names from configuration.
func NewPostprocessor(extra []string) *Postprocessor {
	suspect := make(map[string]struct{}, len(defaultSuspectMeds)+len(extra))
	for _, m := range defaultSuspectMeds {
		suspect[strings.ToLower(m)] = struct{}{}
	}
	for _, m := range extra {
		suspect[strings.ToLower(m)] = struct{}{}
	}
	return &Postprocessor{suspect: suspect}
}

// Postprocess runs both cleanup passes. It tolerates empty input.
func (p *Postprocessor) Postprocess(text string) string {
	if text == "" {
		return text
	}
	text = dropContradictoryDemographics(text)
	return p.flagSuspectMeds(text)
}

// dropContradictoryDemographics removes "X not provided" boilerplate when the
// note already carries a credible identifier of that kind.
func dropContradictoryDemographics(text string) string {
	lower := strings.ToLower(text)
	hasMRN := strings.Contains(lower, "mrn") && mrnRe.MatchString(lower)
	hasAge := ageRe.MatchString(lower)
	hasGender := genderRe.MatchString(lower)

	var out []string
	for _, ln := range strings.Split(text, "\n") {
		l := strings.ToLower(strings.TrimSpace(ln))
		if (hasMRN && strings.Contains(l, "mrn not provided")) ||
			(hasAge && strings.Contains(l, "age not provided")) ||
			(hasGender && strings.Contains(l, "gender not provided")) {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}

// flagSuspectMeds appends a review flag to bullet entries in the Medication
// Review block whose leading token matches the suspect list. The block ends
// at the next bracketed header.
func (p *Postprocessor) flagSuspectMeds(text string) string {
	var out []string
	inMeds := false
	for _, ln := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(ln)

		if medHeaderRe.MatchString(stripped) {
			inMeds = true
			out = append(out, ln)
			continue
		}
		if inMeds && strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
			inMeds = false
		}

		if inMeds && medBulletRe.MatchString(ln) {
			base := strings.TrimSpace(medBulletRe.ReplaceAllString(ln, ""))
			token := medTokenRe.Split(strings.ToLower(base), 2)[0]
			if _, ok := p.suspect[token]; ok {
				ln += medFlag
			}
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}
