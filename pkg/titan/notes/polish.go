package notes

import (
	"regexp"
	"strings"

	"github.com/veetae/titan-lite/pkg/titan/section"
)

// leakagePatterns match whole lines of prompt/instruction artifacts that must
// never reach the clinical record. All are case-insensitive and line-anchored.
var leakagePatterns = []string{
	`(?i)^as an ai.*$`,
	`(?i)^this (?:is|was) (?:a )?prompt.*$`,
	`(?i)^generate (?:a )?soap note.*$`,
	`(?i)^you asked (?:me )?to.*$`,
	`(?i)^system prompt.*$`,
	`(?i)^assistant(?: message)?:.*$`,
	`(?i)^user(?: message)?:.*$`,
	`(?i)^example(?:s)?:.*$`,
	`(?i)^instruction(?:s)?:.*$`,
	`(?i)^do not (?:include|remove).*$`,
}

var (
	fencedBlockRe  = regexp.MustCompile("(?s)```.*?```")
	promptWrapRe   = regexp.MustCompile(`(?s)<(?:system|user|assistant).*?>.*?</(?:system|user|assistant)>`)
	promptHeaderRe = regexp.MustCompile(`(?im)^\s*#+\s*(prompt|system|assistant|user)\s*$`)

	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	multiSpaceRe    = regexp.MustCompile(`[ ]{2,}`)
	spacePunctRe    = regexp.MustCompile(` +([,:;])`)
	bulletRe        = regexp.MustCompile(`(?m)^\s*[-•]\s*`)
	foldRe          = regexp.MustCompile(`\s+`)
)

// Polisher scrubs generation leakage and whitespace noise out of note text.
// The built-in leakage patterns are always applied; extra patterns can be
// layered on from configuration.
type Polisher struct {
	leakage []*regexp.Regexp
	hints   []*regexp.Regexp
}

// NewPolisher creates a polisher with the built-in leakage patterns plus any
// extra line patterns. Extra patterns that fail to compile are skipped.
func NewPolisher(extra []string) *Polisher {
	pats := make([]*regexp.Regexp, 0, len(leakagePatterns)+len(extra))
	for _, p := range leakagePatterns {
		pats = append(pats, regexp.MustCompile(`(?m)`+p))
	}
	for _, p := range extra {
		re, err := regexp.Compile(`(?m)` + p)
		if err != nil {
			continue
		}
		pats = append(pats, re)
	}
	return &Polisher{leakage: pats, hints: section.HintPatterns()}
}

// Polish applies, in order: leakage line removal, fenced-block and prompt-tag
// removal, whitespace normalization, bullet normalization, consecutive
// duplicate-line removal, duplicate-paragraph removal and light header
// capitalization. It tolerates empty input and never fails.
func (p *Polisher) Polish(text string) string {
	if text == "" {
		return text
	}
	s := strings.ReplaceAll(text, "\r\n", "\n")

	for _, re := range p.leakage {
		s = re.ReplaceAllString(s, "")
	}

	s = fencedBlockRe.ReplaceAllString(s, "")
	s = promptWrapRe.ReplaceAllString(s, "")
	s = promptHeaderRe.ReplaceAllString(s, "")

	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\t", "  ")
	s = spacePunctRe.ReplaceAllString(s, "$1")

	s = bulletRe.ReplaceAllString(s, "- ")

	s = dropConsecutiveDuplicates(s)
	s = dropDuplicateParagraphs(s)

	for _, re := range p.hints {
		s = re.ReplaceAllStringFunc(s, capitalizeFirst)
	}

	return strings.TrimSpace(s)
}

// dropConsecutiveDuplicates removes a line whose stripped form equals the
// stripped form of the line right before it. Blank lines are always kept and
// reset the comparison.
func dropConsecutiveDuplicates(s string) string {
	var out []string
	prev := ""
	first := true
	for _, line := range strings.Split(s, "\n") {
		norm := strings.TrimSpace(line)
		if !first && norm != "" && norm == prev {
			continue
		}
		out = append(out, line)
		prev = norm
		first = false
	}
	return strings.Join(out, "\n")
}

// dropDuplicateParagraphs keeps the first occurrence of each paragraph, where
// a paragraph's identity is its whitespace-folded, lower-cased content.
func dropDuplicateParagraphs(s string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, para := range strings.Split(s, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		key := strings.ToLower(foldRe.ReplaceAllString(strings.TrimSpace(para), " "))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, para)
	}
	return strings.Join(out, "\n\n")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
