package notes

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/veetae/titan-lite/pkg/titan/section"
)

// wordRe counts Unicode word characters, not just ASCII, so accented
// clinical terms count as single words.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Enrichment carries size metrics and detected-section metadata for a note.
type Enrichment struct {
	Chars            int      `json:"chars"`
	Words            int      `json:"words"`
	Lines            int      `json:"lines"`
	SectionsDetected []string `json:"sections_detected"`
}

// Enrich computes metadata over the polished, pre-arrangement text. Section
// detection is presence-based and independent of how Arrange later reorders
// or synthesizes sections.
func Enrich(text string) Enrichment {
	lines := 0
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines++
		}
	}
	sections := section.Detect(text)
	if sections == nil {
		sections = []string{}
	}
	return Enrichment{
		Chars:            utf8.RuneCountInString(text),
		Words:            len(wordRe.FindAllString(text, -1)),
		Lines:            lines,
		SectionsDetected: sections,
	}
}
