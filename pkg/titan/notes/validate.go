package notes

import (
	"strings"
	"unicode/utf8"
)

// Issue codes reported by Validate.
const (
	IssueEmptyNote = "empty_note"
	IssueTooShort  = "too_short"
	IssueTooLong   = "too_long"
)

const (
	minNoteChars = 20
	maxNoteChars = 200000
)

// ValidationResult reports every applicable sanity issue, not just the first.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// Validate sanity-checks note text. It is total: any string, including the
// empty one, yields a result and never an error.
func Validate(text string) ValidationResult {
	issues := []string{}
	if strings.TrimSpace(text) == "" {
		issues = append(issues, IssueEmptyNote)
	}
	n := utf8.RuneCountInString(text)
	if n < minNoteChars {
		issues = append(issues, IssueTooShort)
	}
	if n > maxNoteChars {
		issues = append(issues, IssueTooLong)
	}
	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
