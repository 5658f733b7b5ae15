package notes

import "strings"

// Clean normalizes line endings, removes zero-width spaces and byte-order
// marks, and trims surrounding whitespace. It is idempotent and leaves empty
// input untouched.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ReplaceAll(s, "\ufeff", "")
	return strings.TrimSpace(s)
}
