// Package coder suggests diagnostic codes for note text. The catalog matcher
// is deliberately naive: it scores high-signal note tokens against code
// descriptions by substring presence. Its ranking rule is a stable contract,
// not a quality baseline to improve on.
package coder

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

// DefaultTopN is the candidate cutoff when the caller does not supply one.
const DefaultTopN = 5

// maxSignalTokens caps how many distinct note tokens participate in scoring.
const maxSignalTokens = 20

var signalTokenRe = regexp.MustCompile(`[a-z][a-z\-]{4,}`)

// Candidate is one scored catalog suggestion.
type Candidate struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// Entry is one catalog row.
type Entry struct {
	Code        string
	Description string
}

// Assigner scores a reference catalog against note content. A missing or
// unreadable catalog degrades to empty results; code suggestion is advisory
// and must never fail the pipeline.
type Assigner struct {
	catalogPath string
}

// NewAssigner creates an assigner over the catalog file at path.
func NewAssigner(catalogPath string) *Assigner {
	return &Assigner{catalogPath: catalogPath}
}

// Assign tokenizes the note, retains the most frequent high-signal tokens and
// ranks catalog rows by how many of those tokens appear in each description.
// Rows scoring zero are dropped; ties break by ascending code.
func (a *Assigner) Assign(text string, topN int) []Candidate {
	if topN <= 0 {
		topN = DefaultTopN
	}
	tokens := signalTokens(text)

	entries, err := a.load()
	if err != nil {
		return []Candidate{}
	}

	matches := []Candidate{}
	for _, e := range entries {
		desc := strings.ToLower(e.Description)
		score := 0
		for _, t := range tokens {
			if strings.Contains(desc, t) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, Candidate{Code: e.Code, Description: desc, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Code < matches[j].Code
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// Search returns catalog rows whose description contains the query,
// case-insensitively. Used by the agent dispatch layer for direct lookups.
func (a *Assigner) Search(query string, limit int) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	entries, err := a.load()
	if err != nil {
		return nil
	}
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Description), query) {
			out = append(out, e)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// signalTokens returns the distinct alphabetic-or-hyphen tokens of length 5+,
// most frequent first with lexicographic tie-break, capped at 20.
func signalTokens(text string) []string {
	counts := make(map[string]int)
	for _, t := range signalTokenRe.FindAllString(strings.ToLower(text), -1) {
		counts[t]++
	}
	tokens := make([]string, 0, len(counts))
	for t := range counts {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > maxSignalTokens {
		tokens = tokens[:maxSignalTokens]
	}
	return tokens
}

// load reads the two-column catalog, skipping malformed rows. Extra columns
// are ignored.
func (a *Assigner) load() ([]Entry, error) {
	f, err := os.Open(a.catalogPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var entries []Entry
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		code := strings.TrimSpace(row[0])
		desc := strings.TrimSpace(row[1])
		if code == "" || desc == "" {
			continue
		}
		entries = append(entries, Entry{Code: code, Description: desc})
	}
	return entries, nil
}
