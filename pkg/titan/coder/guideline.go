package coder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Guideline maps one code to its source and recommendation texts.
type Guideline struct {
	Source          string   `json:"source"`
	Recommendations []string `json:"recommendations"`
}

// GuidelineMap is the reference table of code → guideline.
type GuidelineMap map[string]Guideline

// LoadGuidelineMap reads a guideline map from a JSON file.
func LoadGuidelineMap(path string) (GuidelineMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m GuidelineMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse guideline map: %w", err)
	}
	return m, nil
}

// Crosscheck returns one advisory per recommendation whose leading word does
// not already appear in the note, for each assigned code present in the map.
func (m GuidelineMap) Crosscheck(note string, codes []string) []string {
	var advisories []string
	lowerNote := strings.ToLower(note)
	for _, code := range codes {
		g, ok := m[code]
		if !ok {
			continue
		}
		for _, rec := range g.Recommendations {
			fields := strings.Fields(strings.ToLower(rec))
			if len(fields) == 0 {
				continue
			}
			if !strings.Contains(lowerNote, fields[0]) {
				advisories = append(advisories, fmt.Sprintf("%s: %s", g.Source, rec))
			}
		}
	}
	return advisories
}

// AddGuideline inserts or replaces one code's guideline in the map file.
func AddGuideline(path, code, source string, recommendations []string) error {
	m, err := LoadGuidelineMap(path)
	if err != nil {
		return err
	}
	m[code] = Guideline{Source: source, Recommendations: recommendations}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
