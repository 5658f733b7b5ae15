package titan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veetae/titan-lite/pkg/titan/coder"
	"github.com/veetae/titan-lite/pkg/titan/export"
	"github.com/veetae/titan-lite/pkg/titan/notes"
)

const sampleNote = "Generate a SOAP note please.\n" +
	"Subjective:\nPatient reports worsening hypertension symptoms and headaches.\n" +
	"Objective:\nBP 152/94 seated, repeated twice.\n" +
	"Assessment:\nPoorly controlled essential hypertension.\n" +
	"Plan:\nIncrease lisinopril to 20 mg daily, recheck in 2 weeks.\n"

func newTestTitan(t *testing.T, guidelines coder.GuidelineMap) (*Titan, string) {
	t.Helper()
	dir := t.TempDir()

	catalog := filepath.Join(dir, "catalog.csv")
	rows := "I10,essential hypertension\nE11.9,type 2 diabetes mellitus\n"
	if err := os.WriteFile(catalog, []byte(rows), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	return New(Options{
		Pipeline:   notes.NewPipeline(notes.NewPolisher(nil)),
		Assigner:   coder.NewAssigner(catalog),
		Exporter:   export.NewExporter(outDir),
		Guidelines: guidelines,
		TopN:       5,
	}), outDir
}

func TestProcessNote(t *testing.T) {
	ti, _ := newTestTitan(t, nil)
	res := ti.ProcessNote(sampleNote)

	if res.ID == "" {
		t.Error("Result should carry an id")
	}
	if strings.Contains(strings.ToLower(res.Final), "generate a soap") {
		t.Error("Leakage must not reach the final note")
	}
	if !res.Validation.Valid {
		t.Errorf("Note should validate, issues: %v", res.Validation.Issues)
	}
	if len(res.Codes) == 0 || res.Codes[0].Code != "I10" {
		t.Errorf("Expected I10 suggestion, got %v", res.Codes)
	}
	if res.Advisories != nil {
		t.Errorf("No guidelines configured, advisories = %v", res.Advisories)
	}
}

func TestProcessNoteUniqueIDs(t *testing.T) {
	ti, _ := newTestTitan(t, nil)
	a := ti.ProcessNote(sampleNote)
	b := ti.ProcessNote(sampleNote)
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both %s", a.ID)
	}
}

func TestProcessNoteGuidelineAdvisories(t *testing.T) {
	gm := coder.GuidelineMap{
		"I10": {Source: "ACC/AHA", Recommendations: []string{"ambulatory BP monitoring"}},
	}
	ti, _ := newTestTitan(t, gm)
	res := ti.ProcessNote(sampleNote)

	if len(res.Advisories) != 1 {
		t.Fatalf("Expected 1 advisory, got %v", res.Advisories)
	}
	if !strings.Contains(res.Advisories[0], "ACC/AHA") {
		t.Errorf("Advisory = %q", res.Advisories[0])
	}
}

func TestExportWritesSinks(t *testing.T) {
	ti, outDir := newTestTitan(t, nil)
	res := ti.ProcessNote(sampleNote)

	paths, err := ti.Export(res, "visit-7")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(paths.Visits) != outDir {
		t.Errorf("Visits sink in %s, want %s", filepath.Dir(paths.Visits), outDir)
	}
	if _, err := os.Stat(paths.Visits); err != nil {
		t.Errorf("Visits sink missing: %v", err)
	}
	if _, err := os.Stat(paths.Codes); err != nil {
		t.Errorf("Codes sink missing: %v", err)
	}
}

func TestResultJSONShape(t *testing.T) {
	ti, _ := newTestTitan(t, nil)
	data, err := json.Marshal(ti.ProcessNote(sampleNote))
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "cleaned", "polished", "final", "validation", "enrichment", "codes"} {
		if _, ok := m[key]; !ok {
			t.Errorf("Missing %q in serialized result", key)
		}
	}
	if _, ok := m["advisories"]; ok {
		t.Error("advisories should be omitted when empty")
	}
}
