package notes

import (
	"strings"
	"testing"
)

func TestPostprocessDropsContradictoryDemographics(t *testing.T) {
	p := NewPostprocessor(nil)
	in := "MRN: 12345\nMRN not provided\n45 y/o male\nAge not provided\nGender not provided\nrest of note"
	out := p.Postprocess(in)

	for _, gone := range []string{"MRN not provided", "Age not provided", "Gender not provided"} {
		if strings.Contains(out, gone) {
			t.Errorf("Boilerplate %q should be dropped:\n%s", gone, out)
		}
	}
	if !strings.Contains(out, "MRN: 12345") || !strings.Contains(out, "rest of note") {
		t.Errorf("Real content must survive:\n%s", out)
	}
}

func TestPostprocessKeepsBoilerplateWithoutIdentifiers(t *testing.T) {
	p := NewPostprocessor(nil)
	in := "Gender not provided\nplain note body"
	out := p.Postprocess(in)
	if !strings.Contains(out, "Gender not provided") {
		t.Errorf("Without a gender mention the boilerplate stays:\n%s", out)
	}
}

func TestPostprocessFlagsSuspectMeds(t *testing.T) {
	p := NewPostprocessor(nil)
	in := "[Medication Review]\n- naphthalene 10mg daily\n- metformin 500mg\n[Allergies]\n- naphthalene exposure\n"
	out := p.Postprocess(in)

	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "[FLAG:? verify medication name]") {
		t.Errorf("Suspect med should be flagged: %q", lines[1])
	}
	if strings.Contains(lines[2], "FLAG") {
		t.Errorf("Known med should not be flagged: %q", lines[2])
	}
	// The block ends at the next bracketed header.
	if strings.Contains(lines[4], "FLAG") {
		t.Errorf("Entries outside the meds block should not be flagged: %q", lines[4])
	}
}

func TestPostprocessFlagsTrademarkedSuspectMed(t *testing.T) {
	p := NewPostprocessor(nil)
	in := "[Medication Review]\n- Metrolax® 10mg nightly\n"
	out := p.Postprocess(in)
	if !strings.Contains(out, "FLAG") {
		t.Errorf("Trademarked spelling should be flagged:\n%s", out)
	}
}

func TestPostprocessExtraSuspectMeds(t *testing.T) {
	p := NewPostprocessor([]string{"Fakedrug"})
	in := "[Medication Review]\n- fakedrug 5mg\n"
	out := p.Postprocess(in)
	if !strings.Contains(out, "FLAG") {
		t.Errorf("Configured suspect med should be flagged:\n%s", out)
	}
}

func TestPostprocessEmpty(t *testing.T) {
	p := NewPostprocessor(nil)
	if got := p.Postprocess(""); got != "" {
		t.Errorf("Postprocess(\"\") = %q", got)
	}
}
