package notes

import (
	"strings"
	"testing"
)

func TestArrangeReorders(t *testing.T) {
	in := "Plan:\nIncrease metformin to 1000 mg daily.\nSubjective:\nfeels tired\nObjective:\nBP 142/82\nAssessment:\nType 2 diabetes\n"
	out := Arrange(in)

	order := []string{"Subjective", "Objective", "Assessment", "Plan", "Follow-up", "TODO"}
	last := -1
	for _, title := range order {
		idx := strings.Index(out, title+"\n\n")
		if idx < 0 {
			t.Fatalf("Missing section %q in output:\n%s", title, out)
		}
		if idx < last {
			t.Errorf("Section %q out of order", title)
		}
		last = idx
	}
}

func TestArrangeNoHeadersPassesThrough(t *testing.T) {
	in := "just a paragraph with no structure"
	if got := Arrange(in); got != in {
		t.Errorf("Arrange = %q, want unchanged input", got)
	}
}

func TestArrangeEmpty(t *testing.T) {
	if got := Arrange(""); got != "" {
		t.Errorf("Arrange(\"\") = %q", got)
	}
}

func TestArrangeDropsPreamble(t *testing.T) {
	in := "dictated by Dr. X\nSubjective:\nfeels fine and rested today\n"
	out := Arrange(in)
	if strings.Contains(out, "dictated by") {
		t.Errorf("Preamble before first header should be dropped:\n%s", out)
	}
}

func TestArrangeDuplicateHeaderLastWins(t *testing.T) {
	in := "Subjective:\nfirst version of the story\nSubjective:\nsecond version of the story\n"
	out := Arrange(in)
	if strings.Contains(out, "first version") {
		t.Errorf("Earlier duplicate section should be replaced:\n%s", out)
	}
	if !strings.Contains(out, "second version") {
		t.Errorf("Later duplicate section should win:\n%s", out)
	}
}

func TestArrangePlanPlaceholderWhenMissing(t *testing.T) {
	in := "Subjective:\nfeels fine and rested today\n"
	out := Arrange(in)
	if !strings.Contains(out, "To be addressed in next visit") {
		t.Errorf("Missing Plan should synthesize placeholder:\n%s", out)
	}
}

func TestArrangePlanPlaceholderWhenShort(t *testing.T) {
	// Short Plan keeps its content and additionally gets the placeholder.
	in := "Assessment:\nstable chronic disease\nPlan:\nrest\n"
	out := Arrange(in)
	if !strings.Contains(out, "rest") {
		t.Errorf("Short Plan content must survive:\n%s", out)
	}
	if !strings.Contains(out, "To be addressed in next visit") {
		t.Errorf("Short Plan should trigger placeholder:\n%s", out)
	}
	// The placeholder lands right after the Assessment section.
	if strings.Index(out, "To be addressed") > strings.Index(out, "Plan\n\nrest") {
		t.Errorf("Placeholder should precede the short Plan section:\n%s", out)
	}
}

func TestArrangeFollowUpDefault(t *testing.T) {
	in := "Subjective:\nfeels fine and rested today\nPlan:\ncontinue all current medications\n"
	out := Arrange(in)
	if !strings.Contains(out, "Follow-up\n\nAs scheduled.") {
		t.Errorf("Missing Follow-up should synthesize default:\n%s", out)
	}
}

func TestArrangeKeepsProvidedFollowUp(t *testing.T) {
	in := "Subjective:\nfeels fine and rested today\nPlan:\ncontinue all current medications\nFollow-up:\nreturn in two weeks\n"
	out := Arrange(in)
	if !strings.Contains(out, "return in two weeks") {
		t.Errorf("Provided Follow-up must survive:\n%s", out)
	}
	if strings.Contains(out, "As scheduled.") {
		t.Errorf("Default Follow-up should not be added:\n%s", out)
	}
}

func TestArrangeAlwaysAppendsTODO(t *testing.T) {
	in := "Subjective:\nfeels fine and rested today\nPlan:\ncontinue all current medications\n"
	out := Arrange(in)
	if !strings.HasSuffix(out, "TODO\n\n- Review plan items next visit.") {
		t.Errorf("Output should end with the TODO section:\n%s", out)
	}
}
