package notes

import "testing"

func TestTidyTypoFixes(t *testing.T) {
	got := Tidy("notes: teh patiet reports diabetse and hypertesion today")
	want := "notes: the patient reports diabetes and hypertension today"
	if got != want {
		t.Errorf("Tidy = %q, want %q", got, want)
	}
}

func TestTidyTypoFixesAreSpaceDelimited(t *testing.T) {
	// Fragments inside longer words must survive untouched.
	got := Tidy("methehydrate levels")
	if got != "methehydrate levels" {
		t.Errorf("Tidy = %q, embedded fragment should not change", got)
	}
}

func TestTidyPunctuationSpacing(t *testing.T) {
	got := Tidy("stable ,no complaints.Follow up")
	want := "stable, no complaints. Follow up"
	if got != want {
		t.Errorf("Tidy = %q, want %q", got, want)
	}
}

func TestTidyBPAbbreviation(t *testing.T) {
	got := Tidy("sitting bp 120/80")
	want := "sitting BP 120/80"
	if got != want {
		t.Errorf("Tidy = %q, want %q", got, want)
	}
}

func TestTidyEmpty(t *testing.T) {
	if got := Tidy(""); got != "" {
		t.Errorf("Tidy(\"\") = %q", got)
	}
}
