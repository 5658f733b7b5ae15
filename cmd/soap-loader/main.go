// Command soap-loader watches the system clipboard for SOAP notes. Anything
// that looks like one (long enough, mentions a patient) is saved into the
// drop folder under the extracted patient name and, when a database is
// configured, filed as a note for the configured handle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/veetae/titan-lite/pkg/titan/store"
	"github.com/veetae/titan-lite/pkg/titan/store/sqlite"
)

// minNoteLength filters out short clipboard fragments.
const minNoteLength = 200

// namePatterns are tried in order; the first capture wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Patient\s+([A-Z][a-zA-Z'` + "`" + `-]+(?:\s+[A-Z][a-zA-Z'` + "`" + `-]+)+)\s*,\s*MRN\b`),
	regexp.MustCompile(`Patient\s*:\s*([A-Z][a-zA-Z'` + "`" + `-]+(?:\s+[A-Z][a-zA-Z'` + "`" + `-]+)+)\b`),
	regexp.MustCompile(`Patient\s+([A-Z][a-zA-Z'` + "`" + `-]+(?:\s+[A-Z][a-zA-Z'` + "`" + `-]+)+)\b`),
	regexp.MustCompile(`\bName\s*:\s*([A-Z][a-zA-Z'` + "`" + `-]+(?:\s+[A-Z][a-zA-Z'` + "`" + `-]+)+)\b`),
}

var invalidFSChars = regexp.MustCompile(`[<>:"/\\|?*]`)
var spaceRuns = regexp.MustCompile(`\s+`)

// clipboardReadAll is a seam for tests.
var clipboardReadAll = clipboard.ReadAll

func main() {
	var (
		dir      = flag.String("dir", "Drop", "Drop folder for saved notes")
		date     = flag.String("date", time.Now().Format("2006-01-02"), "Encounter date (YYYY-MM-DD)")
		handle   = flag.String("handle", "demo_builder", "Handle to file notes under when -db is set")
		dbPath   = flag.String("db", "", "Optional SQLite database; saved notes are also filed there")
		interval = flag.Duration("interval", time.Second, "Clipboard poll interval")
	)
	flag.Parse()

	dos, err := time.Parse("2006-01-02", *date)
	if err != nil {
		log.Fatalf("invalid -date: %v", err)
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create drop folder: %v", err)
	}

	ctx := context.Background()
	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()
	}

	log.Printf("Monitoring clipboard for SOAP notes. Drop folder: %s", *dir)

	last := ""
	for {
		current, err := clipboardReadAll()
		if err == nil && current != "" && current != last {
			if saved, name := processNote(ctx, current, *dir, dos, st, *handle); saved {
				last = current
				log.Printf("Saved note for %s; monitoring again", strings.ReplaceAll(name, "_", " "))
			}
		}
		time.Sleep(*interval)
	}
}

// processNote saves the clipboard text when it looks like a SOAP note.
// Returns whether it was saved and the extracted patient name.
func processNote(ctx context.Context, text, dir string, dos time.Time, st store.Store, handle string) (bool, string) {
	if len(text) < minNoteLength || !strings.Contains(text, "Patient") {
		return false, ""
	}

	name := extractPatientName(text)
	date := dos.Format("2006-01-02")
	path := filepath.Join(dir, fmt.Sprintf("%s_SOAP_%s.txt", name, date))

	header := fmt.Sprintf("# Clinical Note - %s\n**Encounter Date**: %s\n**Generated**: %s\n\n---\n\n",
		strings.ReplaceAll(name, "_", " "), date, time.Now().Format("2006-01-02 15:04:05"))
	final := header + text

	if err := os.WriteFile(path, []byte(final), 0o644); err != nil {
		log.Printf("save failed: %v", err)
		return false, ""
	}
	log.Printf("Saved: %s", path)

	if st != nil {
		if _, err := st.AddNote(ctx, handle, dos, "soap", final); err != nil {
			log.Printf("db insert failed: %v", err)
		} else {
			log.Printf("Insert OK: %s | %s", handle, filepath.Base(path))
		}
	}
	return true, name
}

// extractPatientName tries the name patterns in order and sanitizes the match
// into a filename component. Unmatched notes get "UNKNOWN".
func extractPatientName(text string) string {
	for _, pat := range namePatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return sanitizeFilenameComponent(m[1])
		}
	}
	return "UNKNOWN"
}

func sanitizeFilenameComponent(s string) string {
	s = invalidFSChars.ReplaceAllString(s, "_")
	s = strings.TrimSpace(s)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return "UNKNOWN"
	}
	return s
}
