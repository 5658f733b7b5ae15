// Command run-chart pulls the latest note for a handle from the clinical
// database, polishes it, writes the change back with a validator tag and
// emits a chart-ready text file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/veetae/titan-lite/pkg/titan/config"
	"github.com/veetae/titan-lite/pkg/titan/store/sqlite"
)

const validatorTag = "TitanPolish v2"

func main() {
	var (
		handle     = flag.String("handle", "", "User handle (required, e.g. demo_builder)")
		dbPath     = flag.String("db", "clinical.db", "SQLite database path")
		outDir     = flag.String("out-dir", defaultOutDir(), "Chart output directory")
		configPath = flag.String("config", "", "YAML configuration file")
	)
	flag.Parse()

	if *handle == "" {
		log.Fatal("-handle is required")
	}

	loader := &config.Loader{ConfigPath: *configPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load components: %v", err)
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	note, ok, err := st.LatestNoteByHandle(ctx, *handle)
	if err != nil {
		log.Fatalf("load note: %v", err)
	}
	if !ok {
		log.Fatalf("no notes found for handle=%s", *handle)
	}

	polished := comp.Post.Postprocess(comp.Polisher.Polish(note.ContentMD))

	// Non-destructive in-place update, tagging the validator chain.
	validator := note.Validator
	if polished != note.ContentMD {
		if validator == "" {
			validator = validatorTag
		} else {
			validator += ";" + validatorTag
		}
		if err := st.UpdateNote(ctx, note.ID, polished, validator); err != nil {
			log.Fatalf("update note: %v", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	dos := note.DOS.Format("2006-01-02")
	path := filepath.Join(*outDir, fmt.Sprintf("chart_%s_%s.txt", *handle, dos))

	shown := validator
	if shown == "" {
		shown = "-"
	}
	header := fmt.Sprintf("Handle: %s\nDOS: %s\nType: %s\nStatus: %s\nValidator: %s\n%s\n",
		note.Handle, dos, note.NoteType, note.Status, shown,
		"----------------------------------------------------------------")
	if err := os.WriteFile(path, []byte(header+polished+"\n"), 0o644); err != nil {
		log.Fatalf("write chart: %v", err)
	}

	fmt.Printf("OK: wrote %s\n", path)
}

func defaultOutDir() string {
	if dir := os.Getenv("MEMORY"); dir != "" {
		return dir
	}
	return "Output"
}
