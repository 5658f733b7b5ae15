// Command titan-lite runs the note pipeline over one input: clean, polish,
// arrange, validate, enrich, suggest codes and append the structured export
// rows. Input comes from a file or stdin; the result prints as JSON unless
// -no-json asks for the final note text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/veetae/titan-lite/pkg/titan"
	"github.com/veetae/titan-lite/pkg/titan/coder"
	"github.com/veetae/titan-lite/pkg/titan/config"
)

func main() {
	var (
		in         = flag.String("in", "", "Input note file (default: read stdin)")
		out        = flag.String("out", "", "Write the final note text to this file")
		visitID    = flag.String("id", "", "Visit identifier for export rows (default: input file stem)")
		noJSON     = flag.Bool("no-json", false, "Print the final note text instead of the JSON result")
		configPath = flag.String("config", "", "YAML configuration file")
		guidelines = flag.String("guidelines", "", "Guideline map JSON (overrides config)")
		noExport   = flag.Bool("no-export", false, "Skip appending to the structured export sinks")
	)
	flag.Parse()

	raw, err := readInput(*in)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	loader := &config.Loader{ConfigPath: *configPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load components: %v", err)
	}

	gm := comp.Guidelines
	if *guidelines != "" {
		gm, err = coder.LoadGuidelineMap(*guidelines)
		if err != nil {
			log.Fatalf("load guideline map: %v", err)
		}
	}

	t := titan.New(titan.Options{
		Pipeline:   comp.Pipeline,
		Assigner:   comp.Assigner,
		Exporter:   comp.Exporter,
		Guidelines: gm,
		TopN:       comp.Config.TopN,
	})

	res := t.ProcessNote(raw)

	id := *visitID
	if id == "" {
		id = visitIDFromInput(*in)
	}

	if !*noExport {
		if _, err := t.Export(res, id); err != nil {
			log.Fatalf("export: %v", err)
		}
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(res.Final), 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
	}

	if *noJSON {
		fmt.Println(res.Final)
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// visitIDFromInput derives a visit identifier from the input filename stem,
// falling back to "stdin" when no file was given.
func visitIDFromInput(path string) string {
	if path == "" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
