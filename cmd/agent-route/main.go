// Command agent-route reads a clinical payload and dispatches it to the
// matching handler: SOAP enrichment, catalog lookup or lab summary. The
// payload comes from a JSON file or stdin; the routed result prints as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/veetae/titan-lite/internal/agents"
	"github.com/veetae/titan-lite/pkg/titan/config"
	"github.com/veetae/titan-lite/pkg/titan/store"
	"github.com/veetae/titan-lite/pkg/titan/store/sqlite"
)

func main() {
	var (
		in         = flag.String("in", "", "Payload JSON file (default: read stdin)")
		dbPath     = flag.String("db", "", "SQLite database for lab lookups (optional)")
		configPath = flag.String("config", "", "YAML configuration file")
	)
	flag.Parse()

	payload, err := readPayload(*in)
	if err != nil {
		log.Fatalf("read payload: %v", err)
	}

	loader := &config.Loader{ConfigPath: *configPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load components: %v", err)
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

	d := &agents.Dispatcher{Store: st, Coder: comp.Assigner}
	res, err := d.Route(ctx, payload)
	if err != nil {
		log.Fatalf("route: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

func readPayload(path string) (agents.Payload, error) {
	var p agents.Payload
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(data, &p)
	return p, err
}
