// Command drop-watcher watches a drop folder and runs the note pipeline over
// every file that lands in it. Plain text and markdown pass through as-is;
// HTML drops are reduced to visible text first. Each processed drop appends
// its rows to the structured export sinks under the filename stem.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veetae/titan-lite/internal/htmltext"
	"github.com/veetae/titan-lite/pkg/titan"
	"github.com/veetae/titan-lite/pkg/titan/config"
)

func main() {
	var (
		dir        = flag.String("dir", "Drop", "Drop folder to watch")
		configPath = flag.String("config", "", "YAML configuration file")
	)
	flag.Parse()

	loader := &config.Loader{ConfigPath: *configPath}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load components: %v", err)
	}

	t := titan.New(titan.Options{
		Pipeline:   comp.Pipeline,
		Assigner:   comp.Assigner,
		Exporter:   comp.Exporter,
		Guidelines: comp.Guidelines,
		TopN:       comp.Config.TopN,
	})

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create drop folder: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("create watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(*dir); err != nil {
		log.Fatalf("watch %s: %v", *dir, err)
	}
	log.Printf("Watching %s for note drops", *dir)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}
			if !acceptedDrop(ev.Name) {
				continue
			}
			// Give the writer a moment to finish the file.
			time.Sleep(100 * time.Millisecond)
			if err := processDrop(t, ev.Name); err != nil {
				log.Printf("process %s: %v", filepath.Base(ev.Name), err)
				continue
			}
			log.Printf("Processed %s", filepath.Base(ev.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// acceptedDrop reports whether the file extension is one the watcher handles.
func acceptedDrop(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".html":
		return true
	}
	return false
}

func processDrop(t *titan.Titan, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	text := string(data)
	if strings.EqualFold(filepath.Ext(path), ".html") || htmltext.Looks(text) {
		text = htmltext.Extract(text)
	}

	res := t.ProcessNote(text)

	base := filepath.Base(path)
	visitID := strings.TrimSuffix(base, filepath.Ext(base))
	_, err = t.Export(res, visitID)
	return err
}
