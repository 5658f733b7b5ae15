package config

import (
	"fmt"

	"github.com/veetae/titan-lite/pkg/titan/coder"
	"github.com/veetae/titan-lite/pkg/titan/export"
	"github.com/veetae/titan-lite/pkg/titan/notes"
)

// Loader loads the configuration file and constructs components.
type Loader struct {
	// ConfigPath is the YAML config file; empty falls back to defaults.
	ConfigPath string
}

// Components holds all configured pipeline collaborators.
type Components struct {
	Config     Config
	Polisher   *notes.Polisher
	Pipeline   *notes.Pipeline
	Post       *notes.Postprocessor
	Assigner   *coder.Assigner
	Exporter   *export.Exporter
	Guidelines coder.GuidelineMap
}

// Load reads configuration and returns initialized components. A missing
// guideline map is a hard error only when one was explicitly configured.
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	polisher := notes.NewPolisher(cfg.ExtraLeakagePatterns)
	comp := &Components{
		Config:   cfg,
		Polisher: polisher,
		Pipeline: notes.NewPipeline(polisher),
		Post:     notes.NewPostprocessor(cfg.SuspectMeds),
		Assigner: coder.NewAssigner(cfg.CatalogPath),
		Exporter: export.NewExporter(cfg.OutputDir),
	}

	if cfg.GuidelinePath != "" {
		guidelines, err := coder.LoadGuidelineMap(cfg.GuidelinePath)
		if err != nil {
			return nil, fmt.Errorf("load guideline map: %w", err)
		}
		comp.Guidelines = guidelines
	}

	return comp, nil
}
