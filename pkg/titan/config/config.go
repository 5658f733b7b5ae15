package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veetae/titan-lite/pkg/titan/internalerr"
)

// Config is the processor configuration loaded from a YAML file. Every field
// has a working default; an absent file means "run with defaults".
type Config struct {
	// CatalogPath points at the two-column code catalog CSV.
	CatalogPath string `yaml:"catalog"`
	// GuidelinePath points at the guideline map JSON. Empty disables the
	// guideline crosscheck.
	GuidelinePath string `yaml:"guidelines"`
	// OutputDir receives the append-only CSV sinks.
	OutputDir string `yaml:"output_dir"`
	// TopN caps the number of suggested code candidates.
	TopN int `yaml:"top_n"`
	// ExtraLeakagePatterns are additional line-anchored scrub patterns
	// layered on top of the built-in list.
	ExtraLeakagePatterns []string `yaml:"extra_leakage_patterns"`
	// SuspectMeds extends the built-in suspicious-medication list used by
	// the chart postprocessor.
	SuspectMeds []string `yaml:"suspect_meds"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		CatalogPath: "icd/icd10_full.csv",
		OutputDir:   "Output",
		TopN:        5,
	}
}

// Load reads a Config from a YAML file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = Default().OutputDir
	}
	if cfg.TopN <= 0 {
		cfg.TopN = Default().TopN
	}
	return cfg, nil
}
