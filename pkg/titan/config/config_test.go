package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veetae/titan-lite/pkg/titan/internalerr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "icd/icd10_full.csv", cfg.CatalogPath)
	assert.Equal(t, "Output", cfg.OutputDir)
	assert.Equal(t, 5, cfg.TopN)
	assert.Empty(t, cfg.GuidelinePath)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog: data/codes.csv
guidelines: data/guidelines.json
output_dir: exports
top_n: 3
extra_leakage_patterns:
  - "(?i)^internal note.*$"
suspect_meds:
  - fakedrug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/codes.csv", cfg.CatalogPath)
	assert.Equal(t, "data/guidelines.json", cfg.GuidelinePath)
	assert.Equal(t, "exports", cfg.OutputDir)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, []string{"(?i)^internal note.*$"}, cfg.ExtraLeakagePatterns)
	assert.Equal(t, []string{"fakedrug"}, cfg.SuspectMeds)
}

func TestLoadFillsMissingFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, "catalog: only.csv\n"))
	require.NoError(t, err)
	assert.Equal(t, "only.csv", cfg.CatalogPath)
	assert.Equal(t, "Output", cfg.OutputDir)
	assert.Equal(t, 5, cfg.TopN)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "catalog: [unclosed\n"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestLoaderDefaultsWithoutPath(t *testing.T) {
	comp, err := (&Loader{}).Load()
	require.NoError(t, err)
	assert.NotNil(t, comp.Pipeline)
	assert.NotNil(t, comp.Polisher)
	assert.NotNil(t, comp.Post)
	assert.NotNil(t, comp.Assigner)
	assert.NotNil(t, comp.Exporter)
	assert.Nil(t, comp.Guidelines)
}

func TestLoaderGuidelineErrorIsHard(t *testing.T) {
	path := writeConfig(t, "guidelines: does-not-exist.json\n")
	_, err := (&Loader{ConfigPath: path}).Load()
	assert.Error(t, err, "configured but unreadable guideline map must fail loading")
}

func TestLoaderBadConfigPath(t *testing.T) {
	_, err := (&Loader{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}).Load()
	assert.Error(t, err)
}
