// Package titan is the note-processing facade: staged text cleanup, section
// arrangement, validation, enrichment, code suggestion and structured export.
package titan

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/veetae/titan-lite/pkg/titan/coder"
	"github.com/veetae/titan-lite/pkg/titan/export"
	"github.com/veetae/titan-lite/pkg/titan/notes"
)

// Titan composes the pipeline with its collaborators.
type Titan struct {
	pipeline   *notes.Pipeline
	assigner   *coder.Assigner
	exporter   *export.Exporter
	guidelines coder.GuidelineMap
	topN       int
	entropy    *ulid.MonotonicEntropy
}

// Options configures a Titan instance.
type Options struct {
	Pipeline   *notes.Pipeline
	Assigner   *coder.Assigner
	Exporter   *export.Exporter
	Guidelines coder.GuidelineMap // optional; enables advisory crosscheck
	TopN       int
}

// New creates a Titan instance with the given dependencies.
func New(opts Options) *Titan {
	topN := opts.TopN
	if topN <= 0 {
		topN = coder.DefaultTopN
	}
	return &Titan{
		pipeline:   opts.Pipeline,
		assigner:   opts.Assigner,
		exporter:   opts.Exporter,
		guidelines: opts.Guidelines,
		topN:       topN,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
}

// Result is the structured outcome of one processing run, serializable as-is
// for downstream consumption.
type Result struct {
	ID         string                 `json:"id"`
	Cleaned    string                 `json:"cleaned"`
	Polished   string                 `json:"polished"`
	Final      string                 `json:"final"`
	Validation notes.ValidationResult `json:"validation"`
	Enrichment notes.Enrichment       `json:"enrichment"`
	Codes      []coder.Candidate      `json:"codes"`
	Advisories []string               `json:"advisories,omitempty"`
}

// ProcessNote runs the full pipeline over raw note text. Code assignment and
// the optional guideline crosscheck work on the polished, pre-arrangement
// text, matching validation and enrichment.
func (t *Titan) ProcessNote(text string) Result {
	processed := t.pipeline.Process(text)

	codes := t.assigner.Assign(processed.Polished, t.topN)

	res := Result{
		ID:         ulid.MustNew(ulid.Now(), t.entropy).String(),
		Cleaned:    processed.Cleaned,
		Polished:   processed.Polished,
		Final:      processed.Final,
		Validation: processed.Validation,
		Enrichment: processed.Enrichment,
		Codes:      codes,
	}

	if t.guidelines != nil {
		assigned := make([]string, 0, len(codes))
		for _, c := range codes {
			assigned = append(assigned, c.Code)
		}
		res.Advisories = t.guidelines.Crosscheck(processed.Polished, assigned)
	}

	return res
}

// Export appends the result's visit row and code rows under the supplied
// visit identifier. Many results may share a visit id; rows are purely
// appended, never deduplicated.
func (t *Titan) Export(res Result, visitID string) (export.Paths, error) {
	return t.exporter.Export(visitID, res.Enrichment, res.Validation, res.Codes)
}
