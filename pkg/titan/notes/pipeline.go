package notes

// Pipeline composes the text stages strictly left to right:
// clean → polish → tidy → arrange. Validation and enrichment are computed
// over the polished (pre-arrangement) text.
type Pipeline struct {
	polisher *Polisher
}

// NewPipeline creates a pipeline around the given polisher.
func NewPipeline(polisher *Polisher) *Pipeline {
	return &Pipeline{polisher: polisher}
}

// Processed holds every intermediate and final text of one pipeline run.
type Processed struct {
	Cleaned    string
	Polished   string
	Final      string
	Validation ValidationResult
	Enrichment Enrichment
}

// Process runs the full text pipeline. Every stage is pure; no stage mutates
// its input and no stage can fail on well-typed string input.
func (p *Pipeline) Process(text string) Processed {
	cleaned := Clean(text)
	polished := Tidy(p.polisher.Polish(cleaned))
	final := Arrange(polished)
	return Processed{
		Cleaned:    cleaned,
		Polished:   polished,
		Final:      final,
		Validation: Validate(polished),
		Enrichment: Enrich(polished),
	}
}
