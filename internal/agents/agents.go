// Package agents routes structured clinical payloads to the right handler:
// SOAP enrichment, catalog lookup or lab summary. It is thin dispatch glue
// over the store and the coder, with required-field validation up front.
package agents

import (
	"context"
	"fmt"

	"github.com/veetae/titan-lite/pkg/titan/coder"
	"github.com/veetae/titan-lite/pkg/titan/internalerr"
	"github.com/veetae/titan-lite/pkg/titan/store"
)

// Payload is the shared request shape. Which fields are set decides the route.
type Payload struct {
	PatientID      string `json:"patient_id,omitempty"`
	Query          string `json:"query,omitempty"`
	Subjective     string `json:"subjective,omitempty"`
	ChiefComplaint string `json:"chief_complaint,omitempty"`
	Plan           string `json:"plan,omitempty"`
}

// ValidateSOAP checks the required fields of a SOAP enrichment payload.
func ValidateSOAP(p Payload) error {
	for _, f := range []struct{ name, val string }{
		{"patient_id", p.PatientID},
		{"subjective", p.Subjective},
		{"chief_complaint", p.ChiefComplaint},
		{"plan", p.Plan},
	} {
		if f.val == "" {
			return fmt.Errorf("%w: missing %s", internalerr.ErrInvalidPayload, f.name)
		}
	}
	return nil
}

// SOAPNote is an enriched note assembled from payload, labs and code lookups.
type SOAPNote struct {
	Subjective string        `json:"subjective"`
	Objective  []store.Lab   `json:"objective"`
	Assessment []coder.Entry `json:"assessment"`
	Plan       string        `json:"plan"`
}

// Result is the outcome of one routed request; exactly one field is set.
type Result struct {
	SOAP  *SOAPNote     `json:"soap,omitempty"`
	Codes []coder.Entry `json:"codes,omitempty"`
	Labs  []store.Lab   `json:"labs,omitempty"`
}

// Dispatcher wires the handlers' collaborators.
type Dispatcher struct {
	Store store.Store
	Coder *coder.Assigner
}

// Route inspects the payload shape and dispatches:
// subjective + chief complaint → SOAP enrichment, patient + query → catalog
// lookup, patient alone → lab summary.
func (d *Dispatcher) Route(ctx context.Context, p Payload) (Result, error) {
	switch {
	case p.Subjective != "" && p.ChiefComplaint != "":
		if err := ValidateSOAP(p); err != nil {
			return Result{}, err
		}
		note, err := d.enrichSOAP(ctx, p)
		if err != nil {
			return Result{}, err
		}
		return Result{SOAP: note}, nil
	case p.PatientID != "" && p.Query != "":
		return Result{Codes: d.Coder.Search(p.Query, 20)}, nil
	case p.PatientID != "":
		labs, err := d.labSummary(ctx, p.PatientID)
		if err != nil {
			return Result{}, err
		}
		return Result{Labs: labs}, nil
	}
	return Result{}, fmt.Errorf("%w: no routing rule matched", internalerr.ErrInvalidPayload)
}

// enrichSOAP assembles the note: subjective from the payload, objective from
// the latest labs, assessment from a catalog lookup on the chief complaint.
func (d *Dispatcher) enrichSOAP(ctx context.Context, p Payload) (*SOAPNote, error) {
	labs, err := d.labSummary(ctx, p.PatientID)
	if err != nil {
		return nil, err
	}

	plan := p.Plan
	if plan == "" {
		plan = "Follow-up in 1 week"
	}

	return &SOAPNote{
		Subjective: p.Subjective,
		Objective:  labs,
		Assessment: d.Coder.Search(p.ChiefComplaint, 20),
		Plan:       plan,
	}, nil
}

func (d *Dispatcher) labSummary(ctx context.Context, handle string) ([]store.Lab, error) {
	if d.Store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return d.Store.LatestLabs(ctx, handle, 20)
}
