// Package export appends pipeline results to persistent tabular sinks. Sinks
// are plain CSV files owned by a single writer; every call is a scoped
// open-append-close with no state retained across calls.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/veetae/titan-lite/pkg/titan/coder"
	"github.com/veetae/titan-lite/pkg/titan/notes"
)

const (
	visitSinkName = "master_visit_structured.csv"
	codesSinkName = "master_visit_structured_ICD_block.csv"
)

var (
	visitHeader = []string{"visit_id", "chars", "words", "lines", "sections_detected", "valid", "issues"}
	codesHeader = []string{"visit_id", "code", "description", "score"}
)

// Paths reports which sink files an export touched.
type Paths struct {
	Visits string `json:"structured"`
	Codes  string `json:"icd_block"`
}

// Exporter appends visit rows and code rows under one output directory.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into dir. The directory is created
// on first append.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export appends exactly one visit row and one row per code candidate. The
// codes sink is only touched when candidates exist, so a code-less first call
// does not create it. Header rows are written only when a sink file is first
// created; appends never rewrite headers.
func (e *Exporter) Export(visitID string, enr notes.Enrichment, val notes.ValidationResult, codes []coder.Candidate) (Paths, error) {
	paths := Paths{
		Visits: filepath.Join(e.dir, visitSinkName),
		Codes:  filepath.Join(e.dir, codesSinkName),
	}

	valid := "FALSE"
	if val.Valid {
		valid = "TRUE"
	}
	visitRow := []string{
		visitID,
		strconv.Itoa(enr.Chars),
		strconv.Itoa(enr.Words),
		strconv.Itoa(enr.Lines),
		strings.Join(enr.SectionsDetected, ";"),
		valid,
		strings.Join(val.Issues, ";"),
	}
	if err := appendRows(paths.Visits, visitHeader, [][]string{visitRow}); err != nil {
		return paths, fmt.Errorf("append visit sink: %w", err)
	}

	if len(codes) > 0 {
		rows := make([][]string, 0, len(codes))
		for _, c := range codes {
			rows = append(rows, []string{visitID, c.Code, c.Description, strconv.Itoa(c.Score)})
		}
		if err := appendRows(paths.Codes, codesHeader, rows); err != nil {
			return paths, fmt.Errorf("append codes sink: %w", err)
		}
	}

	return paths, nil
}

// appendRows opens the sink, writes the header if the file did not exist yet,
// appends the rows and closes the sink.
func appendRows(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
