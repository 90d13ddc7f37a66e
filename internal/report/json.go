// Package report renders codecheck results as styled console text,
// JSON, YAML and a self-contained HTML document.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/codecheck/internal/scan"
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// WriteJSON writes a single-file report as indented JSON. The
// document mirrors taxonomy.Report and conforms to Schema.
func WriteJSON(w io.Writer, rpt *taxonomy.Report) error {
	if rpt.Issues == nil {
		cp := *rpt
		cp.Issues = []taxonomy.Issue{}
		rpt = &cp
	}
	return encodeJSON(w, rpt)
}

// WriteSummaryJSON writes a directory summary as indented JSON. The
// document conforms to SummarySchema.
func WriteSummaryJSON(w io.Writer, s *scan.Summary) error {
	return encodeJSON(w, s)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
