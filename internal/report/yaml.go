package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/codecheck/internal/scan"
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// WriteYAML writes a single-file report as YAML with the same keys
// as the JSON export.
func WriteYAML(w io.Writer, rpt *taxonomy.Report) error {
	if rpt.Issues == nil {
		cp := *rpt
		cp.Issues = []taxonomy.Issue{}
		rpt = &cp
	}
	return encodeYAML(w, rpt)
}

// WriteSummaryYAML writes a directory summary as YAML.
func WriteSummaryYAML(w io.Writer, s *scan.Summary) error {
	return encodeYAML(w, s)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
