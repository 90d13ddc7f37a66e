package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// MaxInfos is how many info-level issues the console report lists
// before collapsing the rest into an overflow line.
const MaxInfos = 10

const ruleWidth = 60

// WriteText writes a single-file report as human-readable styled
// text. Issues are grouped by severity: errors, warnings, then at
// most MaxInfos infos.
func WriteText(w io.Writer, rpt *taxonomy.Report, s Styles) error {
	_, err := io.WriteString(w, RenderText(rpt, s))
	return err
}

// RenderText returns the WriteText output as a string.
func RenderText(rpt *taxonomy.Report, s Styles) string {
	var b strings.Builder
	rule := s.Banner.Render(strings.Repeat("=", ruleWidth))

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, s.Banner.Render("Code quality report: "+filepath.Base(rpt.File)))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	writeStats(&b, rpt.Stats, s)
	fmt.Fprintln(&b)

	if len(rpt.Issues) == 0 {
		fmt.Fprintln(&b, s.Success.Render("✓ No issues found!"))
	} else {
		writeIssues(&b, rpt, s)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "\nCode quality score: %s\n", s.Score.Render(fmt.Sprintf("%d/100", rpt.Score)))
	fmt.Fprintf(&b, "Grade: %s\n", s.TierStyle(rpt.Tier).Render(string(rpt.Tier)))
	return b.String()
}

func writeStats(b *strings.Builder, st taxonomy.Stats, s Styles) {
	fmt.Fprintln(b, s.Section.Render("Statistics:"))
	fmt.Fprintf(b, "  - Total lines: %d\n", st.Lines)
	fmt.Fprintf(b, "  - Blank lines: %d\n", st.BlankLines)
	fmt.Fprintf(b, "  - Comment lines: %d\n", st.CommentLines)
	fmt.Fprintf(b, "  - Functions: %d\n", st.Functions)
	fmt.Fprintf(b, "  - Classes: %d\n", st.Classes)
	fmt.Fprintf(b, "  - Average complexity: %s\n", FormatAverage(st))
}

// FormatAverage renders the average complexity with one decimal, or
// "n/a" when the file defines no functions.
func FormatAverage(st taxonomy.Stats) string {
	avg, ok := st.AverageComplexity()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", avg)
}

func writeIssues(b *strings.Builder, rpt *taxonomy.Report, s Styles) {
	fmt.Fprintln(b, s.Section.Render("Issues found:"))
	fmt.Fprintln(b)

	for _, sev := range taxonomy.Severities {
		issues := taxonomy.BySeverity(rpt.Issues, sev)
		shown := issues
		if sev == taxonomy.SeverityInfo && len(shown) > MaxInfos {
			shown = shown[:MaxInfos]
		}
		style := s.SeverityStyle(sev)
		for _, is := range shown {
			fmt.Fprintln(b, style.Render(fmt.Sprintf("  [%s] line %d: %s", sev, is.Line, is.Message)))
		}
		if more := len(issues) - len(shown); more > 0 {
			fmt.Fprintln(b, style.Render(fmt.Sprintf("  ... and %d more infos", more)))
		}
	}

	c := rpt.Counts()
	fmt.Fprintln(b)
	fmt.Fprintf(b, "Total: %s errors, %s warnings, %s infos\n",
		s.Error.Render(fmt.Sprint(c.Errors)),
		s.Warning.Render(fmt.Sprint(c.Warnings)),
		s.Info.Render(fmt.Sprint(c.Infos)))
}
