package report

import (
	"html/template"
	"io"
	"path/filepath"

	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// htmlView is the data handed to the HTML template.
type htmlView struct {
	Name       string
	Generated  string
	Stats      taxonomy.Stats
	Average    string
	Counts     taxonomy.Counts
	Score      int
	Tier       taxonomy.Tier
	ScoreClass string
	Groups     []htmlGroup
}

type htmlGroup struct {
	Severity taxonomy.Severity
	Issues   []taxonomy.Issue
}

// WriteHTML writes a single-file report as a self-contained HTML
// document: a statistics grid, severity counts, the colored score and
// every issue grouped errors first.
func WriteHTML(w io.Writer, rpt *taxonomy.Report) error {
	view := htmlView{
		Name:       filepath.Base(rpt.File),
		Generated:  rpt.Timestamp.Format("2006-01-02 15:04:05"),
		Stats:      rpt.Stats,
		Average:    FormatAverage(rpt.Stats),
		Counts:     rpt.Counts(),
		Score:      rpt.Score,
		Tier:       rpt.Tier,
		ScoreClass: scoreClass(rpt.Score),
	}
	for _, sev := range taxonomy.Severities {
		if issues := taxonomy.BySeverity(rpt.Issues, sev); len(issues) > 0 {
			view.Groups = append(view.Groups, htmlGroup{Severity: sev, Issues: issues})
		}
	}
	return htmlTemplate.Execute(w, view)
}

// scoreClass picks the score banner color: excellent at 90, good at
// 70, poor below.
func scoreClass(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 70:
		return "good"
	default:
		return "poor"
	}
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Code quality report - {{.Name}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        .stats { background: #ecf0f1; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .stats-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 15px; }
        .stat-item { background: white; padding: 15px; border-radius: 5px; text-align: center; }
        .stat-value { font-size: 24px; font-weight: bold; color: #3498db; }
        .summary { display: flex; justify-content: space-around; margin: 20px 0; }
        .summary-item { text-align: center; }
        .summary-number { font-size: 32px; font-weight: bold; }
        .count-error { color: #e74c3c; }
        .count-warning { color: #f39c12; }
        .count-info { color: #3498db; }
        .issue { padding: 10px; margin: 10px 0; border-radius: 5px; }
        .issue.error { background: #fee; border-left: 4px solid #e74c3c; }
        .issue.warning { background: #ffeaa7; border-left: 4px solid #fdcb6e; }
        .issue.info { background: #e3f2fd; border-left: 4px solid #2196f3; }
        .score { font-size: 48px; text-align: center; padding: 20px; border-radius: 10px; margin: 20px 0; }
        .score.excellent { background: #d4edda; color: #155724; }
        .score.good { background: #fff3cd; color: #856404; }
        .score.poor { background: #f8d7da; color: #721c24; }
        .clean { color: #27ae60; font-size: 18px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Code quality report</h1>
        <p><strong>File:</strong> {{.Name}}</p>
        <p><strong>Date:</strong> {{.Generated}}</p>

        <div class="stats">
            <h2>Statistics</h2>
            <div class="stats-grid">
                <div class="stat-item"><div>Total lines</div><div class="stat-value">{{.Stats.Lines}}</div></div>
                <div class="stat-item"><div>Functions</div><div class="stat-value">{{.Stats.Functions}}</div></div>
                <div class="stat-item"><div>Classes</div><div class="stat-value">{{.Stats.Classes}}</div></div>
                <div class="stat-item"><div>Average complexity</div><div class="stat-value">{{.Average}}</div></div>
            </div>
        </div>

        <div class="summary">
            <div class="summary-item"><div class="summary-number count-error">{{.Counts.Errors}}</div><div>Errors</div></div>
            <div class="summary-item"><div class="summary-number count-warning">{{.Counts.Warnings}}</div><div>Warnings</div></div>
            <div class="summary-item"><div class="summary-number count-info">{{.Counts.Infos}}</div><div>Infos</div></div>
        </div>

        <div class="score {{.ScoreClass}}">{{.Score}}/100 <small>({{.Tier}})</small></div>

        <h2>Issues found</h2>
{{- if not .Groups}}
        <p class="clean">✓ No issues found!</p>
{{- end}}
{{- range .Groups}}{{$sev := .Severity}}
{{- range .Issues}}
        <div class="issue {{$sev}}"><strong>[{{$sev}}]</strong> line {{.Line}}: {{.Message}}</div>
{{- end}}
{{- end}}
    </div>
</body>
</html>
`))
