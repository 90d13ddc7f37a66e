// Package check is the analysis entry point: it parses one Python
// file, walks it for metrics, turns threshold violations into issues
// and scores the result.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/unbound-force/codecheck/internal/metrics"
	"github.com/unbound-force/codecheck/internal/pysource"
	"github.com/unbound-force/codecheck/internal/scoring"
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// ErrNotUTF8 is returned for files that are not valid UTF-8 text.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// Thresholds are the limits above which an issue is raised.
type Thresholds struct {
	// MaxFunctionLength is the longest allowed function, in lines
	// spanned past the def line.
	MaxFunctionLength int `mapstructure:"max_function_length" json:"max_function_length"`

	// MaxComplexity is the highest allowed cyclomatic complexity.
	MaxComplexity int `mapstructure:"max_complexity" json:"max_complexity"`

	// MaxParameters is the largest allowed parameter count.
	MaxParameters int `mapstructure:"max_parameters" json:"max_parameters"`

	// MaxLineLength is the longest allowed line, in characters.
	MaxLineLength int `mapstructure:"max_line_length" json:"max_line_length"`
}

// DefaultThresholds returns the standard limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxFunctionLength: 50,
		MaxComplexity:     10,
		MaxParameters:     5,
		MaxLineLength:     79,
	}
}

// Options configures analysis.
type Options struct {
	Thresholds Thresholds

	// DangerousCalls lists bare callee names reported as errors.
	// Nil means metrics.DefaultDangerousCalls.
	DangerousCalls []string

	// ParseTimeout bounds parsing of a single file. Zero disables
	// the bound.
	ParseTimeout time.Duration

	// Now returns the report timestamp. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns options with the standard thresholds.
func DefaultOptions() Options {
	return Options{
		Thresholds:     DefaultThresholds(),
		DangerousCalls: append([]string(nil), metrics.DefaultDangerousCalls...),
		ParseTimeout:   5 * time.Second,
	}
}

// Analyze parses source and returns its report. identity names the
// source in the report and in issue IDs. A *pysource.SyntaxError is
// returned, and no report, when the source does not parse.
func Analyze(ctx context.Context, source []byte, identity string, opts Options) (*taxonomy.Report, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	timestamp := now()

	tree, err := pysource.NewParser(opts.ParseTimeout).Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	unit := pysource.NewSourceUnit(string(tree.Source))
	res := metrics.Walk(tree, metrics.Options{DangerousCalls: opts.DangerousCalls})

	c := newCollector(identity, opts.Thresholds)
	c.lineLengths(unit)
	for _, f := range res.Findings {
		switch f.Kind {
		case metrics.FindingFunction:
			c.function(f)
		case metrics.FindingType:
			c.class(f)
		}
	}
	for _, call := range res.Calls {
		c.dangerousCall(call)
	}

	issues := c.sorted()
	score, tier := scoring.Evaluate(issues)

	return &taxonomy.Report{
		File:      identity,
		Timestamp: timestamp,
		Stats: taxonomy.Stats{
			Lines:        unit.LineCount(),
			BlankLines:   unit.BlankLines,
			CommentLines: unit.CommentLines,
			Functions:    res.Functions,
			Classes:      res.Classes,
			Complexity:   res.Complexity,
		},
		Issues: issues,
		Score:  score,
		Tier:   tier,
	}, nil
}

// AnalyzeFile reads path and analyzes it with path as the identity.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*taxonomy.Report, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNotUTF8)
	}
	rpt, err := Analyze(ctx, source, path, opts)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", path, err)
	}
	return rpt, nil
}

// sortIssues orders issues by line; issues on the same line keep
// discovery order.
func sortIssues(issues []taxonomy.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Line < issues[j].Line
	})
}
