// Package scan runs directory-mode analysis: it discovers Python
// files under a root, analyzes them with bounded parallelism, and
// ranks the files by issue count.
//
// A file that cannot be read or parsed is recorded as a Failure and
// the scan continues; only context cancellation aborts a scan.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/codecheck/internal/check"
	"github.com/unbound-force/codecheck/internal/discover"
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// FileResult is the outcome of one successfully analyzed file.
type FileResult struct {
	// Path is the file path relative to the scanned root, with
	// forward slashes.
	Path string `json:"path" yaml:"path"`

	// Issues is the number of issues found in the file.
	Issues int `json:"issues" yaml:"issues"`

	Counts taxonomy.Counts `json:"counts" yaml:"counts"`
	Score  int             `json:"score" yaml:"score"`
	Tier   taxonomy.Tier   `json:"grade" yaml:"grade"`

	// Report is the full per-file report.
	Report *taxonomy.Report `json:"-" yaml:"-"`
}

// Failure records a file that was skipped.
type Failure struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"error" yaml:"error"`

	// Err is the underlying error, for errors.Is / errors.As.
	Err error `json:"-" yaml:"-"`
}

// Summary is the aggregate result of a directory scan.
type Summary struct {
	Root string `json:"root" yaml:"root"`

	// Files is the number of files discovered.
	Files int `json:"files" yaml:"files"`

	// Analyzed is the number of files that produced a report.
	Analyzed int `json:"analyzed" yaml:"analyzed"`

	// TotalIssues is the sum of every analyzed file's issue count.
	TotalIssues int             `json:"total_issues" yaml:"total_issues"`
	Counts      taxonomy.Counts `json:"counts" yaml:"counts"`

	// Results holds analyzed files ranked by issue count, most
	// first; ties are ordered by path.
	Results  []FileResult `json:"results" yaml:"results"`
	Failures []Failure    `json:"failures" yaml:"failures"`
}

// Flagged returns the ranked results with at least one issue.
func (s *Summary) Flagged() []FileResult {
	for i, r := range s.Results {
		if r.Issues == 0 {
			return s.Results[:i]
		}
	}
	return s.Results
}

// Top returns the first n flagged results and how many flagged
// results were left out. Clean files are never listed.
func (s *Summary) Top(n int) (top []FileResult, more int) {
	flagged := s.Flagged()
	if n < 0 || n >= len(flagged) {
		return flagged, 0
	}
	return flagged[:n], len(flagged) - n
}

// MinScore returns the lowest file score, or ok=false when no file
// was analyzed.
func (s *Summary) MinScore() (score int, ok bool) {
	for i, r := range s.Results {
		if i == 0 || r.Score < score {
			score = r.Score
		}
	}
	return score, len(s.Results) > 0
}

// Options configures Run.
type Options struct {
	Discover discover.Options
	Analysis check.Options

	// Workers bounds concurrent file analyses. Values below 1 mean
	// runtime.NumCPU().
	Workers int
}

type outcome struct {
	report *taxonomy.Report
	err    error
}

// Run scans root and returns the ranked summary.
func Run(ctx context.Context, root string, opts Options) (*Summary, error) {
	files, err := discover.Find(ctx, root, opts.Discover)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	// Each goroutine owns one slot, so no locking is needed.
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rpt, err := check.AnalyzeFile(gctx, filepath.Join(root, filepath.FromSlash(rel)), opts.Analysis)
			outcomes[i] = outcome{report: rpt, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return buildSummary(root, files, outcomes), nil
}

// buildSummary merges per-file outcomes, in discovery order, into a
// ranked summary.
func buildSummary(root string, files []string, outcomes []outcome) *Summary {
	s := &Summary{
		Root:     root,
		Files:    len(files),
		Results:  []FileResult{},
		Failures: []Failure{},
	}

	for i, o := range outcomes {
		if o.err != nil {
			s.Failures = append(s.Failures, Failure{
				Path:    files[i],
				Message: o.err.Error(),
				Err:     o.err,
			})
			continue
		}
		counts := o.report.Counts()
		s.Results = append(s.Results, FileResult{
			Path:   files[i],
			Issues: len(o.report.Issues),
			Counts: counts,
			Score:  o.report.Score,
			Tier:   o.report.Tier,
			Report: o.report,
		})
		s.TotalIssues += len(o.report.Issues)
		s.Counts.Errors += counts.Errors
		s.Counts.Warnings += counts.Warnings
		s.Counts.Infos += counts.Infos
	}
	s.Analyzed = len(s.Results)

	Rank(s.Results)
	return s
}

// Rank sorts results by issue count descending. Results with equal
// counts are ordered by path.
func Rank(results []FileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Issues != results[j].Issues {
			return results[i].Issues > results[j].Issues
		}
		return results[i].Path < results[j].Path
	})
}
