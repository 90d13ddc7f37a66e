package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unbound-force/codecheck/internal/check"
	"github.com/unbound-force/codecheck/internal/discover"
	"github.com/unbound-force/codecheck/internal/pysource"
)

// fixtures maps relative paths to contents with known issue counts.
var fixtures = map[string]string{
	// 0 issues
	"clean.py": "def add(a, b):\n    \"\"\"Add.\"\"\"\n    return a + b\n",
	// 1 issue: dangerous call
	"pkg/run.py": "result = eval('1 + 1')\n",
	// 3 issues: class docstring, class empty, dangerous call
	"pkg/worse.py": "class Holder:\n    pass\n\n\nexec('x = 1')\n",
	// 1 issue: function docstring
	"pkg/alpha.py": "def f():\n    return 1\n",
	// syntax failure
	"broken.py": "def broken(:\n    pass\n",
}

func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRun_RanksAndTotals(t *testing.T) {
	root := makeTree(t, fixtures)

	s, err := Run(context.Background(), root, Options{Analysis: check.DefaultOptions(), Workers: 2})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if s.Files != 5 || s.Analyzed != 4 {
		t.Errorf("files = %d, analyzed = %d, want 5 and 4", s.Files, s.Analyzed)
	}

	wantOrder := []struct {
		path   string
		issues int
	}{
		{"pkg/worse.py", 3},
		{"pkg/alpha.py", 1},
		{"pkg/run.py", 1},
		{"clean.py", 0},
	}
	if len(s.Results) != len(wantOrder) {
		t.Fatalf("results = %+v", s.Results)
	}
	for i, w := range wantOrder {
		if s.Results[i].Path != w.path || s.Results[i].Issues != w.issues {
			t.Errorf("results[%d] = %s (%d), want %s (%d)",
				i, s.Results[i].Path, s.Results[i].Issues, w.path, w.issues)
		}
	}

	sum := 0
	for _, r := range s.Results {
		sum += r.Issues
		if r.Report == nil || len(r.Report.Issues) != r.Issues {
			t.Errorf("%s: report does not match issue count", r.Path)
		}
	}
	if s.TotalIssues != sum || sum != 5 {
		t.Errorf("TotalIssues = %d, sum = %d, want 5", s.TotalIssues, sum)
	}
	if s.Counts.Total() != s.TotalIssues {
		t.Errorf("Counts %+v disagree with total %d", s.Counts, s.TotalIssues)
	}
	if s.Counts.Errors != 2 {
		t.Errorf("errors = %d, want 2", s.Counts.Errors)
	}
}

func TestRun_SkipsFailedFiles(t *testing.T) {
	root := makeTree(t, fixtures)

	s, err := Run(context.Background(), root, Options{Analysis: check.DefaultOptions()})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(s.Failures) != 1 || s.Failures[0].Path != "broken.py" {
		t.Fatalf("failures = %+v, want broken.py", s.Failures)
	}
	var serr *pysource.SyntaxError
	if !errors.As(s.Failures[0].Err, &serr) {
		t.Errorf("failure error = %v, want *pysource.SyntaxError", s.Failures[0].Err)
	}
	if s.Failures[0].Message == "" {
		t.Error("failure message should not be empty")
	}
}

func TestRun_WorkerCountDoesNotChangeResult(t *testing.T) {
	root := makeTree(t, fixtures)

	one, err := Run(context.Background(), root, Options{Analysis: check.DefaultOptions(), Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	many, err := Run(context.Background(), root, Options{Analysis: check.DefaultOptions(), Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	for i := range one.Results {
		if one.Results[i].Path != many.Results[i].Path || one.Results[i].Issues != many.Results[i].Issues {
			t.Errorf("result %d differs: %+v vs %+v", i, one.Results[i], many.Results[i])
		}
	}
}

func TestRun_ExcludeRespected(t *testing.T) {
	root := makeTree(t, fixtures)

	s, err := Run(context.Background(), root, Options{
		Discover: discover.Options{Exclude: []string{"pkg/**"}},
		Analysis: check.DefaultOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Files != 2 || s.Analyzed != 1 || s.TotalIssues != 0 {
		t.Errorf("summary = files %d, analyzed %d, issues %d", s.Files, s.Analyzed, s.TotalIssues)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	s, err := Run(context.Background(), t.TempDir(), Options{Analysis: check.DefaultOptions()})
	if err != nil {
		t.Fatal(err)
	}
	if s.Files != 0 || len(s.Results) != 0 || s.Results == nil {
		t.Errorf("summary = %+v, want empty non-nil results", s)
	}
	if _, ok := s.MinScore(); ok {
		t.Error("MinScore should be undefined for an empty scan")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	root := makeTree(t, fixtures)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, root, Options{Analysis: check.DefaultOptions()}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRank_StableDescending(t *testing.T) {
	results := []FileResult{
		{Path: "b.py", Issues: 2},
		{Path: "a.py", Issues: 2},
		{Path: "c.py", Issues: 7},
		{Path: "d.py", Issues: 0},
	}
	Rank(results)
	want := []string{"c.py", "a.py", "b.py", "d.py"}
	for i, w := range want {
		if results[i].Path != w {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Path, w)
		}
	}
}

func TestSummary_Top(t *testing.T) {
	s := &Summary{Results: make([]FileResult, 12)}
	for i := range s.Results {
		s.Results[i].Issues = 12 - i
	}

	top, more := s.Top(10)
	if len(top) != 10 || more != 2 {
		t.Errorf("Top(10) = %d results, %d more; want 10, 2", len(top), more)
	}
	top, more = s.Top(20)
	if len(top) != 12 || more != 0 {
		t.Errorf("Top(20) = %d results, %d more; want 12, 0", len(top), more)
	}
}

func TestSummary_TopSkipsCleanFiles(t *testing.T) {
	s := &Summary{Results: []FileResult{
		{Path: "b.py", Issues: 3},
		{Path: "a.py", Issues: 1},
		{Path: "clean.py"},
		{Path: "tidy.py"},
	}}

	top, more := s.Top(10)
	if len(top) != 2 || more != 0 {
		t.Fatalf("Top(10) = %+v, %d more; want the 2 flagged files", top, more)
	}
	if top[0].Path != "b.py" || top[1].Path != "a.py" {
		t.Errorf("Top(10) = %+v", top)
	}
	top, more = s.Top(1)
	if len(top) != 1 || more != 1 {
		t.Errorf("Top(1) = %d results, %d more; want 1, 1", len(top), more)
	}
	if len(s.Results) != 4 {
		t.Error("clean files must stay in Results")
	}
}

func TestRun_CleanFilesAnalyzedButNotFlagged(t *testing.T) {
	root := makeTree(t, fixtures)

	s, err := Run(context.Background(), root, Options{Analysis: check.DefaultOptions(), Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range s.Flagged() {
		if r.Path == "clean.py" {
			t.Error("clean.py has no issues and should not be flagged")
		}
	}
	if len(s.Flagged()) != 3 || s.Analyzed != 4 {
		t.Errorf("flagged = %d, analyzed = %d; want 3 and 4", len(s.Flagged()), s.Analyzed)
	}
}

func TestSummary_MinScore(t *testing.T) {
	s := &Summary{Results: []FileResult{{Score: 90}, {Score: 64}, {Score: 100}}}
	if got, ok := s.MinScore(); !ok || got != 64 {
		t.Errorf("MinScore() = (%d, %v), want (64, true)", got, ok)
	}
}
