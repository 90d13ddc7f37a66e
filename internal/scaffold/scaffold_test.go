package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unbound-force/codecheck/internal/config"
)

var expectedFiles = []string{
	".codecheck.yaml",
	".github/workflows/codecheck.yml",
}

// pythonProject returns a temp dir holding one Python file, so Run
// prints no warning.
func pythonProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("creating app.py: %v", err)
	}
	return dir
}

func TestRun_CreatesFiles(t *testing.T) {
	dir := pythonProject(t)

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Version: "1.2.3", Stdout: &buf})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if len(result.Created) != len(expectedFiles) {
		t.Errorf("expected %d created files, got %d: %v", len(expectedFiles), len(result.Created), result.Created)
	}
	if len(result.Skipped) != 0 || len(result.Overwritten) != 0 {
		t.Errorf("expected nothing skipped or overwritten, got %+v", result)
	}
	for _, rel := range expectedFiles {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); os.IsNotExist(err) {
			t.Errorf("expected file %s to exist", rel)
		}
	}

	output := buf.String()
	if !strings.Contains(output, "created:") {
		t.Errorf("summary should mention 'created:', got:\n%s", output)
	}
	if strings.Contains(output, "Warning") {
		t.Errorf("no warning expected in a Python project, got:\n%s", output)
	}
}

func TestRun_SkipsExisting(t *testing.T) {
	dir := pythonProject(t)

	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("first Run() returned error: %v", err)
	}

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Stdout: &buf})
	if err != nil {
		t.Fatalf("second Run() returned error: %v", err)
	}
	if len(result.Created) != 0 || len(result.Skipped) != len(expectedFiles) {
		t.Errorf("expected all files skipped, got %+v", result)
	}
	if !strings.Contains(buf.String(), "use --force to overwrite") {
		t.Errorf("summary should suggest --force, got:\n%s", buf.String())
	}
}

func TestRun_ForceOverwrites(t *testing.T) {
	dir := pythonProject(t)
	cfgPath := filepath.Join(dir, ".codecheck.yaml")
	if err := os.WriteFile(cfgPath, []byte("thresholds: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{TargetDir: dir, Force: true, Version: "2.0.0", Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(result.Overwritten) != 1 || result.Overwritten[0] != ".codecheck.yaml" {
		t.Errorf("expected .codecheck.yaml overwritten, got %+v", result)
	}
	if len(result.Created) != 1 {
		t.Errorf("expected the workflow to be created, got %+v", result)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# scaffolded by codecheck 2.0.0\n") {
		t.Errorf("expected version marker, got:\n%s", data)
	}
}

func TestRun_VersionMarker_Dev(t *testing.T) {
	dir := pythonProject(t)
	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".codecheck.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# scaffolded by codecheck dev\n") {
		t.Errorf("expected dev marker, got first line %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestRun_NoPythonFiles_PrintsWarning(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Run(Options{TargetDir: t.TempDir(), Stdout: &buf}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Warning: no Python files found") {
		t.Errorf("expected warning, got:\n%s", buf.String())
	}
}

// TestScaffoldedConfig_MatchesDefaults loads the scaffolded file and
// checks it agrees with the built-in defaults it documents.
func TestScaffoldedConfig_MatchesDefaults(t *testing.T) {
	dir := pythonProject(t)
	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(filepath.Join(dir, ".codecheck.yaml"), nil)
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	def := config.Default()
	if cfg.Thresholds != def.Thresholds {
		t.Errorf("thresholds = %+v, want defaults %+v", cfg.Thresholds, def.Thresholds)
	}
	if strings.Join(cfg.DangerousCalls, ",") != strings.Join(def.DangerousCalls, ",") {
		t.Errorf("dangerous calls = %v, want %v", cfg.DangerousCalls, def.DangerousCalls)
	}
	if cfg.ParseTimeout != def.ParseTimeout || cfg.Scan.Top != def.Scan.Top {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"dot-codecheck.yaml":             ".codecheck.yaml",
		"dot-github/workflows/ci.yml":    ".github/workflows/ci.yml",
		"docs/dot-notes/readme-dot-x.md": "docs/.notes/readme-dot-x.md",
	}
	for in, want := range tests {
		if got := OutputPath(in); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssetPaths(t *testing.T) {
	paths, err := AssetPaths()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(paths, ",") != strings.Join(expectedFiles, ",") {
		t.Errorf("AssetPaths() = %v, want %v", paths, expectedFiles)
	}
}
