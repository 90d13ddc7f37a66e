package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/unbound-force/codecheck/internal/check"
	"github.com/unbound-force/codecheck/internal/config"
	"github.com/unbound-force/codecheck/internal/discover"
	"github.com/unbound-force/codecheck/internal/report"
	"github.com/unbound-force/codecheck/internal/scaffold"
	"github.com/unbound-force/codecheck/internal/scan"
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Export formats. formatText means console output only.
const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
	formatYAML = "yaml"
)

// checkParams holds the parsed flags for the root command.
type checkParams struct {
	target      string
	format      string
	output      string
	configPath  string
	flags       *pflag.FlagSet
	minScore    int
	interactive bool
	verbose     bool
	quiet       bool
	now         func() time.Time
	stdout      io.Writer
	stderr      io.Writer
}

// runCheck is the extracted, testable body of the root command.
func runCheck(ctx context.Context, p checkParams) error {
	switch {
	case p.verbose:
		logger.SetLevel(charmlog.DebugLevel)
	case p.quiet:
		logger.SetLevel(charmlog.ErrorLevel)
	default:
		logger.SetLevel(charmlog.InfoLevel)
	}

	switch p.format {
	case formatText, formatJSON, formatHTML, formatYAML:
	default:
		return fmt.Errorf("invalid format %q: must be 'text', 'json', 'html', or 'yaml'", p.format)
	}

	cfg, err := config.Load(p.configPath, p.flags)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	info, err := os.Stat(p.target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s does not exist: %w", p.target, err)
		}
		return fmt.Errorf("inspecting %s: %w", p.target, err)
	}

	opts := cfg.AnalysisOptions()
	opts.Now = p.now

	if info.IsDir() {
		return runDirectory(ctx, p, cfg, opts)
	}
	return runFile(ctx, p, opts)
}

func runFile(ctx context.Context, p checkParams, opts check.Options) error {
	logger.Info("analyzing file", "path", p.target)
	rpt, err := check.AnalyzeFile(ctx, p.target, opts)
	if err != nil {
		return err
	}
	counts := rpt.Counts()
	logger.Debug("analysis complete",
		"errors", counts.Errors, "warnings", counts.Warnings,
		"infos", counts.Infos, "score", rpt.Score)

	exportToStdout := p.format != formatText && p.output == "-"
	switch {
	case p.interactive:
		if err := runInteractive(filepath.Base(p.target), report.RenderText(rpt, report.DefaultStyles())); err != nil {
			return err
		}
	case !exportToStdout:
		if err := report.WriteText(p.stdout, rpt, stylesFor(p.stdout)); err != nil {
			return err
		}
	}

	if p.format != formatText {
		if err := export(p, false, func(w io.Writer) error {
			return writeFileReport(w, p.format, rpt)
		}); err != nil {
			return err
		}
	}

	printCISummary(p.stderr, rpt.Score, p.minScore)
	return checkMinScore(rpt.Score, p.minScore)
}

func runDirectory(ctx context.Context, p checkParams, cfg *config.Config, opts check.Options) error {
	if p.format == formatHTML {
		logger.Warn("HTML export is only available for single files; ignoring --html")
		p.format = formatText
	}

	logger.Info("scanning directory", "path", p.target, "workers", cfg.Scan.Workers)
	sum, err := scan.Run(ctx, p.target, scan.Options{
		Discover: discover.Options{
			Include:    cfg.Scan.Include,
			Exclude:    cfg.Scan.Exclude,
			SkipHidden: cfg.Scan.SkipHidden,
		},
		Analysis: opts,
		Workers:  cfg.Scan.Workers,
	})
	if err != nil {
		return err
	}
	for _, f := range sum.Failures {
		logger.Warn("skipped file", "path", f.Path, "err", f.Message)
	}
	logger.Debug("scan complete",
		"files", sum.Files, "analyzed", sum.Analyzed, "issues", sum.TotalIssues)

	exportToStdout := p.format != formatText && p.output == "-"
	switch {
	case p.interactive:
		if err := runInteractive(sum.Root, renderDirectoryContent(sum, cfg.Scan.Top)); err != nil {
			return err
		}
	case !exportToStdout:
		if err := report.WriteDirectoryText(p.stdout, sum, cfg.Scan.Top, stylesFor(p.stdout)); err != nil {
			return err
		}
	}

	if p.format != formatText {
		if err := export(p, true, func(w io.Writer) error {
			return writeSummaryReport(w, p.format, sum)
		}); err != nil {
			return err
		}
	}

	score, ok := sum.MinScore()
	if !ok {
		return nil
	}
	printCISummary(p.stderr, score, p.minScore)
	return checkMinScore(score, p.minScore)
}

// stylesFor returns console styles matched to w's color support.
func stylesFor(w io.Writer) report.Styles {
	return report.NewStyles(lipgloss.NewRenderer(w))
}

func writeFileReport(w io.Writer, format string, rpt *taxonomy.Report) error {
	switch format {
	case formatJSON:
		return report.WriteJSON(w, rpt)
	case formatYAML:
		return report.WriteYAML(w, rpt)
	default:
		return report.WriteHTML(w, rpt)
	}
}

func writeSummaryReport(w io.Writer, format string, sum *scan.Summary) error {
	if format == formatYAML {
		return report.WriteSummaryYAML(w, sum)
	}
	return report.WriteSummaryJSON(w, sum)
}

// export writes an export document to stdout when --output is "-",
// otherwise to the --output path or the default exportPath.
func export(p checkParams, isDir bool, write func(io.Writer) error) error {
	if p.output == "-" {
		return write(p.stdout)
	}

	path := p.output
	if path == "" {
		path = exportPath(p.target, p.format, isDir)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("report saved", "path", path)
	return nil
}

// exportPath returns the default export location: <stem>_report.<ext>
// next to a file target, or <dir>/<name>_report.<ext> inside a
// directory target.
func exportPath(target, format string, isDir bool) string {
	if isDir {
		clean := filepath.Clean(target)
		name := filepath.Base(clean)
		if abs, err := filepath.Abs(clean); err == nil {
			name = filepath.Base(abs)
		}
		return filepath.Join(clean, name+"_report."+format)
	}
	return strings.TrimSuffix(target, filepath.Ext(target)) + "_report." + format
}

// printCISummary prints a one-line CI summary to stderr when
// --min-score is set.
func printCISummary(w io.Writer, score, minScore int) {
	if minScore <= 0 {
		return
	}
	status := "PASS"
	if score < minScore {
		status = "FAIL"
	}
	fmt.Fprintf(w, "Score: %d/100, minimum %d (%s)\n", score, minScore, status)
}

// checkMinScore returns an error if the score is below the CI minimum.
func checkMinScore(score, minScore int) error {
	if minScore > 0 && score < minScore {
		return fmt.Errorf("score %d is below minimum %d", score, minScore)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		asJSON      bool
		asHTML      bool
		asYAML      bool
		output      string
		configPath  string
		minScore    int
		interactive bool
		verbose     bool
		quiet       bool
	)

	root := &cobra.Command{
		Use:   "codecheck <file-or-directory>",
		Short: "Quality checks for Python source files",
		Long: `codecheck analyzes Python source files for overly long or complex
functions, missing docstrings, too many parameters, empty classes,
long lines and calls to eval() or exec(), and grades each file with
a 0-100 quality score.

Given a directory, every .py file below it is analyzed and the files
are ranked by issue count.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := formatText
			switch {
			case asJSON:
				format = formatJSON
			case asHTML:
				format = formatHTML
			case asYAML:
				format = formatYAML
			}
			return runCheck(cmd.Context(), checkParams{
				target:      args[0],
				format:      format,
				output:      output,
				configPath:  configPath,
				flags:       cmd.Flags(),
				minScore:    minScore,
				interactive: interactive,
				verbose:     verbose,
				quiet:       quiet,
				now:         time.Now,
				stdout:      cmd.OutOrStdout(),
				stderr:      cmd.ErrOrStderr(),
			})
		},
	}

	f := root.Flags()
	f.BoolVar(&asJSON, "json", false, "also export the report as JSON")
	f.BoolVar(&asHTML, "html", false, "also export the report as HTML (single files only)")
	f.BoolVar(&asYAML, "yaml", false, "also export the report as YAML")
	f.StringVarP(&output, "output", "o", "",
		"export destination (default: <name>_report.<ext>; \"-\" for stdout)")
	f.StringVar(&configPath, "config", "",
		"config file (default: .codecheck.yaml in the working directory)")
	f.IntVar(&minScore, "min-score", 0,
		"fail if the score (lowest file score for directories) is below this (0 = no limit)")
	f.BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing the report")
	f.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	d := config.Default()
	f.Int("max-function-length", d.Thresholds.MaxFunctionLength, "longest allowed function, in lines")
	f.Int("max-complexity", d.Thresholds.MaxComplexity, "highest allowed cyclomatic complexity")
	f.Int("max-parameters", d.Thresholds.MaxParameters, "largest allowed parameter count")
	f.Int("max-line-length", d.Thresholds.MaxLineLength, "longest allowed line, in characters")
	f.StringSlice("exclude", nil, "glob patterns to skip in directory mode")
	f.Int("workers", d.Scan.Workers, "files analyzed concurrently in directory mode")
	f.Int("top", d.Scan.Top, "ranked files listed in directory mode")
	f.Duration("parse-timeout", d.ParseTimeout, "per-file parse time limit (0 = none)")

	root.MarkFlagsMutuallyExclusive("json", "html", "yaml")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())
	return root
}

func newSchemaCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for codecheck JSON output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of codecheck <file> --json output, or with --summary the
directory-mode output. Useful for validating output or generating
client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := report.Schema
			if summary {
				schema = report.SummarySchema
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), schema)
			return err
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print the directory summary schema")
	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .codecheck.yaml and CI workflow",
		Long: `Write a commented .codecheck.yaml holding the default thresholds
and a GitHub Actions workflow that gates on the quality score into the
current directory. Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}
			_, err = scaffold.Run(scaffold.Options{
				TargetDir: cwd,
				Force:     force,
				Version:   version,
				Stdout:    cmd.OutOrStdout(),
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}
