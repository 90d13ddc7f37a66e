package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/codecheck/internal/scan"
)

// maxPath is the widest path the directory table shows before
// trimming from the left.
const maxPath = 44

// WriteDirectoryText writes a directory summary: the file count, the
// top ranked files with colored issue counts, an overflow line and
// the grand total. Files without issues are not listed.
func WriteDirectoryText(w io.Writer, sum *scan.Summary, top int, s Styles) error {
	var b strings.Builder

	fmt.Fprintln(&b, s.Banner.Render("Scanning directory: "+sum.Root))
	fmt.Fprintln(&b)

	if sum.Files == 0 {
		fmt.Fprintln(&b, s.Warning.Render("No Python files found in this directory"))
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Found %s files\n\n", s.Score.Render(fmt.Sprint(sum.Files)))

	shown, more := sum.Top(top)
	if len(shown) > 0 {
		rows := make([][]string, 0, len(shown))
		for _, r := range shown {
			rows = append(rows, []string{
				trimPath(r.Path),
				fmt.Sprint(r.Issues),
				fmt.Sprintf("%d/100", r.Score),
				string(r.Tier),
			})
		}

		t := table.New().
			Width(76).
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.Border).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				if row >= 0 && row < len(shown) {
					switch col {
					case 1:
						return s.CountStyle(shown[row].Issues).PaddingRight(1)
					case 3:
						return s.TierStyle(shown[row].Tier).PaddingRight(1)
					}
				}
				return s.TableCell
			}).
			Headers("FILE", "ISSUES", "SCORE", "GRADE").
			Rows(rows...)
		fmt.Fprintln(&b, t)
	} else if sum.Analyzed > 0 {
		fmt.Fprintln(&b, s.Success.Render("✓ No issues found!"))
	}
	if more > 0 {
		fmt.Fprintln(&b, s.Info.Render(fmt.Sprintf("... and %d more files", more)))
	}
	if n := len(sum.Failures); n > 0 {
		fmt.Fprintln(&b, s.Muted.Render(fmt.Sprintf("%d files could not be analyzed", n)))
	}

	fmt.Fprintf(&b, "\nTotal issues: %s\n", s.Score.Render(fmt.Sprint(sum.TotalIssues)))

	_, err := io.WriteString(w, b.String())
	return err
}

// trimPath shortens long paths from the left, keeping the file name.
func trimPath(p string) string {
	r := []rune(p)
	if len(r) <= maxPath {
		return p
	}
	return "..." + string(r[len(r)-(maxPath-3):])
}
