package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// Styles defines the visual theme for terminal report output. A
// Styles value is bound to one lipgloss renderer, so color support
// is decided by the destination writer rather than by global state.
type Styles struct {
	// Banner is used for the "=====" rules and the report title.
	Banner lipgloss.Style

	// Section is used for section headings ("Statistics:").
	Section lipgloss.Style

	// Error, Warning and Info color issue lines by severity.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Success styles the "no issues" line.
	Success lipgloss.Style

	// Score styles the numeric score.
	Score lipgloss.Style

	// TierExcellent through TierNeedsImprovement color the grade.
	TierExcellent        lipgloss.Style
	TierGood             lipgloss.Style
	TierAcceptable       lipgloss.Style
	TierNeedsImprovement lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// NewStyles returns the default color scheme rendered through r.
// Pass lipgloss.NewRenderer(w) to match the capabilities of w.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Banner:  r.NewStyle().Foreground(lipgloss.Color("37")),
		Section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),

		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("75")),

		Success: r.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Score:   r.NewStyle().Foreground(lipgloss.Color("37")).Bold(true),

		TierExcellent:        r.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		TierGood:             r.NewStyle().Foreground(lipgloss.Color("220")),
		TierAcceptable:       r.NewStyle().Foreground(lipgloss.Color("214")),
		TierNeedsImprovement: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		TableHeader: r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   r.NewStyle().PaddingRight(1),

		Border: r.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// DefaultStyles returns the default color scheme for stdout.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// SeverityStyle returns the style for a severity.
func (s Styles) SeverityStyle(sev taxonomy.Severity) lipgloss.Style {
	switch sev {
	case taxonomy.SeverityError:
		return s.Error
	case taxonomy.SeverityWarning:
		return s.Warning
	case taxonomy.SeverityInfo:
		return s.Info
	default:
		return s.Muted
	}
}

// TierStyle returns the style for a grade.
func (s Styles) TierStyle(tier taxonomy.Tier) lipgloss.Style {
	switch tier {
	case taxonomy.TierExcellent:
		return s.TierExcellent
	case taxonomy.TierGood:
		return s.TierGood
	case taxonomy.TierAcceptable:
		return s.TierAcceptable
	case taxonomy.TierNeedsImprovement:
		return s.TierNeedsImprovement
	default:
		return s.Muted
	}
}

// CountStyle colors a per-file issue count in directory listings:
// more than 10 is an error color, more than 5 a warning color.
func (s Styles) CountStyle(n int) lipgloss.Style {
	switch {
	case n > 10:
		return s.Error
	case n > 5:
		return s.Warning
	default:
		return s.Info
	}
}
