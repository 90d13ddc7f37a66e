// Package scoring reduces a file's issues to a 0-100 quality score
// and a qualitative tier.
//
// The formula: Score = 100 - 10*errors - 5*warnings - 2*infos,
// floored at 0.
package scoring

import (
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// Score weights and bounds.
const (
	MaxScore      = 100
	ErrorWeight   = 10
	WarningWeight = 5
	InfoWeight    = 2
)

// Tier lower bounds (inclusive).
const (
	ExcellentThreshold  = 90
	GoodThreshold       = 70
	AcceptableThreshold = 50
)

// Formula computes max(0, 100 - 10e - 5w - 2i).
func Formula(errors, warnings, infos int) int {
	score := MaxScore - ErrorWeight*errors - WarningWeight*warnings - InfoWeight*infos
	if score < 0 {
		return 0
	}
	return score
}

// TierOf maps a score to its tier.
func TierOf(score int) taxonomy.Tier {
	switch {
	case score >= ExcellentThreshold:
		return taxonomy.TierExcellent
	case score >= GoodThreshold:
		return taxonomy.TierGood
	case score >= AcceptableThreshold:
		return taxonomy.TierAcceptable
	default:
		return taxonomy.TierNeedsImprovement
	}
}

// Evaluate scores an issue list. It is recomputed from the list on
// every call.
func Evaluate(issues []taxonomy.Issue) (int, taxonomy.Tier) {
	c := taxonomy.CountIssues(issues)
	score := Formula(c.Errors, c.Warnings, c.Infos)
	return score, TierOf(score)
}
