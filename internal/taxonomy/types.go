// Package taxonomy defines the issue type system, the report model,
// and stable ID generation for codecheck analysis results.
package taxonomy

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// Severity is the importance of a single issue.
type Severity string

// Severity constants, most severe first.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists every severity in reporting order.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// Rank orders severities for display: errors first, infos last.
// Unknown severities sort after every known one.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Rule identifies the check that produced an issue.
type Rule string

// Function rules.
const (
	RuleFunctionLength     Rule = "function-length"
	RuleFunctionComplexity Rule = "function-complexity"
	RuleFunctionDocstring  Rule = "function-docstring"
	RuleFunctionParameters Rule = "function-parameters"
)

// Class rules.
const (
	RuleClassDocstring Rule = "class-docstring"
	RuleClassEmpty     Rule = "class-empty"
)

// File-level rules.
const (
	RuleLineLength    Rule = "line-length"
	RuleDangerousCall Rule = "dangerous-call"
)

// SeverityOf returns the fixed severity for a rule.
func SeverityOf(r Rule) Severity {
	sev, ok := severityMap[r]
	if !ok {
		return SeverityInfo
	}
	return sev
}

var severityMap = map[Rule]Severity{
	RuleDangerousCall: SeverityError,

	RuleFunctionLength:     SeverityWarning,
	RuleFunctionComplexity: SeverityWarning,
	RuleFunctionParameters: SeverityWarning,
	RuleClassEmpty:         SeverityWarning,

	RuleFunctionDocstring: SeverityInfo,
	RuleClassDocstring:    SeverityInfo,
	RuleLineLength:        SeverityInfo,
}

// Tier is the qualitative grade derived from a score.
type Tier string

// Tier constants, best first.
const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierAcceptable       Tier = "acceptable"
	TierNeedsImprovement Tier = "needs improvement"
)

// Issue is a single diagnostic anchored to a source line. The JSON
// names "type", "line" and "msg" are the historical export format
// and must stay stable.
type Issue struct {
	// ID is a stable identifier for diffing across runs.
	ID string `json:"id" yaml:"id"`

	// Severity is the issue level.
	Severity Severity `json:"type" yaml:"type"`

	// Line is the 1-based source line the issue is anchored to.
	Line int `json:"line" yaml:"line"`

	// Message is the human-readable description.
	Message string `json:"msg" yaml:"msg"`

	// Rule is the check that produced the issue.
	Rule Rule `json:"rule" yaml:"rule"`

	// Target names the function, class or called primitive the
	// issue refers to. Empty for line-level issues.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// Stats holds aggregate metrics for one analyzed file.
type Stats struct {
	Lines        int `json:"lines" yaml:"lines"`
	BlankLines   int `json:"blank_lines" yaml:"blank_lines"`
	CommentLines int `json:"comment_lines" yaml:"comment_lines"`
	Functions    int `json:"functions" yaml:"functions"`
	Classes      int `json:"classes" yaml:"classes"`

	// Complexity is the sum of every function's cyclomatic
	// complexity.
	Complexity int `json:"complexity" yaml:"complexity"`
}

// AverageComplexity returns cumulative complexity divided by the
// function count. ok is false when the file defines no functions;
// the average is undefined in that case and exported as null.
func (s Stats) AverageComplexity() (avg float64, ok bool) {
	if s.Functions == 0 {
		return 0, false
	}
	return float64(s.Complexity) / float64(s.Functions), true
}

// statsView is the serialized form of Stats, including the derived
// average.
type statsView struct {
	Lines             int      `json:"lines" yaml:"lines"`
	BlankLines        int      `json:"blank_lines" yaml:"blank_lines"`
	CommentLines      int      `json:"comment_lines" yaml:"comment_lines"`
	Functions         int      `json:"functions" yaml:"functions"`
	Classes           int      `json:"classes" yaml:"classes"`
	Complexity        int      `json:"complexity" yaml:"complexity"`
	AverageComplexity *float64 `json:"average_complexity" yaml:"average_complexity"`
}

func (s Stats) view() statsView {
	v := statsView{
		Lines:        s.Lines,
		BlankLines:   s.BlankLines,
		CommentLines: s.CommentLines,
		Functions:    s.Functions,
		Classes:      s.Classes,
		Complexity:   s.Complexity,
	}
	if avg, ok := s.AverageComplexity(); ok {
		v.AverageComplexity = &avg
	}
	return v
}

// MarshalJSON adds the derived average_complexity field.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.view())
}

// MarshalYAML adds the derived average_complexity field.
func (s Stats) MarshalYAML() (interface{}, error) {
	return s.view(), nil
}

// Counts tallies issues by severity.
type Counts struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

// Total returns the number of counted issues.
func (c Counts) Total() int {
	return c.Errors + c.Warnings + c.Infos
}

// CountIssues tallies issues by severity.
func CountIssues(issues []Issue) Counts {
	var c Counts
	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		case SeverityInfo:
			c.Infos++
		}
	}
	return c
}

// BySeverity returns the issues of one severity, in report order.
func BySeverity(issues []Issue, sev Severity) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == sev {
			out = append(out, is)
		}
	}
	return out
}

// Report is the immutable result of analyzing one file. It is the
// only value handed to renderers.
type Report struct {
	// File is the source identity (usually the path).
	File string `json:"file" yaml:"file"`

	// Timestamp is when the analysis ran.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	Stats  Stats   `json:"stats" yaml:"stats"`
	Issues []Issue `json:"issues" yaml:"issues"`

	// Score is the 0-100 quality score computed from Issues.
	Score int `json:"score" yaml:"score"`

	// Tier is the grade for Score.
	Tier Tier `json:"grade" yaml:"grade"`
}

// Counts tallies the report's issues by severity.
func (r *Report) Counts() Counts {
	return CountIssues(r.Issues)
}

// GenerateID produces a stable, deterministic ID for an issue based
// on its context. The ID is a sha256 hash truncated to 8 hex
// characters, prefixed with "cq-".
func GenerateID(file string, rule Rule, line int, target string) string {
	input := fmt.Sprintf("%s:%s:%d:%s", file, rule, line, target)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("cq-%x", hash[:4])
}
