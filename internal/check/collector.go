package check

import (
	"fmt"

	"github.com/unbound-force/codecheck/internal/metrics"
	"github.com/unbound-force/codecheck/internal/pysource"
	"github.com/unbound-force/codecheck/internal/taxonomy"
)

// collector turns findings into issues. Each rule fires at most once
// per finding.
type collector struct {
	identity string
	limits   Thresholds
	issues   []taxonomy.Issue
}

func newCollector(identity string, limits Thresholds) *collector {
	return &collector{identity: identity, limits: limits}
}

func (c *collector) add(rule taxonomy.Rule, line int, target, msg string) {
	c.issues = append(c.issues, taxonomy.Issue{
		ID:       taxonomy.GenerateID(c.identity, rule, line, target),
		Severity: taxonomy.SeverityOf(rule),
		Line:     line,
		Message:  msg,
		Rule:     rule,
		Target:   target,
	})
}

func (c *collector) lineLengths(u *pysource.SourceUnit) {
	for i := 1; i <= u.LineCount(); i++ {
		width := u.LineWidth(i)
		if width > c.limits.MaxLineLength {
			c.add(taxonomy.RuleLineLength, i, "", fmt.Sprintf(
				"line too long (%d characters), prefer %d or fewer",
				width, c.limits.MaxLineLength))
		}
	}
}

func (c *collector) function(f metrics.Finding) {
	if length := f.Length(); length > c.limits.MaxFunctionLength {
		c.add(taxonomy.RuleFunctionLength, f.Line, f.Name, fmt.Sprintf(
			"function '%s' is too long (%d lines)", f.Name, length))
	}
	if f.Complexity > c.limits.MaxComplexity {
		c.add(taxonomy.RuleFunctionComplexity, f.Line, f.Name, fmt.Sprintf(
			"function '%s' is too complex (complexity: %d)", f.Name, f.Complexity))
	}
	if !f.Documented {
		c.add(taxonomy.RuleFunctionDocstring, f.Line, f.Name, fmt.Sprintf(
			"function '%s' has no docstring", f.Name))
	}
	if f.Params > c.limits.MaxParameters {
		c.add(taxonomy.RuleFunctionParameters, f.Line, f.Name, fmt.Sprintf(
			"function '%s' has %d parameters (too many)", f.Name, f.Params))
	}
}

func (c *collector) class(f metrics.Finding) {
	if !f.Documented {
		c.add(taxonomy.RuleClassDocstring, f.Line, f.Name, fmt.Sprintf(
			"class '%s' has no docstring", f.Name))
	}
	if f.Methods == 0 {
		c.add(taxonomy.RuleClassEmpty, f.Line, f.Name, fmt.Sprintf(
			"class '%s' is empty (no methods)", f.Name))
	}
}

func (c *collector) dangerousCall(call metrics.CallSite) {
	c.add(taxonomy.RuleDangerousCall, call.Line, call.Name, fmt.Sprintf(
		"use of %s() is a security risk", call.Name))
}

// sorted returns the collected issues in report order.
func (c *collector) sorted() []taxonomy.Issue {
	out := make([]taxonomy.Issue, len(c.issues))
	copy(out, c.issues)
	sortIssues(out)
	return out
}
