package taxonomy

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGenerateID_Deterministic(t *testing.T) {
	id1 := GenerateID("app.py", RuleFunctionLength, 10, "load")
	id2 := GenerateID("app.py", RuleFunctionLength, 10, "load")

	if id1 != id2 {
		t.Errorf("GenerateID not deterministic: %q != %q", id1, id2)
	}
}

func TestGenerateID_Format(t *testing.T) {
	id := GenerateID("app.py", RuleFunctionLength, 10, "load")

	if len(id) != 11 { // "cq-" + 8 hex chars
		t.Errorf("expected ID length 11, got %d: %q", len(id), id)
	}
	if id[:3] != "cq-" {
		t.Errorf("expected ID to start with 'cq-', got %q", id)
	}
}

func TestGenerateID_UniqueForDifferentInputs(t *testing.T) {
	id1 := GenerateID("app.py", RuleFunctionLength, 10, "load")
	id2 := GenerateID("app.py", RuleFunctionComplexity, 10, "load")
	id3 := GenerateID("app.py", RuleFunctionLength, 20, "save")

	if id1 == id2 {
		t.Errorf("different rules should produce different IDs")
	}
	if id1 == id3 {
		t.Errorf("different functions should produce different IDs")
	}
}

func TestSeverityOf_AllRules(t *testing.T) {
	tests := []struct {
		rule Rule
		want Severity
	}{
		{RuleFunctionLength, SeverityWarning},
		{RuleFunctionComplexity, SeverityWarning},
		{RuleFunctionDocstring, SeverityInfo},
		{RuleFunctionParameters, SeverityWarning},
		{RuleClassDocstring, SeverityInfo},
		{RuleClassEmpty, SeverityWarning},
		{RuleLineLength, SeverityInfo},
		{RuleDangerousCall, SeverityError},
	}
	for _, tt := range tests {
		if got := SeverityOf(tt.rule); got != tt.want {
			t.Errorf("SeverityOf(%s) = %s, want %s", tt.rule, got, tt.want)
		}
	}
}

func TestSeverity_Rank(t *testing.T) {
	if !(SeverityError.Rank() < SeverityWarning.Rank() &&
		SeverityWarning.Rank() < SeverityInfo.Rank()) {
		t.Error("expected error < warning < info ordering")
	}
	if Severity("bogus").Rank() <= SeverityInfo.Rank() {
		t.Error("unknown severity should sort last")
	}
}

func TestStats_AverageComplexity(t *testing.T) {
	avg, ok := Stats{Functions: 4, Complexity: 10}.AverageComplexity()
	if !ok || avg != 2.5 {
		t.Errorf("AverageComplexity() = (%v, %v), want (2.5, true)", avg, ok)
	}

	avg, ok = Stats{}.AverageComplexity()
	if ok || avg != 0 {
		t.Errorf("AverageComplexity() with no functions = (%v, %v), want (0, false)", avg, ok)
	}
}

func TestStats_MarshalJSON_NullAverageWithoutFunctions(t *testing.T) {
	data, err := json.Marshal(Stats{Lines: 3, Classes: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"average_complexity":null`) {
		t.Errorf("expected null average_complexity, got %s", data)
	}
}

func TestStats_MarshalJSON_Average(t *testing.T) {
	data, err := json.Marshal(Stats{Functions: 2, Complexity: 3})
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed["average_complexity"] != 1.5 {
		t.Errorf("average_complexity = %v, want 1.5", parsed["average_complexity"])
	}
	for _, key := range []string{"lines", "blank_lines", "comment_lines", "functions", "classes", "complexity"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}

func TestStats_MarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(Stats{Functions: 1, Complexity: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "average_complexity: 4") {
		t.Errorf("expected average_complexity in YAML, got:\n%s", data)
	}
}

func TestCountIssues(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
		{Severity: SeverityInfo},
		{Severity: SeverityInfo},
		{Severity: SeverityInfo},
	}
	c := CountIssues(issues)
	if c.Errors != 1 || c.Warnings != 2 || c.Infos != 3 {
		t.Errorf("CountIssues = %+v, want {1 2 3}", c)
	}
	if c.Total() != 6 {
		t.Errorf("Total() = %d, want 6", c.Total())
	}
}

func TestBySeverity_PreservesOrder(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityInfo, Line: 1},
		{Severity: SeverityWarning, Line: 2},
		{Severity: SeverityInfo, Line: 3},
	}
	infos := BySeverity(issues, SeverityInfo)
	if len(infos) != 2 || infos[0].Line != 1 || infos[1].Line != 3 {
		t.Errorf("BySeverity(info) = %+v", infos)
	}
	if got := BySeverity(issues, SeverityError); len(got) != 0 {
		t.Errorf("expected no errors, got %d", len(got))
	}
}

func TestIssue_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Issue{Severity: SeverityError, Line: 4, Message: "m", Rule: RuleDangerousCall})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"type":"error"`, `"line":4`, `"msg":"m"`, `"rule":"dangerous-call"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}
}
