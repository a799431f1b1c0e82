package query

import (
	"encoding/json"
	"testing"
)

// compileAndRun parses expr and evaluates it against a JSON-encoded record.
func compileAndRun(t *testing.T, expr, record string) bool {
	t.Helper()

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(record), &data); err != nil {
		t.Fatalf("bad test record %s: %v", record, err)
	}

	filter, err := Compile(expr)
	if err != nil {
		t.Fatalf("compile error for %q: %v", expr, err)
	}

	result, err := filter(data)
	if err != nil {
		t.Fatalf("evaluate error for %q: %v", expr, err)
	}
	return result
}

func TestEvaluateComparisons(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		record   string
		expected bool
	}{
		{"equal string", `status = "active"`, `{"status": "active"}`, true},
		{"equal string miss", `status = "active"`, `{"status": "inactive"}`, false},
		{"equal number", `age = 30`, `{"age": 30}`, true},
		{"loose equal number vs quoted", `age = "30"`, `{"age": 30}`, true},
		{"loose equal string field vs number", `age = 30`, `{"age": "30"}`, true},
		{"equal bool", `done = true`, `{"done": true}`, true},
		{"equal bool any case", `done = TRUE`, `{"done": true}`, true},
		{"not equal", `status != "active"`, `{"status": "inactive"}`, true},
		{"not equal miss", `status != "active"`, `{"status": "active"}`, false},
		{"greater", `age > 29`, `{"age": 30}`, true},
		{"greater false", `age > 30`, `{"age": 30}`, false},
		{"greater string field", `age > 29`, `{"age": "30"}`, true},
		{"greater non-numeric field", `name > 5`, `{"name": "bob"}`, false},
		{"less", `age < 31`, `{"age": 30}`, true},
		{"less quoted value", `age < "31"`, `{"age": 30}`, true},
		{"unquoted word value", `name = John Doe`, `{"name": "John Doe"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compileAndRun(t, tt.expr, tt.record); got != tt.expected {
				t.Errorf("%s on %s: expected %v, got %v", tt.expr, tt.record, tt.expected, got)
			}
		})
	}
}

func TestEvaluateNullSemantics(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		record   string
		expected bool
	}{
		{"null matches null field", `age = NULL`, `{"age": null}`, true},
		{"null matches missing field", `age = NULL`, `{"id": 3}`, true},
		{"null matches empty string", `name = NULL`, `{"name": ""}`, true},
		{"null does not match value", `age = NULL`, `{"age": 30}`, false},
		{"not null", `age != NULL`, `{"age": 30}`, true},
		{"not null on missing field", `age != NULL`, `{"id": 3}`, false},
		{"greater on null field", `age > 0`, `{"age": null}`, false},
		{"less on missing field", `age < 100`, `{}`, false},
		{"less on empty string", `age < 100`, `{"age": ""}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compileAndRun(t, tt.expr, tt.record); got != tt.expected {
				t.Errorf("%s on %s: expected %v, got %v", tt.expr, tt.record, tt.expected, got)
			}
		})
	}
}

func TestEvaluateArrayFields(t *testing.T) {
	record := `{"id": 1, "tags": ["dev", "lead"], "scores": [1, 2, 3]}`

	tests := []struct {
		name     string
		expr     string
		expected bool
	}{
		{"array contains", `tags = "dev"`, true},
		{"array does not contain", `tags = "designer"`, false},
		{"array not-equal", `tags != "designer"`, true},
		{"array not-equal contained", `tags != "dev"`, false},
		{"array ordering unsupported", `scores > 0`, false},
		{"array ordering unsupported less", `scores < 100`, false},
		{"array element in list", `tags IN ["lead", "ops"]`, true},
		{"array element not in list", `tags IN ["ops"]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compileAndRun(t, tt.expr, record); got != tt.expected {
				t.Errorf("%s: expected %v, got %v", tt.expr, tt.expected, got)
			}
		})
	}
}

func TestEvaluateIn(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		record   string
		expected bool
	}{
		{"scalar in list", `status IN ["active", "pending"]`, `{"status": "pending"}`, true},
		{"scalar not in list", `status IN ["active", "pending"]`, `{"status": "closed"}`, false},
		{"null field with NULL member", `age IN ["30", NULL]`, `{"age": null}`, true},
		{"null field without NULL member", `age IN ["30"]`, `{"age": null}`, false},
		{"missing field with NULL member", `age IN [NULL]`, `{}`, true},
		{"empty string with NULL member", `age IN [NULL]`, `{"age": ""}`, true},
		{"number loosely in quoted list", `age IN ["30", NULL]`, `{"age": 30}`, true},
		{"number in numeric list", `age IN [25, 30]`, `{"age": 30}`, true},
		{"empty list", `age IN []`, `{"age": 30}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compileAndRun(t, tt.expr, tt.record); got != tt.expected {
				t.Errorf("%s on %s: expected %v, got %v", tt.expr, tt.record, tt.expected, got)
			}
		})
	}
}

func TestEvaluateBooleanLogic(t *testing.T) {
	record := `{"name": "John", "age": 30, "status": "active"}`

	tests := []struct {
		name     string
		expr     string
		expected bool
	}{
		{"and", `age = 30 AND status = "active"`, true},
		{"and short-circuit false", `age = 31 AND status = "active"`, false},
		{"or", `age = 31 OR status = "active"`, true},
		{"and binds tighter than or", `name = "Jane" OR age = 30 AND status = "active"`, true},
		{"or of ands all false", `name = "Jane" OR age = 31 AND status = "active"`, false},
		{"grouping", `(name = "Jane" OR age = 30) AND status = "active"`, true},
		{"bare true", `true`, true},
		{"bare false", `false`, false},
		{"literal in conjunction", `true AND status = "active"`, true},
		{"false literal kills conjunction", `false AND status = "active"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compileAndRun(t, tt.expr, record); got != tt.expected {
				t.Errorf("%s: expected %v, got %v", tt.expr, tt.expected, got)
			}
		})
	}
}

func TestLooseEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     interface{}
		expected bool
	}{
		{"strings", "a", "a", true},
		{"strings differ", "a", "b", false},
		{"numeric string vs number", "30", 30.0, true},
		{"bool vs one", true, 1.0, true},
		{"bool vs word", true, "true", false},
		{"nil vs nil", nil, nil, true},
		{"nil vs value", nil, "a", false},
		{"non-numeric cross type", "abc", 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looseEqual(tt.a, tt.b); got != tt.expected {
				t.Errorf("looseEqual(%v, %v): expected %v, got %v", tt.a, tt.b, tt.expected, got)
			}
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected float64
		ok       bool
	}{
		{30.0, 30, true},
		{"30", 30, true},
		{"30px", 30, true},
		{"-1.5e2", -150, true},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		got, ok := parseFloatPrefix(tt.input)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("parseFloatPrefix(%v): expected (%v, %v), got (%v, %v)", tt.input, tt.expected, tt.ok, got, ok)
		}
	}
}
