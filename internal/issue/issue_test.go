package issue

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	iss := New(ToolLint, SeverityLow, "trailing spaces", "config.yaml")

	if iss.Tool != ToolLint {
		t.Errorf("Tool = %q, want %q", iss.Tool, ToolLint)
	}
	if iss.Severity != SeverityLow {
		t.Errorf("Severity = %v, want %v", iss.Severity, SeverityLow)
	}
	if iss.Message != "trailing spaces" {
		t.Errorf("Message = %q", iss.Message)
	}
	if iss.FilePath != "config.yaml" {
		t.Errorf("FilePath = %q", iss.FilePath)
	}
	if iss.HasLocation() {
		t.Error("new issue should not carry a location")
	}
}

func TestIssue_Builders(t *testing.T) {
	base := New(ToolSyntax, SeverityCritical, "mapping values are not allowed", "a.yaml")
	located := base.WithLine(3).WithColumn(7).WithRule("syntax")

	// Builders return copies; the original stays untouched.
	if base.Line != 0 || base.Column != 0 || base.Rule != "" {
		t.Errorf("base issue mutated: %+v", base)
	}

	if located.Line != 3 || located.Column != 7 || located.Rule != "syntax" {
		t.Errorf("located = %+v", located)
	}
	if !located.HasLocation() {
		t.Error("HasLocation() = false after WithLine")
	}
}

func TestIssue_JSONOmitsAbsentFields(t *testing.T) {
	iss := New(ToolSecurity, SeverityHigh, "Security check failed", "a.yaml")

	data, err := json.Marshal(iss)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	s := string(data)
	for _, absent := range []string{`"line"`, `"column"`, `"rule"`} {
		if strings.Contains(s, absent) {
			t.Errorf("marshaled issue contains %s: %s", absent, s)
		}
	}
	if !strings.Contains(s, `"severity":"high"`) {
		t.Errorf("marshaled issue missing severity string: %s", s)
	}
}
