package issue

import (
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityCritical, "critical"},
		{SeverityHigh, "high"},
		{SeverityMedium, "medium"},
		{SeverityLow, "low"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.s.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSeverity_Label(t *testing.T) {
	if got := SeverityCritical.Label(); got != "CRITICAL" {
		t.Errorf("Label() = %q, want %q", got, "CRITICAL")
	}
	if got := SeverityInfo.Label(); got != "INFO" {
		t.Errorf("Label() = %q, want %q", got, "INFO")
	}
}

func TestSeverity_MarshalJSON(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityCritical, `"critical"`},
		{SeverityHigh, `"high"`},
		{SeverityMedium, `"medium"`},
		{SeverityLow, `"low"`},
		{SeverityInfo, `"info"`},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			data, err := json.Marshal(tc.s)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("Marshal = %s, want %s", data, tc.want)
			}
		})
	}
}

func TestSeverity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{`"critical"`, SeverityCritical, false},
		{`"high"`, SeverityHigh, false},
		{`"medium"`, SeverityMedium, false},
		{`"low"`, SeverityLow, false},
		{`"info"`, SeverityInfo, false},
		{`"CRITICAL"`, SeverityCritical, false}, // Case insensitive
		{`"unknown"`, SeverityHigh, true},
		{`123`, SeverityHigh, true}, // Not a string
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var s Severity
			err := json.Unmarshal([]byte(tc.input), &s)
			if (err != nil) != tc.wantErr {
				t.Errorf("Unmarshal error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if !tc.wantErr && s != tc.want {
				t.Errorf("Unmarshal = %v, want %v", s, tc.want)
			}
		})
	}
}

func TestSeverity_Ordering(t *testing.T) {
	order := Severities()
	if len(order) != 5 {
		t.Fatalf("Severities() length = %d, want 5", len(order))
	}
	for i := 1; i < len(order); i++ {
		if !order[i-1].IsMoreSevereThan(order[i]) {
			t.Errorf("%v should be more severe than %v", order[i-1], order[i])
		}
	}
}

func TestSeverity_IsAtLeast(t *testing.T) {
	tests := []struct {
		s, threshold Severity
		want         bool
	}{
		{SeverityCritical, SeverityHigh, true},
		{SeverityHigh, SeverityHigh, true},
		{SeverityMedium, SeverityHigh, false},
		{SeverityInfo, SeverityInfo, true},
		{SeverityLow, SeverityMedium, false},
	}

	for _, tc := range tests {
		if got := tc.s.IsAtLeast(tc.threshold); got != tc.want {
			t.Errorf("%v.IsAtLeast(%v) = %v, want %v", tc.s, tc.threshold, got, tc.want)
		}
	}
}
