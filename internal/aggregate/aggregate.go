// Package aggregate merges checker outputs into a single validation result.
//
// Aggregate is a pure function: given the same three issue lists it always
// produces the same result, with no hidden state and no I/O.
package aggregate

import (
	"github.com/yamlvet/yamlvet/internal/issue"
)

// Summary holds per-severity and total issue counts.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

// Count returns the number of issues recorded at the given severity.
func (s Summary) Count(sev issue.Severity) int {
	switch sev {
	case issue.SeverityCritical:
		return s.Critical
	case issue.SeverityHigh:
		return s.High
	case issue.SeverityMedium:
		return s.Medium
	case issue.SeverityLow:
		return s.Low
	case issue.SeverityInfo:
		return s.Info
	default:
		return 0
	}
}

// CriticalOrHigh returns the count that gates the exit code: MEDIUM and
// below are advisory only.
func (s Summary) CriticalOrHigh() int {
	return s.Critical + s.High
}

// Result is the output of one validation run. It exists only for the
// duration of the run and is discarded after reporting.
type Result struct {
	// FilePath is the validated file.
	FilePath string `json:"file"`

	// SyntaxValid is false iff the syntax checker produced at least one issue.
	SyntaxValid bool `json:"syntax_valid"`

	// Issues holds all findings in checker execution order:
	// syntax, then lint, then security.
	Issues []issue.Issue `json:"issues"`

	// Summary holds the per-severity counts.
	Summary Summary `json:"summary"`
}

// Aggregate concatenates the three checkers' issues in the fixed order
// syntax, lint, security, and computes the summary.
func Aggregate(path string, syntax, lint, security []issue.Issue) Result {
	issues := make([]issue.Issue, 0, len(syntax)+len(lint)+len(security))
	issues = append(issues, syntax...)
	issues = append(issues, lint...)
	issues = append(issues, security...)

	return Result{
		FilePath:    path,
		SyntaxValid: len(syntax) == 0,
		Issues:      issues,
		Summary:     summarize(issues),
	}
}

// GroupBySeverity partitions issues by severity, preserving insertion order
// within each group. Severities with zero issues have no entry.
func GroupBySeverity(issues []issue.Issue) map[issue.Severity][]issue.Issue {
	groups := make(map[issue.Severity][]issue.Issue)
	for _, iss := range issues {
		groups[iss.Severity] = append(groups[iss.Severity], iss)
	}
	return groups
}

func summarize(issues []issue.Issue) Summary {
	s := Summary{Total: len(issues)}
	for _, iss := range issues {
		switch iss.Severity {
		case issue.SeverityCritical:
			s.Critical++
		case issue.SeverityHigh:
			s.High++
		case issue.SeverityMedium:
			s.Medium++
		case issue.SeverityLow:
			s.Low++
		case issue.SeverityInfo:
			s.Info++
		}
	}
	return s
}
