package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/yamlvet/yamlvet/internal/issue"
)

// DefaultSecurityCommand is the default argv for the external security scanner.
func DefaultSecurityCommand() []string {
	return []string{"checkov"}
}

// defaultSecurityMessage is used when a failed check carries no check_name.
const defaultSecurityMessage = "Security check failed"

// SecurityChecker runs an external security scanner requesting JSON output
// and converts each entry of results.failed_checks into one issue.
//
// Empty scanner output yields zero issues: it means the scanner had nothing
// to say about the file (or bailed out before producing a report), not that
// the file is clean of the checks it never ran.
type SecurityChecker struct {
	command []string
}

// NewSecurityChecker creates a security checker invoking the given command.
func NewSecurityChecker(command []string) *SecurityChecker {
	if len(command) == 0 {
		command = DefaultSecurityCommand()
	}
	return &SecurityChecker{command: command}
}

// Name implements Checker.
func (c *SecurityChecker) Name() issue.Tool {
	return issue.ToolSecurity
}

// Check implements Checker.
func (c *SecurityChecker) Check(ctx context.Context, path string) []issue.Issue {
	argv := append(slices.Clone(c.command), "-f", path, "--output", "json")

	stdout, _, err := runCommand(ctx, argv)
	if err != nil {
		return []issue.Issue{
			issue.New(issue.ToolSecurity, issue.SeverityHigh,
				fmt.Sprintf("%s execution failed: %v", c.command[0], err), path),
		}
	}

	return parseSecurityReport(stdout, path)
}

// securityReport mirrors the scanner's JSON schema; only the fields the
// adapter consumes are declared.
type securityReport struct {
	Results struct {
		FailedChecks []failedCheck `json:"failed_checks"`
	} `json:"results"`
}

type failedCheck struct {
	CheckID       string `json:"check_id"`
	CheckName     string `json:"check_name"`
	Severity      string `json:"severity"`
	FileLineRange []int  `json:"file_line_range"`
}

// parseSecurityReport translates the scanner's JSON stdout into issues.
// Unreadable non-empty output becomes a single MEDIUM issue: the scanner
// ran, but its report could not be understood.
func parseSecurityReport(stdout []byte, path string) []issue.Issue {
	trimmed := bytes.TrimSpace(stdout)
	if len(trimmed) == 0 {
		return nil
	}

	var report securityReport
	if err := json.Unmarshal(trimmed, &report); err != nil {
		return []issue.Issue{
			issue.New(issue.ToolSecurity, issue.SeverityMedium,
				fmt.Sprintf("failed to parse security scanner output: %v", err), path),
		}
	}

	var issues []issue.Issue
	for _, check := range report.Results.FailedChecks {
		message := check.CheckName
		if message == "" {
			message = defaultSecurityMessage
		}

		iss := issue.New(issue.ToolSecurity, securitySeverity(check.Severity), message, path).
			WithRule(check.CheckID)
		if len(check.FileLineRange) > 0 && check.FileLineRange[0] > 0 {
			iss = iss.WithLine(check.FileLineRange[0])
		}
		issues = append(issues, iss)
	}

	return issues
}

// securitySeverity maps the scanner's severity vocabulary onto ours.
// Absent or unrecognized values default to HIGH: an unclassified security
// finding gates the exit code rather than slipping through as advisory.
func securitySeverity(s string) issue.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return issue.SeverityCritical
	case "HIGH":
		return issue.SeverityHigh
	case "MEDIUM":
		return issue.SeverityMedium
	case "LOW":
		return issue.SeverityLow
	default:
		return issue.SeverityHigh
	}
}
