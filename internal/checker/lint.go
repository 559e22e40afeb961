package checker

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yamlvet/yamlvet/internal/issue"
)

// DefaultLintCommand is the default argv for the external linter.
func DefaultLintCommand() []string {
	return []string{"yamllint"}
}

// LintChecker runs an external linter and parses its machine-readable
// output: one finding per line in the colon-delimited form
//
//	path:line:column: [level] message
//
// Lines that do not split into at least four colon-delimited fields are
// silently skipped. This is intentionally lossy and preserved as-is: a
// malformed line produces nothing rather than a parse-failure issue.
type LintChecker struct {
	command []string
}

// NewLintChecker creates a lint checker invoking the given command.
func NewLintChecker(command []string) *LintChecker {
	if len(command) == 0 {
		command = DefaultLintCommand()
	}
	return &LintChecker{command: command}
}

// Name implements Checker.
func (c *LintChecker) Name() issue.Tool {
	return issue.ToolLint
}

// Check implements Checker.
func (c *LintChecker) Check(ctx context.Context, path string) []issue.Issue {
	argv := append(slices.Clone(c.command), "-f", "parsable", path)

	stdout, _, err := runCommand(ctx, argv)
	if err != nil {
		return []issue.Issue{
			issue.New(issue.ToolLint, issue.SeverityHigh,
				fmt.Sprintf("%s execution failed: %v", c.command[0], err), path),
		}
	}

	return parseLintOutput(string(stdout), path)
}

// parseLintOutput translates parsable linter output into issues.
// The linter's exit code is not consulted; stdout content is the contract.
func parseLintOutput(out, path string) []issue.Issue {
	var issues []issue.Issue

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if iss, ok := parseLintLine(line, path); ok {
			issues = append(issues, iss)
		}
	}

	return issues
}

// parseLintLine parses one output line. The first three fields are path,
// line, and column; the remainder of the line is the bracketed level
// followed by the message (any further colons belong to the message).
// Non-numeric line/column fields degrade to an absent location.
func parseLintLine(raw, path string) (issue.Issue, bool) {
	parts := strings.SplitN(raw, ":", 4)
	if len(parts) < 4 {
		return issue.Issue{}, false
	}

	line := parsePositiveInt(parts[1])
	column := parsePositiveInt(parts[2])
	level, message := splitLevel(strings.TrimSpace(parts[3]))

	severity := issue.SeverityLow
	if level == "error" {
		severity = issue.SeverityMedium
	}

	iss := issue.New(issue.ToolLint, severity, message, path).WithRule(level)
	if line > 0 {
		iss = iss.WithLine(line)
	}
	if column > 0 {
		iss = iss.WithColumn(column)
	}
	return iss, true
}

// fallbackLintMessage keeps the never-empty message invariant when a lint
// line carries a level but no text after it.
const fallbackLintMessage = "lint finding"

// splitLevel extracts the bracketed level token from the remainder of a
// lint line: "[error] trailing spaces" -> ("error", "trailing spaces").
// Without a bracketed prefix the level is empty and the whole remainder is
// the message.
func splitLevel(rest string) (level, message string) {
	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "]"); end > 0 {
			level = rest[1:end]
			message = strings.TrimSpace(rest[end+1:])
		} else {
			message = rest
		}
	} else {
		message = rest
	}
	if message == "" {
		message = fallbackLintMessage
	}
	return level, message
}

func parsePositiveInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
