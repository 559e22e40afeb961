package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yamlvet/yamlvet/internal/aggregate"
	"github.com/yamlvet/yamlvet/internal/issue"
)

// GitHubActionsReporter formats issues as GitHub Actions workflow commands.
// These commands appear as annotations in the GitHub Actions UI.
//
// Format: ::{level} file={file},line={line},col={col}::{message}
//
// See: https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions#setting-an-error-message
type GitHubActionsReporter struct {
	writer io.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions reporter.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{writer: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(result aggregate.Result, _ []byte) error {
	for _, iss := range result.Issues {
		level := severityToGitHubLevel(iss.Severity)

		// Normalize file path to forward slashes for consistent output
		filePath := filepath.ToSlash(iss.FilePath)

		// Build the annotation
		// Format: ::{level} file={file},line={line},col={col},title={title}::{message}
		var parts []string
		parts = append(parts, "file="+escapeGitHubProperty(filePath))

		if iss.HasLocation() {
			parts = append(parts, fmt.Sprintf("line=%d", iss.Line))
			if iss.Column > 0 {
				parts = append(parts, fmt.Sprintf("col=%d", iss.Column))
			}
		}

		// Add the producing tool (and rule, when present) as title
		title := string(iss.Tool)
		if iss.Rule != "" {
			title += "/" + iss.Rule
		}
		parts = append(parts, "title="+escapeGitHubProperty(title))

		// Escape message (newlines not allowed in workflow commands)
		message := escapeGitHubMessage(iss.Message)

		if _, err := fmt.Fprintf(r.writer, "::%s %s::%s\n",
			level,
			strings.Join(parts, ","),
			message,
		); err != nil {
			return err
		}
	}

	return nil
}

// GitHub Actions annotation levels.
const (
	ghLevelError   = "error"
	ghLevelWarning = "warning"
	ghLevelNotice  = "notice"
)

// severityToGitHubLevel maps our Severity to GitHub Actions levels.
// GitHub supports: "error", "warning", "notice", "debug"
func severityToGitHubLevel(s issue.Severity) string {
	switch s {
	case issue.SeverityCritical, issue.SeverityHigh:
		return ghLevelError
	case issue.SeverityMedium:
		return ghLevelWarning
	case issue.SeverityLow, issue.SeverityInfo:
		return ghLevelNotice
	default:
		return ghLevelWarning
	}
}

// escapeGitHubMessage escapes special characters in GitHub Actions workflow command messages.
// Messages use escapeData() rules which escape "%", "\r", "\n" but NOT ":" or ",".
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeGitHubProperty escapes special characters in GitHub Actions workflow command properties.
// Properties (file, title, etc.) use escapeProperty() rules which escape "%", "\r", "\n", ":", and ",".
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubProperty(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
