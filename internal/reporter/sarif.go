package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/yamlvet/yamlvet/internal/aggregate"
	"github.com/yamlvet/yamlvet/internal/issue"
)

// Default SARIF tool information.
const (
	defaultToolName = "yamlvet"
	defaultToolURI  = "https://github.com/yamlvet/yamlvet"
)

// SARIFReporter formats a validation result as SARIF (Static Analysis
// Results Interchange Format). SARIF is a standard format for static
// analysis tools, widely supported by CI/CD systems including GitHub Code
// Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(result aggregate.Result, _ []byte) error {
	// Create a new SARIF report (v2.1.0 for maximum compatibility)
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	filePath := filepath.ToSlash(result.FilePath)
	run.AddDistinctArtifact(filePath)

	// Collect unique rule ids; issues without a rule fall back to the tool name.
	ruleSet := make(map[string]struct{})
	for _, iss := range result.Issues {
		ruleSet[sarifRuleID(iss)] = struct{}{}
	}
	ruleIDs := make([]string, 0, len(ruleSet))
	for id := range ruleSet {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)
	for _, id := range ruleIDs {
		run.AddRule(id)
	}

	for _, iss := range result.Issues {
		sarifResult := sarif.NewRuleResult(sarifRuleID(iss)).
			WithMessage(sarif.NewTextMessage(iss.Message)).
			WithLevel(severityToSARIFLevel(iss.Severity))

		if iss.HasLocation() {
			region := sarif.NewRegion().WithStartLine(iss.Line)
			if iss.Column > 0 {
				region.WithStartColumn(iss.Column)
			}

			physicalLocation := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath)).
				WithRegion(region)

			sarifResult.WithLocations([]*sarif.Location{
				sarif.NewLocationWithPhysicalLocation(physicalLocation),
			})
		} else {
			// File-level issue - just include the file
			physicalLocation := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath))

			sarifResult.WithLocations([]*sarif.Location{
				sarif.NewLocationWithPhysicalLocation(physicalLocation),
			})
		}

		run.AddResult(sarifResult)
	}

	report.AddRun(run)

	// Write with pretty formatting for readability
	return report.PrettyWrite(r.writer)
}

// sarifRuleID returns the SARIF rule identifier for an issue.
func sarifRuleID(iss issue.Issue) string {
	if iss.Rule != "" {
		return string(iss.Tool) + "/" + iss.Rule
	}
	return string(iss.Tool)
}

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// severityToSARIFLevel maps our Severity to SARIF levels.
// SARIF uses: "error", "warning", "note", "none"
func severityToSARIFLevel(s issue.Severity) string {
	switch s {
	case issue.SeverityCritical, issue.SeverityHigh:
		return sarifLevelError
	case issue.SeverityMedium:
		return sarifLevelWarning
	case issue.SeverityLow, issue.SeverityInfo:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
