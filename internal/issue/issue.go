package issue

// Tool identifies the checker that produced an issue.
type Tool string

const (
	// ToolSyntax is the YAML syntax checker.
	ToolSyntax Tool = "syntax-checker"
	// ToolLint is the external linter adapter.
	ToolLint Tool = "linter"
	// ToolSecurity is the external security scanner adapter.
	ToolSecurity Tool = "security-scanner"
)

// Issue represents a single normalized finding produced by one checker.
//
// Issues are immutable once created: the WithX builders operate on value
// receivers and return copies, so checkers only ever append new values.
type Issue struct {
	// Tool identifies the producing checker.
	Tool Tool `json:"tool"`

	// Severity indicates how critical this finding is.
	Severity Severity `json:"severity"`

	// Message is a human-readable description. Never empty.
	Message string `json:"message"`

	// Line is the 1-based line number, 0 when the tool did not localize
	// the finding.
	Line int `json:"line,omitempty"`

	// Column is the 1-based column number, 0 when not localized.
	Column int `json:"column,omitempty"`

	// Rule is a short identifier of the specific check that fired (optional).
	Rule string `json:"rule,omitempty"`

	// FilePath is the path of the file under validation. Always present.
	FilePath string `json:"file"`
}

// New creates an issue with the minimum required fields.
func New(tool Tool, severity Severity, message, filePath string) Issue {
	return Issue{
		Tool:     tool,
		Severity: severity,
		Message:  message,
		FilePath: filePath,
	}
}

// WithLine sets the 1-based line number.
func (i Issue) WithLine(line int) Issue {
	i.Line = line
	return i
}

// WithColumn sets the 1-based column number.
func (i Issue) WithColumn(column int) Issue {
	i.Column = column
	return i
}

// WithRule sets the rule identifier.
func (i Issue) WithRule(rule string) Issue {
	i.Rule = rule
	return i
}

// HasLocation reports whether the issue carries a line number.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}
