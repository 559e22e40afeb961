package checker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/yamlvet/yamlvet/internal/fileval"
	"github.com/yamlvet/yamlvet/internal/issue"
)

// readErrorPrefix distinguishes file-read failures from syntax errors.
const readErrorPrefix = "reading file: "

// SyntaxChecker validates that the target parses as YAML.
//
// Multiple documents within one file are each decoded and discarded. A parse
// failure produces exactly one CRITICAL issue carrying the library's
// diagnostic verbatim and, when the error is localized, the 1-based token
// position. Zero issues means the syntax is valid.
type SyntaxChecker struct{}

// NewSyntaxChecker creates a syntax checker.
func NewSyntaxChecker() *SyntaxChecker {
	return &SyntaxChecker{}
}

// Name implements Checker.
func (c *SyntaxChecker) Name() issue.Tool {
	return issue.ToolSyntax
}

// Check implements Checker.
func (c *SyntaxChecker) Check(_ context.Context, path string) []issue.Issue {
	data, err := os.ReadFile(path)
	if err != nil {
		return []issue.Issue{
			issue.New(issue.ToolSyntax, issue.SeverityCritical, readErrorPrefix+err.Error(), path),
		}
	}

	// The YAML decoder accepts arbitrary bytes inside scalars; run the same
	// UTF-8 smoke check the Python "open with encoding" path would fail on.
	if !fileval.ValidUTF8(data) {
		return []issue.Issue{
			issue.New(issue.ToolSyntax, issue.SeverityCritical,
				readErrorPrefix+(&fileval.NotUTF8Error{Path: path}).Error(), path),
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []issue.Issue{newSyntaxIssue(err, path)}
		}
	}

	return nil
}

// newSyntaxIssue converts a decode error into a single CRITICAL issue.
// goccy/go-yaml token positions are already 1-based, so they are reported
// as-is.
func newSyntaxIssue(err error, path string) issue.Issue {
	iss := issue.New(issue.ToolSyntax, issue.SeverityCritical, err.Error(), path).
		WithRule("syntax")

	var syntaxErr *yaml.SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Token != nil && syntaxErr.Token.Position != nil {
		pos := syntaxErr.Token.Position
		iss = iss.WithLine(pos.Line).WithColumn(pos.Column)
	}

	return iss
}
