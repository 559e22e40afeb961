// Package checker contains the tool adapters that translate external
// validator output into normalized issues.
//
// Every checker honors the same contract: Check never returns an error and
// never panics past its boundary. A failure to execute or to understand the
// underlying tool is captured as a synthetic issue, so one broken tool
// degrades the report instead of aborting the run.
package checker

import (
	"context"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/yamlvet/yamlvet/internal/issue"
)

// Checker produces normalized issues for a file path.
type Checker interface {
	// Name identifies the checker in issue records.
	Name() issue.Tool

	// Check validates the file and returns its findings. An empty slice
	// means the checker found nothing to report.
	Check(ctx context.Context, path string) []issue.Issue
}

// Toolchain records which external tools are available for this run.
// It is computed once at startup by Probe and passed explicitly into the
// orchestrator; nothing mutates it afterwards.
type Toolchain struct {
	// Lint is true when the external linter can be invoked.
	Lint bool
	// Security is true when the external security scanner can be invoked.
	Security bool
}

// Probe checks tool availability by resolving each command's binary on PATH.
// An empty command marks the tool unavailable.
func Probe(lintCommand, securityCommand []string) Toolchain {
	return Toolchain{
		Lint:     commandAvailable(lintCommand),
		Security: commandAvailable(securityCommand),
	}
}

func commandAvailable(command []string) bool {
	if len(command) == 0 {
		return false
	}
	path, err := exec.LookPath(command[0])
	if err != nil {
		logrus.WithField("command", command[0]).Debug("tool not found on PATH")
		return false
	}
	logrus.WithFields(logrus.Fields{"command": command[0], "path": path}).Debug("tool resolved")
	return true
}
