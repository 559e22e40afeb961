package checker

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// runCommand executes argv with captured stdout and stderr.
//
// A non-zero exit code is not an error at this level: the external linters
// and scanners signal findings through non-zero exit codes, so stdout is the
// contract. Only a failure to launch the process at all is returned as an
// error.
func runCommand(ctx context.Context, argv []string) (stdout, stderr []byte, err error) {
	if len(argv) == 0 {
		return nil, nil, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	runErr := cmd.Run()

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		logrus.WithFields(logrus.Fields{
			"command": argv[0],
			"error":   runErr,
		}).Debug("tool invocation failed")
		return nil, nil, runErr
	}

	logrus.WithFields(logrus.Fields{
		"command":  argv[0],
		"exitCode": cmd.ProcessState.ExitCode(),
		"duration": time.Since(start),
		"stdout":   outBuf.Len(),
		"stderr":   errBuf.Len(),
	}).Debug("tool finished")

	return outBuf.Bytes(), errBuf.Bytes(), nil
}
