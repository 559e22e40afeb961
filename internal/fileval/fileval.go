// Package fileval provides pre-run validation of the validation target.
//
// These checks run before any checker: a target that fails them is a fatal
// setup error (exit code 1), not a finding.
package fileval

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// NotFoundError is returned when the target file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Path)
}

// NotRegularFileError is returned when the target is a directory or other
// non-regular file.
type NotRegularFileError struct {
	Path string
}

func (e *NotRegularFileError) Error() string {
	return fmt.Sprintf("%q is not a regular file", e.Path)
}

// NotUTF8Error is returned when a file does not appear to be valid UTF-8 text.
type NotUTF8Error struct {
	Path string
}

func (e *NotUTF8Error) Error() string {
	return "file does not appear to be valid UTF-8 text"
}

// ValidateTarget checks that path exists and names a regular file.
// Encoding problems are deliberately not checked here: an unreadable file
// body is the syntax checker's finding, not a setup error.
func ValidateTarget(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Path: path}
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return &NotRegularFileError{Path: path}
	}
	return nil
}

// ValidUTF8 reports whether data is valid UTF-8 text.
func ValidUTF8(data []byte) bool {
	return utf8.Valid(data)
}
