// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"syscall"
)

// ExitError carries a process exit status out of an applet without forcing
// os.Exit inside Run. The diagnostic has already been written to stderr by
// the time an ExitError is returned.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Status returns an ExitError for a nonzero code and nil for zero.
func Status(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

// ExitCode maps an applet error to the process exit status: nil is success,
// an ExitError carries its own code, anything else is the generic failure
// status 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Reportf writes a tool-prefixed diagnostic line: "<tool>: <message>".
func Reportf(stderr io.Writer, tool, format string, args ...any) {
	fmt.Fprintf(stderr, "%s: %s\n", tool, fmt.Sprintf(format, args...))
}

// UsageErrorf reports a usage error with the standard help hint and returns
// the immediate-abort status. No input may be touched after a usage error.
func UsageErrorf(hc *IOContext, tool, format string, args ...any) error {
	Reportf(hc.Stderr, tool, format, args...)
	fmt.Fprintf(hc.Stderr, "Try '%s --help' for more information.\n", tool)
	return Status(1)
}

// ReportFileError writes the per-file diagnostic "<tool>: <file>: <reason>"
// with the reason in GNU's capitalized strerror style.
func ReportFileError(stderr io.Writer, tool, file string, err error) {
	fmt.Fprintf(stderr, "%s: %s: %s\n", tool, file, reason(err))
}

// reason reduces an error to a bare cause, without the "open <path>" prefix
// Go's file operations add, capitalized the way GNU's strerror output reads.
func reason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		err = errno
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
