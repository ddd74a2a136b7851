// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"errors"
	"io"
	"os"

	"gocoreutils/internal/ioext"
)

// Input is one stream an applet processes.
type Input struct {
	// Name is the operand as the user wrote it; "-" stands for stdin.
	Name string
	// File is the open file, or the file behind stdin when stdin was
	// redirected from one. Nil for non-file streams. Consumers use it for
	// the stat and mmap fast paths.
	File *os.File
	// R is the stream to read. Always non-nil.
	R io.Reader
	// Index is the 0-based position among the inputs of this invocation.
	Index int
	// Count is the total number of inputs of this invocation.
	Count int
}

// Stdin reports whether this input is the standard input operand.
func (in Input) Stdin() bool {
	return in.Name == "-"
}

// InputFunc processes one opened input.
type InputFunc func(in Input) error

// ForEachInput runs fn over each operand in order, or over stdin when there
// are no operands. GNU error policy applies: a file that cannot be opened or
// read is reported to stderr and skipped, later operands are still
// processed, and the whole invocation then exits with status 1. A broken
// output pipe stops the iteration silently and successfully.
func ForEachInput(hc *IOContext, tool string, operands []string, fn InputFunc) error {
	if len(operands) == 0 {
		operands = []string{"-"}
	}

	failed := false
	for i, name := range operands {
		in := Input{Name: name, Index: i, Count: len(operands)}
		var close func()

		if name == "-" {
			in.R = hc.Stdin
			in.File = hc.StdinFile()
		} else {
			f, err := os.Open(name)
			if err != nil {
				ReportFileError(hc.Stderr, tool, name, err)
				failed = true
				continue
			}
			in.R = f
			in.File = f
			close = func() { _ = f.Close() }
		}

		err := fn(in)
		if close != nil {
			close()
		}
		if err != nil {
			if errors.Is(err, ioext.ErrPipeClosed) {
				// The consumer is gone; nothing more can be produced and
				// that is not a failure.
				return nil
			}
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				// fn already reported; just propagate the status later.
				failed = true
				continue
			}
			ReportFileError(hc.Stderr, tool, name, err)
			failed = true
		}
	}

	if failed {
		return Status(1)
	}
	return nil
}
