// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"bytes"
	"io"
)

// Reverse writes the records of data to w in last-to-first order. Records
// are delimited by sep; with before false (the default) a separator belongs
// to the end of the record it terminates, with before true it belongs to the
// start of the record it introduces. A trailing run with no separator is the
// last record and so is written first. An empty separator degrades to a
// plain copy of the input.
func Reverse(data []byte, sep []byte, before bool, w io.Writer) error {
	if len(data) == 0 {
		return nil
	}
	if len(sep) == 0 {
		_, err := w.Write(data)
		return err
	}

	if before {
		return reverseBefore(data, sep, w)
	}
	return reverseAfter(data, sep, w)
}

// lastIndexSep scans backward for the final occurrence of sep in data.
// Single-byte separators take the vectorized bytes.LastIndexByte path.
func lastIndexSep(data, sep []byte) int {
	if len(sep) == 1 {
		return bytes.LastIndexByte(data, sep[0])
	}
	return bytes.LastIndex(data, sep)
}

// reverseAfter emits records that carry their separator as a suffix.
func reverseAfter(data, sep []byte, w io.Writer) error {
	end := len(data)

	// The tail after the final separator, if any, has no terminator and is
	// emitted first.
	last := lastIndexSep(data, sep)
	if last < 0 {
		_, err := w.Write(data)
		return err
	}
	if tail := data[last+len(sep):]; len(tail) > 0 {
		if _, err := w.Write(tail); err != nil {
			return err
		}
	}
	end = last + len(sep)

	for end > 0 {
		prev := lastIndexSep(data[:end-len(sep)], sep)
		start := 0
		if prev >= 0 {
			start = prev + len(sep)
		}
		if _, err := w.Write(data[start:end]); err != nil {
			return err
		}
		end = start
	}
	return nil
}

// reverseBefore emits records that carry their separator as a prefix.
func reverseBefore(data, sep []byte, w io.Writer) error {
	end := len(data)
	for end > 0 {
		start := lastIndexSep(data[:end], sep)
		if start < 0 {
			// Leading run before the first separator.
			_, err := w.Write(data[:end])
			return err
		}
		if _, err := w.Write(data[start:end]); err != nil {
			return err
		}
		end = start
	}
	return nil
}
