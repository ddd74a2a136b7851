// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"bytes"

	"gocoreutils/internal/scan"
)

// CutBytes emits the bytes of line at selected positions. outDelim, when
// non-empty, is inserted between selected runs that are not adjacent in the
// input.
func CutBytes(line []byte, sel *Selection, outDelim []byte) []byte {
	out := make([]byte, 0, len(line))
	pending := false // a gap since the previously emitted position
	emitted := false

	for i := range line {
		if !sel.Selected(uint64(i + 1)) {
			pending = emitted
			continue
		}
		if pending && len(outDelim) > 0 {
			out = append(out, outDelim...)
		}
		pending = false
		emitted = true
		out = append(out, line[i])
	}
	return out
}

// CutChars is CutBytes over UTF-8 characters: each decoded sequence (or each
// invalid byte) occupies one position.
func CutChars(line []byte, sel *Selection, outDelim []byte) []byte {
	out := make([]byte, 0, len(line))
	pending := false
	emitted := false

	pos := uint64(0)
	for i := 0; i < len(line); {
		_, size := scan.DecodeRune(line[i:])
		pos++
		if !sel.Selected(pos) {
			pending = emitted
			i += size
			continue
		}
		if pending && len(outDelim) > 0 {
			out = append(out, outDelim...)
		}
		pending = false
		emitted = true
		out = append(out, line[i:i+size]...)
		i += size
	}
	return out
}

// CutFields splits line on delim and emits the selected fields joined by
// outDelim. A line with no delimiter passes through whole unless
// onlyDelimited suppresses it; the second result is false when the line
// produces no output at all.
func CutFields(line []byte, delim byte, sel *Selection, outDelim []byte, onlyDelimited bool) ([]byte, bool) {
	if bytes.IndexByte(line, delim) < 0 {
		if onlyDelimited {
			return nil, false
		}
		return line, true
	}

	out := make([]byte, 0, len(line))
	emitted := false

	field := uint64(1)
	rest := line
	for {
		next := bytes.IndexByte(rest, delim)
		var f []byte
		if next < 0 {
			f = rest
		} else {
			f = rest[:next]
		}

		if sel.Selected(field) {
			if emitted {
				out = append(out, outDelim...)
			}
			emitted = true
			out = append(out, f...)
		}

		if next < 0 {
			break
		}
		rest = rest[next+1:]
		field++
	}
	return out, true
}
