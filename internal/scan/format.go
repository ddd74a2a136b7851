// SPDX-License-Identifier: MPL-2.0

package scan

import "strconv"

// FieldWidth returns the column width wc uses to right-align its counters:
// the digit count of the largest value that will be printed, never less
// than one.
func FieldWidth(values ...uint64) int {
	width := 1
	for _, v := range values {
		if n := len(strconv.FormatUint(v, 10)); n > width {
			width = n
		}
	}
	return width
}

// FormatFields right-aligns each value to width and joins them with single
// spaces, the exact layout of a wc output row (the caller appends the
// optional file name and newline).
func FormatFields(values []uint64, width int) []byte {
	var out []byte
	for i, v := range values {
		if i > 0 {
			out = append(out, ' ')
		}
		digits := strconv.FormatUint(v, 10)
		for pad := width - len(digits); pad > 0; pad-- {
			out = append(out, ' ')
		}
		out = append(out, digits...)
	}
	return out
}
