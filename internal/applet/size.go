// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// countSpec is a parsed head/tail count operand: a magnitude plus the sign
// prefix that selects the mode ("-5" elides, "+5" starts from).
type countSpec struct {
	Value uint64
	Minus bool
	Plus  bool
}

// multiplier suffixes as GNU head and tail accept them. The decimal forms
// carry a trailing B; the bare letters and the IEC forms are binary.
var countSuffixes = map[string]uint64{
	"b":   512,
	"kB":  1000,
	"K":   1024,
	"KiB": 1024,
	"MB":  1000 * 1000,
	"M":   1024 * 1024,
	"MiB": 1024 * 1024,
	"GB":  1000 * 1000 * 1000,
	"G":   1024 * 1024 * 1024,
	"GiB": 1024 * 1024 * 1024,
	"TB":  1000 * 1000 * 1000 * 1000,
	"T":   1024 * 1024 * 1024 * 1024,
	"TiB": 1024 * 1024 * 1024 * 1024,
	"PB":  1000 * 1000 * 1000 * 1000 * 1000,
	"P":   1024 * 1024 * 1024 * 1024 * 1024,
	"PiB": 1024 * 1024 * 1024 * 1024 * 1024,
	"EB":  1000 * 1000 * 1000 * 1000 * 1000 * 1000,
	"E":   1024 * 1024 * 1024 * 1024 * 1024 * 1024,
	"EiB": 1024 * 1024 * 1024 * 1024 * 1024 * 1024,
}

var errBadCount = fmt.Errorf("invalid count")

// parseCount parses a head/tail NUM operand: an optional + or - prefix,
// decimal digits, and an optional multiplier suffix. Overflow saturates at
// the maximum, which in practice means "everything".
func parseCount(s string) (countSpec, error) {
	var spec countSpec
	rest := s
	switch {
	case strings.HasPrefix(rest, "-"):
		spec.Minus = true
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		spec.Plus = true
		rest = rest[1:]
	}

	digits := len(rest)
	for i, r := range rest {
		if r < '0' || r > '9' {
			digits = i
			break
		}
	}
	if digits == 0 {
		return spec, errBadCount
	}

	value, err := strconv.ParseUint(rest[:digits], 10, 64)
	if err != nil {
		value = math.MaxUint64
	}

	if suffix := rest[digits:]; suffix != "" {
		mult, ok := countSuffixes[suffix]
		if !ok {
			return spec, errBadCount
		}
		if value > math.MaxUint64/mult {
			value = math.MaxUint64
		} else {
			value *= mult
		}
	}

	spec.Value = value
	return spec, nil
}
