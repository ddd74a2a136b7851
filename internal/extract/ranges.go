// SPDX-License-Identifier: MPL-2.0

// Package extract implements the line and field selection engine behind cut
// and the record reversal behind tac.
package extract

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RangeMax is the open-ended upper bound: "3-" parses as {3, RangeMax}.
const RangeMax = ^uint64(0)

// Range is a 1-based, inclusive span of byte, character, or field positions.
type Range struct {
	Start uint64
	End   uint64
}

// Errors mirror GNU cut's diagnostics so callers can print them verbatim.
var (
	ErrEmptyList    = errors.New("you must specify a list of bytes, characters, or fields")
	ErrFromOne      = errors.New("fields and positions are numbered from 1")
	ErrEmptyElement = errors.New("invalid range with no endpoint: -")
)

// ParseList parses a LIST argument like "1,3-5,7-" into a normalized range
// cover: sorted, pairwise disjoint, adjacent spans merged. Position 0 and
// decreasing ranges are rejected before any input is read.
func ParseList(spec string) ([]Range, error) {
	var ranges []Range

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		before, after, dashed := strings.Cut(part, "-")
		if !dashed {
			n, err := parsePos(part)
			if err != nil {
				return nil, fmt.Errorf("invalid field value %q", part)
			}
			if n == 0 {
				return nil, ErrFromOne
			}
			ranges = append(ranges, Range{Start: n, End: n})
			continue
		}

		if before == "" && after == "" {
			return nil, ErrEmptyElement
		}

		r := Range{Start: 1, End: RangeMax}
		if before != "" {
			n, err := parsePos(before)
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			r.Start = n
		}
		if after != "" {
			n, err := parsePos(after)
			if err != nil {
				return nil, fmt.Errorf("invalid range %q", part)
			}
			r.End = n
		}
		if r.Start == 0 || (after != "" && r.End == 0) {
			return nil, ErrFromOne
		}
		if r.Start > r.End {
			return nil, fmt.Errorf("invalid decreasing range: %q", part)
		}
		ranges = append(ranges, r)
	}

	if len(ranges) == 0 {
		return nil, ErrEmptyList
	}
	return normalize(ranges), nil
}

func parsePos(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// normalize sorts the ranges and merges overlapping or adjacent spans into a
// minimal disjoint cover.
func normalize(ranges []Range) []Range {
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if last.End == RangeMax || r.Start <= last.End+1 {
			last.End = max(last.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
