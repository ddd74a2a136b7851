// SPDX-License-Identifier: MPL-2.0

package extract

// bitsetPositions is how many leading positions get O(1) membership checks.
// Positions beyond it fall back to a scan of the (short, merged) range list.
const bitsetPositions = 1 << 16

// Selection answers "is 1-based position p selected?" for a normalized range
// cover. The first 64 Ki positions are precomputed into a bitset once per
// invocation; complement flips the answer rather than the stored bits, so
// open-ended ranges behave identically on both sides of the bitset boundary.
type Selection struct {
	ranges     []Range
	bits       [bitsetPositions / 64]uint64
	complement bool
}

// NewSelection builds a Selection from a normalized range cover.
func NewSelection(ranges []Range, complement bool) *Selection {
	s := &Selection{ranges: ranges, complement: complement}
	for _, r := range ranges {
		if r.Start > bitsetPositions {
			break
		}
		end := min(r.End, bitsetPositions)
		for pos := r.Start; pos <= end; pos++ {
			s.bits[(pos-1)/64] |= 1 << ((pos - 1) % 64)
		}
	}
	return s
}

// Selected reports whether position pos (1-based) is part of the output.
func (s *Selection) Selected(pos uint64) bool {
	var in bool
	if pos >= 1 && pos <= bitsetPositions {
		in = s.bits[(pos-1)/64]&(1<<((pos-1)%64)) != 0
	} else {
		in = s.inRanges(pos)
	}
	return in != s.complement
}

func (s *Selection) inRanges(pos uint64) bool {
	for _, r := range s.ranges {
		if pos < r.Start {
			return false
		}
		if pos <= r.End {
			return true
		}
	}
	return false
}
