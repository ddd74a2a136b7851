// SPDX-License-Identifier: MPL-2.0

package scan

// RuneError is reported for bytes that do not begin a valid UTF-8 sequence.
const RuneError = '�'

const (
	maskCont  = 0xC0 // top two bits of a continuation byte
	contBits  = 0x80 // continuation bytes match 10xxxxxx
	surrLow   = 0xD800
	surrHigh  = 0xDFFF
	maxRune   = 0x10FFFF
	max1Byte  = 0x7F
	max2Bytes = 0x7FF
	max3Bytes = 0xFFFF
)

// DecodeRune decodes the first UTF-8 sequence in b and returns the code point
// together with the number of bytes consumed.
//
// Malformed input (bad lead byte, bad continuation byte, overlong encoding,
// surrogate code point, value above U+10FFFF, or a sequence truncated by the
// end of b) yields (RuneError, 1): exactly one byte is consumed so that the
// caller always makes forward progress and resynchronizes on the next byte.
// b must be non-empty.
func DecodeRune(b []byte) (rune, int) {
	lead := b[0]
	switch {
	case lead <= max1Byte:
		return rune(lead), 1

	case lead >= 0xC2 && lead <= 0xDF:
		if len(b) < 2 || b[1]&maskCont != contBits {
			return RuneError, 1
		}
		// Lead bytes below 0xC2 would encode values <= 0x7F (overlong) and
		// are rejected by the switch, so no range check is needed here.
		return rune(lead&0x1F)<<6 | rune(b[1]&0x3F), 2

	case lead >= 0xE0 && lead <= 0xEF:
		if len(b) < 3 || b[1]&maskCont != contBits || b[2]&maskCont != contBits {
			return RuneError, 1
		}
		r := rune(lead&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
		if r <= max2Bytes || (r >= surrLow && r <= surrHigh) {
			return RuneError, 1
		}
		return r, 3

	case lead >= 0xF0 && lead <= 0xF4:
		if len(b) < 4 || b[1]&maskCont != contBits || b[2]&maskCont != contBits || b[3]&maskCont != contBits {
			return RuneError, 1
		}
		r := rune(lead&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F)
		if r <= max3Bytes || r > maxRune {
			return RuneError, 1
		}
		return r, 4
	}
	// 0x80-0xC1 and 0xF5-0xFF can never start a sequence.
	return RuneError, 1
}

// seqLen returns the expected sequence length for a lead byte, or 0 when the
// byte cannot start a sequence.
func seqLen(lead byte) int {
	switch {
	case lead <= max1Byte:
		return 1
	case lead >= 0xC2 && lead <= 0xDF:
		return 2
	case lead >= 0xE0 && lead <= 0xEF:
		return 3
	case lead >= 0xF0 && lead <= 0xF4:
		return 4
	}
	return 0
}

// incompleteTail reports how many bytes at the end of b form the beginning of
// a UTF-8 sequence whose remainder has not arrived yet. It returns 0 when b
// ends on a sequence boundary (or with bytes that can never become valid).
// The scanner uses this to hold a partial sequence across chunk refills.
func incompleteTail(b []byte) int {
	// A sequence is at most 4 bytes, so only the last 3 can be a prefix.
	for back := 1; back <= 3 && back <= len(b); back++ {
		lead := b[len(b)-back]
		if lead&maskCont == contBits {
			continue // still inside a candidate sequence
		}
		// Every byte after the lead was already seen to be a continuation
		// byte, so the tail is a genuine partial sequence iff the lead
		// wants more bytes than have arrived.
		if seqLen(lead) > back {
			return back
		}
		return 0
	}
	return 0
}
