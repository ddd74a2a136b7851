// SPDX-License-Identifier: MPL-2.0

// Package scan implements the streaming byte/word/line counting engine shared
// by the text utilities. A Scanner consumes input one chunk at a time and
// maintains its state across chunk boundaries, so feeding it an input split
// at any byte offset produces the same totals as feeding it whole.
package scan

import "bytes"

// Counts accumulates per-stream totals. Values wrap on overflow rather than
// saturate, matching GNU coreutils.
type Counts struct {
	Lines        uint64
	Words        uint64
	Bytes        uint64
	Chars        uint64
	MaxLineWidth uint64
}

// Add folds other into c. MaxLineWidth takes the maximum rather than the sum,
// which is how wc builds its grand-total row.
func (c *Counts) Add(other Counts) {
	c.Lines += other.Lines
	c.Words += other.Words
	c.Bytes += other.Bytes
	c.Chars += other.Chars
	c.MaxLineWidth = max(c.MaxLineWidth, other.MaxLineWidth)
}

// Request selects which counters a Scanner must maintain. Counters that are
// not requested may be left at zero; the scanner uses the request to pick the
// cheapest scanning strategy.
type Request struct {
	Lines        bool
	Words        bool
	Bytes        bool
	Chars        bool
	MaxLineWidth bool
}

// decodeNeeded reports whether the request forces per-unit classification.
// Line and byte counts never need it: newlines can be counted with a plain
// byte search and bytes with arithmetic.
func (r Request) decodeNeeded() bool {
	return r.Words || r.Chars || r.MaxLineWidth
}

// Scanner is the per-stream counting state machine. It must not be shared
// across streams; allocate one per input (or call Reset between inputs).
type Scanner struct {
	req  Request
	utf8 bool

	counts Counts

	// inWord is true while the previous unit was word-forming.
	inWord bool
	// lineWidth is the display width of the current, unterminated line.
	lineWidth uint64
	// pending holds the prefix of a multi-byte sequence cut off by a chunk
	// boundary; it is completed (or condemned) by the next chunk.
	pending [4]byte
	npend   int
}

// NewScanner returns a Scanner maintaining the requested counters.
// utf8Mode switches word/char/width classification from single-byte C-locale
// rules to UTF-8 decoding.
func NewScanner(req Request, utf8Mode bool) *Scanner {
	return &Scanner{req: req, utf8: utf8Mode}
}

// Reset clears all state so the Scanner can count a new stream.
func (s *Scanner) Reset() {
	s.counts = Counts{}
	s.inWord = false
	s.lineWidth = 0
	s.npend = 0
}

// Scan consumes one chunk of the stream.
func (s *Scanner) Scan(chunk []byte) {
	s.counts.Bytes += uint64(len(chunk))

	if !s.req.decodeNeeded() {
		if s.req.Lines {
			s.counts.Lines += uint64(bytes.Count(chunk, []byte{'\n'}))
		}
		return
	}

	if s.utf8 && s.npend > 0 {
		chunk = s.resumePending(chunk)
	}
	if s.utf8 {
		if tail := incompleteTail(chunk); tail > 0 {
			s.npend = copy(s.pending[:], chunk[len(chunk)-tail:])
			chunk = chunk[:len(chunk)-tail]
		}
	}

	for i := 0; i < len(chunk); {
		if s.utf8 {
			r, size := DecodeRune(chunk[i:])
			s.step(r, size == 1 && r == RuneError && chunk[i] > max1Byte)
			i += size
		} else {
			s.step(rune(chunk[i]), false)
			i++
		}
	}
}

// resumePending prepends the held partial sequence to the new chunk's first
// bytes and consumes whatever it decodes to. It returns the chunk with the
// borrowed continuation bytes removed.
func (s *Scanner) resumePending(chunk []byte) []byte {
	// Borrow only continuation bytes: anything else belongs to the next
	// unit and must stay in the chunk.
	want := seqLen(s.pending[0]) - s.npend
	take := 0
	for take < want && take < len(chunk) && chunk[take]&maskCont == contBits {
		take++
	}
	joined := append(s.pending[:s.npend:s.npend], chunk[:take]...)

	if take == len(chunk) && take < want {
		// The whole (tiny) chunk was continuation bytes and the sequence is
		// still short; keep holding.
		s.npend = copy(s.pending[:], joined)
		return chunk[take:]
	}

	r, size := DecodeRune(joined)
	s.step(r, size == 1 && r == RuneError)
	// A failed decode consumed only the first held byte; the remaining held
	// bytes are stray continuations and rescan as individual invalid units.
	for _, b := range joined[size:] {
		br, _ := DecodeRune([]byte{b})
		s.step(br, br == RuneError && b > max1Byte)
	}
	s.npend = 0
	return chunk[take:]
}

// step advances the state machine by one decoded unit. invalid marks a byte
// that failed UTF-8 decoding; it counts as a character but is otherwise
// treated as a non-printable.
func (s *Scanner) step(r rune, invalid bool) {
	if s.req.Chars {
		s.counts.Chars++
	}

	var cl class
	if !invalid {
		if s.utf8 {
			cl = classifyRune(r)
		} else {
			cl = classifyByte(byte(r))
		}
	}

	if s.req.Words {
		switch {
		case cl.space:
			s.inWord = false
		case cl.wordForming:
			if !s.inWord {
				s.counts.Words++
				s.inWord = true
			}
		}
	}

	if s.req.Lines && r == ctrlNewline {
		s.counts.Lines++
	}

	if s.req.MaxLineWidth {
		switch r {
		case ctrlNewline:
			s.counts.MaxLineWidth = max(s.counts.MaxLineWidth, s.lineWidth)
			s.lineWidth = 0
		case ctrlCR:
			// Terminal semantics: the carriage returns to column zero but
			// the aborted line never competes for the maximum.
			s.lineWidth = 0
		case ctrlTab:
			s.lineWidth = (s.lineWidth | 7) + 1
		case rune(ctrlBackspace):
			if s.lineWidth > 0 {
				s.lineWidth--
			}
		default:
			if !invalid {
				s.lineWidth += uint64(cl.width)
			}
		}
	}
}

// Finish flushes end-of-stream state and returns the totals. Any held partial
// sequence decodes as invalid bytes, and a final unterminated line still
// contributes to MaxLineWidth.
func (s *Scanner) Finish() Counts {
	for i := 0; i < s.npend; i++ {
		s.step(RuneError, s.pending[i] > max1Byte)
	}
	s.npend = 0

	if s.req.MaxLineWidth {
		s.counts.MaxLineWidth = max(s.counts.MaxLineWidth, s.lineWidth)
		s.lineWidth = 0
	}
	return s.counts
}

// Counts returns the totals accumulated so far without ending the stream.
func (s *Scanner) Counts() Counts {
	return s.counts
}
