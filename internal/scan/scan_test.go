// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"strings"
	"testing"
)

func allCounters() Request {
	return Request{Lines: true, Words: true, Bytes: true, Chars: true, MaxLineWidth: true}
}

func countAll(t *testing.T, input string, utf8Mode bool) Counts {
	t.Helper()
	s := NewScanner(allCounters(), utf8Mode)
	s.Scan([]byte(input))
	return s.Finish()
}

func TestScanner_HelloWorld(t *testing.T) {
	t.Parallel()

	got := countAll(t, "hello world\n", false)
	want := Counts{Lines: 1, Words: 2, Bytes: 12, Chars: 12, MaxLineWidth: 11}
	if got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

func TestScanner_Empty(t *testing.T) {
	t.Parallel()

	got := countAll(t, "", false)
	if got != (Counts{}) {
		t.Errorf("counts = %+v, want all zero", got)
	}

	got = countAll(t, "", true)
	if got != (Counts{}) {
		t.Errorf("utf8 counts = %+v, want all zero", got)
	}
}

func TestScanner_WordRuns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		words uint64
		lines uint64
	}{
		{"single word", "word", 1, 0},
		{"leading and trailing spaces", "   a b   ", 2, 0},
		{"tabs and newlines separate", "a\tb\nc\n", 3, 2},
		{"form feed and vertical tab separate", "a\fb\vc", 3, 0},
		{"carriage return separates", "a\rb", 2, 0},
		{"only whitespace", " \t\n \t\n", 0, 2},
		{"no trailing newline", "one two", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := countAll(t, tt.input, false)
			if got.Words != tt.words {
				t.Errorf("words = %d, want %d", got.Words, tt.words)
			}
			if got.Lines != tt.lines {
				t.Errorf("lines = %d, want %d", got.Lines, tt.lines)
			}
		})
	}
}

func TestScanner_LinesCountNewlineBytes(t *testing.T) {
	t.Parallel()

	// GNU wc counts newline bytes, not logical lines: a final unterminated
	// line adds no line count.
	got := countAll(t, "a\nb", false)
	if got.Lines != 1 {
		t.Errorf("lines = %d, want 1", got.Lines)
	}
}

func TestScanner_MaxLineWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		utf8  bool
		want  uint64
	}{
		{"plain ascii", "ab\nabcd\nx\n", false, 4},
		{"trailing partial line counts", "ab\nabcdef", false, 6},
		{"tab advances to multiple of eight", "a\tb\n", false, 9},
		{"tab from column eight", "12345678\tb\n", false, 17},
		{"carriage return resets without folding", "abcdef\rab\n", false, 2},
		{"backspace steps back", "abc\b\b\n", false, 1},
		{"backspace floors at zero", "\b\ba\n", false, 1},
		{"wide cjk counts two columns", "日本\n", true, 4},
		{"combining mark counts zero", "é\n", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := countAll(t, tt.input, tt.utf8)
			if got.MaxLineWidth != tt.want {
				t.Errorf("max line width = %d, want %d", got.MaxLineWidth, tt.want)
			}
		})
	}
}

func TestScanner_UTF8Chars(t *testing.T) {
	t.Parallel()

	// "héllo\n": 7 bytes, 6 characters.
	got := countAll(t, "héllo\n", true)
	if got.Bytes != 7 {
		t.Errorf("bytes = %d, want 7", got.Bytes)
	}
	if got.Chars != 6 {
		t.Errorf("chars = %d, want 6", got.Chars)
	}
	if got.Words != 1 {
		t.Errorf("words = %d, want 1", got.Words)
	}
}

func TestScanner_InvalidUTF8CountsPerByte(t *testing.T) {
	t.Parallel()

	// A lone continuation byte and a truncated lead each count as one
	// character and never stall the scan.
	got := countAll(t, "a\x80b\xC3", true)
	if got.Chars != 4 {
		t.Errorf("chars = %d, want 4", got.Chars)
	}
	if got.Bytes != 4 {
		t.Errorf("bytes = %d, want 4", got.Bytes)
	}
}

func TestScanner_SplitIdempotence(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"hello world\n",
		"a\tb\nc d e\nf\n",
		"héllo wörld 日本語\n",
		"bad \xC3\x28 seq \xF0\x90\x80 tail\n",
		strings.Repeat("lorem ipsum dolor\n", 17),
		"éééééé",
	}

	for _, input := range inputs {
		for _, utf8Mode := range []bool{false, true} {
			whole := NewScanner(allCounters(), utf8Mode)
			whole.Scan([]byte(input))
			want := whole.Finish()

			for split := 0; split <= len(input); split++ {
				s := NewScanner(allCounters(), utf8Mode)
				s.Scan([]byte(input[:split]))
				s.Scan([]byte(input[split:]))
				if got := s.Finish(); got != want {
					t.Fatalf("utf8=%v split at %d of %q: counts = %+v, want %+v",
						utf8Mode, split, input, got, want)
				}
			}
		}
	}
}

func TestScanner_Reset(t *testing.T) {
	t.Parallel()

	s := NewScanner(allCounters(), false)
	s.Scan([]byte("one two\n"))
	s.Finish()
	s.Reset()
	s.Scan([]byte("three\n"))
	got := s.Finish()
	if got.Words != 1 || got.Lines != 1 {
		t.Errorf("counts after Reset = %+v, want 1 word, 1 line", got)
	}
}

func TestScanner_FastPathMatchesFullScan(t *testing.T) {
	t.Parallel()

	input := "alpha beta\ngamma\n\ndelta"
	fast := NewScanner(Request{Lines: true, Bytes: true}, false)
	fast.Scan([]byte(input))
	fastCounts := fast.Finish()

	full := countAll(t, input, false)
	if fastCounts.Lines != full.Lines || fastCounts.Bytes != full.Bytes {
		t.Errorf("fast path = %+v, full scan = %+v", fastCounts, full)
	}
}

func TestCountsAdd(t *testing.T) {
	t.Parallel()

	total := Counts{Lines: 1, Words: 2, Bytes: 3, Chars: 3, MaxLineWidth: 9}
	total.Add(Counts{Lines: 4, Words: 5, Bytes: 6, Chars: 6, MaxLineWidth: 7})
	want := Counts{Lines: 5, Words: 7, Bytes: 9, Chars: 9, MaxLineWidth: 9}
	if total != want {
		t.Errorf("total = %+v, want %+v", total, want)
	}
}

func TestFieldWidth(t *testing.T) {
	t.Parallel()

	if got := FieldWidth(); got != 1 {
		t.Errorf("FieldWidth() = %d, want 1", got)
	}
	if got := FieldWidth(0, 7); got != 1 {
		t.Errorf("FieldWidth(0, 7) = %d, want 1", got)
	}
	if got := FieldWidth(3, 12345, 88); got != 5 {
		t.Errorf("FieldWidth(3, 12345, 88) = %d, want 5", got)
	}
}

func TestFormatFields(t *testing.T) {
	t.Parallel()

	got := string(FormatFields([]uint64{1, 2, 12}, 7))
	want := "      1       2      12"
	if got != want {
		t.Errorf("FormatFields = %q, want %q", got, want)
	}

	got = string(FormatFields([]uint64{1, 2, 12}, 2))
	want = " 1  2 12"
	if got != want {
		t.Errorf("FormatFields = %q, want %q", got, want)
	}
}
