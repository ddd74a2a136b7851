// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gocoreutils/internal/ioext"
)

const trHelp = `Usage: tr [OPTION]... STRING1 [STRING2]
Translate, squeeze, and/or delete characters from standard input,
writing to standard output.  STRING1 and STRING2 specify arrays of
characters ARRAY1 and ARRAY2 that control the action.

  -c, -C, --complement    use the complement of ARRAY1
  -d, --delete            delete characters in ARRAY1, do not translate
  -s, --squeeze-repeats   replace each sequence of a repeated character
                            that is listed in the last specified ARRAY,
                            with a single occurrence of that character
  -t, --truncate-set1     first truncate ARRAY1 to length of ARRAY2
      --help     display this help and exit
      --version  output version information and exit

ARRAYs are specified as strings of characters.  Most represent themselves.
Interpreted sequences are:

  \NNN            character with octal value NNN (1 to 3 octal digits)
  \\              backslash
  \a              audible BEL
  \b              backspace
  \f              form feed
  \n              new line
  \r              return
  \t              horizontal tab
  \v              vertical tab
  CHAR1-CHAR2     all characters from CHAR1 to CHAR2 in ascending order
  [CHAR*]         in ARRAY2, copies of CHAR until length of ARRAY1
  [CHAR*REPEAT]   REPEAT copies of CHAR, REPEAT octal if starting with 0
  [:alnum:]       all letters and digits
  [:alpha:]       all letters
  [:blank:]       all horizontal whitespace
  [:cntrl:]       all control characters
  [:digit:]       all digits
  [:graph:]       all printable characters, not including space
  [:lower:]       all lower case letters
  [:print:]       all printable characters, including space
  [:punct:]       all punctuation characters
  [:space:]       all horizontal or vertical whitespace
  [:upper:]       all upper case letters
  [:xdigit:]      all hexadecimal digits
  [=CHAR=]        all characters which are equivalent to CHAR
`

// trApplet implements the tr utility. Operation is byte-wise in the C
// locale; input comes only from standard input.
type trApplet struct{}

func init() {
	RegisterDefault(&trApplet{})
}

func (c *trApplet) Name() string { return "tr" }

func (c *trApplet) Synopsis() string {
	return "translate, squeeze, or delete characters from standard input"
}

func (c *trApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	complementC := fs.BoolP("complement", "c", false, "use the complement of ARRAY1")
	complementUpper := fs.BoolP("C", "C", false, "use the complement of ARRAY1")
	del := fs.BoolP("delete", "d", false, "delete characters in ARRAY1")
	squeeze := fs.BoolP("squeeze-repeats", "s", false, "squeeze repeated characters")
	truncate := fs.BoolP("truncate-set1", "t", false, "truncate ARRAY1 to the length of ARRAY2")

	if stop, err := ParseArgs(fs, hc, c.Name(), trHelp, args[1:]); stop {
		return err
	}
	complement := *complementC || *complementUpper

	operands := fs.Args()
	switch {
	case len(operands) == 0:
		return UsageErrorf(hc, c.Name(), "missing operand")
	case len(operands) > 2:
		return UsageErrorf(hc, c.Name(), "extra operand %q", operands[2])
	}

	translating := !*del && len(operands) == 2
	if !*del && !*squeeze && len(operands) == 1 {
		return UsageErrorf(hc, c.Name(),
			"missing operand after %q\nTwo strings must be given when translating.", operands[0])
	}
	if *del && !*squeeze && len(operands) == 2 {
		return UsageErrorf(hc, c.Name(),
			"extra operand %q\nOnly one string may be given when deleting without squeezing repeats.",
			operands[1])
	}

	set1, err := parseTrSet(operands[0], false, 0)
	if err != nil {
		return UsageErrorf(hc, c.Name(), "%s", err)
	}
	if complement {
		set1 = complementBytes(set1)
	}

	var set2 []byte
	if len(operands) == 2 {
		set2, err = parseTrSet(operands[1], true, len(set1))
		if err != nil {
			return UsageErrorf(hc, c.Name(), "%s", err)
		}
	}

	if translating {
		if len(set2) == 0 && !*truncate {
			return UsageErrorf(hc, c.Name(), "when not truncating set1, string2 must be non-empty")
		}
		if *truncate && len(set2) < len(set1) {
			set1 = set1[:len(set2)]
		}
	}

	var xlat *[256]byte
	if translating {
		xlat = buildTranslation(set1, set2)
	}

	var deleteSet *[256]bool
	if *del {
		deleteSet = memberTable(set1)
	}

	var squeezeSet *[256]bool
	if *squeeze {
		// Squeezing applies to the last array given: ARRAY2 when both
		// translate-and-squeeze or delete-and-squeeze, ARRAY1 alone
		// otherwise.
		src := set1
		if len(operands) == 2 {
			src = set2
		}
		squeezeSet = memberTable(src)
	}

	out := ioext.NewWriter(hc.Stdout)
	if err := c.process(hc.Stdin, out, xlat, deleteSet, squeezeSet); err != nil {
		if errors.Is(err, ioext.ErrPipeClosed) {
			return nil
		}
		ReportFileError(hc.Stderr, c.Name(), "standard input", err)
		return Status(1)
	}
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return nil
}

// process streams stdin through the configured stages: translate, delete,
// squeeze. lastEmitted tracks squeeze state across chunk boundaries.
func (c *trApplet) process(in io.Reader, out *ioext.Writer,
	xlat *[256]byte, deleteSet, squeezeSet *[256]bool,
) error {
	cr := ioext.NewChunkReader(in)
	buf := make([]byte, 0, ioext.ChunkSize)
	lastEmitted := -1
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return out.Flush()
		}
		if err != nil {
			return err
		}

		buf = buf[:0]
		for _, b := range chunk {
			if deleteSet != nil && deleteSet[b] {
				continue
			}
			if xlat != nil {
				b = xlat[b]
			}
			if squeezeSet != nil && squeezeSet[b] && int(b) == lastEmitted {
				continue
			}
			lastEmitted = int(b)
			buf = append(buf, b)
		}
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
}

// buildTranslation maps each byte of set1 to the corresponding byte of set2,
// extending set2 with its last byte when it is shorter.
func buildTranslation(set1, set2 []byte) *[256]byte {
	var m [256]byte
	for i := range m {
		m[i] = byte(i)
	}
	for i, b := range set1 {
		j := i
		if j >= len(set2) {
			j = len(set2) - 1
		}
		m[b] = set2[j]
	}
	return &m
}

func memberTable(set []byte) *[256]bool {
	var t [256]bool
	for _, b := range set {
		t[b] = true
	}
	return &t
}

// complementBytes returns every byte not in set, in ascending order.
func complementBytes(set []byte) []byte {
	member := memberTable(set)
	out := make([]byte, 0, 256-len(set))
	for i := 0; i < 256; i++ {
		if !member[i] {
			out = append(out, byte(i))
		}
	}
	return out
}

// trParser walks one SET operand.
type trParser struct {
	spec    string
	pos     int
	isSet2  bool
	set1Len int
	out     []byte
	sawFill bool
}

// parseTrSet expands a SET operand into its byte sequence. set1Len is the
// length of the already-expanded ARRAY1 and sizes the [c*] fill construct;
// it is ignored for ARRAY1 itself.
func parseTrSet(spec string, isSet2 bool, set1Len int) ([]byte, error) {
	p := &trParser{spec: spec, isSet2: isSet2, set1Len: set1Len}
	for p.pos < len(p.spec) {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return p.out, nil
}

func (p *trParser) next() error {
	if p.spec[p.pos] == '[' {
		if ok, err := p.bracket(); err != nil || ok {
			return err
		}
	}

	c1, err := p.char()
	if err != nil {
		return err
	}

	// A dash between two characters is a range; elsewhere it is literal.
	if p.pos < len(p.spec)-1 && p.spec[p.pos] == '-' {
		p.pos++
		c2, err := p.char()
		if err != nil {
			return err
		}
		if c2 < c1 {
			return fmt.Errorf("range-endpoints of '%c-%c' are in reverse collating sequence order", c1, c2)
		}
		for b := int(c1); b <= int(c2); b++ {
			p.out = append(p.out, byte(b))
		}
		return nil
	}

	p.out = append(p.out, c1)
	return nil
}

// char consumes one character unit, resolving backslash escapes.
func (p *trParser) char() (byte, error) {
	c := p.spec[p.pos]
	p.pos++
	if c != '\\' {
		return c, nil
	}
	if p.pos >= len(p.spec) {
		// A trailing backslash stands for itself.
		return '\\', nil
	}

	c = p.spec[p.pos]
	p.pos++
	switch c {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case '\\':
		return '\\', nil
	}
	if c >= '0' && c <= '7' {
		value := int(c - '0')
		for digits := 1; digits < 3 && p.pos < len(p.spec); digits++ {
			d := p.spec[p.pos]
			if d < '0' || d > '7' || value*8+int(d-'0') > 255 {
				break
			}
			value = value*8 + int(d-'0')
			p.pos++
		}
		return byte(value), nil
	}
	// Unknown escape: the escaped character stands for itself.
	return c, nil
}

// bracket handles the [:class:], [=c=], and [c*n] constructs. It reports
// whether a construct was consumed; a lone '[' falls through to the literal
// path.
func (p *trParser) bracket() (bool, error) {
	rest := p.spec[p.pos:]
	if len(rest) < 2 {
		return false, nil
	}

	switch rest[1] {
	case ':':
		end := indexFrom(rest, 2, ":]")
		if end < 0 {
			return false, nil
		}
		name := rest[2:end]
		members, ok := classMembers(name)
		if !ok {
			return false, fmt.Errorf("invalid character class %q", name)
		}
		p.out = append(p.out, members...)
		p.pos += end + 2
		return true, nil

	case '=':
		end := indexFrom(rest, 2, "=]")
		if end < 0 {
			return false, nil
		}
		operand := rest[2:end]
		if len(operand) != 1 {
			return false, fmt.Errorf("%s: equivalence class operand must be a single character", operand)
		}
		p.out = append(p.out, operand[0])
		p.pos += end + 2
		return true, nil
	}

	// [c*n] or [c*]: the char may itself be escaped, so parse positionally.
	save := p.pos
	p.pos++ // '['
	c, err := p.char()
	if err != nil || p.pos >= len(p.spec) || p.spec[p.pos] != '*' {
		p.pos = save
		return false, nil
	}
	p.pos++ // '*'
	end := indexFrom(p.spec, p.pos, "]")
	if end < 0 {
		p.pos = save
		return false, nil
	}
	digits := p.spec[p.pos:end]
	p.pos = end + 1

	if !p.isSet2 {
		return false, errors.New("the [c*] repeat construct may not appear in string1")
	}
	if digits == "" {
		// Fill to the length of ARRAY1.
		if p.sawFill {
			return false, errors.New("only one [c*] repeat construct may appear in string2")
		}
		p.sawFill = true
		for len(p.out) < p.set1Len {
			p.out = append(p.out, c)
		}
		return true, nil
	}

	base := 10
	if digits[0] == '0' {
		base = 8
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return false, fmt.Errorf("invalid repeat count %q in [c*n] construct", digits)
	}
	for i := uint64(0); i < n; i++ {
		p.out = append(p.out, c)
	}
	return true, nil
}

// indexFrom finds needle in s at or after start, returning its absolute
// index in s or -1.
func indexFrom(s string, start int, needle string) int {
	for i := start; i+len(needle) <= len(s); i++ {
		if s[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

// classMembers expands a POSIX character class to its C-locale members in
// ascending byte order.
func classMembers(name string) ([]byte, bool) {
	match := func(pred func(byte) bool) []byte {
		var out []byte
		for i := 0; i < 256; i++ {
			if pred(byte(i)) {
				out = append(out, byte(i))
			}
		}
		return out
	}

	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	isLower := func(b byte) bool { return b >= 'a' && b <= 'z' }
	isUpper := func(b byte) bool { return b >= 'A' && b <= 'Z' }
	isAlpha := func(b byte) bool { return isLower(b) || isUpper(b) }
	isAlnum := func(b byte) bool { return isAlpha(b) || isDigit(b) }
	isGraph := func(b byte) bool { return b > 0x20 && b < 0x7f }
	isSpace := func(b byte) bool {
		return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
	}

	switch name {
	case "alnum":
		return match(isAlnum), true
	case "alpha":
		return match(isAlpha), true
	case "blank":
		return []byte{'\t', ' '}, true
	case "cntrl":
		return match(func(b byte) bool { return b < 0x20 || b == 0x7f }), true
	case "digit":
		return match(isDigit), true
	case "graph":
		return match(isGraph), true
	case "lower":
		return match(isLower), true
	case "print":
		return match(func(b byte) bool { return b >= 0x20 && b < 0x7f }), true
	case "punct":
		return match(func(b byte) bool { return isGraph(b) && !isAlnum(b) }), true
	case "space":
		return match(isSpace), true
	case "upper":
		return match(isUpper), true
	case "xdigit":
		return match(func(b byte) bool {
			return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
		}), true
	}
	return nil, false
}
