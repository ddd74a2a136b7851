// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bufio"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gocoreutils/internal/ioext"
)

const md5sumHelp = `Usage: md5sum [OPTION]... [FILE]...
Print or check MD5 (128-bit) checksums.

With no FILE, or when FILE is -, read standard input.

  -b, --binary          read in binary mode
  -c, --check           read checksums from the FILEs and check them
      --tag             create a BSD-style checksum
  -t, --text            read in text mode (default)
  -z, --zero            end each output line with NUL, not newline,
                          and disable file name escaping

The following five options are useful only when verifying checksums:
      --ignore-missing  don't fail or report status for missing files
      --quiet           don't print OK for each successfully verified file
      --status          don't output anything, status code shows success
      --strict          exit non-zero for improperly formatted checksum lines
  -w, --warn            warn about improperly formatted checksum lines

      --help     display this help and exit
      --version  output version information and exit

The sums are computed as described in RFC 1321.  When checking, the input
should be a former output of this program.  The default mode is to print a
line with: checksum, a space, a character indicating input mode ('*' for
binary, ' ' for text or where binary is insignificant), and name for each
FILE.

Note: There is no difference between binary mode and text mode on GNU
systems.
`

// md5sumApplet implements the md5sum utility, both the digest-printing and
// the --check verification modes.
type md5sumApplet struct{}

// md5Options collects the verification knobs so the check path does not
// thread six booleans around.
type md5Options struct {
	binary        bool
	tag           bool
	zero          bool
	ignoreMissing bool
	quiet         bool
	status        bool
	strict        bool
	warn          bool
}

func init() {
	RegisterDefault(&md5sumApplet{})
}

func (c *md5sumApplet) Name() string { return "md5sum" }

func (c *md5sumApplet) Synopsis() string {
	return "print or check MD5 checksums"
}

func (c *md5sumApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	binary := fs.BoolP("binary", "b", false, "read in binary mode")
	check := fs.BoolP("check", "c", false, "read checksums from the FILEs and check them")
	tag := fs.Bool("tag", false, "create a BSD-style checksum")
	text := fs.BoolP("text", "t", false, "read in text mode")
	zero := fs.BoolP("zero", "z", false, "end each output line with NUL")
	ignoreMissing := fs.Bool("ignore-missing", false, "don't fail or report status for missing files")
	quiet := fs.Bool("quiet", false, "don't print OK for each verified file")
	status := fs.Bool("status", false, "don't output anything")
	strict := fs.Bool("strict", false, "exit non-zero for improperly formatted lines")
	warn := fs.BoolP("warn", "w", false, "warn about improperly formatted lines")

	if stop, err := ParseArgs(fs, hc, c.Name(), md5sumHelp, args[1:]); stop {
		return err
	}

	opts := md5Options{
		binary:        *binary && !*text,
		tag:           *tag,
		zero:          *zero,
		ignoreMissing: *ignoreMissing,
		quiet:         *quiet,
		status:        *status,
		strict:        *strict,
		warn:          *warn,
	}

	if !*check {
		checkOnly := []struct {
			name string
			set  bool
		}{
			{"--ignore-missing", opts.ignoreMissing},
			{"--quiet", opts.quiet},
			{"--status", opts.status},
			{"--strict", opts.strict},
			{"--warn", opts.warn},
		}
		for _, opt := range checkOnly {
			if opt.set {
				return UsageErrorf(hc, c.Name(),
					"the %s option is meaningful only when verifying checksums", opt.name)
			}
		}
		return c.printDigests(hc, fs.Args(), opts)
	}

	if opts.tag {
		return UsageErrorf(hc, c.Name(), "the --tag option is meaningless when verifying checksums")
	}
	return c.checkLists(hc, fs.Args(), opts)
}

// printDigests hashes each operand and writes one checksum line per input.
func (c *md5sumApplet) printDigests(hc *IOContext, operands []string, opts md5Options) error {
	out := ioext.NewWriter(hc.Stdout)
	runErr := ForEachInput(hc, c.Name(), operands, func(in Input) error {
		digest, err := hashStream(in.R)
		if err != nil {
			return err
		}
		return c.writeDigest(out, digest, in.Name, opts)
	})
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

func (c *md5sumApplet) writeDigest(out *ioext.Writer, digest, name string, opts md5Options) error {
	terminator := byte('\n')
	escaped := false
	if opts.zero {
		terminator = 0
	} else {
		name, escaped = escapeName(name)
	}

	var err error
	switch {
	case opts.tag && escaped:
		_, err = fmt.Fprintf(out, "\\MD5 (%s) = %s", name, digest)
	case opts.tag:
		_, err = fmt.Fprintf(out, "MD5 (%s) = %s", name, digest)
	default:
		marker := " "
		if opts.binary {
			marker = "*"
		}
		prefix := ""
		if escaped {
			prefix = "\\"
		}
		_, err = fmt.Fprintf(out, "%s%s %s%s", prefix, digest, marker, name)
	}
	if err != nil {
		return err
	}
	return out.WriteByte(terminator)
}

// checkLists verifies every list operand and aggregates the GNU warning
// summary across them.
func (c *md5sumApplet) checkLists(hc *IOContext, operands []string, opts md5Options) error {
	failed := false
	runErr := ForEachInput(hc, c.Name(), operands, func(in Input) error {
		ok, err := c.checkOneList(hc, in, opts)
		if err != nil {
			return err
		}
		if !ok {
			failed = true
		}
		return nil
	})
	if failed {
		if runErr == nil {
			runErr = Status(1)
		}
	}
	return runErr
}

func (c *md5sumApplet) checkOneList(hc *IOContext, in Input, opts md5Options) (bool, error) {
	var (
		matched     int
		mismatched  int
		unreadable  int
		badLines    int
		properLines int
		lineNumber  int
	)

	scanner := bufio.NewScanner(in.R)
	scanner.Buffer(make([]byte, 0, ioext.ChunkSize), 16*ioext.ChunkSize)
	for scanner.Scan() {
		lineNumber++
		expected, name, ok := parseChecksumLine(scanner.Text())
		if !ok {
			badLines++
			if opts.warn {
				Reportf(hc.Stderr, c.Name(),
					"%s: %d: improperly formatted MD5 checksum line", in.Name, lineNumber)
			}
			continue
		}
		properLines++

		f, err := os.Open(name)
		if err != nil {
			if opts.ignoreMissing && errors.Is(err, os.ErrNotExist) {
				continue
			}
			unreadable++
			if !opts.status {
				ReportFileError(hc.Stderr, c.Name(), name, err)
				fmt.Fprintf(hc.Stdout, "%s: FAILED open or read\n", name)
			}
			continue
		}
		digest, err := hashStream(f)
		_ = f.Close()
		if err != nil {
			unreadable++
			if !opts.status {
				ReportFileError(hc.Stderr, c.Name(), name, err)
				fmt.Fprintf(hc.Stdout, "%s: FAILED open or read\n", name)
			}
			continue
		}

		if strings.EqualFold(digest, expected) {
			matched++
			if !opts.status && !opts.quiet {
				fmt.Fprintf(hc.Stdout, "%s: OK\n", name)
			}
		} else {
			mismatched++
			if !opts.status {
				fmt.Fprintf(hc.Stdout, "%s: FAILED\n", name)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}

	if properLines == 0 {
		Reportf(hc.Stderr, c.Name(),
			"%s: no properly formatted MD5 checksum lines found", in.Name)
		return false, nil
	}
	if opts.ignoreMissing && matched == 0 && mismatched == 0 && unreadable == 0 {
		Reportf(hc.Stderr, c.Name(), "%s: no file was verified", in.Name)
		return false, nil
	}

	if !opts.status {
		if badLines > 0 {
			Reportf(hc.Stderr, c.Name(), "WARNING: %d %s improperly formatted",
				badLines, plural(badLines, "line is", "lines are"))
		}
		if unreadable > 0 {
			Reportf(hc.Stderr, c.Name(), "WARNING: %d listed %s could not be read",
				unreadable, plural(unreadable, "file", "files"))
		}
		if mismatched > 0 {
			Reportf(hc.Stderr, c.Name(), "WARNING: %d computed %s did NOT match",
				mismatched, plural(mismatched, "checksum", "checksums"))
		}
	}

	ok := mismatched == 0 && unreadable == 0 && !(opts.strict && badLines > 0)
	return ok, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// hashStream computes the hex MD5 digest of a stream.
func hashStream(r io.Reader) (string, error) {
	h := md5.New()
	cr := ioext.NewChunkReader(r)
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		h.Write(chunk)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// parseChecksumLine accepts both output styles: "digest marker name" and the
// BSD "MD5 (name) = digest" form, with the leading backslash escape used for
// awkward file names.
func parseChecksumLine(line string) (digest, name string, ok bool) {
	escaped := strings.HasPrefix(line, "\\")
	if escaped {
		line = line[1:]
	}

	if rest, found := strings.CutPrefix(line, "MD5 ("); found {
		i := strings.LastIndex(rest, ") = ")
		if i < 0 {
			return "", "", false
		}
		name = rest[:i]
		digest = rest[i+len(") = "):]
	} else {
		if len(line) < md5.Size*2+2 {
			return "", "", false
		}
		digest = line[:md5.Size*2]
		sep := line[md5.Size*2 : md5.Size*2+2]
		if sep != "  " && sep != " *" {
			return "", "", false
		}
		name = line[md5.Size*2+2:]
	}

	if !validHex(digest) || name == "" {
		return "", "", false
	}
	if escaped {
		var err error
		name, err = unescapeName(name)
		if err != nil {
			return "", "", false
		}
	}
	return digest, name, true
}

func validHex(s string) bool {
	if len(s) != md5.Size*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// escapeName rewrites newlines, carriage returns, and backslashes so a file
// name always fits on one checksum line. The second result reports whether
// anything changed, which obliges the leading backslash on the whole line.
func escapeName(name string) (string, bool) {
	if !strings.ContainsAny(name, "\\\n\r") {
		return name, false
	}
	r := strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")
	return r.Replace(name), true
}

func unescapeName(name string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] != '\\' {
			b.WriteByte(name[i])
			continue
		}
		i++
		if i >= len(name) {
			return "", errors.New("trailing backslash")
		}
		switch name[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", fmt.Errorf("unknown escape \\%c", name[i])
		}
	}
	return b.String(), nil
}
