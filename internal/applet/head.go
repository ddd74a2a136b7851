// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"gocoreutils/internal/ioext"
)

const headHelp = `Usage: head [OPTION]... [FILE]...
Print the first 10 lines of each FILE to standard output.
With more than one FILE, precede each with a header giving the file name.

With no FILE, or when FILE is -, read standard input.

Mandatory arguments to long options are mandatory for short options too.
  -c, --bytes=[-]NUM       print the first NUM bytes of each file;
                             with the leading '-', print all but the last
                             NUM bytes of each file
  -n, --lines=[-]NUM       print the first NUM lines instead of the first 10;
                             with the leading '-', print all but the last
                             NUM lines of each file
  -q, --quiet, --silent    never print headers giving file names
  -v, --verbose            always print headers giving file names
  -z, --zero-terminated    line delimiter is NUL, not newline
      --help     display this help and exit
      --version  output version information and exit

NUM may have a multiplier suffix:
b 512, kB 1000, K 1024, MB 1000*1000, M 1024*1024,
GB 1000*1000*1000, G 1024*1024*1024, and so on for T, P, E.
Binary prefixes can be used, too: KiB=K, MiB=M, and so on.
`

// headApplet implements the head utility.
type headApplet struct{}

func init() {
	RegisterDefault(&headApplet{})
}

func (c *headApplet) Name() string { return "head" }

func (c *headApplet) Synopsis() string {
	return "print the first lines of each file"
}

func (c *headApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	byteCount := fs.StringP("bytes", "c", "", "print the first NUM bytes")
	lineCount := fs.StringP("lines", "n", "10", "print the first NUM lines")
	quiet := fs.BoolP("quiet", "q", false, "never print file name headers")
	fs.BoolP("silent", "", false, "never print file name headers")
	verbose := fs.BoolP("verbose", "v", false, "always print file name headers")
	zeroTerminated := fs.BoolP("zero-terminated", "z", false, "line delimiter is NUL")

	if stop, err := ParseArgs(fs, hc, c.Name(), headHelp, args[1:]); stop {
		return err
	}
	if silent := fs.Lookup("silent"); silent != nil && silent.Changed {
		*quiet = true
	}

	byLines := true
	spec, err := parseCount(*lineCount)
	if err != nil {
		return UsageErrorf(hc, c.Name(), "invalid number of lines: %q", *lineCount)
	}
	if *byteCount != "" {
		byLines = false
		spec, err = parseCount(*byteCount)
		if err != nil {
			return UsageErrorf(hc, c.Name(), "invalid number of bytes: %q", *byteCount)
		}
	}

	lineDelim := byte('\n')
	if *zeroTerminated {
		lineDelim = 0
	}

	out := ioext.NewWriter(hc.Stdout)
	runErr := ForEachInput(hc, c.Name(), fs.Args(), func(in Input) error {
		if err := writeHeader(out, in, *quiet, *verbose); err != nil {
			return err
		}
		switch {
		case byLines && spec.Minus:
			return c.linesExceptLast(in.R, out, spec.Value, lineDelim)
		case byLines:
			return c.firstLines(in.R, out, spec.Value, lineDelim)
		case spec.Minus:
			return c.bytesExceptLast(in.R, out, spec.Value)
		default:
			return c.firstBytes(in.R, out, spec.Value)
		}
	})
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

// writeHeader emits the "==> NAME <==" banner when headers apply: always
// under -v, with multiple inputs otherwise, never under -q. Inputs after the
// first get a separating blank line.
func writeHeader(out *ioext.Writer, in Input, quiet, verbose bool) error {
	if quiet || (!verbose && in.Count < 2) {
		return nil
	}
	name := in.Name
	if in.Stdin() {
		name = "standard input"
	}
	prefix := ""
	if in.Index > 0 {
		prefix = "\n"
	}
	_, err := fmt.Fprintf(out, "%s==> %s <==\n", prefix, name)
	return err
}

func (c *headApplet) firstBytes(in io.Reader, out *ioext.Writer, n uint64) error {
	if n == 0 {
		return nil
	}
	cr := ioext.NewChunkReader(in)
	for n > 0 {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if uint64(len(chunk)) > n {
			chunk = chunk[:n]
		}
		if _, err := out.Write(chunk); err != nil {
			return err
		}
		n -= uint64(len(chunk))
	}
	return nil
}

func (c *headApplet) firstLines(in io.Reader, out *ioext.Writer, n uint64, delim byte) error {
	if n == 0 {
		return nil
	}
	cr := ioext.NewChunkReader(in)
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for len(chunk) > 0 {
			i := bytes.IndexByte(chunk, delim)
			if i < 0 {
				if _, err := out.Write(chunk); err != nil {
					return err
				}
				break
			}
			if _, err := out.Write(chunk[:i+1]); err != nil {
				return err
			}
			chunk = chunk[i+1:]
			n--
			if n == 0 {
				return nil
			}
		}
	}
}

// bytesExceptLast copies all but the trailing n bytes, holding back a
// rolling n-byte lag so the tail is never emitted.
func (c *headApplet) bytesExceptLast(in io.Reader, out *ioext.Writer, n uint64) error {
	cr := ioext.NewChunkReader(in)
	var held []byte
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		held = append(held, chunk...)
		if uint64(len(held)) > n {
			emit := held[:uint64(len(held))-n]
			if _, err := out.Write(emit); err != nil {
				return err
			}
			held = append(held[:0], held[len(emit):]...)
		}
	}
}

// linesExceptLast copies all but the trailing n records, queueing complete
// records and releasing the oldest once more than n are held.
func (c *headApplet) linesExceptLast(in io.Reader, out *ioext.Writer, n uint64, delim byte) error {
	cr := ioext.NewChunkReader(in)
	var (
		queue   [][]byte
		partial []byte
	)
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		for len(chunk) > 0 {
			i := bytes.IndexByte(chunk, delim)
			if i < 0 {
				partial = append(partial, chunk...)
				break
			}
			record := append(partial, chunk[:i+1]...)
			partial = nil
			chunk = chunk[i+1:]

			queue = append(queue, record)
			if uint64(len(queue)) > n {
				if _, err := out.Write(queue[0]); err != nil {
					return err
				}
				queue = queue[1:]
			}
		}
	}
	// A trailing unterminated run counts as a record of its own.
	if len(partial) > 0 {
		queue = append(queue, partial)
		if uint64(len(queue)) > n {
			if _, err := out.Write(queue[0]); err != nil {
				return err
			}
		}
	}
	return nil
}
