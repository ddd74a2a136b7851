// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bytes"
	"context"
	"errors"
	"io"

	"gocoreutils/internal/ioext"
)

const tailHelp = `Usage: tail [OPTION]... [FILE]...
Print the last 10 lines of each FILE to standard output.
With more than one FILE, precede each with a header giving the file name.

With no FILE, or when FILE is -, read standard input.

Mandatory arguments to long options are mandatory for short options too.
  -c, --bytes=[+]NUM       output the last NUM bytes; or use -c +NUM to
                             output starting with byte NUM of each file
  -n, --lines=[+]NUM       output the last NUM lines, instead of the last 10;
                             or use -n +NUM to skip NUM-1 lines at the start
  -q, --quiet, --silent    never output headers giving file names
  -v, --verbose            always output headers giving file names
  -z, --zero-terminated    line delimiter is NUL, not newline
      --help     display this help and exit
      --version  output version information and exit

NUM may have a multiplier suffix:
b 512, kB 1000, K 1024, MB 1000*1000, M 1024*1024,
GB 1000*1000*1000, G 1024*1024*1024, and so on for T, P, E.
Binary prefixes can be used, too: KiB=K, MiB=M, and so on.
`

// tailApplet implements the tail utility. Inputs are consumed once; there is
// no follow mode.
type tailApplet struct{}

func init() {
	RegisterDefault(&tailApplet{})
}

func (c *tailApplet) Name() string { return "tail" }

func (c *tailApplet) Synopsis() string {
	return "print the last lines of each file"
}

func (c *tailApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	byteCount := fs.StringP("bytes", "c", "", "output the last NUM bytes")
	lineCount := fs.StringP("lines", "n", "10", "output the last NUM lines")
	quiet := fs.BoolP("quiet", "q", false, "never print file name headers")
	fs.BoolP("silent", "", false, "never print file name headers")
	verbose := fs.BoolP("verbose", "v", false, "always print file name headers")
	zeroTerminated := fs.BoolP("zero-terminated", "z", false, "line delimiter is NUL")

	if stop, err := ParseArgs(fs, hc, c.Name(), tailHelp, args[1:]); stop {
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
		case byLines && spec.Plus:
			return c.fromLine(in.R, out, spec.Value, lineDelim)
		case byLines:
			return c.lastLines(in.R, out, spec.Value, lineDelim)
		case spec.Plus:
			return c.fromByte(in.R, out, spec.Value)
		default:
			return c.lastBytes(in.R, out, spec.Value)
		}
	})
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

// lastBytes emits the trailing n bytes, holding a rolling window while the
// stream drains.
func (c *tailApplet) lastBytes(in io.Reader, out *ioext.Writer, n uint64) error {
	if n == 0 {
		_, err := io.Copy(io.Discard, in)
		return err
	}
	cr := ioext.NewChunkReader(in)
	var held []byte
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		held = append(held, chunk...)
		if uint64(len(held)) > n {
			drop := uint64(len(held)) - n
			held = append(held[:0], held[drop:]...)
		}
	}
	_, err := out.Write(held)
	return err
}

// fromByte emits everything starting with byte number start. Numbering is
// 1-based; +0 and +1 both mean the whole input.
func (c *tailApplet) fromByte(in io.Reader, out *ioext.Writer, start uint64) error {
	skip := start
	if skip > 0 {
		skip--
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
		if skip >= uint64(len(chunk)) {
			skip -= uint64(len(chunk))
			continue
		}
		chunk = chunk[skip:]
		skip = 0
		if _, err := out.Write(chunk); err != nil {
			return err
		}
	}
}

// lastLines emits the trailing n records. A final unterminated run counts as
// a record.
func (c *tailApplet) lastLines(in io.Reader, out *ioext.Writer, n uint64, delim byte) error {
	if n == 0 {
		_, err := io.Copy(io.Discard, in)
		return err
	}
	cr := ioext.NewChunkReader(in)
	var (
		queue   [][]byte
		partial []byte
	)
	push := func(record []byte) {
		queue = append(queue, record)
		if uint64(len(queue)) > n {
			queue = queue[1:]
		}
	}
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
			push(append(partial, chunk[:i+1]...))
			partial = nil
			chunk = chunk[i+1:]
		}
	}
	if len(partial) > 0 {
		push(partial)
	}
	for _, record := range queue {
		if _, err := out.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// fromLine emits everything starting with record number start, 1-based.
func (c *tailApplet) fromLine(in io.Reader, out *ioext.Writer, start uint64, delim byte) error {
	skip := start
	if skip > 0 {
		skip--
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
			if skip == 0 {
				if _, err := out.Write(chunk); err != nil {
					return err
				}
				break
			}
			i := bytes.IndexByte(chunk, delim)
			if i < 0 {
				break
			}
			chunk = chunk[i+1:]
			skip--
		}
	}
}
