// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bufio"
	"context"
	"errors"
	"io"

	"gocoreutils/internal/extract"
	"gocoreutils/internal/ioext"
)

const cutHelp = `Usage: cut OPTION... [FILE]...
Print selected parts of lines from each FILE to standard output.

With no FILE, or when FILE is -, read standard input.

Mandatory arguments to long options are mandatory for short options too.
  -b, --bytes=LIST        select only these bytes
  -c, --characters=LIST   select only these characters
  -d, --delimiter=DELIM   use DELIM instead of TAB for field delimiter
  -f, --fields=LIST       select only these fields;  also print any line
                            that contains no delimiter character, unless
                            the -s option is specified
  -n                      (ignored)
      --complement        complement the set of selected bytes, characters
                            or fields
  -s, --only-delimited    do not print lines not containing delimiters
      --output-delimiter=STRING  use STRING as the output delimiter
                            the default is to use the input delimiter
  -z, --zero-terminated   line delimiter is NUL, not newline
      --help     display this help and exit
      --version  output version information and exit

Use one, and only one of -b, -c or -f.  Each LIST is made up of one
range, or many ranges separated by commas.  Selected input is written
in the same order that it is read, and is written exactly once.
`

// cutMode is the selection unit, fixed once during argument parsing.
type cutMode int

const (
	cutFields cutMode = iota
	cutBytes
	cutChars
)

// cutApplet implements the cut utility on the extract engine.
type cutApplet struct{}

func init() {
	RegisterDefault(&cutApplet{})
}

func (c *cutApplet) Name() string { return "cut" }

func (c *cutApplet) Synopsis() string {
	return "print selected parts of lines from each file"
}

func (c *cutApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	byteList := fs.StringP("bytes", "b", "", "select only these bytes")
	charList := fs.StringP("characters", "c", "", "select only these characters")
	fieldList := fs.StringP("fields", "f", "", "select only these fields")
	delim := fs.StringP("delimiter", "d", "", "field delimiter")
	outputDelim := fs.String("output-delimiter", "", "output delimiter")
	onlyDelimited := fs.BoolP("only-delimited", "s", false, "suppress lines with no delimiter")
	complement := fs.Bool("complement", false, "complement the selection")
	zeroTerminated := fs.BoolP("zero-terminated", "z", false, "line delimiter is NUL")
	_ = fs.BoolP("ignored", "n", false, "(ignored)")

	if stop, err := ParseArgs(fs, hc, c.Name(), cutHelp, args[1:]); stop {
		return err
	}

	var (
		mode cutMode
		list string
	)
	modes := 0
	if *byteList != "" {
		mode, list = cutBytes, *byteList
		modes++
	}
	if *charList != "" {
		mode, list = cutChars, *charList
		modes++
	}
	if *fieldList != "" {
		mode, list = cutFields, *fieldList
		modes++
	}
	switch {
	case modes == 0:
		return UsageErrorf(hc, c.Name(), "you must specify a list of bytes, characters, or fields")
	case modes > 1:
		return UsageErrorf(hc, c.Name(), "only one type of list may be specified")
	}
	if mode != cutFields {
		if *delim != "" {
			return UsageErrorf(hc, c.Name(), "an input delimiter may be specified only when operating on fields")
		}
		if *onlyDelimited {
			return UsageErrorf(hc, c.Name(),
				"suppressing non-delimited lines makes sense\n\tonly when operating on fields")
		}
	}
	if len(*delim) > 1 {
		return UsageErrorf(hc, c.Name(), "the delimiter must be a single character")
	}

	ranges, err := extract.ParseList(list)
	if err != nil {
		return UsageErrorf(hc, c.Name(), "%s", err)
	}
	sel := extract.NewSelection(ranges, *complement)

	fieldDelim := byte('\t')
	if *delim != "" {
		fieldDelim = (*delim)[0]
	}
	outDelim := []byte(*outputDelim)
	if mode == cutFields && len(outDelim) == 0 && *outputDelim == "" {
		outDelim = []byte{fieldDelim}
	}

	lineDelim := byte('\n')
	if *zeroTerminated {
		lineDelim = 0
	}

	out := ioext.NewWriter(hc.Stdout)
	runErr := ForEachInput(hc, c.Name(), fs.Args(), func(in Input) error {
		return c.processStream(in.R, out, mode, sel, fieldDelim, outDelim, *onlyDelimited, lineDelim)
	})
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

// processStream applies the selection to each line of in. The final line is
// processed even without a terminator, and its absence is preserved on
// output.
func (c *cutApplet) processStream(in io.Reader, out *ioext.Writer, mode cutMode,
	sel *extract.Selection, fieldDelim byte, outDelim []byte, onlyDelimited bool, lineDelim byte,
) error {
	reader := bufio.NewReaderSize(in, ioext.ChunkSize)
	for {
		line, readErr := reader.ReadBytes(lineDelim)
		if len(line) > 0 {
			terminated := line[len(line)-1] == lineDelim
			if terminated {
				line = line[:len(line)-1]
			}
			if err := c.emitLine(line, out, mode, sel, fieldDelim, outDelim, onlyDelimited, lineDelim, terminated); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

func (c *cutApplet) emitLine(line []byte, out *ioext.Writer, mode cutMode,
	sel *extract.Selection, fieldDelim byte, outDelim []byte, onlyDelimited bool,
	lineDelim byte, terminated bool,
) error {
	var (
		result []byte
		keep   = true
	)
	switch mode {
	case cutBytes:
		result = extract.CutBytes(line, sel, outDelim)
	case cutChars:
		result = extract.CutChars(line, sel, outDelim)
	case cutFields:
		result, keep = extract.CutFields(line, fieldDelim, sel, outDelim, onlyDelimited)
	}
	if !keep {
		return nil
	}
	if _, err := out.Write(result); err != nil {
		return err
	}
	if terminated {
		return out.WriteByte(lineDelim)
	}
	return nil
}
