// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gocoreutils/internal/ioext"
	"gocoreutils/internal/locale"
	"gocoreutils/internal/scan"
)

const wcHelp = `Usage: wc [OPTION]... [FILE]...
  or:  wc [OPTION]... --files0-from=F
Print newline, word, and byte counts for each FILE, and a total line if
more than one FILE is specified.  A word is a nonempty sequence of non white
space characters delimited by white space characters or by start or end of
input.

With no FILE, or when FILE is -, read standard input.

The options below may be used to select which counts are printed, always in
the following order: newline, word, character, byte, maximum line length.
  -c, --bytes            print the byte counts
  -m, --chars            print the character counts
  -l, --lines            print the newline counts
      --files0-from=F    read input from the files specified by
                           NUL-terminated names in file F;
                           If F is - then read names from standard input
  -L, --max-line-length  print the maximum display width
  -w, --words            print the word counts
      --total=WHEN       when to print a line with total counts;
                           WHEN can be: auto, always, only, never
      --help     display this help and exit
      --version  output version information and exit
`

// wcApplet implements the wc utility on the scan engine.
type wcApplet struct{}

// wcRow is one formatted result awaiting output. Rows are buffered so the
// column width can be computed over every value that will be printed.
type wcRow struct {
	counts scan.Counts
	name   string
}

func init() {
	RegisterDefault(&wcApplet{})
}

func (c *wcApplet) Name() string { return "wc" }

func (c *wcApplet) Synopsis() string {
	return "print newline, word, and byte counts for each file"
}

func (c *wcApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	countBytes := fs.BoolP("bytes", "c", false, "print the byte counts")
	countChars := fs.BoolP("chars", "m", false, "print the character counts")
	countLines := fs.BoolP("lines", "l", false, "print the newline counts")
	maxWidth := fs.BoolP("max-line-length", "L", false, "print the maximum display width")
	countWords := fs.BoolP("words", "w", false, "print the word counts")
	totalWhen := fs.String("total", "auto", "when to print the total counts")
	files0From := fs.String("files0-from", "", "read NUL-terminated file names from F")

	if stop, err := ParseArgs(fs, hc, c.Name(), wcHelp, args[1:]); stop {
		return err
	}

	switch *totalWhen {
	case "auto", "always", "only", "never":
	default:
		return UsageErrorf(hc, c.Name(), "invalid argument %q for '--total'", *totalWhen)
	}

	req := scan.Request{
		Lines:        *countLines,
		Words:        *countWords,
		Bytes:        *countBytes,
		Chars:        *countChars,
		MaxLineWidth: *maxWidth,
	}
	if !req.Lines && !req.Words && !req.Bytes && !req.Chars && !req.MaxLineWidth {
		req.Lines, req.Words, req.Bytes = true, true, true
	}

	operands := fs.Args()
	implicitStdin := len(operands) == 0 && *files0From == ""
	if *files0From != "" {
		if len(operands) > 0 {
			return UsageErrorf(hc, c.Name(),
				"extra operand %q\nfile operands cannot be combined with --files0-from", operands[0])
		}
		var err error
		operands, err = c.readNameList(hc, *files0From)
		if err != nil {
			ReportFileError(hc.Stderr, c.Name(), *files0From, err)
			return Status(1)
		}
	}

	utf8Mode := locale.UTF8(hc.LookupEnv)

	var (
		rows          []wcRow
		total         scan.Counts
		sawNonRegular bool
	)
	runErr := ForEachInput(hc, c.Name(), operands, func(in Input) error {
		counts, regular, err := c.count(in, req, utf8Mode)
		if err != nil {
			return err
		}
		if in.Stdin() || !regular {
			sawNonRegular = true
		}

		name := in.Name
		if implicitStdin {
			name = ""
		}
		rows = append(rows, wcRow{counts: counts, name: name})
		total.Add(counts)
		return nil
	})

	printTotal := false
	switch *totalWhen {
	case "auto":
		printTotal = len(rows) > 1
	case "always", "only":
		printTotal = true
	}

	width := c.fieldWidth(req, rows, total, printTotal, sawNonRegular)

	out := ioext.NewWriter(hc.Stdout)
	if *totalWhen != "only" {
		for _, row := range rows {
			c.writeRow(out, req, row.counts, row.name, width)
		}
	}
	if printTotal {
		label := "total"
		if *totalWhen == "only" {
			label = ""
		}
		c.writeRow(out, req, total, label, width)
	}
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

// count tallies one input, using the stat fast path when only the byte count
// is wanted from a regular file.
func (c *wcApplet) count(in Input, req scan.Request, utf8Mode bool) (scan.Counts, bool, error) {
	var size int64
	regular := false
	if in.File != nil {
		size, regular = ioext.RegularFileSize(in.File)
	}

	bytesOnly := req.Bytes && !req.Lines && !req.Words && !req.Chars && !req.MaxLineWidth
	if bytesOnly && regular && !in.Stdin() {
		return scan.Counts{Bytes: uint64(size)}, regular, nil
	}

	s := scan.NewScanner(req, utf8Mode)
	cr := ioext.NewChunkReader(in.R)
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return scan.Counts{}, regular, err
		}
		s.Scan(chunk)
	}
	return s.Finish(), regular, nil
}

// fieldWidth applies the GNU sizing heuristic: wide (7) when any source is
// stdin or not a regular file, otherwise just wide enough for the largest
// value that will be printed.
func (c *wcApplet) fieldWidth(req scan.Request, rows []wcRow, total scan.Counts, printTotal, sawNonRegular bool) int {
	if sawNonRegular {
		return 7
	}
	var values []uint64
	for _, row := range rows {
		values = append(values, c.selected(req, row.counts)...)
	}
	if printTotal {
		values = append(values, c.selected(req, total)...)
	}
	return scan.FieldWidth(values...)
}

// selected extracts the requested counters in the fixed print order:
// newline, word, character, byte, maximum line width.
func (c *wcApplet) selected(req scan.Request, counts scan.Counts) []uint64 {
	var values []uint64
	if req.Lines {
		values = append(values, counts.Lines)
	}
	if req.Words {
		values = append(values, counts.Words)
	}
	if req.Chars {
		values = append(values, counts.Chars)
	}
	if req.Bytes {
		values = append(values, counts.Bytes)
	}
	if req.MaxLineWidth {
		values = append(values, counts.MaxLineWidth)
	}
	return values
}

func (c *wcApplet) writeRow(out *ioext.Writer, req scan.Request, counts scan.Counts, name string, width int) {
	_, _ = out.Write(scan.FormatFields(c.selected(req, counts), width))
	if name != "" {
		_, _ = out.WriteString(" " + name)
	}
	_ = out.WriteByte('\n')
}

// readNameList reads a --files0-from list: NUL-terminated names from a file,
// or from stdin when the operand is -.
func (c *wcApplet) readNameList(hc *IOContext, from string) ([]string, error) {
	var data []byte
	var err error
	if from == "-" {
		data, err = ioext.ReadAll(hc.Stdin)
	} else {
		var f *os.File
		f, err = os.Open(from)
		if err == nil {
			data, err = ioext.ReadAll(f)
			_ = f.Close()
		}
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, name := range bytes.Split(data, []byte{0}) {
		if len(name) > 0 {
			names = append(names, string(name))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no input file names")
	}
	return names, nil
}
