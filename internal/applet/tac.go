// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"errors"

	"gocoreutils/internal/extract"
	"gocoreutils/internal/ioext"
)

const tacHelp = `Usage: tac [OPTION]... [FILE]...
Write each FILE to standard output, last line first.

With no FILE, or when FILE is -, read standard input.

Mandatory arguments to long options are mandatory for short options too.
  -b, --before             attach the separator before instead of after
  -s, --separator=STRING   use STRING as the separator instead of newline
      --help     display this help and exit
      --version  output version information and exit
`

// tacApplet implements the tac utility on the extract engine. Whole inputs
// are materialized before reversal: regular files are mapped, everything
// else is slurped.
type tacApplet struct{}

func init() {
	RegisterDefault(&tacApplet{})
}

func (c *tacApplet) Name() string { return "tac" }

func (c *tacApplet) Synopsis() string {
	return "write each file to standard output, last line first"
}

func (c *tacApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	before := fs.BoolP("before", "b", false, "attach the separator before the record")
	separator := fs.StringP("separator", "s", "\n", "record separator")

	if stop, err := ParseArgs(fs, hc, c.Name(), tacHelp, args[1:]); stop {
		return err
	}
	if *separator == "" {
		Reportf(hc.Stderr, c.Name(), "separator cannot be empty")
		return Status(1)
	}
	sep := []byte(*separator)

	out := ioext.NewWriter(hc.Stdout)
	runErr := ForEachInput(hc, c.Name(), fs.Args(), func(in Input) error {
		data, release, err := c.slurp(in)
		if err != nil {
			return err
		}
		defer release()
		return extract.Reverse(data, sep, *before, out)
	})
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

// slurp brings one whole input into memory. Regular files are memory-mapped
// so reversal never copies them; pipes and other streams are read to the
// end.
func (c *tacApplet) slurp(in Input) ([]byte, func(), error) {
	if in.File != nil && !in.Stdin() {
		if _, regular := ioext.RegularFileSize(in.File); regular {
			return ioext.MapFile(in.File)
		}
	}
	data, err := ioext.ReadAll(in.R)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
