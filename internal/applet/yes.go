// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"errors"
	"strings"

	"gocoreutils/internal/ioext"
)

const yesHelp = `Usage: yes [STRING]...
  or:  yes OPTION
Repeatedly output a line with all specified STRING(s), or 'y'.

  --help     display this help and exit
  --version  output version information and exit
`

// yesApplet implements the yes utility. Unlike the file-reading tools, yes
// treats a closed output pipe as a failure and says so.
type yesApplet struct{}

func init() {
	RegisterDefault(&yesApplet{})
}

func (c *yesApplet) Name() string { return "yes" }

func (c *yesApplet) Synopsis() string {
	return "repeatedly output a line with the given strings, or 'y'"
}

func (c *yesApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	if stop, err := ParseArgs(fs, hc, c.Name(), yesHelp, args[1:]); stop {
		return err
	}

	line := "y\n"
	if operands := fs.Args(); len(operands) > 0 {
		line = strings.Join(operands, " ") + "\n"
	}

	// Fill a block with whole repetitions so each write syscall carries many
	// lines.
	repeat := 1
	if len(line) < ioext.ChunkSize/2 {
		repeat = ioext.ChunkSize / len(line)
	}
	block := []byte(strings.Repeat(line, repeat))

	out := ioext.NewWriter(hc.Stdout)
	for {
		if err := ctx.Err(); err != nil {
			_ = out.Flush()
			return err
		}
		if _, err := out.Write(block); err != nil {
			return c.outputError(hc, err)
		}
		if err := out.Flush(); err != nil {
			return c.outputError(hc, err)
		}
	}
}

func (c *yesApplet) outputError(hc *IOContext, err error) error {
	if errors.Is(err, ioext.ErrPipeClosed) {
		Reportf(hc.Stderr, c.Name(), "standard output: Broken pipe")
	} else {
		Reportf(hc.Stderr, c.Name(), "standard output: %s", err)
	}
	return Status(1)
}
