// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bufio"
	"context"
	"errors"
	"io"

	"gocoreutils/internal/ioext"
	"gocoreutils/internal/scan"
)

const revHelp = `Usage: rev [OPTION]... [FILE]...
Reverse the order of characters in every line.

With no FILE, or when FILE is -, read standard input.

  --help     display this help and exit
  --version  output version information and exit
`

// revApplet implements the rev utility. Reversal works on character units,
// so multi-byte sequences survive intact; bytes that do not form a valid
// sequence are reversed individually.
type revApplet struct{}

func init() {
	RegisterDefault(&revApplet{})
}

func (c *revApplet) Name() string { return "rev" }

func (c *revApplet) Synopsis() string {
	return "reverse the order of characters in every line"
}

func (c *revApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	if stop, err := ParseArgs(fs, hc, c.Name(), revHelp, args[1:]); stop {
		return err
	}

	out := ioext.NewWriter(hc.Stdout)
	runErr := ForEachInput(hc, c.Name(), fs.Args(), func(in Input) error {
		reader := bufio.NewReaderSize(in.R, ioext.ChunkSize)
		for {
			line, readErr := reader.ReadBytes('\n')
			if len(line) > 0 {
				terminated := line[len(line)-1] == '\n'
				if terminated {
					line = line[:len(line)-1]
				}
				if _, err := out.Write(reverseRunes(line)); err != nil {
					return err
				}
				if terminated {
					if err := out.WriteByte('\n'); err != nil {
						return err
					}
				}
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					return nil
				}
				return readErr
			}
		}
	})
	if err := out.Flush(); err != nil && !errors.Is(err, ioext.ErrPipeClosed) {
		return err
	}
	return runErr
}

// reverseRunes returns line with its character units in reverse order. The
// bytes inside each unit keep their encoding order.
func reverseRunes(line []byte) []byte {
	reversed := make([]byte, len(line))
	pos := len(line)
	for i := 0; i < len(line); {
		_, size := scan.DecodeRune(line[i:])
		pos -= size
		copy(reversed[pos:], line[i:i+size])
		i += size
	}
	return reversed
}
