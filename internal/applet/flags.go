// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Version is the suite version reported by every applet's --version.
const Version = "1.0.0"

// NewFlagSet returns a pflag set configured for applet use: errors are
// returned rather than printed (the applet formats its own usage
// diagnostic), flags keep their declaration order, and interspersed
// operands are permitted as GNU tools allow.
func NewFlagSet(tool string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(tool, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// ParseArgs parses args with fs after attaching the standard --help and
// --version flags. It returns stop=true when the invocation is already
// complete: help or version text was printed, or a usage error was reported
// (carried in err). Applets must not touch any input once stop is true.
func ParseArgs(fs *pflag.FlagSet, hc *IOContext, tool, helpText string, args []string) (bool, error) {
	help := fs.Bool("help", false, "display this help and exit")
	version := fs.Bool("version", false, "output version information and exit")

	if err := fs.Parse(args); err != nil {
		return true, UsageErrorf(hc, tool, "%s", err)
	}
	if *help {
		fmt.Fprint(hc.Stdout, helpText)
		return true, nil
	}
	if *version {
		fmt.Fprintf(hc.Stdout, "%s (gocoreutils) %s\n", tool, Version)
		return true, nil
	}
	return false, nil
}
