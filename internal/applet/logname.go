// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"fmt"
	"os/user"
)

const lognameHelp = `Usage: logname [OPTION]
Print the user's login name.

  --help     display this help and exit
  --version  output version information and exit
`

// lognameApplet implements the logname utility. Without a utmp login record
// to consult, it answers from the LOGNAME variable and then the password
// database.
type lognameApplet struct{}

// currentUser is swapped out by tests.
var currentUser = user.Current

func init() {
	RegisterDefault(&lognameApplet{})
}

func (c *lognameApplet) Name() string { return "logname" }

func (c *lognameApplet) Synopsis() string {
	return "print the user's login name"
}

func (c *lognameApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	if stop, err := ParseArgs(fs, hc, c.Name(), lognameHelp, args[1:]); stop {
		return err
	}
	if operands := fs.Args(); len(operands) > 0 {
		return UsageErrorf(hc, c.Name(), "extra operand %q", operands[0])
	}

	name := c.loginName(hc)
	if name == "" {
		Reportf(hc.Stderr, c.Name(), "no login name")
		return Status(1)
	}
	_, err := fmt.Fprintf(hc.Stdout, "%s\n", name)
	return err
}

func (c *lognameApplet) loginName(hc *IOContext) string {
	if name, ok := hc.LookupEnv("LOGNAME"); ok && name != "" {
		return name
	}
	if u, err := currentUser(); err == nil {
		return u.Username
	}
	return ""
}
