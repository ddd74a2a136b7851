// SPDX-License-Identifier: MPL-2.0

// gocoreutils is a multi-call binary: invoked through a link named after a
// tool it behaves as that tool, invoked under its own name it exposes every
// tool as a subcommand.
package main

import (
	"context"
	"os"
	"path/filepath"

	"gocoreutils/internal/applet"
)

func main() {
	if name := filepath.Base(os.Args[0]); name != "gocoreutils" {
		if _, ok := applet.DefaultRegistry.Lookup(name); ok {
			ctx := applet.WithIO(context.Background(), applet.SystemIO())
			err := applet.DefaultRegistry.Run(ctx, name, os.Args)
			os.Exit(applet.ExitCode(err))
		}
	}
	Execute()
}
