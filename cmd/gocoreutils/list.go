// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"gocoreutils/internal/applet"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// listCmd prints the bundled tools. Output is styled on a terminal and plain
// when piped, so it stays scriptable.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

		names := applet.DefaultRegistry.Names()
		width := 0
		for _, name := range names {
			if len(name) > width {
				width = len(name)
			}
		}

		for _, name := range names {
			a, _ := applet.DefaultRegistry.Lookup(name)
			if styled {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					CmdStyle.Render(fmt.Sprintf("%-*s", width, name)),
					SubtitleStyle.Render(a.Synopsis()))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, a.Synopsis())
			}
		}
		return nil
	},
}
