// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gocoreutils/internal/applet"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	// debug enables debug logging on stderr
	debug bool

	// logger carries dispatch diagnostics; silent unless --debug is given.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.WarnLevel,
	})

	// rootCmd represents the base command when called without a tool name
	rootCmd = &cobra.Command{
		Use:   "gocoreutils",
		Short: "A multi-call binary of common Unix text and system utilities",
		Long: TitleStyle.Render("gocoreutils") + SubtitleStyle.Render(" - common Unix utilities in one binary") + `

gocoreutils bundles a set of classic utilities (wc, cut, head, tail,
tac, tr, rev, md5sum, yes, sleep, hostid, logname) behind a single
executable. Each tool keeps its usual flags and exit conventions.

A tool runs either as a subcommand or through a symlink named after it:

` + CmdStyle.Render("  gocoreutils wc -l notes.txt") + `
` + CmdStyle.Render("  ln -s gocoreutils wc && ./wc -l notes.txt") + `

` + SubtitleStyle.Render("Examples:") + `
  gocoreutils list          List the bundled tools
  gocoreutils cut -d: -f1   Extract the first colon-separated field
  gocoreutils md5sum -c sums.md5`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	for _, name := range applet.DefaultRegistry.Names() {
		rootCmd.AddCommand(appletCommand(name))
	}
}

// appletCommand bridges one applet into cobra. Flag parsing is left entirely
// to the applet so its GNU-style flags and diagnostics are untouched.
func appletCommand(name string) *cobra.Command {
	a, _ := applet.DefaultRegistry.Lookup(name)
	return &cobra.Command{
		Use:                name,
		Short:              a.Synopsis(),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Debug("dispatching applet", "tool", name, "args", len(args))
			ctx := applet.WithIO(cmd.Context(), applet.SystemIO())
			err := a.Run(ctx, append([]string{name}, args...))
			if err != nil {
				// The applet already wrote its diagnostic.
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				logger.Debug("applet failed", "tool", name, "status", applet.ExitCode(err))
			}
			return err
		},
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the root command. It is called by main.main() when the
// binary is not invoked through a tool symlink.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *applet.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
