// SPDX-License-Identifier: MPL-2.0

package applet

import "context"

// Applet is one utility of the multi-call binary.
type Applet interface {
	// Name returns the tool name ("wc", "cut", ...), which is also the
	// argv[0] basename the dispatcher recognizes.
	Name() string

	// Synopsis returns a one-line description for the applet listing.
	Synopsis() string

	// Run executes the tool. args[0] is the tool name, args[1:] the
	// command-line arguments. Diagnostics go to the IOContext's stderr; a
	// nonzero exit status is returned as an *ExitError.
	Run(ctx context.Context, args []string) error
}
