// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

const sleepHelp = `Usage: sleep NUMBER[SUFFIX]...
  or:  sleep OPTION
Pause for NUMBER seconds, where NUMBER is an integer or floating-point.
SUFFIX may be 's','m','h', or 'd', for seconds, minutes, hours, days.
With multiple arguments, pause for the sum of their values.

  --help     display this help and exit
  --version  output version information and exit
`

// sleepApplet implements the sleep utility.
type sleepApplet struct{}

func init() {
	RegisterDefault(&sleepApplet{})
}

func (c *sleepApplet) Name() string { return "sleep" }

func (c *sleepApplet) Synopsis() string {
	return "pause for the given number of seconds"
}

func (c *sleepApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	if stop, err := ParseArgs(fs, hc, c.Name(), sleepHelp, args[1:]); stop {
		return err
	}

	operands := fs.Args()
	if len(operands) == 0 {
		return UsageErrorf(hc, c.Name(), "missing operand")
	}

	total := 0.0
	failed := false
	for _, operand := range operands {
		seconds, err := parseInterval(operand)
		if err != nil {
			Reportf(hc.Stderr, c.Name(), "invalid time interval %q", operand)
			failed = true
			continue
		}
		total += seconds
	}
	if failed {
		fmt.Fprintf(hc.Stderr, "Try '%s --help' for more information.\n", c.Name())
		return Status(1)
	}

	return c.pause(ctx, total)
}

// pause blocks for the given number of seconds, forever when the sum is
// infinite, and returns early if the context is canceled.
func (c *sleepApplet) pause(ctx context.Context, seconds float64) error {
	if math.IsInf(seconds, 1) {
		<-ctx.Done()
		return ctx.Err()
	}
	if seconds <= 0 {
		return nil
	}

	d := time.Duration(seconds * float64(time.Second))
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseInterval parses one sleep operand: a nonnegative decimal number,
// "inf" or "infinity", with an optional s/m/h/d suffix.
func parseInterval(s string) (float64, error) {
	scale := 1.0
	if len(s) > 0 {
		switch s[len(s)-1] {
		case 's':
			s = s[:len(s)-1]
		case 'm':
			scale = 60
			s = s[:len(s)-1]
		case 'h':
			scale = 60 * 60
			s = s[:len(s)-1]
		case 'd':
			scale = 24 * 60 * 60
			s = s[:len(s)-1]
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 || math.IsNaN(value) {
		return 0, strconv.ErrSyntax
	}
	return value * scale, nil
}
