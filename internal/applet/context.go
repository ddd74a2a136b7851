// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"io"
	"os"

	"gocoreutils/internal/locale"
)

type (
	// IOContext carries an applet's streams and environment. Tests inject
	// buffers and fake environments through it; production code uses
	// SystemIO.
	IOContext struct {
		// Stdin is the tool's standard input.
		Stdin io.Reader
		// Stdout is the tool's standard output.
		Stdout io.Writer
		// Stderr receives diagnostics.
		Stderr io.Writer
		// LookupEnv resolves environment variables (locale detection and
		// logname are the only consumers).
		LookupEnv func(string) (string, bool)
	}

	ioContextKey struct{}
)

// SystemIO returns an IOContext bound to the process streams and
// environment.
func SystemIO() *IOContext {
	return &IOContext{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: locale.EnvLookup(),
	}
}

// WithIO stores an IOContext in ctx.
func WithIO(ctx context.Context, hc *IOContext) context.Context {
	return context.WithValue(ctx, ioContextKey{}, hc)
}

// IOFrom retrieves the IOContext from ctx, falling back to the process
// streams when none was stored.
func IOFrom(ctx context.Context) *IOContext {
	if hc, ok := ctx.Value(ioContextKey{}).(*IOContext); ok {
		return hc
	}
	return SystemIO()
}

// StdinFile returns the IOContext's stdin as an *os.File when it is one,
// which enables the stat and mmap fast paths on redirected input.
func (hc *IOContext) StdinFile() *os.File {
	if f, ok := hc.Stdin.(*os.File); ok {
		return f
	}
	return nil
}
