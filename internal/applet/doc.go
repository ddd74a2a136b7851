// SPDX-License-Identifier: MPL-2.0

// Package applet provides the framework and implementations for the
// gocoreutils multi-call binary: twelve POSIX/GNU text and system utilities
// sharing one registry, one I/O context, and one streaming engine.
//
// # Applets
//
// Stream processors built on internal/scan and internal/extract:
//   - wc: count lines, words, bytes, characters, and max line width
//   - cut: select byte, character, or field ranges from each line
//   - tac: emit records in reverse order
//   - head: emit the leading lines or bytes
//   - tail: emit the trailing lines or bytes
//   - tr: translate, delete, or squeeze bytes
//   - rev: reverse the characters of each line
//   - md5sum: compute or check MD5 digests
//
// Small single-purpose tools:
//   - yes: repeat a line until the consumer goes away
//   - sleep: pause for a duration
//   - hostid: print the 32-bit host identifier
//   - logname: print the login name
//
// # Execution model
//
// Each applet implements the Applet interface and registers itself during
// package initialization. The command layer dispatches either by subcommand
// name or by the basename of argv[0], so the binary behaves as the named
// tool when hard-linked or symlinked as "wc", "cut", and so on.
//
// I/O streams and environment lookup travel through the context.Context as
// an IOContext, which lets tests inject buffers and fake environments
// without touching process-global state.
//
// # Error contract
//
// Applets report their own diagnostics to stderr in GNU format
// ("<tool>: <file>: <reason>") and signal the process exit status with an
// ExitError. A usage error aborts before any input is read; a per-file error
// is reported and processing continues with the next operand.
package applet
