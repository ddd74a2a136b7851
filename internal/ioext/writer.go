// SPDX-License-Identifier: MPL-2.0

package ioext

import (
	"errors"
	"io"
	"syscall"
)

// ErrPipeClosed reports that the downstream consumer has gone away. Callers
// treat it as a clean end of output rather than a failure; only yes turns it
// into a user-visible diagnostic.
var ErrPipeClosed = errors.New("standard output: broken pipe")

// Writer accumulates output into a fixed buffer and flushes it in ChunkSize
// units. Partial writes are retried with an advanced offset and interrupted
// writes are retried in place. Once the pipe is gone every further call
// returns ErrPipeClosed without touching the stream again.
type Writer struct {
	w      io.Writer
	buf    []byte
	n      int
	closed bool
}

// NewWriter returns a Writer in front of w with the default buffer size.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, ChunkSize)}
}

// Write buffers p, flushing as the buffer fills.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrPipeClosed
	}
	total := len(p)
	for len(p) > 0 {
		if w.n == len(w.buf) {
			if err := w.Flush(); err != nil {
				return total - len(p), err
			}
		}
		copied := copy(w.buf[w.n:], p)
		w.n += copied
		p = p[copied:]
	}
	return total, nil
}

// WriteByte buffers a single byte.
func (w *Writer) WriteByte(b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// WriteString buffers s.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush drains the buffer to the underlying stream.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrPipeClosed
	}
	off := 0
	for off < w.n {
		n, err := w.w.Write(w.buf[off:w.n])
		off += n
		if err == nil {
			continue
		}
		if errors.Is(err, syscall.EINTR) {
			continue
		}
		if errors.Is(err, syscall.EPIPE) {
			w.closed = true
			w.n = 0
			return ErrPipeClosed
		}
		// Keep the unwritten tail so a retrying caller does not lose data.
		w.n = copy(w.buf, w.buf[off:w.n])
		return err
	}
	w.n = 0
	return nil
}
