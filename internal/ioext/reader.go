// SPDX-License-Identifier: MPL-2.0

// Package ioext supplies the shared I/O plumbing for the utilities: a
// chunked reader with interruption retry, a fixed-buffer writer that treats a
// broken pipe as normal end of output, and a read-only mmap helper for
// whole-file consumers.
package ioext

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// ChunkSize is the block size for the read and write loops.
const ChunkSize = 64 * 1024

// ChunkReader pulls fixed-size blocks from a stream. Interrupted reads are
// retried transparently; callers only ever observe data, io.EOF, or a real
// error.
type ChunkReader struct {
	r   io.Reader
	buf []byte
}

// NewChunkReader returns a ChunkReader over r with the default block size.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{r: r, buf: make([]byte, ChunkSize)}
}

// Next returns the next block of the stream. The returned slice is only valid
// until the following call. At end of stream it returns (nil, io.EOF).
func (c *ChunkReader) Next() ([]byte, error) {
	for {
		n, err := c.r.Read(c.buf)
		if n > 0 {
			// Defer a same-call error (including EOF) to the next Next, as
			// io.Reader permits returning both data and an error.
			return c.buf[:n], nil
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return nil, err
		}
	}
}

// ReadAll buffers the remainder of r. Unlike io.ReadAll it retries
// interrupted reads, so a signal arriving mid-slurp is invisible.
func ReadAll(r io.Reader) ([]byte, error) {
	var data []byte
	cr := NewChunkReader(r)
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		if err != nil {
			return data, err
		}
		data = append(data, chunk...)
	}
}

// RegularFileSize reports the stat size of f when f is a regular file. The
// second result is false for pipes, terminals, and other special files whose
// stat size is meaningless.
func RegularFileSize(f *os.File) (int64, bool) {
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	return info.Size(), true
}
