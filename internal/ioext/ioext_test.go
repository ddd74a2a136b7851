// SPDX-License-Identifier: MPL-2.0

package ioext

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

// flakyReader returns EINTR a few times before each successful read.
type flakyReader struct {
	r       io.Reader
	stumble int
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if f.stumble > 0 {
		f.stumble--
		return 0, syscall.EINTR
	}
	f.stumble = 2
	return f.r.Read(p)
}

func TestChunkReader_RetriesEINTR(t *testing.T) {
	t.Parallel()

	src := &flakyReader{r: strings.NewReader("interrupted but whole"), stumble: 3}
	got, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() returned error: %v", err)
	}
	if string(got) != "interrupted but whole" {
		t.Errorf("ReadAll() = %q", got)
	}
}

func TestChunkReader_EOF(t *testing.T) {
	t.Parallel()

	cr := NewChunkReader(strings.NewReader(""))
	if _, err := cr.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() on empty stream = %v, want io.EOF", err)
	}
}

func TestChunkReader_LargeStream(t *testing.T) {
	t.Parallel()

	input := bytes.Repeat([]byte("0123456789abcdef"), 3*ChunkSize/16)
	cr := NewChunkReader(bytes.NewReader(input))

	var total int
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() returned error: %v", err)
		}
		if len(chunk) == 0 || len(chunk) > ChunkSize {
			t.Fatalf("chunk size %d out of bounds", len(chunk))
		}
		total += len(chunk)
	}
	if total != len(input) {
		t.Errorf("read %d bytes, want %d", total, len(input))
	}
}

// shortWriter accepts at most limit bytes per call, exercising the
// partial-write retry in Flush.
type shortWriter struct {
	buf   bytes.Buffer
	limit int
}

func (s *shortWriter) Write(p []byte) (int, error) {
	if len(p) > s.limit {
		p = p[:s.limit]
	}
	return s.buf.Write(p)
}

func TestWriter_PartialWrites(t *testing.T) {
	t.Parallel()

	dst := &shortWriter{limit: 5}
	w := NewWriter(dst)
	if _, err := w.WriteString("the quick brown fox jumps over the lazy dog"); err != nil {
		t.Fatalf("WriteString() returned error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() returned error: %v", err)
	}
	if got := dst.buf.String(); got != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("output = %q", got)
	}
}

// pipeGoneWriter fails with EPIPE after accepting some bytes.
type pipeGoneWriter struct {
	accepted int
	remain   int
}

func (p *pipeGoneWriter) Write(b []byte) (int, error) {
	if p.remain <= 0 {
		return 0, syscall.EPIPE
	}
	n := min(len(b), p.remain)
	p.remain -= n
	p.accepted += n
	if n < len(b) {
		return n, syscall.EPIPE
	}
	return n, nil
}

func TestWriter_BrokenPipe(t *testing.T) {
	t.Parallel()

	dst := &pipeGoneWriter{remain: 10}
	w := NewWriter(dst)

	if _, err := w.WriteString(strings.Repeat("x", 4*ChunkSize)); !errors.Is(err, ErrPipeClosed) {
		t.Fatalf("WriteString() = %v, want ErrPipeClosed", err)
	}
	// The writer must go quiet, not fail differently, once the pipe is gone.
	if _, err := w.WriteString("more"); !errors.Is(err, ErrPipeClosed) {
		t.Errorf("second WriteString() = %v, want ErrPipeClosed", err)
	}
	if err := w.Flush(); !errors.Is(err, ErrPipeClosed) {
		t.Errorf("Flush() = %v, want ErrPipeClosed", err)
	}
	if dst.accepted != 10 {
		t.Errorf("accepted %d bytes before break, want 10", dst.accepted)
	}
}

func TestWriter_SmallWritesCoalesce(t *testing.T) {
	t.Parallel()

	var dst bytes.Buffer
	w := NewWriter(&dst)
	for i := 0; i < 100; i++ {
		if err := w.WriteByte(byte('a' + i%26)); err != nil {
			t.Fatalf("WriteByte() returned error: %v", err)
		}
	}
	if dst.Len() != 0 {
		t.Errorf("buffer flushed early: %d bytes written", dst.Len())
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() returned error: %v", err)
	}
	if dst.Len() != 100 {
		t.Errorf("wrote %d bytes, want 100", dst.Len())
	}
}

func TestMapFile_RegularFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.txt")
	content := []byte("mapped contents\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	data, release, err := MapFile(f)
	if err != nil {
		t.Fatalf("MapFile() returned error: %v", err)
	}
	defer release()

	if !bytes.Equal(data, content) {
		t.Errorf("MapFile() = %q, want %q", data, content)
	}
}

func TestMapFile_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	data, release, err := MapFile(f)
	if err != nil {
		t.Fatalf("MapFile() returned error: %v", err)
	}
	defer release()
	if len(data) != 0 {
		t.Errorf("MapFile() on empty file = %d bytes", len(data))
	}
}

func TestRegularFileSize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sized")
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	size, ok := RegularFileSize(f)
	if !ok || size != 5 {
		t.Errorf("RegularFileSize() = (%d, %v), want (5, true)", size, ok)
	}
}
