// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// runApplet executes an applet with injected streams and environment and
// returns what it wrote and its exit status.
func runApplet(t *testing.T, name string, args []string, stdin string, env map[string]string) (string, string, int) {
	t.Helper()

	a, ok := DefaultRegistry.Lookup(name)
	if !ok {
		t.Fatalf("applet %q is not registered", name)
	}

	var stdout, stderr bytes.Buffer
	hc := &IOContext{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
	err := a.Run(WithIO(context.Background(), hc), append([]string{name}, args...))
	return stdout.String(), stderr.String(), ExitCode(err)
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"cut", "head", "hostid", "logname", "md5sum", "rev",
		"sleep", "tac", "tail", "tr", "wc", "yes",
	} {
		if _, ok := DefaultRegistry.Lookup(name); !ok {
			t.Errorf("Lookup(%q) = false, want registered", name)
		}
	}
	if _, ok := DefaultRegistry.Lookup("nope"); ok {
		t.Error("Lookup(\"nope\") = true, want false")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	t.Parallel()

	names := DefaultRegistry.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&revApplet{})
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register did not panic")
		}
	}()
	r.Register(&revApplet{})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{Status(1), 1},
		{Status(2), 2},
		{errors.New("anything else"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
	if Status(0) != nil {
		t.Error("Status(0) != nil")
	}
}

func TestReasonCapitalized(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ReportFileError(&buf, "wc", "missing.txt", errors.New("no such file or directory"))
	want := "wc: missing.txt: No such file or directory\n"
	if buf.String() != want {
		t.Errorf("ReportFileError wrote %q, want %q", buf.String(), want)
	}
}

func TestUsageErrorHint(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	hc := &IOContext{Stderr: &stderr}
	err := UsageErrorf(hc, "cut", "bad flag")
	if ExitCode(err) != 1 {
		t.Fatalf("exit = %d, want 1", ExitCode(err))
	}
	want := "cut: bad flag\nTry 'cut --help' for more information.\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestForEachInputMissingFile(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	hc := &IOContext{Stdin: strings.NewReader(""), Stderr: &stderr}

	var seen []string
	err := ForEachInput(hc, "wc", []string{"/nonexistent/a", "-"}, func(in Input) error {
		seen = append(seen, in.Name)
		return nil
	})
	if ExitCode(err) != 1 {
		t.Errorf("exit = %d, want 1", ExitCode(err))
	}
	if len(seen) != 1 || seen[0] != "-" {
		t.Errorf("processed %v, want just stdin after the failed open", seen)
	}
	if !strings.Contains(stderr.String(), "/nonexistent/a") {
		t.Errorf("stderr %q does not mention the failed operand", stderr.String())
	}
}

func TestForEachInputDefaultsToStdin(t *testing.T) {
	t.Parallel()

	hc := &IOContext{Stdin: strings.NewReader("data")}
	var got string
	err := ForEachInput(hc, "wc", nil, func(in Input) error {
		if !in.Stdin() {
			t.Errorf("in.Stdin() = false for default input")
		}
		b, err := io.ReadAll(in.R)
		got = string(b)
		return err
	})
	if err != nil {
		t.Fatalf("ForEachInput: %v", err)
	}
	if got != "data" {
		t.Errorf("read %q from default stdin, want %q", got, "data")
	}
}

func TestHelpAndVersion(t *testing.T) {
	t.Parallel()

	stdout, _, code := runApplet(t, "wc", []string{"--help"}, "", nil)
	if code != 0 || !strings.Contains(stdout, "Usage: wc") {
		t.Errorf("--help: code=%d stdout=%q", code, stdout)
	}

	stdout, _, code = runApplet(t, "wc", []string{"--version"}, "", nil)
	if code != 0 || !strings.Contains(stdout, "wc (gocoreutils)") {
		t.Errorf("--version: code=%d stdout=%q", code, stdout)
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		value uint64
		minus bool
		plus  bool
		ok    bool
	}{
		{"10", 10, false, false, true},
		{"0", 0, false, false, true},
		{"-5", 5, true, false, true},
		{"+3", 3, false, true, true},
		{"1K", 1024, false, false, true},
		{"2kB", 2000, false, false, true},
		{"1M", 1024 * 1024, false, false, true},
		{"1MiB", 1024 * 1024, false, false, true},
		{"3b", 1536, false, false, true},
		{"-2K", 2048, true, false, true},
		{"", 0, false, false, false},
		{"-", 0, true, false, false},
		{"abc", 0, false, false, false},
		{"5x", 0, false, false, false},
	}
	for _, tt := range tests {
		spec, err := parseCount(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseCount(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if !tt.ok {
			continue
		}
		if spec.Value != tt.value || spec.Minus != tt.minus || spec.Plus != tt.plus {
			t.Errorf("parseCount(%q) = %+v, want value=%d minus=%v plus=%v",
				tt.in, spec, tt.value, tt.minus, tt.plus)
		}
	}
}
