// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"strings"
	"testing"
)

func TestTrTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"simple", []string{"abc", "xyz"}, "aabbcc", "xxyyzz"},
		{"range to range", []string{"a-z", "A-Z"}, "hello, world", "HELLO, WORLD"},
		{"class to class", []string{"[:lower:]", "[:upper:]"}, "MiXeD", "MIXED"},
		{"set2 extended with last", []string{"abc", "x"}, "cab", "xxx"},
		{"escape sequences", []string{"\\n", "\\t"}, "a\nb\n", "a\tb\t"},
		{"octal escape", []string{"\\101", "\\102"}, "AaA", "BaB"},
		{"fill construct", []string{"abc", "[x*]"}, "abc", "xxx"},
		{"explicit repeat", []string{"abc", "[x*2]z"}, "abc", "xxz"},
		{"truncate set1", []string{"-t", "abc", "x"}, "abc", "xbc"},
		{"complement translate", []string{"-c", "a", "z"}, "abc", "azz"},
		{"equivalence class", []string{"[=a=]", "b"}, "abc", "bbc"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stdout, stderr, code := runApplet(t, "tr", tt.args, tt.stdin, nil)
			if code != 0 || stderr != "" {
				t.Fatalf("code=%d stderr=%q", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestTrDeleteAndSqueeze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"delete", []string{"-d", "aeiou"}, "education", "dctn"},
		{"delete class", []string{"-d", "[:digit:]"}, "a1b22c", "abc"},
		{"delete complement", []string{"-cd", "0-9"}, "a1b2c3\n", "123"},
		{"squeeze", []string{"-s", "l"}, "hello llama", "helo lama"},
		{"squeeze all repeats", []string{"-s", "a-z"}, "aabbcc ab", "abc ab"},
		{"translate then squeeze", []string{"-s", "abc", "x"}, "abcabc", "x"},
		{"delete then squeeze", []string{"-ds", "a", "b"}, "abbba", "b"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stdout, _, code := runApplet(t, "tr", tt.args, tt.stdin, nil)
			if code != 0 {
				t.Fatalf("code = %d", code)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestTrSqueezeAcrossChunks(t *testing.T) {
	t.Parallel()

	// A run longer than one read chunk must still squeeze to one byte.
	in := strings.Repeat("a", 200000) + "b"
	stdout, _, code := runApplet(t, "tr", []string{"-s", "a"}, in, nil)
	if code != 0 {
		t.Fatalf("code = %d", code)
	}
	if stdout != "ab" {
		t.Errorf("stdout = %q, want %q", stdout, "ab")
	}
}

func TestTrUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no operands", nil, "missing operand"},
		{"translate needs two", []string{"abc"}, "Two strings must be given when translating."},
		{"delete takes one", []string{"-d", "a", "b"}, "Only one string may be given when deleting"},
		{"three operands", []string{"a", "b", "c"}, "extra operand"},
		{"reversed range", []string{"z-a", "b"}, "range-endpoints of 'z-a' are in reverse collating sequence order"},
		{"bad class", []string{"[:bogus:]", "x"}, "invalid character class"},
		{"repeat in string1", []string{"[a*3]", "xyz"}, "the [c*] repeat construct may not appear in string1"},
		{"two fills", []string{"abc", "[x*][y*]"}, "only one [c*] repeat construct may appear in string2"},
		{"empty string2", []string{"abc", ""}, "when not truncating set1, string2 must be non-empty"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, stderr, code := runApplet(t, "tr", tt.args, "input", nil)
			if code != 1 {
				t.Errorf("code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.msg) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.msg)
			}
		})
	}
}

func TestParseTrSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec string
		want string
	}{
		{"abc", "abc"},
		{"a-e", "abcde"},
		{"a-cx-z", "abcxyz"},
		{"-a", "-a"},
		{"a-", "a-"},
		{"\\\\", "\\"},
		{"\\t\\n", "\t\n"},
		{"\\060-\\062", "012"},
		{"[:blank:]", "\t "},
		{"[abc", "[abc"},
		{"a[]b", "a[]b"},
	}
	for _, tt := range tests {
		got, err := parseTrSet(tt.spec, false, 0)
		if err != nil {
			t.Errorf("parseTrSet(%q) error: %v", tt.spec, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("parseTrSet(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}
