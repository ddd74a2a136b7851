// SPDX-License-Identifier: MPL-2.0

// Package locale detects whether the character-handling environment selects
// UTF-8 text processing. This is the only environment-driven behavior the
// utilities have: LC_ALL overrides LC_CTYPE, which overrides LANG, and a
// value naming UTF-8 switches the counting engine into multi-byte mode.
// Anything else (including an unset environment) is the byte-oriented
// C locale.
package locale

import (
	"strings"

	"github.com/spf13/viper"
)

// ctypeVars in decreasing precedence, per POSIX locale resolution.
var ctypeVars = [...]string{"LC_ALL", "LC_CTYPE", "LANG"}

// LookupFunc reports an environment variable and whether it is set.
type LookupFunc func(string) (string, bool)

// UTF8 reports whether the environment seen through lookup selects UTF-8
// character handling.
func UTF8(lookup LookupFunc) bool {
	for _, name := range ctypeVars {
		val, ok := lookup(name)
		if !ok || val == "" {
			continue
		}
		norm := strings.ToLower(strings.ReplaceAll(val, "-", ""))
		return strings.Contains(norm, "utf8")
	}
	return false
}

// EnvLookup returns a LookupFunc backed by the process environment, read
// through viper so the whole program resolves variables one way.
func EnvLookup() LookupFunc {
	v := viper.New()
	v.AutomaticEnv()
	return func(name string) (string, bool) {
		val := v.GetString(name)
		return val, val != ""
	}
}
