// SPDX-License-Identifier: MPL-2.0

package scan

import "github.com/mattn/go-runewidth"

// Control bytes with dedicated column semantics. Everything else below 0x21
// (plus DEL) is a zero-width non-printable.
const (
	ctrlBackspace = 0x08
	ctrlTab       = 0x09
	ctrlNewline   = 0x0A
	ctrlVTab      = 0x0B
	ctrlFormFeed  = 0x0C
	ctrlCR        = 0x0D
	ctrlSpace     = 0x20
	ctrlDel       = 0x7F
)

// isWordSeparator reports whether b breaks a word run. This is the C-locale
// isspace() set used by wc: space, tab, newline, CR, form feed, vertical tab.
func isWordSeparator(b byte) bool {
	switch b {
	case ctrlSpace, ctrlTab, ctrlNewline, ctrlCR, ctrlFormFeed, ctrlVTab:
		return true
	}
	return false
}

// class describes how one decoded unit affects the scan state.
type class struct {
	// width is the number of display columns the unit occupies.
	width int
	// space breaks a word run.
	space bool
	// wordForming starts or continues a word run. A unit may be neither
	// space nor word-forming (controls, combining marks), in which case it
	// leaves the word state untouched.
	wordForming bool
}

// classifyByte categorizes a single byte in C-locale mode.
func classifyByte(b byte) class {
	switch {
	case b == ctrlSpace:
		return class{width: 1, space: true}
	case isWordSeparator(b):
		// Tab/newline/CR column effects are applied by the scanner; the
		// classifier only conveys "breaks words, no plain width".
		return class{space: true}
	case b > ctrlSpace && b < ctrlDel:
		return class{width: 1, wordForming: true}
	default:
		// Remaining controls, DEL, and (in C locale) high bytes print one
		// column per GNU wc -L, but high bytes still form words.
		if b >= 0x80 {
			return class{width: 1, wordForming: true}
		}
		return class{}
	}
}

// classifyRune categorizes a decoded code point in UTF-8 mode. Non-ASCII
// widths come from runewidth's binary-searched Unicode range tables:
// combining marks and format characters report 0, wide CJK/emoji report 2.
func classifyRune(r rune) class {
	if r <= max1Byte {
		return classifyByte(byte(r))
	}
	if r <= 0x9F {
		// C1 controls: invisible, neither space nor word-forming.
		return class{}
	}
	return class{width: runewidth.RuneWidth(r), wordForming: true}
}
