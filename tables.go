// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Precomputed constant tables consulted by the parser's hot loop. Laid
// out as flat, directly-indexed arrays rather than switches — the same
// "const array, indexed directly" shape dbm/bits.go's byteMask/bitMask
// arrays used (that package has since been removed; see DESIGN.md).

package njson

import "math"

// pow10 holds 10^k for k in [0, 308], the positive half of spec.md §4.F's
// "precomputed table of 10^k for k ∈ [-308, 308]". Negative exponents are
// served by dividing by pow10[-k] rather than doubling the table, since
// float64 division is exact enough here and halves the table's size.
var pow10 [309]float64

func init() {
	pow10[0] = 1
	for i := 1; i < len(pow10); i++ {
		pow10[i] = pow10[i-1] * 10
	}
}

// pow10f returns 10^exp as a float64, falling back to math.Pow for
// magnitudes beyond the precomputed table (spec.md §4.F: "outside that
// range fall back to a library pow").
func pow10f(exp int) float64 {
	if exp >= 0 && exp < len(pow10) {
		return pow10[exp]
	}
	if exp < 0 && -exp < len(pow10) {
		return 1 / pow10[-exp]
	}
	return math.Pow(10, float64(exp))
}

// charClass enumerates the dispatch classes a lead byte of a JSON token
// can fall into; the parser's value-dispatch state (spec.md §4.F: "a
// 256-entry jump table indexed by the first byte of the next token")
// looks this up directly instead of chained if/else.
type charClass uint8

const (
	classInvalid charClass = iota
	classWS                // space, tab, CR, LF
	classObjOpen
	classObjClose
	classArrOpen
	classArrClose
	classQuote
	classComma
	classColon
	classMinus
	classDigit
	classT // true
	classF // false
	classN // null
	classSlash // comment, when enabled
)

var dispatchTable [256]charClass

func init() {
	for i := range dispatchTable {
		dispatchTable[i] = classInvalid
	}
	dispatchTable[' '] = classWS
	dispatchTable['\t'] = classWS
	dispatchTable['\r'] = classWS
	dispatchTable['\n'] = classWS
	dispatchTable['{'] = classObjOpen
	dispatchTable['}'] = classObjClose
	dispatchTable['['] = classArrOpen
	dispatchTable[']'] = classArrClose
	dispatchTable['"'] = classQuote
	dispatchTable[','] = classComma
	dispatchTable[':'] = classColon
	dispatchTable['-'] = classMinus
	for c := '0'; c <= '9'; c++ {
		dispatchTable[c] = classDigit
	}
	dispatchTable['t'] = classT
	dispatchTable['f'] = classF
	dispatchTable['n'] = classN
	dispatchTable['/'] = classSlash
}

// stringFastPathStop marks, for each byte value, whether the unescaped
// fast-run scanner (spec.md §4.F, "string-unescaped") must stop: quote,
// backslash, any control byte, or (when UTF-8 validation is active) any
// byte with the high bit set.
var stringFastPathStop [256]bool

func init() {
	for i := 0; i < 0x20; i++ {
		stringFastPathStop[i] = true
	}
	stringFastPathStop['"'] = true
	stringFastPathStop['\\'] = true
	for i := 0x80; i < 0x100; i++ {
		stringFastPathStop[i] = true
	}
}

// simpleEscape maps the byte following a '\' to its decoded ASCII value
// for the eight single-character escapes; ok is false for anything else
// (in particular 'u', which needs the 6-state \uXXXX sub-machine).
func simpleEscape(c byte) (decoded byte, ok bool) {
	switch c {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

// hexVal returns the value of a hex digit and whether c was one, used by
// the \uXXXX sub-machine; all four nibbles of an escape are validated
// before the escape is accepted (DESIGN.md, open question iii).
func hexVal(c byte) (v int, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
