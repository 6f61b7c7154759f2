// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Number accumulation and narrowing (spec.md §4.F, "Number parsing").

package njson

import "math"

// numState names where inside a number's grammar the accumulator is
// suspended; spec.md §4.F counts "8 states for the integer/decimal
// portion plus 3 for the exponent".
type numState uint8

const (
	numStart       numState = iota // nothing consumed yet; next byte may be '-' or a digit
	numMinusSeen                   // consumed '-', first digit still required
	numLeadZero                    // saw a single leading '0'
	numIntDigits                   // accumulating integer digits after a nonzero leading digit
	numPointSeen                   // just consumed '.', first fraction digit still required
	numFracDigits                  // accumulating fractional digits
	numExpSign                     // just consumed 'e'/'E', awaiting optional sign or first digit
	numExpSignSeen                 // consumed the optional sign, first exponent digit still required
	numExpDigits                   // accumulating exponent digits
)

// mantissaOverflow is the point past which another decimal digit would
// overflow uint64; spec.md §4.F: "digits extend the mantissa while it
// stays below the overflow threshold".
const mantissaOverflow = (math.MaxUint64 - 9) / 10

// numAccum accumulates a JSON number across however many Write calls it
// takes to see every byte, per spec.md §4.F:
//
//	mantissa uint64, exp10 int32, is_negative bool, is_fraction bool, digit_bias int32
type numAccum struct {
	state       numState
	negative    bool
	mantissa    uint64
	digitBias   int32 // +1 per extra integer digit once mantissa saturates, -1 per fraction digit kept in mantissa
	sawDigit    bool  // unused: the numState values alone enforce the digit grammar
	sawPoint    bool  // a '.' was consumed: forces double emission regardless of digitBias
	sawExp      bool  // an 'e'/'E' was consumed: forces double emission regardless of digitBias
	exp10       int32
	expNeg      bool
	sawExpDigit bool
}

func (n *numAccum) reset() { *n = numAccum{} }

// feedInt consumes one integer-part digit.
func (n *numAccum) feedInt(d byte) {
	v := uint64(d - '0')
	if n.mantissa < math.MaxUint64/10 || (n.mantissa == math.MaxUint64/10 && v <= math.MaxUint64%10) {
		n.mantissa = n.mantissa*10 + v
	} else {
		n.digitBias++
	}
}

// feedFrac consumes one fractional-part digit.
func (n *numAccum) feedFrac(d byte) {
	v := uint64(d - '0')
	if n.mantissa <= mantissaOverflow {
		n.mantissa = n.mantissa*10 + v
		n.digitBias--
	}
	// Digits beyond the mantissa's precision in the fractional part are
	// dropped: they fall below what float64 could represent anyway.
}

// feedExp consumes one exponent digit, reporting an OverflowError if the
// exponent would exceed int32 (spec.md §4.F: "rejecting overflow beyond
// INT32_MAX with exponent_overflow").
func (n *numAccum) feedExp(d byte) error {
	v := int32(d - '0')
	if n.exp10 > (math.MaxInt32-v)/10 {
		return &OverflowError{Kind: OverflowExponent, Limit: math.MaxInt32}
	}
	n.exp10 = n.exp10*10 + v
	return nil
}

// emit narrows the accumulated number to the smallest representation
// that holds it exactly, per spec.md §4.F's "Final conversion" rules, and
// hands the result to one of the three number event callbacks.
func (n *numAccum) emit(h Handler) bool {
	bias := n.digitBias
	if !n.sawPoint && !n.sawExp && bias == 0 {
		// Integral and within uint64/mantissa precision: try int64 then
		// uint64 before falling back to double.
		if n.negative {
			if n.mantissa <= 1<<63 {
				return h.OnInt64(-int64(n.mantissa))
			}
		} else {
			if n.mantissa <= math.MaxInt64 {
				return h.OnInt64(int64(n.mantissa))
			}
			return h.OnUint64(n.mantissa)
		}
	}
	d := float64(n.mantissa)
	exp := int(bias)
	if n.expNeg {
		exp -= int(n.exp10)
	} else {
		exp += int(n.exp10)
	}
	d *= pow10f(exp)
	if n.negative {
		d = -d
	}
	return h.OnDouble(d)
}

// isNumberTerminator reports whether c can legally follow a complete
// number (i.e. is not itself part of one): whitespace, a container
// delimiter, or end of input.
func isNumberTerminator(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ']', '}':
		return true
	default:
		return false
	}
}

// stepNumber advances the number accumulator over as much of b as forms
// valid number grammar, returning the count of bytes consumed and
// whether the number is now complete (a terminator byte was seen, or —
// when more is false — input ended on a byte that can legally end a
// number). It never consumes the terminator byte itself.
func (p *Parser) stepNumber(b []byte, more bool) (consumed int, done bool, err error) {
	n := &p.num
	i := 0
	for i < len(b) {
		c := b[i]
		switch n.state {
		case numStart:
			switch {
			case c == '-':
				n.negative = true
				n.state = numMinusSeen
				i++
			case c == '0':
				n.state = numLeadZero
				i++
			case c >= '1' && c <= '9':
				n.feedInt(c)
				n.state = numIntDigits
				i++
			default:
				return i, false, &SyntaxError{Src: "number", Off: int64(i)}
			}
		case numMinusSeen:
			switch {
			case c == '0':
				n.state = numLeadZero
				i++
			case c >= '1' && c <= '9':
				n.feedInt(c)
				n.state = numIntDigits
				i++
			default:
				return i, false, &SyntaxError{Src: "number", Off: int64(i)}
			}
		case numLeadZero:
			switch {
			case c == '.':
				n.sawPoint = true
				n.state = numPointSeen
				i++
			case c == 'e' || c == 'E':
				n.sawExp = true
				n.state = numExpSign
				i++
			case isNumberTerminator(c):
				return i, true, nil
			default:
				// A second digit right after a leading zero (e.g. "01")
				// is the leading-zero grammar violation spec.md §4.F
				// calls out explicitly.
				return i, false, &SyntaxError{Src: "number leading zero", Off: int64(i)}
			}
		case numIntDigits:
			switch {
			case c >= '0' && c <= '9':
				n.feedInt(c)
				i++
			case c == '.':
				n.sawPoint = true
				n.state = numPointSeen
				i++
			case c == 'e' || c == 'E':
				n.sawExp = true
				n.state = numExpSign
				i++
			case isNumberTerminator(c):
				return i, true, nil
			default:
				return i, false, &SyntaxError{Src: "number", Off: int64(i)}
			}
		case numPointSeen:
			if c >= '0' && c <= '9' {
				n.feedFrac(c)
				n.state = numFracDigits
				i++
				continue
			}
			return i, false, &SyntaxError{Src: "number empty fraction", Off: int64(i)}
		case numFracDigits:
			switch {
			case c >= '0' && c <= '9':
				n.feedFrac(c)
				i++
			case c == 'e' || c == 'E':
				n.sawExp = true
				n.state = numExpSign
				i++
			case isNumberTerminator(c):
				return i, true, nil
			default:
				return i, false, &SyntaxError{Src: "number", Off: int64(i)}
			}
		case numExpSign:
			switch {
			case c == '+':
				i++
				n.state = numExpSignSeen
			case c == '-':
				n.expNeg = true
				i++
				n.state = numExpSignSeen
			case c >= '0' && c <= '9':
				if err := n.feedExp(c); err != nil {
					return i, false, err
				}
				n.sawExpDigit = true
				n.state = numExpDigits
				i++
			default:
				return i, false, &SyntaxError{Src: "number empty exponent", Off: int64(i)}
			}
		case numExpSignSeen:
			if c >= '0' && c <= '9' {
				if err := n.feedExp(c); err != nil {
					return i, false, err
				}
				n.sawExpDigit = true
				n.state = numExpDigits
				i++
				continue
			}
			return i, false, &SyntaxError{Src: "number empty exponent", Off: int64(i)}
		case numExpDigits:
			switch {
			case c >= '0' && c <= '9':
				if err := n.feedExp(c); err != nil {
					return i, false, err
				}
				i++
			case isNumberTerminator(c):
				return i, true, nil
			default:
				return i, false, &SyntaxError{Src: "number", Off: int64(i)}
			}
		}
	}
	// Input exhausted mid-number. A number is only complete here if we
	// are in a state that is itself a valid ending and the caller told
	// us no more bytes are coming; otherwise the parser must suspend and
	// wait for the next Write.
	if !more {
		switch n.state {
		case numLeadZero, numIntDigits, numFracDigits, numExpDigits:
			return i, true, nil
		default:
			return i, false, &IncompleteError{Src: "number"}
		}
	}
	return i, false, nil
}
