// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import "fmt"

// A SyntaxError reports generically malformed input: an illegal control
// byte, an unknown escape, a malformed number, or any other grammar
// violation not covered by a more specific error type.
type SyntaxError struct {
	Src string // operation/state that detected the problem
	Off int64  // byte offset within the current Write call
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("njson: syntax error in %s at offset %d", e.Src, e.Off)
}

// An IncompleteError reports that Finish (or a Write with more == false)
// was reached in the middle of a construct: an open string, an
// unterminated object or array, a number with no digits after 'e', and so
// on.
type IncompleteError struct {
	Src string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("njson: incomplete input in %s", e.Src)
}

// A DepthError reports that the nesting of objects and arrays exceeded
// ParseOptions.MaxDepth. It is always fatal: the Parser that produced it
// must not be reused without a Reset.
type DepthError struct {
	MaxDepth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("njson: nesting exceeds max depth %d", e.MaxDepth)
}

// OverflowKind distinguishes the several things that can be "too large".
type OverflowKind int

const (
	_ OverflowKind = iota
	OverflowExponent
	OverflowArray
	OverflowObject
	OverflowString
)

func (k OverflowKind) String() string {
	switch k {
	case OverflowExponent:
		return "exponent_overflow"
	case OverflowArray:
		return "array_too_large"
	case OverflowObject:
		return "object_too_large"
	case OverflowString:
		return "string_too_large"
	default:
		return "overflow"
	}
}

// An OverflowError reports an exponent or container-size limit exceeded.
type OverflowError struct {
	Kind  OverflowKind
	Limit int64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("njson: %s (limit %d)", e.Kind, e.Limit)
}

// A SurrogateError reports a malformed \uXXXX surrogate sequence: a low
// surrogate with no preceding high surrogate, or a high surrogate not
// followed by a low one.
type SurrogateError struct {
	Src string
}

func (e *SurrogateError) Error() string {
	return fmt.Sprintf("njson: illegal surrogate sequence (%s)", e.Src)
}

// A KindError reports that a typed Value accessor was invoked against a
// Value of the wrong Kind.
type KindError struct {
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("njson: not_%s (value is %s)", e.Want, e.Got)
}

// A HandlerError wraps a handler method returning false, which the
// parser reports as an error and uses to halt consumption immediately.
type HandlerError struct {
	Event string
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("njson: handler halted parsing at %s", e.Event)
}
