// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Configuration records, in dbm.Options' style (a plain struct of named
// fields built up by the caller and passed to a constructor) rather than
// functional options.

package njson

// DefaultMaxDepth is the nesting limit used when ParseOptions.MaxDepth is
// left at zero.
const DefaultMaxDepth = 500

// ParseOptions selects the Parser's optional extensions and limits
// (spec.md §6: "A parse-options record recognises: allow_comments,
// allow_trailing_commas, allow_invalid_utf8, max_depth").
//
// The compatibility promise follows dbm.Options' own doc comment: new
// fields may be added without breaking client code that constructs
// ParseOptions with field names rather than positionally.
type ParseOptions struct {
	// AllowComments permits "//" and "/* */" comments between tokens,
	// reported to the handler via OnCommentPart/OnComment.
	AllowComments bool

	// AllowTrailingCommas permits a single trailing comma before an
	// array's ']' or an object's '}'.
	AllowTrailingCommas bool

	// AllowInvalidUTF8 skips UTF-8 validation inside strings, treating
	// high-bit bytes as opaque rather than failing with a SyntaxError.
	AllowInvalidUTF8 bool

	// MaxDepth bounds object/array nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	maxDepth int // resolved; filled in by NewParser
}

func (o ParseOptions) resolve() ParseOptions {
	if o.MaxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	} else {
		o.maxDepth = o.MaxDepth
	}
	return o
}

// SerializeOptions configures the Serializer. It is presently empty —
// njson only ever writes canonical JSON — but kept as a struct rather
// than removed so it can grow without an API break, the same reasoning
// dbm.Options documents for its own forward-compatibility promise.
type SerializeOptions struct{}
