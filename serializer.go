// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The Serializer component (spec.md §4.G): writes canonical JSON from a
// Value tree through a pull-style Read, resuming between any two output
// bytes. Grounded on original_source/include/boost/json/serializer.hpp
// for the explicit traversal-stack shape, and on lldb/xact.go's nested
// counters for "a small stack of (kind, cursor) frames, no recursion"
// bookkeeping style carried over from the parser.

package njson

import "strconv"

var (
	nullBytes         = []byte("null")
	trueBytes         = []byte("true")
	falseBytes        = []byte("false")
	openBraceBytes    = []byte{'{'}
	closeBraceBytes   = []byte{'}'}
	openBracketBytes  = []byte{'['}
	closeBracketBytes = []byte{']'}
	commaBytes        = []byte{','}
	colonBytes        = []byte{':'}
)

// strWriteKind distinguishes whether the active string write is an
// object's key (which, once finished, is followed by a colon and the
// key's value, without advancing the frame's child index) or a value
// (which, once finished, is a complete child in its own right).
type strWriteKind uint8

const (
	strWriteValue strWriteKind = iota
	strWriteKey
)

// stringWriter emits one String's canonical JSON representation —
// opening quote, then alternating maximal unescaped runs and single
// escapes, then closing quote — across however many next calls it
// takes, per spec.md §4.G's "Strings on the write side". Unescaped runs
// alias the source String's own storage rather than copying.
type stringWriter struct {
	src    []byte
	pos    int
	state  uint8 // 0=need open quote, 1=scanning body, 2=need close quote, 3=done
	escBuf [6]byte
}

func (w *stringWriter) reset(src []byte) {
	*w = stringWriter{src: src}
}

// needsEscape reports whether c must be escaped in canonical output:
// the quote, the backslash, or any control byte (spec.md §4.G: "strings
// escape only what RFC 7159 requires").
func needsEscape(c byte) bool {
	return c == '"' || c == '\\' || c < 0x20
}

const hexDigits = "0123456789abcdef"

// writeEscape writes c's escape sequence into buf, returning its length.
// The quote and backslash get their two-byte forms; every other
// escaped byte (always a control character here) is written as the
// canonical \u00XX form rather than a named shorthand like \n, matching
// spec.md §4.G's canonical-form wording literally.
func writeEscape(buf []byte, c byte) int {
	switch c {
	case '"':
		buf[0], buf[1] = '\\', '"'
		return 2
	case '\\':
		buf[0], buf[1] = '\\', '\\'
		return 2
	default:
		buf[0], buf[1], buf[2], buf[3] = '\\', 'u', '0', '0'
		buf[4] = hexDigits[c>>4]
		buf[5] = hexDigits[c&0xF]
		return 6
	}
}

// next returns the next chunk of w's canonical representation, and
// whether w is now fully emitted (chunk is nil exactly when done is
// true). It never returns an empty, non-final chunk.
func (w *stringWriter) next() (chunk []byte, done bool) {
	switch w.state {
	case 0:
		w.state = 1
		return []byte{'"'}, false
	case 1:
		b := w.src
		start := w.pos
		for w.pos < len(b) && !needsEscape(b[w.pos]) {
			w.pos++
		}
		if w.pos > start {
			return b[start:w.pos], false
		}
		if w.pos >= len(b) {
			w.state = 2
			return w.next()
		}
		c := b[w.pos]
		w.pos++
		n := writeEscape(w.escBuf[:], c)
		return w.escBuf[:n], false
	case 2:
		w.state = 3
		return []byte{'"'}, false
	default:
		return nil, true
	}
}

// serFrame is one level of the Serializer's explicit traversal stack
// (spec.md §4.G, "Resumption": "an explicit traversal stack of (node,
// sub-state, cursor) frames"). sub's meaning depends on kind:
//
//	array:  0 = decide close/comma/value, 1 = emit a value
//	object: 0 = decide close/comma/key, 1 = emit key, 2 = emit colon,
//	        3 = emit value
type serFrame struct {
	kind builderKind
	arr  *Array
	obj  *Object
	idx  int
	sub  int
}

// Serializer writes canonical JSON from a Value tree. The zero
// Serializer is not usable; construct one with NewSerializer.
type Serializer struct {
	opts    SerializeOptions
	root    Value
	stack   []serFrame
	str     stringWriter
	strKind strWriteKind
	strOn   bool
	numBuf  [32]byte
	pending []byte

	started bool
	done    bool
}

// NewSerializer returns a Serializer that writes root as canonical JSON.
func NewSerializer(root Value, opts SerializeOptions) *Serializer {
	sr := &Serializer{opts: opts}
	sr.Reset(root)
	return sr
}

// Reset points sr at a new root, discarding any in-progress output.
func (sr *Serializer) Reset(root Value) {
	opts := sr.opts
	*sr = Serializer{opts: opts, root: root}
}

// Done reports whether every byte of the canonical output has been
// produced and already returned by Read.
func (sr *Serializer) Done() bool { return sr.done && len(sr.pending) == 0 }

// Read writes as much of the canonical JSON encoding into output as
// fits, returning the number of bytes written. Call it repeatedly,
// growing or reusing output, until Done reports true.
func (sr *Serializer) Read(output []byte) (n int) {
	for n < len(output) {
		if len(sr.pending) == 0 {
			if sr.done {
				break
			}
			sr.step()
			continue
		}
		c := copy(output[n:], sr.pending)
		n += c
		sr.pending = sr.pending[c:]
	}
	return n
}

func (sr *Serializer) top() *serFrame { return &sr.stack[len(sr.stack)-1] }

// afterPrimitive records that the value currently being emitted (a
// literal, number, or — via the strOn-done path — a string) has fully
// been committed to sr.pending, advancing whichever frame it was a
// child of. A bare top-level primitive with no enclosing frame finishes
// the whole document.
func (sr *Serializer) afterPrimitive() {
	if len(sr.stack) == 0 {
		sr.done = true
		return
	}
	f := sr.top()
	f.idx++
	f.sub = 0
}

// popChildFrame closes the frame at the top of the stack (its closing
// bracket/brace is already in sr.pending) and advances its parent, or
// finishes the document if it had none.
func (sr *Serializer) popChildFrame() {
	sr.stack = sr.stack[:len(sr.stack)-1]
	if len(sr.stack) == 0 {
		sr.done = true
		return
	}
	f := sr.top()
	f.idx++
	f.sub = 0
}

// emitValue starts emitting v: a container pushes a frame and stages
// its opening bracket; a string starts the string writer; a primitive
// formats directly into pending and immediately reports itself
// complete via afterPrimitive, since nothing further depends on when
// its bytes actually leave Read.
func (sr *Serializer) emitValue(v Value) {
	switch v.Kind() {
	case KindNull:
		sr.pending = nullBytes
		sr.afterPrimitive()
	case KindBool:
		if v.Bool() {
			sr.pending = trueBytes
		} else {
			sr.pending = falseBytes
		}
		sr.afterPrimitive()
	case KindInt64:
		sr.pending = strconv.AppendInt(sr.numBuf[:0], v.Int64(), 10)
		sr.afterPrimitive()
	case KindUint64:
		sr.pending = strconv.AppendUint(sr.numBuf[:0], v.Uint64(), 10)
		sr.afterPrimitive()
	case KindDouble:
		sr.pending = strconv.AppendFloat(sr.numBuf[:0], v.Double(), 'g', -1, 64)
		sr.afterPrimitive()
	case KindString:
		sr.str.reset(v.Str().Bytes())
		sr.strKind = strWriteValue
		sr.strOn = true
		sr.pending, _ = sr.str.next()
	case KindArray:
		sr.stack = append(sr.stack, serFrame{kind: builderArray, arr: v.Arr()})
		sr.pending = openBracketBytes
	case KindObject:
		sr.stack = append(sr.stack, serFrame{kind: builderObject, obj: v.Obj()})
		sr.pending = openBraceBytes
	}
}

// step advances the traversal until it has produced at least one byte
// of pending output or the document is entirely done.
func (sr *Serializer) step() {
	for {
		if sr.strOn {
			chunk, done := sr.str.next()
			if !done {
				sr.pending = chunk
				return
			}
			sr.strOn = false
			if sr.strKind == strWriteKey {
				sr.top().sub = 2
				continue
			}
			sr.afterPrimitive()
			continue
		}

		if len(sr.stack) == 0 {
			if !sr.started {
				sr.started = true
				sr.emitValue(sr.root)
				if len(sr.pending) > 0 || sr.strOn {
					return
				}
				continue
			}
			sr.done = true
			return
		}

		f := sr.top()
		switch f.kind {
		case builderArray:
			switch f.sub {
			case 0:
				if f.idx >= f.arr.Len() {
					sr.pending = closeBracketBytes
					sr.popChildFrame()
					return
				}
				if f.idx > 0 {
					sr.pending = commaBytes
					f.sub = 1
					return
				}
				f.sub = 1
			case 1:
				sr.emitValue(*f.arr.At(f.idx))
				if len(sr.pending) > 0 || sr.strOn {
					return
				}
			}

		case builderObject:
			switch f.sub {
			case 0:
				if f.idx >= f.obj.Len() {
					sr.pending = closeBraceBytes
					sr.popChildFrame()
					return
				}
				if f.idx > 0 {
					sr.pending = commaBytes
					f.sub = 1
					return
				}
				f.sub = 1
			case 1:
				sr.str.reset(f.obj.KeyAt(f.idx))
				sr.strKind = strWriteKey
				sr.strOn = true
				chunk, _ := sr.str.next()
				sr.pending = chunk
				return
			case 2:
				sr.pending = colonBytes
				f.sub = 3
				return
			case 3:
				sr.emitValue(*f.obj.ValueAt(f.idx))
				if len(sr.pending) > 0 || sr.strOn {
					return
				}
			}
		}
	}
}
