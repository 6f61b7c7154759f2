// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The parser's event interface and the tree-building handler that
// implements it (spec.md §4.H, §6 "Parser handler interface").

package njson

// Handler receives the parser's semantic events. Every method returns a
// bool; returning false tells the parser to stop, which Parser.Write
// then reports as a *HandlerError.
type Handler interface {
	OnDocumentBegin() bool
	OnDocumentEnd() bool

	OnObjectBegin() bool
	OnObjectEnd(size int) bool
	OnArrayBegin() bool
	OnArrayEnd(size int) bool

	OnKeyPart(p []byte) bool
	OnKey(p []byte) bool
	OnStringPart(p []byte) bool
	OnString(p []byte) bool

	OnInt64(v int64) bool
	OnUint64(v uint64) bool
	OnDouble(v float64) bool
	OnBool(v bool) bool
	OnNull() bool

	OnCommentPart(p []byte) bool
	OnComment(p []byte) bool
}

// builderKind distinguishes the two container frames a Builder tracks.
type builderKind uint8

const (
	builderArray builderKind = iota
	builderObject
)

// builderFrame is one level of the Builder's node stack (spec.md §4.H:
// "a node stack mirrors the parser's container stack"). The completed
// Array or Object is itself the staging area: Push/Set already grow
// their backing storage the same amortized way a Go slice does, so a
// separate staging buffer for children (as opposed to key/string bytes)
// would just duplicate what Array and Object already do.
type builderFrame struct {
	kind builderKind
	arr  *Array
	obj  *Object
	key  []byte // object frames only: the pending key awaiting its value
}

// Builder is the concrete Handler that assembles a Value tree, per
// spec.md §4.H. The zero Builder is not usable; construct one with
// NewBuilder.
//
// Every container and string Builder allocates is built against a single
// Checkpoint spanning the whole document, so a parse that halts partway
// through (Parser.Write/Finish returning an error, or any Handler method
// returning false) can be cleaned up with one Reset call instead of
// leaking the half-built tree's blocks until the underlying Allocator
// itself is discarded: Reset rolls back anything staged since the last
// successful OnDocumentEnd before starting the next build.
type Builder struct {
	alloc    Allocator
	cp       *Checkpoint
	stack    []builderFrame
	root     Value
	haveRoot bool

	// key and str stage un-finalised key/string-value bytes across
	// on_*_part/on_* event boundaries (spec.md §4.H: "a staging buffer
	// accumulates un-finalised parts of keys and strings").
	key String
	str String
}

// NewBuilder returns a Builder that assembles values using alloc.
func NewBuilder(alloc Allocator) *Builder {
	if alloc == nil {
		alloc = defaultAllocator
	}
	cp := Mark(alloc)
	return &Builder{alloc: alloc, cp: cp, key: *NewString(cp.Allocator()), str: *NewString(cp.Allocator())}
}

// Reset rolls back any containers and strings staged since the last
// successful build (a no-op if the previous build already reached
// OnDocumentEnd, or if alloc is not a pool allocator) and returns b to
// its initial state, ready to build another tree with the same
// allocator.
func (b *Builder) Reset() {
	b.cp.Rollback()
	alloc := b.alloc
	cp := Mark(alloc)
	*b = Builder{alloc: alloc, cp: cp, key: *NewString(cp.Allocator()), str: *NewString(cp.Allocator())}
}

// Value returns the tree built so far. It is only meaningful once the
// document has fully parsed (OnDocumentEnd seen).
func (b *Builder) Value() Value { return b.root }

func (b *Builder) top() *builderFrame { return &b.stack[len(b.stack)-1] }

// addValue attaches v to whatever the builder is currently filling: the
// document root, the pending key of an object frame, or the next slot
// of an array frame.
func (b *Builder) addValue(v Value) bool {
	if len(b.stack) == 0 {
		b.root = v
		b.haveRoot = true
		return true
	}
	f := b.top()
	switch f.kind {
	case builderObject:
		f.obj.Set(f.key, v)
		f.key = nil
		return true
	default:
		return f.arr.Push(v) == nil
	}
}

func (b *Builder) OnDocumentBegin() bool { return true }

// OnDocumentEnd commits the builder's Checkpoint: everything staged
// while building this document is kept rather than rolled back by a
// later Reset.
func (b *Builder) OnDocumentEnd() bool {
	b.cp.Commit()
	return true
}

func (b *Builder) OnObjectBegin() bool {
	b.stack = append(b.stack, builderFrame{kind: builderObject, obj: NewObject(b.cp.Allocator())})
	return true
}

func (b *Builder) OnObjectEnd(size int) bool {
	f := b.top()
	o := f.obj
	b.stack = b.stack[:len(b.stack)-1]
	return b.addValue(NewObjectValue(o))
}

func (b *Builder) OnArrayBegin() bool {
	b.stack = append(b.stack, builderFrame{kind: builderArray, arr: NewArray(b.cp.Allocator())})
	return true
}

func (b *Builder) OnArrayEnd(size int) bool {
	f := b.top()
	a := f.arr
	b.stack = b.stack[:len(b.stack)-1]
	return b.addValue(NewArrayValue(a))
}

func (b *Builder) OnKeyPart(p []byte) bool { return b.key.Append(p) == nil }

func (b *Builder) OnKey(p []byte) bool {
	if err := b.key.Append(p); err != nil {
		return false
	}
	key := append([]byte(nil), b.key.Bytes()...)
	b.key.Reset()
	b.top().key = key
	return true
}

func (b *Builder) OnStringPart(p []byte) bool { return b.str.Append(p) == nil }

func (b *Builder) OnString(p []byte) bool {
	if err := b.str.Append(p); err != nil {
		return false
	}
	s := NewStringFrom(b.cp.Allocator(), b.str.Bytes())
	b.str.Reset()
	return b.addValue(NewStringValue(s))
}

func (b *Builder) OnInt64(v int64) bool   { return b.addValue(NewInt64(v)) }
func (b *Builder) OnUint64(v uint64) bool { return b.addValue(NewUint64(v)) }
func (b *Builder) OnDouble(v float64) bool { return b.addValue(NewDouble(v)) }
func (b *Builder) OnBool(v bool) bool     { return b.addValue(NewBool(v)) }
func (b *Builder) OnNull() bool           { return b.addValue(NewNull()) }

// Comments carry no tree semantics; the Builder discards them.
func (b *Builder) OnCommentPart(p []byte) bool { return true }
func (b *Builder) OnComment(p []byte) bool     { return true }
