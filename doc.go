// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package njson is a streaming, resumable JSON parser and serializer built
around a compact, allocator-aware value tree.

Parsing

A Parser consumes JSON a chunk at a time. It never blocks and never
allocates per chunk beyond what growing its own resume stack requires; it
validates UTF-8, decodes escape sequences (including surrogate pairs) and
narrows numbers to the smallest of int64, uint64 or float64 that holds
them exactly. It reports structural and value events to a Handler:

	p := njson.NewParser(opts, handler)
	for more chunks arrive:
		n, err := p.Write(chunk, moreComing)
		chunk = chunk[n:] // re-present whatever wasn't consumed
	err = p.Finish()

The Builder handler assembles a Value tree from those events:

	b := njson.NewBuilder(njson.DefaultAllocator())
	p := njson.NewParser(opts, b)
	...
	v := b.Value()

Serializing

A Serializer walks a Value tree and writes canonical JSON into a
caller-supplied buffer, suspending whenever the buffer fills and resuming
exactly where it left off:

	s := njson.NewSerializer(v, njson.SerializeOptions{})
	for !s.Done() {
		n := s.Read(buf)
		out.Write(buf[:n])
	}

Allocation

Every container in the value tree (String, Array, Object) carries an
Allocator. njson ships three: the process-wide default (backed by the Go
runtime allocator), a monotonic arena that frees everything at once, and
a free-list pool that reuses blocks. Containers propagate their allocator
to every value they own; copying across two allocators that do not
compare equal falls back to an element-wise copy.

Out of scope

Schema validation, JSON Pointer/Patch, concurrent access to a single
value tree, and any persisted (on-disk) representation are outside this
package's scope, as is any public command-line tool, reflection-based
marshaling of arbitrary Go types, or a stream-iterator adaptor layered on
top of Parser: those are left to separate packages should they ever be
built.

*/
package njson
