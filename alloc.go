// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Allocator resources: the polymorphic byte-allocator abstraction that
// every container in the value tree carries and propagates to its
// children.

package njson

// An Allocator is a polymorphic byte-allocator resource. Containers
// (String, Array, Object) store an Allocator in their first word so that
// moving a container is a pointer swap, and propagate it to every value
// they come to own.
//
// Equal reports identity, not structural equality: two Allocators compare
// equal only when operations against either are interchangeable (the
// default allocator always compares equal to itself; a monotonic arena
// compares equal only to itself, never to another arena instance, since
// freeing through the wrong arena would be meaningless).
type Allocator interface {
	// Allocate returns a slice of exactly n bytes; its contents are
	// unspecified (not necessarily zeroed).
	Allocate(n int) []byte

	// Deallocate releases a slice previously returned by Allocate (or a
	// shrunk sub-slice of one, per Reallocate). Implementations for
	// which NeedsFree is false may treat this as a no-op.
	Deallocate(b []byte)

	// Reallocate resizes b, which must have been returned by Allocate
	// (or Reallocate), to n bytes, preserving the lesser of len(b) and n
	// leading bytes.
	Reallocate(b []byte, n int) []byte

	// NeedsFree reports whether containers backed by this Allocator
	// must walk their owned children to release them on destruction. An
	// arena-style allocator that reclaims everything in one shot
	// reports false, letting containers skip that walk entirely.
	NeedsFree() bool

	// Equal reports whether other is the same resource as this one:
	// whether a container may accept a value allocated by other without
	// a copy.
	Equal(other Allocator) bool

	// Name identifies the allocator for diagnostics, mirroring
	// lldb.Filer's Name().
	Name() string
}

// goAllocator delegates to the Go runtime allocator via make/append. It is
// the process-wide default: NeedsFree is false because the garbage
// collector reclaims everything, so containers backed by it never walk
// their children at destruction time.
type goAllocator struct{}

func (goAllocator) Allocate(n int) []byte { return make([]byte, n) }

func (goAllocator) Deallocate(b []byte) {}

func (goAllocator) Reallocate(b []byte, n int) []byte {
	if n <= cap(b) {
		return b[:n]
	}
	nb := make([]byte, n)
	copy(nb, b)
	return nb
}

func (goAllocator) NeedsFree() bool { return false }

func (goAllocator) Equal(other Allocator) bool {
	_, ok := unwrapCheckpoint(other).(goAllocator)
	return ok
}

func (goAllocator) Name() string { return "default" }

var defaultAllocator Allocator = goAllocator{}

// DefaultAllocator returns the process-wide default Allocator. It always
// compares Equal to itself and is safe to share across many independently
// owned trees, the same way lldb documents a default Filer resource as
// shared and concurrency-neutral (§5: the library claims no internal
// synchronization, the caller must provide it if sharing across threads).
func DefaultAllocator() Allocator { return defaultAllocator }
