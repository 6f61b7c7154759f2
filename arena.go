// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// A monotonic arena Allocator: adapted from MemFiler, a memory-backed
// Filer addressed in fixed-size pages
// (github.com/cznic/exp/lldb/memfiler.go). Where MemFiler offered random
// read/write access into a sparse page map for a file abstraction, the
// arena instead hands out monotonically growing byte ranges carved from
// the same kind of page map, and reclaims all of them at once on Reset
// rather than supporting per-offset writes.

package njson

const (
	arenaPageBits = 16 // matches MemFiler's larger pgBits tiers, tuned for throughput over memory overhead
	arenaPageSize = 1 << arenaPageBits
	arenaPageMask = arenaPageSize - 1
)

// arenaAllocator is an Allocator that never frees individual allocations.
// It grows a sequence of fixed-size pages on demand (MemFiler's
// memFilerMap idea, renamed and repurposed) and serves every Allocate
// request by bumping a cursor into the current page, spilling into a
// freshly appended page when the current one cannot satisfy the request
// whole. Deallocate is a no-op; Reset drops every page but the first
// (which it zeroes for reuse), regardless of how many values were carved
// from them.
type arenaAllocator struct {
	id    *int // distinct per instance so Equal can use identity, not structural equality
	pages [][]byte
	cur   int // index into pages of the page currently being carved
	off   int // next free byte within pages[cur]
	name  string
}

// NewArena returns a new monotonic arena Allocator. Values built with it
// should be discarded together (via Reset) rather than individually: this
// mirrors the "needs_free == false" arena semantics spec.md §3 describes
// for the Allocator resource.
func NewArena(name string) Allocator {
	id := new(int)
	a := &arenaAllocator{id: id, name: name}
	a.pages = append(a.pages, make([]byte, arenaPageSize))
	return a
}

func (a *arenaAllocator) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	if n > arenaPageSize {
		// Oversized requests get a dedicated page of exactly their size,
		// the way falloc.go special-cases blocks larger than an
		// atom-page rather than fragmenting the regular pool.
		b := make([]byte, n)
		a.pages = append(a.pages, b)
		return b
	}
	if a.off+n > len(a.pages[a.cur]) {
		a.pages = append(a.pages, make([]byte, arenaPageSize))
		a.cur = len(a.pages) - 1
		a.off = 0
	}
	b := a.pages[a.cur][a.off : a.off+n : a.off+n]
	a.off += n
	return b
}

func (a *arenaAllocator) Deallocate(b []byte) {}

func (a *arenaAllocator) Reallocate(b []byte, n int) []byte {
	if n <= cap(b) {
		return b[:n]
	}
	nb := a.Allocate(n)
	copy(nb, b)
	return nb
}

func (a *arenaAllocator) NeedsFree() bool { return false }

func (a *arenaAllocator) Equal(other Allocator) bool {
	o, ok := unwrapCheckpoint(other).(*arenaAllocator)
	return ok && o.id == a.id
}

func (a *arenaAllocator) Name() string { return a.name }

// Reset releases every page the arena holds except the first, which it
// zeroes and keeps as the current page. Any Value still referencing
// memory carved from this arena becomes invalid; the caller must not use
// them after Reset, the same contract MemFiler documents for its own
// Truncate(0) dropping all pages at once.
func (a *arenaAllocator) Reset() {
	a.pages = a.pages[:1]
	for i := range a.pages[0] {
		a.pages[0][i] = 0
	}
	a.cur = 0
	a.off = 0
}

// Bytes reports the total number of bytes currently handed out across all
// pages: every page other than the current one (including dedicated
// oversized pages) counts in full, and the current page counts only up
// to its free cursor.
func (a *arenaAllocator) Bytes() int64 {
	var n int64
	for i, p := range a.pages {
		if i == a.cur {
			n += int64(a.off)
			continue
		}
		n += int64(len(p))
	}
	return n
}
