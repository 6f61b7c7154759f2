// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// A checkpointing wrapper around a poolAllocator: adapted from
// RollbackFiler (github.com/cznic/exp/lldb/xact.go), whose
// BeginUpdate/EndUpdate/Rollback nesting let a Filer undo a batch of
// writes. A value tree has no log to replay against, but the same shape
// — mark a point, do a batch of allocations, either keep them or discard
// them all — lets a caller building a container against a pool allocator
// undo a partially-built container in one call instead of freeing each
// staged child individually.
package njson

// A Checkpoint records the allocation state of an Allocator so a
// subsequent batch of Allocate calls can be undone in one step. It holds
// no useful rollback state for arena- or Go-runtime-backed allocators:
// Mark against those still returns a working Checkpoint (Allocate calls
// routed through it keep working), but Rollback on the result is a
// no-op, since neither tracks individual blocks the way a pool does.
type Checkpoint struct {
	under  Allocator
	pool   *poolAllocator
	marked []markedAlloc
}

type markedAlloc struct {
	block []byte
}

// Mark begins a new checkpoint nesting level against a, returning a
// Checkpoint that can later be committed (discarded) or rolled back. a
// need not be a pool allocator; Mark against any other Allocator produces
// a Checkpoint whose Rollback is a no-op, mirroring RollbackFiler's own
// BeginUpdate being meaningful only for Filers that track enough state
// to undo.
func Mark(a Allocator) *Checkpoint {
	p, _ := a.(*poolAllocator)
	return &Checkpoint{under: a, pool: p}
}

// Allocator returns an Allocator that forwards every call to the one
// Mark was given, recording each block it hands out so Rollback can
// reclaim them in one step. A caller building a container that should
// participate in this checkpoint passes this, not the Allocator Mark was
// given, to the container's constructor.
func (c *Checkpoint) Allocator() Allocator { return checkpointAllocator{c} }

// track records that b was just handed out by the checkpoint's pool, so
// Rollback can return it. Most callers never call this directly: the
// Allocator returned by Checkpoint.Allocator does it automatically for
// every block it allocates or grows.
func (c *Checkpoint) track(b []byte) {
	if c.pool == nil {
		return
	}
	c.marked = append(c.marked, markedAlloc{block: b})
}

// checkpointAllocator is the Allocator handed out by Checkpoint.Allocator.
// It forwards Allocate/Reallocate/Deallocate to the wrapped Allocator,
// tracking every block it allocates so the owning Checkpoint can undo
// them later.
type checkpointAllocator struct{ c *Checkpoint }

func (a checkpointAllocator) Allocate(n int) []byte {
	b := a.c.under.Allocate(n)
	a.c.track(b)
	return b
}

func (a checkpointAllocator) Deallocate(b []byte) { a.c.under.Deallocate(b) }

// Reallocate grows by a fresh tracked Allocate plus copy instead of
// delegating a grow to the wrapped Allocator's own Reallocate, so a pool
// allocator never frees the old block out from under an open checkpoint:
// Rollback must still be able to return it.
func (a checkpointAllocator) Reallocate(b []byte, n int) []byte {
	if n <= cap(b) {
		return b[:n]
	}
	nb := a.Allocate(n)
	copy(nb, b)
	return nb
}

func (a checkpointAllocator) NeedsFree() bool { return a.c.under.NeedsFree() }

func (a checkpointAllocator) Equal(other Allocator) bool {
	return a.c.under.Equal(unwrapCheckpoint(other))
}

func (a checkpointAllocator) Name() string { return a.c.under.Name() }

// unwrapCheckpoint returns the Allocator beneath any Checkpoint wrapper,
// so Equal comparisons between a value built under a checkpoint and one
// built directly against the same underlying Allocator still succeed in
// either direction.
func unwrapCheckpoint(a Allocator) Allocator {
	if w, ok := a.(checkpointAllocator); ok {
		return unwrapCheckpoint(w.c.under)
	}
	return a
}

// Commit discards the checkpoint without undoing anything: the batch of
// allocations it tracked is kept.
func (c *Checkpoint) Commit() {
	c.marked = nil
}

// Rollback returns every block tracked since Mark to the pool's free
// buckets, the equivalent of RollbackFiler.Rollback truncating the Filer
// back to its pre-transaction size.
func (c *Checkpoint) Rollback() {
	if c.pool == nil {
		c.marked = nil
		return
	}
	for _, m := range c.marked {
		c.pool.Deallocate(m.block)
	}
	c.marked = nil
}
