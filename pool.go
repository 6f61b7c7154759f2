// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// A free-list pooling Allocator: adapted from falloc.go
// (github.com/cznic/exp/lldb, the on-disk space allocator keeping free
// blocks in doubly-linked lists bucketed by size) and flt.go (the
// pluggable free-list-table bucket strategies FLTPowersOf2/FLTFib/
// FLTFull). The disk atom/block bookkeeping is gone — there is no file —
// but the idea of "bucket free blocks by size class, reuse the best fit,
// fall back to a fresh allocation" carries over directly to an in-memory
// byte-block allocator with real Free/reuse semantics, the thing the
// arena deliberately does not provide.

package njson

// A BinningStrategy decides which free-list bucket a block of a given
// size belongs in, the in-memory analogue of flt.go's FLTPowersOf2 /
// FLTFib / FLTFull constants.
type BinningStrategy int

const (
	// BinPowersOf2 buckets by the next power of two >= size: 1, 2, 4, 8, ...
	BinPowersOf2 BinningStrategy = iota
	// BinFibonacci buckets by the next Fibonacci number >= size: 1, 2, 3, 5, 8, ...
	BinFibonacci
	// BinExact keeps one bucket per distinct size, maximizing reuse at
	// the cost of more buckets.
	BinExact
)

func (s BinningStrategy) bin(n int) int {
	switch s {
	case BinFibonacci:
		a, b := 1, 1
		for b < n {
			a, b = b, a+b
		}
		return b
	case BinExact:
		return n
	default: // BinPowersOf2
		p := 1
		for p < n {
			p <<= 1
		}
		return p
	}
}

// poolAllocator is an Allocator with real free-list reuse: Deallocate
// returns a block to the bucket matching its size under the configured
// BinningStrategy, and Allocate first looks for a free block in a bucket
// large enough before falling back to a fresh make(). NeedsFree is true:
// a block comes back for reuse only once it is passed to Deallocate,
// unlike the arena. String, Array and Object never call Deallocate
// themselves; Checkpoint.Rollback and Reallocate do.
type poolAllocator struct {
	id       *int
	strategy BinningStrategy
	free     map[int][][]byte // bucket size -> stack of free blocks of exactly that bucket's capacity
	name     string

	stats AllocStats
}

// AllocStats mirrors falloc.go's AllocStats, trimmed to the quantities
// meaningful without atoms/blocks on disk: total bytes currently
// allocated to callers versus bytes sitting idle in free buckets
// awaiting reuse.
type AllocStats struct {
	AllocBytes int64 // bytes currently held by the caller
	FreeBytes  int64 // bytes sitting in free buckets, available for reuse
	Reused     int64 // number of Allocate calls satisfied from a free bucket
}

// NewPool returns a new free-list pooling Allocator using the given
// binning strategy. Unlike the arena, a block allocated from a pool
// becomes reusable only after it is passed to Deallocate; the containers
// themselves never do this.
func NewPool(name string, strategy BinningStrategy) Allocator {
	return &poolAllocator{
		id:       new(int),
		strategy: strategy,
		free:     make(map[int][][]byte),
		name:     name,
	}
}

func (p *poolAllocator) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	bin := p.strategy.bin(n)
	if stack := p.free[bin]; len(stack) > 0 {
		b := stack[len(stack)-1]
		p.free[bin] = stack[:len(stack)-1]
		p.stats.FreeBytes -= int64(cap(b))
		p.stats.AllocBytes += int64(n)
		p.stats.Reused++
		return b[:n]
	}
	b := make([]byte, n, bin)
	p.stats.AllocBytes += int64(n)
	return b
}

func (p *poolAllocator) Deallocate(b []byte) {
	if cap(b) == 0 {
		return
	}
	bin := p.strategy.bin(cap(b))
	full := b[:cap(b)]
	p.free[bin] = append(p.free[bin], full)
	p.stats.AllocBytes -= int64(len(b))
	p.stats.FreeBytes += int64(cap(b))
}

func (p *poolAllocator) Reallocate(b []byte, n int) []byte {
	if n <= cap(b) {
		return b[:n]
	}
	nb := p.Allocate(n)
	copy(nb, b)
	p.Deallocate(b)
	return nb
}

func (p *poolAllocator) NeedsFree() bool { return true }

func (p *poolAllocator) Equal(other Allocator) bool {
	o, ok := unwrapCheckpoint(other).(*poolAllocator)
	return ok && o.id == p.id
}

func (p *poolAllocator) Name() string { return p.name }

// Stats reports a snapshot of the pool's current allocation statistics,
// the in-memory analogue of falloc.go's Allocator.Verify-filled
// AllocStats.
func (p *poolAllocator) Stats() AllocStats { return p.stats }
