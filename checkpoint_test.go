// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckpointRollbackReturnsBlocksToPool(t *testing.T) {
	p := NewPool("t", BinExact)
	pool := p.(*poolAllocator)

	cp := Mark(p)
	b1 := p.Allocate(16)
	cp.track(b1)
	b2 := p.Allocate(32)
	cp.track(b2)

	assert.Equal(t, int64(48), pool.Stats().AllocBytes)
	cp.Rollback()
	assert.Equal(t, int64(0), pool.Stats().AllocBytes)
	assert.Equal(t, int64(48), pool.Stats().FreeBytes)
}

func TestCheckpointCommitKeepsBlocks(t *testing.T) {
	p := NewPool("t", BinExact)
	pool := p.(*poolAllocator)

	cp := Mark(p)
	b := p.Allocate(16)
	cp.track(b)
	cp.Commit()

	assert.Equal(t, int64(16), pool.Stats().AllocBytes)
	assert.Equal(t, int64(0), pool.Stats().FreeBytes)
}

func TestCheckpointOnNonPoolAllocatorIsNoOp(t *testing.T) {
	a := DefaultAllocator()
	cp := Mark(a)
	b := a.Allocate(16)
	cp.track(b) // no-op: cp.pool is nil
	assert.NotPanics(t, func() { cp.Rollback() })
}

func TestCheckpointOnArenaIsNoOp(t *testing.T) {
	a := NewArena("t")
	cp := Mark(a)
	b := a.Allocate(16)
	cp.track(b)
	assert.NotPanics(t, func() { cp.Commit() })
}
