// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocateDistinctRanges(t *testing.T) {
	a := NewArena("t")
	b1 := a.Allocate(10)
	b2 := a.Allocate(10)
	require.Len(t, b1, 10)
	require.Len(t, b2, 10)

	b1[0] = 'x'
	assert.NotEqual(t, byte('x'), b2[0])
}

func TestArenaNeverEqualsAnotherArena(t *testing.T) {
	a := NewArena("a")
	b := NewArena("b")
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestArenaSpansMultiplePages(t *testing.T) {
	a := NewArena("t")
	arena := a.(*arenaAllocator)
	// Force a page rollover: allocate more than one page's worth in
	// small pieces.
	total := 0
	for total < arenaPageSize+1024 {
		b := a.Allocate(512)
		total += len(b)
	}
	assert.Greater(t, len(arena.pages), 1)
}

func TestArenaOversizedRequestGetsDedicatedPage(t *testing.T) {
	a := NewArena("t")
	b := a.Allocate(arenaPageSize * 2)
	assert.Len(t, b, arenaPageSize*2)
}

func TestArenaNeedsFreeIsFalse(t *testing.T) {
	a := NewArena("t")
	assert.False(t, a.NeedsFree())
}

func TestArenaResetReclaimsPages(t *testing.T) {
	a := NewArena("t")
	arena := a.(*arenaAllocator)
	a.Allocate(arenaPageSize)
	a.Allocate(arenaPageSize)
	require.Greater(t, len(arena.pages), 1)

	arena.Reset()
	assert.Equal(t, int64(0), arena.Bytes())
	assert.Len(t, arena.pages, 1)
}

func TestArenaBytesTracksUsage(t *testing.T) {
	a := NewArena("t")
	arena := a.(*arenaAllocator)
	a.Allocate(100)
	a.Allocate(200)
	assert.Equal(t, int64(300), arena.Bytes())
}
