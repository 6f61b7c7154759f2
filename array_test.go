// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayPushAndAt(t *testing.T) {
	a := NewArray(DefaultAllocator())
	require.NoError(t, a.Push(NewInt64(1)))
	require.NoError(t, a.Push(NewInt64(2)))
	require.Equal(t, 2, a.Len())
	assert.Equal(t, int64(1), a.At(0).Int64())
	assert.Equal(t, int64(2), a.At(1).Int64())
}

func TestArrayPop(t *testing.T) {
	a := NewArray(DefaultAllocator())
	a.Push(NewInt64(1))
	a.Push(NewInt64(2))
	v := a.Pop()
	assert.Equal(t, int64(2), v.Int64())
	assert.Equal(t, 1, a.Len())
}

func TestArrayInsertShiftsRight(t *testing.T) {
	a := NewArray(DefaultAllocator())
	a.Push(NewInt64(1))
	a.Push(NewInt64(3))
	require.NoError(t, a.Insert(1, NewInt64(2)))

	require.Equal(t, 3, a.Len())
	assert.Equal(t, int64(1), a.At(0).Int64())
	assert.Equal(t, int64(2), a.At(1).Int64())
	assert.Equal(t, int64(3), a.At(2).Int64())
}

func TestArrayEraseShiftsLeft(t *testing.T) {
	a := NewArray(DefaultAllocator())
	a.Push(NewInt64(1))
	a.Push(NewInt64(2))
	a.Push(NewInt64(3))
	a.Erase(1)

	require.Equal(t, 2, a.Len())
	assert.Equal(t, int64(1), a.At(0).Int64())
	assert.Equal(t, int64(3), a.At(1).Int64())
}

func TestArrayEachStopsEarly(t *testing.T) {
	a := NewArray(DefaultAllocator())
	for i := 0; i < 5; i++ {
		a.Push(NewInt64(int64(i)))
	}
	var seen []int64
	a.Each(func(i int, v *Value) bool {
		seen = append(seen, v.Int64())
		return v.Int64() < 2
	})
	assert.Equal(t, []int64{0, 1, 2}, seen)
}

func TestArrayEqual(t *testing.T) {
	a := NewArray(DefaultAllocator())
	a.Push(NewInt64(1))
	a.Push(NewInt64(2))

	b := NewArray(DefaultAllocator())
	b.Push(NewInt64(1))
	b.Push(NewInt64(2))

	c := NewArray(DefaultAllocator())
	c.Push(NewInt64(2))
	c.Push(NewInt64(1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestArrayCloneIsIndependent(t *testing.T) {
	a := NewArray(DefaultAllocator())
	a.Push(NewInt64(1))
	clone := a.Clone(DefaultAllocator())
	clone.Push(NewInt64(2))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestArrayPushAdoptsForeignAllocator(t *testing.T) {
	arena := NewArena("test-arena")
	s := NewStringFrom(arena, []byte("hello"))
	v := NewStringValue(s)

	a := NewArray(DefaultAllocator())
	require.NoError(t, a.Push(v))

	got := a.At(0)
	assert.True(t, got.Allocator().Equal(DefaultAllocator()))
	assert.Equal(t, "hello", string(got.Str().Bytes()))
}
