// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAccessorsPanicOnWrongKind(t *testing.T) {
	v := NewInt64(5)
	assert.PanicsWithValue(t, &KindError{Want: KindBool, Got: KindInt64}, func() {
		v.Bool()
	})
}

func TestValueTryAccessorsDoNotPanic(t *testing.T) {
	v := NewBool(true)
	_, err := v.TryInt64()
	assert.Error(t, err)
	_, err = v.TryString()
	assert.Error(t, err)

	s := NewStringValue(NewStringFrom(DefaultAllocator(), []byte("x")))
	str, err := s.TryString()
	assert.NoError(t, err)
	assert.Equal(t, "x", string(str.Bytes()))
}

func TestValueNumericEquality(t *testing.T) {
	a := NewInt64(5)
	b := NewUint64(5)
	c := NewDouble(5.0)
	assert.True(t, a.Equal(&b))
	assert.True(t, a.Equal(&c))
	assert.True(t, b.Equal(&c))

	neg := NewInt64(-1)
	u := NewUint64(18446744073709551615)
	assert.False(t, neg.Equal(&u))
}

func TestValueDoubleNotExactlyIntegral(t *testing.T) {
	d := NewDouble(5.5)
	i := NewInt64(5)
	assert.False(t, d.Equal(&i))
}

func TestNewDoublePanicsOnNonFinite(t *testing.T) {
	assert.Panics(t, func() { NewDouble(math.NaN()) })
	assert.Panics(t, func() { NewDouble(math.Inf(1)) })
}

func TestValueCloneIsIndependent(t *testing.T) {
	arr := NewArray(DefaultAllocator())
	arr.Push(NewInt64(1))
	v := NewArrayValue(arr)

	clone := v.Clone(DefaultAllocator())
	clone.Arr().Push(NewInt64(2))

	assert.Equal(t, 1, v.Arr().Len())
	assert.Equal(t, 2, clone.Arr().Len())
}
