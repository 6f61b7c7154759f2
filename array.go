// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The Array component (spec.md §4.C): a contiguous sequence of Values
// carrying an Allocator, amortized O(1) push-back, O(1) random access.

package njson

// maxArrayLen bounds Array's length; Push or Insert past it returns an
// *OverflowError of kind OverflowArray.
const maxArrayLen = 1<<31 - 1

// An Array is a contiguous, allocator-owned sequence of Values. Values
// pushed onto an Array are owned by it from that point on. Array has no
// destroy operation: it never returns its own or its elements' storage to
// its Allocator, whatever NeedsFree reports.
type Array struct {
	alloc Allocator
	items []Value
}

// NewArray returns an empty Array using alloc.
func NewArray(alloc Allocator) *Array {
	if alloc == nil {
		alloc = defaultAllocator
	}
	return &Array{alloc: alloc}
}

// Allocator returns the allocator this Array was constructed with.
func (a *Array) Allocator() Allocator { return a.alloc }

// Len reports the number of elements.
func (a *Array) Len() int { return len(a.items) }

// At returns the element at index i.
func (a *Array) At(i int) *Value { return &a.items[i] }

// Push appends v, taking ownership of it. If v's allocator does not
// compare Equal to a's, v is deep-copied into a's allocator first
// (spec.md §3: "move construction transfers pointers when allocators
// compare equal, else falls back to element-wise copy").
func (a *Array) Push(v Value) error {
	if len(a.items) >= maxArrayLen {
		return &OverflowError{Kind: OverflowArray, Limit: maxArrayLen}
	}
	a.items = append(a.items, v.adoptedBy(a.alloc))
	return nil
}

// Pop removes and returns the last element. Pop on an empty Array panics,
// the same contract Go's own slicing gives for out-of-range access.
func (a *Array) Pop() Value {
	n := len(a.items) - 1
	v := a.items[n]
	a.items = a.items[:n]
	return v
}

// Insert places v at index i, shifting subsequent elements right. O(N).
func (a *Array) Insert(i int, v Value) error {
	if len(a.items) >= maxArrayLen {
		return &OverflowError{Kind: OverflowArray, Limit: maxArrayLen}
	}
	a.items = append(a.items, Value{})
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = v.adoptedBy(a.alloc)
	return nil
}

// Erase removes the element at index i, shifting subsequent elements
// left. O(N).
func (a *Array) Erase(i int) {
	copy(a.items[i:], a.items[i+1:])
	a.items = a.items[:len(a.items)-1]
}

// Each calls f for every element in order. Each returning false stops the
// iteration early.
func (a *Array) Each(f func(i int, v *Value) bool) {
	for i := range a.items {
		if !f(i, &a.items[i]) {
			return
		}
	}
}

// Equal reports whether a and other hold element-wise equal Values in
// the same order (spec.md §4.E: "element-wise for array").
func (a *Array) Equal(other *Array) bool {
	if len(a.items) != len(other.items) {
		return false
	}
	for i := range a.items {
		if !a.items[i].Equal(&other.items[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of a using alloc.
func (a *Array) Clone(alloc Allocator) *Array {
	out := NewArray(alloc)
	out.items = make([]Value, len(a.items))
	for i := range a.items {
		out.items[i] = a.items[i].Clone(alloc)
	}
	return out
}
