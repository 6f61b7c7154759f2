// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The Object component (spec.md §4.D): an insertion-ordered, chained hash
// map from string key to Value. Bucket-chain shape grounded on the open
// chaining hashmaps retrieved alongside this spec
// (other_examples/74e4898f_els0r-goProbe__pkg-types-hashmap-hashmap.go.go,
// other_examples/31081011_aristanetworks-goarista__hash-map.go.go); the
// 64-bit key hash is github.com/cespare/xxhash/v2 (seen in grafana-tempo's
// dependency set).

package njson

import "github.com/cespare/xxhash/v2"

// maxObjectLen bounds Object's size; Insert past it panics with an
// *OverflowError of kind OverflowObject.
const maxObjectLen = 1<<31 - 1

const loadFactorNum = 7 // rehash once size/buckets would exceed loadFactorNum/10
const loadFactorDen = 10

// bucketPrimes is the fixed sequence of bucket counts, each roughly
// doubling, starting at 3 (spec.md §3: "bucket count is the next prime
// from a fixed sequence").
var bucketPrimes = []int{
	3, 7, 17, 37, 79, 163, 331, 673, 1361, 2729, 5471, 10949, 21911,
	43853, 87719, 175447, 350899, 701819, 1403641, 2807303, 5614657,
	11229331, 22458671, 44917381, 89834777, 179669557, 359339171,
	718678369, 1437356741,
}

func nextBucketPrime(n int) int {
	for _, p := range bucketPrimes {
		if p >= n {
			return p
		}
	}
	return bucketPrimes[len(bucketPrimes)-1]
}

// slot holds one key-value pair and the index of the next slot in the
// same bucket's chain (spec.md §3: "a contiguous array of (key, value,
// next_index) slots storing elements in insertion order").
type slot struct {
	key   String
	value Value
	next  int32 // index into Object.slots, or -1
}

// An Object is an insertion-ordered hash map from string key to Value.
// Iterating in slot order yields keys in insertion order, except for a
// key that was relocated by a prior Erase (spec.md §4.D, §9).
type Object struct {
	alloc   Allocator
	slots   []slot
	buckets []int32 // bucket head indices into slots, -1 for empty
	seed    uint64
}

func hashKey(seed uint64, key []byte) uint64 {
	d := xxhash.New()
	var seedBytes [8]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	d.Write(seedBytes[:])
	d.Write(key)
	return d.Sum64()
}

// NewObject returns an empty Object using alloc.
func NewObject(alloc Allocator) *Object {
	if alloc == nil {
		alloc = defaultAllocator
	}
	o := &Object{alloc: alloc, seed: 0x9e3779b97f4a7c15}
	o.initBuckets(bucketPrimes[0])
	return o
}

func (o *Object) initBuckets(n int) {
	o.buckets = make([]int32, n)
	for i := range o.buckets {
		o.buckets[i] = -1
	}
}

// Allocator returns the allocator this Object was constructed with.
func (o *Object) Allocator() Allocator { return o.alloc }

// Len reports the number of key-value pairs.
func (o *Object) Len() int { return len(o.slots) }

func (o *Object) bucketFor(key []byte) int {
	h := hashKey(o.seed, key)
	return int(h % uint64(len(o.buckets)))
}

// find returns the slot index for key, or -1 if absent.
func (o *Object) find(key []byte) int {
	if len(o.buckets) == 0 {
		return -1
	}
	b := o.bucketFor(key)
	for i := o.buckets[b]; i != -1; i = o.slots[i].next {
		if bytesEqual(o.slots[i].key.Bytes(), key) {
			return int(i)
		}
	}
	return -1
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Get returns the Value for key and true, or the zero Value and false.
func (o *Object) Get(key []byte) (*Value, bool) {
	i := o.find(key)
	if i < 0 {
		return nil, false
	}
	return &o.slots[i].value, true
}

// Contains reports whether key is present.
func (o *Object) Contains(key []byte) bool { return o.find(key) >= 0 }

// Insert adds key=value if key is not already present (returning the new
// slot index and true), or leaves the existing entry's position
// unchanged while still reporting its index (and false) if key already
// exists — spec.md §4.D: "a later insert of an existing key leaves the
// original position unchanged". Callers that want JSON's
// later-key-replaces-earlier-value semantics should use Set instead.
func (o *Object) Insert(key []byte, value Value) (index int, inserted bool) {
	if i := o.find(key); i >= 0 {
		return i, false
	}
	if len(o.slots) >= maxObjectLen {
		panic(&OverflowError{Kind: OverflowObject, Limit: maxObjectLen})
	}
	o.maybeRehash()
	b := o.bucketFor(key)
	idx := len(o.slots)
	o.slots = append(o.slots, slot{
		key:   *NewStringFrom(o.alloc, key),
		value: value.adoptedBy(o.alloc),
		next:  o.buckets[b],
	})
	o.buckets[b] = int32(idx)
	return idx, true
}

// Set inserts key=value, or replaces the value of an existing key in
// place — the duplicate-key policy the parser uses while building a tree
// (spec.md §4.D: "later keys with the same name replace the value of the
// first occurrence").
func (o *Object) Set(key []byte, value Value) {
	if i := o.find(key); i >= 0 {
		o.slots[i].value = value.adoptedBy(o.alloc)
		return
	}
	o.Insert(key, value)
}

func (o *Object) maybeRehash() {
	if len(o.buckets) == 0 {
		o.initBuckets(bucketPrimes[0])
		return
	}
	if (len(o.slots)+1)*loadFactorDen <= len(o.buckets)*loadFactorNum {
		return
	}
	next := nextBucketPrime(len(o.buckets) + 1)
	if next == len(o.buckets) {
		next = nextBucketPrime(next + 1)
	}
	o.initBuckets(next)
	for i := range o.slots {
		b := o.bucketFor(o.slots[i].key.Bytes())
		o.slots[i].next = o.buckets[b]
		o.buckets[b] = int32(i)
	}
}

// Erase removes key, returning true if it was present. The last slot is
// relocated into the freed position to keep storage contiguous, which
// does not preserve insertion order for the relocated element (spec.md
// §4.D, §9 — an accepted, documented deviation carried over from the
// source library).
func (o *Object) Erase(key []byte) bool {
	i := o.find(key)
	if i < 0 {
		return false
	}
	o.unlink(i)
	last := len(o.slots) - 1
	if i != last {
		moved := o.slots[last]
		o.relinkTo(moved.key.Bytes(), last, i)
		o.slots[i] = moved
	}
	o.slots = o.slots[:last]
	return true
}

// unlink removes slot i from whichever bucket chain references it.
func (o *Object) unlink(i int) {
	b := o.bucketFor(o.slots[i].key.Bytes())
	cur := o.buckets[b]
	if int(cur) == i {
		o.buckets[b] = o.slots[i].next
		return
	}
	for cur != -1 {
		next := o.slots[cur].next
		if int(next) == i {
			o.slots[cur].next = o.slots[i].next
			return
		}
		cur = next
	}
}

// relinkTo rewrites whichever chain pointer referenced slot index oldIdx
// (the key's own bucket chain) to reference newIdx instead, used when
// Erase relocates the final slot.
func (o *Object) relinkTo(key []byte, oldIdx, newIdx int) {
	b := o.bucketFor(key)
	cur := o.buckets[b]
	if int(cur) == oldIdx {
		o.buckets[b] = int32(newIdx)
		return
	}
	for cur != -1 {
		next := o.slots[cur].next
		if int(next) == oldIdx {
			o.slots[cur].next = int32(newIdx)
			return
		}
		cur = next
	}
}

// KeyAt returns the key of the slot at insertion-order index i, for
// callers (the serializer) that walk an Object positionally rather than
// through Each.
func (o *Object) KeyAt(i int) []byte { return o.slots[i].key.Bytes() }

// ValueAt returns the value of the slot at insertion-order index i.
func (o *Object) ValueAt(i int) *Value { return &o.slots[i].value }

// Each calls f for every key-value pair in slot (insertion, modulo
// erase-relocation) order. Each returning false stops iteration early.
func (o *Object) Each(f func(key []byte, v *Value) bool) {
	for i := range o.slots {
		if !f(o.slots[i].key.Bytes(), &o.slots[i].value) {
			return
		}
	}
}

// Equal reports unordered equality: same set of keys, each mapped to an
// Equal Value (spec.md §4.E: "unordered for object").
func (o *Object) Equal(other *Object) bool {
	if len(o.slots) != len(other.slots) {
		return false
	}
	for i := range o.slots {
		ov, ok := other.Get(o.slots[i].key.Bytes())
		if !ok || !o.slots[i].value.Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of o, in insertion order, using alloc.
func (o *Object) Clone(alloc Allocator) *Object {
	out := NewObject(alloc)
	for i := range o.slots {
		out.Set(append([]byte(nil), o.slots[i].key.Bytes()...), o.slots[i].value.Clone(alloc))
	}
	return out
}
