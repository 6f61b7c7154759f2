// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The String buffer component (spec.md §4.B): a contiguous,
// small-buffer-optimized byte sequence carrying an Allocator. Growth
// policy (double on overflow) follows MemFiler's page growth
// (lldb/memfiler.go).

package njson

// sboThreshold is the inline-storage ceiling: strings at or below this
// length live in the String struct itself and never touch the allocator.
const sboThreshold = 23

// maxStringLen bounds String's length; appending past it returns an
// *OverflowError of kind OverflowString.
const maxStringLen = 1<<31 - 1

// A String is a byte sequence with small-buffer optimization and an
// allocator-owned heap path for anything longer. It is always valid to
// read String.Bytes() as UTF-8 when the bytes originated from the parser
// (which validates on input); String itself does not enforce UTF-8 on
// arbitrary appended bytes, per spec.md §4.B.
type String struct {
	alloc Allocator
	inl   [sboThreshold]byte
	inlen uint8 // length when heap is nil; sboThreshold+1 is "use heap" sentinel handled via heap != nil
	heap  []byte
}

// NewString returns an empty String using alloc.
func NewString(alloc Allocator) *String {
	if alloc == nil {
		alloc = defaultAllocator
	}
	return &String{alloc: alloc}
}

// NewStringFrom returns a String containing a copy of b, using alloc.
func NewStringFrom(alloc Allocator, b []byte) *String {
	s := NewString(alloc)
	s.Append(b)
	return s
}

// Allocator returns the allocator this String was constructed with.
func (s *String) Allocator() Allocator { return s.alloc }

// Len reports the number of bytes currently stored.
func (s *String) Len() int {
	if s.heap != nil {
		return len(s.heap)
	}
	return int(s.inlen)
}

// Bytes returns the String's contents. The returned slice must not be
// retained past the next mutating call to s.
func (s *String) Bytes() []byte {
	if s.heap != nil {
		return s.heap
	}
	return s.inl[:s.inlen]
}

// Reserve ensures the String can grow to at least n bytes without a
// further reallocation, switching from inline to heap storage if needed.
func (s *String) Reserve(n int) error {
	if n > maxStringLen {
		return &OverflowError{Kind: OverflowString, Limit: maxStringLen}
	}
	if s.heap == nil {
		if n <= sboThreshold {
			return nil
		}
		heap := s.alloc.Allocate(growCap(n))
		copy(heap, s.inl[:s.inlen])
		s.heap = heap[:s.inlen]
		return nil
	}
	if n <= cap(s.heap) {
		return nil
	}
	s.heap = s.alloc.Reallocate(s.heap, growCap(n))[:len(s.heap)]
	return nil
}

// growCap doubles capacity up to the point it matches n, the policy
// spec.md §4.B calls out explicitly ("reserve growth policy doubles
// capacity up to the maximum").
func growCap(n int) int {
	c := sboThreshold + 1
	for c < n {
		c *= 2
		if c <= 0 { // overflow
			return n
		}
	}
	if c > maxStringLen {
		c = maxStringLen
	}
	return c
}

// Append adds b to the end of the String, growing as necessary.
func (s *String) Append(b []byte) error {
	n := s.Len() + len(b)
	if n > maxStringLen {
		return &OverflowError{Kind: OverflowString, Limit: maxStringLen}
	}
	if s.heap == nil && n <= sboThreshold {
		copy(s.inl[s.inlen:], b)
		s.inlen += uint8(len(b))
		return nil
	}
	if err := s.Reserve(n); err != nil {
		return err
	}
	s.heap = append(s.heap, b...)
	return nil
}

// Reset empties s without releasing its heap storage, so the next
// sequence of Append calls can reuse the capacity already reserved.
func (s *String) Reset() {
	s.inlen = 0
	if s.heap != nil {
		s.heap = s.heap[:0]
	}
}

// Index returns the byte at position i.
func (s *String) Index(i int) byte { return s.Bytes()[i] }

// Slice returns a view of s.Bytes()[from:to]. The returned slice aliases
// s's storage and must not be retained past the next mutating call.
func (s *String) Slice(from, to int) []byte { return s.Bytes()[from:to] }

// Compare returns -1, 0 or 1 according to the lexicographic order of s
// and other's bytes, the same int-returning comparator convention lldb's
// collate usage followed in the now-retired dbm package.
func (s *String) Compare(other *String) int {
	a, b := s.Bytes(), other.Bytes()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether s and other hold the same bytes.
func (s *String) Equal(other *String) bool { return s.Compare(other) == 0 }

// Clone returns an independent copy of s using alloc. If alloc already
// equals s's own allocator, Clone still copies the bytes (containers
// never alias String storage across independent values).
func (s *String) Clone(alloc Allocator) *String {
	return NewStringFrom(alloc, s.Bytes())
}
