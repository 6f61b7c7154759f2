// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serialize drains sr through a small buffer, forcing the resumable
// Read path to suspend and resume repeatedly rather than completing in
// one call.
func serialize(t *testing.T, v Value) []byte {
	t.Helper()
	sr := NewSerializer(v, SerializeOptions{})
	var out []byte
	buf := make([]byte, 3)
	for !sr.Done() {
		n := sr.Read(buf)
		if n == 0 && !sr.Done() {
			t.Fatal("serializer made no progress before Done")
		}
		out = append(out, buf[:n]...)
	}
	return out
}

func buildTree(t *testing.T, src string) Value {
	t.Helper()
	b := NewBuilder(DefaultAllocator())
	p := NewParser(ParseOptions{}, b)
	_, err := p.Write([]byte(src), false)
	require.NoError(t, err)
	require.NoError(t, p.Finish())
	return b.Value()
}

func TestSerializerRoundTripsThroughOracle(t *testing.T) {
	cases := []string{
		`null`,
		`true`,
		`false`,
		`0`,
		`-42`,
		`1.5`,
		`"hello"`,
		`"line\nbreak\tand\"quote\\slash/"`,
		`[]`,
		`{}`,
		`[1,2,3]`,
		`{"a":1,"b":[true,false,null],"c":{"nested":"value"}}`,
	}
	for _, src := range cases {
		tree := buildTree(t, src)
		out := serialize(t, tree)

		var want interface{}
		require.NoError(t, jsoniter.Unmarshal([]byte(src), &want))
		var got interface{}
		require.NoError(t, jsoniter.Unmarshal(out, &got), "output=%s", out)
		assert.Equal(t, want, got, "src=%s out=%s", src, out)
	}
}

func TestSerializerEscapesControlCharsCanonically(t *testing.T) {
	tree := buildTree(t, "\"\\u0001\"")
	out := serialize(t, tree)
	assert.Equal(t, "\"\\u0001\"", string(out))
}

func TestSerializerObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject(DefaultAllocator())
	o.Set([]byte("z"), NewInt64(1))
	o.Set([]byte("a"), NewInt64(2))
	o.Set([]byte("m"), NewInt64(3))
	out := serialize(t, NewObjectValue(o))
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))
}

func TestSerializerReset(t *testing.T) {
	sr := NewSerializer(NewInt64(1), SerializeOptions{})
	buf := make([]byte, 16)
	n := sr.Read(buf)
	assert.Equal(t, "1", string(buf[:n]))
	assert.True(t, sr.Done())

	sr.Reset(NewBool(true))
	n = sr.Read(buf)
	assert.Equal(t, "true", string(buf[:n]))
}

func TestSerializerRoundTripAfterParse(t *testing.T) {
	src := `{"numbers":[0,-1,9223372036854775807,1.25,1e20],"s":"café"}`
	tree := buildTree(t, src)
	out := serialize(t, tree)

	reparsed := buildTree(t, string(out))
	assert.True(t, reparsed.Equal(&tree))
}
