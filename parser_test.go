// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseAll drives p over all of src in a single Write, then Finish.
func parseAll(t *testing.T, opts ParseOptions, src string) *Builder {
	t.Helper()
	b := NewBuilder(DefaultAllocator())
	p := NewParser(opts, b)
	n, err := p.Write([]byte(src), false)
	require.NoError(t, err)
	require.Equal(t, len(src), n)
	require.NoError(t, p.Finish())
	return b
}

// parseChunked feeds src one byte at a time, exercising the suspend/
// resume path on every single state transition.
func parseChunked(t *testing.T, opts ParseOptions, src string) *Builder {
	t.Helper()
	b := NewBuilder(DefaultAllocator())
	p := NewParser(opts, b)
	buf := []byte(src)
	for i := 0; i < len(buf); i++ {
		more := i < len(buf)-1
		chunk := buf[i : i+1]
		for len(chunk) > 0 {
			n, err := p.Write(chunk, true)
			require.NoError(t, err)
			chunk = chunk[n:]
			if n == 0 {
				break
			}
		}
		_ = more
	}
	require.NoError(t, p.Finish())
	return b
}

func TestParserScalars(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"0", KindInt64},
		{"-17", KindInt64},
		{"18446744073709551615", KindUint64},
		{"1.5", KindDouble},
		{"1e10", KindDouble},
		{`"hello"`, KindString},
		{"[]", KindArray},
		{"{}", KindObject},
	}
	for _, c := range cases {
		b := parseAll(t, ParseOptions{}, c.src)
		v := b.Value()
		assert.Equal(t, c.kind, v.Kind(), "src=%s", c.src)
	}
}

func TestParserNumberNarrowing(t *testing.T) {
	b := parseAll(t, ParseOptions{}, "-9223372036854775808")
	v := b.Value()
	require.Equal(t, KindInt64, v.Kind())
	assert.Equal(t, int64(-9223372036854775808), v.Int64())

	b = parseAll(t, ParseOptions{}, "9223372036854775807")
	v = b.Value()
	assert.Equal(t, int64(9223372036854775807), v.Int64())

	b = parseAll(t, ParseOptions{}, "18446744073709551615")
	v = b.Value()
	assert.Equal(t, uint64(18446744073709551615), v.Uint64())

	b = parseAll(t, ParseOptions{}, "1.0")
	v = b.Value()
	require.Equal(t, KindDouble, v.Kind())
	assert.Equal(t, 1.0, v.Double())

	b = parseAll(t, ParseOptions{}, "100000000000000000000")
	v = b.Value()
	require.Equal(t, KindDouble, v.Kind())
	assert.Equal(t, 1e20, v.Double())
}

func TestParserObjectAndArray(t *testing.T) {
	src := `{"a": 1, "b": [1, 2, 3], "c": {"d": null}, "e": "text"}`
	b := parseAll(t, ParseOptions{}, src)
	root := b.Value()
	require.Equal(t, KindObject, root.Kind())
	obj := root.Obj()
	require.Equal(t, 4, obj.Len())

	av, ok := obj.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, int64(1), av.Int64())

	bv, ok := obj.Get([]byte("b"))
	require.True(t, ok)
	require.Equal(t, KindArray, bv.Kind())
	assert.Equal(t, 3, bv.Arr().Len())

	cv, ok := obj.Get([]byte("c"))
	require.True(t, ok)
	dv, ok := cv.Obj().Get([]byte("d"))
	require.True(t, ok)
	assert.True(t, dv.IsNull())

	ev, ok := obj.Get([]byte("e"))
	require.True(t, ok)
	assert.Equal(t, "text", string(ev.Str().Bytes()))
}

func TestParserChunkedByteAtATime(t *testing.T) {
	src := `{"nested": [1, 2.5, "escéape", true, null, {"x": -3}]}`
	b := parseChunked(t, ParseOptions{}, src)
	root := b.Value()
	require.Equal(t, KindObject, root.Kind())
	nested, ok := root.Obj().Get([]byte("nested"))
	require.True(t, ok)
	require.Equal(t, 6, nested.Arr().Len())
	assert.Equal(t, "escéape", string(nested.Arr().At(2).Str().Bytes()))
}

func TestParserStringEscapes(t *testing.T) {
	cases := map[string]string{
		`"\n"`:          "\n",
		`"\t\r\b\f"`:    "\t\r\b\f",
		`"\""`:          "\"",
		`"\\"`:          "\\",
		`"\/"`:          "/",
		"\"\\u0041\"":       "A",
		"\"\\ud83d\\ude00\"": "😀",
	}
	for src, want := range cases {
		b := parseAll(t, ParseOptions{}, src)
		v := b.Value()
		assert.Equal(t, want, string(v.Str().Bytes()), "src=%s", src)
	}
}

func TestParserSurrogateErrors(t *testing.T) {
	cases := []string{
		`"\ud83d"`,         // lone high surrogate, EOF
		`"\ud83dx"`,        // high surrogate not followed by backslash
		`"\udc00"`,         // lone low surrogate
	}
	for _, src := range cases {
		b := NewBuilder(DefaultAllocator())
		p := NewParser(ParseOptions{}, b)
		_, err := p.Write([]byte(src), false)
		if err == nil {
			err = p.Finish()
		}
		assert.Error(t, err, "src=%q", src)
	}
}

func TestParserRejectsLeadingZero(t *testing.T) {
	b := NewBuilder(DefaultAllocator())
	p := NewParser(ParseOptions{}, b)
	_, err := p.Write([]byte("01"), false)
	assert.Error(t, err)
}

func TestParserRejectsTrailingComma(t *testing.T) {
	b := NewBuilder(DefaultAllocator())
	p := NewParser(ParseOptions{}, b)
	_, err := p.Write([]byte("[1,]"), false)
	if err == nil {
		err = p.Finish()
	}
	assert.Error(t, err)
}

func TestParserAllowsTrailingComma(t *testing.T) {
	opts := ParseOptions{AllowTrailingCommas: true}
	b := parseAll(t, opts, "[1, 2,]")
	v := b.Value()
	assert.Equal(t, 2, v.Arr().Len())

	b = parseAll(t, opts, `{"a": 1,}`)
	v = b.Value()
	assert.Equal(t, 1, v.Obj().Len())
}

func TestParserComments(t *testing.T) {
	opts := ParseOptions{AllowComments: true}
	src := "{\n  // a line comment\n  \"a\": 1,\n  /* block\n comment */\n  \"b\": 2\n}"
	b := parseAll(t, opts, src)
	root := b.Value()
	obj := root.Obj()
	require.Equal(t, 2, obj.Len())
	av, _ := obj.Get([]byte("a"))
	assert.Equal(t, int64(1), av.Int64())
}

func TestParserCommentsDisabledByDefault(t *testing.T) {
	b := NewBuilder(DefaultAllocator())
	p := NewParser(ParseOptions{}, b)
	_, err := p.Write([]byte("// nope\n1"), false)
	assert.Error(t, err)
}

func TestParserDepthLimit(t *testing.T) {
	opts := ParseOptions{MaxDepth: 2}
	b := NewBuilder(DefaultAllocator())
	p := NewParser(opts, b)
	_, err := p.Write([]byte("[[[1]]]"), false)
	var de *DepthError
	assert.ErrorAs(t, err, &de)
}

func TestParserDuplicateKeyLastWins(t *testing.T) {
	b := parseAll(t, ParseOptions{}, `{"a": 1, "a": 2}`)
	root := b.Value()
	obj := root.Obj()
	require.Equal(t, 1, obj.Len())
	v, ok := obj.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int64())
}

func TestParserReset(t *testing.T) {
	b := NewBuilder(DefaultAllocator())
	p := NewParser(ParseOptions{}, b)
	_, err := p.Write([]byte("1"), false)
	require.NoError(t, err)
	require.NoError(t, p.Finish())

	p.Reset()
	b.Reset()
	_, err = p.Write([]byte("2"), false)
	require.NoError(t, err)
	require.NoError(t, p.Finish())
	v := b.Value()
	assert.Equal(t, int64(2), v.Int64())
}
