// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package njson

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// validate feeds each byte of b through a fresh utf8Validator and reports
// whether every byte was accepted and the validator ended outside a
// partial sequence.
func validate(b []byte) bool {
	var u utf8Validator
	for _, c := range b {
		if c < 0x80 {
			if u.inProgress() {
				return false
			}
			continue
		}
		if !u.step(c) {
			return false
		}
	}
	return !u.inProgress()
}

func TestUTF8ValidatorAcceptsASCII(t *testing.T) {
	assert.True(t, validate([]byte("hello world")))
}

func TestUTF8ValidatorAcceptsMultibyteSequences(t *testing.T) {
	cases := []string{
		"café",       // 2-byte
		"日本語",        // 3-byte
		"𝄞",           // 4-byte (musical symbol, U+1D11E)
		"Zé水\U0001F600", // mixed widths
	}
	for _, s := range cases {
		assert.True(t, validate([]byte(s)), "%q", s)
		assert.True(t, utf8.ValidString(s), "sanity: %q should be valid per stdlib too", s)
	}
}

func TestUTF8ValidatorRejectsOverlongEncoding(t *testing.T) {
	// Overlong 3-byte encoding of U+0000 (0xE0 0x80 0x80): the lo/hi
	// range for the lead byte 0xE0 disallows the first continuation
	// byte 0x80.
	assert.False(t, validate([]byte{0xE0, 0x80, 0x80}))
}

func TestUTF8ValidatorRejectsSurrogateRange(t *testing.T) {
	// 0xED 0xA0 0x80 would decode to U+D800, a lone surrogate; the
	// 0xED lead byte's restricted continuation range excludes it.
	assert.False(t, validate([]byte{0xED, 0xA0, 0x80}))
}

func TestUTF8ValidatorRejectsPastMaxCodePoint(t *testing.T) {
	// 0xF4 0x90 0x80 0x80 would decode past U+10FFFF; the 0xF4 lead
	// byte's restricted continuation range excludes 0x90.
	assert.False(t, validate([]byte{0xF4, 0x90, 0x80, 0x80}))
}

func TestUTF8ValidatorResumesSuspendedSequence(t *testing.T) {
	var u utf8Validator
	assert.True(t, u.step(0xE1)) // 3-byte lead, awaiting two continuations
	assert.True(t, u.inProgress())
	assert.True(t, u.step(0x80)) // first continuation
	assert.True(t, u.inProgress())
	// sequence suspended mid-flight; a fresh byte stream picking up here
	// (as a resumable parser would across a Write boundary) must still
	// complete it correctly.
	assert.True(t, u.step(0x80))
	assert.False(t, u.inProgress())
}

func TestUTF8ValidatorResetClearsState(t *testing.T) {
	var u utf8Validator
	u.step(0xE1)
	u.reset()
	assert.False(t, u.inProgress())
	assert.True(t, u.step(0xC2)) // fresh 2-byte lead, accepted from a clean Start state
	assert.True(t, u.inProgress())
}
