// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Comment scanning, enabled by ParseOptions.AllowComments (spec.md §6).
// Neither "//" nor "/* */" is part of standard JSON; both are accepted
// only between tokens, never inside one.

package njson

// appendByte stages one comment body byte, flushing to OnCommentPart
// first if the buffer is full.
func (c *commentAccum) appendByte(h Handler, b byte) bool {
	if c.buflen == len(c.buf) {
		if !h.OnCommentPart(c.buf[:c.buflen]) {
			return false
		}
		c.buflen = 0
	}
	c.buf[c.buflen] = b
	c.buflen++
	return true
}

// stepComment advances the comment scanner. done reports whether the
// comment has fully ended: at the line's newline (not consumed, so the
// caller's whitespace skipping sees it) for "//", or past the closing
// "*/" for "/* */".
func (p *Parser) stepComment(b []byte) (consumed int, done bool, err error) {
	c := &p.com
	i := 0
	n := len(b)

	if !c.started {
		if i >= n {
			return i, false, nil
		}
		switch b[i] {
		case '/':
			c.kind = commentLine
		case '*':
			c.kind = commentBlock
		default:
			return i, false, &SyntaxError{Src: "comment", Off: int64(i)}
		}
		c.started = true
		i++
	}

	switch c.kind {
	case commentLine:
		for i < n && b[i] != '\n' {
			if !c.appendByte(p.h, b[i]) {
				return i, false, &HandlerError{Event: "OnCommentPart"}
			}
			i++
		}
		if i >= n {
			return i, false, nil
		}
		return i, true, nil

	default: // commentBlock
		for i < n {
			ch := b[i]
			if c.sawStar && ch == '/' {
				i++
				return i, true, nil
			}
			if c.sawStar {
				// The pending '*' turned out to be ordinary body text,
				// not the start of "*/"; emit it before ch.
				if !c.appendByte(p.h, '*') {
					return i, false, &HandlerError{Event: "OnCommentPart"}
				}
				c.sawStar = false
			}
			if ch == '*' {
				c.sawStar = true
				i++
				continue
			}
			if !c.appendByte(p.h, ch) {
				return i, false, &HandlerError{Event: "OnCommentPart"}
			}
			i++
		}
		return i, false, nil
	}
}
