// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The Parser state machine (spec.md §4.F): a resumable, byte-driven
// tokenizer that validates and emits semantic events to a Handler without
// per-chunk allocation. Grounded on
// original_source/include/boost/json/basic_parser.hpp for the
// state/event shape, and on lldb/xact.go's nested begin/end/rollback
// counters for the suspend/resume bookkeeping style (a small integer
// state plus an explicit stack, no goroutines or language coroutines —
// spec.md §9 calls this out directly: "avoid language coroutines to
// preserve the ability to fail gracefully on partial input").

package njson

// pstate enumerates every point at which the Parser can suspend between
// bytes. Sub-states for strings, numbers and literals are tracked in
// their own small accumulator structs (parser_number.go, parser_string.go)
// rather than as additional pstate values, the same way falloc.go keeps
// a block's sub-kind (free/used, compressed or not) in the block's own
// header rather than in the Filer's state.
type pstate uint8

const (
	pDocLeadingWS pstate = iota
	pValue
	pDocTrailingWS
	pAfterValue
	pObjAfterOpen
	pObjBeforeKey
	pObjInKey
	pObjAfterKey
	pObjAfterColon
	pObjAfterValue
	pObjAfterComma
	pArrAfterOpen
	pArrBeforeValue
	pArrAfterValue
	pArrAfterComma
	pInString
	pInNumber
	pInLiteral
	pInComment
	pDone
)

type frameKind uint8

const (
	frameArray frameKind = iota
	frameObject
)

type frame struct {
	kind  frameKind
	count int32
}

// literalKind distinguishes which of true/false/null is in progress.
type literalKind uint8

const (
	litTrue literalKind = iota
	litFalse
	litNull
)

var literalText = [...]string{litTrue: "true", litFalse: "false", litNull: "null"}

type litAccum struct {
	kind literalKind
	pos  int
}

// commentKind distinguishes "//" from "/* */".
type commentKind uint8

const (
	commentLine commentKind = iota
	commentBlock
)

type commentAccum struct {
	started  bool // whether the second byte ('/' or '*') has been seen yet
	kind     commentKind
	buf      [stringPartBufSize]byte
	buflen   int
	sawStar  bool // block comments only: just saw '*', awaiting '/'
	resumeTo pstate
}

// Parser is a resumable, byte-driven JSON tokenizer. The zero Parser is
// not usable; construct one with NewParser.
type Parser struct {
	opts    ParseOptions
	h       Handler
	state   pstate
	stack   []frame
	started bool

	num numAccum
	str strAccum
	lit litAccum
	com commentAccum

	// pendingAfterValue records what state to resume into once the
	// current value token (string/number/literal) finishes, so the same
	// "after value" dispatch logic serves document-, array- and
	// object-level values alike.
	pendingAfterValue pstate

	finished bool
}

// NewParser returns a Parser that reports events to h using opts.
func NewParser(opts ParseOptions, h Handler) *Parser {
	p := &Parser{opts: opts.resolve(), h: h}
	return p
}

// Reset returns p to its initial state, preserving its Handler and
// ParseOptions (spec.md §4.F: "reset() returns the parser to initial
// state, preserving the handler and configuration").
func (p *Parser) Reset() {
	h, opts := p.h, p.opts
	*p = Parser{h: h, opts: opts}
}

func (p *Parser) pushFrame(k frameKind) error {
	if len(p.stack) >= p.opts.maxDepth {
		return &DepthError{MaxDepth: p.opts.maxDepth}
	}
	p.stack = append(p.stack, frame{kind: k})
	return nil
}

func (p *Parser) popFrame() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) top() *frame { return &p.stack[len(p.stack)-1] }

func isWS(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// Write feeds b into the parser. more reports whether additional chunks
// will follow; if false, any incomplete construct left at the end of b
// is reported as an *IncompleteError. Write returns the number of bytes
// of b it consumed — the caller must re-present any unconsumed suffix
// (which can only be nonzero right after a complete top-level value) on
// the next call.
func (p *Parser) Write(b []byte, more bool) (consumed int, err error) {
	defer func() {
		if se, ok := err.(*SyntaxError); ok {
			// Sub-machines report offsets relative to the slice they were
			// handed; every error return passes the failing index of b as
			// consumed.
			se.Off = int64(consumed)
		}
		if err == nil && !more && p.state != pDone && p.state != pDocTrailingWS {
			err = &IncompleteError{Src: "Write"}
		}
	}()
	i := 0
	n := len(b)

	for {
		// Comments between tokens inside a container: pValue and
		// pDocTrailingWS dispatch '/' themselves.
		if p.opts.AllowComments && p.state >= pObjAfterOpen && p.state <= pArrAfterComma {
			for i < n && isWS(b[i]) {
				i++
			}
			if i < n && b[i] == '/' {
				i++
				p.com = commentAccum{resumeTo: p.state}
				p.state = pInComment
				continue
			}
		}
		switch p.state {
		case pDone:
			return i, nil

		case pDocLeadingWS:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if !p.started {
				p.started = true
				if !p.h.OnDocumentBegin() {
					return i, &HandlerError{Event: "OnDocumentBegin"}
				}
			}
			p.pendingAfterValue = pDocTrailingWS
			p.state = pValue

		case pValue:
			if i >= n {
				return i, nil
			}
			c := b[i]
			switch dispatchTable[c] {
			case classWS:
				i++
				continue
			case classObjOpen:
				i++
				if err := p.pushFrame(frameObject); err != nil {
					return i, err
				}
				if !p.h.OnObjectBegin() {
					return i, &HandlerError{Event: "OnObjectBegin"}
				}
				p.state = pObjAfterOpen
			case classArrOpen:
				i++
				if err := p.pushFrame(frameArray); err != nil {
					return i, err
				}
				if !p.h.OnArrayBegin() {
					return i, &HandlerError{Event: "OnArrayBegin"}
				}
				p.state = pArrAfterOpen
			case classQuote:
				i++
				p.str.reset(false)
				p.state = pInString
			case classMinus, classDigit:
				p.num.reset()
				p.state = pInNumber
				// do not advance i: number state re-reads this byte
			case classT:
				p.lit = litAccum{kind: litTrue}
				p.state = pInLiteral
			case classF:
				p.lit = litAccum{kind: litFalse}
				p.state = pInLiteral
			case classN:
				p.lit = litAccum{kind: litNull}
				p.state = pInLiteral
			case classSlash:
				if !p.opts.AllowComments {
					return i, &SyntaxError{Src: "value", Off: int64(i)}
				}
				i++
				p.com = commentAccum{resumeTo: pValue}
				p.state = pInComment
			default:
				return i, &SyntaxError{Src: "value", Off: int64(i)}
			}

		case pInNumber:
			consumedHere, done, nerr := p.stepNumber(b[i:], more)
			i += consumedHere
			if nerr != nil {
				return i, nerr
			}
			if !done {
				return i, nil
			}
			if !p.num.emit(p.h) {
				return i, &HandlerError{Event: "OnNumber"}
			}
			p.state = p.pendingAfterValue

		case pInLiteral:
			text := literalText[p.lit.kind]
			for i < n && p.lit.pos < len(text) {
				if b[i] != text[p.lit.pos] {
					return i, &SyntaxError{Src: "literal", Off: int64(i)}
				}
				i++
				p.lit.pos++
			}
			if p.lit.pos < len(text) {
				return i, nil
			}
			var ok bool
			switch p.lit.kind {
			case litTrue:
				ok = p.h.OnBool(true)
			case litFalse:
				ok = p.h.OnBool(false)
			case litNull:
				ok = p.h.OnNull()
			}
			if !ok {
				return i, &HandlerError{Event: "OnLiteral"}
			}
			p.state = p.pendingAfterValue

		case pInString:
			consumedHere, done, serr := p.stepString(b[i:])
			i += consumedHere
			if serr != nil {
				return i, serr
			}
			if !done {
				return i, nil
			}
			if !p.str.flushFinal(p.h) {
				return i, &HandlerError{Event: "OnString"}
			}
			p.state = p.pendingAfterValue

		case pInComment:
			consumedHere, done, cerr := p.stepComment(b[i:])
			i += consumedHere
			if cerr != nil {
				return i, cerr
			}
			if !done {
				return i, nil
			}
			resume := p.com.resumeTo
			if p.com.buflen > 0 {
				if !p.h.OnComment(p.com.buf[:p.com.buflen]) {
					return i, &HandlerError{Event: "OnComment"}
				}
			}
			p.state = resume

		case pAfterValue:
			if len(p.stack) == 0 {
				p.state = pDocTrailingWS
				continue
			}
			switch p.top().kind {
			case frameObject:
				p.state = pObjAfterValue
			case frameArray:
				p.state = pArrAfterValue
			}

		case pObjAfterOpen:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] == '}' {
				i++
				sz := p.top().count
				p.popFrame()
				if !p.h.OnObjectEnd(int(sz)) {
					return i, &HandlerError{Event: "OnObjectEnd"}
				}
				p.pendingAfterValue = pAfterValue
				p.state = pAfterValue
				continue
			}
			p.state = pObjBeforeKey

		case pObjBeforeKey:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] != '"' {
				return i, &SyntaxError{Src: "object key", Off: int64(i)}
			}
			i++
			p.str.reset(true)
			p.pendingAfterValue = pObjAfterKey
			p.state = pInString

		case pObjAfterKey:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] != ':' {
				return i, &SyntaxError{Src: "object colon", Off: int64(i)}
			}
			i++
			p.state = pObjAfterColon

		case pObjAfterColon:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			p.top().count++
			p.pendingAfterValue = pAfterValue
			p.state = pValue

		case pObjAfterValue:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			switch b[i] {
			case ',':
				i++
				p.state = pObjAfterComma
			case '}':
				i++
				sz := p.top().count
				p.popFrame()
				if !p.h.OnObjectEnd(int(sz)) {
					return i, &HandlerError{Event: "OnObjectEnd"}
				}
				p.pendingAfterValue = pAfterValue
				p.state = pAfterValue
			default:
				return i, &SyntaxError{Src: "object after value", Off: int64(i)}
			}

		case pObjAfterComma:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] == '}' && p.opts.AllowTrailingCommas {
				i++
				sz := p.top().count
				p.popFrame()
				if !p.h.OnObjectEnd(int(sz)) {
					return i, &HandlerError{Event: "OnObjectEnd"}
				}
				p.pendingAfterValue = pAfterValue
				p.state = pAfterValue
				continue
			}
			p.state = pObjBeforeKey

		case pArrAfterOpen:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] == ']' {
				i++
				sz := p.top().count
				p.popFrame()
				if !p.h.OnArrayEnd(int(sz)) {
					return i, &HandlerError{Event: "OnArrayEnd"}
				}
				p.pendingAfterValue = pAfterValue
				p.state = pAfterValue
				continue
			}
			p.state = pArrBeforeValue

		case pArrBeforeValue:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			p.top().count++
			p.pendingAfterValue = pAfterValue
			p.state = pValue

		case pArrAfterValue:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			switch b[i] {
			case ',':
				i++
				p.state = pArrAfterComma
			case ']':
				i++
				sz := p.top().count
				p.popFrame()
				if !p.h.OnArrayEnd(int(sz)) {
					return i, &HandlerError{Event: "OnArrayEnd"}
				}
				p.pendingAfterValue = pAfterValue
				p.state = pAfterValue
			default:
				return i, &SyntaxError{Src: "array after value", Off: int64(i)}
			}

		case pArrAfterComma:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] == ']' && p.opts.AllowTrailingCommas {
				i++
				sz := p.top().count
				p.popFrame()
				if !p.h.OnArrayEnd(int(sz)) {
					return i, &HandlerError{Event: "OnArrayEnd"}
				}
				p.pendingAfterValue = pAfterValue
				p.state = pAfterValue
				continue
			}
			p.state = pArrBeforeValue

		case pDocTrailingWS:
			for i < n && isWS(b[i]) {
				i++
			}
			if i >= n {
				return i, nil
			}
			if b[i] == '/' {
				if !p.opts.AllowComments {
					return i, &SyntaxError{Src: "trailing", Off: int64(i)}
				}
				i++
				p.com = commentAccum{resumeTo: pDocTrailingWS}
				p.state = pInComment
				continue
			}
			return i, &SyntaxError{Src: "trailing data", Off: int64(i)}

		default:
			return i, &SyntaxError{Src: "internal", Off: int64(i)}
		}

		if i >= n {
			if p.state == pAfterValue && len(p.stack) == 0 {
				p.state = pDocTrailingWS
			}
			if p.state == pDocTrailingWS && !more {
				if !p.finished {
					p.finished = true
					if !p.h.OnDocumentEnd() {
						return i, &HandlerError{Event: "OnDocumentEnd"}
					}
				}
				p.state = pDone
			}
			return i, nil
		}
	}
}

// Finish signals end of input. Any state other than "waiting for trailing
// whitespace after the single top-level value" is reported as an
// *IncompleteError.
func (p *Parser) Finish() error {
	if p.state == pDone {
		return nil
	}
	if p.state != pDocTrailingWS || len(p.stack) != 0 {
		return &IncompleteError{Src: "Finish"}
	}
	if !p.finished {
		p.finished = true
		if !p.h.OnDocumentEnd() {
			return &HandlerError{Event: "OnDocumentEnd"}
		}
	}
	p.state = pDone
	return nil
}
