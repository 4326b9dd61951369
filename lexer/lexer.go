package lexer

import (
	"strings"

	"github.com/lookbusy1344/gekko-assembler/isa"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// IdentifierMode selects which characters extend an identifier run, per
// spec.md §4.3.
type IdentifierMode int

const (
	Typical IdentifierMode = iota
	Mnemonic
	Directive
)

// Lexer is a single-threaded cooperative scanner over one source string. It
// buffers lookahead tokens in a deque so callers can peek without consuming.
type Lexer struct {
	src      string
	filename string
	pos      int
	line     int
	col      int
	mode     IdentifierMode
	lookBuf  []Token
}

// New creates a Lexer over src.
func New(src, filename string) *Lexer {
	return &Lexer{src: src, filename: filename, mode: Typical}
}

// SetMode switches the identifier-matching rule. Per spec.md §4.3, this
// invalidates any buffered lookahead so it is re-lexed under the new rule.
func (l *Lexer) SetMode(m IdentifierMode) {
	if l.mode == m {
		return
	}
	l.mode = m
	if len(l.lookBuf) > 0 {
		l.pos = l.lookBuf[0].Span.Begin
		l.line = l.lookBuf[0].Pos.Line
		l.col = l.lookBuf[0].Pos.Column
		l.lookBuf = nil
	}
}

// Lookahead returns the token n positions ahead (0 = next token) without
// consuming it.
func (l *Lexer) Lookahead(n int) Token {
	for len(l.lookBuf) <= n {
		l.lookBuf = append(l.lookBuf, l.lexOne())
	}
	return l.lookBuf[n]
}

// Eat consumes and returns the next token.
func (l *Lexer) Eat() Token {
	if len(l.lookBuf) > 0 {
		t := l.lookBuf[0]
		l.lookBuf = l.lookBuf[1:]
		return t
	}
	return l.lexOne()
}

// LookaheadFloat re-lexes the next whitespace-delimited run using the float
// DFA, per spec.md §4.3 ("the only place floats get lexed"). It discards any
// buffered non-float lookahead for that run.
func (l *Lexer) LookaheadFloat() Token {
	if len(l.lookBuf) > 0 {
		first := l.lookBuf[0]
		l.pos = first.Span.Begin
		l.line = first.Pos.Line
		l.col = first.Pos.Column
		l.lookBuf = nil
	}
	l.skipWs()
	return l.lexFloat()
}

func (l *Lexer) curPos() shared.Position {
	return shared.Position{Filename: l.filename, Index: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.peekByte()
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) skipWs() {
	for {
		c := l.peekByte()
		if c == ' ' || c == '\t' || c == '\r' {
			l.advance()
			continue
		}
		if c == '#' {
			for l.peekByte() != '\n' && l.peekByte() != 0 {
				l.advance()
			}
			continue
		}
		break
	}
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) identExtra(c byte) bool {
	switch l.mode {
	case Mnemonic:
		return c == '+' || c == '-' || c == '.'
	case Directive:
		return false
	}
	return false
}

func (l *Lexer) identHeadOk(c byte) bool {
	if isAlpha(c) {
		return true
	}
	if l.mode == Directive && isDigit(c) {
		return true
	}
	return false
}

func (l *Lexer) lexOne() Token {
	l.skipWs()
	start := l.pos
	startPos := l.curPos()

	c := l.peekByte()
	if c == 0 {
		return Token{Type: Eof, Pos: startPos, Span: shared.Interval{Begin: start}}
	}
	if c == '\n' {
		l.advance()
		return Token{Type: Eol, Literal: "\n", Pos: startPos, Span: shared.Interval{Begin: start, Len: 1}}
	}

	if l.identHeadOk(c) {
		return l.lexIdentOrNumber(start, startPos)
	}
	if isDigit(c) {
		return l.lexNumber(start, startPos)
	}
	if c == '"' {
		return l.lexString(start, startPos)
	}

	single := map[byte]TokenType{
		'.': Dot, ':': Colon, ',': Comma, '(': Lparen, ')': Rparen,
		'|': Pipe, '^': Caret, '&': Ampersand, '+': Plus, '-': Minus,
		'*': Star, '/': Slash, '~': Tilde, '`': Grave, '@': At,
	}
	if c == '<' && l.peekByteAt(1) == '<' {
		l.advance()
		l.advance()
		return Token{Type: Lsh, Literal: "<<", Pos: startPos, Span: shared.Interval{Begin: start, Len: 2}}
	}
	if c == '>' && l.peekByteAt(1) == '>' {
		l.advance()
		l.advance()
		return Token{Type: Rsh, Literal: ">>", Pos: startPos, Span: shared.Interval{Begin: start, Len: 2}}
	}
	if c == '<' || c == '>' {
		l.advance()
		return Token{Type: Invalid, Literal: string(c), Pos: startPos,
			Span: shared.Interval{Begin: start, Len: 1}, InvalidWhy: "Unrecognized character"}
	}
	if tt, ok := single[c]; ok {
		l.advance()
		return Token{Type: tt, Literal: string(c), Pos: startPos, Span: shared.Interval{Begin: start, Len: 1}}
	}

	l.advance()
	return Token{Type: Invalid, Literal: string(c), Pos: startPos,
		Span: shared.Interval{Begin: start, Len: 1}, InvalidWhy: "Unrecognized character"}
}

func (l *Lexer) lexIdentOrNumber(start int, startPos shared.Position) Token {
	for isAlpha(l.peekByte()) || isDigit(l.peekByte()) || l.identExtra(l.peekByte()) {
		l.advance()
	}
	text := l.src[start:l.pos]
	span := shared.Interval{Begin: start, Len: l.pos - start}

	if l.mode == Directive {
		return Token{Type: Identifier, Literal: text, Pos: startPos, Span: span}
	}

	if n, ok := isa.ClassifyGPR(text); ok {
		return Token{Type: GPR, Literal: text, Pos: startPos, Span: span, RegNum: n}
	}
	if n, ok := isa.ClassifyFPR(text); ok {
		return Token{Type: FPR, Literal: text, Pos: startPos, Span: span, RegNum: n}
	}
	if n, ok := isa.ClassifyCRField(text); ok {
		return Token{Type: CRField, Literal: text, Pos: startPos, Span: span, RegNum: n}
	}
	if n, ok := isa.ClassifyCRFlag(text); ok {
		kinds := map[uint32]TokenType{0: Lt, 1: Gt, 2: Eq, 3: So}
		return Token{Type: kinds[n], Literal: text, Pos: startPos, Span: span, RegNum: n}
	}
	if n, ok := isa.LookupSPR(strings.ToLower(text)); ok {
		return Token{Type: SPR, Literal: text, Pos: startPos, Span: span, RegNum: n}
	}
	return Token{Type: Identifier, Literal: text, Pos: startPos, Span: span}
}

func (l *Lexer) lexNumber(start int, startPos shared.Position) Token {
	if l.peekByte() == '0' && (l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X') {
		l.advance()
		l.advance()
		for isHexDigit(l.peekByte()) {
			l.advance()
		}
		return l.numToken(HexLit, start, startPos)
	}
	if l.peekByte() == '0' && (l.peekByteAt(1) == 'b' || l.peekByteAt(1) == 'B') {
		l.advance()
		l.advance()
		for l.peekByte() == '0' || l.peekByte() == '1' {
			l.advance()
		}
		return l.numToken(BinLit, start, startPos)
	}
	if l.peekByte() == '0' && isDigit(l.peekByteAt(1)) {
		l.advance()
		for l.peekByte() >= '0' && l.peekByte() <= '7' {
			l.advance()
		}
		return l.numToken(OctLit, start, startPos)
	}
	for isDigit(l.peekByte()) {
		l.advance()
	}
	return l.numToken(DecLit, start, startPos)
}

func (l *Lexer) numToken(tt TokenType, start int, startPos shared.Position) Token {
	text := l.src[start:l.pos]
	return Token{Type: tt, Literal: text, Pos: startPos, Span: shared.Interval{Begin: start, Len: l.pos - start}}
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// lexFloat implements the nine-state float DFA of spec.md §4.3:
// [+-]? (digits (\. digits)? | \. digits) (e [+-]? digits)?
func (l *Lexer) lexFloat() Token {
	start := l.pos
	startPos := l.curPos()

	if l.peekByte() == '+' || l.peekByte() == '-' {
		l.advance()
	}
	sawDigits := false
	for isDigit(l.peekByte()) {
		l.advance()
		sawDigits = true
	}
	if l.peekByte() == '.' {
		l.advance()
		fracStart := l.pos
		for isDigit(l.peekByte()) {
			l.advance()
		}
		if l.pos == fracStart {
			return Token{Type: Invalid, Pos: startPos, Span: shared.Interval{Begin: start, Len: l.pos - start},
				InvalidWhy: "no numeric value after decimal point"}
		}
		sawDigits = true
	}
	if !sawDigits {
		return Token{Type: Invalid, Pos: startPos, Span: shared.Interval{Begin: start, Len: l.pos - start},
			InvalidWhy: "no numeric value in float literal"}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		l.advance()
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advance()
		}
		expStart := l.pos
		for isDigit(l.peekByte()) {
			l.advance()
		}
		if l.pos == expStart {
			return Token{Type: Invalid, Pos: startPos, Span: shared.Interval{Begin: start, Len: l.pos - start},
				InvalidWhy: "no numeric value following exponent signifier"}
		}
	}
	text := l.src[start:l.pos]
	return Token{Type: FloatLit, Literal: text, Pos: startPos, Span: shared.Interval{Begin: start, Len: l.pos - start}}
}

// lexString implements the C-style string DFA of spec.md §4.3.
func (l *Lexer) lexString(start int, startPos shared.Position) Token {
	l.advance() // opening quote
	var sb strings.Builder
	sb.WriteByte('"')
	for {
		c := l.peekByte()
		if c == 0 || c == '\n' {
			return Token{Type: Invalid, Literal: sb.String(), Pos: startPos,
				Span: shared.Interval{Begin: start, Len: l.pos - start},
				InvalidWhy: "no terminating \""}
		}
		if c == '"' {
			l.advance()
			sb.WriteByte('"')
			break
		}
		if c == '\\' {
			sb.WriteByte(l.advance())
			if l.peekByte() != 0 && l.peekByte() != '\n' {
				sb.WriteByte(l.advance())
			}
			continue
		}
		sb.WriteByte(l.advance())
	}
	return Token{Type: StringLit, Literal: sb.String(), Pos: startPos, Span: shared.Interval{Begin: start, Len: l.pos - start}}
}
