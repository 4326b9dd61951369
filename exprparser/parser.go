// Package exprparser implements the recursive-descent expression grammar of
// spec.md §4.4: full C-like operator precedence, `@ha`/`@l` fixups, and the
// backtick-delimited absolute-address marker. The grammar is plugin-driven:
// every syntactic event is reported to a Plugin so the same parser can
// drive both real IR generation and editor tooling (spec.md §4.4, §9).
package exprparser

import (
	"fmt"

	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// SymbolResolver looks up identifiers against the in-progress program's
// symbol table and exposes the current cursor address for the `.` primary.
type SymbolResolver interface {
	Resolve(name string) (int64, bool)
	CurrentAddress() int64
}

// Plugin receives one callback per syntactic event, per spec.md §4.4.
type Plugin interface {
	OnTerminal(tok lexer.Token)
	OnOperator(tok lexer.Token)
	OnParenOpen(tok lexer.Token)
	OnParenClose(tok lexer.Token)
	OnHaFixup(tok lexer.Token)
	OnLFixup(tok lexer.Token)
}

// NopPlugin implements Plugin with no-op methods; embed it to implement
// only the callbacks a particular consumer cares about.
type NopPlugin struct{}

func (NopPlugin) OnTerminal(lexer.Token)  {}
func (NopPlugin) OnOperator(lexer.Token)  {}
func (NopPlugin) OnParenOpen(lexer.Token) {}
func (NopPlugin) OnParenClose(lexer.Token) {}
func (NopPlugin) OnHaFixup(lexer.Token)   {}
func (NopPlugin) OnLFixup(lexer.Token)    {}

// Value is the result of parsing one expression: its integer value and
// whether it was written with the backtick "absolute marker" delimiter
// (spec.md §4.4, §9's "PC-relative vs absolute operands" note).
type Value struct {
	Int        int64
	IsBacktick bool
	Span       shared.Interval
}

// Parser runs the expression grammar over a Lexer.
type Parser struct {
	lex      *lexer.Lexer
	sym      SymbolResolver
	plugin   Plugin
	filename string
}

// New creates an expression Parser reading from lex, resolving identifiers
// via sym, and reporting syntactic events to plugin (use NopPlugin{} if
// none are needed).
func New(lex *lexer.Lexer, sym SymbolResolver, plugin Plugin) *Parser {
	if plugin == nil {
		plugin = NopPlugin{}
	}
	return &Parser{lex: lex, sym: sym, plugin: plugin}
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) error {
	return &shared.AssemblerError{
		Pos:     tok.Pos,
		Kind:    shared.ErrorSyntax,
		Message: fmt.Sprintf(format, args...),
		SpanLen: tok.Span.Len,
	}
}

// ParseExpression parses one full expression at the lowest precedence
// level (bitwise OR), per spec.md §4.4.
func (p *Parser) ParseExpression() (Value, error) {
	return p.parseBitOr()
}

func (p *Parser) parseBitOr() (Value, error) {
	left, err := p.parseBitXor()
	if err != nil {
		return Value{}, err
	}
	for p.lex.Lookahead(0).Type == lexer.Pipe {
		op := p.lex.Eat()
		p.plugin.OnOperator(op)
		right, err := p.parseBitXor()
		if err != nil {
			return Value{}, err
		}
		left = Value{Int: left.Int | right.Int}
	}
	return left, nil
}

func (p *Parser) parseBitXor() (Value, error) {
	left, err := p.parseBitAnd()
	if err != nil {
		return Value{}, err
	}
	for p.lex.Lookahead(0).Type == lexer.Caret {
		op := p.lex.Eat()
		p.plugin.OnOperator(op)
		right, err := p.parseBitAnd()
		if err != nil {
			return Value{}, err
		}
		left = Value{Int: left.Int ^ right.Int}
	}
	return left, nil
}

func (p *Parser) parseBitAnd() (Value, error) {
	left, err := p.parseShift()
	if err != nil {
		return Value{}, err
	}
	for p.lex.Lookahead(0).Type == lexer.Ampersand {
		op := p.lex.Eat()
		p.plugin.OnOperator(op)
		right, err := p.parseShift()
		if err != nil {
			return Value{}, err
		}
		left = Value{Int: left.Int & right.Int}
	}
	return left, nil
}

func (p *Parser) parseShift() (Value, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return Value{}, err
	}
	for {
		t := p.lex.Lookahead(0).Type
		if t != lexer.Lsh && t != lexer.Rsh {
			break
		}
		op := p.lex.Eat()
		p.plugin.OnOperator(op)
		right, err := p.parseAddSub()
		if err != nil {
			return Value{}, err
		}
		if t == lexer.Lsh {
			left = Value{Int: left.Int << uint(right.Int)}
		} else {
			left = Value{Int: left.Int >> uint(right.Int)}
		}
	}
	return left, nil
}

func (p *Parser) parseAddSub() (Value, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return Value{}, err
	}
	for {
		t := p.lex.Lookahead(0).Type
		if t != lexer.Plus && t != lexer.Minus {
			break
		}
		op := p.lex.Eat()
		p.plugin.OnOperator(op)
		right, err := p.parseMulDiv()
		if err != nil {
			return Value{}, err
		}
		if t == lexer.Plus {
			left = Value{Int: left.Int + right.Int}
		} else {
			left = Value{Int: left.Int - right.Int}
		}
	}
	return left, nil
}

func (p *Parser) parseMulDiv() (Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return Value{}, err
	}
	for {
		t := p.lex.Lookahead(0).Type
		if t != lexer.Star && t != lexer.Slash {
			break
		}
		op := p.lex.Eat()
		p.plugin.OnOperator(op)
		right, err := p.parseUnary()
		if err != nil {
			return Value{}, err
		}
		if t == lexer.Star {
			left = Value{Int: left.Int * right.Int}
		} else {
			if right.Int == 0 {
				return Value{}, p.errorf(op, "division by zero")
			}
			left = Value{Int: left.Int / right.Int}
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Value, error) {
	t := p.lex.Lookahead(0)
	if t.Type == lexer.Minus {
		p.lex.Eat()
		p.plugin.OnOperator(t)
		v, err := p.parseUnary()
		if err != nil {
			return Value{}, err
		}
		return Value{Int: -v.Int}, nil
	}
	if t.Type == lexer.Tilde {
		p.lex.Eat()
		p.plugin.OnOperator(t)
		v, err := p.parseUnary()
		if err != nil {
			return Value{}, err
		}
		return Value{Int: ^v.Int}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Value, error) {
	t := p.lex.Lookahead(0)
	switch t.Type {
	case lexer.Lparen:
		p.lex.Eat()
		p.plugin.OnParenOpen(t)
		v, err := p.ParseExpression()
		if err != nil {
			return Value{}, err
		}
		close := p.lex.Lookahead(0)
		if close.Type != lexer.Rparen {
			return Value{}, p.errorf(close, "Expected ')' but found '%s'", close.Literal)
		}
		p.lex.Eat()
		p.plugin.OnParenClose(close)
		return v, nil

	case lexer.Grave:
		p.lex.Eat()
		v, err := p.ParseExpression()
		if err != nil {
			return Value{}, err
		}
		close := p.lex.Lookahead(0)
		if close.Type != lexer.Grave {
			return Value{}, p.errorf(close, "Expected '`' but found '%s'", close.Literal)
		}
		p.lex.Eat()
		return Value{Int: v.Int, IsBacktick: true}, nil

	case lexer.Dot:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		return Value{Int: p.sym.CurrentAddress()}, nil

	case lexer.HexLit:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		v, err := parseIntLiteral(t.Literal, 16, "0x")
		return Value{Int: v, Span: t.Span}, err

	case lexer.BinLit:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		v, err := parseIntLiteral(t.Literal, 2, "0b")
		return Value{Int: v, Span: t.Span}, err

	case lexer.OctLit:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		v, err := parseIntLiteral(t.Literal, 8, "0")
		return Value{Int: v, Span: t.Span}, err

	case lexer.DecLit:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		v, err := parseIntLiteral(t.Literal, 10, "")
		return Value{Int: v, Span: t.Span}, err

	case lexer.GPR, lexer.FPR, lexer.CRField, lexer.SPR:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		return Value{Int: int64(t.RegNum), Span: t.Span}, nil

	case lexer.Lt, lexer.Gt, lexer.Eq, lexer.So:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		return Value{Int: int64(t.RegNum), Span: t.Span}, nil

	case lexer.Identifier:
		p.lex.Eat()
		p.plugin.OnTerminal(t)
		v, ok := p.sym.Resolve(t.Literal)
		if !ok {
			return Value{}, &shared.AssemblerError{
				Pos: t.Pos, Kind: shared.ErrorUndefinedSymbol,
				Message: fmt.Sprintf("Undefined symbol '%s'", t.Literal), SpanLen: t.Span.Len,
			}
		}
		return p.maybeFixup(v, t.Span)

	default:
		return Value{}, p.errorf(t, "Unexpected token '%s' in expression", t.Literal)
	}
}

// maybeFixup applies a trailing @ha or @l suffix to an identifier's value,
// per spec.md §4.5: `name@ha = ((name + 0x8000) >> 16) & 0xffff`,
// `name@l = name & 0xffff`.
func (p *Parser) maybeFixup(v int64, span shared.Interval) (Value, error) {
	if p.lex.Lookahead(0).Type != lexer.At {
		return Value{Int: v, Span: span}, nil
	}
	atTok := p.lex.Eat()
	ident := p.lex.Lookahead(0)
	if ident.Type != lexer.Identifier {
		return Value{}, p.errorf(ident, "Expected 'ha' or 'l' after '@' but found '%s'", ident.Literal)
	}
	p.lex.Eat()
	switch ident.Literal {
	case "ha":
		p.plugin.OnHaFixup(atTok)
		return Value{Int: ((v + 0x8000) >> 16) & 0xffff, Span: span}, nil
	case "l":
		p.plugin.OnLFixup(atTok)
		return Value{Int: v & 0xffff, Span: span}, nil
	default:
		return Value{}, p.errorf(ident, "Unknown fixup '@%s'", ident.Literal)
	}
}

func parseIntLiteral(text string, base int, prefix string) (int64, error) {
	digits := text
	if prefix != "" {
		if len(digits) < len(prefix) {
			return 0, fmt.Errorf("malformed numeric literal %q", text)
		}
		digits = digits[len(prefix):]
	}
	if digits == "" {
		return 0, nil
	}
	var v uint64
	for i := 0; i < len(digits); i++ {
		d := digitVal(digits[i])
		v = v*uint64(base) + uint64(d)
	}
	return int64(uint32(v)), nil
}

func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}
