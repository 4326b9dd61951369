// Package lexer implements the Gekko assembler's token scanner: a
// cooperative, lookahead-buffered scanner with explicit DFAs for float and
// string literals, and an identifier-mode switch affecting which characters
// extend an identifier run (spec.md §4.3).
package lexer

import "github.com/lookbusy1344/gekko-assembler/shared"

// TokenType enumerates every token kind the lexer can produce.
type TokenType int

const (
	Invalid TokenType = iota
	Identifier
	StringLit
	HexLit
	DecLit
	OctLit
	BinLit
	FloatLit
	GPR
	FPR
	CRField
	SPR
	Lt
	Gt
	Eq
	So
	Eol
	Eof

	Dot
	Colon
	Comma
	Lparen
	Rparen
	Pipe
	Caret
	Ampersand
	Lsh
	Rsh
	Plus
	Minus
	Star
	Slash
	Tilde
	Grave
	At
)

func (t TokenType) String() string {
	switch t {
	case Invalid:
		return "Invalid"
	case Identifier:
		return "Identifier"
	case StringLit:
		return "StringLit"
	case HexLit:
		return "HexLit"
	case DecLit:
		return "DecLit"
	case OctLit:
		return "OctLit"
	case BinLit:
		return "BinLit"
	case FloatLit:
		return "FloatLit"
	case GPR:
		return "GPR"
	case FPR:
		return "FPR"
	case CRField:
		return "CRField"
	case SPR:
		return "SPR"
	case Lt, Gt, Eq, So:
		return "CRFlag"
	case Eol:
		return "Eol"
	case Eof:
		return "Eof"
	default:
		return "Punct"
	}
}

// Token is one lexeme: its type, literal text, source interval, and (for
// SPR/GPR/FPR/CRField) the resolved numeric value.
type Token struct {
	Type         TokenType
	Literal      string
	Pos          shared.Position
	Span         shared.Interval
	RegNum       uint32
	InvalidWhy   string
	InvalidSpan  shared.Interval
}
