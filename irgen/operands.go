package irgen

import (
	"fmt"

	"github.com/lookbusy1344/gekko-assembler/exprparser"
	"github.com/lookbusy1344/gekko-assembler/isa"
	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// operandBounds returns the minimum and maximum operand count a ParseAlg
// accepts. Op1Off1 and Op1Off1Op2 have their own dedicated parse routines
// and never reach this table.
func operandBounds(alg isa.ParseAlg) (min, max int) {
	switch alg {
	case isa.AlgNone:
		return 0, 0
	case isa.AlgOp1:
		return 1, 1
	case isa.AlgNoneOrOp1:
		return 0, 1
	case isa.AlgOp2:
		return 2, 2
	case isa.AlgOp1Or2:
		return 1, 2
	case isa.AlgOp3:
		return 3, 3
	case isa.AlgOp2Or3:
		return 2, 3
	case isa.AlgOp4:
		// cmp-family GAS compatibility: crfD may be omitted, defaulting to
		// cr0 (spec.md §9); codegen.AdjustOperandsForGas inserts it back.
		return 3, 4
	case isa.AlgOp5:
		return 5, 5
	default:
		return 0, 0
	}
}

// parseOperandList consumes the comma-separated operand list for one
// instruction line, per the mnemonic's ParseAlg (spec.md §3/§4.4). Each
// operand is itself a full expression; registers, SPRs, and CR tokens are
// ordinary primaries in that grammar (spec.md §4.4).
func parseOperandList(lex *lexer.Lexer, res exprparser.SymbolResolver, plugin exprparser.Plugin, alg isa.ParseAlg) (*isa.OperandList, error) {
	ol := &isa.OperandList{}

	parseExpr := func() (exprparser.Value, error) {
		return exprparser.New(lex, res, plugin).ParseExpression()
	}
	appendVal := func(v exprparser.Value) {
		ol.Append(shared.Tagged[shared.Interval, uint32]{Tag: v.Span, Value: uint32(v.Int)})
	}
	atEnd := func() bool {
		t := lex.Lookahead(0).Type
		return t == lexer.Eol || t == lexer.Eof
	}
	eat := func(tt lexer.TokenType, what string) error {
		t := lex.Lookahead(0)
		if t.Type != tt {
			return &shared.AssemblerError{Pos: t.Pos, Kind: shared.ErrorSyntax, SpanLen: t.Span.Len,
				Message: fmt.Sprintf("Expected %s but found '%s'", what, t.Literal)}
		}
		lex.Eat()
		return nil
	}

	parseOffsetGroup := func() error {
		off, err := parseExpr()
		if err != nil {
			return err
		}
		appendVal(off)
		if err := eat(lexer.Lparen, "'('"); err != nil {
			return err
		}
		base, err := parseExpr()
		if err != nil {
			return err
		}
		appendVal(base)
		return eat(lexer.Rparen, "')'")
	}

	switch alg {
	case isa.AlgOp1Off1:
		v, err := parseExpr()
		if err != nil {
			return nil, err
		}
		appendVal(v)
		if err := eat(lexer.Comma, "','"); err != nil {
			return nil, err
		}
		if err := parseOffsetGroup(); err != nil {
			return nil, err
		}
		return ol, nil

	case isa.AlgOp1Off1Op2:
		v, err := parseExpr()
		if err != nil {
			return nil, err
		}
		appendVal(v)
		if err := eat(lexer.Comma, "','"); err != nil {
			return nil, err
		}
		if err := parseOffsetGroup(); err != nil {
			return nil, err
		}
		for i := 0; i < 2; i++ {
			if err := eat(lexer.Comma, "','"); err != nil {
				return nil, err
			}
			v, err := parseExpr()
			if err != nil {
				return nil, err
			}
			appendVal(v)
		}
		return ol, nil
	}

	min, max := operandBounds(alg)
	if min == 0 && atEnd() {
		return ol, nil
	}
	for i := 0; i < max; i++ {
		if i > 0 {
			if i >= min && atEnd() {
				break
			}
			if err := eat(lexer.Comma, "','"); err != nil {
				return nil, err
			}
		}
		v, err := parseExpr()
		if err != nil {
			return nil, err
		}
		appendVal(v)
	}

	return ol, nil
}
