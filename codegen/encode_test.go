package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/gekko-assembler/exprparser"
	"github.com/lookbusy1344/gekko-assembler/isa"
	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

type constResolver struct {
	cursor int64
}

func (constResolver) Resolve(string) (int64, bool) { return 0, false }
func (r constResolver) CurrentAddress() int64       { return r.cursor }

// commaListParser parses exactly n comma-separated operands, ignoring the
// mnemonic's ParseAlg, deliberately not sharing irgen's unexported
// parseOperandList.
func commaListParser(n int) OperandParser {
	return func(lex *lexer.Lexer, res exprparser.SymbolResolver, plugin exprparser.Plugin, alg isa.ParseAlg) (*isa.OperandList, error) {
		ol := &isa.OperandList{}
		for i := 0; i < n; i++ {
			v, err := exprparser.New(lex, res, plugin).ParseExpression()
			if err != nil {
				return nil, err
			}
			ol.Append(shared.Tagged[shared.Interval, uint32]{Tag: v.Span, Value: uint32(v.Int)})
			if i < n-1 {
				if lex.Lookahead(0).Type != lexer.Comma {
					return nil, shared.NewError(lex.Lookahead(0).Pos, shared.ErrorSyntax, "expected ','")
				}
				lex.Eat()
			}
		}
		return ol, nil
	}
}

func TestEncodeAdd(t *testing.T) {
	lex := lexer.New("r3, r4, r5", "")
	word, err := Encode(lex, constResolver{}, "add", shared.Position{}, 3, 0, commaListParser(3))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7c642a14), word)
}

func TestEncodeUnrecognizedMnemonic(t *testing.T) {
	lex := lexer.New("", "")
	_, err := Encode(lex, constResolver{}, "frobnicate", shared.Position{}, 10, 0, commaListParser(0))
	require.Error(t, err)
	aerr, ok := err.(*shared.AssemblerError)
	require.True(t, ok)
	assert.Equal(t, shared.ErrorSyntax, aerr.Kind)
}

func TestEncodeOperandCountMismatch(t *testing.T) {
	lex := lexer.New("r3, r4", "")
	_, err := Encode(lex, constResolver{}, "add", shared.Position{}, 3, 0, commaListParser(2))
	require.Error(t, err)
}

func TestEncodeBranchPCRelative(t *testing.T) {
	lex := lexer.New("0x1000", "")
	word, err := Encode(lex, constResolver{}, "b", shared.Position{}, 1, 0x1000, commaListParser(1))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x48000000), word)
}

func TestEncodeBranchAbsoluteFormNoSubtraction(t *testing.T) {
	lex := lexer.New("0x1000", "")
	word, err := Encode(lex, constResolver{}, "ba", shared.Position{}, 2, 0x1000, commaListParser(1))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x48001002), word)
}

func TestEncodeCmpThreeOperandInsertsCrfZero(t *testing.T) {
	// GAS compatibility: "cmp L,rA,rB" (crfD omitted) defaults crfD to 0.
	lex := lexer.New("0, r3, r4", "")
	word, err := Encode(lex, constResolver{}, "cmp", shared.Position{}, 3, 0, commaListParser(3))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7c032000), word)
}

func TestEncodeAddisRenormalizesHighImmediate(t *testing.T) {
	// GAS compatibility: an immediate in [0x8000,0xffff] (e.g. sym@ha) is
	// renormalized into fSimm's signed 16-bit range before encoding.
	lex := lexer.New("r3, r4, 0x8000", "")
	word, err := Encode(lex, constResolver{}, "addis", shared.Position{}, 5, 0, commaListParser(3))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x3c648000), word)
}
