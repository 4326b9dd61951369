package exprparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/gekko-assembler/lexer"
)

// fixedResolver answers identifiers from a fixed name-to-value map, and
// reports a fixed cursor address for `.`.
type fixedResolver struct {
	values map[string]int64
	cursor int64
}

func (r fixedResolver) Resolve(name string) (int64, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r fixedResolver) CurrentAddress() int64 { return r.cursor }

func parse(t *testing.T, src string, sym SymbolResolver) Value {
	t.Helper()
	lex := lexer.New(src, "")
	p := New(lex, sym, nil)
	v, err := p.ParseExpression()
	require.NoError(t, err)
	return v
}

func TestParsePrecedence(t *testing.T) {
	sym := fixedResolver{}
	v := parse(t, "1 + 2 * 3", sym)
	assert.Equal(t, int64(7), v.Int)

	v = parse(t, "(1 + 2) * 3", sym)
	assert.Equal(t, int64(9), v.Int)

	v = parse(t, "1 << 4 | 1", sym)
	assert.Equal(t, int64(17), v.Int)

	v = parse(t, "0xff & 0x0f", sym)
	assert.Equal(t, int64(0x0f), v.Int)
}

func TestParseUnary(t *testing.T) {
	sym := fixedResolver{}
	v := parse(t, "-5", sym)
	assert.Equal(t, int64(-5), v.Int)

	v = parse(t, "~0", sym)
	assert.Equal(t, int64(-1), v.Int)
}

func TestParseHaLFixup(t *testing.T) {
	sym := fixedResolver{values: map[string]int64{"target": 0x80017fff}}
	v := parse(t, "target@ha", sym)
	assert.Equal(t, int64(0x8001), v.Int)

	v = parse(t, "target@l", sym)
	assert.Equal(t, int64(0x7fff), v.Int)
}

func TestParseBacktickMarksAbsolute(t *testing.T) {
	sym := fixedResolver{values: map[string]int64{"target": 0x1000}}
	v := parse(t, "`target`", sym)
	assert.True(t, v.IsBacktick)
	assert.Equal(t, int64(0x1000), v.Int)

	v = parse(t, "target", sym)
	assert.False(t, v.IsBacktick)
}

func TestParseCurrentAddress(t *testing.T) {
	sym := fixedResolver{cursor: 0x8000100c}
	v := parse(t, ". + 4", sym)
	assert.Equal(t, int64(0x80001010), v.Int)
}

func TestParseUndefinedSymbol(t *testing.T) {
	lex := lexer.New("missing", "")
	p := New(lex, fixedResolver{}, nil)
	_, err := p.ParseExpression()
	require.Error(t, err)
}

func TestParseDivisionByZero(t *testing.T) {
	lex := lexer.New("1 / 0", "")
	p := New(lex, fixedResolver{}, nil)
	_, err := p.ParseExpression()
	require.Error(t, err)
}

func TestParseFloatLiteral(t *testing.T) {
	// FloatLit only appears when a caller explicitly re-lexes via
	// lexer.LookaheadFloat (irgen's .float/.double handling does this);
	// this checks that lexer output, since parsePrimary has no FloatLit case.
	lex := lexer.New("3.14", "")
	ft := lex.LookaheadFloat()
	require.Equal(t, lexer.FloatLit, ft.Type)
	assert.Equal(t, "3.14", ft.Literal)
}
