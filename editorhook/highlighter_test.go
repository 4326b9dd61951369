package editorhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// feedTokens runs every token of src through h.OnToken, the minimal drive
// loop a host embedding the lexer directly (without irgen) would use.
func feedTokens(h *Highlighter, src string) {
	lex := lexer.New(src, "")
	for {
		t := lex.Eat()
		if t.Type == lexer.Eof {
			return
		}
		h.OnToken(t)
	}
}

func TestHighlighterClassifiesRegisterAndNumber(t *testing.T) {
	h := NewHighlighter()
	feedTokens(h, "add r3, r4, 0x10\n")

	var sawRegister, sawNumber bool
	for _, s := range h.Spans {
		switch s.Kind {
		case SpanRegister:
			sawRegister = true
		case SpanNumber:
			sawNumber = true
		}
	}
	assert.True(t, sawRegister, "expected a register span for r3/r4")
	assert.True(t, sawNumber, "expected a number span for 0x10")
}

func TestHighlighterClassifiesString(t *testing.T) {
	h := NewHighlighter()
	feedTokens(h, `.ascii "hi"`+"\n")

	found := false
	for _, s := range h.Spans {
		if s.Kind == SpanString {
			found = true
		}
	}
	assert.True(t, found, "expected a string span")
}

func TestHighlighterParenMatching(t *testing.T) {
	h := NewHighlighter()
	lex := lexer.New("(1 + (2))\n", "")
	for {
		t := lex.Eat()
		if t.Type == lexer.Eof {
			break
		}
		switch t.Type {
		case lexer.Lparen:
			h.OnParenOpen(t)
		case lexer.Rparen:
			h.OnParenClose(t)
		default:
			h.OnToken(t)
		}
	}
	require.Len(t, h.ParenPairs, 2)
}

func TestHighlighterLabelAndVariableSpans(t *testing.T) {
	h := NewHighlighter()
	h.OnLabelDecl("loop", shared.Position{Index: 0})
	h.OnVariableDecl("count", shared.Position{Index: 10})

	require.Len(t, h.Spans, 2)
	assert.Equal(t, SpanLabel, h.Spans[0].Kind)
	assert.Equal(t, SpanVariable, h.Spans[1].Kind)
}

func TestHighlighterRecordsErrors(t *testing.T) {
	h := NewHighlighter()
	err := shared.NewError(shared.Position{}, shared.ErrorSyntax, "bad token")
	h.OnError(err)
	require.Len(t, h.Errors, 1)
	assert.Equal(t, err, h.Errors[0])
}

func TestHighlighterSortedSpans(t *testing.T) {
	h := NewHighlighter()
	h.OnLabelDecl("b", shared.Position{Index: 20})
	h.OnVariableDecl("a", shared.Position{Index: 5})

	sorted := h.SortedSpans()
	require.Len(t, sorted, 2)
	assert.Equal(t, 5, sorted[0].Begin)
	assert.Equal(t, 20, sorted[1].Begin)
}

func TestNopPluginSatisfiesPlugin(t *testing.T) {
	var p Plugin = NopPlugin{}
	p.OnToken(lexer.Token{})
	p.OnError(nil)
}
