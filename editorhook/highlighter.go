package editorhook

import (
	"sort"

	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// SpanKind classifies a highlighted region for a syntax theme.
type SpanKind int

const (
	SpanMnemonic SpanKind = iota
	SpanDirective
	SpanRegister
	SpanNumber
	SpanString
	SpanIdentifier
	SpanLabel
	SpanVariable
	SpanOperator
	SpanError
)

// Span is one highlighted region of source text.
type Span struct {
	Kind  SpanKind
	Begin int
	Len   int
}

// ParenPair records a matched open/close parenthesis pair, for an editor's
// paren-matching feature.
type ParenPair struct {
	Open  int
	Close int
}

// Highlighter accumulates token spans and paren-match pairs as a program
// is parsed, for a caller that wants to syntax-highlight source as it is
// typed (spec.md §1's "may consume a structural view of the parse").
type Highlighter struct {
	NopPlugin
	Spans      []Span
	ParenPairs []ParenPair
	Errors     []*shared.AssemblerError

	openStack []int
}

// NewHighlighter returns an empty Highlighter.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

func (h *Highlighter) OnToken(tok lexer.Token) {
	var kind SpanKind
	switch tok.Type {
	case lexer.GPR, lexer.FPR, lexer.CRField, lexer.SPR, lexer.Lt, lexer.Gt, lexer.Eq, lexer.So:
		kind = SpanRegister
	case lexer.HexLit, lexer.DecLit, lexer.OctLit, lexer.BinLit, lexer.FloatLit:
		kind = SpanNumber
	case lexer.StringLit:
		kind = SpanString
	case lexer.Invalid:
		kind = SpanError
	default:
		kind = SpanIdentifier
	}
	h.Spans = append(h.Spans, Span{Kind: kind, Begin: tok.Span.Begin, Len: tok.Span.Len})
}

func (h *Highlighter) OnOperator(tok lexer.Token) {
	h.Spans = append(h.Spans, Span{Kind: SpanOperator, Begin: tok.Span.Begin, Len: tok.Span.Len})
}

func (h *Highlighter) OnParenOpen(tok lexer.Token) {
	h.openStack = append(h.openStack, tok.Span.Begin)
}

func (h *Highlighter) OnParenClose(tok lexer.Token) {
	if len(h.openStack) == 0 {
		return
	}
	open := h.openStack[len(h.openStack)-1]
	h.openStack = h.openStack[:len(h.openStack)-1]
	h.ParenPairs = append(h.ParenPairs, ParenPair{Open: open, Close: tok.Span.Begin})
}

func (h *Highlighter) OnLabelDecl(name string, pos shared.Position) {
	h.Spans = append(h.Spans, Span{Kind: SpanLabel, Begin: pos.Index, Len: len(name)})
}

func (h *Highlighter) OnVariableDecl(name string, pos shared.Position) {
	h.Spans = append(h.Spans, Span{Kind: SpanVariable, Begin: pos.Index, Len: len(name)})
}

func (h *Highlighter) OnInstructionPre(name string, pos shared.Position) {
	h.Spans = append(h.Spans, Span{Kind: SpanMnemonic, Begin: pos.Index, Len: len(name)})
}

func (h *Highlighter) OnDirectivePre(name string, pos shared.Position) {
	h.Spans = append(h.Spans, Span{Kind: SpanDirective, Begin: pos.Index, Len: len(name) + 1})
}

func (h *Highlighter) OnError(err *shared.AssemblerError) {
	h.Errors = append(h.Errors, err)
}

// SortedSpans returns Spans ordered by their start offset, convenient for
// a caller walking the source left to right.
func (h *Highlighter) SortedSpans() []Span {
	out := make([]Span, len(h.Spans))
	copy(out, h.Spans)
	sort.Slice(out, func(i, j int) bool { return out[i].Begin < out[j].Begin })
	return out
}
