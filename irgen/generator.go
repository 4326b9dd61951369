// Package irgen turns lexed source into address-tagged byte blocks: it
// owns the symbol table, the cursor/block bookkeeping, and every directive
// defined in spec.md §4.2, driving exprparser for every operand and
// expression along the way.
package irgen

import (
	"math"
	"strconv"

	"github.com/lookbusy1344/gekko-assembler/codegen"
	"github.com/lookbusy1344/gekko-assembler/editorhook"
	"github.com/lookbusy1344/gekko-assembler/exprparser"
	"github.com/lookbusy1344/gekko-assembler/isa"
	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// Generator assembles one source program into a sequence of Blocks.
type Generator struct {
	source   string
	filename string
	baseAddr uint32
	syms     *SymbolTable
	warnings []shared.Warning
	plugin   editorhook.Plugin
}

// New creates a Generator for source, assembled starting at baseAddr.
func New(source, filename string, baseAddr uint32) *Generator {
	return &Generator{source: source, filename: filename, baseAddr: baseAddr, plugin: editorhook.NopPlugin{}}
}

// SetPlugin attaches an editorhook.Plugin that receives structural parse
// events (labels, variables, instructions, directives, tokens) as the
// emission pass runs, per spec.md §4.4's "may consume a structural view
// of the parse" host collaborator. Events fire only on the emission pass,
// so a plugin sees each line exactly once even though Generate parses the
// source twice internally.
func (g *Generator) SetPlugin(p editorhook.Plugin) {
	if p == nil {
		p = editorhook.NopPlugin{}
	}
	g.plugin = p
}

// exprPluginAdapter lets a directive's expression operands feed the same
// editorhook.Plugin the generator drives for labels/instructions/
// directives, so an editor's structural view covers operand expressions
// too (operator/paren/@ha/@l events), not just the top-level line shape.
type exprPluginAdapter struct{ p editorhook.Plugin }

func (a exprPluginAdapter) OnTerminal(tok lexer.Token)   { a.p.OnToken(tok) }
func (a exprPluginAdapter) OnOperator(tok lexer.Token)   { a.p.OnOperator(tok) }
func (a exprPluginAdapter) OnParenOpen(tok lexer.Token)  { a.p.OnParenOpen(tok) }
func (a exprPluginAdapter) OnParenClose(tok lexer.Token) { a.p.OnParenClose(tok) }
func (a exprPluginAdapter) OnHaFixup(tok lexer.Token)    { a.p.OnHaFixup(tok) }
func (a exprPluginAdapter) OnLFixup(tok lexer.Token)     { a.p.OnLFixup(tok) }

// Generate runs the label-collection pass followed by the emission pass
// and returns the resulting Blocks (spec.md §4.2, §6).
func (g *Generator) Generate() ([]Block, []shared.Warning, error) {
	g.syms = NewSymbolTable()
	g.warnings = nil
	if err := g.run(false, nil); err != nil {
		return nil, nil, err
	}
	var blocks []Block
	if err := g.run(true, &blocks); err != nil {
		return nil, nil, err
	}
	for _, sym := range g.syms.Unused() {
		switch sym.Kind {
		case SymbolLabel:
			g.warnings = append(g.warnings, shared.Warning{Pos: sym.Pos, Message: "label '" + sym.Name + "' is never referenced"})
		case SymbolVariable:
			g.warnings = append(g.warnings, shared.Warning{Pos: sym.Pos, Message: "variable '" + sym.Name + "' is never referenced"})
		}
	}
	return blocks, g.warnings, nil
}

// run walks the whole source once. In the label pass (emit==false) it only
// records label addresses; instruction operands are skipped, but every
// directive's operands (including data directives such as `.byte` and
// `.4byte`) are evaluated, so they may reference only symbols defined
// earlier in the source. Instruction operands are evaluated only in the
// emit pass, where every label is known, so they may reference labels
// defined anywhere in the program.
func (g *Generator) run(emit bool, out *[]Block) error {
	lex := lexer.New(g.source, g.filename)
	cursor := g.baseAddr
	res := &resolver{syms: g.syms, cursor: &cursor}

	var cur *Block
	flush := func() {
		if emit && cur != nil && len(cur.Bytes) > 0 {
			*out = append(*out, *cur)
		}
		cur = nil
	}
	emitBytes := func(b []byte) {
		cursor += uint32(len(b))
		if !emit {
			return
		}
		if cur == nil {
			cur = &Block{Address: cursor - uint32(len(b))}
		}
		cur.Bytes = append(cur.Bytes, b...)
	}
	locate := func(addr uint32) {
		flush()
		cursor = addr
	}

	for {
		lex.SetMode(lexer.Mnemonic)
		t0 := lex.Lookahead(0)
		switch t0.Type {
		case lexer.Eof:
			flush()
			return nil
		case lexer.Eol:
			lex.Eat()
			continue
		}

		if t0.Type == lexer.Dot {
			if err := g.directive(lex, res, emit, &cursor, emitBytes, locate); err != nil {
				if emit {
					if aerr, ok := err.(*shared.AssemblerError); ok {
						g.plugin.OnError(aerr)
					}
				}
				return err
			}
			if err := g.expectLineEnd(lex); err != nil {
				return err
			}
			continue
		}

		if t0.Type == lexer.Identifier && lex.Lookahead(1).Type == lexer.Colon {
			lex.Eat()
			lex.Eat()
			if !g.syms.Define(t0.Literal, Symbol{Name: t0.Literal, Kind: SymbolLabel, Value: int64(cursor), Pos: t0.Pos}) && !emit {
				return shared.NewError(t0.Pos, shared.ErrorDuplicateSymbol, "Symbol '%s' already defined", t0.Literal)
			}
			if emit {
				g.plugin.OnLabelDecl(t0.Literal, t0.Pos)
			}
			continue
		}

		if t0.Type != lexer.Identifier {
			return shared.NewError(t0.Pos, shared.ErrorSyntax, "Expected a label, directive, or instruction but found '%s'", t0.Literal)
		}
		lex.Eat()
		mnemText := t0.Literal
		lex.SetMode(lexer.Typical)

		if emit {
			g.plugin.OnInstructionPre(mnemText, t0.Pos)
		}
		if err := g.instruction(lex, res, mnemText, t0, cursor, emit, emitBytes); err != nil {
			if emit {
				if aerr, ok := err.(*shared.AssemblerError); ok {
					g.plugin.OnError(aerr)
				}
			}
			return err
		}
		if emit {
			g.plugin.OnInstructionPost(mnemText, t0.Pos)
		}
		if err := g.expectLineEnd(lex); err != nil {
			return err
		}
	}
}

func (g *Generator) expectLineEnd(lex *lexer.Lexer) error {
	t := lex.Lookahead(0)
	if t.Type != lexer.Eol && t.Type != lexer.Eof {
		return shared.NewError(t.Pos, shared.ErrorSyntax, "Expected end of line but found '%s'", t.Literal)
	}
	if t.Type == lexer.Eol {
		lex.Eat()
	}
	return nil
}

// instruction parses one mnemonic line. Every Gekko/Broadway instruction is
// exactly 4 bytes regardless of its operands, so the label-collection pass
// (emit==false) never needs to resolve operand symbols — which matters,
// since a branch's target label may not be defined yet at this point in
// that pass. It only needs to skip the line and advance the cursor, leaving
// real encoding (and forward-reference resolution) to the emission pass.
func (g *Generator) instruction(lex *lexer.Lexer, res exprparser.SymbolResolver, name string, nameTok lexer.Token, addr uint32, emit bool, emitBytes func([]byte)) error {
	if !emit {
		skipToLineEnd(lex)
		emitBytes(make([]byte, 4))
		return nil
	}
	word, err := g.encodeInstruction(lex, res, name, nameTok, addr)
	if err != nil {
		return err
	}
	emitBytes(appendBE32(nil, word))
	return nil
}

// skipToLineEnd discards tokens up to (not including) the next Eol/Eof,
// without evaluating them.
func skipToLineEnd(lex *lexer.Lexer) {
	for {
		t := lex.Lookahead(0)
		if t.Type == lexer.Eol || t.Type == lexer.Eof {
			return
		}
		lex.Eat()
	}
}

func (g *Generator) encodeInstruction(lex *lexer.Lexer, res exprparser.SymbolResolver, name string, nameTok lexer.Token, addr uint32) (uint32, error) {
	return codegen.Encode(lex, res, name, nameTok.Pos, nameTok.Span.Len, addr, parseOperandList)
}

// directive dispatches one `.xxx` directive line, per spec.md §4.2.
func (g *Generator) directive(lex *lexer.Lexer, res exprparser.SymbolResolver, emit bool, cursor *uint32, emitBytes func([]byte), locate func(uint32)) (retErr error) {
	dotTok := lex.Eat() // '.'
	lex.SetMode(lexer.Directive)
	nameTok := lex.Lookahead(0)
	if nameTok.Type != lexer.Identifier {
		lex.SetMode(lexer.Typical)
		return shared.NewError(nameTok.Pos, shared.ErrorSyntax, "Expected a directive name after '.'")
	}
	lex.Eat()
	lex.SetMode(lexer.Typical)
	name := nameTok.Literal
	if !isa.IsDirective(name) {
		return shared.NewError(dotTok.Pos, shared.ErrorSyntax, "Unrecognized directive '.%s'", name)
	}
	if emit {
		g.plugin.OnDirectivePre(name, nameTok.Pos)
		defer func() {
			if retErr == nil {
				g.plugin.OnDirectivePost(name, nameTok.Pos)
			}
		}()
	}

	exprPlugin := exprparser.Plugin(exprparser.NopPlugin{})
	if emit {
		exprPlugin = exprPluginAdapter{g.plugin}
	}
	parseExpr := func() (exprparser.Value, error) {
		return exprparser.New(lex, res, exprPlugin).ParseExpression()
	}
	comma := func() bool {
		if lex.Lookahead(0).Type == lexer.Comma {
			lex.Eat()
			return true
		}
		return false
	}
	// parseFloatOperand uses the lexer's float DFA (LookaheadFloat) when the
	// operand looks like a genuine decimal literal, so "3.14" reads as the
	// IEEE-754 value 3.14 rather than being cut at the '.' by the ordinary
	// expression grammar. Anything else (a defvar'd symbol, a parenthesized
	// expression) still goes through the normal integer expression parser.
	parseFloatOperand := func() (float64, error) {
		t0 := lex.Lookahead(0)
		looksNumeric := t0.Type == lexer.DecLit ||
			(t0.Type == lexer.Minus && lex.Lookahead(1).Type == lexer.DecLit)
		if looksNumeric {
			ft := lex.LookaheadFloat()
			if ft.Type != lexer.FloatLit {
				return 0, shared.NewError(ft.Pos, shared.ErrorSyntax, "Malformed floating-point literal")
			}
			f, err := strconv.ParseFloat(ft.Literal, 64)
			if err != nil {
				return 0, shared.NewError(ft.Pos, shared.ErrorSyntax, "Malformed floating-point literal '%s'", ft.Literal)
			}
			return f, nil
		}
		v, err := parseExpr()
		if err != nil {
			return 0, err
		}
		return float64(v.Int), nil
	}

	switch name {
	case "byte", "2byte", "4byte", "8byte":
		elemSize := map[string]int{"byte": 1, "2byte": 2, "4byte": 4, "8byte": 8}[name]
		for {
			v, err := parseExpr()
			if err != nil {
				return err
			}
			switch elemSize {
			case 1:
				emitBytes([]byte{byte(v.Int)})
			case 2:
				emitBytes(appendBE16(nil, uint16(v.Int)))
			case 4:
				emitBytes(appendBE32(nil, uint32(v.Int)))
			case 8:
				emitBytes(appendBE64(nil, uint64(v.Int)))
			}
			if !comma() {
				break
			}
		}
		return nil

	case "float", "double":
		for {
			f, err := parseFloatOperand()
			if err != nil {
				return err
			}
			if name == "float" {
				emitBytes(appendBE32(nil, math.Float32bits(float32(f))))
			} else {
				emitBytes(appendBE64(nil, math.Float64bits(f)))
			}
			if !comma() {
				break
			}
		}
		return nil

	case "ascii", "asciz":
		strTok := lex.Lookahead(0)
		if strTok.Type != lexer.StringLit {
			return shared.NewError(strTok.Pos, shared.ErrorSyntax, "Expected a string literal after '.%s'", name)
		}
		lex.Eat()
		bytes := lexer.DecodeStringLiteral(strTok.Literal)
		if name == "asciz" {
			bytes = append(bytes, 0)
		}
		emitBytes(bytes)
		return nil

	case "zeros", "skip":
		v, err := parseExpr()
		if err != nil {
			return err
		}
		if v.Int < 0 {
			return shared.NewError(nameTok.Pos, shared.ErrorSyntax, "'.%s' count must not be negative", name)
		}
		emitBytes(make([]byte, v.Int))
		return nil

	case "align":
		v, err := parseExpr()
		if err != nil {
			return err
		}
		n := int64(1) << uint(v.Int)
		if n <= 0 {
			return shared.NewError(nameTok.Pos, shared.ErrorSyntax, "'.align' alignment must be positive")
		}
		rem := int64(*cursor) % n
		if rem != 0 {
			emitBytes(make([]byte, n-rem))
		}
		return nil

	case "padalign":
		// Unlike .align, the gap to the next boundary is never written into
		// the current block — it closes the block and the cursor simply
		// jumps ahead, so a run of instructions followed by aligned data
		// doesn't carry trailing pad bytes into the instruction block.
		v, err := parseExpr()
		if err != nil {
			return err
		}
		n := int64(1) << uint(v.Int)
		if n <= 0 {
			return shared.NewError(nameTok.Pos, shared.ErrorSyntax, "'.padalign' alignment must be positive")
		}
		rem := int64(*cursor) % n
		if rem != 0 {
			locate(*cursor + uint32(n-rem))
		}
		return nil

	case "locate":
		v, err := parseExpr()
		if err != nil {
			return err
		}
		locate(uint32(v.Int))
		return nil

	case "defvar":
		identTok := lex.Lookahead(0)
		if identTok.Type != lexer.Identifier {
			return shared.NewError(identTok.Pos, shared.ErrorSyntax, "Expected a variable name after '.defvar'")
		}
		lex.Eat()
		if !comma() {
			return shared.NewError(lex.Lookahead(0).Pos, shared.ErrorSyntax, "Expected ',' after '.defvar' name")
		}
		v, err := parseExpr()
		if err != nil {
			return err
		}
		if !g.syms.Define(identTok.Literal, Symbol{Name: identTok.Literal, Kind: SymbolVariable, Value: v.Int, Pos: identTok.Pos}) && !emit {
			return shared.NewError(identTok.Pos, shared.ErrorDuplicateSymbol, "Symbol '%s' already defined", identTok.Literal)
		}
		if emit {
			g.plugin.OnVariableDecl(identTok.Literal, identTok.Pos)
		}
		return nil

	default:
		return shared.NewError(dotTok.Pos, shared.ErrorSyntax, "Directive '.%s' is recognized but not implemented", name)
	}
}
