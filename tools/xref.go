package tools

import (
	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// RefKind distinguishes a symbol's defining occurrence from a use.
type RefKind int

const (
	RefDefinition RefKind = iota
	RefUse
)

func (k RefKind) String() string {
	if k == RefDefinition {
		return "definition"
	}
	return "use"
}

// Reference is one occurrence of a name in the source.
type Reference struct {
	Kind RefKind
	Pos  shared.Position
}

// CrossReferenceIndex maps every label and variable name to every place it
// is defined or used, for "go to definition" / "find references" editor
// features (SPEC_FULL.md §4.8).
type CrossReferenceIndex struct {
	Entries map[string][]Reference
}

// CrossReference builds a CrossReferenceIndex over source using the same
// tolerant raw-token walk as Lint.
func CrossReference(source string) *CrossReferenceIndex {
	idx := &CrossReferenceIndex{Entries: map[string][]Reference{}}
	add := func(name string, kind RefKind, pos shared.Position) {
		idx.Entries[name] = append(idx.Entries[name], Reference{Kind: kind, Pos: pos})
	}

	lex := lexer.New(source, "")
	for {
		lex.SetMode(lexer.Mnemonic)
		t0 := lex.Lookahead(0)
		if t0.Type == lexer.Eof {
			break
		}
		if t0.Type == lexer.Eol {
			lex.Eat()
			continue
		}

		if t0.Type == lexer.Dot {
			lex.Eat()
			lex.SetMode(lexer.Directive)
			nameTok := lex.Lookahead(0)
			if nameTok.Type == lexer.Identifier {
				lex.Eat()
			}
			lex.SetMode(lexer.Typical)
			isDefvar := nameTok.Literal == "defvar"
			first := true
			for {
				t := lex.Lookahead(0)
				if t.Type == lexer.Eol || t.Type == lexer.Eof {
					break
				}
				if t.Type == lexer.Identifier {
					if isDefvar && first {
						add(t.Literal, RefDefinition, t.Pos)
					} else {
						add(t.Literal, RefUse, t.Pos)
					}
					first = false
				}
				lex.Eat()
			}
			continue
		}

		if t0.Type == lexer.Identifier && lex.Lookahead(1).Type == lexer.Colon {
			lex.Eat()
			lex.Eat()
			add(t0.Literal, RefDefinition, t0.Pos)
			continue
		}

		if t0.Type == lexer.Identifier {
			lex.Eat()
			lex.SetMode(lexer.Typical)
			for {
				t := lex.Lookahead(0)
				if t.Type == lexer.Eol || t.Type == lexer.Eof {
					break
				}
				if t.Type == lexer.Identifier {
					add(t.Literal, RefUse, t.Pos)
				}
				lex.Eat()
			}
			continue
		}

		lex.Eat()
	}
	return idx
}
