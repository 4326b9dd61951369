// Package tools provides editor-facing static analysis over the raw token
// stream — unused-symbol linting and cross-reference indexing — adapted
// from the teacher's tools/lint.go and tools/xref.go for the Gekko
// assembler's label/variable namespace. It intentionally tolerates source
// that wouldn't assemble, so it stays independent of editorhook's plugin
// wiring in irgen.
package tools

import (
	"fmt"

	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// LintLevel is the severity of a lint finding.
type LintLevel int

const (
	LintError LintLevel = iota
	LintWarning
	LintInfo
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is a single lint finding.
type LintIssue struct {
	Level   LintLevel
	Pos     shared.Position
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", i.Pos, i.Level, i.Message, i.Code)
}

// LintOptions controls which checks Lint runs.
type LintOptions struct {
	CheckUnusedLabels bool
	CheckUnusedVars   bool
}

// DefaultLintOptions enables every check.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{CheckUnusedLabels: true, CheckUnusedVars: true}
}

type symInfo struct {
	isLabel bool
	pos     shared.Position
	used    bool
}

// Lint walks source with the raw token stream (not the full expression
// grammar, so it tolerates source that wouldn't assemble) and reports
// labels and `.defvar` variables that are declared but never referenced.
func Lint(source string, opts *LintOptions) []*LintIssue {
	if opts == nil {
		opts = DefaultLintOptions()
	}
	lex := lexer.New(source, "")
	syms := map[string]*symInfo{}
	var order []string

	define := func(name string, isLabel bool, pos shared.Position) {
		if _, exists := syms[name]; !exists {
			order = append(order, name)
		}
		syms[name] = &symInfo{isLabel: isLabel, pos: pos}
	}
	reference := func(name string) {
		if s, ok := syms[name]; ok {
			s.used = true
		}
	}

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
			if nameTok.Literal == "defvar" {
				varTok := lex.Lookahead(0)
				if varTok.Type == lexer.Identifier {
					lex.Eat()
					define(varTok.Literal, false, varTok.Pos)
				}
			}
			scanReferencesToEol(lex, reference)
			continue
		}

		if t0.Type == lexer.Identifier && lex.Lookahead(1).Type == lexer.Colon {
			lex.Eat()
			lex.Eat()
			define(t0.Literal, true, t0.Pos)
			continue
		}

		if t0.Type == lexer.Identifier {
			lex.Eat()
			lex.SetMode(lexer.Typical)
			scanReferencesToEol(lex, reference)
			continue
		}

		lex.Eat()
	}

	var issues []*LintIssue
	for _, name := range order {
		s := syms[name]
		if s.used {
			continue
		}
		if s.isLabel && opts.CheckUnusedLabels {
			issues = append(issues, &LintIssue{Level: LintWarning, Pos: s.pos,
				Message: fmt.Sprintf("label '%s' is never referenced", name), Code: "UNUSED_LABEL"})
		}
		if !s.isLabel && opts.CheckUnusedVars {
			issues = append(issues, &LintIssue{Level: LintWarning, Pos: s.pos,
				Message: fmt.Sprintf("variable '%s' is never referenced", name), Code: "UNUSED_VAR"})
		}
	}
	return issues
}

// scanReferencesToEol consumes tokens to the end of the current line,
// reporting every Identifier seen as a potential symbol reference.
func scanReferencesToEol(lex *lexer.Lexer, reference func(string)) {
	for {
		t := lex.Lookahead(0)
		if t.Type == lexer.Eol || t.Type == lexer.Eof {
			return
		}
		if t.Type == lexer.Identifier {
			reference(t.Literal)
		}
		lex.Eat()
	}
}
