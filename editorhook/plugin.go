// Package editorhook defines the structural-parse-view plugin interface
// spec.md §4.4 describes as an optional host collaborator, plus a
// reference Highlighter implementation, adapted from the Dolphin Qt
// debugger's assembler widgets (original_source/Source/Core/DolphinQt/
// Debugger/AssemblerWidget.h, AssemblyEditor.*, GekkoSyntaxHighlight.*).
package editorhook

import (
	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// Plugin receives one callback per syntactic and semantic event during
// parsing, letting a single parser drive both real assembly and editor
// tooling (spec.md §4.4).
type Plugin interface {
	OnToken(tok lexer.Token)
	OnOperator(tok lexer.Token)
	OnParenOpen(tok lexer.Token)
	OnParenClose(tok lexer.Token)
	OnLabelDecl(name string, pos shared.Position)
	OnVariableDecl(name string, pos shared.Position)
	OnHaFixup(tok lexer.Token)
	OnLFixup(tok lexer.Token)
	OnInstructionPre(name string, pos shared.Position)
	OnInstructionPost(name string, pos shared.Position)
	OnDirectivePre(name string, pos shared.Position)
	OnDirectivePost(name string, pos shared.Position)
	OnOperandPre(index int, pos shared.Position)
	OnOperandPost(index int, pos shared.Position)
	OnError(err *shared.AssemblerError)
}

// NopPlugin implements Plugin with no-op methods. Embed it to implement
// only the callbacks a particular consumer cares about.
type NopPlugin struct{}

func (NopPlugin) OnToken(lexer.Token)                      {}
func (NopPlugin) OnOperator(lexer.Token)                   {}
func (NopPlugin) OnParenOpen(lexer.Token)                  {}
func (NopPlugin) OnParenClose(lexer.Token)                 {}
func (NopPlugin) OnLabelDecl(string, shared.Position)      {}
func (NopPlugin) OnVariableDecl(string, shared.Position)   {}
func (NopPlugin) OnHaFixup(lexer.Token)                    {}
func (NopPlugin) OnLFixup(lexer.Token)                     {}
func (NopPlugin) OnInstructionPre(string, shared.Position) {}
func (NopPlugin) OnInstructionPost(string, shared.Position) {}
func (NopPlugin) OnDirectivePre(string, shared.Position)   {}
func (NopPlugin) OnDirectivePost(string, shared.Position)  {}
func (NopPlugin) OnOperandPre(int, shared.Position)        {}
func (NopPlugin) OnOperandPost(int, shared.Position)       {}
func (NopPlugin) OnError(*shared.AssemblerError)           {}
