// Package codegen turns one parsed instruction operand list into its
// 32-bit big-endian encoding: mnemonic/extended-mnemonic resolution,
// operand transforms, branch-target PC-relative fitting, and bit-field
// range checking (spec.md §4.2/§4.5/§4.6).
package codegen

import (
	"github.com/lookbusy1344/gekko-assembler/exprparser"
	"github.com/lookbusy1344/gekko-assembler/isa"
	"github.com/lookbusy1344/gekko-assembler/lexer"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// AdjustOperandsForGas applies the real Gekko assembler's GNU-assembler
// compatibility adjustments to an already-parsed operand list, in place
// (original_source/GekkoAssembler.cpp's AdjustOperandsForGas):
//
//   - cmp-family mnemonics (cmp, cmpl, cmpi, cmpli) accept GAS's 3-operand
//     form, which omits crfD (defaulting to cr0) while still requiring L;
//     insert crfD=0 at the front so L,rA,rB land on their usual indices.
//   - addis/lis/subis resolve to the addis encoding, whose SIMM operand is
//     a signed 16-bit field. GAS accepts immediates written as the
//     unsigned high half of a 32-bit relocation (e.g. sym@ha, which can
//     legitimately compute to 0x8000-0xffff); renormalize those into
//     fSimm's signed range by subtracting 0x10000.
func AdjustOperandsForGas(desc isa.MnemonicDesc, alg isa.ParseAlg, ol *isa.OperandList) {
	if alg == isa.AlgOp4 && ol.Count == 3 {
		ol.Insert(0, shared.Tagged[shared.Interval, uint32]{})
	}
	if desc.Name == "addis" && ol.Count == 3 {
		if v := ol.Get(2); v >= 0x8000 && v <= 0xffff {
			ol.Set(2, v-0x10000)
		}
	}
}

// OperandParser parses one mnemonic's operand list per its ParseAlg. irgen
// supplies this so codegen never has to know about lexer/comma-parsing
// details.
type OperandParser func(lex *lexer.Lexer, res exprparser.SymbolResolver, plugin exprparser.Plugin, alg isa.ParseAlg) (*isa.OperandList, error)

// Encode resolves name (a base or extended mnemonic), parses its operand
// list from lex using parseOperands, and returns the fully-encoded
// instruction word. addr is the address of the instruction being encoded,
// used to convert absolute branch-target operands to PC-relative
// displacements (spec.md §4.5).
func Encode(lex *lexer.Lexer, res exprparser.SymbolResolver, name string, namePos shared.Position, nameSpanLen int, addr uint32, parseOperands OperandParser) (uint32, error) {
	desc, alg, transform, ok := lookup(name)
	if !ok {
		return 0, &shared.AssemblerError{Pos: namePos, Kind: shared.ErrorSyntax, SpanLen: nameSpanLen,
			Message: "Unrecognized mnemonic '" + name + "'"}
	}
	ol, err := parseOperands(lex, res, exprparser.NopPlugin{}, alg)
	if err != nil {
		return 0, err
	}
	if transform != nil {
		transform(ol)
	}
	AdjustOperandsForGas(desc, alg, ol)
	if ol.Overfill {
		return 0, &shared.AssemblerError{Pos: namePos, Kind: shared.ErrorSyntax, SpanLen: nameSpanLen,
			Message: "Too many operands to '" + name + "'"}
	}
	if ol.Count != desc.OperandCount {
		return 0, &shared.AssemblerError{Pos: namePos, Kind: shared.ErrorSyntax, SpanLen: nameSpanLen,
			Message: "wrong operand count for '" + name + "'"}
	}

	word := desc.InitialValue
	absolute := desc.IsAbsoluteForm()
	for i := 0; i < ol.Count; i++ {
		field := desc.Operands[i]
		val := int64(int32(ol.Get(i)))
		if isa.IsBranchTarget(field) && !absolute {
			val -= int64(addr)
		}
		if !field.Fits(val) {
			return 0, &shared.AssemblerError{Pos: namePos, Kind: shared.ErrorEncoding, SpanLen: nameSpanLen,
				Message: "operand does not fit its field in '" + name + "'"}
		}
		word |= field.Fit(val)
	}
	return word, nil
}

func lookup(name string) (isa.MnemonicDesc, isa.ParseAlg, func(*isa.OperandList), bool) {
	if ext, ok := isa.LookupExtended(name); ok {
		base, ok := isa.LookupMnemonic(ext.Base)
		if !ok {
			return isa.MnemonicDesc{}, 0, nil, false
		}
		return base, ext.ParseAlgo, ext.Transform, true
	}
	if base, ok := isa.LookupMnemonic(name); ok {
		return base, base.ParseAlgo, nil, true
	}
	return isa.MnemonicDesc{}, 0, nil, false
}
