package isa

import "github.com/lookbusy1344/gekko-assembler/shared"

func tag(v uint32) shared.Tagged[shared.Interval, uint32] {
	return shared.Tagged[shared.Interval, uint32]{Value: v}
}

func addExtended(e ExtendedMnemonic) {
	extendedTable[e.Name] = e
}

// condBit indexes a CR field's four flag bits, per spec.md §4.3's
// `lt/gt/eq/so` tokens.
const (
	condLT = 0
	condGT = 1
	condEQ = 2
	condSO = 3
)

func buildExtendedMnemonics() {
	buildSimpleExtended()
	buildConditionalBranches()
	buildCTRBranches()
	buildSPRExtended()
}

func buildSimpleExtended() {
	// mr rD, rS -> or rD, rS, rS
	addExtended(ExtendedMnemonic{Name: "mr", Base: "or", ParseAlgo: AlgOp2, Transform: func(ol *OperandList) {
		ol.Insert(2, tag(ol.Get(1)))
	}})
	addExtended(ExtendedMnemonic{Name: "mr.", Base: "or.", ParseAlgo: AlgOp2, Transform: func(ol *OperandList) {
		ol.Insert(2, tag(ol.Get(1)))
	}})
	// not rA, rS -> nor rA, rS, rS
	addExtended(ExtendedMnemonic{Name: "not", Base: "nor", ParseAlgo: AlgOp2, Transform: func(ol *OperandList) {
		ol.Insert(2, tag(ol.Get(1)))
	}})
	addExtended(ExtendedMnemonic{Name: "not.", Base: "nor.", ParseAlgo: AlgOp2, Transform: func(ol *OperandList) {
		ol.Insert(2, tag(ol.Get(1)))
	}})

	// lis rD, v -> addis rD, 0, v
	addExtended(ExtendedMnemonic{Name: "lis", Base: "addis", ParseAlgo: AlgOp2, Transform: func(ol *OperandList) {
		ol.Insert(1, tag(0))
	}})
	// li rD, v -> addi rD, 0, v
	addExtended(ExtendedMnemonic{Name: "li", Base: "addi", ParseAlgo: AlgOp2, Transform: func(ol *OperandList) {
		ol.Insert(1, tag(0))
	}})

	negate := func(ol *OperandList) {
		ol.Set(2, uint32(-int32(ol.Get(2))))
	}
	addExtended(ExtendedMnemonic{Name: "subi", Base: "addi", ParseAlgo: AlgOp3, Transform: negate})
	addExtended(ExtendedMnemonic{Name: "subis", Base: "addis", ParseAlgo: AlgOp3, Transform: negate})
	addExtended(ExtendedMnemonic{Name: "subic", Base: "addic", ParseAlgo: AlgOp3, Transform: negate})
	addExtended(ExtendedMnemonic{Name: "subic.", Base: "addic.", ParseAlgo: AlgOp3, Transform: negate})

	addExtended(ExtendedMnemonic{Name: "nop", Base: "ori", ParseAlgo: AlgNone, Transform: func(ol *OperandList) {
		ol.Append(tag(0))
		ol.Append(tag(0))
		ol.Append(tag(0))
	}})
}

// fillBO inserts a fixed BO value at the front of the operand list, for
// extended mnemonics that supply BI and the target directly (bt/bf), per
// spec.md §4.4's worked example `bt BI, target -> bc 12, BI, target`.
func fillBO(bo uint32) func(*OperandList) {
	return func(ol *OperandList) { ol.Insert(0, tag(bo)) }
}

// fillBOBICond combines a CR-field operand (or its absence, defaulting to
// crf0) with a condition bit into BI, then inserts BO, mirroring the
// Dolphin source's FillBOBICond<BO, Cond, ParamCount> generator
// (original_source/AssemblerTables.cpp).
func fillBOBICond(bo, cond uint32, paramCount int) func(*OperandList) {
	return func(ol *OperandList) {
		if ol.Count < paramCount {
			ol.Insert(0, tag(0))
		}
		ol.Set(0, (ol.Get(0)<<2)|cond)
		ol.Insert(0, tag(bo))
	}
}

// buildConditionalBranches registers blt/ble/beq/bge/bgt/bnl/bne/bng/bso/
// bns/bun/bnu and their "+" (predict-taken) forms.
//
// The predict-taken hint sets the low bit of BO (original_source's
// FillBOBICond<5,2,2> for `bne+` vs. <4,2,2> for `bne`); see DESIGN.md for
// why this module follows the Dolphin source's BO+1 convention rather than
// spec.md §8 scenario 4's literal byte value, which implies BO+8.
func buildConditionalBranches() {
	// blt/bge share the lt bit; ble/bgt share the gt bit; bne shares eq;
	// bns/bnu share so. Register both the "true" and "false" spellings.
	register := func(name string, bo, cond uint32) {
		for _, v := range []struct {
			suf string
			bo  uint32
		}{{"", bo}, {"+", bo + 1}, {"-", bo}} {
			addExtended(ExtendedMnemonic{
				Name: name + v.suf, Base: "bc", ParseAlgo: AlgOp1Or2,
				Transform: fillBOBICond(v.bo, cond, 2),
			})
			addExtended(ExtendedMnemonic{
				Name: name + "l" + v.suf, Base: "bcl", ParseAlgo: AlgOp1Or2,
				Transform: fillBOBICond(v.bo, cond, 2),
			})
			addExtended(ExtendedMnemonic{
				Name: name + "a" + v.suf, Base: "bca", ParseAlgo: AlgOp1Or2,
				Transform: fillBOBICond(v.bo, cond, 2),
			})
		}
	}
	register("blt", 12, condLT)
	register("bge", 4, condLT)
	register("bnl", 4, condLT)
	register("bgt", 12, condGT)
	register("ble", 4, condGT)
	register("bng", 4, condGT)
	register("beq", 12, condEQ)
	register("bne", 4, condEQ)
	register("bso", 12, condSO)
	register("bun", 12, condSO)
	register("bns", 4, condSO)
	register("bnu", 4, condSO)
}

// buildCTRBranches registers bdnz/bdz with their "l" and "+" forms, bt/bf,
// blr/bctr/blrl/bctrl, and the bnelr/bnectr/beqlr/beqctr forms.
func buildCTRBranches() {
	// bdnz/bdz take only the target; BI is unused and encoded as 0.
	fillBOZeroBI := func(bo uint32) func(*OperandList) {
		return func(ol *OperandList) {
			ol.Insert(0, tag(0))
			ol.Insert(0, tag(bo))
		}
	}
	for _, v := range []struct {
		suf string
		bo  uint32
	}{{"", 16}, {"+", 17}} {
		addExtended(ExtendedMnemonic{Name: "bdnz" + v.suf, Base: "bc", ParseAlgo: AlgOp1, Transform: fillBOZeroBI(v.bo)})
		addExtended(ExtendedMnemonic{Name: "bdnzl" + v.suf, Base: "bcl", ParseAlgo: AlgOp1, Transform: fillBOZeroBI(v.bo)})
	}
	for _, v := range []struct {
		suf string
		bo  uint32
	}{{"", 18}, {"+", 19}} {
		addExtended(ExtendedMnemonic{Name: "bdz" + v.suf, Base: "bc", ParseAlgo: AlgOp1, Transform: fillBOZeroBI(v.bo)})
		addExtended(ExtendedMnemonic{Name: "bdzl" + v.suf, Base: "bcl", ParseAlgo: AlgOp1, Transform: fillBOZeroBI(v.bo)})
	}
	addExtended(ExtendedMnemonic{Name: "bt", Base: "bc", ParseAlgo: AlgOp2, Transform: fillBO(12)})
	addExtended(ExtendedMnemonic{Name: "bf", Base: "bc", ParseAlgo: AlgOp2, Transform: fillBO(4)})

	// b*lr / b*ctr: unconditional-always forms plus the bne/beq-style
	// conditional forms built on bclr/bcctr.
	addExtended(ExtendedMnemonic{Name: "blr", Base: "bclr", ParseAlgo: AlgNone, Transform: func(ol *OperandList) {
		ol.Append(tag(20))
		ol.Append(tag(0))
	}})
	addExtended(ExtendedMnemonic{Name: "bctr", Base: "bcctr", ParseAlgo: AlgNone, Transform: func(ol *OperandList) {
		ol.Append(tag(20))
		ol.Append(tag(0))
	}})
	addExtended(ExtendedMnemonic{Name: "blrl", Base: "bclrl", ParseAlgo: AlgNone, Transform: func(ol *OperandList) {
		ol.Append(tag(20))
		ol.Append(tag(0))
	}})
	addExtended(ExtendedMnemonic{Name: "bctrl", Base: "bcctrl", ParseAlgo: AlgNone, Transform: func(ol *OperandList) {
		ol.Append(tag(20))
		ol.Append(tag(0))
	}})

	lrctr := []struct {
		name string
		base string
	}{{"bnelr", "bclr"}, {"bnectr", "bcctr"}, {"beqlr", "bclr"}, {"beqctr", "bcctr"}}
	conds := map[string]uint32{"bnelr": condEQ, "bnectr": condEQ, "beqlr": condEQ, "beqctr": condEQ}
	bos := map[string]uint32{"bnelr": 4, "bnectr": 4, "beqlr": 12, "beqctr": 12}
	for _, lc := range lrctr {
		for _, v := range []struct {
			suf string
			bo  uint32
		}{{"", bos[lc.name]}, {"+", bos[lc.name] + 1}} {
			name, base, bo, cond := lc.name, lc.base, v.bo, conds[lc.name]
			addExtended(ExtendedMnemonic{Name: name + v.suf, Base: base, ParseAlgo: AlgNoneOrOp1, Transform: fillBOBICond(bo, cond, 1)})
		}
	}
}

// buildSPRExtended registers the user-facing mtspr/mfspr/mftb and their
// dedicated-register aliases, applying the SPR bit-swap quirk
// (spec.md §4.6, SPEC_FULL.md §11).
func buildSPRExtended() {
	bitswapTransform := func(sprOperandIdx int) func(*OperandList) {
		return func(ol *OperandList) {
			ol.Set(sprOperandIdx, SPRBitswap(ol.Get(sprOperandIdx)))
		}
	}
	addExtended(ExtendedMnemonic{Name: "mtspr", Base: "mtspr_nobitswap", ParseAlgo: AlgOp2, Transform: bitswapTransform(0)})
	addExtended(ExtendedMnemonic{Name: "mfspr", Base: "mfspr_nobitswap", ParseAlgo: AlgOp2, Transform: bitswapTransform(1)})
	addExtended(ExtendedMnemonic{Name: "mftb", Base: "mftb_nobitswap", ParseAlgo: AlgOp2, Transform: bitswapTransform(1)})

	direct := func(name, base string, spr uint32, rdIsSource bool) {
		addExtended(ExtendedMnemonic{Name: name, Base: base, ParseAlgo: AlgOp1, Transform: func(ol *OperandList) {
			if rdIsSource {
				ol.Insert(1, tag(SPRBitswap(spr)))
			} else {
				ol.Insert(0, tag(SPRBitswap(spr)))
			}
		}})
	}
	for name, spr := range sprNumbers {
		direct("mt"+name, "mtspr_nobitswap", spr, false)
		direct("mf"+name, "mfspr_nobitswap", spr, true)
	}
}
