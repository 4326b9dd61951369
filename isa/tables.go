package isa

import "github.com/lookbusy1344/gekko-assembler/dict"

// Field descriptors shared across mnemonic families. Names follow the
// PowerPC architecture manual's field names, not the typed operand order of
// any one mnemonic (see the per-mnemonic tables below for that mapping).
var (
	fD    = OperandDesc{Mask: 0x03E00000, Shift: 21}
	fA    = OperandDesc{Mask: 0x001F0000, Shift: 16}
	fB    = OperandDesc{Mask: 0x0000F800, Shift: 11}
	fC    = OperandDesc{Mask: 0x000007C0, Shift: 6}
	fSimm = OperandDesc{Mask: 0x0000FFFF, Shift: 0, Signed: true}
	fUimm = OperandDesc{Mask: 0x0000FFFF, Shift: 0, Signed: false}
	fCrfD = OperandDesc{Mask: 0x03800000, Shift: 23}
	fCrfS = OperandDesc{Mask: 0x001C0000, Shift: 18}
	fL    = OperandDesc{Mask: 0x00200000, Shift: 21}
	fBO   = OperandDesc{Mask: 0x03E00000, Shift: 21}
	fBI   = OperandDesc{Mask: 0x001F0000, Shift: 16}
	fBD   = OperandDesc{Mask: 0x0000FFFC, Shift: 0, Align: 2, Signed: true}
	fLI   = OperandDesc{Mask: 0x03FFFFFC, Shift: 0, Align: 2, Signed: true}
	fSH   = OperandDesc{Mask: 0x0000F800, Shift: 11}
	fMB   = OperandDesc{Mask: 0x000007C0, Shift: 6}
	fME   = OperandDesc{Mask: 0x0000003E, Shift: 1}
	fSPR  = OperandDesc{Mask: 0x001FF800, Shift: 11}
	fFXM  = OperandDesc{Mask: 0x000FF000, Shift: 12}
	fQW   = OperandDesc{Mask: 0x00000800, Shift: 11}
	fQI   = OperandDesc{Mask: 0x00000700, Shift: 8}
	fDOff = OperandDesc{Mask: 0x00000FFF, Shift: 0, Signed: true} // paired-single 12-bit offset
)

const (
	rcBit = uint32(0x00000001)
	oeBit = uint32(0x00000400)
	lkBit = uint32(0x00000001)
	aaBit = uint32(0x00000002)
)

var (
	mnemonics     = map[string]MnemonicDesc{}
	extendedTable = map[string]ExtendedMnemonic{}
	directives    = map[string]struct{}{}
)

func opWord(primary uint32) uint32 { return primary << 26 }
func xoWord(primary, xo uint32) uint32 {
	return opWord(primary) | (xo << 1)
}

func add(m MnemonicDesc) {
	m.OperandCount = countOperands(m.Operands)
	mnemonics[m.Name] = m
}

func countOperands(ops [MaxOperands]OperandDesc) int {
	n := 0
	for _, o := range ops {
		if o != (OperandDesc{}) {
			n++
		}
	}
	return n
}

// addArithmeticFamily registers the OE/Rc variants of a D,A,B-form
// arithmetic mnemonic (rD, rA, rB), per spec.md's "variant permutations":
// all four when hasOE is set, otherwise only the plain and "." forms.
func addArithmeticFamily(name string, primary, xo uint32, hasOE bool) {
	suffixes := []string{"", ".", "o", "o."}
	extra := []uint32{0, rcBit, oeBit, oeBit | rcBit}
	n := 2
	if !hasOE {
		n = 1
	}
	for i := 0; i < n*2; i++ {
		suf, ex := suffixes[i], extra[i]
		add(MnemonicDesc{
			Name:         name + suf,
			InitialValue: xoWord(primary, xo) | ex,
			Operands:     [MaxOperands]OperandDesc{fD, fA, fB},
			ParseAlgo:    AlgOp3,
		})
	}
}

// addArithmeticFamily2 is addArithmeticFamily for two-operand forms (neg,
// the 1-source-register members of the OE/Rc family).
func addArithmeticFamily2(name string, primary, xo uint32) {
	suffixes := []string{"", ".", "o", "o."}
	extra := []uint32{0, rcBit, oeBit, oeBit | rcBit}
	for i := range suffixes {
		add(MnemonicDesc{
			Name:         name + suffixes[i],
			InitialValue: xoWord(primary, xo) | extra[i],
			Operands:     [MaxOperands]OperandDesc{fD, fA},
			ParseAlgo:    AlgOp2,
		})
	}
}

// addLogicalFamily registers the plain/Rc pair of an X-form logical
// mnemonic whose typed operand order is (rA_dest, rS, rB).
func addLogicalFamily(name string, primary, xo uint32) {
	for _, v := range []struct {
		suf string
		rc  uint32
	}{{"", 0}, {".", rcBit}} {
		add(MnemonicDesc{
			Name:         name + v.suf,
			InitialValue: xoWord(primary, xo) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD, fB},
			ParseAlgo:    AlgOp3,
		})
	}
}

func addLoadStoreD(name string, primary uint32) {
	add(MnemonicDesc{
		Name:         name,
		InitialValue: opWord(primary),
		Operands:     [MaxOperands]OperandDesc{fD, fSimm, fA},
		ParseAlgo:    AlgOp1Off1,
	})
}

func addLoadStoreX(name string, primary, xo uint32) {
	add(MnemonicDesc{
		Name:         name,
		InitialValue: xoWord(primary, xo),
		Operands:     [MaxOperands]OperandDesc{fD, fA, fB},
		ParseAlgo:    AlgOp3,
	})
}

func init() {
	buildArithmetic()
	buildLogical()
	buildImmediate()
	buildCompare()
	buildLoadStore()
	buildBranch()
	buildSystemAndMisc()
	buildPairedSingle()
	buildExtendedMnemonics()
	buildDictionaries()
}

func buildArithmetic() {
	addArithmeticFamily("add", 31, 266, true)
	addArithmeticFamily("subf", 31, 40, true)
	addArithmeticFamily("addc", 31, 10, true)
	addArithmeticFamily("subfc", 31, 8, true)
	addArithmeticFamily("adde", 31, 138, true)
	addArithmeticFamily("subfe", 31, 136, true)
	addArithmeticFamily2("addme", 31, 234)
	addArithmeticFamily2("subfme", 31, 232)
	addArithmeticFamily2("addze", 31, 202)
	addArithmeticFamily2("subfze", 31, 200)
	addArithmeticFamily("mullw", 31, 235, true)
	addArithmeticFamily("mulhw", 31, 75, false)
	addArithmeticFamily("mulhwu", 31, 11, false)
	addArithmeticFamily("divw", 31, 491, true)
	addArithmeticFamily("divwu", 31, 459, true)
	addArithmeticFamily2("neg", 31, 104)
}

func buildLogical() {
	addLogicalFamily("and", 31, 28)
	addLogicalFamily("or", 31, 444)
	addLogicalFamily("xor", 31, 316)
	addLogicalFamily("nor", 31, 124)
	addLogicalFamily("andc", 31, 60)
	addLogicalFamily("orc", 31, 412)
	addLogicalFamily("nand", 31, 476)
	addLogicalFamily("eqv", 31, 284)
	addLogicalFamily("slw", 31, 24)
	addLogicalFamily("srw", 31, 536)
	addLogicalFamily("sraw", 31, 792)

	for _, v := range []struct {
		suf string
		rc  uint32
	}{{"", 0}, {".", rcBit}} {
		add(MnemonicDesc{
			Name:         "srawi" + v.suf,
			InitialValue: xoWord(31, 824) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD, fSH},
			ParseAlgo:    AlgOp3,
		})
	}

	for _, v := range []struct {
		suf string
		rc  uint32
	}{{"", 0}, {".", rcBit}} {
		add(MnemonicDesc{
			Name:         "rlwinm" + v.suf,
			InitialValue: opWord(21) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD, fSH, fMB, fME},
			ParseAlgo:    AlgOp5,
		})
		add(MnemonicDesc{
			Name:         "rlwimi" + v.suf,
			InitialValue: opWord(20) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD, fSH, fMB, fME},
			ParseAlgo:    AlgOp5,
		})
		add(MnemonicDesc{
			Name:         "cntlzw" + v.suf,
			InitialValue: xoWord(31, 26) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD},
			ParseAlgo:    AlgOp2,
		})
		add(MnemonicDesc{
			Name:         "extsb" + v.suf,
			InitialValue: xoWord(31, 954) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD},
			ParseAlgo:    AlgOp2,
		})
		add(MnemonicDesc{
			Name:         "extsh" + v.suf,
			InitialValue: xoWord(31, 922) | v.rc,
			Operands:     [MaxOperands]OperandDesc{fA, fD},
			ParseAlgo:    AlgOp2,
		})
	}
}

func buildImmediate() {
	add(MnemonicDesc{Name: "addi", InitialValue: opWord(14), Operands: [MaxOperands]OperandDesc{fD, fA, fSimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "addic", InitialValue: opWord(12), Operands: [MaxOperands]OperandDesc{fD, fA, fSimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "addic.", InitialValue: opWord(13), Operands: [MaxOperands]OperandDesc{fD, fA, fSimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "addis", InitialValue: opWord(15), Operands: [MaxOperands]OperandDesc{fD, fA, fSimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "subfic", InitialValue: opWord(8), Operands: [MaxOperands]OperandDesc{fD, fA, fSimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "mulli", InitialValue: opWord(7), Operands: [MaxOperands]OperandDesc{fD, fA, fSimm}, ParseAlgo: AlgOp3})

	add(MnemonicDesc{Name: "ori", InitialValue: opWord(24), Operands: [MaxOperands]OperandDesc{fA, fD, fUimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "oris", InitialValue: opWord(25), Operands: [MaxOperands]OperandDesc{fA, fD, fUimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "xori", InitialValue: opWord(26), Operands: [MaxOperands]OperandDesc{fA, fD, fUimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "xoris", InitialValue: opWord(27), Operands: [MaxOperands]OperandDesc{fA, fD, fUimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "andi.", InitialValue: opWord(28), Operands: [MaxOperands]OperandDesc{fA, fD, fUimm}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "andis.", InitialValue: opWord(29), Operands: [MaxOperands]OperandDesc{fA, fD, fUimm}, ParseAlgo: AlgOp3})
}

func buildCompare() {
	add(MnemonicDesc{Name: "cmp", InitialValue: xoWord(31, 0), Operands: [MaxOperands]OperandDesc{fCrfD, fL, fA, fB}, ParseAlgo: AlgOp3Or4()})
	add(MnemonicDesc{Name: "cmpl", InitialValue: xoWord(31, 32), Operands: [MaxOperands]OperandDesc{fCrfD, fL, fA, fB}, ParseAlgo: AlgOp3Or4()})
	add(MnemonicDesc{Name: "cmpi", InitialValue: opWord(11), Operands: [MaxOperands]OperandDesc{fCrfD, fL, fA, fSimm}, ParseAlgo: AlgOp3Or4()})
	add(MnemonicDesc{Name: "cmpli", InitialValue: opWord(10), Operands: [MaxOperands]OperandDesc{fCrfD, fL, fA, fUimm}, ParseAlgo: AlgOp3Or4()})
}

// AlgOp3Or4 documents that cmp-family mnemonics accept either 3 or 4
// operands (for 3 operands, GAS compatibility inserts crfD=0 at the front);
// see codegen.AdjustOperandsForGas.
func AlgOp3Or4() ParseAlg { return AlgOp4 }

func buildLoadStore() {
	for _, ls := range []struct {
		name string
		op   uint32
	}{
		{"lwz", 32}, {"lwzu", 33}, {"lbz", 34}, {"lbzu", 35},
		{"stw", 36}, {"stwu", 37}, {"stb", 38}, {"stbu", 39},
		{"lhz", 40}, {"lhzu", 41}, {"lha", 42}, {"lhau", 43},
		{"sth", 44}, {"sthu", 45},
		{"lfs", 48}, {"lfsu", 49}, {"lfd", 50}, {"lfdu", 51},
		{"stfs", 52}, {"stfsu", 53}, {"stfd", 54}, {"stfdu", 55},
	} {
		addLoadStoreD(ls.name, ls.op)
	}

	for _, ls := range []struct {
		name string
		xo   uint32
	}{
		{"lwzx", 23}, {"lwzux", 55}, {"lbzx", 87}, {"lbzux", 119},
		{"stwx", 151}, {"stwux", 183}, {"stbx", 215}, {"stbux", 247},
		{"lhzx", 279}, {"lhzux", 311}, {"lhax", 343}, {"lhaux", 375},
		{"sthx", 407}, {"sthux", 439},
		{"lfsx", 535}, {"lfsux", 567}, {"lfdx", 599}, {"lfdux", 631},
		{"stfsx", 663}, {"stfsux", 695}, {"stfdx", 727}, {"stfdux", 759},
		{"lwarx", 20}, {"stwcx.", 150},
	} {
		addLoadStoreX(ls.name, 31, ls.xo)
	}
}

func buildBranch() {
	for i, v := range []struct {
		suf     string
		aa, lk  uint32
	}{{"", 0, 0}, {"l", 0, lkBit}, {"a", aaBit, 0}, {"la", aaBit, lkBit}} {
		_ = i
		add(MnemonicDesc{
			Name:         "b" + v.suf,
			InitialValue: opWord(18) | v.aa | v.lk,
			Operands:     [MaxOperands]OperandDesc{fLI},
			ParseAlgo:    AlgOp1,
		})
	}
	for _, v := range []struct {
		suf    string
		aa, lk uint32
	}{{"", 0, 0}, {"l", 0, lkBit}, {"a", aaBit, 0}, {"la", aaBit, lkBit}} {
		add(MnemonicDesc{
			Name:         "bc" + v.suf,
			InitialValue: opWord(16) | v.aa | v.lk,
			Operands:     [MaxOperands]OperandDesc{fBO, fBI, fBD},
			ParseAlgo:    AlgOp3,
		})
	}
	for _, v := range []struct {
		suf string
		lk  uint32
	}{{"", 0}, {"l", lkBit}} {
		add(MnemonicDesc{
			Name:         "bclr" + v.suf,
			InitialValue: xoWord(19, 16) | v.lk,
			Operands:     [MaxOperands]OperandDesc{fBO, fBI},
			ParseAlgo:    AlgOp2,
		})
		add(MnemonicDesc{
			Name:         "bcctr" + v.suf,
			InitialValue: xoWord(19, 528) | v.lk,
			Operands:     [MaxOperands]OperandDesc{fBO, fBI},
			ParseAlgo:    AlgOp2,
		})
	}
}

func buildSystemAndMisc() {
	add(MnemonicDesc{Name: "mtspr_nobitswap", InitialValue: xoWord(31, 467), Operands: [MaxOperands]OperandDesc{fSPR, fD}, ParseAlgo: AlgOp2, NoBitswapSPR: true})
	add(MnemonicDesc{Name: "mfspr_nobitswap", InitialValue: xoWord(31, 339), Operands: [MaxOperands]OperandDesc{fD, fSPR}, ParseAlgo: AlgOp2, NoBitswapSPR: true})
	add(MnemonicDesc{Name: "mftb_nobitswap", InitialValue: xoWord(31, 371), Operands: [MaxOperands]OperandDesc{fD, fSPR}, ParseAlgo: AlgOp2, NoBitswapSPR: true})
	add(MnemonicDesc{Name: "mtcrf", InitialValue: xoWord(31, 144), Operands: [MaxOperands]OperandDesc{fFXM, fD}, ParseAlgo: AlgOp2})
	add(MnemonicDesc{Name: "mfcr", InitialValue: xoWord(31, 19), Operands: [MaxOperands]OperandDesc{fD}, ParseAlgo: AlgOp1})
	add(MnemonicDesc{Name: "sc", InitialValue: opWord(17) | 2, ParseAlgo: AlgNone})
	add(MnemonicDesc{Name: "rfi", InitialValue: xoWord(19, 50), ParseAlgo: AlgNone})
	add(MnemonicDesc{Name: "isync", InitialValue: xoWord(19, 150), ParseAlgo: AlgNone})
	add(MnemonicDesc{Name: "sync", InitialValue: xoWord(31, 598), ParseAlgo: AlgNone})
	add(MnemonicDesc{Name: "eieio", InitialValue: xoWord(31, 854), ParseAlgo: AlgNone})
	add(MnemonicDesc{Name: "dcbz", InitialValue: xoWord(31, 1014), Operands: [MaxOperands]OperandDesc{fA, fB}, ParseAlgo: AlgOp2})
	add(MnemonicDesc{Name: "dcbz_l", InitialValue: xoWord(4, 1014), Operands: [MaxOperands]OperandDesc{fA, fB}, ParseAlgo: AlgOp2})
	add(MnemonicDesc{Name: "dcbf", InitialValue: xoWord(31, 86), Operands: [MaxOperands]OperandDesc{fA, fB}, ParseAlgo: AlgOp2})
	add(MnemonicDesc{Name: "dcbst", InitialValue: xoWord(31, 54), Operands: [MaxOperands]OperandDesc{fA, fB}, ParseAlgo: AlgOp2})
	add(MnemonicDesc{Name: "icbi", InitialValue: xoWord(31, 982), Operands: [MaxOperands]OperandDesc{fA, fB}, ParseAlgo: AlgOp2})

	for _, cr := range []struct {
		name string
		xo   uint32
	}{
		{"crand", 257}, {"cror", 449}, {"crxor", 193}, {"crnand", 225},
		{"crnor", 33}, {"creqv", 289}, {"crandc", 129}, {"crorc", 417},
	} {
		add(MnemonicDesc{
			Name:         cr.name,
			InitialValue: xoWord(19, cr.xo),
			Operands:     [MaxOperands]OperandDesc{fD, fA, fB},
			ParseAlgo:    AlgOp3,
		})
	}
}

func buildPairedSingle() {
	for _, v := range []struct {
		suf string
		op  uint32
	}{{"", 56}, {"u", 57}} {
		add(MnemonicDesc{
			Name:         "psq_l" + v.suf,
			InitialValue: opWord(v.op),
			Operands:     [MaxOperands]OperandDesc{fD, fDOff, fA, fQW, fQI},
			ParseAlgo:    AlgOp1Off1Op2,
		})
	}
	for _, v := range []struct {
		suf string
		op  uint32
	}{{"", 60}, {"u", 61}} {
		add(MnemonicDesc{
			Name:         "psq_st" + v.suf,
			InitialValue: opWord(v.op),
			Operands:     [MaxOperands]OperandDesc{fD, fDOff, fA, fQW, fQI},
			ParseAlgo:    AlgOp1Off1Op2,
		})
	}

	for _, v := range []struct {
		suf string
		rc  uint32
	}{{"", 0}, {".", rcBit}} {
		for _, ps := range []struct {
			name string
			xo   uint32
		}{
			{"ps_add", 21}, {"ps_sub", 20}, {"ps_mul", 25}, {"ps_div", 18},
			{"ps_abs", 264}, {"ps_neg", 40}, {"ps_mr", 72},
			{"ps_madd", 29}, {"ps_nmsub", 30}, {"ps_msub", 28}, {"ps_nmadd", 31},
			{"ps_merge00", 528}, {"ps_merge01", 560}, {"ps_merge10", 592}, {"ps_merge11", 624},
			{"ps_sum0", 10}, {"ps_sum1", 11},
		} {
			add(MnemonicDesc{
				Name:         ps.name + v.suf,
				InitialValue: xoWord(4, ps.xo) | v.rc,
				Operands:     [MaxOperands]OperandDesc{fD, fA, fB},
				ParseAlgo:    AlgOp3,
			})
		}
	}
	add(MnemonicDesc{Name: "ps_cmpu0", InitialValue: xoWord(4, 0), Operands: [MaxOperands]OperandDesc{fCrfD, fA, fB}, ParseAlgo: AlgOp3})
	add(MnemonicDesc{Name: "ps_cmpo0", InitialValue: xoWord(4, 32), Operands: [MaxOperands]OperandDesc{fCrfD, fA, fB}, ParseAlgo: AlgOp3})
}

func buildDictionaries() {
	mnemonicNames := make(map[string]string, len(mnemonics))
	for k := range mnemonics {
		mnemonicNames[k] = k
	}
	mnemonicDict = dict.New("._", mnemonicNames)

	extendedNames := make(map[string]string, len(extendedTable))
	for k := range extendedTable {
		extendedNames[k] = k
	}
	extendedDict = dict.New("._+-", extendedNames)

	directives = map[string]struct{}{
		"byte": {}, "2byte": {}, "4byte": {}, "8byte": {},
		"float": {}, "double": {}, "ascii": {}, "asciz": {},
		"zeros": {}, "skip": {}, "align": {}, "padalign": {},
		"locate": {}, "defvar": {},
	}
	dirNames := map[string]string{}
	for k := range directives {
		dirNames[k] = k
	}
	directiveDict = dict.New("_", dirNames)
}

var (
	mnemonicDict  *dict.Trie[string]
	extendedDict  *dict.Trie[string]
	directiveDict *dict.Trie[string]
)

// LookupMnemonic resolves name against the base mnemonic table, matching
// case-insensitively per spec.md §4.1.
func LookupMnemonic(name string) (MnemonicDesc, bool) {
	canon, ok := mnemonicDict.Find(name)
	if !ok {
		return MnemonicDesc{}, false
	}
	m, ok := mnemonics[canon]
	return m, ok
}

// LookupExtended resolves name against the extended-mnemonic table, matching
// case-insensitively per spec.md §4.1.
func LookupExtended(name string) (ExtendedMnemonic, bool) {
	canon, ok := extendedDict.Find(name)
	if !ok {
		return ExtendedMnemonic{}, false
	}
	e, ok := extendedTable[canon]
	return e, ok
}

// IsDirective reports whether name (without its leading '.') is a known
// directive, matching case-insensitively per spec.md §4.3.
func IsDirective(name string) bool {
	_, ok := directiveDict.Find(name)
	return ok
}

// IsKnownMnemonic reports whether name resolves as a base or extended
// mnemonic. Nothing in this module calls it; statement parsing looks
// mnemonics up through the dictionaries directly.
func IsKnownMnemonic(name string) bool {
	if _, ok := mnemonicDict.Find(name); ok {
		return true
	}
	_, ok := extendedDict.Find(name)
	return ok
}
