package isa

import "github.com/lookbusy1344/gekko-assembler/dict"

// sprNumbers is the SPR alias table referenced by spec.md §4.3/§6 and
// supplemented per SPEC_FULL.md §11 with the full Gekko/Broadway SPR set
// from the Dolphin source's AssemblerTables.cpp.
var sprNumbers = map[string]uint32{
	"xer": 1, "lr": 8, "ctr": 9,
	"dsisr": 18, "dar": 19, "dec": 22, "sdr1": 25,
	"srr0": 26, "srr1": 27,
	"sprg0": 272, "sprg1": 273, "sprg2": 274, "sprg3": 275,
	"ear": 282, "tbl": 268, "tbu": 269, "pvr": 287,

	"ibat0u": 528, "ibat0l": 529, "ibat1u": 530, "ibat1l": 531,
	"ibat2u": 532, "ibat2l": 533, "ibat3u": 534, "ibat3l": 535,
	"dbat0u": 536, "dbat0l": 537, "dbat1u": 538, "dbat1l": 539,
	"dbat2u": 540, "dbat2l": 541, "dbat3u": 542, "dbat3l": 543,

	"gqr0": 912, "gqr1": 913, "gqr2": 914, "gqr3": 915,
	"gqr4": 916, "gqr5": 917, "gqr6": 918, "gqr7": 919,
	"hid2": 920, "wpar": 921, "dma_u": 922, "dma_l": 923,

	"ummcr0": 936, "upmc1": 937, "upmc2": 938, "usia": 939,
	"ummcr1": 940, "upmc3": 941, "upmc4": 942, "usda": 943,

	"mmcr0": 952, "pmc1": 953, "pmc2": 954, "sia": 955,
	"mmcr1": 956, "pmc3": 957, "pmc4": 958, "sda": 959,

	"hid0": 1008, "hid1": 1009, "iabr": 1010, "dabr": 1013,
	"l2cr": 1017, "ictc": 1019,
	"thrm1": 1020, "thrm2": 1021, "thrm3": 1022,
}

// sprDict is the case-insensitive lookup used by the lexer to classify an
// identifier as an SPR token, per spec.md §4.3.
var sprDict *dict.Trie[uint32]

func init() {
	sprDict = dict.New("_", sprNumbers)
}

// LookupSPR resolves a textual SPR alias to its numeric value.
func LookupSPR(name string) (uint32, bool) {
	return sprDict.Find(name)
}

// SPRBitswap implements the PowerPC mtspr/mfspr quirk: the 10-bit SPR field
// is stored with its two 5-bit halves swapped (spec.md §4.6).
func SPRBitswap(v uint32) uint32 {
	return ((v & 0x1f) << 5) | ((v >> 5) & 0x1f)
}
