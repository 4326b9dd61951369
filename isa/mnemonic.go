package isa

import "github.com/lookbusy1344/gekko-assembler/shared"

// ParseAlg selects which operand-list grammar a mnemonic's parse info asks
// the expression parser to run, per spec.md §3/§4.4.
type ParseAlg int

const (
	AlgNone ParseAlg = iota
	AlgOp1
	AlgNoneOrOp1
	AlgOp1Off1
	AlgOp2
	AlgOp1Or2
	AlgOp3
	AlgOp2Or3
	AlgOp4
	AlgOp5
	AlgOp1Off1Op2
)

// MaxOperands is the fixed capacity of an OperandList.
const MaxOperands = 5

// OperandList is a fixed-capacity, insert-anywhere small-vector of tagged
// operand values, mirroring the Dolphin source's OperandList (spec.md §3).
type OperandList struct {
	Items    [MaxOperands]shared.Tagged[shared.Interval, uint32]
	Count    int
	Overfill bool
}

// Append adds v at the end, marking Overfill if capacity is exceeded.
func (ol *OperandList) Append(v shared.Tagged[shared.Interval, uint32]) {
	if ol.Count >= MaxOperands {
		ol.Overfill = true
		return
	}
	ol.Items[ol.Count] = v
	ol.Count++
}

// Insert shifts entries at and after "at" one slot to the right and stores
// v at "at", matching the Dolphin OperandList::Insert semantics used by
// extended-mnemonic transforms.
func (ol *OperandList) Insert(at int, v shared.Tagged[shared.Interval, uint32]) {
	if ol.Count >= MaxOperands {
		ol.Overfill = true
		return
	}
	for i := ol.Count; i > at; i-- {
		ol.Items[i] = ol.Items[i-1]
	}
	ol.Items[at] = v
	ol.Count++
}

// Get returns the raw uint32 value at index i.
func (ol *OperandList) Get(i int) uint32 { return ol.Items[i].Value }

// Set overwrites the raw uint32 value at index i, preserving its tag.
func (ol *OperandList) Set(i int, v uint32) { ol.Items[i].Value = v }

// Slice returns the first Count items.
func (ol *OperandList) Slice() []shared.Tagged[shared.Interval, uint32] {
	return ol.Items[:ol.Count]
}

// MnemonicDesc is the machine-code template for one base mnemonic variant:
// a fixed initial word plus up to MaxOperands bit-field descriptors.
type MnemonicDesc struct {
	Name          string
	InitialValue  uint32
	OperandCount  int
	Operands      [MaxOperands]OperandDesc
	ParseAlgo     ParseAlg
	NoBitswapSPR  bool // mtspr/mfspr raw-field base variants
}

// ExtendedMnemonic rewrites an OperandList in place so that a base
// mnemonic's encoder can be reused, per spec.md §3/§9.
type ExtendedMnemonic struct {
	Name      string
	Base      string
	ParseAlgo ParseAlg
	Transform func(*OperandList)
}
