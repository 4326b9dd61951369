// Package isa holds the static, read-only description of the Gekko/Broadway
// instruction set: operand bit-field descriptors, the base and extended
// mnemonic tables, and the special-purpose-register/condition-register alias
// dictionaries. Everything here is built once by init() and never mutated,
// so it is safe to share across concurrent Assemble calls (SPEC_FULL.md §5).
package isa

import "math/bits"

// OperandDesc describes how one operand of an instruction occupies bits of
// the 32-bit instruction word, per spec.md §3/§4.2.
//
// Mask and Shift locate the stored field within the word; Align records how
// many low bits of the *user-supplied value* are implied zero (e.g. a
// word-aligned byte displacement has Align=2). Width is derived from Mask.
type OperandDesc struct {
	Mask   uint32
	Shift  uint32
	Align  uint32
	Signed bool
}

func (d OperandDesc) width() uint32 {
	return uint32(bits.OnesCount32(d.Mask))
}

// MaxVal is the largest value Fits accepts.
func (d OperandDesc) MaxVal() int64 {
	w := d.width()
	if d.Signed {
		return (int64(1)<<(w-1) - 1) << d.Align
	}
	return (int64(1)<<w - 1) << d.Align
}

// MinVal is the smallest value Fits accepts.
func (d OperandDesc) MinVal() int64 {
	if !d.Signed {
		return 0
	}
	w := d.width()
	return -(int64(1) << (w - 1)) << d.Align
}

// TruncBits is the set of low bits that must be zero in a valid value; 0
// means no alignment constraint.
func (d OperandDesc) TruncBits() uint32 {
	if d.Align == 0 {
		return 0
	}
	return (uint32(1) << d.Align) - 1
}

// Fits reports whether v can be represented by this operand field.
func (d OperandDesc) Fits(v int64) bool {
	if v < d.MinVal() || v > d.MaxVal() {
		return false
	}
	if tb := d.TruncBits(); tb != 0 && uint32(v)&tb != 0 {
		return false
	}
	return true
}

// Fit places v into its bit position within the instruction word. Callers
// must call Fits first; Fit performs no range checking. Align gates Fits'
// range/truncation check only — it plays no part in bit placement here.
func (d OperandDesc) Fit(v int64) uint32 {
	return (uint32(v) << d.Shift) & d.Mask
}
