package isa

// These exported mirrors of package-private field descriptors name operand
// slots without hard-coding mnemonic names. IsBranchTarget compares against
// FieldLI/FieldBD; FieldCrfD and FieldL are not referenced elsewhere in this
// module.
var (
	FieldLI   = fLI
	FieldBD   = fBD
	FieldCrfD = fCrfD
	FieldL    = fL
)

// AABit is the absolute-address suffix bit of a branch instruction's
// initial word; when set, the branch target operand is taken as a literal
// address instead of having the current address subtracted.
const AABit = aaBit

// IsAbsoluteForm reports whether m's initial encoding carries the AA=1
// absolute-addressing suffix ("ba"/"bla" and their extended forms).
func (m MnemonicDesc) IsAbsoluteForm() bool {
	return m.InitialValue&AABit != 0
}

// IsBranchTarget reports whether d is one of the PC-relative target
// fields (LI for b/bl, BD for bc/bcl), per spec.md §4.5's branch-operand
// fitting rule.
func IsBranchTarget(d OperandDesc) bool {
	return d == FieldLI || d == FieldBD
}
