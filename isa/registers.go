package isa

import "strconv"

// ClassifyGPR reports whether ident is a general-purpose register name
// (rN, sp, rtoc) and its number, per spec.md §4.3.
func ClassifyGPR(ident string) (uint32, bool) {
	switch ident {
	case "sp":
		return 1, true
	case "rtoc":
		return 2, true
	}
	if len(ident) < 2 || ident[0] != 'r' {
		return 0, false
	}
	return parseRegNum(ident[1:])
}

// ClassifyFPR reports whether ident is a floating-point register name (fN).
func ClassifyFPR(ident string) (uint32, bool) {
	if len(ident) < 2 || ident[0] != 'f' {
		return 0, false
	}
	return parseRegNum(ident[1:])
}

// ClassifyCRField reports whether ident names a condition-register field
// (crN, 0 <= N <= 7).
func ClassifyCRField(ident string) (uint32, bool) {
	if len(ident) < 3 || ident[:2] != "cr" {
		return 0, false
	}
	n, err := strconv.Atoi(ident[2:])
	if err != nil || n < 0 || n > 7 {
		return 0, false
	}
	return uint32(n), true
}

// ClassifyCRFlag reports whether ident is one of the bare CR-bit words.
func ClassifyCRFlag(ident string) (uint32, bool) {
	switch ident {
	case "lt":
		return condLT, true
	case "gt":
		return condGT, true
	case "eq":
		return condEQ, true
	case "so":
		return condSO, true
	}
	return 0, false
}

func parseRegNum(digits string) (uint32, bool) {
	if len(digits) == 0 || len(digits) > 2 {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 31 {
		return 0, false
	}
	return uint32(n), true
}
