// Package gekkoasm is the public entry point of the Gekko/Broadway
// assembler: a single synchronous call that turns source text into
// address-tagged machine code blocks (spec.md §1/§6).
package gekkoasm

import (
	"github.com/lookbusy1344/gekko-assembler/irgen"
	"github.com/lookbusy1344/gekko-assembler/shared"
)

// CodeBlock is one contiguous run of assembled bytes, tagged with the
// virtual address of its first byte (spec.md §6).
type CodeBlock struct {
	Address uint32
	Bytes   []byte
}

// Result is everything a successful Assemble call produces.
type Result struct {
	Blocks   []CodeBlock
	Warnings []shared.Warning
}

// Assemble assembles source as a single Gekko/Broadway program, with the
// IR generator's cursor initialized to baseAddress before any `.locate`
// (spec.md §6). The call is synchronous, single-threaded, and free of any
// shared mutable state: concurrent calls on independent inputs are safe.
func Assemble(source string, baseAddress uint32) (Result, error) {
	gen := irgen.New(source, "", baseAddress)
	blocks, warnings, err := gen.Generate()
	if err != nil {
		return Result{}, err
	}
	out := make([]CodeBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, CodeBlock{Address: b.Address, Bytes: b.Bytes})
	}
	return Result{Blocks: out, Warnings: warnings}, nil
}

// AssembleFile behaves like Assemble but attributes diagnostics to
// filename.
func AssembleFile(source, filename string, baseAddress uint32) (Result, error) {
	gen := irgen.New(source, filename, baseAddress)
	blocks, warnings, err := gen.Generate()
	if err != nil {
		return Result{}, err
	}
	out := make([]CodeBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, CodeBlock{Address: b.Address, Bytes: b.Bytes})
	}
	return Result{Blocks: out, Warnings: warnings}, nil
}
