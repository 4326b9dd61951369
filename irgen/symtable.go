package irgen

import "github.com/lookbusy1344/gekko-assembler/shared"

// SymbolKind distinguishes a `.defvar` constant from a code/data label.
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolVariable
)

// Symbol is one entry of the program's symbol table (spec.md §3).
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Value int64
	Pos   shared.Position
}

// SymbolTable holds every label and `.defvar` variable seen so far. Labels
// and variables share one namespace: redefining either is an error
// (spec.md §4.2's duplicate-symbol rule).
type SymbolTable struct {
	syms  map[string]Symbol
	order []string
	used  map[string]bool
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: make(map[string]Symbol), used: make(map[string]bool)}
}

// Define records name, failing if it is already bound.
func (t *SymbolTable) Define(name string, sym Symbol) bool {
	if _, exists := t.syms[name]; exists {
		return false
	}
	t.syms[name] = sym
	t.order = append(t.order, name)
	return true
}

// Lookup returns name's binding, if any.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// MarkUsed records that name was referenced by some operand or expression.
func (t *SymbolTable) MarkUsed(name string) {
	t.used[name] = true
}

// Unused returns every defined symbol, in definition order, that MarkUsed
// was never called for — the basis of §4.5's unused-label/unused-variable
// warnings (spec.md's "Warnings are not produced" applies to hard errors
// only; this is an additive, non-fatal diagnostic, per SPEC_FULL.md §4.5).
func (t *SymbolTable) Unused() []Symbol {
	var out []Symbol
	for _, name := range t.order {
		if !t.used[name] {
			out = append(out, t.syms[name])
		}
	}
	return out
}

// resolver adapts a SymbolTable and a live cursor into exprparser's
// SymbolResolver interface.
type resolver struct {
	syms   *SymbolTable
	cursor *uint32
}

func (r *resolver) Resolve(name string) (int64, bool) {
	s, ok := r.syms.Lookup(name)
	if !ok {
		return 0, false
	}
	r.syms.MarkUsed(name)
	return s.Value, true
}

func (r *resolver) CurrentAddress() int64 { return int64(*r.cursor) }
