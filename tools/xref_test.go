package tools

import "testing"

func TestCrossReferenceLabel(t *testing.T) {
	src := "loop:\n    addi r3, r3, -1\n    bne loop\n"
	idx := CrossReference(src)
	refs, ok := idx.Entries["loop"]
	if !ok {
		t.Fatal("expected an entry for 'loop'")
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 references to 'loop', got %d", len(refs))
	}
	if refs[0].Kind != RefDefinition {
		t.Errorf("expected first reference to be a definition, got %s", refs[0].Kind)
	}
	if refs[1].Kind != RefUse {
		t.Errorf("expected second reference to be a use, got %s", refs[1].Kind)
	}
}

func TestCrossReferenceVariable(t *testing.T) {
	src := ".defvar base, 0x8000\nlis r3, base@ha\nori r3, r3, base@l\n"
	idx := CrossReference(src)
	refs, ok := idx.Entries["base"]
	if !ok {
		t.Fatal("expected an entry for 'base'")
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 references to 'base', got %d", len(refs))
	}
	if refs[0].Kind != RefDefinition {
		t.Errorf("expected first reference to be a definition, got %s", refs[0].Kind)
	}
	for _, r := range refs[1:] {
		if r.Kind != RefUse {
			t.Errorf("expected use, got %s", r.Kind)
		}
	}
}

func TestRefKindString(t *testing.T) {
	if RefDefinition.String() != "definition" {
		t.Errorf("unexpected RefDefinition.String(): %s", RefDefinition.String())
	}
	if RefUse.String() != "use" {
		t.Errorf("unexpected RefUse.String(): %s", RefUse.String())
	}
}

func TestCrossReferenceNoEntries(t *testing.T) {
	idx := CrossReference("    blr\n")
	if len(idx.Entries) != 0 {
		t.Errorf("expected no entries, got %v", idx.Entries)
	}
}
