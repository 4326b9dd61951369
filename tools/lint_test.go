package tools

import (
	"strings"
	"testing"
)

func TestLintUnusedLabel(t *testing.T) {
	src := "start:\n    addi r3, r0, 1\nloop:\n    b loop\n"
	issues := Lint(src, nil)
	var found bool
	for _, iss := range issues {
		if iss.Code == "UNUSED_LABEL" && strings.Contains(iss.Message, "start") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an UNUSED_LABEL finding for 'start', got %v", issues)
	}
	for _, iss := range issues {
		if strings.Contains(iss.Message, "loop") {
			t.Errorf("'loop' is referenced and should not be flagged: %v", iss)
		}
	}
}

func TestLintUnusedVariable(t *testing.T) {
	src := ".defvar unused, 0x1234\n.defvar base, 0x8000\nlis r3, base@ha\n"
	issues := Lint(src, nil)
	var sawUnused, sawBase bool
	for _, iss := range issues {
		if iss.Code == "UNUSED_VAR" {
			if strings.Contains(iss.Message, "unused") {
				sawUnused = true
			}
			if strings.Contains(iss.Message, "base") {
				sawBase = true
			}
		}
	}
	if !sawUnused {
		t.Error("expected 'unused' to be flagged as an unused variable")
	}
	if sawBase {
		t.Error("'base' is referenced via base@ha and should not be flagged")
	}
}

func TestLintNoIssues(t *testing.T) {
	src := "loop:\n    addi r3, r3, -1\n    bne loop\n"
	issues := Lint(src, nil)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestLintOptionsDisableChecks(t *testing.T) {
	src := "unused:\n    blr\n"
	issues := Lint(src, &LintOptions{CheckUnusedLabels: false, CheckUnusedVars: true})
	if len(issues) != 0 {
		t.Errorf("expected no issues with CheckUnusedLabels disabled, got %v", issues)
	}
}
