package tac

import (
	"testing"

	"github.com/sequentia-lang/sequentia/internal/parser"
)

func generate(t *testing.T, src string) []Instruction {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Generate(prog)
}

func TestGeneratePatternCall(t *testing.T) {
	instrs := generate(t, "xs = pattern fibonacci 5\n")
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %d: %v", len(instrs), instrs)
	}
	if instrs[0].String() != "xs = CALL fibonacci(5)" {
		t.Errorf("unexpected rendering: %q", instrs[0].String())
	}
}

func TestGeneratePrintSimpleName(t *testing.T) {
	instrs := generate(t, "print xs\n")
	if instrs[0].String() != "PRINT xs" {
		t.Errorf("unexpected rendering: %q", instrs[0].String())
	}
}

func TestGenerateIfAlwaysEmitsElseLabel(t *testing.T) {
	instrs := generate(t, "a = 1\nb = 2\nif a < b {\nprint a\n}\n")
	foundElse, foundEnd := false, false
	for _, in := range instrs {
		if in.Op == Label {
			if foundElse {
				foundEnd = true
			} else {
				foundElse = true
			}
		}
	}
	if !foundElse || !foundEnd {
		t.Fatalf("expected both else and end labels even without an else-block: %v", instrs)
	}
}

func TestGenerateForElidesLoopMachinery(t *testing.T) {
	instrs := generate(t, "xs = pattern square 4\nfor v in xs {\nprint v\n}\n")
	var labelCount, printCount int
	for _, in := range instrs {
		switch in.Op {
		case Label:
			labelCount++
		case Print:
			printCount++
		}
	}
	if labelCount != 2 {
		t.Errorf("expected exactly 2 labels bracketing the for body, got %d", labelCount)
	}
	if printCount != 1 {
		t.Errorf("expected 1 print in body, got %d", printCount)
	}
}

func TestGenerateSlicePacksRangeInArg2(t *testing.T) {
	instrs := generate(t, "xs = pattern square 8\nys = xs[1:4]\n")
	var sliceInstr *Instruction
	for i := range instrs {
		if instrs[i].Op == Slice {
			sliceInstr = &instrs[i]
		}
	}
	if sliceInstr == nil {
		t.Fatal("expected a SLICE instruction")
	}
	if sliceInstr.Arg2 != "1:4" {
		t.Errorf("expected packed range 1:4, got %q", sliceInstr.Arg2)
	}
}

func TestGenerateNeverReusesResultNames(t *testing.T) {
	instrs := generate(t, "a = 1 + 2 * 3\n")
	seen := map[string]bool{}
	for _, in := range instrs {
		if in.Result != "" {
			if seen[in.Result] {
				t.Fatalf("temp/result %q reused", in.Result)
			}
			seen[in.Result] = true
		}
	}
}
