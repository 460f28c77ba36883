package optimizer

import (
	"testing"

	"github.com/sequentia-lang/sequentia/internal/parser"
	"github.com/sequentia-lang/sequentia/internal/tac"
)

func genTAC(t *testing.T, src string) []tac.Instruction {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return tac.Generate(prog)
}

func TestConstantFoldingNoLiteralOperandsSurvive(t *testing.T) {
	instrs := Optimize(genTAC(t, "a = 1 + 2\n"))
	for _, in := range instrs {
		if in.Op.IsArithmetic() && isDigits(in.Arg1) && isDigits(in.Arg2) {
			t.Fatalf("expected no surviving folded-arithmetic instruction, got %v", in)
		}
	}
}

func TestConstantFoldingComputesCorrectValue(t *testing.T) {
	instrs := Optimize(genTAC(t, "a = 6 / 2\n"), WithPass(PassDeadCodeElim, false), WithPass(PassRedundantConstTemp, false))
	found := false
	for _, in := range instrs {
		if in.Op == tac.Assign && in.Arg1 == "3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected folded assign to 3, got %v", instrs)
	}
}

func TestDeadCodeEliminationDropsUnusedAssignments(t *testing.T) {
	// b is assigned but never used or printed, so it should be fully eliminated.
	instrs := Optimize(genTAC(t, "a = 1\nb = 2\nprint a\n"))
	for _, in := range instrs {
		if in.Result == "b" {
			t.Fatalf("expected b's assignment to be eliminated, found %v", in)
		}
	}
}

func TestDeadCodeEliminationKeepsPrintedValue(t *testing.T) {
	instrs := Optimize(genTAC(t, "a = 1\nprint a\n"))
	sawPrint := false
	for _, in := range instrs {
		if in.Op == tac.Print {
			sawPrint = true
		}
	}
	if !sawPrint {
		t.Fatal("expected PRINT to survive optimization")
	}
}

func TestRedundantConstantTempCleanup(t *testing.T) {
	instrs := []tac.Instruction{
		{Op: tac.Assign, Arg1: "8", Result: "t1"},
		{Op: tac.Assign, Arg1: "8", Result: "a"},
	}
	out := removeRedundantConstantAssigns(instrs)
	if len(out) != 1 || out[0].Result != "a" {
		t.Fatalf("expected only the variable assignment to survive, got %v", out)
	}
}

func TestOptimizePreservesPrintOrder(t *testing.T) {
	src := "a = 1\nb = 2\nprint a\nprint b\n"
	before := genTAC(t, src)
	after := Optimize(before)

	var beforePrints, afterPrints []string
	for _, in := range before {
		if in.Op == tac.Print {
			beforePrints = append(beforePrints, in.Arg1)
		}
	}
	for _, in := range after {
		if in.Op == tac.Print {
			afterPrints = append(afterPrints, in.Arg1)
		}
	}
	if len(beforePrints) != len(afterPrints) {
		t.Fatalf("print count changed: before=%v after=%v", beforePrints, afterPrints)
	}
	for i := range beforePrints {
		if beforePrints[i] != afterPrints[i] {
			t.Fatalf("print order changed: before=%v after=%v", beforePrints, afterPrints)
		}
	}
}

func TestDeadCodeEliminationKeepsMultiArgPatternOperands(t *testing.T) {
	// a, d, n only feed the pattern call's comma-joined argument list; DCE
	// must not mistake that joined string for a single dead name and drop
	// their defining assignments out from under the call.
	instrs := Optimize(genTAC(t, "a = 2\nd = 3\nn = 4\nxs = pattern arithmetic a, d, n\nprint xs\n"))
	seen := map[string]bool{}
	for _, in := range instrs {
		if in.Result == "a" || in.Result == "d" || in.Result == "n" {
			seen[in.Result] = true
		}
	}
	for _, name := range []string{"a", "d", "n"} {
		if !seen[name] {
			t.Fatalf("expected %s's assignment to survive (still referenced by the pattern call), got %v", name, instrs)
		}
	}
}

func TestCopyPropagationSkipsSliceRanges(t *testing.T) {
	instrs := []tac.Instruction{
		{Op: tac.Assign, Arg1: "2", Result: "t1"},
		{Op: tac.Slice, Arg1: "xs", Arg2: "t1:4", Result: "t2"},
	}
	out := copyPropagation(instrs)
	if out[1].Arg2 != "t1:4" {
		t.Fatalf("expected slice range arg2 untouched, got %q", out[1].Arg2)
	}
}
