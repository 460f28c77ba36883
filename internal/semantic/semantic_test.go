package semantic

import (
	"testing"

	"github.com/sequentia-lang/sequentia/internal/parser"
)

func analyzeSrc(t *testing.T, src string) *Table {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	table, err := Analyze(prog)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	return table
}

func TestAnalyzeScalarAssign(t *testing.T) {
	table := analyzeSrc(t, "n = 5\n")
	sym, ok := table.Lookup("n")
	if !ok || sym.Kind != ScalarInt {
		t.Fatalf("expected scalar int n, got %+v", sym)
	}
}

func TestAnalyzePatternAssignRecordsLength(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern fibonacci 5\n")
	sym, _ := table.Lookup("xs")
	if sym.Kind != ArrayInt || sym.Pattern != "fibonacci" {
		t.Fatalf("unexpected symbol: %+v", sym)
	}
	if sym.Length == nil || *sym.Length != 5 {
		t.Fatalf("expected length 5, got %v", sym.Length)
	}
}

func TestAnalyzeSliceLengthBothLiteral(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern square 10\nys = xs[2:7]\n")
	sym, _ := table.Lookup("ys")
	if sym.Length == nil || *sym.Length != 5 {
		t.Fatalf("expected length 5, got %v", sym.Length)
	}
}

func TestAnalyzeSliceLengthOnlyStartKnownSourceLength(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern square 10\nys = xs[3:]\n")
	sym, _ := table.Lookup("ys")
	if sym.Length == nil || *sym.Length != 7 {
		t.Fatalf("expected length 7, got %v", sym.Length)
	}
}

func TestAnalyzeSliceLengthOnlyEnd(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern square 10\nys = xs[:4]\n")
	sym, _ := table.Lookup("ys")
	if sym.Length == nil || *sym.Length != 4 {
		t.Fatalf("expected length 4, got %v", sym.Length)
	}
}

func TestAnalyzeBinOpBroadcastsToArray(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern square 4\nys = xs + 10\n")
	sym, _ := table.Lookup("ys")
	if sym.Kind != ArrayInt {
		t.Fatalf("expected array, got %s", sym.Kind)
	}
	if sym.Length == nil || *sym.Length != 4 {
		t.Fatalf("expected propagated length 4, got %v", sym.Length)
	}
}

func TestAnalyzeComparisonAlwaysScalar(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern square 4\nys = pattern square 4\nz = xs == ys\n")
	sym, _ := table.Lookup("z")
	if sym.Kind != ScalarInt {
		t.Fatalf("expected scalar int from comparison, got %s", sym.Kind)
	}
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	prog, err := parser.Parse("print missing\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := Analyze(prog); err == nil {
		t.Fatal("expected an error")
	}
}

func TestAnalyzeForRequiresArraySource(t *testing.T) {
	prog, err := parser.Parse("n = 5\nfor v in n {\nprint v\n}\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := Analyze(prog); err == nil {
		t.Fatal("expected an error for non-array for-source")
	}
}

func TestAnalyzeForBindsIteratorFlatScope(t *testing.T) {
	table := analyzeSrc(t, "xs = pattern square 4\nfor v in xs {\nprint v\n}\nprint v\n")
	if _, ok := table.Lookup("v"); !ok {
		t.Fatal("expected iterator v to remain visible after the for-loop (flat scope)")
	}
}
